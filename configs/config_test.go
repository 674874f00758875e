package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"weather-reminder/internal/domain/usecase/notification"
	"weather-reminder/pkg/resource"
)

func loadProperties(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write properties: %v", err)
	}
	if err := resource.Init(path); err != nil {
		t.Fatalf("resource.Init: %v", err)
	}
}

func TestLoadApplicationProperties(t *testing.T) {
	t.Setenv("OPENWEATHER_API_KEY", "secret-key")
	t.Setenv("SCHEDULE_LOCK_TTL", "2m")
	if err := resource.Init("application.yml"); err != nil {
		t.Fatalf("resource.Init: %v", err)
	}

	config, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if config.Weather.APIKey != "secret-key" || config.Weather.BatchSize != 100 || config.Weather.BreakerFailures != 5 {
		t.Errorf("weather = %+v", config.Weather)
	}
	if !config.Notification.Epoch.Equal(notification.DefaultEpoch) {
		t.Errorf("epoch = %v", config.Notification.Epoch)
	}
	if config.Schedule.UpdateWeatherForecastCron != "50 * * * *" || config.Schedule.SendWeatherForecastCron != "0 */1 * * *" {
		t.Errorf("schedule = %+v", config.Schedule)
	}
	if config.Schedule.LockTTL != 2*time.Minute {
		t.Errorf("lock ttl = %v", config.Schedule.LockTTL)
	}
	if config.Mail.Transport != MailTransportSMTP || config.Mail.SMTP.From != config.Notification.From {
		t.Errorf("mail = %+v", config.Mail)
	}
	if config.Database.Port != "5432" || !config.Database.AutoMigrate {
		t.Errorf("database = %+v", config.Database)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	loadProperties(t, `
app:
  weather:
    geocoding-url: http://geo
    forecast-url: http://forecast
  notification:
    epoch: yesterday
`)
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "app.notification.epoch") {
		t.Fatalf("err = %v, want an epoch error", err)
	}

	loadProperties(t, `
app:
  weather:
    geocoding-url: http://geo
    forecast-url: http://forecast
  mail:
    transport: pigeon
    from: noreply@weather.test
`)
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "app.mail.transport") {
		t.Fatalf("err = %v, want a transport error", err)
	}

	loadProperties(t, `
app:
  weather:
    geocoding-url: http://geo
    forecast-url: http://forecast
  mail:
    transport: queue
    from: noreply@weather.test
    queue:
      name: mail
`)
	if _, err := Load(); err != nil {
		t.Fatalf("queue transport: %v", err)
	}
}
