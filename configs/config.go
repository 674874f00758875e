package configs

import (
	"errors"
	"fmt"
	"time"

	"weather-reminder/internal/domain/gateway/api"
	"weather-reminder/internal/domain/gateway/mail"
	"weather-reminder/internal/domain/usecase/notification"
	"weather-reminder/internal/infra/aws"
	"weather-reminder/internal/infra/database/gorm"
	"weather-reminder/pkg/redis"
	"weather-reminder/pkg/resource"
)

const (
	MailTransportSMTP  = "smtp"
	MailTransportQueue = "queue"
)

// Config is the application configuration, read once at startup from pkg/resource.
type Config struct {
	ApplicationName string
	LogLevel        string
	Server          ServerConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	Weather         WeatherConfig
	Notification    notification.Config
	Schedule        ScheduleConfig
	Mail            MailConfig
	AWS             aws.Config
}

type ServerConfig struct {
	Port            string
	ContextPath     string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	gorm.Config
	PingTimeout time.Duration
	AutoMigrate bool
}

type RedisConfig struct {
	Enabled      bool
	Client       *redis.Config
	GeocodingTTL time.Duration
}

type WeatherConfig struct {
	api.OpenWeatherConfig
	BatchSize int
}

type ScheduleConfig struct {
	UpdateWeatherForecastCron string
	SendWeatherForecastCron   string
	LockTTL                   time.Duration
}

type MailConfig struct {
	Transport     string
	SMTP          mail.SMTPConfig
	QueueName     string
	QueuePoolSize int
}

// Load reads every app.* property. It fails on values the application cannot start with.
func Load() (*Config, error) {
	epoch := notification.DefaultEpoch
	if value := resource.GetString("app.notification.epoch"); value != "" {
		parsed, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return nil, fmt.Errorf("invalid app.notification.epoch %q: %w", value, err)
		}
		epoch = parsed.UTC()
	}

	from := resource.GetString("app.mail.from")
	config := &Config{
		ApplicationName: resource.GetStringOrDefault("app.name", "weather-reminder"),
		LogLevel:        resource.GetStringOrDefault("app.log-level", "info"),
		Server: ServerConfig{
			Port:            resource.GetStringOrDefault("app.server.port", "8080"),
			ContextPath:     resource.GetString("app.server.context-path"),
			ShutdownTimeout: durationOrDefault("app.server.shutdown-timeout", 30*time.Second),
		},
		Database: DatabaseConfig{
			Config: gorm.Config{
				Host:            resource.GetString("app.db.host"),
				Port:            resource.GetString("app.db.port"),
				Username:        resource.GetString("app.db.username"),
				Password:        resource.GetString("app.db.password"),
				Database:        resource.GetString("app.db.database"),
				Schema:          resource.GetStringOrDefault("app.db.schema", "public"),
				SSLMode:         resource.GetString("app.db.ssl-mode"),
				MaxOpenConns:    resource.GetInt("app.db.max-open-conns"),
				MaxIdleConns:    resource.GetInt("app.db.max-idle-conns"),
				ConnMaxLifetime: resource.GetDuration("app.db.conn-max-lifetime"),
			},
			PingTimeout: durationOrDefault("app.db.ping-timeout", 5*time.Second),
			AutoMigrate: resource.GetBool("app.db.auto-migrate"),
		},
		Redis: RedisConfig{
			Enabled: resource.GetBool("app.redis.enabled"),
			Client: redis.DefaultConfig().
				WithHost(resource.GetStringOrDefault("app.redis.host", "localhost")).
				WithPort(resource.GetIntOrDefault("app.redis.port", 6379)).
				WithPassword(resource.GetString("app.redis.password")).
				WithDatabase(resource.GetInt("app.redis.database")).
				WithNamespace(resource.GetString("app.redis.namespace")),
			GeocodingTTL: durationOrDefault("app.redis.geocoding-ttl", 24*time.Hour),
		},
		Weather: WeatherConfig{
			OpenWeatherConfig: api.OpenWeatherConfig{
				APIKey:          resource.GetString("app.weather.api-key"),
				GeocodingURL:    resource.GetString("app.weather.geocoding-url"),
				ForecastURL:     resource.GetString("app.weather.forecast-url"),
				GeocodingLimit:  resource.GetIntOrDefault("app.weather.geocoding-limit", 5),
				Timeout:         durationOrDefault("app.weather.timeout", 10*time.Second),
				BreakerFailures: uint32(resource.GetIntOrDefault("app.weather.breaker-failures", 5)),
				BreakerTimeout:  durationOrDefault("app.weather.breaker-timeout", time.Minute),
			},
			BatchSize: resource.GetIntOrDefault("app.weather.batch-size", 100),
		},
		Notification: notification.Config{
			Epoch: epoch,
			From:  from,
		},
		Schedule: ScheduleConfig{
			UpdateWeatherForecastCron: resource.GetString("app.schedule.update-weather-forecast-cron"),
			SendWeatherForecastCron:   resource.GetString("app.schedule.send-weather-forecast-cron"),
			LockTTL:                   durationOrDefault("app.schedule.lock-ttl", 10*time.Minute),
		},
		Mail: MailConfig{
			Transport: resource.GetStringOrDefault("app.mail.transport", MailTransportSMTP),
			SMTP: mail.SMTPConfig{
				Host:      resource.GetString("app.mail.smtp.host"),
				Port:      resource.GetInt("app.mail.smtp.port"),
				Username:  resource.GetString("app.mail.smtp.username"),
				Password:  resource.GetString("app.mail.smtp.password"),
				TLSPolicy: resource.GetString("app.mail.smtp.tls-policy"),
				Timeout:   resource.GetDuration("app.mail.smtp.timeout"),
				From:      from,
			},
			QueueName:     resource.GetString("app.mail.queue.name"),
			QueuePoolSize: resource.GetIntOrDefault("app.mail.queue.pool-size", 1),
		},
		AWS: aws.Config{
			Region:          resource.GetString("app.cloud.aws-region"),
			Endpoint:        resource.GetString("app.cloud.aws-endpoint"),
			AccessKeyID:     resource.GetString("app.cloud.aws-access-key-id"),
			SecretAccessKey: resource.GetString("app.cloud.aws-secret-access-key"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks the settings that have no safe default.
func (c *Config) Validate() error {
	var errs []error
	if c.Weather.GeocodingURL == "" || c.Weather.ForecastURL == "" {
		errs = append(errs, errors.New("app.weather.geocoding-url and app.weather.forecast-url are required"))
	}
	if c.Weather.BatchSize <= 0 {
		errs = append(errs, fmt.Errorf("app.weather.batch-size must be positive, got %d", c.Weather.BatchSize))
	}
	if c.Notification.From == "" {
		errs = append(errs, errors.New("app.mail.from is required"))
	}
	switch c.Mail.Transport {
	case MailTransportSMTP:
		if c.Mail.SMTP.Host == "" {
			errs = append(errs, errors.New("app.mail.smtp.host is required by the smtp transport"))
		}
	case MailTransportQueue:
		if c.Mail.QueueName == "" {
			errs = append(errs, errors.New("app.mail.queue.name is required by the queue transport"))
		}
	default:
		errs = append(errs, fmt.Errorf("app.mail.transport must be %q or %q, got %q", MailTransportSMTP, MailTransportQueue, c.Mail.Transport))
	}
	if c.Redis.Enabled {
		if err := c.Redis.Client.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("app.redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

func durationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := resource.GetDuration(key); value > 0 {
		return value
	}
	return defaultValue
}
