package resource

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleProperties = `
app:
  name: weather-reminder
  db:
    host: ${TEST_RESOURCE_DB_HOST:localhost}
    port: ${TEST_RESOURCE_DB_PORT:5432}
    dsn: ${TEST_RESOURCE_DB_HOST:localhost}:${TEST_RESOURCE_DB_PORT:5432}
    password: ${TEST_RESOURCE_MISSING:}
  weather:
    timeout: 10s
    batch-size: 50
`

func writeProperties(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yml")
	if err := os.WriteFile(path, []byte(sampleProperties), 0o600); err != nil {
		t.Fatalf("write properties: %v", err)
	}
	return path
}

func TestInitResolvesEnvironment(t *testing.T) {
	t.Setenv("TEST_RESOURCE_DB_HOST", "db.internal")

	if err := Init(writeProperties(t)); err != nil {
		t.Fatalf("Init returned error: %v", err)
	}

	if got := GetString("app.name"); got != "weather-reminder" {
		t.Errorf("app.name = %q", got)
	}
	if got := GetString("app.db.host"); got != "db.internal" {
		t.Errorf("app.db.host = %q, want env value", got)
	}
	if got := GetInt("app.db.port"); got != 5432 {
		t.Errorf("app.db.port = %d, want default 5432", got)
	}
	if got := GetString("app.db.dsn"); got != "db.internal:5432" {
		t.Errorf("app.db.dsn = %q", got)
	}
	if got := GetString("app.db.password"); got != "" {
		t.Errorf("app.db.password = %q, want empty", got)
	}
	if got := GetDuration("app.weather.timeout"); got != 10*time.Second {
		t.Errorf("app.weather.timeout = %v", got)
	}
	if got := GetIntOrDefault("app.weather.missing", 7); got != 7 {
		t.Errorf("GetIntOrDefault = %d, want 7", got)
	}
}

func TestInitMissingFile(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
