package gorm

import "testing"

func TestConfigDSN(t *testing.T) {
	config := Config{Host: "db", Port: "5432", Username: "weather", Password: "secret", Database: "weather", Schema: "public"}

	want := "host=db port=5432 user=weather password=secret dbname=weather sslmode=disable search_path=public"
	if got := config.DSN(); got != want {
		t.Fatalf("DSN() = %q, want %q", got, want)
	}

	config.SSLMode = "require"
	if got := config.DSN(); got != "host=db port=5432 user=weather password=secret dbname=weather sslmode=require search_path=public" {
		t.Fatalf("DSN() = %q", got)
	}
}
