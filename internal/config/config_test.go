package config

import (
	"strings"
	"testing"
	"time"
)

// setRequired sets the environment variables that have no defaults.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/leadpipe")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Server.Addr() = %q", cfg.Server.Addr())
	}
	if cfg.Redis.URL != "redis://localhost:6379/0" {
		t.Errorf("Redis.URL = %q", cfg.Redis.URL)
	}
	if cfg.Redis.Queue != "leadpipe:jobs" {
		t.Errorf("Redis.Queue = %q", cfg.Redis.Queue)
	}
	if cfg.Storage.Dir != "storage" {
		t.Errorf("Storage.Dir = %q", cfg.Storage.Dir)
	}
	if cfg.Upload.MaxFileSize != 10*1024*1024 {
		t.Errorf("Upload.MaxFileSize = %d, want 10MB", cfg.Upload.MaxFileSize)
	}
	if cfg.Convert.PhoneRegion != "BR" {
		t.Errorf("Convert.PhoneRegion = %q, want BR", cfg.Convert.PhoneRegion)
	}
	if cfg.Auth.TokenTTL != 168*time.Hour {
		t.Errorf("Auth.TokenTTL = %v, want 168h", cfg.Auth.TokenTTL)
	}
	if cfg.Worker.Concurrency != 2 {
		t.Errorf("Worker.Concurrency = %d, want 2", cfg.Worker.Concurrency)
	}
	if !cfg.Rate.Enabled || cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate = %+v, want enabled at 100/min", cfg.Rate)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "15s")
	t.Setenv("UPLOAD_MAX_FILE_SIZE", "1048576")
	t.Setenv("CONVERT_PHONE_REGION", "US")
	t.Setenv("WORKER_CONCURRENCY", "8")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Upload.MaxFileSize != 1048576 {
		t.Errorf("Upload.MaxFileSize = %d, want 1048576", cfg.Upload.MaxFileSize)
	}
	if cfg.Convert.PhoneRegion != "US" {
		t.Errorf("Convert.PhoneRegion = %q, want US", cfg.Convert.PhoneRegion)
	}
	if cfg.Worker.Concurrency != 8 {
		t.Errorf("Worker.Concurrency = %d, want 8", cfg.Worker.Concurrency)
	}
	if cfg.Rate.Enabled {
		t.Error("Rate.Enabled = true, want false")
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoadAltEnvName(t *testing.T) {
	setRequired(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "postgres://alt-host:5432/leadpipe")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "postgres://alt-host:5432/leadpipe" {
		t.Errorf("Database.URL = %q, want the DB_URL fallback", cfg.Database.URL)
	}
}

func TestLoadRequiredMissing(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without DATABASE_URL")
	} else if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("error does not name the missing variable: %v", err)
	}
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric port", "SERVER_PORT", "eighty"},
		{"bad duration", "SERVER_READ_TIMEOUT", "30"},
		{"bad boolean", "RATE_LIMIT_ENABLED", "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	setRequired(t)
	t.Setenv("SERVER_PORT", "70000")
	t.Setenv("WORKER_CONCURRENCY", "0")
	t.Setenv("CONVERT_PHONE_REGION", "BRA")

	_, err := Load()
	if err == nil {
		t.Fatal("Load accepted incoherent config")
	}
	for _, want := range []string{"SERVER_PORT", "WORKER_CONCURRENCY", "CONVERT_PHONE_REGION"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error does not mention %s: %v", want, err)
		}
	}
}

func TestStringMasksSecrets(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := cfg.String()
	if strings.Contains(s, "postgres://") {
		t.Error("String() leaks the database URL")
	}
	if strings.Contains(s, "0123456789abcdef") {
		t.Error("String() leaks the JWT secret")
	}
	if !strings.Contains(s, "[MASKED]") {
		t.Error("String() does not mark masked values")
	}
}
