package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	if cfg.Client.ServiceURL != "quill://localhost:6650" {
		t.Errorf("ServiceURL = %q", cfg.Client.ServiceURL)
	}
	if cfg.Lookup.MaxRetries != 20 {
		t.Errorf("MaxRetries = %d, want 20", cfg.Lookup.MaxRetries)
	}
	if cfg.Lookup.RetryBackoffMs != 500 {
		t.Errorf("RetryBackoffMs = %d, want 500", cfg.Lookup.RetryBackoffMs)
	}
	if cfg.Lookup.MaxRedirects != 20 {
		t.Errorf("MaxRedirects = %d, want 20", cfg.Lookup.MaxRedirects)
	}
	if got := cfg.Lookup.RetryBackoff(); got != 500*time.Millisecond {
		t.Errorf("RetryBackoff() = %v, want 500ms", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "client.yaml")
	data := []byte(`
client:
  serviceUrl: quill://cluster.example.com:6650
lookup:
  maxRetries: 5
  retryBackoffMs: 250
observability:
  logLevel: debug
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if cfg.Client.ServiceURL != "quill://cluster.example.com:6650" {
		t.Errorf("ServiceURL = %q", cfg.Client.ServiceURL)
	}
	if cfg.Lookup.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.Lookup.MaxRetries)
	}
	if cfg.Lookup.RetryBackoffMs != 250 {
		t.Errorf("RetryBackoffMs = %d, want 250", cfg.Lookup.RetryBackoffMs)
	}
	// Unset fields keep defaults.
	if cfg.Lookup.MaxRedirects != 20 {
		t.Errorf("MaxRedirects = %d, want default 20", cfg.Lookup.MaxRedirects)
	}
	if cfg.Observability.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.Observability.LogLevel)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	if _, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("QUILL_SERVICE_URL", "quill://env-host:6650")
	t.Setenv("QUILL_LOOKUP_MAX_RETRIES", "7")
	t.Setenv("QUILL_LOOKUP_RETRY_BACKOFF_MS", "100")
	t.Setenv("QUILL_LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Client.ServiceURL != "quill://env-host:6650" {
		t.Errorf("ServiceURL = %q", cfg.Client.ServiceURL)
	}
	if cfg.Lookup.MaxRetries != 7 {
		t.Errorf("MaxRetries = %d, want 7", cfg.Lookup.MaxRetries)
	}
	if cfg.Lookup.RetryBackoffMs != 100 {
		t.Errorf("RetryBackoffMs = %d, want 100", cfg.Lookup.RetryBackoffMs)
	}
	if cfg.Observability.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.Observability.LogLevel)
	}
}

func TestEnvOverridesIgnoreBadNumbers(t *testing.T) {
	t.Setenv("QUILL_LOOKUP_MAX_RETRIES", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Lookup.MaxRetries != 20 {
		t.Errorf("MaxRetries = %d, want default 20", cfg.Lookup.MaxRetries)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "no host", mutate: func(c *Config) { c.Client.ServiceURL = "quill://" }, wantErr: true},
		{name: "unparsable url", mutate: func(c *Config) { c.Client.ServiceURL = "://x" }, wantErr: true},
		{name: "negative retries", mutate: func(c *Config) { c.Lookup.MaxRetries = -1 }, wantErr: true},
		{name: "negative backoff", mutate: func(c *Config) { c.Lookup.RetryBackoffMs = -1 }, wantErr: true},
		{name: "negative redirects", mutate: func(c *Config) { c.Lookup.MaxRedirects = -1 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
