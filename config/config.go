// Package config provides configuration loading and validation for the Quill
// client. Supports YAML files with environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for a Quill client.
type Config struct {
	Client        ClientConfig        `yaml:"client"`
	Lookup        LookupConfig        `yaml:"lookup"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ClientConfig configures how the client reaches the cluster.
type ClientConfig struct {
	// ServiceURL is the cluster's base service URL, e.g. quill://host:6650
	// or quill+tls://host:6651. All discovery traffic starts here.
	ServiceURL string `yaml:"serviceUrl" env:"QUILL_SERVICE_URL"`
}

// LookupConfig configures the topic lookup retry and redirect policy.
type LookupConfig struct {
	// MaxRetries bounds how many times a ServiceNotReady answer is retried
	// before the lookup fails.
	MaxRetries int `yaml:"maxRetries" env:"QUILL_LOOKUP_MAX_RETRIES"`

	// RetryBackoffMs is the fixed delay between ServiceNotReady retries.
	RetryBackoffMs int64 `yaml:"retryBackoffMs" env:"QUILL_LOOKUP_RETRY_BACKOFF_MS"`

	// MaxRedirects bounds how many redirect hops one lookup may follow.
	MaxRedirects int `yaml:"maxRedirects" env:"QUILL_LOOKUP_MAX_REDIRECTS"`
}

// RetryBackoff returns the retry backoff as a duration.
func (l LookupConfig) RetryBackoff() time.Duration {
	return time.Duration(l.RetryBackoffMs) * time.Millisecond
}

// ObservabilityConfig configures logging and metrics.
type ObservabilityConfig struct {
	MetricsAddr string `yaml:"metricsAddr" env:"QUILL_METRICS_ADDR"`
	LogLevel    string `yaml:"logLevel" env:"QUILL_LOG_LEVEL"`
	LogFormat   string `yaml:"logFormat" env:"QUILL_LOG_FORMAT"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Client: ClientConfig{
			ServiceURL: "quill://localhost:6650",
		},
		Lookup: LookupConfig{
			MaxRetries:     20,
			RetryBackoffMs: 500,
			MaxRedirects:   20,
		},
		Observability: ObservabilityConfig{
			MetricsAddr: ":9090",
			LogLevel:    "info",
			LogFormat:   "json",
		},
	}
}

// Load returns the default configuration with environment overrides applied.
func Load() (*Config, error) {
	cfg := Default()
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath reads a YAML configuration file, then applies environment
// overrides on top of it.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the client cannot run with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Client.ServiceURL)
	if err != nil {
		return fmt.Errorf("config: invalid service URL %q: %w", c.Client.ServiceURL, err)
	}
	if u.Host == "" {
		return fmt.Errorf("config: service URL %q has no host", c.Client.ServiceURL)
	}
	if c.Lookup.MaxRetries < 0 {
		return fmt.Errorf("config: lookup.maxRetries must not be negative, got %d", c.Lookup.MaxRetries)
	}
	if c.Lookup.RetryBackoffMs < 0 {
		return fmt.Errorf("config: lookup.retryBackoffMs must not be negative, got %d", c.Lookup.RetryBackoffMs)
	}
	if c.Lookup.MaxRedirects < 0 {
		return fmt.Errorf("config: lookup.maxRedirects must not be negative, got %d", c.Lookup.MaxRedirects)
	}
	return nil
}

func applyEnv(c *Config) {
	setString(&c.Client.ServiceURL, "QUILL_SERVICE_URL")
	setInt(&c.Lookup.MaxRetries, "QUILL_LOOKUP_MAX_RETRIES")
	setInt64(&c.Lookup.RetryBackoffMs, "QUILL_LOOKUP_RETRY_BACKOFF_MS")
	setInt(&c.Lookup.MaxRedirects, "QUILL_LOOKUP_MAX_REDIRECTS")
	setString(&c.Observability.MetricsAddr, "QUILL_METRICS_ADDR")
	setString(&c.Observability.LogLevel, "QUILL_LOG_LEVEL")
	setString(&c.Observability.LogFormat, "QUILL_LOG_FORMAT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}
