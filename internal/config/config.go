// Package config loads and validates the service configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full service configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Webhook WebhookConfig `yaml:"webhook"`
	Session SessionConfig `yaml:"session"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"` // HTTP listen address, e.g. ":8080"
}

type StorageConfig struct {
	Driver     string `yaml:"driver"`      // "memory" or "sqlite"
	SQLitePath string `yaml:"sqlite_path"` // database file, used when driver is "sqlite"
}

type WebhookConfig struct {
	Trigger        string `yaml:"trigger"`         // minimum status that fires webhooks
	TimeoutSeconds int    `yaml:"timeout_seconds"` // per-delivery HTTP timeout
}

type SessionConfig struct {
	DelayMillis int `yaml:"delay_ms"` // artificial pre-result delay for interactive callers
}

// Storage driver names.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Load reads configuration from a YAML file.
// If the file doesn't exist, it returns a default config and no error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	return &cfg, nil
}

// WebhookTimeout returns the configured delivery timeout as a duration.
func (c *Config) WebhookTimeout() time.Duration {
	return time.Duration(c.Webhook.TimeoutSeconds) * time.Second
}

// SessionDelay returns the configured interactive delay as a duration.
func (c *Config) SessionDelay() time.Duration {
	return time.Duration(c.Session.DelayMillis) * time.Millisecond
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Storage: StorageConfig{
			Driver:     DriverMemory,
			SQLitePath: "data/analyses.db",
		},
		Webhook: WebhookConfig{
			Trigger:        "dangerous",
			TimeoutSeconds: 5,
		},
		Session: SessionConfig{
			DelayMillis: 0,
		},
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = DriverMemory
	}
	if cfg.Storage.SQLitePath == "" {
		cfg.Storage.SQLitePath = "data/analyses.db"
	}
	if cfg.Webhook.Trigger == "" {
		cfg.Webhook.Trigger = "dangerous"
	}
	if cfg.Webhook.TimeoutSeconds == 0 {
		cfg.Webhook.TimeoutSeconds = 5
	}
}
