package config

import (
	"errors"
	"fmt"
	"strings"

	"sentra/phishing-api/internal/domain"
)

// Validate checks the loaded config for required fields and safe values.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	if strings.TrimSpace(cfg.Server.Addr) == "" {
		return errors.New("server.addr must be set")
	}

	switch cfg.Storage.Driver {
	case DriverMemory:
	case DriverSQLite:
		if strings.TrimSpace(cfg.Storage.SQLitePath) == "" {
			return errors.New("storage.sqlite_path must be set when driver is sqlite")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q, got %q",
			DriverMemory, DriverSQLite, cfg.Storage.Driver)
	}

	if domain.StatusRank(cfg.Webhook.Trigger) < 0 {
		return fmt.Errorf("webhook.trigger must be a valid status, got %q", cfg.Webhook.Trigger)
	}
	if cfg.Webhook.TimeoutSeconds < 1 || cfg.Webhook.TimeoutSeconds > 60 {
		return fmt.Errorf("webhook.timeout_seconds must be between 1 and 60, got %d",
			cfg.Webhook.TimeoutSeconds)
	}

	if cfg.Session.DelayMillis < 0 {
		return fmt.Errorf("session.delay_ms must not be negative, got %d", cfg.Session.DelayMillis)
	}

	return nil
}
