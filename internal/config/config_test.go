package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"sentra/phishing-api/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFile_ReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != config.DriverMemory {
		t.Errorf("expected default driver memory, got %s", cfg.Storage.Driver)
	}
	if err := config.Validate(cfg); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad_PartialFile_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server:\n  addr: \":9090\"\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("expected :9090, got %s", cfg.Server.Addr)
	}
	if cfg.Webhook.TimeoutSeconds != 5 {
		t.Errorf("expected default timeout 5, got %d", cfg.Webhook.TimeoutSeconds)
	}
}

func TestLoad_SQLiteDriver(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: sqlite\n  sqlite_path: /tmp/test.db\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Driver != config.DriverSQLite {
		t.Errorf("expected sqlite driver, got %s", cfg.Storage.Driver)
	}
	if err := config.Validate(cfg); err != nil {
		t.Errorf("sqlite config should validate: %v", err)
	}
}

func TestLoad_MalformedYAML_ReturnsError(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	if _, err := config.Load(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestValidate_UnknownDriver_Fails(t *testing.T) {
	cfg, _ := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	cfg.Storage.Driver = "postgres"
	if err := config.Validate(cfg); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestValidate_BadWebhookTrigger_Fails(t *testing.T) {
	cfg, _ := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	cfg.Webhook.Trigger = "critical"
	if err := config.Validate(cfg); err == nil {
		t.Error("expected error for unknown webhook trigger")
	}
}

func TestValidate_NegativeDelay_Fails(t *testing.T) {
	cfg, _ := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	cfg.Session.DelayMillis = -1
	if err := config.Validate(cfg); err == nil {
		t.Error("expected error for negative session delay")
	}
}
