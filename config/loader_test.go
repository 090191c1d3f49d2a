package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type testConfig struct {
	Endpoint      string        `mapstructure:"endpoint"`
	Method        string        `mapstructure:"method"`
	StallInterval time.Duration `mapstructure:"stall_interval"`
	MaxRetries    int           `mapstructure:"max_retries"`
	Logger        struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logger"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
endpoint: https://example.com/events
method: POST
stall_interval: 45s
max_retries: 3
logger:
  level: debug
`)

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Endpoint != "https://example.com/events" {
		t.Errorf("endpoint = %q", cfg.Endpoint)
	}
	if cfg.Method != "POST" {
		t.Errorf("method = %q", cfg.Method)
	}
	if cfg.StallInterval != 45*time.Second {
		t.Errorf("stall_interval = %v", cfg.StallInterval)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("max_retries = %d", cfg.MaxRetries)
	}
	if cfg.Logger.Level != "debug" {
		t.Errorf("logger.level = %q", cfg.Logger.Level)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yml", `
endpoint: https://example.com/events
max_retries: 3
`)

	os.Setenv("SSEKIT_MAX_RETRIES", "7")
	os.Setenv("SSEKIT_LOGGER__LEVEL", "warn")
	defer os.Unsetenv("SSEKIT_MAX_RETRIES")
	defer os.Unsetenv("SSEKIT_LOGGER__LEVEL")

	var cfg testConfig
	if err := Load(path, &cfg); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.MaxRetries != 7 {
		t.Errorf("env override lost: max_retries = %d, want 7", cfg.MaxRetries)
	}
	if cfg.Logger.Level != "warn" {
		t.Errorf("nested env override lost: logger.level = %q, want warn", cfg.Logger.Level)
	}
	if cfg.Endpoint != "https://example.com/events" {
		t.Errorf("file value lost: endpoint = %q", cfg.Endpoint)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	var cfg testConfig
	if err := Load(filepath.Join(t.TempDir(), "absent.yml"), &cfg); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, ".env", "SSEKIT_TEST_TOKEN=abc123\n")
	defer os.Unsetenv("SSEKIT_TEST_TOKEN")

	if err := LoadEnv(path); err != nil {
		t.Fatalf("load env failed: %v", err)
	}
	if got := os.Getenv("SSEKIT_TEST_TOKEN"); got != "abc123" {
		t.Errorf("env not loaded: %q", got)
	}
}

func TestLoadEnv_MissingFileIsNotError(t *testing.T) {
	if err := LoadEnv(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Errorf("missing .env should be tolerated, got %v", err)
	}
}
