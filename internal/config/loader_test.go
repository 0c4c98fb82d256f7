package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	got := DefaultConfig()

	if got.Server.Addr() != "0.0.0.0:8000" {
		t.Fatalf("Server.Addr() = %q, want 0.0.0.0:8000", got.Server.Addr())
	}
	if got.Store.Backend != "file" || got.Store.Path != "data/queries.json" {
		t.Fatalf("Store = %#v", got.Store)
	}
	if got.Store.MaxRecords != 100 {
		t.Fatalf("MaxRecords = %d, want 100", got.Store.MaxRecords)
	}
	if got.Capture.MaxBodyBytes != 10<<20 {
		t.Fatalf("MaxBodyBytes = %d", got.Capture.MaxBodyBytes)
	}
	if got.Theme != "catppuccin-mocha" {
		t.Fatalf("Theme = %q, want catppuccin-mocha", got.Theme)
	}
	if err := got.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	return path
}

func TestLoadReturnsDefaultsWhenConfigMissing(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	got := Load("")
	want := DefaultConfig()

	if got != want {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
}

func TestLoadReadsDefaultPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, ".config", "qtrack")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: nord\n"), 0644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	if got := Load(""); got.Theme != "nord" {
		t.Fatalf("Theme = %q, want nord", got.Theme)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 9090
  shutdown_timeout: 2s
store:
  backend: redis
  max_records: 50
  redis:
    addr: cache:6379
    db: 3
logging:
  level: debug
theme: nord
`)

	got := Load(path)

	if got.Server.Addr() != "127.0.0.1:9090" {
		t.Fatalf("Addr = %q", got.Server.Addr())
	}
	if got.Server.ShutdownTimeout != 2*time.Second {
		t.Fatalf("ShutdownTimeout = %s, want 2s", got.Server.ShutdownTimeout)
	}
	if got.Store.Backend != "redis" || got.Store.MaxRecords != 50 {
		t.Fatalf("Store = %#v", got.Store)
	}
	if got.Store.Redis.Addr != "cache:6379" || got.Store.Redis.DB != 3 {
		t.Fatalf("Redis = %#v", got.Store.Redis)
	}
	// nested keys absent from the file keep their defaults
	if got.Store.Redis.Key != "qtrack:queries" {
		t.Fatalf("Redis.Key = %q, want default", got.Store.Redis.Key)
	}
	if got.Store.Path != "data/queries.json" {
		t.Fatalf("Path = %q, want default", got.Store.Path)
	}
	if got.Logging.Level != "debug" || got.Logging.Encoding != "json" {
		t.Fatalf("Logging = %#v", got.Logging)
	}
	if got.Theme != "nord" {
		t.Fatalf("Theme = %q, want nord", got.Theme)
	}
}

func TestLoadInvalidYAMLKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "server: [\n")

	got := Load(path)
	want := DefaultConfig()

	if got != want {
		t.Fatalf("Load() = %#v, want defaults %#v", got, want)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("QTRACK_PORT", "7000")
	t.Setenv("QTRACK_STORE_BACKEND", "sqlite")
	t.Setenv("QTRACK_STORE_PATH", "/tmp/q.db")
	t.Setenv("QTRACK_REDIS_DB", "not-a-number")
	t.Setenv("QTRACK_SHUTDOWN_TIMEOUT", "750ms")

	got := Load(path)

	if got.Server.Port != 7000 {
		t.Fatalf("Port = %d, want 7000", got.Server.Port)
	}
	if got.Store.Backend != "sqlite" || got.Store.Path != "/tmp/q.db" {
		t.Fatalf("Store = %#v", got.Store)
	}
	if got.Store.Redis.DB != 0 {
		t.Fatalf("Redis.DB = %d, want fallback 0", got.Store.Redis.DB)
	}
	if got.Server.ShutdownTimeout != 750*time.Millisecond {
		t.Fatalf("ShutdownTimeout = %s", got.Server.ShutdownTimeout)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port", func(c *Config) { c.Server.Port = 70000 }},
		{"max records", func(c *Config) { c.Store.MaxRecords = 0 }},
		{"max records above cap", func(c *Config) { c.Store.MaxRecords = 101 }},
		{"body cap", func(c *Config) { c.Capture.MaxBodyBytes = -1 }},
		{"backend", func(c *Config) { c.Store.Backend = "mongo" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("Validate() = nil, want error")
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Store.MaxRecords = 10
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() with a smaller cap = %v, want nil", err)
	}
}
