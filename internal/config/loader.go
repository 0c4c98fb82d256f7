package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath returns ~/.config/qtrack/config.yaml, or "" when the home
// directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "qtrack", "config.yaml")
}

// Load reads the YAML file at path (DefaultPath when empty) over the
// defaults, then applies QTRACK_* environment overrides. A missing or
// invalid file leaves the defaults in place.
func Load(path string) Config {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			fileCfg := DefaultConfig()
			if yaml.Unmarshal(data, &fileCfg) == nil {
				cfg = fileCfg
			}
		}
	}

	applyEnv(&cfg)
	return cfg
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = envString("QTRACK_HOST", cfg.Server.Host)
	cfg.Server.Port = envInt("QTRACK_PORT", cfg.Server.Port)
	cfg.Server.ShutdownTimeout = envDuration("QTRACK_SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout)
	cfg.Store.Backend = envString("QTRACK_STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.Path = envString("QTRACK_STORE_PATH", cfg.Store.Path)
	cfg.Store.MaxRecords = envInt("QTRACK_MAX_RECORDS", cfg.Store.MaxRecords)
	cfg.Store.Redis.Addr = envString("QTRACK_REDIS_ADDR", cfg.Store.Redis.Addr)
	cfg.Store.Redis.Password = envString("QTRACK_REDIS_PASSWORD", cfg.Store.Redis.Password)
	cfg.Store.Redis.DB = envInt("QTRACK_REDIS_DB", cfg.Store.Redis.DB)
	cfg.Store.Redis.Key = envString("QTRACK_REDIS_KEY", cfg.Store.Redis.Key)
	cfg.Capture.MaxBodyBytes = int64(envInt("QTRACK_MAX_BODY_BYTES", int(cfg.Capture.MaxBodyBytes)))
	cfg.Logging.Level = envString("QTRACK_LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Encoding = envString("QTRACK_LOG_ENCODING", cfg.Logging.Encoding)
	cfg.Theme = envString("QTRACK_THEME", cfg.Theme)
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
