package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/sadopc/qtrack/internal/core/history"
)

// Config holds the application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Capture CaptureConfig `yaml:"capture"`
	Logging LoggingConfig `yaml:"logging"`
	Theme   string        `yaml:"theme"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Addr joins host and port into a listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type StoreConfig struct {
	Backend    string      `yaml:"backend"`
	Path       string      `yaml:"path"`
	MaxRecords int         `yaml:"max_records"`
	Redis      RedisConfig `yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type CaptureConfig struct {
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Encoding string `yaml:"encoding"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ShutdownTimeout: 5 * time.Second,
		},
		Store: StoreConfig{
			Backend:    "file",
			Path:       "data/queries.json",
			MaxRecords: 100,
			Redis: RedisConfig{
				Addr: "localhost:6379",
				Key:  "qtrack:queries",
			},
		},
		Capture: CaptureConfig{MaxBodyBytes: 10 << 20},
		Logging: LoggingConfig{Level: "info", Encoding: "json"},
		Theme:   "catppuccin-mocha",
	}
}

// Validate rejects values the server cannot start with.
func (c Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Store.MaxRecords <= 0 || c.Store.MaxRecords > history.DefaultLimit {
		return fmt.Errorf("store.max_records must be between 1 and %d, got %d", history.DefaultLimit, c.Store.MaxRecords)
	}
	if c.Capture.MaxBodyBytes <= 0 {
		return fmt.Errorf("capture.max_body_bytes must be positive, got %d", c.Capture.MaxBodyBytes)
	}
	switch c.Store.Backend {
	case "file", "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("store.backend %q is not one of file, sqlite, redis, memory", c.Store.Backend)
	}
	return nil
}
