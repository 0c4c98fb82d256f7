package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sadopc/qtrack/internal/config"
	"github.com/sadopc/qtrack/internal/core/history"
)

// storeFlags are shared by every command that opens the log.
type storeFlags struct {
	config  *string
	backend *string
	data    *string
}

func addStoreFlags(fs *flag.FlagSet) storeFlags {
	return storeFlags{
		config:  fs.String("config", "", "Config file (default ~/.config/qtrack/config.yaml)"),
		backend: fs.String("backend", "", "Store backend: file, sqlite, redis, memory"),
		data:    fs.String("data", "", "Log file or database path"),
	}
}

// load reads the config and applies flag overrides.
func (f storeFlags) load() config.Config {
	cfg := config.Load(*f.config)
	if *f.backend != "" {
		cfg.Store.Backend = *f.backend
	}
	if *f.data != "" {
		cfg.Store.Path = *f.data
	}
	return cfg
}

func storeOptions(cfg config.Config) history.Options {
	return history.Options{
		Backend: cfg.Store.Backend,
		Path:    cfg.Store.Path,
		Limit:   cfg.Store.MaxRecords,
		Redis: history.RedisOptions{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
			Key:      cfg.Store.Redis.Key,
		},
	}
}

// mustOpenStore validates cfg and opens its store, exiting on failure.
func mustOpenStore(ctx context.Context, cfg config.Config) history.Store {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	store, err := history.Open(ctx, storeOptions(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
		os.Exit(1)
	}
	return store
}
