package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Options selects and configures a Store backend.
type Options struct {
	Backend string
	// Path is the JSON document for the file backend and the database file
	// for the sqlite backend.
	Path  string
	Limit int
	Redis RedisOptions
}

// Open creates the Store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendFile:
		return NewFileStore(opts.Path, opts.Limit), nil
	case BackendSQLite:
		if opts.Path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(opts.Path), 0755); err != nil {
				return nil, fmt.Errorf("creating history dir: %w", err)
			}
		}
		return NewSQLiteStore(opts.Path, opts.Limit)
	case BackendRedis:
		client, err := DialRedis(ctx, opts.Redis)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, opts.Redis.Key, opts.Limit), nil
	case BackendMemory:
		return NewMemoryStore(opts.Limit), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
