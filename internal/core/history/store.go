package history

import (
	"context"
	"errors"

	"github.com/sadopc/qtrack/internal/core/record"
)

// DefaultLimit is the maximum number of records a log retains.
const DefaultLimit = 100

var (
	// ErrCorrupt reports a persisted log that could not be decoded.
	ErrCorrupt = errors.New("history: corrupt log")
	// ErrUnknownBackend reports an unsupported store backend name.
	ErrUnknownBackend = errors.New("history: unknown backend")
)

// Store persists the bounded query log.
//
// Load never returns a nil slice. A missing log is empty with a nil error;
// an unreadable or malformed log is returned as whatever could be recovered
// (usually nothing) together with a non-nil error. Append keeps only the
// newest records once the limit is exceeded. Clear replaces the log with an
// empty one regardless of its prior state.
type Store interface {
	Load(ctx context.Context) ([]record.QueryRecord, error)
	Append(ctx context.Context, rec record.QueryRecord) error
	Clear(ctx context.Context) error
	Close() error
}

// Trim keeps the newest limit records of log in their original order.
func Trim(log []record.QueryRecord, limit int) []record.QueryRecord {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(log) <= limit {
		return log
	}
	return log[len(log)-limit:]
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}

func emptyLog() []record.QueryRecord {
	return []record.QueryRecord{}
}
