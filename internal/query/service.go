package query

import (
	"context"

	"go.uber.org/zap"

	"github.com/sadopc/qtrack/internal/core/history"
	"github.com/sadopc/qtrack/internal/core/record"
)

// TrackedMessage acknowledges a capture.
const TrackedMessage = "Query tracked successfully"

// ClearedMessage acknowledges a clear.
const ClearedMessage = "All queries cleared successfully"

// Store operation names reported to the error hook.
const (
	OpLoad   = "load"
	OpAppend = "append"
	OpClear  = "clear"
)

// Ack is the body returned by Clear.
type Ack struct {
	Message string `json:"message"`
}

// Service exposes read, track and reset operations over a history.Store.
// Storage failures are logged and never returned to HTTP callers.
type Service struct {
	store   history.Store
	log     *zap.Logger
	onError func(op string, err error)
}

// Option configures a Service.
type Option func(*Service)

// WithErrorHook registers fn to observe storage failures.
func WithErrorHook(fn func(op string, err error)) Option {
	return func(s *Service) { s.onError = fn }
}

// NewService creates a Service. A nil logger disables logging.
func NewService(store history.Store, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{store: store, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the full log in insertion order and its length.
func (s *Service) List(ctx context.Context) ([]record.QueryRecord, int) {
	log, err := s.store.Load(ctx)
	if err != nil {
		s.fail(OpLoad, err)
	}
	if log == nil {
		log = []record.QueryRecord{}
	}
	return log, len(log)
}

// Track appends rec to the log. HTTP handlers ignore the returned error;
// it has already been logged.
func (s *Service) Track(ctx context.Context, rec record.QueryRecord) error {
	if err := s.store.Append(ctx, rec); err != nil {
		s.fail(OpAppend, err, zap.String("query_id", rec.QueryID))
		return err
	}
	s.log.Debug("query tracked",
		zap.String("query_id", rec.QueryID),
		zap.String("method", rec.Method),
		zap.String("path", rec.Path),
	)
	return nil
}

// Clear empties the log and always acknowledges success.
func (s *Service) Clear(ctx context.Context) Ack {
	if err := s.store.Clear(ctx); err != nil {
		s.fail(OpClear, err)
	}
	return Ack{Message: ClearedMessage}
}

func (s *Service) fail(op string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("op", op), zap.Error(err))
	if op == OpLoad {
		// Degraded reads are expected after corruption and recover on the
		// next write.
		s.log.Warn("query log read degraded", fields...)
	} else {
		s.log.Error("query log write failed", fields...)
	}
	if s.onError != nil {
		s.onError(op, err)
	}
}
