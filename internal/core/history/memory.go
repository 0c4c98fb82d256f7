package history

import (
	"context"
	"sync"

	"github.com/sadopc/qtrack/internal/core/record"
)

// MemoryStore keeps the log in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	limit   int
	records []record.QueryRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: normalizeLimit(limit)}
}

func (s *MemoryStore) Load(context.Context) ([]record.QueryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]record.QueryRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryStore) Append(_ context.Context, rec record.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	if len(s.records) > s.limit {
		// Copy so the evicted prefix can be collected.
		kept := Trim(s.records, s.limit)
		s.records = append([]record.QueryRecord(nil), kept...)
	}
	return nil
}

func (s *MemoryStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

func (s *MemoryStore) Close() error { return nil }
