package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/tidwall/pretty"

	"github.com/sadopc/qtrack/internal/core/record"
)

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// FileStore keeps the log as a single JSON array document.
//
// Every write replaces the whole document through a temporary file and a
// rename, so concurrent readers observe either the old or the new log.
// Writers in the same process are serialised; separate processes may still
// lose each other's updates.
type FileStore struct {
	mu    sync.Mutex
	path  string
	limit int
}

// NewFileStore creates a store backed by the JSON document at path. The file
// and its directory are created on first write.
func NewFileStore(path string, limit int) *FileStore {
	return &FileStore{path: path, limit: normalizeLimit(limit)}
}

// Path returns the document location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(context.Context) ([]record.QueryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) Append(_ context.Context, rec record.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A corrupt document is replaced by the new log.
	log, _ := s.read()
	log = Trim(append(log, rec), s.limit)
	return s.write(log)
}

func (s *FileStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write(emptyLog())
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read() ([]record.QueryRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return emptyLog(), nil
	}
	if err != nil {
		return emptyLog(), fmt.Errorf("reading log file: %w", err)
	}

	var log []record.QueryRecord
	if err := record.Decode(data, &log); err != nil {
		return emptyLog(), fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}
	if log == nil {
		log = emptyLog()
	}
	return log, nil
}

func (s *FileStore) write(log []record.QueryRecord) error {
	data, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("marshaling log: %w", err)
	}
	data = pretty.PrettyOptions(data, prettyOptions)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating log directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp log file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp log file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("syncing temp log file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp log file: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting log file mode: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing log file: %w", err)
	}
	return nil
}
