package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/sadopc/qtrack/internal/core/record"
)

// SQLiteStore keeps one row per record in a SQLite database.
type SQLiteStore struct {
	db    *sql.DB
	limit int
}

// NewSQLiteStore opens (or creates) the log database at dbPath.
func NewSQLiteStore(dbPath string, limit int) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, limit: normalizeLimit(limit)}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS queries (
			seq       INTEGER PRIMARY KEY AUTOINCREMENT,
			query_id  TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			method    TEXT NOT NULL,
			path      TEXT NOT NULL,
			document  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_queries_query_id ON queries(query_id);
	`)
	if err != nil {
		return fmt.Errorf("creating queries table: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) ([]record.QueryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT document FROM queries ORDER BY seq ASC`)
	if err != nil {
		return emptyLog(), fmt.Errorf("listing queries: %w", err)
	}
	defer rows.Close()

	log := emptyLog()
	malformed := 0
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return emptyLog(), fmt.Errorf("scanning query row: %w", err)
		}
		var rec record.QueryRecord
		if err := record.Decode([]byte(doc), &rec); err != nil {
			malformed++
			continue
		}
		log = append(log, rec)
	}
	if err := rows.Err(); err != nil {
		return emptyLog(), fmt.Errorf("iterating query rows: %w", err)
	}
	if malformed > 0 {
		return log, fmt.Errorf("%w: %d malformed rows", ErrCorrupt, malformed)
	}
	return log, nil
}

func (s *SQLiteStore) Append(ctx context.Context, rec record.QueryRecord) error {
	doc, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling query: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning append: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO queries (query_id, timestamp, method, path, document)
		VALUES (?, ?, ?, ?, ?)`,
		rec.QueryID, rec.Timestamp, rec.Method, rec.Path, string(doc),
	)
	if err != nil {
		return fmt.Errorf("inserting query: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM queries
		WHERE seq NOT IN (SELECT seq FROM queries ORDER BY seq DESC LIMIT ?)`,
		s.limit,
	)
	if err != nil {
		return fmt.Errorf("trimming queries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing append: %w", err)
	}
	return nil
}

// Clear removes all records.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM queries"); err != nil {
		return fmt.Errorf("clearing queries: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
