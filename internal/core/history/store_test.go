package history

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	"github.com/sadopc/qtrack/internal/core/record"
)

func testRecord(i int) record.QueryRecord {
	return record.QueryRecord{
		QueryID:     fmt.Sprintf("id-%03d", i),
		Timestamp:   fmt.Sprintf("2026-01-01T00:00:%02d.000000Z", i%60),
		Method:      "POST",
		Path:        "/track-query",
		Headers:     map[string]string{"Content-Type": "application/json"},
		QueryParams: map[string]string{"n": fmt.Sprint(i)},
		Body:        map[string]any{"n": json.Number(fmt.Sprint(i))},
		URL:         fmt.Sprintf("http://localhost:8000/track-query?n=%d", i),
	}
}

// runStoreContract exercises the behaviour every backend shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T, limit int) Store) {
	ctx := context.Background()

	t.Run("empty load", func(t *testing.T) {
		s := newStore(t, DefaultLimit)
		log, err := s.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if log == nil {
			t.Fatal("Load returned nil slice")
		}
		if len(log) != 0 {
			t.Fatalf("expected empty log, got %d records", len(log))
		}
	})

	t.Run("append round trip", func(t *testing.T) {
		s := newStore(t, DefaultLimit)
		for i := 0; i < 3; i++ {
			if err := s.Append(ctx, testRecord(i)); err != nil {
				t.Fatal(err)
			}
		}
		log, err := s.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(log) != 3 {
			t.Fatalf("expected 3 records, got %d", len(log))
		}
		for i, rec := range log {
			if rec.QueryID != testRecord(i).QueryID {
				t.Errorf("record %d: got %s, want insertion order", i, rec.QueryID)
			}
		}
		last := log[len(log)-1]
		if last.Body["n"] != json.Number("2") || last.QueryParams["n"] != "2" {
			t.Errorf("last record fields not preserved: %+v", last)
		}
	})

	t.Run("body values survive round trip", func(t *testing.T) {
		s := newStore(t, DefaultLimit)
		bodies := map[string]map[string]any{
			"integers above 2^53": {
				"n":  json.Number("12345678901234567890"),
				"id": json.Number("9007199254740993"),
			},
			"nested": {
				"user": map[string]any{
					"id":    json.Number("9007199254740993"),
					"tags":  []any{"a", json.Number("1.5"), nil, true},
					"extra": map[string]any{},
				},
			},
			"raw": {record.RawBodyKey: "not json"},
		}
		for name, body := range bodies {
			rec := testRecord(0)
			rec.QueryID = name
			rec.Body = body
			if err := s.Append(ctx, rec); err != nil {
				t.Fatal(err)
			}
		}

		log, err := s.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(log) != len(bodies) {
			t.Fatalf("expected %d records, got %d", len(bodies), len(log))
		}
		for _, rec := range log {
			if want := bodies[rec.QueryID]; !reflect.DeepEqual(rec.Body, want) {
				t.Errorf("%s: body = %#v, want %#v", rec.QueryID, rec.Body, want)
			}
		}
	})

	t.Run("cap evicts oldest", func(t *testing.T) {
		s := newStore(t, DefaultLimit)
		for i := 0; i < 105; i++ {
			if err := s.Append(ctx, testRecord(i)); err != nil {
				t.Fatal(err)
			}
		}
		log, err := s.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(log) != 100 {
			t.Fatalf("expected 100 records, got %d", len(log))
		}
		if log[0].QueryID != "id-005" {
			t.Errorf("first retained = %s, want id-005", log[0].QueryID)
		}
		if log[99].QueryID != "id-104" {
			t.Errorf("last retained = %s, want id-104", log[99].QueryID)
		}
	})

	t.Run("custom limit", func(t *testing.T) {
		s := newStore(t, 3)
		for i := 0; i < 5; i++ {
			if err := s.Append(ctx, testRecord(i)); err != nil {
				t.Fatal(err)
			}
		}
		log, _ := s.Load(ctx)
		if len(log) != 3 || log[0].QueryID != "id-002" {
			t.Fatalf("unexpected log after limit 3: %d records", len(log))
		}
	})

	t.Run("clear", func(t *testing.T) {
		s := newStore(t, DefaultLimit)
		for i := 0; i < 4; i++ {
			if err := s.Append(ctx, testRecord(i)); err != nil {
				t.Fatal(err)
			}
		}
		if err := s.Clear(ctx); err != nil {
			t.Fatal(err)
		}
		log, err := s.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if len(log) != 0 {
			t.Errorf("expected 0 records after clear, got %d", len(log))
		}

		// Clearing an already empty log is fine.
		if err := s.Clear(ctx); err != nil {
			t.Fatal(err)
		}
	})
}

func TestTrim(t *testing.T) {
	build := func(n int) []record.QueryRecord {
		var log []record.QueryRecord
		for i := 0; i < n; i++ {
			log = append(log, testRecord(i))
		}
		return log
	}

	for _, n := range []int{0, 1, 99, 100, 101, 250} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			got := Trim(build(n), DefaultLimit)
			want := n
			if want > DefaultLimit {
				want = DefaultLimit
			}
			if len(got) != want {
				t.Fatalf("len = %d, want %d", len(got), want)
			}
			for i, rec := range got {
				wantID := testRecord(n - want + i).QueryID
				if rec.QueryID != wantID {
					t.Fatalf("index %d = %s, want %s", i, rec.QueryID, wantID)
				}
			}
		})
	}

	if got := Trim(build(5), 0); len(got) != 5 {
		t.Errorf("non-positive limit should fall back to default, got %d", len(got))
	}
}

func TestMemoryStore(t *testing.T) {
	runStoreContract(t, func(t *testing.T, limit int) Store {
		return NewMemoryStore(limit)
	})
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(DefaultLimit)
	s.Append(ctx, testRecord(1))

	log, _ := s.Load(ctx)
	log[0].QueryID = "mutated"

	again, _ := s.Load(ctx)
	if again[0].QueryID != "id-001" {
		t.Errorf("store state leaked through Load: %s", again[0].QueryID)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		backend string
		want    string
	}{
		{"", "*history.FileStore"},
		{"file", "*history.FileStore"},
		{"FILE", "*history.FileStore"},
		{"memory", "*history.MemoryStore"},
		{"sqlite", "*history.SQLiteStore"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			path := dir + "/queries-" + tt.backend
			s, err := Open(ctx, Options{Backend: tt.backend, Path: path})
			if err != nil {
				t.Fatal(err)
			}
			defer s.Close()
			if got := fmt.Sprintf("%T", s); got != tt.want {
				t.Errorf("Open(%q) = %s, want %s", tt.backend, got, tt.want)
			}
		})
	}

	if _, err := Open(ctx, Options{Backend: "mongo"}); err == nil {
		t.Error("expected error for unknown backend")
	}
}
