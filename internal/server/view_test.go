package server

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sadopc/qtrack/internal/core/history"
	"github.com/sadopc/qtrack/internal/core/record"
)

func TestViewEmpty(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv.Handler(), http.MethodGet, "/queries", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "0 total")
	assert.Contains(t, body, "No queries tracked yet")
	assert.Contains(t, body, `action="/clear-queries"`)
}

func TestViewListsRecordsNewestFirst(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	do(t, h, http.MethodGet, "/track-query?first=1", "", "")
	do(t, h, http.MethodPost, "/track-query?second=1", "application/json", `{"q":"<b>hello</b>"}`)

	body := do(t, h, http.MethodGet, "/queries", "", "").Body.String()
	assert.Contains(t, body, "2 total")
	assert.Contains(t, body, ".chroma")
	assert.Less(t, strings.Index(body, "second=1"), strings.Index(body, "first=1"))
	assert.NotContains(t, body, "<b>hello</b>")
	assert.Contains(t, body, "curl -X POST")
}

func TestNewViewRecord(t *testing.T) {
	store := history.NewMemoryStore(0)
	require.NoError(t, store.Append(context.Background(), record.QueryRecord{
		QueryID:   "abc",
		Timestamp: "not a time",
		Method:    "PATCH",
		Path:      "/track-query",
		Headers:   map[string]string{"X-B": "2", "X-A": "1"},
		Body:      map[string]any{"raw_body": "text"},
		URL:       "http://h/track-query",
	}))
	log, _ := store.Load(context.Background())

	v := newViewRecord(log[0])
	assert.Equal(t, "unknown", v.ClientIP)
	assert.Equal(t, "raw", v.BodyKind)
	assert.Empty(t, v.Ago)
	require.Len(t, v.Headers, 2)
	assert.Equal(t, "X-A", v.Headers[0].Name)
	assert.Contains(t, string(v.Params), "<pre")
}
