package har

import (
	"encoding/json"
	"testing"

	"github.com/sadopc/qtrack/internal/core/record"
	"github.com/sadopc/qtrack/internal/query"
)

func sampleRecords() []record.QueryRecord {
	ip := "127.0.0.1"
	return []record.QueryRecord{
		{
			QueryID:     "id-1",
			Timestamp:   "2026-10-17T09:30:00.123456+02:00",
			Method:      "GET",
			Path:        "/track-query",
			Headers:     map[string]string{"Host": "localhost:8000", "Accept": "*/*"},
			QueryParams: map[string]string{"x": "5"},
			Body:        map[string]any{},
			ClientIP:    &ip,
			URL:         "http://localhost:8000/track-query?x=5",
		},
		{
			QueryID:     "id-2",
			Timestamp:   "2026-10-17T09:31:00.000000+02:00",
			Method:      "POST",
			Path:        "/track-query",
			Headers:     map[string]string{"Content-Type": "application/json"},
			QueryParams: map[string]string{"a": "1"},
			Body:        map[string]any{"q": "hello"},
			URL:         "http://localhost:8000/track-query?a=1",
		},
	}
}

func TestExport(t *testing.T) {
	data, err := Export(sampleRecords(), "1.2.3")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var har HAR
	if err := json.Unmarshal(data, &har); err != nil {
		t.Fatalf("exported HAR is not valid JSON: %v", err)
	}

	if har.Log.Version != "1.2" {
		t.Errorf("expected version 1.2, got %s", har.Log.Version)
	}
	if har.Log.Creator.Name != "qtrack" || har.Log.Creator.Version != "1.2.3" {
		t.Errorf("unexpected creator %+v", har.Log.Creator)
	}
	if len(har.Log.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(har.Log.Entries))
	}

	get := har.Log.Entries[0]
	if get.Comment != "id-1" {
		t.Errorf("expected comment id-1, got %s", get.Comment)
	}
	if get.StartedDateTime != "2026-10-17T09:30:00.123456+02:00" {
		t.Errorf("unexpected startedDateTime %s", get.StartedDateTime)
	}
	if get.Request.PostData != nil {
		t.Error("GET entry should have no postData")
	}
	if len(get.Request.Headers) != 2 || get.Request.Headers[0].Name != "Accept" {
		t.Errorf("headers should be sorted, got %+v", get.Request.Headers)
	}
	if len(get.Request.QueryString) != 1 || get.Request.QueryString[0] != (HARQuery{Name: "x", Value: "5"}) {
		t.Errorf("unexpected queryString %+v", get.Request.QueryString)
	}
	if get.Timings.DNS != -1 {
		t.Errorf("expected DNS=-1, got %f", get.Timings.DNS)
	}

	post := har.Log.Entries[1]
	if post.Request.Method != "POST" {
		t.Errorf("expected POST, got %s", post.Request.Method)
	}
	if post.Request.PostData == nil {
		t.Fatal("expected PostData")
	}
	if post.Request.PostData.Text != `{"q":"hello"}` || post.Request.PostData.MimeType != "application/json" {
		t.Errorf("unexpected postData %+v", post.Request.PostData)
	}

	if post.Response.Status != 200 {
		t.Errorf("expected 200, got %d", post.Response.Status)
	}
	var ack map[string]any
	if err := json.Unmarshal([]byte(post.Response.Content.Text), &ack); err != nil {
		t.Fatalf("response content is not JSON: %v", err)
	}
	if ack["message"] != query.TrackedMessage || ack["query_id"] != "id-2" {
		t.Errorf("unexpected ack %v", ack)
	}
	if _, ok := ack["body"]; !ok {
		t.Error("POST ack should echo the body")
	}
}

func TestExportEmpty(t *testing.T) {
	data, err := Export(nil, "dev")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var raw map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal("not valid JSON object")
	}
	if string(raw["log"]["entries"]) != "[]" {
		t.Errorf("entries should be an empty array, got %s", raw["log"]["entries"])
	}
}
