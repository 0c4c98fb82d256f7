package capture

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"testing"

	"github.com/sadopc/qtrack/internal/core/record"
)

func TestParseBody(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		payload     string
		wantKind    BodyKind
		wantFields  map[string]any
	}{
		{"empty", "", "", BodyEmpty, map[string]any{}},
		{"whitespace", "text/plain", "  \n\t", BodyEmpty, map[string]any{}},
		{"json object", "application/json", `{"q":"hello"}`, BodyJSON, map[string]any{"q": "hello"}},
		{"json without content type", "", `{"q":"hello"}`, BodyJSON, map[string]any{"q": "hello"}},
		{"json number kept exact", "application/json", `{"id":12345678901234567890}`, BodyJSON, map[string]any{"id": json.Number("12345678901234567890")}},
		{"json array falls through to raw", "application/json", `[1,2,3]`, BodyRaw, map[string]any{record.RawBodyKey: "[1,2,3]"}},
		{"json null falls through to raw", "application/json", `null`, BodyRaw, map[string]any{record.RawBodyKey: "null"}},
		{"json trailing data falls through", "application/json", `{"a":"1"} {"b":"2"}`, BodyRaw, map[string]any{record.RawBodyKey: `{"a":"1"} {"b":"2"}`}},
		{"urlencoded form", "application/x-www-form-urlencoded", "a=1&b=2", BodyForm, map[string]any{"a": "1", "b": "2"}},
		{"urlencoded last wins", "application/x-www-form-urlencoded; charset=utf-8", "a=1&a=2", BodyForm, map[string]any{"a": "2"}},
		{"bad urlencoded falls to raw", "application/x-www-form-urlencoded", "a=%zz", BodyRaw, map[string]any{record.RawBodyKey: "a=%zz"}},
		{"form-looking text without form content type", "text/plain", "a=1", BodyRaw, map[string]any{record.RawBodyKey: "a=1"}},
		{"multipart without boundary", "multipart/form-data", "x", BodyRaw, map[string]any{record.RawBodyKey: "x"}},
		{"plain text", "text/plain", "hello world", BodyRaw, map[string]any{record.RawBodyKey: "hello world"}},
		{"invalid utf8 replaced", "application/octet-stream", "ok\xff\xfeok", BodyRaw, map[string]any{record.RawBodyKey: "ok\uFFFDok"}},
		{"garbage content type", "%%%", "data", BodyRaw, map[string]any{record.RawBodyKey: "data"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseBody(tt.contentType, []byte(tt.payload))
			if got.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", got.Kind, tt.wantKind)
			}
			if len(got.Fields) != len(tt.wantFields) {
				t.Fatalf("fields = %#v, want %#v", got.Fields, tt.wantFields)
			}
			for k, want := range tt.wantFields {
				if got.Fields[k] != want {
					t.Errorf("field %q = %#v, want %#v", k, got.Fields[k], want)
				}
			}
		})
	}
}

func TestParseBody_Multipart(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	w.WriteField("name", "first")
	w.WriteField("name", "second")
	fw, err := w.CreateFormFile("upload", "report.csv")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("a,b\n1,2\n"))
	w.Close()

	got := ParseBody(w.FormDataContentType(), buf.Bytes())
	if got.Kind != BodyForm {
		t.Fatalf("kind = %s, want form", got.Kind)
	}
	if got.Fields["name"] != "second" {
		t.Errorf("name = %v, want last value", got.Fields["name"])
	}
	if got.Fields["upload"] != "report.csv" {
		t.Errorf("upload = %v, want file name", got.Fields["upload"])
	}
}

func TestParseBody_BinaryNeverFails(t *testing.T) {
	payload := make([]byte, 256)
	for i := range payload {
		payload[i] = byte(i)
	}

	for _, ct := range []string{"", "application/json", "application/x-www-form-urlencoded", "multipart/form-data; boundary=zz", "image/png"} {
		got := ParseBody(ct, payload)
		if got.Fields == nil {
			t.Fatalf("content type %q: nil fields", ct)
		}
		if got.Kind != BodyRaw && got.Kind != BodyForm {
			t.Errorf("content type %q: kind = %s", ct, got.Kind)
		}
	}
}

func TestBodyKindString(t *testing.T) {
	want := map[BodyKind]string{BodyEmpty: "empty", BodyJSON: "json", BodyForm: "form", BodyRaw: "raw", BodyKind(42): "unknown"}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d.String() = %q, want %q", int(k), k.String(), s)
		}
	}
}
