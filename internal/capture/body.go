package capture

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/url"
	"strings"

	"github.com/sadopc/qtrack/internal/core/record"
)

// BodyKind tags which parse stage produced a body.
type BodyKind int

const (
	BodyEmpty BodyKind = iota
	BodyJSON
	BodyForm
	BodyRaw
)

func (k BodyKind) String() string {
	switch k {
	case BodyEmpty:
		return "empty"
	case BodyJSON:
		return "json"
	case BodyForm:
		return "form"
	case BodyRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// BodyResult is the outcome of ParseBody.
type BodyResult struct {
	Kind   BodyKind
	Fields map[string]any
}

const maxMultipartMemory = 32 << 20

type bodyStage struct {
	kind  BodyKind
	parse func(contentType string, payload []byte) (map[string]any, bool)
}

// Stages are tried in order; raw capture is the final fallback.
var bodyStages = []bodyStage{
	{BodyEmpty, parseEmpty},
	{BodyJSON, parseJSONObject},
	{BodyForm, parseForm},
}

// ParseBody turns a request payload into a record body. It never fails: the
// last resort is {"raw_body": text} with invalid UTF-8 replaced.
func ParseBody(contentType string, payload []byte) BodyResult {
	for _, stage := range bodyStages {
		if fields, ok := runStage(stage, contentType, payload); ok {
			return BodyResult{Kind: stage.kind, Fields: fields}
		}
	}
	return BodyResult{
		Kind:   BodyRaw,
		Fields: map[string]any{record.RawBodyKey: strings.ToValidUTF8(string(payload), "\uFFFD")},
	}
}

func runStage(stage bodyStage, contentType string, payload []byte) (fields map[string]any, ok bool) {
	defer func() {
		if recover() != nil {
			fields, ok = nil, false
		}
	}()
	return stage.parse(contentType, payload)
}

func parseEmpty(_ string, payload []byte) (map[string]any, bool) {
	if len(bytes.TrimSpace(payload)) != 0 {
		return nil, false
	}
	return map[string]any{}, true
}

func parseJSONObject(_ string, payload []byte) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil, false
	}
	// Reject trailing data such as `{"a":1} {"b":2}`.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return fields, true
}

func parseForm(contentType string, payload []byte) (map[string]any, bool) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return nil, false
	}

	switch mediaType {
	case "application/x-www-form-urlencoded":
		values, err := url.ParseQuery(string(payload))
		if err != nil {
			return nil, false
		}
		fields := make(map[string]any, len(values))
		for k, vs := range values {
			fields[k] = vs[len(vs)-1]
		}
		return fields, true

	case "multipart/form-data":
		boundary := params["boundary"]
		if boundary == "" {
			return nil, false
		}
		form, err := multipart.NewReader(bytes.NewReader(payload), boundary).ReadForm(maxMultipartMemory)
		if err != nil {
			return nil, false
		}
		defer form.RemoveAll()

		fields := make(map[string]any, len(form.Value)+len(form.File))
		for k, vs := range form.Value {
			if len(vs) > 0 {
				fields[k] = vs[len(vs)-1]
			}
		}
		// Uploaded files are recorded by name only.
		for k, fhs := range form.File {
			if len(fhs) > 0 {
				fields[k] = fhs[len(fhs)-1].Filename
			}
		}
		return fields, true
	}
	return nil, false
}
