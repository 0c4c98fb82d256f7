package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"
)

// TimestampLayout is the ISO-8601 layout used for QueryRecord.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

// RawBodyKey holds the undecoded payload when no structured parse succeeded.
const RawBodyKey = "raw_body"

// QueryRecord is one captured request.
type QueryRecord struct {
	QueryID     string            `json:"query_id"`
	Timestamp   string            `json:"timestamp"`
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        map[string]any    `json:"body"`
	ClientIP    *string           `json:"client_ip"`
	URL         string            `json:"url"`
}

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// Time parses the record timestamp.
func (r QueryRecord) Time() (time.Time, bool) {
	t, err := time.Parse(TimestampLayout, r.Timestamp)
	if err != nil {
		// Accept anything RFC 3339 shaped written by other tools.
		t, err = time.Parse(time.RFC3339Nano, r.Timestamp)
		if err != nil {
			return time.Time{}, false
		}
	}
	return t, true
}

// RawBody returns the raw payload text if the body fell back to raw capture.
func (r QueryRecord) RawBody() (string, bool) {
	if len(r.Body) != 1 {
		return "", false
	}
	s, ok := r.Body[RawBodyKey].(string)
	return s, ok
}

// Header returns a header value by case-insensitive name.
func (r QueryRecord) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// ClientIPString returns the client ip or an empty string.
func (r QueryRecord) ClientIPString() string {
	if r.ClientIP == nil {
		return ""
	}
	return *r.ClientIP
}

// Decode unmarshals a stored record or log into v. Numbers in bodies are
// kept as json.Number so they survive a store round-trip unchanged.
func Decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after JSON value")
	}
	return nil
}
