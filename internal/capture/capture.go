package capture

import (
	"bytes"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/qtrack/internal/core/record"
)

// DefaultMaxBodyBytes caps how much of a request body is read.
const DefaultMaxBodyBytes = 10 << 20 // 10 MiB

// Capturer builds QueryRecords from inbound requests.
type Capturer struct {
	now          func() time.Time
	newID        func() string
	maxBodyBytes int64
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Capturer) { c.now = now }
}

// WithIDGenerator overrides query id generation.
func WithIDGenerator(newID func() string) Option {
	return func(c *Capturer) { c.newID = newID }
}

// WithMaxBodyBytes limits how many body bytes are read; n <= 0 keeps the
// default.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Capturer) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

// New creates a Capturer.
func New(opts ...Option) *Capturer {
	c := &Capturer{
		now:          time.Now,
		newID:        func() string { return uuid.New().String() },
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capture records r without reading its body. The record body is empty.
func (c *Capturer) Capture(r *http.Request) record.QueryRecord {
	return c.build(r, map[string]any{})
}

// CaptureWithBody records r and parses its body. The body is restored on r
// so later handlers can still read it.
func (c *Capturer) CaptureWithBody(r *http.Request) (record.QueryRecord, BodyResult) {
	payload := c.readBody(r)
	result := ParseBody(r.Header.Get("Content-Type"), payload)
	return c.build(r, result.Fields), result
}

func (c *Capturer) build(r *http.Request, body map[string]any) record.QueryRecord {
	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	return record.QueryRecord{
		QueryID:     c.newID(),
		Timestamp:   record.FormatTimestamp(c.now()),
		Method:      strings.ToUpper(r.Method),
		Path:        path,
		Headers:     flattenHeaders(r),
		QueryParams: QueryParams(r),
		Body:        body,
		ClientIP:    clientIP(r),
		URL:         fullURL(r),
	}
}

func (c *Capturer) readBody(r *http.Request) []byte {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	// ReadAll returns what it got before a failure; a short body is still
	// worth recording.
	payload, _ := io.ReadAll(io.LimitReader(r.Body, c.maxBodyBytes))
	r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(payload))
	return payload
}

// QueryParams flattens the query string of r; the last occurrence of a key
// wins.
func QueryParams(r *http.Request) map[string]string {
	values := r.URL.Query()
	params := make(map[string]string, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			params[k] = vs[len(vs)-1]
		}
	}
	return params
}

func flattenHeaders(r *http.Request) map[string]string {
	headers := make(map[string]string, len(r.Header)+1)
	for k, vs := range r.Header {
		if len(vs) > 0 {
			headers[k] = vs[len(vs)-1]
		}
	}
	// net/http moves Host out of the header map.
	if _, ok := headers["Host"]; !ok && r.Host != "" {
		headers["Host"] = r.Host
	}
	return headers
}

func clientIP(r *http.Request) *string {
	if r.RemoteAddr == "" {
		return nil
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return &host
}

func fullURL(r *http.Request) string {
	if r.URL.IsAbs() {
		return r.URL.String()
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
