package har

import (
	"encoding/json"
	"time"

	"github.com/sadopc/qtrack/internal/core/record"
	"github.com/sadopc/qtrack/internal/export"
	"github.com/sadopc/qtrack/internal/query"
)

// HAR represents the HAR 1.2 format for export.
type HAR struct {
	Log HARLog `json:"log"`
}

// HARLog is the top-level log object.
type HARLog struct {
	Version string     `json:"version"`
	Creator HARCreator `json:"creator"`
	Entries []HAREntry `json:"entries"`
}

// HARCreator identifies the tool that created the HAR.
type HARCreator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HAREntry represents a single request/response pair.
type HAREntry struct {
	StartedDateTime string      `json:"startedDateTime"`
	Time            float64     `json:"time"`
	Request         HARRequest  `json:"request"`
	Response        HARResponse `json:"response"`
	Cache           struct{}    `json:"cache"`
	Timings         HARTimings  `json:"timings"`
	Comment         string      `json:"comment,omitempty"`
}

// HARRequest is the request portion of an entry.
type HARRequest struct {
	Method      string       `json:"method"`
	URL         string       `json:"url"`
	HTTPVersion string       `json:"httpVersion"`
	Cookies     []HARHeader  `json:"cookies"`
	Headers     []HARHeader  `json:"headers"`
	QueryString []HARQuery   `json:"queryString"`
	PostData    *HARPostData `json:"postData,omitempty"`
	HeadersSize int          `json:"headersSize"`
	BodySize    int          `json:"bodySize"`
}

// HARResponse is the response portion of an entry.
type HARResponse struct {
	Status      int         `json:"status"`
	StatusText  string      `json:"statusText"`
	HTTPVersion string      `json:"httpVersion"`
	Cookies     []HARHeader `json:"cookies"`
	Headers     []HARHeader `json:"headers"`
	Content     HARContent  `json:"content"`
	RedirectURL string      `json:"redirectURL"`
	HeadersSize int         `json:"headersSize"`
	BodySize    int         `json:"bodySize"`
}

// HARHeader is a name/value pair for headers.
type HARHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HARQuery is a name/value pair for query string parameters.
type HARQuery struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// HARPostData is the body of a request.
type HARPostData struct {
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// HARContent is the body of a response.
type HARContent struct {
	Size     int    `json:"size"`
	MimeType string `json:"mimeType"`
	Text     string `json:"text"`
}

// HARTimings holds timing info for an entry. Captured records carry no
// timing, so only the mandatory fields are set.
type HARTimings struct {
	DNS     float64 `json:"dns"`
	Connect float64 `json:"connect"`
	SSL     float64 `json:"ssl"`
	Send    float64 `json:"send"`
	Wait    float64 `json:"wait"`
	Receive float64 `json:"receive"`
}

// Export creates a HAR 1.2 document with one entry per record, oldest first.
func Export(records []record.QueryRecord, version string) ([]byte, error) {
	entries := make([]HAREntry, 0, len(records))
	for _, rec := range records {
		entry, err := buildEntry(rec)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	har := HAR{
		Log: HARLog{
			Version: "1.2",
			Creator: HARCreator{Name: "qtrack", Version: version},
			Entries: entries,
		},
	}

	return json.MarshalIndent(har, "", "  ")
}

func buildEntry(rec record.QueryRecord) (HAREntry, error) {
	started := rec.Timestamp
	if t, ok := rec.Time(); ok {
		started = t.Format(time.RFC3339Nano)
	}

	resp, err := buildHARResponse(rec)
	if err != nil {
		return HAREntry{}, err
	}

	return HAREntry{
		StartedDateTime: started,
		Request:         buildHARRequest(rec),
		Response:        resp,
		Timings:         HARTimings{DNS: -1, Connect: -1, SSL: -1},
		Comment:         rec.QueryID,
	}, nil
}

func buildHARRequest(rec record.QueryRecord) HARRequest {
	harReq := HARRequest{
		Method:      rec.Method,
		URL:         rec.URL,
		HTTPVersion: "HTTP/1.1",
		Cookies:     []HARHeader{},
		Headers:     []HARHeader{},
		QueryString: []HARQuery{},
		HeadersSize: -1,
		BodySize:    0,
	}

	for _, k := range export.SortedKeys(rec.Headers) {
		harReq.Headers = append(harReq.Headers, HARHeader{Name: k, Value: rec.Headers[k]})
	}

	for _, k := range export.SortedKeys(rec.QueryParams) {
		harReq.QueryString = append(harReq.QueryString, HARQuery{Name: k, Value: rec.QueryParams[k]})
	}

	if body, mimeType := export.Payload(rec); body != "" {
		harReq.PostData = &HARPostData{MimeType: mimeType, Text: body}
		harReq.BodySize = len(body)
	}

	return harReq
}

func buildHARResponse(rec record.QueryRecord) (HARResponse, error) {
	params := rec.QueryParams
	if params == nil {
		params = map[string]string{}
	}
	ack := map[string]any{
		"message":      query.TrackedMessage,
		"query_id":     rec.QueryID,
		"timestamp":    rec.Timestamp,
		"query_params": params,
	}
	if rec.Method != "GET" {
		ack["body"] = rec.Body
	}
	text, err := json.Marshal(ack)
	if err != nil {
		return HARResponse{}, err
	}

	return HARResponse{
		Status:      200,
		StatusText:  "OK",
		HTTPVersion: "HTTP/1.1",
		Cookies:     []HARHeader{},
		Headers:     []HARHeader{{Name: "Content-Type", Value: "application/json"}},
		Content: HARContent{
			Size:     len(text),
			MimeType: "application/json",
			Text:     string(text),
		},
		HeadersSize: -1,
		BodySize:    len(text),
	}, nil
}
