package export

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"sort"

	"github.com/sadopc/qtrack/internal/core/record"
)

// Payload rebuilds a request body from a captured record. It returns the
// body text and the content type it should be sent with; both are empty
// when the record carried no body.
func Payload(rec record.QueryRecord) (string, string) {
	if len(rec.Body) == 0 {
		return "", ""
	}
	contentType := rec.Header("Content-Type")

	if raw, ok := rec.RawBody(); ok {
		if contentType == "" {
			contentType = "text/plain"
		}
		return raw, contentType
	}

	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil &&
		mediaType == "application/x-www-form-urlencoded" {
		return encodeForm(rec.Body), contentType
	}

	data, err := json.Marshal(rec.Body)
	if err != nil {
		return "", ""
	}
	return string(data), "application/json"
}

func encodeForm(fields map[string]any) string {
	values := url.Values{}
	for k, v := range fields {
		if s, ok := v.(string); ok {
			values.Set(k, s)
			continue
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
