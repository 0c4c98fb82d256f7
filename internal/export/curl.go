package export

import (
	"fmt"
	"mime"
	"net/http"
	"strings"

	"github.com/sadopc/qtrack/internal/core/record"
)

// Headers the transport recomputes on replay.
var skipHeaders = map[string]bool{
	"Host":           true,
	"Content-Length": true,
}

// AsCurl converts a captured record to a curl command string.
func AsCurl(rec record.QueryRecord) string {
	var parts []string
	parts = append(parts, "curl")

	method := strings.ToUpper(rec.Method)
	if method != "" && method != http.MethodGet {
		parts = append(parts, "-X", method)
	}

	body, bodyType := Payload(rec)

	for _, k := range SortedKeys(rec.Headers) {
		name := http.CanonicalHeaderKey(k)
		if skipHeaders[name] {
			continue
		}
		value := rec.Headers[k]
		// A multipart body is replayed as JSON, so its boundary header goes too.
		if name == "Content-Type" && body != "" && !sameMediaType(value, bodyType) {
			value = bodyType
		}
		parts = append(parts, "-H", quote(fmt.Sprintf("%s: %s", k, value)))
	}

	if body != "" {
		if rec.Header("Content-Type") == "" {
			if _, isRaw := rec.RawBody(); !isRaw {
				parts = append(parts, "-H", quote("Content-Type: application/json"))
			}
		}
		parts = append(parts, "-d", quote(body))
	}

	parts = append(parts, quote(rec.URL))
	return strings.Join(parts, " ")
}

func sameMediaType(a, b string) bool {
	ma, _, errA := mime.ParseMediaType(a)
	mb, _, errB := mime.ParseMediaType(b)
	if errA != nil || errB != nil {
		return strings.EqualFold(a, b)
	}
	return ma == mb
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
