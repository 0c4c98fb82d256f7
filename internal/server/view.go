package server

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sadopc/qtrack/internal/core/record"
	"github.com/sadopc/qtrack/internal/export"
	"github.com/sadopc/qtrack/internal/highlight"
)

//go:embed templates/queries.html
var templateFS embed.FS

var queriesTemplate = template.Must(template.ParseFS(templateFS, "templates/queries.html"))

type viewData struct {
	Count   int
	CSS     template.CSS
	Queries []viewRecord
}

type viewRecord struct {
	QueryID   string
	Method    string
	Path      string
	URL       string
	Timestamp string
	Ago       string
	ClientIP  string
	BodyKind  string
	Headers   []headerPair
	Params    template.HTML
	Body      template.HTML
	Curl      string
}

type headerPair struct {
	Name  string
	Value string
}

func newViewRecord(rec record.QueryRecord) viewRecord {
	v := viewRecord{
		QueryID:   rec.QueryID,
		Method:    rec.Method,
		Path:      rec.Path,
		URL:       rec.URL,
		Timestamp: rec.Timestamp,
		ClientIP:  rec.ClientIPString(),
		BodyKind:  "json",
		Curl:      export.AsCurl(rec),
	}
	if t, ok := rec.Time(); ok {
		v.Ago = humanize.Time(t)
	}
	if v.ClientIP == "" {
		v.ClientIP = "unknown"
	}
	if _, raw := rec.RawBody(); raw {
		v.BodyKind = "raw"
	} else if len(rec.Body) == 0 {
		v.BodyKind = "empty"
	}
	for _, k := range export.SortedKeys(rec.Headers) {
		v.Headers = append(v.Headers, headerPair{Name: k, Value: rec.Headers[k]})
	}

	params := rec.QueryParams
	if params == nil {
		params = map[string]string{}
	}
	// chroma escapes every token it emits.
	v.Params = template.HTML(highlight.HTML(highlight.PrettyJSON(params)))
	body := rec.Body
	if body == nil {
		body = map[string]any{}
	}
	v.Body = template.HTML(highlight.HTML(highlight.PrettyJSON(body)))
	return v
}

func (s *Server) handleView(c *gin.Context) {
	queries, count := s.service.List(c.Request.Context())

	data := viewData{
		Count:   count,
		CSS:     template.CSS(highlight.CSS()),
		Queries: make([]viewRecord, 0, count),
	}
	for i := len(queries) - 1; i >= 0; i-- {
		data.Queries = append(data.Queries, newViewRecord(queries[i]))
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := queriesTemplate.Execute(c.Writer, data); err != nil {
		s.log.Error("rendering queries page", zap.Error(err))
	}
}
