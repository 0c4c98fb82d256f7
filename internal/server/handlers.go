package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sadopc/qtrack/internal/core/record"
	"github.com/sadopc/qtrack/internal/export/har"
	"github.com/sadopc/qtrack/internal/query"
)

// TrackAck is the response to GET /track-query.
type TrackAck struct {
	Message     string            `json:"message"`
	QueryID     string            `json:"query_id"`
	Timestamp   string            `json:"timestamp"`
	QueryParams map[string]string `json:"query_params"`
}

// TrackBodyAck is the response to POST, PUT and PATCH /track-query.
type TrackBodyAck struct {
	TrackAck
	Body map[string]any `json:"body"`
}

// ListResponse is the response to GET /api/queries.
type ListResponse struct {
	Queries []record.QueryRecord `json:"queries"`
	Count   int                  `json:"count"`
}

func newTrackAck(rec record.QueryRecord) TrackAck {
	params := rec.QueryParams
	if params == nil {
		params = map[string]string{}
	}
	return TrackAck{
		Message:     query.TrackedMessage,
		QueryID:     rec.QueryID,
		Timestamp:   rec.Timestamp,
		QueryParams: params,
	}
}

func (s *Server) handleTrackGET(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	rec := s.capturer.Capture(r)
	s.metrics.Captured(rec.Method)
	_ = s.service.Track(r.Context(), rec)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(newTrackAck(rec)); err != nil {
		s.log.Warn("writing response", zap.Error(err))
	}

	logAccess(s.log, r.Method, r.URL.Path, http.StatusOK, time.Since(start), rec.ClientIPString())
}

func (s *Server) handleTrack(c *gin.Context) {
	rec, body := s.capturer.CaptureWithBody(c.Request)
	s.metrics.Captured(rec.Method)
	_ = s.service.Track(c.Request.Context(), rec)

	c.Set(bodyKindKey, body.Kind.String())
	c.JSON(http.StatusOK, TrackBodyAck{
		TrackAck: newTrackAck(rec),
		Body:     rec.Body,
	})
}

func (s *Server) handleList(c *gin.Context) {
	queries, count := s.service.List(c.Request.Context())
	c.JSON(http.StatusOK, ListResponse{Queries: queries, Count: count})
}

func (s *Server) handleClear(c *gin.Context) {
	ack := s.service.Clear(c.Request.Context())
	s.metrics.Cleared()
	c.JSON(http.StatusOK, ack)
}

func (s *Server) handleHAR(c *gin.Context) {
	queries, _ := s.service.List(c.Request.Context())
	data, err := har.Export(queries, s.version)
	if err != nil {
		s.log.Error("exporting har", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="queries.har"`)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func (s *Server) handleMetrics(c *gin.Context) {
	queries, _ := s.service.List(c.Request.Context())
	c.Header("Content-Type", metricsContentType)
	if err := s.metrics.Write(c.Writer, len(queries)); err != nil {
		s.log.Warn("writing metrics", zap.Error(err))
	}
}
