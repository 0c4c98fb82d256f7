package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// bodyKindKey carries the parsed body kind from the track handler to the
// access log.
const bodyKindKey = "body_kind"

// requestLogger writes one access line per request handled by gin.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{}
		if kind := c.GetString(bodyKindKey); kind != "" {
			fields = append(fields, zap.String(bodyKindKey, kind))
		}
		logAccess(log, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start), c.ClientIP(), fields...)
	}
}

func logAccess(log *zap.Logger, method, path string, status int, latency time.Duration, clientIP string, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("latency", latency),
		zap.String("client_ip", clientIP),
	}, extra...)

	switch {
	case status >= 500:
		log.Error("request", fields...)
	case status >= 400:
		log.Warn("request", fields...)
	default:
		log.Info("request", fields...)
	}
}
