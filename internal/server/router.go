package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	trackPath   = "/track-query"
	queriesPath = "/queries"
	apiPath     = "/api/queries"
	harPath     = "/api/queries/har"
	clearPath   = "/clear-queries"
	metricsPath = "/metrics"
	healthPath  = "/healthz"
)

// trackRouter answers GET /track-query itself and hands every other
// request to next.
type trackRouter struct {
	track http.HandlerFunc
	next  http.Handler
}

func (t *trackRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet && r.URL.Path == trackPath {
		t.track(w, r)
		return
	}
	t.next.ServeHTTP(w, r)
}

func (s *Server) engine() *gin.Engine {
	e := gin.New()
	e.HandleMethodNotAllowed = true
	e.Use(requestLogger(s.log), gin.Recovery())

	e.POST(trackPath, s.handleTrack)
	e.PUT(trackPath, s.handleTrack)
	e.PATCH(trackPath, s.handleTrack)
	// Registered so other verbs on the path get 405 rather than 404; the
	// router answers GET before gin sees it.
	e.GET(trackPath, gin.WrapF(s.handleTrackGET))

	e.GET(queriesPath, s.handleView)
	e.GET(apiPath, s.handleList)
	e.GET(harPath, s.handleHAR)
	e.POST(clearPath, s.handleClear)
	e.GET(metricsPath, s.handleMetrics)
	e.GET(healthPath, func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	return e
}
