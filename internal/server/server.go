package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sadopc/qtrack/internal/capture"
	"github.com/sadopc/qtrack/internal/core/history"
	"github.com/sadopc/qtrack/internal/query"
)

const (
	defaultAddr            = "0.0.0.0:8000"
	defaultShutdownTimeout = 5 * time.Second
	readHeaderTimeout      = 10 * time.Second
)

// Server serves the capture endpoint and the views over a history.Store.
type Server struct {
	addr            string
	log             *zap.Logger
	capturer        *capture.Capturer
	shutdownTimeout time.Duration
	version         string

	store   history.Store
	service *query.Service
	metrics *Metrics
	handler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) { s.addr = addr }
}

// WithLogger sets the logger used for access and storage logs.
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithCapturer replaces the default request capturer.
func WithCapturer(c *capture.Capturer) Option {
	return func(s *Server) {
		if c != nil {
			s.capturer = c
		}
	}
}

// WithShutdownTimeout bounds the graceful shutdown in Start.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) { s.shutdownTimeout = d }
}

// WithVersion sets the creator version written into HAR exports.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a Server over store.
func New(store history.Store, opts ...Option) *Server {
	s := &Server{
		addr:            defaultAddr,
		log:             zap.NewNop(),
		capturer:        capture.New(),
		shutdownTimeout: defaultShutdownTimeout,
		version:         "dev",
		store:           store,
		metrics:         NewMetrics(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.service = query.NewService(store, s.log, query.WithErrorHook(s.metrics.StoreError))
	s.handler = &trackRouter{
		track: s.handleTrackGET,
		next:  s.engine(),
	}
	return s
}

// Handler returns the root handler: GET /track-query is answered before
// the gin engine sees the request.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Start listens on the configured address and blocks until ctx is
// cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Start over an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		ErrorLog:          zap.NewStdLog(s.log),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("qtrack listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
