package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sadopc/qtrack/internal/capture"
	"github.com/sadopc/qtrack/internal/logger"
	"github.com/sadopc/qtrack/internal/server"
	"github.com/sadopc/qtrack/pkg/version"
)

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	sf := addStoreFlags(fs)
	portFlag := fs.Int("port", 0, "Port to listen on (default 8000)")
	hostFlag := fs.String("host", "", "Interface to bind (default 0.0.0.0)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: qtrack serve [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Capture requests sent to /track-query and serve the log.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEndpoints:\n")
		fmt.Fprintf(os.Stderr, "  GET|POST|PUT|PATCH /track-query   capture a request\n")
		fmt.Fprintf(os.Stderr, "  GET /queries                      HTML view\n")
		fmt.Fprintf(os.Stderr, "  GET /api/queries                  JSON log\n")
		fmt.Fprintf(os.Stderr, "  GET /api/queries/har              HAR export\n")
		fmt.Fprintf(os.Stderr, "  POST /clear-queries               empty the log\n")
		fmt.Fprintf(os.Stderr, "  GET /metrics, /healthz\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  qtrack serve\n")
		fmt.Fprintf(os.Stderr, "  qtrack serve --port 9000 --backend sqlite --data data/queries.db\n")
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(2)
	}

	cfg := sf.load()
	if *portFlag != 0 {
		cfg.Server.Port = *portFlag
	}
	if *hostFlag != "" {
		cfg.Server.Host = *hostFlag
	}

	log, err := logger.New(logger.Config{Level: cfg.Logging.Level, Encoding: cfg.Logging.Encoding})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := mustOpenStore(ctx, cfg)
	defer store.Close()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(store,
		server.WithAddr(cfg.Server.Addr()),
		server.WithLogger(log),
		server.WithCapturer(capture.New(capture.WithMaxBodyBytes(cfg.Capture.MaxBodyBytes))),
		server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
		server.WithVersion(version.Version),
	)

	log.Info("starting qtrack",
		zap.String("version", version.Version),
		zap.String("backend", cfg.Store.Backend),
		zap.String("path", cfg.Store.Path),
		zap.Int("max_records", cfg.Store.MaxRecords),
	)

	if err := srv.Start(ctx); err != nil {
		log.Error("server stopped", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
