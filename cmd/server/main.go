package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"idcheck/internal/idcheck/handler"
	idmetrics "idcheck/internal/idcheck/metrics"
	"idcheck/internal/idcheck/service"
	"idcheck/internal/platform/config"
	"idcheck/internal/platform/httpserver"
	"idcheck/internal/platform/logger"
	"idcheck/internal/platform/metrics"
	httptransport "idcheck/internal/transport/http"
	"idcheck/pkg/platform/privacy"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Number checking lives in pkg/idcard.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.UsesDevKey() {
		log.Warn("using development fingerprint key; set IDCHECK_FINGERPRINT_KEY in production")
	}

	fingerprinter, err := privacy.NewFingerprinter([]byte(cfg.FingerprintKey))
	if err != nil {
		log.Error("invalid fingerprint key", "error", err)
		os.Exit(1)
	}

	svc, err := service.New(
		service.WithLogger(log),
		service.WithMetrics(idmetrics.New()),
		service.WithFingerprinter(fingerprinter),
		service.WithPivotYear(cfg.PivotYear),
		service.WithBatchLimits(cfg.BatchMax, cfg.BatchConcurrency),
	)
	if err != nil {
		log.Error("failed to build idcard service", "error", err)
		os.Exit(1)
	}

	router := httptransport.NewRouter(nil, metrics.NewHTTP(prometheus.DefaultRegisterer), handler.New(svc, log))
	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting idcheck", "addr", cfg.Addr, "pivot_year", cfg.PivotYear)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("idcheck stopped")
}
