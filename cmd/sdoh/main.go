package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/sdoh-dashboard/internal/adapter/census"
	httpadapter "github.com/couchcryptid/sdoh-dashboard/internal/adapter/http"
	"github.com/couchcryptid/sdoh-dashboard/internal/adapter/sqlite"
	"github.com/couchcryptid/sdoh-dashboard/internal/config"
	"github.com/couchcryptid/sdoh-dashboard/internal/domain"
	"github.com/couchcryptid/sdoh-dashboard/internal/observability"
	"github.com/couchcryptid/sdoh-dashboard/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	catalog := domain.DefaultCatalog()

	// A degraded cache logs its own warning and serves every lookup as a
	// miss; the dashboard stays up either way.
	store := sqlite.Open(cfg.CachePath, cfg.CacheTTL, clock, logger, metrics)

	client := census.NewClient(cfg.CensusBaseURL, cfg.CensusAPIKey, cfg.CensusTimeout, logger, metrics)
	fetcher := pipeline.NewFetcher(catalog, client, store, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, fetcher, catalog, clock, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	logger.Info("sdoh dashboard started",
		"metrics", len(catalog),
		"cache_path", cfg.CachePath,
		"cache_ttl", cfg.CacheTTL,
	)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := store.Close(); err != nil {
		logger.Error("cache store close error", "error", err)
	}

	logger.Info("shutdown complete")
}
