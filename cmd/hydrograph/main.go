package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/hydrograph-axis-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hydrograph-axis-service/internal/adapter/kafka"
	"github.com/couchcryptid/hydrograph-axis-service/internal/adapter/nwis"
	"github.com/couchcryptid/hydrograph-axis-service/internal/config"
	"github.com/couchcryptid/hydrograph-axis-service/internal/domain"
	"github.com/couchcryptid/hydrograph-axis-service/internal/observability"
	"github.com/couchcryptid/hydrograph-axis-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	catalogue, err := config.LoadCatalogue(cfg.ParametersFile)
	if err != nil {
		logger.Error("failed to load parameter catalogue", "path", cfg.ParametersFile, "error", err)
		os.Exit(1)
	}
	symlog := catalogue.SymlogParameters()
	calc := domain.NewAxisCalculator(symlog)
	logger.Info("parameter catalogue loaded", "parameters", len(catalogue.Parameters), "symlog", symlog.Codes())

	// Site lookups are feature-flagged via NWIS_ENABLED.
	var fetcher domain.SeriesFetcher
	if cfg.NWISEnabled {
		client := nwis.NewClient(cfg.NWISBaseURL, cfg.NWISTimeout, metrics, logger)
		fetcher = nwis.NewCachedFetcher(client, cfg.NWISCacheSize, nwis.DefaultCacheTTL, metrics)
		metrics.NWISEnabled.Set(1)
		logger.Info("nwis lookups enabled", "base_url", cfg.NWISBaseURL, "cache_size", cfg.NWISCacheSize, "timeout", cfg.NWISTimeout)
	} else {
		logger.Info("nwis lookups disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(calc, catalogue, logger)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	api := httpadapter.NewAxisHandler(calc, fetcher, metrics, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, api, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
