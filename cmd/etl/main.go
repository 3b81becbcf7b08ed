package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/flight-weather-etl/internal/adapter/aviationweather"
	httpadapter "github.com/couchcryptid/flight-weather-etl/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/flight-weather-etl/internal/adapter/kafka"
	"github.com/couchcryptid/flight-weather-etl/internal/config"
	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	"github.com/couchcryptid/flight-weather-etl/internal/observability"
	"github.com/couchcryptid/flight-weather-etl/internal/pipeline"
	"github.com/jonboulle/clockwork"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	stations := make([]string, 0, len(cfg.Stations))
	for icao := range cfg.Stations {
		stations = append(stations, icao)
	}
	logger.Info("station catalog loaded", "stations", stations, "file", cfg.StationsFile)

	// Reference reports are feature-flagged via REFERENCE_REPORTS_ENABLED.
	var reports domain.ReportSource
	if cfg.ReferenceEnabled {
		client := aviationweather.NewClient(cfg.AviationWeatherURL, cfg.AviationWeatherTimeout, logger, metrics)
		reports = aviationweather.NewCachedSource(client, cfg.AviationWeatherCacheSize, cfg.AviationWeatherCacheTTL, clockwork.NewRealClock(), metrics)
		metrics.ReferenceEnabled.Set(1)
		logger.Info("reference reports enabled",
			"url", cfg.AviationWeatherURL,
			"cache_size", cfg.AviationWeatherCacheSize,
			"cache_ttl", cfg.AviationWeatherCacheTTL,
			"timeout", cfg.AviationWeatherTimeout,
		)
	} else {
		logger.Info("reference reports disabled")
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(cfg.Stations, reports, logger, metrics)

	store := pipeline.NewAdvisoryStore()
	loader := pipeline.NewRecordingLoader(writer, store)

	p := pipeline.New(reader, transformer, loader, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, store, logger)

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
