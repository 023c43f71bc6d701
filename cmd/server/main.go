package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/facility-safety-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/facility-safety-service/internal/adapter/kafka"
	"github.com/couchcryptid/facility-safety-service/internal/adapter/mapbox"
	"github.com/couchcryptid/facility-safety-service/internal/adapter/storage"
	"github.com/couchcryptid/facility-safety-service/internal/config"
	"github.com/couchcryptid/facility-safety-service/internal/domain"
	"github.com/couchcryptid/facility-safety-service/internal/observability"
	"github.com/couchcryptid/facility-safety-service/internal/pipeline"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open facility store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	cities := domain.DefaultCityRanks()
	if cfg.CityRanksFile != "" {
		cities, err = domain.LoadCityRanks(cfg.CityRanksFile)
		if err != nil {
			logger.Error("failed to load city ranks", "file", cfg.CityRanksFile, "error", err)
			os.Exit(1)
		}
	}
	logger.Info("city ranks loaded", "cities", cities.Len())

	// Geocoding is feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN.
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	// Left as a nil interface when Kafka is off so the pipeline skips publishing.
	var publisher pipeline.ScorePublisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("score publishing enabled", "topic", cfg.KafkaScoresTopic, "brokers", cfg.KafkaBrokers)
	}

	p := pipeline.New(store, domain.NewScorer(cities), publisher, geocoder, clockwork.NewRealClock(), logger, metrics)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cfg.RequestTimeout, logger)

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
