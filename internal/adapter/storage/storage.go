// Package storage opens the facility store selected by STORE_DRIVER.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/facility-safety-service/internal/adapter/bolt"
	"github.com/couchcryptid/facility-safety-service/internal/adapter/memory"
	"github.com/couchcryptid/facility-safety-service/internal/adapter/postgres"
	"github.com/couchcryptid/facility-safety-service/internal/config"
	"github.com/couchcryptid/facility-safety-service/internal/pipeline"
)

// Store is a facility store that can also be seeded with full documents.
type Store interface {
	pipeline.FacilityStore
	memory.Putter
}

// Open connects the configured backend and returns it with a close func.
// For the memory driver, STORE_SEED_FILE (when set) is loaded before returning.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.NewStore()
		if cfg.StoreSeedFile != "" {
			docs, err := memory.ReadFixture(cfg.StoreSeedFile)
			if err != nil {
				return nil, nil, err
			}
			if err := memory.Seed(ctx, store, docs); err != nil {
				return nil, nil, err
			}
			logger.Info("memory store seeded", "file", cfg.StoreSeedFile, "facilities", store.Len())
		}
		return store, func() {}, nil

	case config.StoreBolt:
		store, err := bolt.Open(cfg.BoltPath, cfg.FacilityCollection)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("bolt store opened", "path", cfg.BoltPath, "collection", cfg.FacilityCollection)
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("bolt close error", "error", err)
			}
		}, nil

	case config.StorePostgres:
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("postgres store ready", "collection", cfg.FacilityCollection)
		return postgres.NewRepository(pool, cfg.FacilityCollection), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
