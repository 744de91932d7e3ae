// Package backend opens the storage implementation selected by config.
package backend

import (
	"context"
	"fmt"

	"github.com/LeviOP/wealthwise/internal/config"
	"github.com/LeviOP/wealthwise/internal/log"
	"github.com/LeviOP/wealthwise/internal/storage"
	"github.com/LeviOP/wealthwise/internal/storage/postgres"
	"github.com/LeviOP/wealthwise/internal/storage/sqlite"
)

// Open connects to the configured data backend.
func Open(ctx context.Context, cfg config.Config, logger *log.Logger) (storage.Store, error) {
	logger = logger.WithComponent(log.ComponentStorage)
	switch cfg.DataBackend {
	case config.BackendPostgres:
		store, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		logger.Info("using postgres backend")
		return store, nil
	case config.BackendSQLite:
		store, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("using sqlite backend", "path", cfg.SQLiteDBPath)
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported data backend %q", cfg.DataBackend)
	}
}
