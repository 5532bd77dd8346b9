package database

import (
	"context"
	"fmt"

	"github.com/alextreichler/carrental/internal/config"
	"github.com/alextreichler/carrental/internal/store"
	"github.com/alextreichler/carrental/internal/store/mongostore"
	"github.com/alextreichler/carrental/internal/store/sqlite"
)

// Open connects the backend selected by cfg.DBDriver and prepares its schema:
// migrations for SQLite, indexes for MongoDB.
func Open(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.DBDriver {
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
		return mongostore.Connect(ctx, mongostore.Config{
			URI:            cfg.MongoURI,
			Database:       cfg.MongoDatabase,
			MaxPoolSize:    uint64(cfg.MaxPoolSize),
			ConnectTimeout: cfg.ConnectTimeout,
		})
	case config.DriverSQLite:
		db, err := sqlite.NewStore(cfg.DBPath, cfg.MaxPoolSize)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DBDriver)
	}
}
