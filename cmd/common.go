package cmd

import (
	"context"
	"fmt"

	"dat-manager/core/config"
	"dat-manager/core/database"
	"dat-manager/core/logger"
	"dat-manager/core/storage"
	"dat-manager/feature/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// env bundles what every command needs.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
}

func setup() (*env, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return &env{cfg: cfg, logger: logg}, nil
}

// openDatabase connects to the catalog database. A failed connection is
// logged and yields nil.
func (r *env) openDatabase() *gorm.DB {
	conn, err := database.Connect(r.cfg.Database)
	if err != nil {
		r.logger.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	r.logger.Info("Connected to catalog database", zap.String("driver", r.cfg.Database.Driver))
	return conn
}

// openCatalogs returns the catalog service over the optional database.
func (r *env) openCatalogs(ctx context.Context, db *gorm.DB) (*catalog.Service, error) {
	svc := catalog.NewService(db, r.logger)
	if db == nil {
		return svc, nil
	}
	if err := svc.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return svc, nil
}

// openStorage creates the object store client. A failure is logged and yields nil.
func (r *env) openStorage() storage.Client {
	store, err := storage.NewClient(r.cfg.Storage)
	if err != nil {
		r.logger.Warn("Object storage unavailable", zap.Error(err))
		return nil
	}
	return store
}
