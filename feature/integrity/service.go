package integrity

import (
	"context"
	"errors"

	"dat-manager/core/storage"
	"dat-manager/feature/catalog"
	"dat-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoStorage is returned by storage checks when no object store is configured.
var ErrNoStorage = errors.New("object storage is not configured")

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	cfg     storage.Config
	db      *gorm.DB
	workers int
	logger  *zap.Logger
}

// NewService creates a new integrity service. client and db may be nil, in
// which case the checks that need them fail with ErrNoStorage or
// catalog.ErrNoDatabase.
func NewService(client storage.Client, cfg storage.Config, logger *zap.Logger, db *gorm.DB, workers int) *Service {
	return &Service{
		client:  client,
		cfg:     cfg,
		db:      db,
		workers: workers,
		logger:  logger,
	}
}

// Folders returns the prefixes the bucket must contain.
func (s *Service) Folders() []string {
	return []string{s.cfg.InputPrefix, s.cfg.OutputPrefix}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckStructure(ctx, s.client, s.cfg.Bucket, s.Folders())
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrNoStorage
	}
	return checks.FixStructure(ctx, s.client, s.cfg.Bucket, s.logger, missing)
}

// CheckCatalogs parses every catalog stored under the input prefix.
func (s *Service) CheckCatalogs(ctx context.Context) (*checks.CatalogReport, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	return checks.CheckCatalogs(ctx, s.client, s.cfg.Bucket, s.cfg.InputPrefix, s.workers)
}

// CheckServer compares the database schema with the catalog models.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	if s.db == nil {
		return nil, catalog.ErrNoDatabase
	}
	return checks.CheckServerIntegrity(s.db, catalog.Catalog{}, catalog.Record{})
}
