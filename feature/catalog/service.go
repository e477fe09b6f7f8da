package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dat-manager/core/datfile"
	"dat-manager/core/datitems"
	"dat-manager/core/reconcile"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Scheme prefixes input paths that name a stored catalog.
const Scheme = "db://"

const batchSize = 500

var (
	// ErrNotFound is returned when no catalog has the requested name.
	ErrNotFound = errors.New("catalog not found")
	// ErrExists is returned when importing over a catalog without replace.
	ErrExists = errors.New("catalog already exists")
	// ErrNoDatabase is returned when the service runs without a database.
	ErrNoDatabase = errors.New("catalog database not configured")
)

// Service stores catalogs in the database.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new catalog service. db may be nil, in which case
// every operation fails with ErrNoDatabase.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger}
}

func (s *Service) conn(ctx context.Context) (*gorm.DB, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	return s.db.WithContext(ctx), nil
}

// Migrate creates or updates the catalog tables.
func (s *Service) Migrate(ctx context.Context) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(&Catalog{}, &Record{}); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return nil
}

// Import stores the live items of dat under its header name. An existing
// catalog of that name is replaced when replace is set, else ErrExists is
// returned.
func (s *Service) Import(ctx context.Context, dat *datfile.DatFile, replace bool) (*Catalog, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	header := dat.Header
	header.EnsureFields()
	cat := toCatalog(header)

	err = db.Transaction(func(tx *gorm.DB) error {
		var existing Catalog
		err := tx.Where("name = ?", cat.Name).First(&existing).Error
		switch {
		case err == nil && !replace:
			return fmt.Errorf("%w: %s", ErrExists, cat.Name)
		case err == nil:
			if err := deleteCatalog(tx, existing.ID); err != nil {
				return err
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to look up catalog %s: %w", cat.Name, err)
		}

		if err := tx.Create(&cat).Error; err != nil {
			return fmt.Errorf("failed to create catalog %s: %w", cat.Name, err)
		}

		var records []Record
		for _, it := range dat.Items.Items() {
			if it.Remove {
				continue
			}
			records = append(records, toRecord(cat.ID, it))
		}
		if len(records) > 0 {
			if err := tx.CreateInBatches(records, batchSize).Error; err != nil {
				return fmt.Errorf("failed to store items of %s: %w", cat.Name, err)
			}
		}

		cat.ItemCount = int64(len(records))
		return tx.Model(&cat).Update("item_count", cat.ItemCount).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Imported catalog",
		zap.String("name", cat.Name),
		zap.Int64("items", cat.ItemCount),
		zap.Duration("duration", time.Since(start)),
	)
	return &cat, nil
}

func deleteCatalog(tx *gorm.DB, id uint) error {
	if err := tx.Where("catalog_id = ?", id).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("failed to delete catalog items: %w", err)
	}
	if err := tx.Delete(&Catalog{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete catalog: %w", err)
	}
	return nil
}

// List returns every stored catalog ordered by name.
func (s *Service) List(ctx context.Context) ([]Catalog, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var cats []Catalog
	if err := db.Order("name").Find(&cats).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalogs: %w", err)
	}
	return cats, nil
}

// Get returns the catalog called name.
func (s *Service) Get(ctx context.Context, name string) (*Catalog, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return nil, err
	}
	var cat Catalog
	err = db.Where("name = ?", name).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog %s: %w", name, err)
	}
	return &cat, nil
}

// Delete removes the catalog called name and its items.
func (s *Service) Delete(ctx context.Context, name string) error {
	cat, err := s.Get(ctx, name)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteCatalog(tx, cat.ID)
	})
}

// Load reads the catalog called name as a stream, in stored order.
func (s *Service) Load(ctx context.Context, name string) (*datfile.Stream, error) {
	cat, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	stream := &datfile.Stream{
		Header: cat.header(),
		Items: func(yield func(*datitems.Item, error) bool) {
			lastID := uint(0)
			for {
				var batch []Record
				err := db.Where("catalog_id = ? AND id > ?", cat.ID, lastID).
					Order("id").Limit(batchSize).Find(&batch).Error
				if err != nil {
					yield(nil, fmt.Errorf("failed to read items of %s: %w", name, err))
					return
				}
				for _, r := range batch {
					if !yield(r.toItem(), nil) {
						return
					}
				}
				if len(batch) < batchSize {
					return
				}
				lastID = batch[len(batch)-1].ID
			}
		},
	}
	return stream, nil
}

// Loader returns a reconcile loader reading inputs of the form db://name.
func (s *Service) Loader() reconcile.Loader {
	return reconcile.LoaderFunc(func(ctx context.Context, in reconcile.Input) (*datfile.Stream, error) {
		return s.Load(ctx, strings.TrimPrefix(in.Path, Scheme))
	})
}

type typeRow struct {
	Type  string
	Count int64
	Size  int64
}

type statusRow struct {
	Status string
	Count  int64
}

// Stats aggregates the stored items of the catalog called name.
func (s *Service) Stats(ctx context.Context, name string) (*Stats, error) {
	cat, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	items := func() *gorm.DB { return db.Model(&Record{}).Where("catalog_id = ?", cat.ID) }

	stats := &Stats{
		Name:     cat.Name,
		ByType:   make(map[string]int64),
		ByStatus: make(map[string]int64),
		Hashes:   make(map[string]int64),
	}

	var types []typeRow
	if err := items().
		Select("type, COUNT(*) AS count, COALESCE(SUM(CASE WHEN size > 0 THEN size ELSE 0 END), 0) AS size").
		Group("type").Scan(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to count items of %s: %w", name, err)
	}
	for _, r := range types {
		stats.ByType[r.Type] = r.Count
		stats.Items += r.Count
		stats.TotalSize += r.Size
	}

	var statuses []statusRow
	if err := items().Select("status, COUNT(*) AS count").
		Where("status <> ''").Group("status").Scan(&statuses).Error; err != nil {
		return nil, fmt.Errorf("failed to count statuses of %s: %w", name, err)
	}
	for _, r := range statuses {
		stats.ByStatus[r.Status] = r.Count
	}

	if err := items().Distinct("machine").Count(&stats.Machines).Error; err != nil {
		return nil, fmt.Errorf("failed to count machines of %s: %w", name, err)
	}

	for _, kind := range datitems.AllHashKinds {
		var n int64
		if err := items().Where(kind.String()+" <> ''").Count(&n).Error; err != nil {
			return nil, fmt.Errorf("failed to count %s hashes of %s: %w", kind, name, err)
		}
		stats.Hashes[kind.String()] = n
	}
	return stats, nil
}

// Export loads the catalog called name into a DatFile.
func (s *Service) Export(ctx context.Context, name string) (*datfile.DatFile, error) {
	stream, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	items, err := datfile.Collect(ctx, stream, nil)
	if err != nil {
		return nil, err
	}
	dat := datfile.New(stream.Header)
	dat.Items.AddRange(items)
	dat.Header.EnsureFields()
	return dat, nil
}
