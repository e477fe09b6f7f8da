// Package database handles catalog database connections and schema
// inspection.
//
// It wraps GORM and opens either MySQL (production) or SQLite (local runs
// and tests) depending on Config.Driver.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns read the live schema so the integrity
// feature can compare it with the catalog models.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("Catalog database unavailable", zap.Error(err))
//	}
//
//	missing, err := database.MissingColumns(db, "catalog_items", []string{"crc", "sha1"})
package database
