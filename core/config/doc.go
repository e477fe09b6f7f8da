// Package config provides configuration management for the DAT manager.
//
// It uses Viper for loading configuration from environment variables and an
// optional .env file (via godotenv). Defaults come from the 'default' struct
// tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and body limit
//   - Database: catalog database driver and connection details
//   - Storage: S3/MinIO credentials, bucket and prefixes
//   - Log: logging level and format
//   - Reconcile: bucket key, strict matching, workers, cache TTL, output format
//
// Nested keys map to upper case environment variables joined by underscores,
// so reconcile.cache_ttl is read from RECONCILE_CACHE_TTL.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Reconcile.OutputFormat)
package config
