// Package integrity provides health checks for the catalog infrastructure.
//
// # Checks Provided
//
//   - Structure: the storage bucket holds the configured input and output prefixes.
//   - Catalogs: every object under the input prefix parses with its format.
//   - Server: the catalog tables match the GORM models (columns and declared types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/catalogs : Parses stored catalogs.
//   - GET /integrity/server : Runs server schema check.
package integrity
