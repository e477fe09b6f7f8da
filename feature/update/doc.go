// Package update runs catalog reconciliation on request.
//
// A Request names a mode and its inputs; the Service resolves the inputs,
// runs the matching reconcile operation and writes every non-empty output.
//
// # Inputs
//
//   - path/to/file.dat, path/to/dir : local catalogs; directories expand recursively
//   - s3://key, s3://prefix/ : objects in the catalog bucket
//   - db://name : catalogs stored by the catalog feature
//
// Parsed inputs are cached for reconcile.cache_ttl so repeated runs over the
// same sources skip parsing.
//
// # Modes
//
//	merge, cascade, reverse-cascade, against, base-replace,
//	reverse-base-replace, dupes, no-dupes, individuals, all, split
//
// # HTTP Endpoints
//
//   - GET /update/modes : Lists modes.
//   - POST /update : Runs and uploads outputs under storage.output_prefix.
//   - POST /update/plan : Runs without writing.
//   - POST /update/stats : Per-input item counters.
package update
