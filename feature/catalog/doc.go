// Package catalog persists DAT catalogs in the database.
//
// A catalog is stored as one catalogs row holding the header and one
// catalog_items row per live item, with the machine denormalized onto each
// item and one column per hash kind. Stored catalogs can be used as
// reconcile inputs through Loader, using paths of the form db://<name>.
//
// # HTTP Endpoints
//
//   - GET /catalog : Lists catalogs.
//   - POST /catalog : Imports the request body (?format=logiqx|json|yaml, ?replace=true).
//   - GET /catalog/:name : Returns one header.
//   - GET /catalog/:name/stats : Counts per type and status, machines, size, hash coverage.
//   - GET /catalog/:name/export : Serializes the catalog (?format=...).
//   - DELETE /catalog/:name : Deletes the catalog.
package catalog
