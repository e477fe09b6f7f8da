// Package server holds the HTTP server configuration.
//
// The start command builds the Fiber app from this configuration: listen
// address, body limit for uploaded catalogs, the API key guarding every
// route and the list of features to load.
package server
