// Package middleware groups the HTTP middleware of the Fiber application.
//
// # Components
//
//   - auth: API key validation for every route except the public ones.
//   - rayid: assigns each request a UUID ray ID, stored in locals and echoed
//     in the X-Ray-ID response header, so logs of one request correlate.
package middleware
