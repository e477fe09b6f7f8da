// Package loader provides the feature loading system of the HTTP server.
//
// Each feature (update, catalog, integrity) implements Feature and is
// registered with a Manager at startup. LoadAll then mounts the routes of
// every enabled feature, in registration order.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
