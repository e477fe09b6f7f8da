package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables
	// authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// BodyLimitMB caps request bodies, which may carry uploaded catalogs.
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
	// Features lists the enabled features, comma separated. Empty enables all.
	Features string `mapstructure:"features" default:""`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 4 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}

// FeatureEnabled reports whether the named feature should be loaded.
func (c Config) FeatureEnabled(name string) bool {
	if strings.TrimSpace(c.Features) == "" {
		return true
	}
	for _, f := range strings.Split(c.Features, ",") {
		if strings.EqualFold(strings.TrimSpace(f), name) {
			return true
		}
	}
	return false
}
