package server_test

import (
	"testing"

	"dat-manager/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Address(t *testing.T) {
	assert.Equal(t, ":8080", server.Config{Port: "8080"}.Address())
	assert.Equal(t, "127.0.0.1:9000", server.Config{Port: "127.0.0.1:9000"}.Address())
}

func TestConfig_BodyLimit(t *testing.T) {
	assert.Equal(t, 64*1024*1024, server.Config{BodyLimitMB: 64}.BodyLimit())
	assert.Equal(t, 4*1024*1024, server.Config{}.BodyLimit())
}

func TestConfig_FeatureEnabled(t *testing.T) {
	tests := []struct {
		name     string
		features string
		feature  string
		want     bool
	}{
		{"AllByDefault", "", "update", true},
		{"Listed", "update, catalog", "catalog", true},
		{"CaseInsensitive", "Update", "update", true},
		{"NotListed", "update", "integrity", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{Features: tt.features}
			assert.Equal(t, tt.want, c.FeatureEnabled(tt.feature))
		})
	}
}
