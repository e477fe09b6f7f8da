package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "dats", cfg.Storage.Bucket)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "crc", cfg.Reconcile.Key)
	assert.Equal(t, 5*time.Minute, cfg.Reconcile.CacheTTL)
	assert.Equal(t, "logiqx", cfg.Reconcile.OutputFormat)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "SERVER_PORT=9090\nRECONCILE_STRICT=true\nRECONCILE_CACHE_TTL=30s\nSTORAGE_BUCKET=roms\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	t.Cleanup(func() {
		for _, k := range []string{"SERVER_PORT", "RECONCILE_STRICT", "RECONCILE_CACHE_TTL", "STORAGE_BUCKET"} {
			_ = os.Unsetenv(k)
		}
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Reconcile.Strict)
	assert.Equal(t, 30*time.Second, cfg.Reconcile.CacheTTL)
	assert.Equal(t, "roms", cfg.Storage.Bucket)
}
