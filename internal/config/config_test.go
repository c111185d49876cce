package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, "https://mini-heureka-internal-server.herokuapp.com", cfg.Catalog.BaseURL)
	assert.Equal(t, 50, cfg.Catalog.MaxRequestsPerSecond)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.InDelta(t, 0.5, cfg.Breaker.FailureRatio, 0.0001)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CATALOG_BASE_URL", "http://catalog.internal:9000/")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CACHE_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://catalog.internal:9000", cfg.Catalog.BaseURL)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.yaml")
	content := []byte(`
server:
  port: 8181
catalog:
  base_url: http://localhost:4000
  proxies:
    - http://proxy-a:3128
    - http://proxy-b:3128
cache:
  enabled: true
  ttl: 120
log:
  format: json
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "http://localhost:4000", cfg.Catalog.BaseURL)
	assert.Equal(t, []string{"http://proxy-a:3128", "http://proxy-b:3128"}, cfg.Catalog.Proxies)
	assert.Equal(t, 120, cfg.Cache.TTL)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
