package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, 200, cfg.MLSApi.PageSize)
	assert.Equal(t, 1000, cfg.Sync.SessionLimit)
	assert.Equal(t, 5, cfg.Sync.MaxConsecutiveErrors)
	assert.Equal(t, 50, cfg.Sync.RelatedChunkSize)
	assert.Equal(t, "mls:extraction", cfg.Sync.LockName)
	assert.Equal(t, 15*time.Minute, cfg.Sync.GetLockTTL())
	assert.Equal(t, time.Second, cfg.MLSApi.GetRequestDelay())
	assert.Equal(t, 2*time.Second, cfg.MLSApi.GetRetryDelay())
}

func TestLoadConfigMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, 200, cfg.MLSApi.PageSize)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
mls_api:
  base_url: https://api.example.test/reso/odata
  access_token: file-token
  page_size: 100
sync:
  session_limit: 500
  resync_enabled: true
  resync_time: "03:30"
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "https://api.example.test/reso/odata", cfg.MLSApi.BaseURL)
	assert.Equal(t, 100, cfg.MLSApi.PageSize)
	assert.Equal(t, 500, cfg.Sync.SessionLimit)
	assert.True(t, cfg.Sync.ResyncEnabled)
	// values the file omits keep their defaults
	assert.Equal(t, 3, cfg.MLSApi.MaxRetries)
	assert.True(t, cfg.MLSApi.HasCredentials())
}

func TestEnvOverridesWinOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mls_api:\n  access_token: file-token\n"), 0o644))

	t.Setenv("MLS_API_TOKEN", "env-token")
	t.Setenv("DB_TYPE", "postgres")

	cfg, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "env-token", cfg.MLSApi.AccessToken)
	assert.Equal(t, "postgres", cfg.Database.Type)
}

func TestHasCredentials(t *testing.T) {
	cfg := MLSApiConfig{}
	assert.False(t, cfg.HasCredentials())

	cfg.BaseURL = "https://api.example.test"
	assert.False(t, cfg.HasCredentials())

	cfg.AccessToken = "token"
	assert.True(t, cfg.HasCredentials())
}
