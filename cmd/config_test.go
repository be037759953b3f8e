package cmd

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DatabasePath)
	assert.Equal(t, 5, cfg.RatePerMinute)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "USD", cfg.Currency)
}

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_path = "/tmp/test.db"
alphavantage_api_key = "k3y"
rate_per_minute = 75
fetch_timeout_seconds = 3
currency = "EUR"
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", cfg.DatabasePath)
	assert.Equal(t, "k3y", cfg.APIKey)
	assert.Equal(t, 75, cfg.RatePerMinute)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "EUR", cfg.Currency)
}

func TestLoadConfigMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`rate_per_minute = "not a number"`), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv(apiKeyEnv, "env-key")
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.APIKey)
}
