package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "https://api.census.gov/data/2022/acs/acs1", cfg.CensusBaseURL)
	assert.Empty(t, cfg.CensusAPIKey)
	assert.Equal(t, 30*time.Second, cfg.CensusTimeout)
	assert.Equal(t, "sdoh-cache.db", cfg.CachePath)
	assert.Equal(t, 7*24*time.Hour, cfg.CacheTTL)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("CENSUS_BASE_URL", "http://localhost:4000/data")
	t.Setenv("CENSUS_API_KEY", "test-key")
	t.Setenv("CENSUS_TIMEOUT", "5s")
	t.Setenv("CACHE_PATH", "/tmp/cache.db")
	t.Setenv("CACHE_TTL", "24h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:4000/data", cfg.CensusBaseURL)
	assert.Equal(t, "test-key", cfg.CensusAPIKey)
	assert.Equal(t, 5*time.Second, cfg.CensusTimeout)
	assert.Equal(t, "/tmp/cache.db", cfg.CachePath)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeCacheTTL(t *testing.T) {
	t.Setenv("CACHE_TTL", "-1h")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CACHE_TTL")
}

func TestLoad_InvalidCensusTimeout(t *testing.T) {
	t.Setenv("CENSUS_TIMEOUT", "bad")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CENSUS_TIMEOUT")
}
