package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Census API configuration. The API works without a key for the query
	// volumes a single dashboard generates; a key lifts the daily limit.
	CensusBaseURL string
	CensusAPIKey  string
	CensusTimeout time.Duration

	// Cache configuration. TTL defaults to one week, matching the annual
	// release cadence of the ACS tables.
	CachePath string
	CacheTTL  time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	censusTimeout, err := parseDurationEnv("CENSUS_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parseDurationEnv("CACHE_TTL", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CensusBaseURL: envOrDefault("CENSUS_BASE_URL", "https://api.census.gov/data/2022/acs/acs1"),
		CensusAPIKey:  os.Getenv("CENSUS_API_KEY"),
		CensusTimeout: censusTimeout,

		CachePath: envOrDefault("CACHE_PATH", "sdoh-cache.db"),
		CacheTTL:  cacheTTL,
	}

	if cfg.CensusBaseURL == "" {
		return nil, fmt.Errorf("CENSUS_BASE_URL is required")
	}
	if cfg.CachePath == "" {
		return nil, fmt.Errorf("CACHE_PATH is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}
