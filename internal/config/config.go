package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all report settings, populated from environment variables.
type Config struct {
	Source       string
	FetchTimeout time.Duration

	// Output paths. An empty path disables that output.
	ReportJSONPath  string
	ChartsPath      string
	MetricsTextfile string

	SignificanceLevel float64
	EphemerisCacheTTL time.Duration

	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parsePositiveDuration("QUAKE_FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	cacheTTL, err := parsePositiveDuration("EPHEMERIS_CACHE_TTL", "1h")
	if err != nil {
		return nil, err
	}

	alpha, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("SIGNIFICANCE_LEVEL", "0.05"), 64)
	if err != nil || alpha <= 0 || alpha >= 1 {
		return nil, errors.New("invalid SIGNIFICANCE_LEVEL: must be between 0 and 1")
	}

	cfg := &Config{
		Source:            sharedcfg.EnvOrDefault("QUAKE_SOURCE", "data/earthquakes.csv"),
		FetchTimeout:      fetchTimeout,
		ReportJSONPath:    optional("REPORT_JSON_PATH", "report.json"),
		ChartsPath:        optional("REPORT_CHARTS_PATH", ""),
		MetricsTextfile:   optional("METRICS_TEXTFILE", ""),
		SignificanceLevel: alpha,
		EphemerisCacheTTL: cacheTTL,
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:   shutdownTimeout,
	}

	if cfg.Source == "" {
		return nil, errors.New("QUAKE_SOURCE is required")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// optional returns the variable's value when it is set, even to the empty
// string, and def otherwise.
func optional(key, def string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return def
}
