package config

import (
	"os"
	"strconv"

	"causalval/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Placebo  PlaceboConfig
	Report   ReportConfig
	Database DatabaseConfig
}

// PlaceboConfig holds placebo test execution settings
type PlaceboConfig struct {
	Workers      int    // concurrent unit evaluations per pair; <= 1 runs sequentially
	StrictSchema bool   // reject degenerate (zero dispersion) summary rows
	Seed         uint64 // seed for simulated panels and seeded parameters
}

// ReportConfig holds report output settings
type ReportConfig struct {
	Path string
}

// DatabaseConfig holds optional result persistence settings
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Placebo: PlaceboConfig{
			Workers:      getEnvIntOrDefault("PLACEBO_WORKERS", 4),
			StrictSchema: getEnvBoolOrDefault("PLACEBO_STRICT_SCHEMA", false),
			Seed:         uint64(getEnvIntOrDefault("PLACEBO_SEED", 42)),
		},
		Report: ReportConfig{
			Path: getEnvOrDefault("REPORT_PATH", "placebo_report.xlsx"),
		},
	}

	url := os.Getenv("DATABASE_URL")
	config.Database = DatabaseConfig{URL: url, Enabled: url != ""}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Placebo.Workers < 1 {
		return errors.ConfigInvalid("PLACEBO_WORKERS must be at least 1")
	}
	if config.Report.Path == "" {
		return errors.ConfigInvalid("REPORT_PATH must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
