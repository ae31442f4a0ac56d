package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {},
		Test:        {},
		CI:          {},
		Production: {
			RequiredEnvVars: []string{
				"SERVER_PORT",
				"DB_DRIVER",
			},
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []string

	// Validate environment variables
	for _, envVar := range reqs.RequiredEnvVars {
		if value := os.Getenv(envVar); value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", envVar))
		}
	}

	switch cfg.DBDriver {
	case DriverSQLite:
		if cfg.DBPath == "" {
			errors = append(errors, ValidationError{Field: "DB_PATH", Message: "is required for the sqlite driver"}.Error())
		}
	case DriverPostgres:
		if cfg.DBHost == "" || cfg.DBName == "" {
			errors = append(errors, ValidationError{Field: "DB_HOST", Message: "host and database name are required for the postgres driver"}.Error())
		}
		if env == Production && cfg.DBPassword == "" {
			errors = append(errors, "db_password secret is required")
		}
	default:
		errors = append(errors, ValidationError{Field: "DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", cfg.DBDriver)}.Error())
	}

	if cfg.ServerPort == "" {
		errors = append(errors, ValidationError{Field: "SERVER_PORT", Message: "must not be empty"}.Error())
	}
	if cfg.FavoriteRateLimit < 0 {
		errors = append(errors, ValidationError{Field: "FAVORITE_RATE_LIMIT", Message: "must not be negative"}.Error())
	}
	if cfg.S3Enabled() && cfg.AWSRegion == "" {
		errors = append(errors, ValidationError{Field: "AWS_REGION", Message: "is required when S3_BUCKET_NAME is set"}.Error())
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
