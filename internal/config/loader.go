// loader.go implements the configuration loading lifecycle.
//
// The loading sequence is:
//  1. Enforce UTC timezone to prevent drift bugs.
//  2. Load .env file via godotenv (non-fatal if absent).
//  3. Use envconfig to process struct tags and populate the Config struct.
//  4. Validate the struct using go-playground/validator.
//  5. Verify the weather timezone resolves against the tz database.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// ConfigErrorType classifies configuration failures for diagnostics.
type ConfigErrorType string

const (
	// ErrParsing indicates envconfig could not parse an environment variable.
	ErrParsing ConfigErrorType = "parsing"
	// ErrValidation indicates the populated Config failed struct validation.
	ErrValidation ConfigErrorType = "validation"
)

// ConfigError is a diagnostic error type returned by LoadConfig to aid debugging.
// It wraps a ConfigErrorType and an underlying error message.
type ConfigError struct {
	Type    ConfigErrorType
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// LoadConfig loads and validates the RainCast configuration from the
// environment. A .env file in the working directory is loaded first if
// present; it never overrides variables already set in the environment.
func LoadConfig() (*Config, error) {
	// Enforce UTC process timezone. Date math against the reference timezone
	// is done explicitly via time.LoadLocation, never through time.Local.
	time.Local = time.UTC

	_ = godotenv.Load()

	// The empty prefix "" means envconfig uses the exact tag values
	// (e.g., envconfig:"PORT" reads PORT directly).
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{
			Type:    ErrParsing,
			Message: "failed to process environment variables",
			Err:     err,
		}
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateConfig runs struct-tag validation plus checks that cannot be
// expressed as tags.
func validateConfig(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return &ConfigError{
			Type:    ErrValidation,
			Message: "configuration failed validation",
			Err:     err,
		}
	}

	// The reference timezone must resolve against the tz database; a typo here
	// would silently break the future-date guard.
	if _, err := time.LoadLocation(cfg.Weather.Timezone); err != nil {
		return &ConfigError{
			Type:    ErrValidation,
			Message: fmt.Sprintf("unknown weather timezone %q", cfg.Weather.Timezone),
			Err:     err,
		}
	}

	return nil
}
