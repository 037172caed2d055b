// Package config defines the global configuration structure for the RainCast
// service. Configuration is loaded once at process initialization and is
// immutable thereafter. It follows 12-Factor App principles by strictly
// separating code from configuration.
//
// Values are resolved from the OS environment, optionally seeded from a .env
// file for local development. Any missing required value or invalid format
// causes startup to fail immediately (fail fast).
package config

import "time"

// Config is the top-level configuration struct for the RainCast service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" default:"local" validate:"required,oneof=local dev staging prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Domain Configurations
	Server  ServerConfig
	Weather WeatherConfig
	Models  ModelsConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// WeatherConfig holds the upstream historical weather source configuration.
// The defaults pin the service to Sydney, Australia, matching the location
// the models were trained for.
type WeatherConfig struct {
	BaseURL   string        `envconfig:"WEATHER_BASE_URL" default:"https://archive-api.open-meteo.com/v1/archive" validate:"required,url"`
	Latitude  float64       `envconfig:"WEATHER_LATITUDE" default:"-33.8678" validate:"min=-90,max=90"`
	Longitude float64       `envconfig:"WEATHER_LONGITUDE" default:"151.2073" validate:"min=-180,max=180"`
	Timezone  string        `envconfig:"WEATHER_TIMEZONE" default:"Australia/Sydney" validate:"required"`
	Timeout   time.Duration `envconfig:"WEATHER_TIMEOUT" default:"10s"`
}

// ModelsConfig holds the on-disk model artifact layout. Each task lives in its
// own subdirectory of Dir containing model.json, scaler.json and, for the rain
// task, threshold.txt.
type ModelsConfig struct {
	Dir string `envconfig:"MODELS_DIR" default:"models" validate:"required"`
}
