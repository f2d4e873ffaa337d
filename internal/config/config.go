// Package config loads application settings from the environment.
package config

import (
	"os"

	"github.com/joho/godotenv"

	"fintrack/internal/logger"
)

// Config holds application configuration. Database settings live in the
// database package.
type Config struct {
	Port string

	JWTSecret string

	// Optional API key guarding the recurring-transaction sweep endpoint.
	// When empty the endpoint is open, for use with trusted schedulers.
	SweepAPIKey string
}

var appConfig *Config

// Load reads configuration from environment variables, loading a .env file
// first when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Get().Debug("no .env file found, using environment variables")
	}

	appConfig = &Config{
		Port:        getEnv("PORT", "8080"),
		JWTSecret:   getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		SweepAPIKey: getEnv("SWEEP_API_KEY", ""),
	}
	return appConfig, nil
}

// Get returns the application configuration, loading it on first use.
func Get() *Config {
	if appConfig == nil {
		appConfig, _ = Load()
	}
	return appConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
