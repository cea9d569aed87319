// Package config loads worker configuration from environment
// variables. All analytics parameters are optional with stated
// defaults; the store connection parameters are required and missing
// ones are fatal at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment represents the application environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvStaging     Environment = "staging"
	EnvProduction  Environment = "production"
)

// Config holds all worker configuration.
type Config struct {
	// App
	AppEnv   Environment
	AppDebug bool

	// Timezone is the IANA name of the reporting zone used for
	// attempt timestamps and bucket keys.
	Timezone string

	// PostgreSQL (users and quiz submissions)
	DatabaseURL string

	// Redis (base metrics and insight documents)
	RedisURL string

	// Analytics parameters
	LastActiveHours int // last-active window for user discovery
	AnalyticsDays   int // trailing attempt window
	TopActiveHours  int // peak hour buckets to report

	// ProfileInterval is how often the profile batch runs.
	// Zero means run once and exit.
	ProfileInterval time.Duration

	// Graceful shutdown
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:          Environment(getEnv("APP_ENV", "development")),
		AppDebug:        getEnvBool("APP_DEBUG", false),
		Timezone:        getEnv("APP_TIMEZONE", "Asia/Kolkata"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisURL:        getEnv("REDIS_URL", ""),
		LastActiveHours: getEnvInt("LAST_ACTIVE_HOURS", 24),
		AnalyticsDays:   getEnvInt("N_ANALYTICS_DAYS", 7),
		TopActiveHours:  getEnvInt("N_MOST_ACTIVE_HOURS", 2),
		ProfileInterval: getEnvDuration("PROFILE_INTERVAL", 0),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and parameter ranges.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("config: DATABASE_URL is required")
	}
	if c.RedisURL == "" {
		return errors.New("config: REDIS_URL is required")
	}
	if c.LastActiveHours <= 0 {
		return fmt.Errorf("config: LAST_ACTIVE_HOURS must be positive, got %d", c.LastActiveHours)
	}
	if c.AnalyticsDays <= 0 {
		return fmt.Errorf("config: N_ANALYTICS_DAYS must be positive, got %d", c.AnalyticsDays)
	}
	if c.TopActiveHours <= 0 {
		return fmt.Errorf("config: N_MOST_ACTIVE_HOURS must be positive, got %d", c.TopActiveHours)
	}
	return nil
}

// IsProduction returns true in the production environment.
func (c *Config) IsProduction() bool {
	return c.AppEnv == EnvProduction
}

// getEnv returns an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt returns an int environment variable.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if i, err := strconv.Atoi(value); err == nil {
		return i
	}
	return defaultValue
}

// getEnvDuration returns a time.Duration environment variable.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	return defaultValue
}
