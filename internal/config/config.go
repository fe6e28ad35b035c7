// Package config provides application configuration loading from environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Backend selects the persistent key-value store implementation.
type Backend string

// Supported store backends.
const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// IsValid reports whether the backend name is one we can open.
func (b Backend) IsValid() bool {
	switch b {
	case BackendSQLite, BackendPostgres, BackendMemory:
		return true
	}
	return false
}

// Config holds all configuration for the application.
type Config struct {
	Backend      Backend
	SQLitePath   string
	DatabaseURL  string
	GeminiAPIKey string
	LogLevel     string
	LogFormat    string
	Timezone     string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Backend:      BackendSQLite,
		SQLitePath:   "paisa.db",
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFormat:    strings.ToLower(os.Getenv("LOG_FORMAT")),
	}

	if backend := os.Getenv("PAISA_BACKEND"); backend != "" {
		cfg.Backend = Backend(strings.ToLower(strings.TrimSpace(backend)))
	}
	if path := os.Getenv("PAISA_DB_PATH"); path != "" {
		cfg.SQLitePath = path
	}

	cfg.Timezone = "Asia/Kolkata"
	if tz := os.Getenv("PAISA_TIMEZONE"); tz != "" {
		if _, err := time.LoadLocation(tz); err == nil {
			cfg.Timezone = tz
		}
	}

	// Validate required configuration.
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present.
func (c *Config) validate() error {
	var errs []string

	if !c.Backend.IsValid() {
		errs = append(errs, fmt.Sprintf("PAISA_BACKEND %q is not one of sqlite, postgres, memory", c.Backend))
	}

	if c.Backend == BackendSQLite && c.SQLitePath == "" {
		errs = append(errs, "PAISA_DB_PATH is required for the sqlite backend")
	}

	if c.Backend == BackendPostgres && c.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required for the postgres backend")
	}

	if c.LogFormat != "" && c.LogFormat != "console" && c.LogFormat != "json" {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT %q is not console or json", c.LogFormat))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// Location resolves the configured timezone. Falls back to UTC if the
// configured zone cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
