// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"time"
	_ "time/tzdata" // courthouse zone on hosts without a zoneinfo database

	"github.com/caarlos0/env/v11"

	"github.com/taibuivan/audiencia/pkg/query"
)

// # Configuration Schema

// Config holds all runtime configuration for the kiosk API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Cryptographic keys for staff token signing
	JWTPrivKeyPath string `env:"JWT_PRIVATE_KEY_PATH,required"`
	JWTPubKeyPath  string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// PasswordHashCost is the bcrypt cost for staff credentials.
	PasswordHashCost int `env:"PASSWORD_HASH_COST" envDefault:"10"`

	// Break-glass administrative identity. Leaving the hash empty disables it.
	BreakGlassEmail        string `env:"BREAKGLASS_EMAIL"         envDefault:"admin@juzgado.gob.gt"`
	BreakGlassPasswordHash string `env:"BREAKGLASS_PASSWORD_HASH"`

	// Timezone is the courthouse zone used to decide which day a registration belongs to.
	Timezone string `env:"KIOSK_TIMEZONE" envDefault:"America/Guatemala"`

	// Object Storage (MinIO / S3-compatible) for CSV export archives
	S3Bucket    string `env:"S3_BUCKET"`
	S3Region    string `env:"S3_REGION"     envDefault:"auto"`
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3UseSSL    bool   `env:"S3_USE_SSL"    envDefault:"true"`

	// Cross-Origin Resource Sharing (comma separated kiosk and dashboard origins)
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	// Fail fast on an unknown zone instead of grouping registrations under UTC.
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("config: invalid KIOSK_TIMEZONE %q: %w", cfg.Timezone, err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location returns the courthouse timezone. Load has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ArchiveEnabled reports whether CSV exports can be archived to object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != "" && c.S3Endpoint != ""
}

// BreakGlassEnabled reports whether the administrative bypass identity is configured.
func (c *Config) BreakGlassEnabled() bool {
	return c.BreakGlassEmail != "" && c.BreakGlassPasswordHash != ""
}

// AllowedOrigins returns the configured CORS origins.
func (c *Config) AllowedOrigins() []string {
	return query.StringSlice(c.ExtraOrigins)
}
