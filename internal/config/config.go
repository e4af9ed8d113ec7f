// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container.
//
// Struct tags:
//   - envPrefix: prefix applied to nested env lookups (caarlos0/env).
//   - env: environment variable name for scalar fields.
type StructuredConfig struct {
	App     App     `envPrefix:"APP_"`
	Remote  Remote  `envPrefix:"REMOTE_"`
	Storage Storage `envPrefix:"STORAGE_"`
	Export  Export  `envPrefix:"EXPORT_"`
	Workers Workers `envPrefix:"WORKERS_"`
	Server  Server  `envPrefix:"SERVER_"`

	// CatalogPath is an optional TOML resource catalog. Empty means the built-in catalog.
	// Env: CATALOG
	CatalogPath string `env:"CATALOG"`

	// JSONFilePath is the optional path to a JSON configuration file merged last.
	// Env: CONFIG
	JSONFilePath string `env:"CONFIG"`

	// EnvFile is the .env file loaded before reading the environment.
	// Env: ENV_FILE
	EnvFile string `env:"ENV_FILE"`
}

type App struct {
	// LogLevel is the minimum zerolog level ("debug", "info", "warn", "error").
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Remote holds the settings of the accounting API client.
type Remote struct {
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// Token is the bearer token sent with every API request.
	// Env: REMOTE_TOKEN
	Token string `env:"TOKEN"`

	// RateLimit is the maximum number of requests per second.
	// Env: REMOTE_RATE_LIMIT
	RateLimit float64 `env:"RATE_LIMIT"`

	// RequestTimeout bounds a single HTTP exchange.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxAttempts is the number of tries for 5xx and transport failures.
	// Env: REMOTE_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// Env: REMOTE_PER_PAGE
	PerPage int `env:"PER_PAGE"`
}

// Storage groups the local database and the export archive settings.
type Storage struct {
	DB      DB      `envPrefix:"DB_"`
	Archive Archive `envPrefix:"ARCHIVE_"`
}

// DB holds connection settings for the local relational store.
type DB struct {
	// Driver is "sqlite3" or "pgx".
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the connection string: a file path (or ":memory:") for sqlite3,
	// a postgres:// URL for pgx.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Archive configures optional upload of raw export payloads to S3.
// Archiving is disabled while Bucket is empty.
type Archive struct {
	Bucket   string `env:"BUCKET"`
	Prefix   string `env:"PREFIX"`
	Region   string `env:"REGION"`
	Endpoint string `env:"ENDPOINT"`

	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`

	UsePathStyle bool `env:"USE_PATH_STYLE"`
}

// Export holds the polling budget of asynchronous export jobs.
type Export struct {
	// Env: EXPORT_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`

	// MaxWait is the total time an export may take before it is reported as timed out.
	// Env: EXPORT_MAX_WAIT
	MaxWait time.Duration `env:"MAX_WAIT"`
}

// Workers holds the scheduling of the daemon.
type Workers struct {
	// SyncInterval is the period of incremental runs.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`

	// FullReloadAt is the local wall-clock time ("HH:MM") of the daily forced
	// full run. "off" disables it.
	// Env: WORKERS_FULL_RELOAD_AT
	FullReloadAt string `env:"FULL_RELOAD_AT"`
}

// Server holds the optional status HTTP server settings.
type Server struct {
	// HTTPAddress is "host:port". Empty disables the server.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// GetStructuredConfig loads, merges, and validates the configuration from
// all sources. flags may be nil when no command line is involved.
func GetStructuredConfig(flags *Flags) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv(flags).
		withFlags(flags).
		withJSON().
		build()
}
