// Package config provides centralized configuration management for the
// ingestion engine. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Input    InputConfig
	Output   OutputConfig
	Parse    ParseConfig
	Races    RaceConfig
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// InputConfig describes where the source spreadsheets live and which files
// belong to which election cycle.
type InputConfig struct {
	// Dir is the directory containing the source files. Required for
	// ingestion; the results server never reads it.
	Dir string `env:"INGEST_INPUT_DIR"`

	// Jobs lists the ingestion jobs as "year:format:pattern" entries, where
	// format is "flat" (single-sheet files) or "sheets" (one sheet per race).
	Jobs []string `env:"INGEST_JOBS" default:"2014:flat:statewide_2014*,2016:flat:*_2016*,2018:sheets:*_2018.xlsx,2020:sheets:*_2020.xlsx"`
}

// OutputConfig describes where the canonical tables and dashboard artifacts
// are written.
type OutputConfig struct {
	// Dir is the output directory (default: outputs)
	Dir string `env:"INGEST_OUTPUT_DIR" default:"outputs"`

	// DashboardDir is the subdirectory for dashboard JSON artifacts
	// (default: dashboard_data)
	DashboardDir string `env:"INGEST_DASHBOARD_DIR" default:"dashboard_data"`
}

// ParseConfig holds the spreadsheet format markers and parser limits.
// These vary rarely between election cycles but are configurable so a new
// cycle does not require a code change.
type ParseConfig struct {
	// TotalSuffix marks precinct vote-total columns in flat headers
	TotalSuffix string `env:"PARSE_TOTAL_SUFFIX" default:" Total"`

	// PrecinctSeparator distinguishes "County-Precinct" totals from bare
	// county aggregates
	PrecinctSeparator string `env:"PARSE_PRECINCT_SEPARATOR" default:"-"`

	// TotalMarker ends the precinct axis in per-race sheets
	TotalMarker string `env:"PARSE_TOTAL_MARKER" default:"Total:"`

	// ExcludedSheets are workbook sheets skipped by exact name match
	ExcludedSheets []string `env:"PARSE_EXCLUDED_SHEETS" default:"Table of Contents,Registered Voters"`

	// Lookahead is how many columns to scan for a candidate's total column
	Lookahead int `env:"PARSE_LOOKAHEAD" default:"5"`

	// Concurrency is the maximum number of files parsed in parallel
	Concurrency int `env:"PARSE_CONCURRENCY" default:"4"`
}

// RaceConfig holds the race-taxonomy keyword sets.
type RaceConfig struct {
	// Keywords identify tracked races by case-insensitive substring match.
	// Empty means use the built-in default set.
	Keywords []string `env:"RACE_KEYWORDS"`

	// StatewideKeywords identify inherently statewide races for validation.
	// Empty means use the built-in default set.
	StatewideKeywords []string `env:"RACE_STATEWIDE_KEYWORDS"`
}

// DatabaseConfig holds optional PostgreSQL persistence settings.
// When URL is empty, runs are not persisted and only flat files are written.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string (optional)
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// MaxConns is the maximum number of connections in the pool (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// ConnectTimeout bounds the initial connection attempt (default: 10s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"10s"`
}

// ServerConfig holds settings for the results server (resultsd).
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the listen address for the results server.
func (s ServerConfig) Addr() string {
	return addr(s.Host, s.Port)
}
