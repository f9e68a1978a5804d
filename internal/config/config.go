// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MatchesPath points at the per-match table (CSV or SQLite file),
	// resolved relative to the working directory of the process.
	MatchesPath string `koanf:"matches_path"`

	// DeliveriesPath points at the per-delivery table (CSV or SQLite file).
	DeliveriesPath string `koanf:"deliveries_path"`

	// MatchesTable and DeliveriesTable name the tables to read when the
	// corresponding source is a SQLite file. Ignored for CSV sources.
	MatchesTable    string `koanf:"matches_table"`
	DeliveriesTable string `koanf:"deliveries_table"`

	// StrikeRateMinBalls filters batsmen below this many balls faced out of
	// the strike-rate ranking. Zero keeps every batsman in.
	StrikeRateMinBalls int `koanf:"strike_rate_min_balls"`

	// RefreshEnabled allows POST /refresh to reload the dataset from disk.
	RefreshEnabled bool `koanf:"refresh_enabled"`
}

// New creates a Config using provided options. Context is accepted first to
// satisfy the project-wide convention; it is reserved for future use (e.g.,
// loading from env/files) and is currently unused.
func New(_ context.Context) *Config {
	c := &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		MatchesPath:        "data/matches.csv",
		DeliveriesPath:     "data/deliveries.csv",
		MatchesTable:       "matches",
		DeliveriesTable:    "deliveries",
		StrikeRateMinBalls: 0,
		RefreshEnabled:     true,
	}
	return c
}
