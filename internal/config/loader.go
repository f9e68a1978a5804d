package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if GULLY_CONFIG is set
//  3. env (prefix GULLY_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GULLY_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GULLY_ADDR, GULLY_MATCHES_PATH, ...
	// Map env keys like GULLY_MATCHES_PATH -> matches_path (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GULLY_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gully_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.MatchesPath == "" {
		return nil, fmt.Errorf("%w: matches_path must not be empty", ErrInvalidConfig)
	}
	if cfg.DeliveriesPath == "" {
		return nil, fmt.Errorf("%w: deliveries_path must not be empty", ErrInvalidConfig)
	}
	if cfg.StrikeRateMinBalls < 0 {
		return nil, fmt.Errorf("%w: strike_rate_min_balls must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
