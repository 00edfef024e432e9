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
//  2. file (YAML) if MANASCORE_CONFIG is set
//  3. env (prefix MANASCORE_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("MANASCORE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: MANASCORE_WORKER_COUNT, MANASCORE_TOP_N, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("MANASCORE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "manascore_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.CardsPath == "" {
		return fmt.Errorf("%w: cards_path must not be empty", ErrInvalidConfig)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.TopMechanicsN < 1 {
		return fmt.Errorf("%w: top_mechanics_n must be positive", ErrInvalidConfig)
	}
	if c.ClusterCount < 1 {
		return fmt.Errorf("%w: cluster_count must be positive", ErrInvalidConfig)
	}
	if c.IneligiblePenalty < 0 || c.IneligiblePenalty >= 1 {
		return fmt.Errorf("%w: ineligible_penalty must be in [0,1)", ErrInvalidConfig)
	}
	if mode := strings.ToLower(c.EligibilityMode); mode != "exclude" && mode != "penalize" {
		return fmt.Errorf("%w: eligibility_mode must be exclude or penalize", ErrInvalidConfig)
	}
	return nil
}
