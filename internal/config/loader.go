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
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if MATCHENGINE_CONFIG is set
//  3. env (prefix MATCHENGINE_)
func Load(ctx context.Context) (*Config, error) {
	_ = ctx

	base := New()
	k := koanf.New(".")

	if path := os.Getenv("MATCHENGINE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: MATCHENGINE_ADDR, MATCHENGINE_MAX_LIMIT, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("MATCHENGINE_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "matchengine_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.WorkerCount <= 0:
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	case c.MaxLimit <= 0:
		return fmt.Errorf("%w: max_limit must be positive", ErrInvalidConfig)
	case c.DefaultLimit <= 0 || c.DefaultLimit > c.MaxLimit:
		return fmt.Errorf("%w: default_limit must be within (0, max_limit]", ErrInvalidConfig)
	case c.TargetEngagement <= 0:
		return fmt.Errorf("%w: target_engagement must be positive", ErrInvalidConfig)
	case c.PriorityBoostCap < 0:
		return fmt.Errorf("%w: priority_boost_cap must not be negative", ErrInvalidConfig)
	}
	return nil
}
