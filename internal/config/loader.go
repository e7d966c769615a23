package config

import (
	"context"
	"errors"
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
//  2. file (YAML) if MATCHAUDIT_CONFIG is set
//  3. env (prefix MATCHAUDIT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("MATCHAUDIT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Join(ErrLoadConfig, err)
		}
	}

	// Environment variables: MATCHAUDIT_ADDR, MATCHAUDIT_TBA_AUTH_KEY, ...
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("MATCHAUDIT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "matchaudit_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Join(ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Join(ErrLoadConfig, err)
	}

	if cfg.Addr == "" {
		return nil, errors.Join(ErrInvalidConfig, errors.New("addr must not be empty"))
	}
	if cfg.ImportQueueSize <= 0 || cfg.MergeWorkerCount <= 0 {
		return nil, errors.Join(ErrInvalidConfig, errors.New("queue size and worker count must be positive"))
	}
	return &cfg, nil
}
