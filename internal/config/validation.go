package config

import (
	"context"
	"errors"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/vibescout/matchaudit/internal/domain/compare"
	"github.com/vibescout/matchaudit/internal/domain/severity"
	"github.com/vibescout/matchaudit/pkg/logger"
)

// File permission for the persisted validation config.
const validationFileMode = 0o600

// ValidationStore persists the tunable validation configuration as a
// YAML file. There is exactly one "current active config"; losing or
// corrupting the file is never fatal, the hard-coded defaults take over.
type ValidationStore struct {
	path string
}

// NewValidationStore creates a store writing to path. An empty path
// disables persistence: Load returns defaults, Save is a no-op.
func NewValidationStore(path string) *ValidationStore {
	return &ValidationStore{path: path}
}

// Load reads the persisted validation config. An unparseable or missing
// file falls back to the defaults silently, logging the failure; it
// never blocks the workflow.
func (s *ValidationStore) Load(ctx context.Context) compare.Config {
	cfg := compare.DefaultConfig()
	if s.path == "" {
		return cfg
	}
	if _, err := os.Stat(s.path); err != nil {
		return cfg
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(s.path), yaml.Parser()); err != nil {
		logger.Get().Warn(ctx, "validation config unreadable, using defaults",
			logger.String("path", s.path), logger.Error(err))
		return compare.DefaultConfig()
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		logger.Get().Warn(ctx, "validation config unparseable, using defaults",
			logger.String("path", s.path), logger.Error(err))
		return compare.DefaultConfig()
	}
	return cfg
}

// Save persists the validation config.
func (s *ValidationStore) Save(_ context.Context, cfg compare.Config) error {
	if s.path == "" {
		return nil
	}
	out, err := yaml.Parser().Marshal(validationMap(cfg))
	if err != nil {
		return errors.Join(ErrSaveConfig, err)
	}
	if err := os.WriteFile(s.path, out, validationFileMode); err != nil {
		return errors.Join(ErrSaveConfig, err)
	}
	return nil
}

func thresholdsMap(t severity.Thresholds) map[string]interface{} {
	return map[string]interface{}{
		"minor_absolute":    t.MinorAbsolute,
		"warning_absolute":  t.WarningAbsolute,
		"critical_absolute": t.CriticalAbsolute,
		"minor_percent":     t.MinorPercent,
		"warning_percent":   t.WarningPercent,
		"critical_percent":  t.CriticalPercent,
	}
}

// validationMap flattens the config into koanf-tag keys for marshaling.
func validationMap(cfg compare.Config) map[string]interface{} {
	cats := make(map[string]interface{}, len(cfg.Categories))
	for name, t := range cfg.Categories {
		cats[name] = thresholdsMap(t)
	}
	enabled := make(map[string]interface{}, len(cfg.Enabled))
	for name, v := range cfg.Enabled {
		enabled[name] = v
	}
	return map[string]interface{}{
		"default":                      thresholdsMap(cfg.Default),
		"categories":                   cats,
		"enabled":                      enabled,
		"alliance_fail_critical_count": cfg.AllianceFailCriticalCount,
		"match_flag_critical_count":    cfg.MatchFlagCriticalCount,
		"match_fail_critical_count":    cfg.MatchFailCriticalCount,
	}
}
