package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibescout/matchaudit/internal/domain/compare"
	"github.com/vibescout/matchaudit/internal/domain/severity"
	"github.com/vibescout/matchaudit/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":9080", cfg.Addr)
	assert.Equal(t, 1024, cfg.ImportQueueSize)
	assert.Equal(t, 2, cfg.MergeWorkerCount)
	assert.Equal(t, 5, cfg.BatchReviewThreshold)
	assert.Equal(t, "validation.yaml", cfg.ValidationConfigPath)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MATCHAUDIT_ADDR", ":7070")
	t.Setenv("MATCHAUDIT_LOG_LEVEL", "debug")
	t.Setenv("MATCHAUDIT_TBA_AUTH_KEY", "secret")
	t.Setenv("MATCHAUDIT_MERGE_WORKER_COUNT", "4")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "secret", cfg.TBAAuthKey)
	assert.Equal(t, 4, cfg.MergeWorkerCount)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":6060\"\nimport_queue_size: 64\n"), 0o600))
	t.Setenv("MATCHAUDIT_CONFIG", path)

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ":6060", cfg.Addr)
	assert.Equal(t, 64, cfg.ImportQueueSize)

	t.Run("env wins over file", func(t *testing.T) {
		t.Setenv("MATCHAUDIT_ADDR", ":6061")
		cfg, err := Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, ":6061", cfg.Addr)
	})
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("MATCHAUDIT_IMPORT_QUEUE_SIZE", "0")
	_, err := Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("MATCHAUDIT_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(context.Background())
	assert.ErrorIs(t, err, ErrLoadConfig)
}

func TestValidationStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "validation.yaml")
	store := NewValidationStore(path)

	cfg := compare.DefaultConfig()
	cfg.MatchFailCriticalCount = 7
	cfg.Categories["endgame"] = severity.Thresholds{
		MinorAbsolute:    1,
		WarningAbsolute:  1,
		CriticalAbsolute: 2,
	}
	cfg.Enabled["algae"] = false

	require.NoError(t, store.Save(ctx, cfg))

	loaded := store.Load(ctx)
	assert.Equal(t, 7, loaded.MatchFailCriticalCount)
	assert.Equal(t, cfg.Default, loaded.Default)
	assert.Equal(t, cfg.Categories["endgame"], loaded.Categories["endgame"])
	assert.False(t, loaded.Enabled["algae"])
}

func TestValidationStoreFallbacks(t *testing.T) {
	ctx := context.Background()

	t.Run("missing file yields defaults", func(t *testing.T) {
		store := NewValidationStore(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Equal(t, compare.DefaultConfig(), store.Load(ctx))
	})

	t.Run("corrupt file yields defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "validation.yaml")
		require.NoError(t, os.WriteFile(path, []byte("{not yaml: ["), 0o600))
		store := NewValidationStore(path)
		assert.Equal(t, compare.DefaultConfig(), store.Load(ctx))
	})

	t.Run("empty path disables persistence", func(t *testing.T) {
		store := NewValidationStore("")
		assert.NoError(t, store.Save(ctx, compare.DefaultConfig()))
		assert.Equal(t, compare.DefaultConfig(), store.Load(ctx))
	})
}
