package simtool

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibescout/matchaudit/internal/domain/model"
	"github.com/vibescout/matchaudit/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func TestGenerateMatch(t *testing.T) {
	config := &Config{EventKey: "2025sim", Matches: 1, Devices: 1}
	var stats Stats

	records := generateMatch(config, 7, &stats)
	require.Len(t, records, 6)

	red, blue := 0, 0
	teams := map[string]bool{}
	for _, rec := range records {
		assert.Equal(t, "2025sim", rec.EventKey)
		assert.Equal(t, "7", rec.MatchNumber)
		assert.NotEmpty(t, rec.ID)
		assert.False(t, teams[rec.TeamKey], "team %s appears twice", rec.TeamKey)
		teams[rec.TeamKey] = true

		if rec.Alliance == model.AllianceRed {
			red++
		} else {
			blue++
		}
	}
	assert.Equal(t, 3, red)
	assert.Equal(t, 3, blue)
}

func TestGenerateMatchStableTeams(t *testing.T) {
	config := &Config{EventKey: "2025sim"}
	var stats Stats

	first := generateMatch(config, 7, &stats)
	second := generateMatch(config, 7, &stats)
	for i := range first {
		assert.Equal(t, first[i].TeamKey, second[i].TeamKey,
			"repeated runs must collide on the same record keys")
	}
}

func TestGenerateMatchCorruption(t *testing.T) {
	var stats Stats

	t.Run("zero rate corrupts nothing", func(t *testing.T) {
		config := &Config{EventKey: "2025sim", CorruptRate: 0}
		generateMatch(config, 1, &stats)
		assert.Zero(t, stats.RecordsCorrupted)
	})

	t.Run("full rate corrupts everything", func(t *testing.T) {
		stats = Stats{}
		config := &Config{EventKey: "2025sim", CorruptRate: 1.0}
		generateMatch(config, 1, &stats)
		assert.Equal(t, 6, stats.RecordsCorrupted)
	})
}

func TestGenerateBatches(t *testing.T) {
	ctx := context.Background()
	config := &Config{EventKey: "2025sim", Matches: 4, Devices: 3}
	var stats Stats

	batches := generateBatches(ctx, config, &stats)
	require.Len(t, batches, 3)

	total := 0
	for _, batch := range batches {
		assert.NotEmpty(t, batch)
		total += len(batch)
	}
	assert.Equal(t, 4*6, total)
	assert.Equal(t, 24, stats.RecordsGenerated)
}
