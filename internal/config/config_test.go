package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultNormalisedPriorExact(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 0.5, cfg.NormalisedPrior(1))
	assert.InDelta(t, 0.25/3, cfg.NormalisedPrior(2), 1e-12)
	assert.InDelta(t, 0.125/4, cfg.NormalisedPrior(3), 1e-12)
	assert.InDelta(t, 0.0625/2, cfg.NormalisedPrior(4), 1e-12)
}

func TestRemainingMassDecreasesAcrossIterations(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1.0, cfg.RemainingMass(1))
	assert.InDelta(t, 0.5, cfg.RemainingMass(2), 1e-12)
	assert.InDelta(t, 0.25, cfg.RemainingMass(3), 1e-12)
	assert.InDelta(t, 0.125, cfg.RemainingMass(4), 1e-12)
}

func TestTurnPenaltyOffByDefault(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.UseTurnPenalty)
}

func TestCollisionStrictByDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.CollisionStrict)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	cfg := Default()
	cfg.AStarTrialBudget = 500

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, loaded.AStarTrialBudget)
	assert.Equal(t, cfg.HalfProbabilityScore, loaded.HalfProbabilityScore)
}
