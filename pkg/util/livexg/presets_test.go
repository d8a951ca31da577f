package livexg

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *PresetStore {
	t.Helper()
	store, err := OpenPresetStore(":memory:")
	require.NoError(t, err, "Failed to open preset store")
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPresetRoundTrip(t *testing.T) {
	store := newTestStore(t)

	updated := time.Date(2024, 8, 16, 19, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(&LeaguePreset{
		Name:                 " EPL ",
		AverageGoalsPerMatch: 2.85,
		NeutralConversion:    0.11,
		HomeAdvantage:        1.08,
		ScorelineTier:        TierSoft,
		UpdatedAt:            updated,
	}))

	p, err := store.Get("epl")
	require.NoError(t, err)
	assert.Equal(t, "epl", p.Name)
	assert.Equal(t, 2.85, p.AverageGoalsPerMatch)
	assert.Equal(t, 0.11, p.NeutralConversion)
	assert.Equal(t, 1.08, p.HomeAdvantage)
	assert.Equal(t, TierSoft, p.ScorelineTier)
	assert.True(t, updated.Equal(p.UpdatedAt))

	// names are case insensitive
	_, err = store.Get("Epl")
	assert.NoError(t, err)
}

func TestPresetSaveReplaces(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(&LeaguePreset{Name: "serie-a", AverageGoalsPerMatch: 2.6}))
	require.NoError(t, store.Save(&LeaguePreset{Name: "serie-a", AverageGoalsPerMatch: 2.7}))

	presets, err := store.List()
	require.NoError(t, err)
	require.Len(t, presets, 1)
	assert.Equal(t, 2.7, presets[0].AverageGoalsPerMatch)
	assert.False(t, presets[0].UpdatedAt.IsZero())
}

func TestPresetListOrderAndDelete(t *testing.T) {
	store := newTestStore(t)

	for _, name := range []string{"ligue-1", "bundesliga", "eredivisie"} {
		require.NoError(t, store.Save(&LeaguePreset{Name: name, AverageGoalsPerMatch: 3.0}))
	}

	presets, err := store.List()
	require.NoError(t, err)
	var names []string
	for _, p := range presets {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"bundesliga", "eredivisie", "ligue-1"}, names)

	require.NoError(t, store.Delete("eredivisie"))
	assert.ErrorIs(t, store.Delete("eredivisie"), ErrPresetNotFound)

	_, err = store.Get("eredivisie")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestPresetValidation(t *testing.T) {
	store := newTestStore(t)

	assert.Error(t, store.Save(&LeaguePreset{Name: "", AverageGoalsPerMatch: 2.5}))
	assert.Error(t, store.Save(&LeaguePreset{Name: "mls", AverageGoalsPerMatch: 0}))
	assert.Error(t, store.Save(&LeaguePreset{Name: "mls", AverageGoalsPerMatch: 2.9, HomeAdvantage: -1}))
	assert.ErrorIs(t, store.Save(&LeaguePreset{Name: "mls", AverageGoalsPerMatch: 2.9, ScorelineTier: "brutal"}), ErrUnknownTier)

	presets, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, presets)
}

func TestPresetStorePersistsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.db")

	store, err := OpenPresetStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(&LeaguePreset{Name: "laliga", AverageGoalsPerMatch: 2.5}))
	require.NoError(t, store.Close())

	store, err = OpenPresetStore(path)
	require.NoError(t, err)
	defer store.Close()

	p, err := store.Get("laliga")
	require.NoError(t, err)
	assert.Equal(t, 2.5, p.AverageGoalsPerMatch)
}

func TestApplyPreset(t *testing.T) {
	config := DefaultLivexgConfig()
	in := newTestInput()

	cfg := ApplyPreset(&in, config, &LeaguePreset{
		Name:                 "eredivisie",
		AverageGoalsPerMatch: 3.2,
		NeutralConversion:    0.12,
		HomeAdvantage:        1.05,
		ScorelineTier:        TierNone,
	})

	assert.Equal(t, 3.2, in.League.AverageGoalsPerMatch)
	assert.Equal(t, 1.05, in.Policy.HomeAdvantage)
	assert.Equal(t, TierNone, in.Policy.ScorelineTier)
	assert.Equal(t, 0.12, cfg.NeutralConversion)
	// the shared config is untouched
	assert.Equal(t, 0.10, config.NeutralConversion)

	// zero fields leave the input alone
	in = newTestInput()
	ApplyPreset(&in, config, &LeaguePreset{Name: "x", AverageGoalsPerMatch: 2.5})
	assert.Equal(t, 1.1, in.Policy.HomeAdvantage)
	assert.Equal(t, TierHard, in.Policy.ScorelineTier)

	assert.NotNil(t, ApplyPreset(&in, config, nil))
}
