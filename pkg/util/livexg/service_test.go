package livexg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testArgs is the flat form of newTestInput, as a tool call would send it
func testArgs() map[string]any {
	return map[string]any{
		"minutes_played":      70.0,
		"home_score":          1.0,
		"away_score":          0.0,
		"home_xg":             1.31,
		"away_xg":             0.57,
		"home_goals_scored":   1.7,
		"home_goals_conceded": 1.2,
		"home_conversion":     0.10,
		"away_goals_scored":   1.1,
		"away_goals_conceded": 1.5,
		"away_conversion":     0.10,
		"pre_over25_odds":     1.9,
		"pre_under25_odds":    1.9,
		"live_over_odds":      1.6,
		"live_under_odds":     2.2,
		"scenarios":           []any{"baseline"},
		"momentum":            false,
	}
}

func TestParseFlatInputDefaults(t *testing.T) {
	flat, err := ParseFlatInput(testArgs())
	require.NoError(t, err)

	config := DefaultLivexgConfig()
	in := flat.ToInput(config)

	want := newTestInput()
	assert.Equal(t, want.Match, in.Match)
	assert.Equal(t, want.Home, in.Home)
	assert.Equal(t, want.Away, in.Away)
	assert.Equal(t, want.League, in.League)
	assert.Equal(t, want.InPlay, in.InPlay)
	assert.Equal(t, want.Policy, in.Policy)
}

func TestParseFlatInputOverrides(t *testing.T) {
	args := testArgs()
	args["match_duration"] = 96.0
	args["league_average_goals"] = 3.0
	args["scoreline_tier"] = "soft"
	args["luck"] = true
	args["home_advantage"] = 1.0
	args["outcome_model"] = "poisson"
	args["pre_home_odds"] = 2.1
	delete(args, "scenarios")
	delete(args, "momentum")

	flat, err := ParseFlatInput(args)
	require.NoError(t, err)
	in := flat.ToInput(DefaultLivexgConfig())

	assert.Equal(t, 96, in.Match.MatchDuration)
	assert.Equal(t, 3.0, in.League.AverageGoalsPerMatch)
	assert.Equal(t, TierSoft, in.Policy.ScorelineTier)
	assert.True(t, in.Policy.Luck)
	assert.Equal(t, 1.0, in.Policy.HomeAdvantage)
	assert.Equal(t, OutcomePoisson, in.Policy.Outcome)
	assert.Equal(t, 2.1, in.PreMatch.Home)
	// omitted fields fall back to the configured policy
	assert.Equal(t, []Scenario{ScenarioBaseline, ScenarioMarket}, in.Policy.Scenarios)
	assert.True(t, in.Policy.Momentum)
}

func TestParseFlatInputRejectsBadTypes(t *testing.T) {
	args := testArgs()
	args["minutes_played"] = "seventy"
	_, err := ParseFlatInput(args)
	assert.Error(t, err)
}

func TestServiceProject(t *testing.T) {
	svc, err := NewService(DefaultLivexgConfig(), nil)
	require.NoError(t, err)

	flat, err := ParseFlatInput(testArgs())
	require.NoError(t, err)
	out, err := svc.Project(flat)
	require.NoError(t, err)
	assert.InDelta(t, 0.535627, out.Results[ScenarioBaseline].Lambda, 1e-6)

	flat.League = "epl"
	_, err = svc.Project(flat)
	assert.Error(t, err, "a league needs a preset store")
}

func TestServiceAppliesPresetUnderExplicitFields(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(&LeaguePreset{
		Name:                 "eredivisie",
		AverageGoalsPerMatch: 3.2,
		HomeAdvantage:        1.3,
		ScorelineTier:        TierNone,
	}))

	svc, err := NewService(DefaultLivexgConfig(), store)
	require.NoError(t, err)

	args := testArgs()
	args["league"] = "Eredivisie"
	args["scoreline_tier"] = "hard"
	flat, err := ParseFlatInput(args)
	require.NoError(t, err)

	out, err := svc.Project(flat)
	require.NoError(t, err)
	assert.Equal(t, 1.3, out.Adjusters.HomeAdvantage)
	// the request asked for the hard tier explicitly
	assert.Equal(t, 0.7, out.Adjusters.ScoreAdjustHome)

	// league average cancels in the baseline factors
	base := out.Results[ScenarioBaseline]
	assert.InDelta(t, 1.7/1.5, base.Factors.Home, 1e-12)

	_, err = svc.Project(&FlatInput{League: "mls", MinutesPlayed: 10})
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestServiceReturnsDomainErrors(t *testing.T) {
	svc, err := NewService(DefaultLivexgConfig(), nil)
	require.NoError(t, err)

	args := testArgs()
	args["minutes_played"] = 0.0
	flat, err := ParseFlatInput(args)
	require.NoError(t, err)
	_, err = svc.Project(flat)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestNewServiceRejectsBadConfig(t *testing.T) {
	config := DefaultLivexgConfig()
	config.Epsilon = 0
	_, err := NewService(config, nil)
	assert.Error(t, err)
}

func TestOmittedScenariosFollowConfiguredPolicy(t *testing.T) {
	args := testArgs()
	delete(args, "scenarios")
	flat, err := ParseFlatInput(args)
	require.NoError(t, err)

	svc, err := NewService(DefaultLivexgConfig(), nil)
	require.NoError(t, err)
	out, err := svc.Project(flat)
	require.NoError(t, err)
	assert.Equal(t, []Scenario{ScenarioBaseline, ScenarioMarket}, out.Scenarios)

	// a config that names no scenario evaluates all of them
	config := DefaultLivexgConfig()
	config.Policy.Scenarios = nil
	svc, err = NewService(config, nil)
	require.NoError(t, err)
	out, err = svc.Project(flat)
	require.NoError(t, err)
	assert.Equal(t, AllScenarios, out.Scenarios)
	assert.Len(t, out.Results, 3)
}
