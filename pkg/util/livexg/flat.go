package livexg

import (
	"encoding/json"
	"fmt"
)

// FlatInput is the flat mapping of named fields the boundaries accept.
// Pointer fields are optional and fall back to the configured defaults.
type FlatInput struct {
	League string `json:"league,omitempty"`

	MinutesPlayed int      `json:"minutes_played"`
	MatchDuration *int     `json:"match_duration,omitempty"`
	HomeScore     int      `json:"home_score"`
	AwayScore     int      `json:"away_score"`
	HomeXG        float64  `json:"home_xg"`
	AwayXG        float64  `json:"away_xg"`
	LeagueAverage *float64 `json:"league_average_goals,omitempty"`

	HomeGoalsScored   float64 `json:"home_goals_scored"`
	HomeGoalsConceded float64 `json:"home_goals_conceded"`
	HomeConversion    float64 `json:"home_conversion"`
	AwayGoalsScored   float64 `json:"away_goals_scored"`
	AwayGoalsConceded float64 `json:"away_goals_conceded"`
	AwayConversion    float64 `json:"away_conversion"`

	PreOver25Odds  float64 `json:"pre_over25_odds"`
	PreUnder25Odds float64 `json:"pre_under25_odds"`
	PreOver15Odds  float64 `json:"pre_over15_odds,omitempty"`
	PreUnder15Odds float64 `json:"pre_under15_odds,omitempty"`
	PreHomeOdds    float64 `json:"pre_home_odds,omitempty"`
	PreDrawOdds    float64 `json:"pre_draw_odds,omitempty"`
	PreAwayOdds    float64 `json:"pre_away_odds,omitempty"`

	LiveOverOdds  float64 `json:"live_over_odds"`
	LiveUnderOdds float64 `json:"live_under_odds"`

	Scenarios     []Scenario     `json:"scenarios,omitempty"`
	ScorelineTier *ScorelineTier `json:"scoreline_tier,omitempty"`
	Momentum      *bool          `json:"momentum,omitempty"`
	Luck          *bool          `json:"luck,omitempty"`
	HomeAdvantage *float64       `json:"home_advantage,omitempty"`
	Outcome       *OutcomeModel  `json:"outcome_model,omitempty"`
}

// DefaultMatchDuration is used when a snapshot omits the match duration
const DefaultMatchDuration = 90

// ParseFlatInput decodes a flat mapping, typically the arguments of a tool call
func ParseFlatInput(args map[string]any) (*FlatInput, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal arguments: %w", err)
	}
	var flat FlatInput
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return &flat, nil
}

// ToInput builds the evaluation snapshot, filling omitted policy fields from config
func (f *FlatInput) ToInput(config *LivexgConfig) Input {
	in := Input{
		Match: MatchState{
			MinutesPlayed: f.MinutesPlayed,
			MatchDuration: DefaultMatchDuration,
			HomeScore:     f.HomeScore,
			AwayScore:     f.AwayScore,
			HomeXG:        f.HomeXG,
			AwayXG:        f.AwayXG,
		},
		Home: TeamProfile{
			GoalsScoredPerMatch:   f.HomeGoalsScored,
			GoalsConcededPerMatch: f.HomeGoalsConceded,
			ConversionRate:        f.HomeConversion,
		},
		Away: TeamProfile{
			GoalsScoredPerMatch:   f.AwayGoalsScored,
			GoalsConcededPerMatch: f.AwayGoalsConceded,
			ConversionRate:        f.AwayConversion,
		},
		League: LeagueBaseline{AverageGoalsPerMatch: config.LeagueAverageGoals},
		PreMatch: PreMatchMarketOdds{
			Over25:  f.PreOver25Odds,
			Under25: f.PreUnder25Odds,
			Over15:  f.PreOver15Odds,
			Under15: f.PreUnder15Odds,
			Home:    f.PreHomeOdds,
			Draw:    f.PreDrawOdds,
			Away:    f.PreAwayOdds,
		},
		InPlay: InPlayMarketOdds{Over: f.LiveOverOdds, Under: f.LiveUnderOdds},
		Policy: config.DefaultPolicy(),
	}
	f.ApplyOverrides(&in)
	return in
}

// ApplyOverrides copies every optional field that was supplied onto in.
// Boundaries call it again after applying a league preset so explicit fields win.
func (f *FlatInput) ApplyOverrides(in *Input) {
	if f.MatchDuration != nil {
		in.Match.MatchDuration = *f.MatchDuration
	}
	if f.LeagueAverage != nil {
		in.League.AverageGoalsPerMatch = *f.LeagueAverage
	}
	if len(f.Scenarios) > 0 {
		in.Policy.Scenarios = append([]Scenario(nil), f.Scenarios...)
	}
	if f.ScorelineTier != nil {
		in.Policy.ScorelineTier = *f.ScorelineTier
	}
	if f.Momentum != nil {
		in.Policy.Momentum = *f.Momentum
	}
	if f.Luck != nil {
		in.Policy.Luck = *f.Luck
	}
	if f.HomeAdvantage != nil {
		in.Policy.HomeAdvantage = *f.HomeAdvantage
	}
	if f.Outcome != nil {
		in.Policy.Outcome = *f.Outcome
	}
}
