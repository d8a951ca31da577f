package livexg

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDuration is returned when no minutes have been played
	ErrInvalidDuration = errors.New("minutes played must be greater than zero")
	// ErrMatchAlreadyFinished is returned when no playing time remains
	ErrMatchAlreadyFinished = errors.New("match already finished")
)

// MatchState is the in-play snapshot of a match
type MatchState struct {
	MinutesPlayed int     `json:"minutes_played"`
	MatchDuration int     `json:"match_duration"`
	HomeScore     int     `json:"home_score"`
	AwayScore     int     `json:"away_score"`
	HomeXG        float64 `json:"home_xg"`
	AwayXG        float64 `json:"away_xg"`
}

// RemainingMinutes is the playing time left before full time
func (m MatchState) RemainingMinutes() int {
	return m.MatchDuration - m.MinutesPlayed
}

// Validate reports the two conditions under which no projection is made
func (m MatchState) Validate() error {
	if m.MinutesPlayed <= 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidDuration, m.MinutesPlayed)
	}
	if m.RemainingMinutes() <= 0 {
		return fmt.Errorf("%w: %d of %d minutes played", ErrMatchAlreadyFinished, m.MinutesPlayed, m.MatchDuration)
	}
	return nil
}

// TeamProfile holds the pre-match statistics of one side
type TeamProfile struct {
	GoalsScoredPerMatch   float64 `json:"goals_scored"`
	GoalsConcededPerMatch float64 `json:"goals_conceded"`
	ConversionRate        float64 `json:"conversion"`
}

// LeagueBaseline normalises team offense and defense into relative factors
type LeagueBaseline struct {
	AverageGoalsPerMatch float64 `json:"average_goals"`
}

// PreMatchMarketOdds are the closing pre-match prices.
// Only the 2.5 line feeds a projection, the rest is carried for display.
type PreMatchMarketOdds struct {
	Over25  float64 `json:"over25"`
	Under25 float64 `json:"under25"`
	Over15  float64 `json:"over15,omitempty"`
	Under15 float64 `json:"under15,omitempty"`
	Home    float64 `json:"home,omitempty"`
	Draw    float64 `json:"draw,omitempty"`
	Away    float64 `json:"away,omitempty"`
}

// InPlayMarketOdds price "at least one more goal" against "no more goals"
type InPlayMarketOdds struct {
	Over  float64 `json:"over"`
	Under float64 `json:"under"`
}

// Policy selects which variant of the pipeline runs
type Policy struct {
	Scenarios     []Scenario    `json:"scenarios"`
	ScorelineTier ScorelineTier `json:"scoreline_tier"`
	Momentum      bool          `json:"momentum"`
	Luck          bool          `json:"luck"`
	HomeAdvantage float64       `json:"home_advantage"`
	Outcome       OutcomeModel  `json:"outcome"`
}

// Validate checks every enumerated option in the policy
func (p Policy) Validate() error {
	for _, s := range p.Scenarios {
		switch s {
		case ScenarioBaseline, ScenarioDirect, ScenarioMarket:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownScenario, s)
		}
	}
	switch p.ScorelineTier {
	case TierHard, TierSoft, TierNone, "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTier, p.ScorelineTier)
	}
	switch p.Outcome {
	case OutcomeNone, OutcomeHeuristic, OutcomePoisson, "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutcomeModel, p.Outcome)
	}
	if p.HomeAdvantage <= 0 {
		return fmt.Errorf("home advantage must be positive, got: %f", p.HomeAdvantage)
	}
	return nil
}

// scenarios returns the scenarios to run, all of them when none are named
func (p Policy) scenarios() []Scenario {
	if len(p.Scenarios) == 0 {
		return AllScenarios
	}
	seen := make(map[Scenario]bool, len(p.Scenarios))
	var out []Scenario
	for _, s := range p.Scenarios {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// Input is the complete snapshot for one evaluation
type Input struct {
	Match    MatchState         `json:"match"`
	Home     TeamProfile        `json:"home"`
	Away     TeamProfile        `json:"away"`
	League   LeagueBaseline     `json:"league"`
	PreMatch PreMatchMarketOdds `json:"pre_match"`
	InPlay   InPlayMarketOdds   `json:"in_play"`
	Policy   Policy             `json:"policy"`
}

// StrengthFactor is a pair of pace multipliers relative to a league neutral pace
type StrengthFactor struct {
	Home float64 `json:"home"`
	Away float64 `json:"away"`
}

// Odds is a decimal price. +Inf means there is no finite fair price.
type Odds float64

// NoFairOdds is the price of an outcome with zero modelled probability
var NoFairOdds = Odds(math.Inf(1))

// Finite reports whether the price is a usable number
func (o Odds) Finite() bool {
	return !math.IsInf(float64(o), 0) && !math.IsNaN(float64(o))
}

// MarshalJSON encodes a missing fair price as null
func (o Odds) MarshalJSON() ([]byte, error) {
	if !o.Finite() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(o))
}

// LineProbability is the chance of the final total landing over or under a line
type LineProbability struct {
	Line  float64 `json:"line"`
	Over  float64 `json:"over"`
	Under float64 `json:"under"`
}

// OutcomeProbabilities is a home / draw / away triple summing to one
type OutcomeProbabilities struct {
	Model OutcomeModel `json:"model"`
	Home  float64      `json:"home"`
	Draw  float64      `json:"draw"`
	Away  float64      `json:"away"`
}

// ProjectionResult is the projection of one strength scenario
type ProjectionResult struct {
	Scenario      Scenario              `json:"scenario"`
	Factors       StrengthFactor        `json:"factors"`
	RateHome      float64               `json:"rate_home"`
	RateAway      float64               `json:"rate_away"`
	LambdaHome    float64               `json:"lambda_home"`
	LambdaAway    float64               `json:"lambda_away"`
	Lambda        float64               `json:"lambda"`
	P0            float64               `json:"p0"`
	PAtLeast1     float64               `json:"p_at_least_1"`
	FairOddsOver  Odds                  `json:"fair_odds_over"`
	FairOddsUnder Odds                  `json:"fair_odds_under"`
	EVOver        float64               `json:"ev_over"`
	EVUnder       float64               `json:"ev_under"`
	Distribution  []float64             `json:"distribution"`
	TotalLines    []LineProbability     `json:"total_lines"`
	Outcome       *OutcomeProbabilities `json:"outcome,omitempty"`
}

// AppliedAdjusters records the scenario independent multipliers actually used
type AppliedAdjusters struct {
	RemainingMinutes int     `json:"remaining_minutes"`
	AverageRateHome  float64 `json:"average_rate_home"`
	AverageRateAway  float64 `json:"average_rate_away"`
	MomentumHome     float64 `json:"momentum_home"`
	MomentumAway     float64 `json:"momentum_away"`
	HomeAdvantage    float64 `json:"home_advantage"`
	ScoreAdjustHome  float64 `json:"score_adjust_home"`
	ScoreAdjustAway  float64 `json:"score_adjust_away"`
	LuckHome         float64 `json:"luck_home"`
	LuckAway         float64 `json:"luck_away"`
}

// PreMatchView shows the vig-free pre-match market, for display only
type PreMatchView struct {
	Over25       float64 `json:"over25"`
	ImpliedTotal float64 `json:"implied_total"`
	Over15       float64 `json:"over15,omitempty"`
	Home         float64 `json:"home,omitempty"`
	Draw         float64 `json:"draw,omitempty"`
	Away         float64 `json:"away,omitempty"`
}

// Output maps every evaluated scenario to its projection
type Output struct {
	Scenarios []Scenario                     `json:"scenarios"`
	Results   map[Scenario]*ProjectionResult `json:"results"`
	Adjusters AppliedAdjusters               `json:"adjusters"`
	PreMatch  PreMatchView                   `json:"pre_match"`
}
