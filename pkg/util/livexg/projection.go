package livexg

import (
	"fmt"
	"math"
)

// Engine projects remaining goals for in-play snapshots.
// It holds a private copy of its configuration and no other state,
// so one Engine can serve concurrent evaluations.
type Engine struct {
	config *LivexgConfig
}

// NewEngine validates the configuration and returns an engine bound to a copy of it
func NewEngine(config *LivexgConfig) (*Engine, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}
	return &Engine{config: config.clone()}, nil
}

// Config returns a copy of the engine configuration
func (e *Engine) Config() *LivexgConfig {
	return e.config.clone()
}

// Evaluate runs every scenario named by the input policy.
// It fails with ErrInvalidDuration or ErrMatchAlreadyFinished before any
// projection is attempted, all other numeric edge cases are floored.
func (e *Engine) Evaluate(in Input) (*Output, error) {
	if err := in.Match.Validate(); err != nil {
		return nil, err
	}
	if err := in.Policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}

	tier, err := e.config.Tier(in.Policy.ScorelineTier)
	if err != nil {
		return nil, err
	}
	outcome, err := NewOutcomeEstimator(in.Policy.Outcome, e.config)
	if err != nil {
		return nil, err
	}

	adj := e.adjusters(in, tier)
	scenarios := in.Policy.scenarios()
	out := &Output{
		Scenarios: scenarios,
		Results:   make(map[Scenario]*ProjectionResult, len(scenarios)),
		Adjusters: adj,
		PreMatch:  e.preMatchView(in.PreMatch),
	}

	for _, scenario := range scenarios {
		factors, err := StrengthFactors(scenario, in, e.config)
		if err != nil {
			return nil, err
		}
		out.Results[scenario] = e.project(scenario, factors, adj, in, outcome)
	}
	return out, nil
}

// adjusters computes the multipliers shared by every scenario
func (e *Engine) adjusters(in Input, tier TierFactors) AppliedAdjusters {
	m := in.Match
	adj := AppliedAdjusters{
		RemainingMinutes: m.RemainingMinutes(),
		AverageRateHome:  AverageRate(m.HomeXG, m.MinutesPlayed),
		AverageRateAway:  AverageRate(m.AwayXG, m.MinutesPlayed),
		MomentumHome:     1.0,
		MomentumAway:     1.0,
		HomeAdvantage:    in.Policy.HomeAdvantage,
		LuckHome:         1.0,
		LuckAway:         1.0,
	}
	adj.ScoreAdjustHome, adj.ScoreAdjustAway = ScorelineAdjustment(m.HomeScore, m.AwayScore, tier)

	if in.Policy.Momentum {
		adj.MomentumHome = MomentumFactor(m.HomeXG, m.MinutesPlayed, e.config.MomentumWindow)
		adj.MomentumAway = MomentumFactor(m.AwayXG, m.MinutesPlayed, e.config.MomentumWindow)
	}
	if in.Policy.Luck {
		adj.LuckHome = LuckFactor(m.HomeScore, m.HomeXG, e.config.LuckCap, e.config.Epsilon)
		adj.LuckAway = LuckFactor(m.AwayScore, m.AwayXG, e.config.LuckCap, e.config.Epsilon)
	}
	return adj
}

// project fuses rates, strength and adjusters into λ for one scenario.
// Home advantage multiplies the home term only.
func (e *Engine) project(scenario Scenario, factors StrengthFactor, adj AppliedAdjusters, in Input, outcome OutcomeEstimator) *ProjectionResult {
	remaining := float64(adj.RemainingMinutes)

	rateHome := adj.AverageRateHome * factors.Home * adj.HomeAdvantage * adj.ScoreAdjustHome * adj.MomentumHome * adj.LuckHome
	rateAway := adj.AverageRateAway * factors.Away * adj.ScoreAdjustAway * adj.MomentumAway * adj.LuckAway

	lambdaHome := rateHome * remaining
	lambdaAway := rateAway * remaining
	lambda := (rateHome + rateAway) * remaining

	p0 := math.Exp(-lambda)
	pAtLeast1 := 1 - p0

	result := &ProjectionResult{
		Scenario:      scenario,
		Factors:       factors,
		RateHome:      rateHome,
		RateAway:      rateAway,
		LambdaHome:    lambdaHome,
		LambdaAway:    lambdaAway,
		Lambda:        lambda,
		P0:            p0,
		PAtLeast1:     pAtLeast1,
		FairOddsOver:  FairOdds(pAtLeast1),
		FairOddsUnder: FairOdds(p0),
		EVOver:        ExpectedValue(pAtLeast1, in.InPlay.Over),
		EVUnder:       ExpectedValue(p0, in.InPlay.Under),
		Distribution:  remainingDistribution(lambda, e.config.GoalRange),
		TotalLines:    totalLineProbabilities(lambda, in.Match.HomeScore+in.Match.AwayScore, e.config.TotalLines),
	}

	if outcome != nil {
		o := outcome.Estimate(in.Match.HomeScore, in.Match.AwayScore, lambdaHome, lambdaAway)
		result.Outcome = &o
	}
	return result
}

// preMatchView strips the margin from every pre-match market that was quoted
func (e *Engine) preMatchView(odds PreMatchMarketOdds) PreMatchView {
	pOver := NormalizeWithMargin(ImplicitProbability(odds.Over25), ImplicitProbability(odds.Under25), e.config.Epsilon)
	view := PreMatchView{
		Over25:       pOver,
		ImpliedTotal: ImpliedTotalGoals(pOver),
	}
	if odds.Over15 > 0 && odds.Under15 > 0 {
		view.Over15, _ = RemoveVig2(odds.Over15, odds.Under15)
	}
	if odds.Home > 0 && odds.Draw > 0 && odds.Away > 0 {
		view.Home, view.Draw, view.Away = RemoveVig3(odds.Home, odds.Draw, odds.Away)
	}
	return view
}
