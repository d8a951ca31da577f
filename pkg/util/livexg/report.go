package livexg

import "math"

// Report is the display form of an Output.
// Probabilities and λ carry 3 decimals, prices and factors 2, EV is a percentage with 1.
type Report struct {
	Scenarios []ScenarioReport `json:"scenarios"`
	Dynamic   DynamicReport    `json:"dynamic_factors"`
	PreMatch  PreMatchReport   `json:"pre_match"`
}

// ScenarioReport is one scenario rounded for display
type ScenarioReport struct {
	Scenario       Scenario              `json:"scenario"`
	Lambda         float64               `json:"lambda"`
	P0             float64               `json:"p_0_goals"`
	PAtLeast1      float64               `json:"p_at_least_1_goal"`
	FairOddsOver   Odds                  `json:"fair_odds_over"`
	FairOddsUnder  Odds                  `json:"fair_odds_under"`
	EVOverPercent  float64               `json:"ev_over_pct"`
	EVUnderPercent float64               `json:"ev_under_pct"`
	EdgeOver       string                `json:"edge_over"`
	EdgeUnder      string                `json:"edge_under"`
	FactorHome     float64               `json:"factor_home"`
	FactorAway     float64               `json:"factor_away"`
	TotalLines     []LineProbability     `json:"total_lines,omitempty"`
	Outcome        *OutcomeProbabilities `json:"outcome,omitempty"`
}

// DynamicReport shows the scenario independent adjusters
type DynamicReport struct {
	RemainingMinutes int     `json:"remaining_minutes"`
	MomentumHome     float64 `json:"momentum_home"`
	MomentumAway     float64 `json:"momentum_away"`
	HomeAdvantage    float64 `json:"home_advantage"`
	ScoreAdjustHome  float64 `json:"score_adjust_home"`
	ScoreAdjustAway  float64 `json:"score_adjust_away"`
	LuckHome         float64 `json:"luck_home"`
	LuckAway         float64 `json:"luck_away"`
}

// PreMatchReport shows the margin free pre-match market
type PreMatchReport struct {
	Over25       float64 `json:"p_over25"`
	ImpliedTotal float64 `json:"implied_total_goals"`
	Over15       float64 `json:"p_over15,omitempty"`
	Home         float64 `json:"p_home,omitempty"`
	Draw         float64 `json:"p_draw,omitempty"`
	Away         float64 `json:"p_away,omitempty"`
}

const (
	EdgeValue   = "value"
	EdgeNoValue = "no value"
)

// NewReport rounds an Output for display, scenarios in evaluation order
func NewReport(out *Output) *Report {
	r := &Report{
		Dynamic: DynamicReport{
			RemainingMinutes: out.Adjusters.RemainingMinutes,
			MomentumHome:     Round(out.Adjusters.MomentumHome, 2),
			MomentumAway:     Round(out.Adjusters.MomentumAway, 2),
			HomeAdvantage:    Round(out.Adjusters.HomeAdvantage, 2),
			ScoreAdjustHome:  Round(out.Adjusters.ScoreAdjustHome, 2),
			ScoreAdjustAway:  Round(out.Adjusters.ScoreAdjustAway, 2),
			LuckHome:         Round(out.Adjusters.LuckHome, 2),
			LuckAway:         Round(out.Adjusters.LuckAway, 2),
		},
		PreMatch: PreMatchReport{
			Over25:       Round(out.PreMatch.Over25, 3),
			ImpliedTotal: out.PreMatch.ImpliedTotal,
			Over15:       Round(out.PreMatch.Over15, 3),
			Home:         Round(out.PreMatch.Home, 3),
			Draw:         Round(out.PreMatch.Draw, 3),
			Away:         Round(out.PreMatch.Away, 3),
		},
	}

	for _, s := range out.Scenarios {
		res, ok := out.Results[s]
		if !ok {
			continue
		}
		sr := ScenarioReport{
			Scenario:       s,
			Lambda:         Round(res.Lambda, 3),
			P0:             Round(res.P0, 3),
			PAtLeast1:      Round(res.PAtLeast1, 3),
			FairOddsOver:   roundOdds(res.FairOddsOver),
			FairOddsUnder:  roundOdds(res.FairOddsUnder),
			EVOverPercent:  Round(res.EVOver*100, 1),
			EVUnderPercent: Round(res.EVUnder*100, 1),
			EdgeOver:       edge(res.EVOver),
			EdgeUnder:      edge(res.EVUnder),
			FactorHome:     Round(res.Factors.Home, 2),
			FactorAway:     Round(res.Factors.Away, 2),
		}
		for _, l := range res.TotalLines {
			sr.TotalLines = append(sr.TotalLines, LineProbability{Line: l.Line, Over: Round(l.Over, 3), Under: Round(l.Under, 3)})
		}
		if res.Outcome != nil {
			sr.Outcome = &OutcomeProbabilities{
				Model: res.Outcome.Model,
				Home:  Round(res.Outcome.Home, 3),
				Draw:  Round(res.Outcome.Draw, 3),
				Away:  Round(res.Outcome.Away, 3),
			}
		}
		r.Scenarios = append(r.Scenarios, sr)
	}
	return r
}

// Round rounds half away from zero to the given number of decimals
func Round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}

func roundOdds(o Odds) Odds {
	if !o.Finite() {
		return o
	}
	return Odds(Round(float64(o), 2))
}

func edge(ev float64) string {
	if ev > 0 {
		return EdgeValue
	}
	return EdgeNoValue
}
