package livexg

import (
	"fmt"
	"math"
)

// BaselineFactors rates each side against a league neutral pace.
//
//	offense = scored / league average
//	defense = league average / opponent conceded
//	factor  = offense * defense * conversion / neutral conversion
//
// Home attacks against the away defence and vice versa.
func BaselineFactors(home, away TeamProfile, league LeagueBaseline, neutralConversion, eps float64) StrengthFactor {
	avg := Floor(league.AverageGoalsPerMatch, eps)
	side := func(attack, defend TeamProfile) float64 {
		offense := attack.GoalsScoredPerMatch / avg
		defense := avg / Floor(defend.GoalsConcededPerMatch, eps)
		return offense * defense * conversionRelative(attack, neutralConversion, eps)
	}
	return StrengthFactor{
		Home: side(home, away),
		Away: side(away, home),
	}
}

// DirectFactors compares attack with the opposing defence without league
// normalisation. It is a sensitivity cross-check on BaselineFactors.
func DirectFactors(home, away TeamProfile, neutralConversion, eps float64) StrengthFactor {
	side := func(attack, defend TeamProfile) float64 {
		return attack.GoalsScoredPerMatch / Floor(defend.GoalsConcededPerMatch, eps) *
			conversionRelative(attack, neutralConversion, eps)
	}
	return StrengthFactor{
		Home: side(home, away),
		Away: side(away, home),
	}
}

// MarketFactors turns the pre-match over/under 2.5 price into a total goals
// estimate and splits it evenly between both sides with a square root.
// The split does not apportion strength by side.
func MarketFactors(odds PreMatchMarketOdds, league LeagueBaseline, eps float64) StrengthFactor {
	pOver := NormalizeWithMargin(ImplicitProbability(odds.Over25), ImplicitProbability(odds.Under25), eps)
	total := ImpliedTotalGoals(pOver) / Floor(league.AverageGoalsPerMatch, eps)
	f := math.Sqrt(total)
	return StrengthFactor{Home: f, Away: f}
}

// StrengthFactors derives the factor pair for one scenario
func StrengthFactors(scenario Scenario, in Input, config *LivexgConfig) (StrengthFactor, error) {
	switch scenario {
	case ScenarioBaseline:
		return BaselineFactors(in.Home, in.Away, in.League, config.NeutralConversion, config.Epsilon), nil
	case ScenarioDirect:
		return DirectFactors(in.Home, in.Away, config.NeutralConversion, config.Epsilon), nil
	case ScenarioMarket:
		return MarketFactors(in.PreMatch, in.League, config.Epsilon), nil
	default:
		return StrengthFactor{}, fmt.Errorf("%w: %q", ErrUnknownScenario, scenario)
	}
}

func conversionRelative(team TeamProfile, neutral, eps float64) float64 {
	return team.ConversionRate / Floor(neutral, eps)
}
