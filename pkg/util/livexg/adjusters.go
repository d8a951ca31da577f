package livexg

import "math"

// ScorelineAdjustment bends each side's rate by game state. The leading side
// protects the lead and the trailing side chases the game, a tie is neutral.
func ScorelineAdjustment(homeScore, awayScore int, factors TierFactors) (home, away float64) {
	switch {
	case homeScore > awayScore:
		return factors.Leading, factors.Trailing
	case homeScore < awayScore:
		return factors.Trailing, factors.Leading
	default:
		return 1.0, 1.0
	}
}

// LuckFactor is goals scored over xG, capped at luckCap. There is no lower
// cap, a side far below its xG has its projected rate pushed towards zero.
func LuckFactor(goals int, xg, luckCap, eps float64) float64 {
	return math.Min(float64(goals)/Floor(xg, eps), luckCap)
}
