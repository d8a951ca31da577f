package livexg

// FairOdds is the break-even price of an outcome with probability p.
// Zero or negative p has no finite price.
func FairOdds(p float64) Odds {
	if p <= 0 {
		return NoFairOdds
	}
	return Odds(1 / p)
}

// ExpectedValue is the modelled return per unit staked at marketOdds.
// A positive value is an edge over the quoted price.
func ExpectedValue(p, marketOdds float64) float64 {
	return p*marketOdds - 1
}

// remainingDistribution returns P(k more goals) for k = 0..goalRange-1
func remainingDistribution(lambda float64, goalRange int) []float64 {
	dist := make([]float64, goalRange)
	for k := range dist {
		dist[k] = PoissonPMF(k, lambda)
	}
	return dist
}

// totalLineProbabilities prices final total lines given goals already scored.
// A line already beaten is certain.
func totalLineProbabilities(lambda float64, scored int, lines []float64) []LineProbability {
	out := make([]LineProbability, 0, len(lines))
	for _, line := range lines {
		needed := line - float64(scored)
		var under float64
		if needed < 0 {
			under = 0
		} else {
			// over means strictly more than int(needed) further goals
			under = PoissonCDF(int(needed), lambda)
		}
		out = append(out, LineProbability{Line: line, Over: 1 - under, Under: under})
	}
	return out
}
