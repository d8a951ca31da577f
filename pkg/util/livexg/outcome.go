package livexg

import (
	"fmt"
	"math"
)

// OutcomeEstimator produces a home / draw / away distribution for the final
// result from the current score and the remaining expected goals per side
type OutcomeEstimator interface {
	Estimate(homeScore, awayScore int, lambdaHome, lambdaAway float64) OutcomeProbabilities
}

// NewOutcomeEstimator returns the estimator for a model, nil for OutcomeNone
func NewOutcomeEstimator(model OutcomeModel, config *LivexgConfig) (OutcomeEstimator, error) {
	switch model {
	case OutcomeNone, "":
		return nil, nil
	case OutcomeHeuristic:
		return HeuristicOutcome{Epsilon: config.Epsilon}, nil
	case OutcomePoisson:
		return PoissonOutcome{GoalRange: config.GoalRange, Rho: config.DixonColesRho}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutcomeModel, model)
	}
}

// HeuristicOutcome is an ad hoc 1X2 split with fixed breakpoints and slopes.
// It is not derived from the Poisson model and is not calibrated.
//
// The trailing side's share 0.2-0.1*|diff| turns negative once the projected
// gap exceeds 2 goals. It is clamped at 0 before renormalising, so for
// |diff| > 2 the leader gets (0.6+0.1*|diff|)/(0.8+0.1*|diff|) rather than
// 0.6+0.1*|diff|; a gap of 3 gives 0.818 instead of 0.9. Up to a gap of 2
// the split matches the linear formula exactly.
type HeuristicOutcome struct {
	Epsilon float64
}

// Estimate projects each final score as goals + remaining λ and splits on the difference
func (h HeuristicOutcome) Estimate(homeScore, awayScore int, lambdaHome, lambdaAway float64) OutcomeProbabilities {
	diff := (float64(homeScore) + lambdaHome) - (float64(awayScore) + lambdaAway)

	var home, draw, away float64
	switch {
	case diff > 0.5:
		home, draw, away = 0.6+diff*0.1, 0.2, 0.2-diff*0.1
	case diff < -0.5:
		home, draw, away = 0.2+diff*0.1, 0.2, 0.6-diff*0.1
	default:
		home, draw, away = 0.33, 0.34, 0.33
	}
	// the slope crosses zero once the gap exceeds two goals
	home, away = math.Max(home, 0), math.Max(away, 0)

	sum := Floor(home+draw+away, h.Epsilon)
	return OutcomeProbabilities{
		Model: OutcomeHeuristic,
		Home:  home / sum,
		Draw:  draw / sum,
		Away:  away / sum,
	}
}

// PoissonOutcome treats remaining goals per side as independent Poisson
// variables, with the Dixon-Coles adjustment on low scoring remainders
type PoissonOutcome struct {
	GoalRange int
	Rho       float64
}

// Estimate builds the remaining goals matrix and folds it onto the current score
func (p PoissonOutcome) Estimate(homeScore, awayScore int, lambdaHome, lambdaAway float64) OutcomeProbabilities {
	matrix := createProbabilityMatrix(
		remainingDistribution(lambdaHome, p.GoalRange),
		remainingDistribution(lambdaAway, p.GoalRange),
	)
	matrix = dixonColesCorrection(matrix, lambdaHome, lambdaAway, p.Rho)

	var home, draw, away float64
	for i := range matrix {
		for j := range matrix[i] {
			margin := (homeScore + i) - (awayScore + j)
			switch {
			case margin > 0:
				home += matrix[i][j]
			case margin < 0:
				away += matrix[i][j]
			default:
				draw += matrix[i][j]
			}
		}
	}
	return OutcomeProbabilities{Model: OutcomePoisson, Home: home, Draw: draw, Away: away}
}

// createProbabilityMatrix is the outer product of two goal distributions
func createProbabilityMatrix(homeProbs, awayProbs []float64) [][]float64 {
	matrix := make([][]float64, len(homeProbs))
	for i := range homeProbs {
		matrix[i] = make([]float64, len(awayProbs))
		for j := range awayProbs {
			matrix[i][j] = homeProbs[i] * awayProbs[j]
		}
	}
	return matrix
}

// dixonColesCorrection reweights the 0-0, 1-0, 0-1 and 1-1 cells and renormalises
func dixonColesCorrection(matrix [][]float64, lambdaHome, lambdaAway, rho float64) [][]float64 {
	if len(matrix) > 1 && len(matrix[0]) > 1 {
		matrix[0][0] *= 1 - lambdaHome*lambdaAway*rho
		matrix[0][1] *= 1 + lambdaHome*rho
		matrix[1][0] *= 1 + lambdaAway*rho
		matrix[1][1] *= 1 - rho
	}

	total := 0.0
	for i := range matrix {
		for j := range matrix[i] {
			total += matrix[i][j]
		}
	}
	if total > 0 {
		for i := range matrix {
			for j := range matrix[i] {
				matrix[i][j] /= total
			}
		}
	}
	return matrix
}
