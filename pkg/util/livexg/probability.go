package livexg

import "math"

// TotalGoalsStep maps a minimum normalised P(Over 2.5) to an expected match total
type TotalGoalsStep struct {
	MinProbability float64
	TotalGoals     float64
}

// TotalGoalsSteps is the lookup used instead of inverting 1 - PoissonCDF(2, λ).
// Ordered high to low, the first step whose minimum is met wins.
var TotalGoalsSteps = []TotalGoalsStep{
	{MinProbability: 0.70, TotalGoals: 3.2},
	{MinProbability: 0.60, TotalGoals: 2.8},
	{MinProbability: 0.50, TotalGoals: 2.4},
	{MinProbability: 0.40, TotalGoals: 2.0},
	{MinProbability: 0.30, TotalGoals: 1.6},
}

// lowestTotalGoals applies below the last step
const lowestTotalGoals = 1.2

// ImplicitProbability is the probability encoded in a decimal price, margin included.
// Non-positive odds give zero.
func ImplicitProbability(odds float64) float64 {
	if odds > 0 {
		return 1 / odds
	}
	return 0
}

// ImpliedTotalGoals estimates the expected match total from a margin free P(Over 2.5)
func ImpliedTotalGoals(pOver float64) float64 {
	for _, step := range TotalGoalsSteps {
		if pOver >= step.MinProbability {
			return step.TotalGoals
		}
	}
	return lowestTotalGoals
}

// NormalizeProportional removes the margin by scaling both sides to sum to one
func NormalizeProportional(pOver, pUnder float64) float64 {
	sum := pOver + pUnder
	if sum <= 0 {
		return 0
	}
	return pOver / sum
}

// NormalizeWithMargin removes the overround, never dividing by less than eps
func NormalizeWithMargin(pOver, pUnder, eps float64) float64 {
	margin := (pOver + pUnder) - 1
	return pOver / Floor(1+margin, eps)
}

// RemoveVig2 converts two-way decimal odds to fair probabilities
func RemoveVig2(a, b float64) (float64, float64) {
	rawA := ImplicitProbability(a)
	rawB := ImplicitProbability(b)
	total := rawA + rawB
	if total <= 0 {
		return 0, 0
	}
	return rawA / total, rawB / total
}

// RemoveVig3 converts three-way decimal odds to fair probabilities
func RemoveVig3(a, b, c float64) (float64, float64, float64) {
	rawA := ImplicitProbability(a)
	rawB := ImplicitProbability(b)
	rawC := ImplicitProbability(c)
	total := rawA + rawB + rawC
	if total <= 0 {
		return 0, 0, 0
	}
	return rawA / total, rawB / total, rawC / total
}

// Floor returns x, or eps when x is smaller
func Floor(x, eps float64) float64 {
	return math.Max(x, eps)
}

// PoissonPMF returns P(X = k) for X ~ Poisson(lambda)
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1
		}
		return 0
	}
	// log space keeps large k finite
	lg, _ := math.Lgamma(float64(k + 1))
	return math.Exp(float64(k)*math.Log(lambda) - lambda - lg)
}

// PoissonCDF returns P(X <= k) for X ~ Poisson(lambda)
func PoissonCDF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i <= k; i++ {
		sum += PoissonPMF(i, lambda)
	}
	return math.Min(sum, 1)
}
