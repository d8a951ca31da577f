package livexg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImplicitProbability(t *testing.T) {
	for _, odds := range []float64{1.01, 1.5, 1.9, 2.2, 7.5, 101} {
		p := ImplicitProbability(odds)
		assert.Greater(t, p, 0.0, "odds %v", odds)
		assert.Less(t, p, 1.0, "odds %v", odds)
		assert.InDelta(t, 1/odds, p, 1e-12)
	}

	assert.Equal(t, 0.0, ImplicitProbability(0))
	assert.Equal(t, 0.0, ImplicitProbability(-2))
}

func TestImpliedTotalGoalsSteps(t *testing.T) {
	testCases := []struct {
		p    float64
		want float64
	}{
		{0.95, 3.2},
		{0.75, 3.2},
		{0.70, 3.2},
		{0.69, 2.8},
		{0.60, 2.8},
		{0.55, 2.4},
		{0.50, 2.4},
		{0.45, 2.0},
		{0.40, 2.0},
		{0.35, 1.6},
		{0.30, 1.6},
		{0.29, 1.2},
		{0.10, 1.2},
		{0.0, 1.2},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, ImpliedTotalGoals(tc.p), "p=%v", tc.p)
	}
}

func TestImpliedTotalGoalsIsMonotonic(t *testing.T) {
	prev := ImpliedTotalGoals(0)
	for i := 1; i <= 100; i++ {
		cur := ImpliedTotalGoals(float64(i) / 100)
		assert.GreaterOrEqual(t, cur, prev, "p=%v", float64(i)/100)
		prev = cur
	}
}

func TestNormalizedProbabilitiesSumToOne(t *testing.T) {
	pairs := [][2]float64{{1.9, 1.9}, {1.7, 2.1}, {1.01, 15}, {3.4, 1.3}, {2.0, 2.0}}
	for _, pair := range pairs {
		pOver := ImplicitProbability(pair[0])
		pUnder := ImplicitProbability(pair[1])

		over := NormalizeProportional(pOver, pUnder)
		under := NormalizeProportional(pUnder, pOver)
		assert.InDelta(t, 1.0, over+under, 1e-12, "odds %v", pair)

		// the margin form is the same number away from degenerate denominators
		assert.InDelta(t, over, NormalizeWithMargin(pOver, pUnder, 1e-3), 1e-12, "odds %v", pair)
		assert.InDelta(t, 1.0, NormalizeWithMargin(pOver, pUnder, 1e-3)+NormalizeWithMargin(pUnder, pOver, 1e-3), 1e-12)
	}
}

func TestNormalizeGuards(t *testing.T) {
	assert.Equal(t, 0.0, NormalizeProportional(0, 0))
	// both prices missing: 1 + margin is zero so the epsilon floor applies
	assert.Equal(t, 0.0, NormalizeWithMargin(0, 0, 1e-3))
	assert.InDelta(t, 0.5/1e-3, NormalizeWithMargin(0.5, -0.5, 1e-3), 1e-9)
}

func TestRemoveVig(t *testing.T) {
	a, b := RemoveVig2(1.9, 1.9)
	assert.InDelta(t, 0.5, a, 1e-12)
	assert.InDelta(t, 0.5, b, 1e-12)

	h, d, aw := RemoveVig3(2.1, 3.4, 3.6)
	assert.InDelta(t, 1.0, h+d+aw, 1e-12)
	assert.Greater(t, h, d)
	assert.Greater(t, d, aw)

	h, d, aw = RemoveVig3(0, 0, 0)
	assert.Zero(t, h+d+aw)
}

func TestPoisson(t *testing.T) {
	assert.InDelta(t, 0.36787944, PoissonPMF(0, 1), 1e-8)
	assert.InDelta(t, 0.36787944, PoissonPMF(1, 1), 1e-8)
	assert.InDelta(t, 0.18393972, PoissonPMF(2, 1), 1e-8)
	assert.Equal(t, 1.0, PoissonPMF(0, 0))
	assert.Equal(t, 0.0, PoissonPMF(3, 0))
	assert.Equal(t, 0.0, PoissonPMF(-1, 2))

	// P(X <= 2) for the over/under 2.5 market
	assert.InDelta(t, 0.54381312, PoissonCDF(2, 2.5), 1e-8)
	assert.Equal(t, 0.0, PoissonCDF(-1, 2.5))
	assert.InDelta(t, 1.0, PoissonCDF(40, 2.5), 1e-12)
}
