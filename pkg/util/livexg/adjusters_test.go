package livexg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAverageRate(t *testing.T) {
	assert.InDelta(t, 1.31/70, AverageRate(1.31, 70), 1e-12)
	assert.Equal(t, 0.0, AverageRate(1.31, 0))
}

func TestMomentumFactor(t *testing.T) {
	// total xG reused for the window, so momentum is minutes / window
	assert.InDelta(t, 7.0, MomentumFactor(1.31, 70, 10), 1e-12)
	assert.InDelta(t, 2.0, MomentumFactor(0.4, 20, 10), 1e-12)

	// window clipped to a young match
	assert.InDelta(t, 1.0, MomentumFactor(0.3, 6, 10), 1e-12)

	// no xG is neutral
	assert.Equal(t, 1.0, MomentumFactor(0, 70, 10))
}

func TestScorelineAdjustment(t *testing.T) {
	config := DefaultLivexgConfig()

	h, a := ScorelineAdjustment(1, 0, config.HardTier)
	assert.Equal(t, 0.7, h)
	assert.Equal(t, 1.4, a)

	h, a = ScorelineAdjustment(0, 3, config.SoftTier)
	assert.Equal(t, 1.15, h)
	assert.Equal(t, 0.85, a)

	h, a = ScorelineAdjustment(2, 2, config.HardTier)
	assert.Equal(t, 1.0, h)
	assert.Equal(t, 1.0, a)
}

func TestScorelineAdjustmentIsSymmetric(t *testing.T) {
	config := DefaultLivexgConfig()
	for _, tier := range []TierFactors{config.HardTier, config.SoftTier} {
		for home := 0; home < 5; home++ {
			for away := 0; away < 5; away++ {
				h1, a1 := ScorelineAdjustment(home, away, tier)
				h2, a2 := ScorelineAdjustment(away, home, tier)
				assert.Equal(t, h1, a2, "%d-%d", home, away)
				assert.Equal(t, a1, h2, "%d-%d", home, away)
			}
		}
	}
}

func TestTierLookup(t *testing.T) {
	config := DefaultLivexgConfig()

	f, err := config.Tier(TierNone)
	assert.NoError(t, err)
	assert.Equal(t, TierFactors{Leading: 1, Trailing: 1}, f)

	_, err = config.Tier("brutal")
	assert.ErrorIs(t, err, ErrUnknownTier)
}

func TestLuckFactorIsCapped(t *testing.T) {
	assert.InDelta(t, 1.0/1.31, LuckFactor(1, 1.31, 1.5, 1e-3), 1e-12)
	assert.InDelta(t, 1.4, LuckFactor(7, 5, 1.5, 1e-3), 1e-12)

	// at and beyond the boundary
	assert.Equal(t, 1.5, LuckFactor(3, 2, 1.5, 1e-3))
	assert.Equal(t, 1.5, LuckFactor(4, 0.5, 1.5, 1e-3))
	assert.Equal(t, 1.5, LuckFactor(1, 0, 1.5, 1e-3))

	// no lower cap
	assert.Equal(t, 0.0, LuckFactor(0, 2.2, 1.5, 1e-3))
}
