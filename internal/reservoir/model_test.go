package reservoir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightFromLevelEndpoints(t *testing.T) {
	assert.Equal(t, 5.0, HeightFromLevel(0, 5, 90))
	assert.Equal(t, 90.0, HeightFromLevel(100, 5, 90))
}

func TestHeightFromLevelMonotonic(t *testing.T) {
	prev := HeightFromLevel(0, 5, 90)
	for level := 1.0; level <= 100; level++ {
		h := HeightFromLevel(level, 5, 90)
		assert.GreaterOrEqual(t, h, prev, "level %v", level)
		prev = h
	}
}

func TestLevelFromHeightInverts(t *testing.T) {
	for _, level := range []float64{0, 17, 30, 50, 85, 100} {
		h := HeightFromLevel(level, 5, 90)
		assert.InDelta(t, level, LevelFromHeight(h, 5, 90), 1e-9)
	}
	// Overtopping heights map past 100 and are not clamped here.
	assert.Greater(t, LevelFromHeight(100, 5, 90), 100.0)
}

func TestStabilityBoundaries(t *testing.T) {
	assert.Equal(t, StabilityCritical, StabilityOf(81))
	assert.Equal(t, StabilityVeryLow, StabilityOf(80), "band tops are exclusive")
	assert.Equal(t, StabilityVeryLow, StabilityOf(66))
	assert.Equal(t, StabilityLow, StabilityOf(65))
	assert.Equal(t, StabilityLow, StabilityOf(51))
	assert.Equal(t, StabilityModerate, StabilityOf(50))
	assert.Equal(t, StabilityModerate, StabilityOf(36))
	assert.Equal(t, StabilityGood, StabilityOf(35))
	assert.Equal(t, StabilityExcellent, StabilityOf(20))
	assert.Equal(t, StabilityExcellent, StabilityOf(0))
	assert.Equal(t, StabilityCritical, StabilityOf(100), "critical is the open-ended top tier")
}

func TestStabilityDisplay(t *testing.T) {
	assert.Equal(t, "critical", StabilityOf(95).String())
	assert.Equal(t, "excellent", StabilityOf(0).String())
	assert.Equal(t, uint8(0xe5), StabilityCritical.Color().R)
	assert.Equal(t, uint8(0x4c), StabilityExcellent.Color().R)
}

func TestSaturationOf(t *testing.T) {
	assert.False(t, SaturationOf(30).Visible, "hidden at the threshold")
	assert.False(t, SaturationOf(0).Visible)

	s := SaturationOf(30.0001)
	assert.True(t, s.Visible)
	assert.InDelta(t, 0, s.Scale, 1e-4)

	s = SaturationOf(100)
	assert.True(t, s.Visible)
	assert.Equal(t, 1.0, s.Scale)
	assert.InDelta(t, 0.8, s.Opacity, 1e-12)
	assert.InDelta(t, 1.1, s.VerticalScale, 1e-12)
}

func TestClayStressTiers(t *testing.T) {
	assert.Equal(t, ClayStressNone, ClayStressOf(50))
	assert.Equal(t, ClayStressMedium, ClayStressOf(51))
	assert.Equal(t, ClayStressMedium, ClayStressOf(65))
	assert.Equal(t, ClayStressHigh, ClayStressOf(66))
	assert.Equal(t, ClayStressHigh, ClayStressOf(100))
	assert.Equal(t, 0.0, ClayStressNone.Emissive())
	assert.Greater(t, ClayStressHigh.Emissive(), ClayStressMedium.Emissive())
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5))
	assert.Equal(t, 100.0, Clamp(250))
	assert.Equal(t, 42.0, Clamp(42))
}
