// Package reservoir holds the pure parameter model of the simulation: the
// normalized reservoir level and the quantities derived from it (water
// surface height, slope stability, slope saturation and clay-layer stress).
// Everything here is a total function of the level; no state is kept.
package reservoir

import "image/color"

const (
	// MinLevel and MaxLevel bound the normalized reservoir level.
	MinLevel = 0.0
	MaxLevel = 100.0

	// DefaultLevel is the level the scene is restored to on reset.
	DefaultLevel = 30.0

	// saturationThreshold is the level below which the saturation zone
	// stays hidden.
	saturationThreshold = 30.0
)

// Clamp forces a level into the valid [MinLevel, MaxLevel] range.
// Out-of-range input is never an error, it is simply clamped.
func Clamp(level float64) float64 {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// HeightFromLevel maps a normalized level onto a water surface height
// between minHeight and maxHeight. It is monotonically non-decreasing in
// level.
func HeightFromLevel(level, minHeight, maxHeight float64) float64 {
	return minHeight + (level/100)*(maxHeight-minHeight)
}

// LevelFromHeight is the inverse of HeightFromLevel. The result is not
// clamped; heights above maxHeight map past 100.
func LevelFromHeight(height, minHeight, maxHeight float64) float64 {
	if maxHeight == minHeight {
		return MaxLevel
	}
	return (height - minHeight) / (maxHeight - minHeight) * 100
}

// Stability is the discrete slope-stability tier derived from the level.
type Stability int

// Stability tiers, ordered from safest to worst. Critical is the open-ended
// top tier: every level above its threshold maps to it.
const (
	StabilityExcellent Stability = iota
	StabilityGood
	StabilityModerate
	StabilityLow
	StabilityVeryLow
	StabilityCritical
)

// StabilityOf derives the stability tier for a level. Thresholds are
// exclusive at the top of each band: StabilityOf(80) is still VeryLow,
// StabilityOf(81) is Critical.
func StabilityOf(level float64) Stability {
	switch {
	case level > 80:
		return StabilityCritical
	case level > 65:
		return StabilityVeryLow
	case level > 50:
		return StabilityLow
	case level > 35:
		return StabilityModerate
	case level > 20:
		return StabilityGood
	default:
		return StabilityExcellent
	}
}

// String returns the tier's display name.
func (s Stability) String() string {
	switch s {
	case StabilityCritical:
		return "critical"
	case StabilityVeryLow:
		return "very low"
	case StabilityLow:
		return "low"
	case StabilityModerate:
		return "moderate"
	case StabilityGood:
		return "good"
	default:
		return "excellent"
	}
}

// Color returns the display color associated with the tier.
func (s Stability) Color() color.RGBA {
	switch s {
	case StabilityCritical:
		return color.RGBA{R: 0xe5, G: 0x39, B: 0x35, A: 0xff}
	case StabilityVeryLow:
		return color.RGBA{R: 0xff, G: 0x52, B: 0x52, A: 0xff}
	case StabilityLow:
		return color.RGBA{R: 0xff, G: 0x98, B: 0x00, A: 0xff}
	case StabilityModerate:
		return color.RGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	case StabilityGood:
		return color.RGBA{R: 0xcd, G: 0xdc, B: 0x39, A: 0xff}
	default:
		return color.RGBA{R: 0x4c, G: 0xaf, B: 0x50, A: 0xff}
	}
}

// Saturation describes how the slope saturation zone should be displayed
// for a given level.
type Saturation struct {
	Visible       bool
	Scale         float64 // normalized saturation in [0,1]
	Opacity       float64
	VerticalScale float64
}

// SaturationOf derives the saturation-zone visuals for a level. Below the
// activation threshold the zone is hidden entirely.
func SaturationOf(level float64) Saturation {
	if level <= saturationThreshold {
		return Saturation{}
	}
	scale := (level - saturationThreshold) / (MaxLevel - saturationThreshold)
	if scale < 0 {
		scale = 0
	}
	if scale > 1 {
		scale = 1
	}
	return Saturation{
		Visible:       true,
		Scale:         scale,
		Opacity:       0.3 + 0.5*scale,
		VerticalScale: 0.6 + 0.5*scale,
	}
}

// ClayStress is the stress tier of the clay failure layer. Its thresholds
// are deliberately independent from the Stability tiers; the two tables are
// related but not interchangeable, so they are kept apart rather than
// unified.
type ClayStress int

const (
	ClayStressNone ClayStress = iota
	ClayStressMedium
	ClayStressHigh
)

// ClayStressOf derives the clay-layer stress tier for a level.
func ClayStressOf(level float64) ClayStress {
	switch {
	case level > 65:
		return ClayStressHigh
	case level > 50:
		return ClayStressMedium
	default:
		return ClayStressNone
	}
}

// String returns the tier's display name.
func (c ClayStress) String() string {
	switch c {
	case ClayStressHigh:
		return "high"
	case ClayStressMedium:
		return "medium"
	default:
		return "none"
	}
}

// Color returns the layer color for the tier: red under high stress, orange
// under medium stress and a neutral brown otherwise.
func (c ClayStress) Color() color.RGBA {
	switch c {
	case ClayStressHigh:
		return color.RGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	case ClayStressMedium:
		return color.RGBA{R: 0xf5, G: 0x7c, B: 0x00, A: 0xff}
	default:
		return color.RGBA{R: 0x8d, G: 0x6e, B: 0x63, A: 0xff}
	}
}

// Emissive returns the emissive intensity applied to the clay layer
// material for the tier.
func (c ClayStress) Emissive() float64 {
	switch c {
	case ClayStressHigh:
		return 0.6
	case ClayStressMedium:
		return 0.3
	default:
		return 0
	}
}
