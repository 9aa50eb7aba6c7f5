//go:build !ebiten

package ui

import (
	"time"

	"vajontsim/internal/reservoir"
)

// Controller is the slice of the sequence director the HUD drives.
type Controller interface {
	Start(now time.Time)
	Reset()
	Acknowledge()
	SetLevel(level float64)
	Running() bool
}

// HUD is a no-op placeholder for headless builds. It still satisfies the
// director's UI surface so headless wiring compiles unchanged.
type HUD struct{}

// NewHUD returns nil in the headless build.
func NewHUD(int, int, int) *HUD { return nil }

// Attach is a no-op in the headless build.
func (h *HUD) Attach(Controller) {}

// Update is a no-op in the headless build.
func (h *HUD) Update(time.Time) {}

// Draw is a no-op in the headless build.
func (h *HUD) Draw(any) {}

func (h *HUD) SetLevel(float64)                 {}
func (h *HUD) SetStability(reservoir.Stability) {}
func (h *HUD) SetControlsEnabled(bool)          {}
func (h *HUD) SetTimelineVisible(bool)          {}
func (h *HUD) SetTimelineProgress(float64)      {}
func (h *HUD) ShowSummary()                     {}
func (h *HUD) HideSummary()                     {}
