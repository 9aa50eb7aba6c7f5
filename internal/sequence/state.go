package sequence

import "vajontsim/internal/reservoir"

// State identifies where the disaster sequence currently is. States advance
// strictly in order; a cancel or fault from any non-idle state funnels
// through the restore routine back to StateIdle.
type State int

const (
	StateIdle State = iota
	StateCameraToSlope
	StateWaterRising
	StateDormant
	StateLandslide
	StateTsunami
	StateSummaryPending
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCameraToSlope:
		return "camera_to_slope"
	case StateWaterRising:
		return "water_rising"
	case StateDormant:
		return "dormant"
	case StateLandslide:
		return "landslide"
	case StateTsunami:
		return "tsunami"
	case StateSummaryPending:
		return "summary_pending"
	default:
		return "idle"
	}
}

// UI is the surface the director reports through. The GUI layer implements
// it; the director never touches widgets directly. The UI in turn drives
// the director through Start, Reset, SetLevel and Acknowledge.
type UI interface {
	// SetLevel reflects the current normalized reservoir level.
	SetLevel(level float64)
	// SetStability reflects the derived stability tier readout.
	SetStability(s reservoir.Stability)
	// SetControlsEnabled toggles interactive input. The director disables
	// controls for the whole run so it stays the only writer of the level.
	SetControlsEnabled(enabled bool)
	// SetTimelineVisible shows or hides the progress indicator.
	SetTimelineVisible(visible bool)
	// SetTimelineProgress reports aggregate sequence progress in [0,100].
	SetTimelineProgress(pct float64)
	// ShowSummary presents the educational summary and awaits a single
	// acknowledgment, which the UI delivers via Acknowledge.
	ShowSummary()
	// HideSummary dismisses the summary.
	HideSummary()
}

// NopUI discards all reports. Useful for headless runs and tests that only
// exercise scene state.
type NopUI struct{}

func (NopUI) SetLevel(float64)                 {}
func (NopUI) SetStability(reservoir.Stability) {}
func (NopUI) SetControlsEnabled(bool)          {}
func (NopUI) SetTimelineVisible(bool)          {}
func (NopUI) SetTimelineProgress(float64)      {}
func (NopUI) ShowSummary()                     {}
func (NopUI) HideSummary()                     {}
