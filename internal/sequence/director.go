// Package sequence contains the disaster sequence director: the state
// machine that drives the scripted Vajont narrative (camera move, water
// rise, landslide, tsunami, summary) over the retained scene. All work
// happens on the frame-update callback; the director never blocks and
// never spawns goroutines.
package sequence

import (
	"io"
	"log/slog"
	"time"

	"vajontsim/internal/anim"
	"vajontsim/internal/reservoir"
	"vajontsim/internal/scene"
)

// Director owns the sequence run. Exactly one run may be active at a time;
// Start while running is a no-op. While a run is active the director is the
// sole writer of the reservoir level, enforced by disabling the UI controls
// for the duration.
type Director struct {
	stage  *scene.Stage
	ui     UI
	logger *slog.Logger

	state   State
	running bool
	phase   *anim.Phase
	level   float64

	// Recorded rest poses, restored by the reset routine.
	originalBlock scene.Transform
	waveHome      scene.Transform

	// Per-run scratch state.
	debris       scene.Handle
	splash       scene.Handle
	overtopBase  float64
	overtopFired bool
}

// New constructs a director over the given stage and UI. A nil logger
// discards log output. The scene is put into its default consistent state
// (level 30 with all derived visuals applied).
func New(stage *scene.Stage, ui UI, logger *slog.Logger) *Director {
	if ui == nil {
		ui = NopUI{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Director{
		stage:  stage,
		ui:     ui,
		logger: logger,
		state:  StateIdle,
	}
	d.originalBlock, _ = stage.MeshTransform(scene.MeshLandslideBlock)
	d.waveHome, _ = stage.MeshTransform(scene.MeshWave)
	d.applyLevel(reservoir.DefaultLevel)
	return d
}

// State returns the current sequence state.
func (d *Director) State() State { return d.state }

// Running reports whether a sequence run is active.
func (d *Director) Running() bool { return d.running }

// Level returns the current normalized reservoir level.
func (d *Director) Level() float64 { return d.level }

// SetLevel is the direct UI-driven entry point. Out-of-range values are
// clamped, never rejected. While a run is active the request is ignored:
// the run owns the level until it completes or resets.
func (d *Director) SetLevel(level float64) {
	if d.running {
		return
	}
	d.applyLevel(level)
}

// Start begins the disaster sequence. Calling it while a run is active is
// silently ignored (single-flight).
func (d *Director) Start(now time.Time) {
	if d.running || d.state != StateIdle {
		d.logger.Debug("start ignored, sequence already active", "state", d.state.String())
		return
	}
	d.running = true
	d.overtopFired = false
	d.originalBlock, _ = d.stage.MeshTransform(scene.MeshLandslideBlock)
	d.ui.SetControlsEnabled(false)
	d.ui.SetTimelineVisible(true)
	d.reportProgress(0)
	d.logger.Info("disaster sequence started", "level", d.level)
	d.enterCameraToSlope(now)
}

// Reset aborts any active run and restores the clean idle state. It is
// also the entry point for the user's manual reset action; completion
// unwind and manual reset share this single restore routine.
func (d *Director) Reset() {
	d.running = false
	d.restore()
}

// Acknowledge dismisses the summary after a completed run and restores the
// idle state. It does nothing outside StateSummaryPending.
func (d *Director) Acknowledge() {
	if d.state != StateSummaryPending {
		return
	}
	d.restore()
}

// Advance pumps the sequence by one frame: particles step first, then the
// current phase ticks. Phase faults are recovered and treated as
// cancellation, so a fault can never leave the scene partially animated.
func (d *Director) Advance(now time.Time) {
	d.stage.StepParticles(now)
	if d.phase == nil {
		return
	}
	switch d.advancePhase(now) {
	case anim.StatusRunning:
	case anim.StatusCancelled:
		d.logger.Info("sequence interrupted", "state", d.state.String())
		d.restore()
	case anim.StatusCompleted:
		d.transition(now)
	}
}

// advancePhase runs one phase tick with a recovery boundary: a panic inside
// a tick callback resolves the phase as cancelled instead of unwinding the
// frame loop.
func (d *Director) advancePhase(now time.Time) (status anim.Status) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("phase fault", "state", d.state.String(), "panic", r)
			status = anim.StatusCancelled
		}
	}()
	return d.phase.Advance(now)
}

// transition moves to the next state after the current phase completed.
func (d *Director) transition(now time.Time) {
	prev := d.state
	switch d.state {
	case StateCameraToSlope:
		d.enterWaterRising(now)
	case StateWaterRising:
		d.enterDormant(now)
	case StateDormant:
		d.enterLandslide(now)
	case StateLandslide:
		d.enterTsunami(now)
	case StateTsunami:
		d.enterSummaryPending()
	default:
		d.phase = nil
		return
	}
	d.logger.Info("phase completed", "from", prev.String(), "to", d.state.String())
}

// cancelCheck is shared by every phase: clearing the run flag is observed
// on the next tick and resolves the phase early.
func (d *Director) cancelCheck() bool { return !d.running }

// reportProgress publishes aggregate timeline progress, clamped to [0,100].
func (d *Director) reportProgress(pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	d.ui.SetTimelineProgress(pct)
}

// applyLevel is the single chokepoint that mutates the normalized level.
// Every derived visual (water surface, stability readout, saturation zone,
// clay stress) is recomputed in the same step so no stale derived state is
// ever observable across a frame.
func (d *Director) applyLevel(level float64) {
	level = reservoir.Clamp(level)
	d.level = level
	d.applyWaterHeight(reservoir.HeightFromLevel(level, scene.WaterMinHeight, scene.WaterMaxHeight))

	sat := reservoir.SaturationOf(level)
	d.stage.SetMeshVisible(scene.MeshSaturationZone, sat.Visible)
	d.stage.SetMaterialProperty(scene.MeshSaturationZone, scene.PropOpacity, sat.Opacity)
	tr, ok := d.stage.MeshTransform(scene.MeshSaturationZone)
	if ok {
		tr.Scale.Y = sat.VerticalScale
		d.stage.SetMeshTransform(scene.MeshSaturationZone, tr)
	}

	stress := reservoir.ClayStressOf(level)
	d.stage.SetMeshColor(scene.MeshClayLayer, stress.Color())
	d.stage.SetMaterialProperty(scene.MeshClayLayer, scene.PropEmissive, stress.Emissive())

	d.ui.SetLevel(level)
	d.ui.SetStability(reservoir.StabilityOf(level))
}

// applyWaterHeight moves the water surface mesh. During overtopping the
// surface is pushed past the height the clamped level maps to, so this is
// separate from applyLevel.
func (d *Director) applyWaterHeight(h float64) {
	tr, ok := d.stage.MeshTransform(scene.MeshWater)
	if !ok {
		return
	}
	tr.Position.Y = h
	d.stage.SetMeshTransform(scene.MeshWater, tr)
}

// restore is the single definition of the clean idle state: default level
// with consistent derived visuals, aerial camera, landslide block back at
// its recorded pose, wave hidden, progress indicator hidden, ephemeral
// effects purged, controls re-enabled.
func (d *Director) restore() {
	d.running = false
	d.phase = nil

	d.applyLevel(reservoir.DefaultLevel)
	d.stage.SetCameraPose(d.stage.PresetPose(scene.PresetAerial))
	d.stage.SetMeshTransform(scene.MeshLandslideBlock, d.originalBlock)
	d.stage.SetMeshTransform(scene.MeshWave, d.waveHome)
	d.stage.SetMeshVisible(scene.MeshWave, false)
	d.stage.RemoveAllTagged(scene.TagEphemeral)

	d.ui.SetTimelineProgress(0)
	d.ui.SetTimelineVisible(false)
	d.ui.HideSummary()
	d.ui.SetControlsEnabled(true)

	d.overtopFired = false
	d.state = StateIdle
	d.logger.Info("scene restored to idle")
}
