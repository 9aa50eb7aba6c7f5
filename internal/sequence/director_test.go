package sequence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vajontsim/internal/anim"
	"vajontsim/internal/reservoir"
	"vajontsim/internal/scene"
)

// recordingUI captures everything the director reports.
type recordingUI struct {
	level            float64
	stability        reservoir.Stability
	controlsEnabled  bool
	timelineVisible  bool
	progress         float64
	progressHistory  []float64
	summaryVisible   bool
	summaryShownOnce bool
}

func newRecordingUI() *recordingUI { return &recordingUI{controlsEnabled: true} }

func (u *recordingUI) SetLevel(level float64)                 { u.level = level }
func (u *recordingUI) SetStability(s reservoir.Stability)     { u.stability = s }
func (u *recordingUI) SetControlsEnabled(enabled bool)        { u.controlsEnabled = enabled }
func (u *recordingUI) SetTimelineVisible(visible bool)        { u.timelineVisible = visible }
func (u *recordingUI) ShowSummary()                           { u.summaryVisible = true; u.summaryShownOnce = true }
func (u *recordingUI) HideSummary()                           { u.summaryVisible = false }
func (u *recordingUI) SetTimelineProgress(pct float64) {
	u.progress = pct
	u.progressHistory = append(u.progressHistory, pct)
}

func newDirector(t *testing.T) (*Director, *scene.Stage, *recordingUI) {
	t.Helper()
	st := scene.NewStage(42)
	ui := newRecordingUI()
	return New(st, ui, nil), st, ui
}

// drive advances the director frame by frame (16ms) for the given duration
// and returns the final instant.
func drive(d *Director, from time.Time, dur time.Duration) time.Time {
	step := 16 * time.Millisecond
	now := from
	for elapsed := time.Duration(0); elapsed <= dur; elapsed += step {
		now = from.Add(elapsed)
		d.Advance(now)
	}
	return now
}

const fullRun = 13 * time.Second // 2000+2750+1000+3000+4000 ms plus margin

func TestSetLevelWhileIdle(t *testing.T) {
	d, st, ui := newDirector(t)

	d.SetLevel(55)
	assert.Equal(t, 55.0, d.Level())
	assert.Equal(t, reservoir.StabilityLow, ui.stability)
	assert.Equal(t, reservoir.ClayStressMedium.Color(), st.MeshColor(scene.MeshClayLayer),
		"clay stress recomputed in the same step as the level")

	// Derived state depends only on the level, not on history.
	d.SetLevel(90)
	d.SetLevel(55)
	assert.Equal(t, reservoir.StabilityLow, ui.stability)
	assert.Equal(t, reservoir.ClayStressMedium.Color(), st.MeshColor(scene.MeshClayLayer))
}

func TestSetLevelClampsOutOfRange(t *testing.T) {
	d, _, _ := newDirector(t)
	d.SetLevel(250)
	assert.Equal(t, 100.0, d.Level())
	d.SetLevel(-40)
	assert.Equal(t, 0.0, d.Level())
}

func TestSaturationZoneTracksLevel(t *testing.T) {
	d, st, _ := newDirector(t)

	d.SetLevel(20)
	assert.False(t, st.MeshVisible(scene.MeshSaturationZone))

	d.SetLevel(100)
	assert.True(t, st.MeshVisible(scene.MeshSaturationZone))
	assert.InDelta(t, 0.8, st.MaterialProperty(scene.MeshSaturationZone, scene.PropOpacity), 1e-9)
	tr, _ := st.MeshTransform(scene.MeshSaturationZone)
	assert.InDelta(t, 1.1, tr.Scale.Y, 1e-9)
}

func TestStartIsSingleFlight(t *testing.T) {
	d, _, _ := newDirector(t)
	start := time.Unix(0, 0)

	d.Start(start)
	require.True(t, d.Running())
	require.Equal(t, StateCameraToSlope, d.State())

	// Re-entrant start attempts are ignored; the run keeps its timeline.
	d.Start(start.Add(time.Second))
	d.Advance(start.Add(100 * time.Millisecond))
	assert.Equal(t, StateCameraToSlope, d.State())
	assert.True(t, d.Running())
}

func TestStartDisablesControls(t *testing.T) {
	d, _, ui := newDirector(t)
	d.Start(time.Unix(0, 0))
	assert.False(t, ui.controlsEnabled)
	assert.True(t, ui.timelineVisible)

	// The slider is no longer a writer while the run is active.
	d.SetLevel(10)
	assert.Equal(t, reservoir.DefaultLevel, d.Level())
}

func TestFullRunReachesSummary(t *testing.T) {
	d, st, ui := newDirector(t)
	start := time.Unix(0, 0)

	d.Start(start)
	drive(d, start, fullRun)

	assert.Equal(t, StateSummaryPending, d.State())
	assert.False(t, d.Running(), "run flag stops at summary")
	assert.True(t, ui.summaryVisible)
	assert.Equal(t, 100.0, ui.progress)

	// Overtopping pushed the surface past the level-mapped maximum.
	tr, _ := st.MeshTransform(scene.MeshWater)
	assert.Greater(t, tr.Position.Y, scene.DamHeight, "water overtops the dam crest")
	assert.InDelta(t, scene.DamHeight+scene.OvertopMargin, tr.Position.Y, 0.5)

	// Timeline passed through every phase boundary (tolerance ±2).
	for _, milestone := range []float64{0, 40, 70, 100} {
		found := false
		for _, p := range ui.progressHistory {
			if p >= milestone-2 && p <= milestone+2 {
				found = true
				break
			}
		}
		assert.True(t, found, "timeline never passed near %v", milestone)
	}

	// The camera ended on the slope preset (no phase moved it afterwards).
	assert.Equal(t, st.PresetPose(scene.PresetSlope), st.CameraPose())
}

func TestPhaseOrderStrictlySequential(t *testing.T) {
	d, _, _ := newDirector(t)
	start := time.Unix(0, 0)
	d.Start(start)

	seen := []State{d.State()}
	step := 16 * time.Millisecond
	for elapsed := time.Duration(0); elapsed <= fullRun; elapsed += step {
		d.Advance(start.Add(elapsed))
		if s := d.State(); s != seen[len(seen)-1] {
			seen = append(seen, s)
		}
	}
	assert.Equal(t, []State{
		StateCameraToSlope,
		StateWaterRising,
		StateDormant,
		StateLandslide,
		StateTsunami,
		StateSummaryPending,
	}, seen)
}

func TestResetMidLandslideRestoresBlockExactly(t *testing.T) {
	d, st, ui := newDirector(t)
	start := time.Unix(0, 0)

	orig, ok := st.MeshTransform(scene.MeshLandslideBlock)
	require.True(t, ok)

	d.Start(start)
	// Camera (2000) + water rise (2750) + dormant (1000) put the landslide
	// phase around 7s in; stop partway through it.
	drive(d, start, 7*time.Second)
	require.Equal(t, StateLandslide, d.State())

	moved, _ := st.MeshTransform(scene.MeshLandslideBlock)
	require.NotEqual(t, orig.Position, moved.Position, "block must have left its rest pose")

	d.Reset()

	restored, _ := st.MeshTransform(scene.MeshLandslideBlock)
	assert.Equal(t, orig, restored, "block restored to its exact recorded pose, not an interpolated midpoint")
	assert.Equal(t, StateIdle, d.State())
	assert.Equal(t, reservoir.DefaultLevel, d.Level())
	assert.Equal(t, st.PresetPose(scene.PresetAerial), st.CameraPose())
	assert.False(t, ui.timelineVisible)
	assert.True(t, ui.controlsEnabled)
	assert.Equal(t, 0, st.ParticleCount(), "ephemeral effects purged")
	assert.False(t, st.MeshVisible(scene.MeshWave))
}

func TestAcknowledgeRestoresIdle(t *testing.T) {
	d, st, ui := newDirector(t)
	start := time.Unix(0, 0)

	d.Start(start)
	drive(d, start, fullRun)
	require.Equal(t, StateSummaryPending, d.State())

	d.Acknowledge()
	assert.Equal(t, StateIdle, d.State())
	assert.True(t, ui.summaryShownOnce)
	assert.False(t, ui.summaryVisible)
	assert.Equal(t, reservoir.DefaultLevel, d.Level())
	assert.Equal(t, 0, st.ParticleCount())

	// A new run can start afterwards.
	restart := start.Add(time.Hour)
	d.Start(restart)
	assert.Equal(t, StateCameraToSlope, d.State())
}

func TestAcknowledgeOutsideSummaryIsNoop(t *testing.T) {
	d, _, _ := newDirector(t)
	d.SetLevel(60)
	d.Acknowledge()
	assert.Equal(t, 60.0, d.Level(), "acknowledge must not restore outside summary")
}

func TestDebrisSpawnsDuringLandslide(t *testing.T) {
	d, st, _ := newDirector(t)
	start := time.Unix(0, 0)
	d.Start(start)
	drive(d, start, 6200*time.Millisecond)
	require.Equal(t, StateLandslide, d.State())
	assert.Greater(t, st.ParticleCount(), 0, "debris burst registered")
}

func TestPhaseFaultFunnelsIntoReset(t *testing.T) {
	d, st, ui := newDirector(t)
	start := time.Unix(0, 0)

	d.Start(start)
	drive(d, start, 7*time.Second)
	require.Equal(t, StateLandslide, d.State())

	// Simulate external state disappearing under a tick callback.
	faultAt := start.Add(8 * time.Second)
	d.phase = anim.New(faultAt, time.Second, nil, func(float64) {
		panic("mesh reference lost")
	}, d.cancelCheck)

	assert.NotPanics(t, func() { d.Advance(faultAt.Add(16 * time.Millisecond)) })

	assert.Equal(t, StateIdle, d.State(), "fault is treated as cancellation")
	assert.False(t, d.Running())
	assert.Equal(t, reservoir.DefaultLevel, d.Level())
	assert.Equal(t, st.PresetPose(scene.PresetAerial), st.CameraPose())
	assert.True(t, ui.controlsEnabled)
}

func TestClearedRunFlagCancelsOnNextTick(t *testing.T) {
	d, st, _ := newDirector(t)
	start := time.Unix(0, 0)

	d.Start(start)
	drive(d, start, 7*time.Second)
	require.Equal(t, StateLandslide, d.State())

	// Cancellation is cooperative: phases poll the run flag each tick.
	d.running = false
	d.Advance(start.Add(7*time.Second + 16*time.Millisecond))

	assert.Equal(t, StateIdle, d.State())
	orig, _ := scene.NewStage(42).MeshTransform(scene.MeshLandslideBlock)
	got, _ := st.MeshTransform(scene.MeshLandslideBlock)
	assert.Equal(t, orig, got)
}

func TestWaterRiseRecomputesDerivedStateEveryTick(t *testing.T) {
	d, st, ui := newDirector(t)
	start := time.Unix(0, 0)
	d.Start(start)

	// Advance into the middle of the water rise and check consistency.
	drive(d, start, 3500*time.Millisecond)
	require.Equal(t, StateWaterRising, d.State())

	level := d.Level()
	assert.Greater(t, level, reservoir.DefaultLevel)
	assert.Equal(t, reservoir.StabilityOf(level), ui.stability)
	assert.Equal(t, reservoir.ClayStressOf(level).Color(), st.MeshColor(scene.MeshClayLayer))
	tr, _ := st.MeshTransform(scene.MeshWater)
	assert.InDelta(t, reservoir.HeightFromLevel(level, scene.WaterMinHeight, scene.WaterMaxHeight),
		tr.Position.Y, 1e-9)
}
