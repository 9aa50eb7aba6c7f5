package sequence

import (
	"image/color"
	"math"
	"time"

	"vajontsim/internal/anim"
	"vajontsim/internal/easing"
	"vajontsim/internal/particles"
	"vajontsim/internal/reservoir"
	"vajontsim/internal/scene"
	"vajontsim/internal/vmath"
)

// Phase timings and timeline partitioning. The camera move is not weighted
// into the progress bar; water rise owns [0,40), the landslide [40,70) and
// the tsunami [70,100].
const (
	cameraMoveDuration = 2 * time.Second
	waterRisePerUnit   = 50 * time.Millisecond
	waterRiseTarget    = 85.0
	dormantDuration    = time.Second
	landslideDuration  = 3 * time.Second
	tsunamiDuration    = 4 * time.Second

	waterRiseShare  = 40.0
	landslideShare  = 30.0
	landslideOffset = 40.0
	tsunamiShare    = 30.0
	tsunamiOffset   = 70.0

	overtopRampStart = 0.7
	overtopBurstMin  = 0.8
	overtopBurstMax  = 0.85
)

// Landslide block displacement: lateral toward the reservoir, downslope,
// and into the valley, with a tilt and a slight twist. The back easing
// overshoots these on purpose.
var (
	slideOffset = vmath.V(30, -40, 40)
	slideTilt   = 0.2  // rad, about X
	slideTwist  = -0.1 // rad, about Y
)

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

func (d *Director) enterCameraToSlope(now time.Time) {
	d.state = StateCameraToSlope
	from := d.stage.CameraPose()
	to := d.stage.PresetPose(scene.PresetSlope)
	d.phase = anim.New(now, cameraMoveDuration, easing.InOutCubic, func(eased float64) {
		d.stage.SetCameraPose(scene.Pose{
			Position: vmath.Lerp(from.Position, to.Position, eased),
			LookAt:   vmath.Lerp(from.LookAt, to.LookAt, eased),
		})
	}, d.cancelCheck)
}

func (d *Director) enterWaterRising(now time.Time) {
	d.state = StateWaterRising
	from := d.level
	duration := time.Duration(math.Abs(waterRiseTarget-from)) * waterRisePerUnit
	d.phase = anim.New(now, duration, easing.InOutQuad, func(eased float64) {
		d.applyLevel(vmath.LerpF(from, waterRiseTarget, eased))
		d.reportProgress(eased * waterRiseShare)
	}, d.cancelCheck)
}

// enterDormant holds the scene still between the rise and the failure; the
// timeline bar stays at the end of the water-rise share.
func (d *Director) enterDormant(now time.Time) {
	d.state = StateDormant
	d.phase = anim.New(now, dormantDuration, easing.Linear, func(float64) {
		d.reportProgress(waterRiseShare)
	}, d.cancelCheck)
}

func (d *Director) enterLandslide(now time.Time) {
	d.state = StateLandslide
	orig := d.originalBlock
	d.debris = d.stage.SpawnParticles(debrisConfig(orig.Position), scene.TagEphemeral, now)

	d.phase = anim.New(now, landslideDuration, easing.InOutBack, func(eased float64) {
		tr := orig
		tr.Position = orig.Position.Add(slideOffset.Scale(eased))
		tr.Rotation = orig.Rotation.Add(vmath.V(slideTilt*eased, slideTwist*eased, 0))
		d.stage.SetMeshTransform(scene.MeshLandslideBlock, tr)

		if sys := d.stage.ParticleSystem(d.debris); sys != nil {
			sys.SetOpacity(1 - clamp01(eased))
		}
		d.reportProgress(landslideOffset + clamp01(eased)*landslideShare)
	}, d.cancelCheck)
}

func (d *Director) enterTsunami(now time.Time) {
	d.state = StateTsunami

	waveStart, _ := d.stage.MeshTransform(scene.MeshWave)
	waveStart.Position = scene.ImpactPoint()
	waveStart.Position.Y = reservoir.HeightFromLevel(d.level, scene.WaterMinHeight, scene.WaterMaxHeight)
	waveStart.Scale = vmath.V(0.1, 1, 0.1)
	d.stage.SetMeshTransform(scene.MeshWave, waveStart)
	d.stage.SetMeshVisible(scene.MeshWave, true)

	d.splash = d.stage.SpawnParticles(splashConfig(waveStart.Position), scene.TagEphemeral, now)
	d.overtopBase = waveStart.Position.Y

	dir := scene.DamPosition().Sub(waveStart.Position)
	dir.Y = 0
	dir = dir.Normalized()

	// The tsunami applies several easings to one timeline plus raw-progress
	// thresholds for overtopping, so the phase itself stays linear.
	d.phase = anim.New(now, tsunamiDuration, easing.Linear, func(t float64) {
		tr := waveStart
		tr.Scale = vmath.Lerp(vmath.V(0.1, 1, 0.1), vmath.V(5, 5, 5), easing.OutCubic(t))
		tr.Position = waveStart.Position.Add(dir.Scale(scene.WaveTravelDistance * easing.OutQuad(t)))
		d.stage.SetMeshTransform(scene.MeshWave, tr)

		if sys := d.stage.ParticleSystem(d.splash); sys != nil {
			sys.SetOpacity(1 - t)
		}

		if t > overtopRampStart {
			k := (t - overtopRampStart) / (1 - overtopRampStart)
			h := vmath.LerpF(d.overtopBase, scene.DamHeight+scene.OvertopMargin, k)
			// Derived visuals track the clamped level; the surface itself
			// keeps climbing past the crest.
			d.applyLevel(reservoir.LevelFromHeight(h, scene.WaterMinHeight, scene.WaterMaxHeight))
			d.applyWaterHeight(h)

			if !d.overtopFired && t > overtopBurstMin && t < overtopBurstMax {
				d.overtopFired = true
				d.stage.SpawnParticles(overtopConfig(), scene.TagEphemeral, now)
			}
		}
		d.reportProgress(tsunamiOffset + t*tsunamiShare)
	}, d.cancelCheck)
}

// enterSummaryPending stops the run flag and presents the summary; a single
// acknowledgment restores the idle state.
func (d *Director) enterSummaryPending() {
	d.state = StateSummaryPending
	d.phase = nil
	d.running = false
	d.reportProgress(100)
	d.ui.ShowSummary()
	d.logger.Info("sequence complete, awaiting acknowledgment")
}

// --- effect configurations ---

// debrisConfig is the landslide burst: spherical spread with a downward
// bias, spawned at the block's pre-slide position.
func debrisConfig(origin vmath.Vec3) particles.Config {
	return particles.Config{
		Count:        48,
		Origin:       origin,
		Policy:       particles.PolicyBurst,
		MinSpeed:     1.5,
		MaxSpeed:     3,
		DownwardBias: 1,
		Gravity:      0.15,
		Lifetime:     landslideDuration,
		Color:        color.RGBA{R: 0x8d, G: 0x79, B: 0x63, A: 0xff},
		Size:         1.6,
	}
}

// splashConfig is the tsunami impact burst: a fast spherical spray at the
// wave spawn point.
func splashConfig(origin vmath.Vec3) particles.Config {
	return particles.Config{
		Count:    80,
		Origin:   origin,
		Policy:   particles.PolicyBurst,
		MinSpeed: 2,
		MaxSpeed: 4,
		Gravity:  0.12,
		Lifetime: tsunamiDuration,
		Color:    color.RGBA{R: 0xb3, G: 0xdc, B: 0xf0, A: 0xff},
		Size:     1.2,
	}
}

// overtopConfig is the continuous spill over the dam crest: a narrow
// downward-and-outward cone that recycles particles back to the crest.
func overtopConfig() particles.Config {
	crest := scene.DamPosition()
	crest.Y = scene.DamHeight
	return particles.Config{
		Count:         40,
		Origin:        crest,
		Policy:        particles.PolicyRecycle,
		MinSpeed:      1,
		MaxSpeed:      2,
		Cone:          0.35,
		Gravity:       0.1,
		RecycleFloor:  -20,
		RecycleHeight: scene.DamHeight + 5,
		Color:         color.RGBA{R: 0xd7, G: 0xec, B: 0xf7, A: 0xff},
		Size:          1,
	}
}
