// Package particles implements the shared kinematics step behind the debris,
// splash and overtopping effects: per-frame velocity integration under
// gravity with either a bounded lifetime or a recycling lifecycle.
package particles

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"vajontsim/internal/vmath"
)

// Policy selects the lifecycle of a particle system.
type Policy int

const (
	// PolicyBurst systems are removed wholesale once their lifetime
	// elapses, and fade as their owning phase progresses.
	PolicyBurst Policy = iota
	// PolicyRecycle systems emit continuously: particles falling past the
	// recycle floor are teleported back to the source height with a fresh
	// randomized downward velocity. Opacity stays constant.
	PolicyRecycle
)

// Config describes a particle system at spawn time. Speeds are in world
// units per frame, matching the per-frame integration step.
type Config struct {
	Count  int
	Origin vmath.Vec3
	Policy Policy

	// Initial velocity distribution. With Cone zero, directions are
	// sampled uniformly on the sphere; DownwardBias is subtracted from
	// the vertical component either way. A positive Cone instead samples
	// a narrow downward-and-outward cone of that horizontal spread.
	MinSpeed     float64
	MaxSpeed     float64
	DownwardBias float64
	Cone         float64

	Gravity  float64       // per-frame vertical velocity decrement
	Lifetime time.Duration // burst systems only; zero means no self-expiry

	// Recycle policy bounds.
	RecycleFloor  float64
	RecycleHeight float64

	Color color.RGBA
	Size  float64
}

// System is one ephemeral set of simulated points. It is created by an
// effect trigger, stepped once per rendered frame, and destroyed either by
// the reset sweep or by its own lifetime elapsing.
type System struct {
	cfg     Config
	created time.Time
	pos     []vmath.Vec3
	vel     []vmath.Vec3
	opacity float64
	rng     *rand.Rand
}

// NewSystem spawns a system at the given instant. The rng drives the initial
// velocity distribution and recycling; passing a seeded source keeps effects
// deterministic.
func NewSystem(cfg Config, created time.Time, rng *rand.Rand) *System {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	s := &System{
		cfg:     cfg,
		created: created,
		pos:     make([]vmath.Vec3, cfg.Count),
		vel:     make([]vmath.Vec3, cfg.Count),
		opacity: 1,
		rng:     rng,
	}
	for i := range s.pos {
		s.pos[i] = cfg.Origin
		s.vel[i] = s.initialVelocity()
	}
	return s
}

func (s *System) initialVelocity() vmath.Vec3 {
	speed := s.cfg.MinSpeed + s.rng.Float64()*(s.cfg.MaxSpeed-s.cfg.MinSpeed)
	var dir vmath.Vec3
	if s.cfg.Cone > 0 {
		// Downward-and-outward cone: horizontal spread bounded by Cone.
		angle := s.rng.Float64() * 2 * math.Pi
		radial := s.rng.Float64() * s.cfg.Cone
		dir = vmath.V(math.Cos(angle)*radial, -1, math.Sin(angle)*radial).Normalized()
	} else {
		// Uniform direction on the sphere.
		theta := s.rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*s.rng.Float64() - 1)
		dir = vmath.V(
			math.Sin(phi)*math.Cos(theta),
			math.Cos(phi),
			math.Sin(phi)*math.Sin(theta),
		)
	}
	v := dir.Scale(speed)
	v.Y -= s.cfg.DownwardBias
	return v
}

// Step advances every particle by one frame: position += velocity, then
// velocity loses Gravity vertically. Recycling systems teleport particles
// that cross the floor back up to the source height.
func (s *System) Step() {
	for i := range s.pos {
		s.pos[i] = s.pos[i].Add(s.vel[i])
		s.vel[i].Y -= s.cfg.Gravity

		if s.cfg.Policy == PolicyRecycle && s.pos[i].Y < s.cfg.RecycleFloor {
			s.pos[i] = vmath.V(s.cfg.Origin.X, s.cfg.RecycleHeight, s.cfg.Origin.Z)
			s.vel[i] = s.initialVelocity()
		}
	}
}

// Expired reports whether a burst system's fixed lifetime has elapsed.
// Recycling systems never self-expire; they are removed by the reset sweep.
func (s *System) Expired(now time.Time) bool {
	if s.cfg.Policy != PolicyBurst || s.cfg.Lifetime <= 0 {
		return false
	}
	return now.Sub(s.created) >= s.cfg.Lifetime
}

// SetOpacity sets the fade level for burst systems. The owning phase drives
// this from its own progress; recycling systems ignore it and hold full
// opacity.
func (s *System) SetOpacity(a float64) {
	if s.cfg.Policy == PolicyRecycle {
		return
	}
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	s.opacity = a
}

// Opacity returns the current fade level in [0,1].
func (s *System) Opacity() float64 { return s.opacity }

// Positions exposes the live particle positions for rendering.
func (s *System) Positions() []vmath.Vec3 { return s.pos }

// Velocities exposes the live particle velocities.
func (s *System) Velocities() []vmath.Vec3 { return s.vel }

// Color returns the particle color from the spawn config.
func (s *System) Color() color.RGBA { return s.cfg.Color }

// Size returns the particle size from the spawn config.
func (s *System) Size() float64 { return s.cfg.Size }
