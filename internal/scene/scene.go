// Package scene holds the retained state of the 3D valley scene: mesh
// transforms, material properties, the camera pose and the registry of
// live particle effects. The stage is deliberately renderer-agnostic so the
// whole simulation runs headless; the GUI layer only reads from it.
package scene

import (
	"image/color"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"vajontsim/internal/particles"
	"vajontsim/internal/vmath"
)

// MeshID names one of the retained scene objects.
type MeshID string

const (
	MeshTerrain        MeshID = "terrain"
	MeshDam            MeshID = "dam"
	MeshWater          MeshID = "water"
	MeshLandslideBlock MeshID = "landslide_block"
	MeshClayLayer      MeshID = "clay_layer"
	MeshSaturationZone MeshID = "saturation_zone"
	MeshWave           MeshID = "tsunami_wave"
)

// Material property keys.
const (
	PropOpacity  = "opacity"
	PropEmissive = "emissive"
)

// TagEphemeral marks particle systems that the reset sweep purges.
const TagEphemeral = "ephemeral"

// Transform is the full spatial state of a mesh. Rotation components are
// Euler angles in radians (X tilt, Y twist, Z roll).
type Transform struct {
	Position vmath.Vec3
	Rotation vmath.Vec3
	Scale    vmath.Vec3
}

// Pose is a camera position plus the point it looks at.
type Pose struct {
	Position vmath.Vec3
	LookAt   vmath.Vec3
}

// Preset names one of the fixed camera viewpoints.
type Preset string

const (
	PresetAerial  Preset = "aerial"
	PresetDam     Preset = "dam"
	PresetSlope   Preset = "slope"
	PresetGeology Preset = "geology"
)

// Handle identifies a spawned particle system in the stage registry.
type Handle = uuid.UUID

type spawnedEffect struct {
	sys *particles.System
	tag string
}

type meshState struct {
	transform Transform
	color     color.RGBA
	props     map[string]float64
	visible   bool
}

// Stage is the single scene handle passed into the orchestrator and the
// render layer. It is not safe for concurrent use; everything happens on
// the frame-update callback.
type Stage struct {
	camera  Pose
	presets map[Preset]Pose
	meshes  map[MeshID]*meshState
	effects map[Handle]*spawnedEffect
	rng     *rand.Rand
}

// NewStage builds the Vajont valley scene in its default state. The seed
// drives particle randomization only.
func NewStage(seed int64) *Stage {
	st := &Stage{
		presets: map[Preset]Pose{},
		meshes:  map[MeshID]*meshState{},
		effects: map[Handle]*spawnedEffect{},
		rng:     rand.New(rand.NewSource(seed)),
	}
	st.buildGeometry()
	return st
}

// --- camera ---

// CameraPose returns the current camera pose.
func (st *Stage) CameraPose() Pose { return st.camera }

// SetCameraPose moves the camera.
func (st *Stage) SetCameraPose(p Pose) { st.camera = p }

// PresetPose returns the named fixed viewpoint. Unknown presets fall back
// to the aerial view.
func (st *Stage) PresetPose(p Preset) Pose {
	pose, ok := st.presets[p]
	if !ok {
		return st.presets[PresetAerial]
	}
	return pose
}

// --- meshes and materials ---

func (st *Stage) mesh(id MeshID) *meshState {
	m, ok := st.meshes[id]
	if !ok {
		m = &meshState{
			transform: Transform{Scale: vmath.V(1, 1, 1)},
			props:     map[string]float64{},
			visible:   true,
		}
		st.meshes[id] = m
	}
	return m
}

// MeshTransform returns a mesh's transform and whether the mesh exists.
func (st *Stage) MeshTransform(id MeshID) (Transform, bool) {
	m, ok := st.meshes[id]
	if !ok {
		return Transform{}, false
	}
	return m.transform, true
}

// SetMeshTransform replaces a mesh's transform.
func (st *Stage) SetMeshTransform(id MeshID, tr Transform) {
	st.mesh(id).transform = tr
}

// MeshColor returns a mesh's base color.
func (st *Stage) MeshColor(id MeshID) color.RGBA {
	m, ok := st.meshes[id]
	if !ok {
		return color.RGBA{}
	}
	return m.color
}

// SetMeshColor replaces a mesh's base color.
func (st *Stage) SetMeshColor(id MeshID, c color.RGBA) {
	st.mesh(id).color = c
}

// MaterialProperty returns a numeric material property, or 0 if unset.
func (st *Stage) MaterialProperty(id MeshID, key string) float64 {
	m, ok := st.meshes[id]
	if !ok {
		return 0
	}
	return m.props[key]
}

// SetMaterialProperty sets a numeric material property such as opacity or
// emissive intensity.
func (st *Stage) SetMaterialProperty(id MeshID, key string, value float64) {
	st.mesh(id).props[key] = value
}

// MeshVisible reports whether a mesh should be drawn.
func (st *Stage) MeshVisible(id MeshID) bool {
	m, ok := st.meshes[id]
	return ok && m.visible
}

// SetMeshVisible toggles a mesh.
func (st *Stage) SetMeshVisible(id MeshID, visible bool) {
	st.mesh(id).visible = visible
}

// Meshes returns the IDs of all retained meshes.
func (st *Stage) Meshes() []MeshID {
	ids := make([]MeshID, 0, len(st.meshes))
	for id := range st.meshes {
		ids = append(ids, id)
	}
	return ids
}

// --- particle registry ---

// SpawnParticles creates a particle system and registers it under a fresh
// handle. Systems tagged TagEphemeral are purged wholesale on reset.
func (st *Stage) SpawnParticles(cfg particles.Config, tag string, now time.Time) Handle {
	h := uuid.New()
	st.effects[h] = &spawnedEffect{
		sys: particles.NewSystem(cfg, now, st.rng),
		tag: tag,
	}
	return h
}

// ParticleSystem returns the system behind a handle, or nil if it has been
// removed. Phases holding handles across frames must tolerate nil: a reset
// sweep may retire an effect under them.
func (st *Stage) ParticleSystem(h Handle) *particles.System {
	e, ok := st.effects[h]
	if !ok {
		return nil
	}
	return e.sys
}

// RemoveParticles retires one system by handle.
func (st *Stage) RemoveParticles(h Handle) {
	delete(st.effects, h)
}

// RemoveAllTagged retires every system registered under the given tag.
func (st *Stage) RemoveAllTagged(tag string) {
	for h, e := range st.effects {
		if e.tag == tag {
			delete(st.effects, h)
		}
	}
}

// StepParticles advances every live system by one frame and retires burst
// systems whose lifetime has elapsed.
func (st *Stage) StepParticles(now time.Time) {
	for h, e := range st.effects {
		if e.sys.Expired(now) {
			delete(st.effects, h)
			continue
		}
		e.sys.Step()
	}
}

// EachParticleSystem visits all live systems, for rendering.
func (st *Stage) EachParticleSystem(fn func(h Handle, tag string, sys *particles.System)) {
	for h, e := range st.effects {
		fn(h, e.tag, e.sys)
	}
}

// ParticleCount reports the number of live systems.
func (st *Stage) ParticleCount() int { return len(st.effects) }
