package scene

import (
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vajontsim/internal/particles"
	"vajontsim/internal/vmath"
)

func TestStageDefaults(t *testing.T) {
	st := NewStage(1)

	assert.Equal(t, st.PresetPose(PresetAerial), st.CameraPose(), "camera starts at the aerial preset")

	tr, ok := st.MeshTransform(MeshWave)
	require.True(t, ok)
	assert.Equal(t, vmath.V(0.1, 1, 0.1), tr.Scale)
	assert.False(t, st.MeshVisible(MeshWave), "wave hidden until the tsunami phase")

	assert.False(t, st.MeshVisible(MeshSaturationZone))
	assert.True(t, st.MeshVisible(MeshLandslideBlock))

	_, ok = st.MeshTransform(MeshID("nonexistent"))
	assert.False(t, ok)
}

func TestPresetFallback(t *testing.T) {
	st := NewStage(1)
	assert.Equal(t, st.PresetPose(PresetAerial), st.PresetPose(Preset("bogus")))
}

func TestMaterialProperties(t *testing.T) {
	st := NewStage(1)
	st.SetMaterialProperty(MeshClayLayer, PropEmissive, 0.6)
	assert.Equal(t, 0.6, st.MaterialProperty(MeshClayLayer, PropEmissive))
	assert.Equal(t, 0.0, st.MaterialProperty(MeshClayLayer, "unset"))

	st.SetMeshColor(MeshClayLayer, color.RGBA{R: 1, G: 2, B: 3, A: 4})
	assert.Equal(t, color.RGBA{R: 1, G: 2, B: 3, A: 4}, st.MeshColor(MeshClayLayer))
}

func TestParticleRegistry(t *testing.T) {
	st := NewStage(1)
	now := time.Unix(0, 0)

	burst := st.SpawnParticles(particles.Config{Count: 3, Lifetime: time.Second}, TagEphemeral, now)
	keep := st.SpawnParticles(particles.Config{Count: 2}, "persistent", now)
	require.Equal(t, 2, st.ParticleCount())
	require.NotNil(t, st.ParticleSystem(burst))

	st.RemoveAllTagged(TagEphemeral)
	assert.Nil(t, st.ParticleSystem(burst))
	assert.NotNil(t, st.ParticleSystem(keep), "sweep only removes the requested tag")

	st.RemoveParticles(keep)
	assert.Equal(t, 0, st.ParticleCount())
}

func TestStepParticlesRetiresExpiredBursts(t *testing.T) {
	st := NewStage(1)
	now := time.Unix(0, 0)

	h := st.SpawnParticles(particles.Config{
		Count:    2,
		Policy:   particles.PolicyBurst,
		Lifetime: 500 * time.Millisecond,
	}, TagEphemeral, now)

	st.StepParticles(now.Add(100 * time.Millisecond))
	assert.NotNil(t, st.ParticleSystem(h))

	st.StepParticles(now.Add(time.Second))
	assert.Nil(t, st.ParticleSystem(h), "expired burst removed by the step sweep")
}
