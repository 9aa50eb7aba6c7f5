package scene

import (
	"image/color"

	"vajontsim/internal/vmath"
)

// World-unit dimensions of the valley. Y is up; the reservoir stretches
// along X with the dam on the positive side and the Monte Toc slope on the
// negative side.
const (
	// WaterMinHeight and WaterMaxHeight bound the reservoir surface; the
	// normalized level maps linearly between them.
	WaterMinHeight = 5.0
	WaterMaxHeight = 90.0

	// DamHeight is the crest of the dam. Overtopping during the tsunami
	// phase pushes the water surface toward DamHeight + OvertopMargin.
	DamHeight     = 90.0
	OvertopMargin = 10.0

	// WaveTravelDistance is how far the tsunami wave front moves toward
	// the dam over the phase.
	WaveTravelDistance = 180.0
)

// Fixed scene anchors.
var (
	damPosition   = vmath.V(140, DamHeight/2, 0)
	blockPosition = vmath.V(-90, 70, -20)
	clayPosition  = vmath.V(-90, 52, -20)
	impactPoint   = vmath.V(-60, 0, 0)
)

// DamPosition returns the dam's resting position.
func DamPosition() vmath.Vec3 { return damPosition }

// ImpactPoint returns where the landslide enters the reservoir. The wave
// mesh spawns here, at the current water surface height.
func ImpactPoint() vmath.Vec3 { return impactPoint }

func (st *Stage) buildGeometry() {
	st.presets[PresetAerial] = Pose{Position: vmath.V(0, 220, 260), LookAt: vmath.V(0, 0, 0)}
	st.presets[PresetDam] = Pose{Position: vmath.V(200, 70, 120), LookAt: damPosition}
	st.presets[PresetSlope] = Pose{Position: vmath.V(-170, 110, 180), LookAt: vmath.V(-90, 50, 0)}
	st.presets[PresetGeology] = Pose{Position: vmath.V(-40, 40, 200), LookAt: vmath.V(-40, 30, 0)}
	st.camera = st.presets[PresetAerial]

	unit := vmath.V(1, 1, 1)

	st.SetMeshTransform(MeshTerrain, Transform{Position: vmath.V(0, 0, 0), Scale: unit})
	st.SetMeshColor(MeshTerrain, color.RGBA{R: 0x6b, G: 0x8e, B: 0x4e, A: 0xff})

	st.SetMeshTransform(MeshDam, Transform{Position: damPosition, Scale: unit})
	st.SetMeshColor(MeshDam, color.RGBA{R: 0xbd, G: 0xbd, B: 0xbd, A: 0xff})

	st.SetMeshTransform(MeshWater, Transform{
		Position: vmath.V(-20, WaterMinHeight, 0),
		Scale:    unit,
	})
	st.SetMeshColor(MeshWater, color.RGBA{R: 0x2f, G: 0x6f, B: 0xa5, A: 0xff})
	st.SetMaterialProperty(MeshWater, PropOpacity, 0.85)

	st.SetMeshTransform(MeshLandslideBlock, Transform{Position: blockPosition, Scale: unit})
	st.SetMeshColor(MeshLandslideBlock, color.RGBA{R: 0x7a, G: 0x66, B: 0x52, A: 0xff})

	st.SetMeshTransform(MeshClayLayer, Transform{Position: clayPosition, Scale: unit})
	st.SetMeshColor(MeshClayLayer, color.RGBA{R: 0x8d, G: 0x6e, B: 0x63, A: 0xff})

	st.SetMeshTransform(MeshSaturationZone, Transform{Position: vmath.V(-90, 40, -20), Scale: unit})
	st.SetMeshColor(MeshSaturationZone, color.RGBA{R: 0x4f, G: 0x83, B: 0xcc, A: 0xff})
	st.SetMeshVisible(MeshSaturationZone, false)

	st.SetMeshTransform(MeshWave, Transform{
		Position: impactPoint,
		Scale:    vmath.V(0.1, 1, 0.1),
	})
	st.SetMeshColor(MeshWave, color.RGBA{R: 0x9b, G: 0xd1, B: 0xe8, A: 0xff})
	st.SetMeshVisible(MeshWave, false)
}
