//go:build ebiten

package render

import (
	"image/color"
	"math"

	ebimath "github.com/edwinsyarief/ebi-math"
	"github.com/hajimehoshi/ebiten/v2"

	"vajontsim/internal/particles"
	"vajontsim/internal/scene"
	"vajontsim/internal/vmath"
)

// View paints the valley scene from the stage's retained state. It is a
// flattened elevation view: world X runs along the screen, world Y is
// height, and Z contributes a small parallax skew so the geology layers
// behind the slope stay visible. The camera pose pans and zooms the view.
type View struct {
	w, h  int
	pixel *ebiten.Image
}

// NewView allocates a view of the given logical size.
func NewView(w, h int) *View {
	v := &View{w: w, h: h}
	v.pixel = ebiten.NewImage(1, 1)
	v.pixel.Fill(color.White)
	return v
}

// Size returns the logical view size.
func (v *View) Size() (int, int) { return v.w, v.h }

// aerialDistance is the reference camera distance; poses closer than it
// zoom in proportionally.
const aerialDistance = 341.0

const (
	zSkewX = 0.25
	zSkewY = 0.12
)

type projector struct {
	center ebimath.Vector
	look   vmath.Vec3
	zoom   float64
}

func newProjector(cam scene.Pose, w, h int) projector {
	dist := cam.Position.Sub(cam.LookAt).Length()
	zoom := 1.0
	if dist > 1 {
		zoom = aerialDistance / dist
	}
	if zoom < 0.6 {
		zoom = 0.6
	}
	if zoom > 2.0 {
		zoom = 2.0
	}
	zoom *= float64(w) / 520.0
	return projector{
		center: ebimath.V(float64(w)/2, float64(h)*0.62),
		look:   cam.LookAt,
		zoom:   zoom,
	}
}

// point maps a world position to screen coordinates.
func (p projector) point(v vmath.Vec3) ebimath.Vector {
	x := p.center.X + (v.X-p.look.X+v.Z*zSkewX)*p.zoom
	y := p.center.Y - (v.Y-p.look.Y+v.Z*zSkewY)*p.zoom
	return ebimath.V(x, y)
}

// Draw renders the whole scene onto dst.
func (v *View) Draw(dst *ebiten.Image, st *scene.Stage) {
	dst.Fill(color.RGBA{R: 0x1a, G: 0x22, B: 0x2e, A: 0xff})

	proj := newProjector(st.CameraPose(), v.w, v.h)

	v.drawTerrain(dst, proj, st)
	v.drawSaturation(dst, proj, st)
	v.drawClay(dst, proj, st)
	v.drawWater(dst, proj, st)
	v.drawBlock(dst, proj, st)
	v.drawDam(dst, proj, st)
	v.drawWave(dst, proj, st)
	v.drawParticles(dst, proj, st)
}

// drawTerrain paints the valley floor and the Monte Toc slope.
func (v *View) drawTerrain(dst *ebiten.Image, proj projector, st *scene.Stage) {
	if !st.MeshVisible(scene.MeshTerrain) {
		return
	}
	c := st.MeshColor(scene.MeshTerrain)
	// Valley floor.
	v.worldRect(dst, proj, vmath.V(0, -10, 0), 480, 20, 0, c, 1)
	// Monte Toc rises on the negative-X side; a stack of narrowing bands
	// stands in for the slope profile.
	for i := 0; i < 6; i++ {
		w := 170.0 - float64(i)*22
		y := 10.0 + float64(i)*20
		v.worldRect(dst, proj, vmath.V(-160+float64(i)*6, y, -10), w, 20, 0, c, 1)
	}
}

func (v *View) drawWater(dst *ebiten.Image, proj projector, st *scene.Stage) {
	if !st.MeshVisible(scene.MeshWater) {
		return
	}
	tr, ok := st.MeshTransform(scene.MeshWater)
	if !ok {
		return
	}
	surface := tr.Position.Y
	if surface <= 0 {
		return
	}
	c := st.MeshColor(scene.MeshWater)
	op := st.MaterialProperty(scene.MeshWater, scene.PropOpacity)
	dam := scene.DamPosition()
	// Water body spans from the slope toe to the dam face.
	cx := (dam.X - 220) / 2
	v.worldRect(dst, proj, vmath.V(cx, surface/2, 0), dam.X+220, surface, 0, c, op)
}

func (v *View) drawSaturation(dst *ebiten.Image, proj projector, st *scene.Stage) {
	if !st.MeshVisible(scene.MeshSaturationZone) {
		return
	}
	tr, ok := st.MeshTransform(scene.MeshSaturationZone)
	if !ok {
		return
	}
	c := st.MeshColor(scene.MeshSaturationZone)
	op := st.MaterialProperty(scene.MeshSaturationZone, scene.PropOpacity)
	v.worldRect(dst, proj, tr.Position, 90*tr.Scale.X, 50*tr.Scale.Y, 0, c, op)
}

func (v *View) drawClay(dst *ebiten.Image, proj projector, st *scene.Stage) {
	if !st.MeshVisible(scene.MeshClayLayer) {
		return
	}
	tr, ok := st.MeshTransform(scene.MeshClayLayer)
	if !ok {
		return
	}
	c := st.MeshColor(scene.MeshClayLayer)
	// Emissive stress glow lightens the band toward the hot color.
	if e := st.MaterialProperty(scene.MeshClayLayer, scene.PropEmissive); e > 0 {
		c = lighten(c, e)
	}
	v.worldRect(dst, proj, tr.Position, 100, 6, -0.28, c, 1)
}

func (v *View) drawBlock(dst *ebiten.Image, proj projector, st *scene.Stage) {
	if !st.MeshVisible(scene.MeshLandslideBlock) {
		return
	}
	tr, ok := st.MeshTransform(scene.MeshLandslideBlock)
	if !ok {
		return
	}
	c := st.MeshColor(scene.MeshLandslideBlock)
	op := 1.0
	if st.MaterialProperty(scene.MeshLandslideBlock, scene.PropOpacity) > 0 {
		op = st.MaterialProperty(scene.MeshLandslideBlock, scene.PropOpacity)
	}
	// Tilt (rotation about X in world space) reads as in-plane rotation
	// from the side.
	v.worldRect(dst, proj, tr.Position, 90*tr.Scale.X, 36*tr.Scale.Y, tr.Rotation.X-0.28, c, op)
}

func (v *View) drawDam(dst *ebiten.Image, proj projector, st *scene.Stage) {
	if !st.MeshVisible(scene.MeshDam) {
		return
	}
	tr, ok := st.MeshTransform(scene.MeshDam)
	if !ok {
		return
	}
	c := st.MeshColor(scene.MeshDam)
	v.worldRect(dst, proj, tr.Position, 14*tr.Scale.X, scene.DamHeight*tr.Scale.Y, 0, c, 1)
}

func (v *View) drawWave(dst *ebiten.Image, proj projector, st *scene.Stage) {
	if !st.MeshVisible(scene.MeshWave) {
		return
	}
	tr, ok := st.MeshTransform(scene.MeshWave)
	if !ok {
		return
	}
	c := st.MeshColor(scene.MeshWave)
	v.worldRect(dst, proj, tr.Position, 16*tr.Scale.X, 10*tr.Scale.Y, 0, c, 0.9)
}

func (v *View) drawParticles(dst *ebiten.Image, proj projector, st *scene.Stage) {
	st.EachParticleSystem(func(_ scene.Handle, _ string, sys *particles.System) {
		c := sys.Color()
		opacity := sys.Opacity()
		if opacity <= 0 {
			return
		}
		size := sys.Size() * proj.zoom
		if size < 1 {
			size = 1
		}
		for _, p := range sys.Positions() {
			pt := proj.point(p)
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(size, size)
			op.GeoM.Translate(pt.X-size/2, pt.Y-size/2)
			op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, opacity)
			dst.DrawImage(v.pixel, op)
		}
	})
}

// worldRect fills an axis-sized rectangle centered at a world position,
// rotated by rot radians, with the given opacity.
func (v *View) worldRect(dst *ebiten.Image, proj projector, center vmath.Vec3, w, h, rot float64, c color.RGBA, opacity float64) {
	if opacity <= 0 {
		return
	}
	if opacity > 1 {
		opacity = 1
	}
	sw := w * proj.zoom
	sh := h * proj.zoom
	if sw < 1 || sh < 1 {
		return
	}
	pos := proj.point(center)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(sw, sh)
	op.GeoM.Translate(-sw/2, -sh/2)
	if rot != 0 {
		op.GeoM.Rotate(-rot)
	}
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, opacity)
	dst.DrawImage(v.pixel, op)
}

func lighten(c color.RGBA, amount float64) color.RGBA {
	f := func(ch uint8) uint8 {
		v := float64(ch) + (255-float64(ch))*amount
		return uint8(math.Min(v, 255))
	}
	return color.RGBA{R: f(c.R), G: f(c.G), B: uint8(math.Min(float64(c.B)+40*amount, 255)), A: c.A}
}
