//go:build ebiten

package ui

import (
	"fmt"
	"image"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"vajontsim/internal/reservoir"
)

// Controller is the slice of the sequence director the HUD drives. The HUD
// never mutates scene state directly; everything goes through these calls.
type Controller interface {
	Start(now time.Time)
	Reset()
	Acknowledge()
	SetLevel(level float64)
	Running() bool
}

// HUD renders the control panel to the right of the valley view and the
// summary overlay. It implements the director's UI reporting surface, so
// its displayed values always come from the director, never from local
// bookkeeping.
type HUD struct {
	ctrl    Controller
	width   int
	height  int
	offsetX int

	panel *ebiten.Image
	pixel *ebiten.Image

	level            float64
	stability        reservoir.Stability
	controlsEnabled  bool
	timelineVisible  bool
	timelineProgress float64
	summaryVisible   bool

	minusRect image.Rectangle
	plusRect  image.Rectangle
	startRect image.Rectangle
	resetRect image.Rectangle
	okRect    image.Rectangle
}

// NewHUD constructs a HUD panel of the given size anchored at offsetX.
// The controller is attached afterwards; the director needs the HUD as its
// reporting surface before the HUD can drive it.
func NewHUD(offsetX, width, height int) *HUD {
	h := &HUD{
		width:           width,
		height:          height,
		offsetX:         offsetX,
		level:           reservoir.DefaultLevel,
		stability:       reservoir.StabilityOf(reservoir.DefaultLevel),
		controlsEnabled: true,
	}
	h.pixel = ebiten.NewImage(1, 1)
	h.pixel.Fill(color.White)
	h.layout()
	return h
}

// Attach wires the HUD's interactive controls to the sequence director.
func (h *HUD) Attach(ctrl Controller) { h.ctrl = ctrl }

// --- director reporting surface ---

// SetLevel reflects the current normalized reservoir level.
func (h *HUD) SetLevel(level float64) { h.level = level }

// SetStability reflects the derived stability tier readout.
func (h *HUD) SetStability(s reservoir.Stability) { h.stability = s }

// SetControlsEnabled toggles the level and start controls.
func (h *HUD) SetControlsEnabled(enabled bool) { h.controlsEnabled = enabled }

// SetTimelineVisible shows or hides the progress bar.
func (h *HUD) SetTimelineVisible(visible bool) { h.timelineVisible = visible }

// SetTimelineProgress updates the progress bar, in [0,100].
func (h *HUD) SetTimelineProgress(pct float64) { h.timelineProgress = pct }

// ShowSummary presents the educational summary overlay.
func (h *HUD) ShowSummary() { h.summaryVisible = true }

// HideSummary dismisses the summary overlay.
func (h *HUD) HideSummary() { h.summaryVisible = false }

// --- input ---

// Update handles mouse interaction with the panel and the summary overlay.
func (h *HUD) Update(now time.Time) {
	if h == nil || h.ctrl == nil {
		return
	}
	if h.summaryVisible && inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		h.ctrl.Acknowledge()
		return
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()

	if h.summaryVisible {
		if pointInRect(mx, my, h.okRect) {
			h.ctrl.Acknowledge()
		}
		return
	}

	if mx < h.offsetX {
		return
	}
	px := mx - h.offsetX
	switch {
	case h.controlsEnabled && pointInRect(px, my, h.minusRect):
		h.ctrl.SetLevel(h.level - levelStep)
	case h.controlsEnabled && pointInRect(px, my, h.plusRect):
		h.ctrl.SetLevel(h.level + levelStep)
	case h.controlsEnabled && !h.ctrl.Running() && pointInRect(px, my, h.startRect):
		h.ctrl.Start(now)
	case pointInRect(px, my, h.resetRect):
		h.ctrl.Reset()
	}
}

// --- drawing ---

// Draw paints the panel anchored to the right edge, plus the timeline bar
// and summary overlay when active.
func (h *HUD) Draw(screen *ebiten.Image) {
	if h == nil || h.width <= 0 {
		return
	}
	if h.panel == nil {
		h.panel = ebiten.NewImage(h.width, h.height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})

	face := basicfont.Face7x13
	dim := color.RGBA{R: 160, G: 160, B: 170, A: 255}
	bright := color.RGBA{R: 220, G: 220, B: 230, A: 255}

	y := panelPadding + headerBaseline
	text.Draw(h.panel, "Vajont Reservoir", face, panelPadding, y, bright)

	// Level row.
	row := h.minusRect.Min.Y
	text.Draw(h.panel, "Level", face, panelPadding, row+labelBaseline, bright)
	text.Draw(h.panel, fmt.Sprintf("%3.0f", h.level), face, h.minusRect.Min.X-buttonGap-3*7, row+labelBaseline, bright)
	h.drawButton(h.minusRect, "-", h.controlsEnabled)
	h.drawButton(h.plusRect, "+", h.controlsEnabled)

	// Stability and clay readouts with color swatches.
	stabTop := h.minusRect.Max.Y + rowGap
	text.Draw(h.panel, "Stability", face, panelPadding, stabTop+labelBaseline, dim)
	h.fillRect(h.panel, image.Rect(panelPadding, stabTop+swatchOffset, panelPadding+swatchSize, stabTop+swatchOffset+swatchSize), h.stability.Color())
	text.Draw(h.panel, h.stability.String(), face, panelPadding+swatchSize+buttonGap, stabTop+swatchOffset+swatchSize-2, bright)

	stress := reservoir.ClayStressOf(h.level)
	clayTop := stabTop + swatchOffset + swatchSize + rowGap
	text.Draw(h.panel, "Clay stress", face, panelPadding, clayTop+labelBaseline, dim)
	h.fillRect(h.panel, image.Rect(panelPadding, clayTop+swatchOffset, panelPadding+swatchSize, clayTop+swatchOffset+swatchSize), stress.Color())
	text.Draw(h.panel, stress.String(), face, panelPadding+swatchSize+buttonGap, clayTop+swatchOffset+swatchSize-2, bright)

	running := h.ctrl != nil && h.ctrl.Running()
	h.drawButton(h.startRect, "Start", h.controlsEnabled && !running)
	h.drawButton(h.resetRect, "Reset", true)

	if h.timelineVisible {
		h.drawTimeline()
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(h.offsetX), 0)
	screen.DrawImage(h.panel, op)

	if h.summaryVisible {
		h.drawSummary(screen)
	}
}

func (h *HUD) drawTimeline() {
	barTop := h.height - panelPadding - timelineHeight
	outer := image.Rect(panelPadding, barTop, h.width-panelPadding, barTop+timelineHeight)
	h.fillRect(h.panel, outer, color.RGBA{R: 32, G: 34, B: 40, A: 255})
	pct := h.timelineProgress
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	fill := outer
	fill.Max.X = outer.Min.X + int(float64(outer.Dx())*pct/100)
	h.fillRect(h.panel, fill, color.RGBA{R: 64, G: 164, B: 223, A: 255})
	text.Draw(h.panel, fmt.Sprintf("%3.0f%%", pct), basicfont.Face7x13, panelPadding, barTop-4, color.RGBA{R: 160, G: 160, B: 170, A: 255})
}

var summaryLines = []string{
	"October 9, 1963",
	"",
	"A 260-million cubic meter landslide",
	"plunged into the Vajont reservoir at",
	"up to 110 km/h. The displaced water",
	"overtopped the dam by 250 meters and",
	"destroyed the town of Longarone.",
	"Nearly 2,000 people died.",
	"",
	"The dam itself held.",
}

func (h *HUD) drawSummary(screen *ebiten.Image) {
	w, hh := screen.Bounds().Dx(), screen.Bounds().Dy()
	h.fillRect(screen, image.Rect(0, 0, w, hh), color.RGBA{A: 180})

	boxW, boxH := 320, 40+len(summaryLines)*summaryLineHeight+buttonSize+panelPadding*2
	box := image.Rect((w-boxW)/2, (hh-boxH)/2, (w+boxW)/2, (hh+boxH)/2)
	h.fillRect(screen, box, color.RGBA{R: 24, G: 26, B: 32, A: 255})

	f := basicfont.Face7x13
	ty := box.Min.Y + panelPadding + headerBaseline
	text.Draw(screen, "The Vajont Disaster", f, box.Min.X+panelPadding, ty, color.RGBA{R: 230, G: 230, B: 240, A: 255})
	ty += summaryLineHeight + 4
	for _, line := range summaryLines {
		text.Draw(screen, line, f, box.Min.X+panelPadding, ty, color.RGBA{R: 200, G: 200, B: 210, A: 255})
		ty += summaryLineHeight
	}

	h.okRect = image.Rect(box.Max.X-panelPadding-okWidth, box.Max.Y-panelPadding-buttonSize, box.Max.X-panelPadding, box.Max.Y-panelPadding)
	h.fillRect(screen, h.okRect, color.RGBA{R: 54, G: 56, B: 64, A: 255})
	text.Draw(screen, "OK", f, h.okRect.Min.X+(okWidth-14)/2, h.okRect.Min.Y+buttonSize-7, color.RGBA{R: 230, G: 230, B: 240, A: 255})
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(h.panel, rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(dst *ebiten.Image, rect image.Rectangle, c color.RGBA) {
	if rect.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorM.Scale(float64(c.R)/255.0, float64(c.G)/255.0, float64(c.B)/255.0, float64(c.A)/255.0)
	dst.DrawImage(h.pixel, op)
}

func (h *HUD) layout() {
	top := controlsTop
	buttonY := top + (lineHeight-buttonSize)/2
	h.plusRect = image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
	h.minusRect = image.Rect(h.plusRect.Min.X-buttonGap-buttonSize, buttonY, h.plusRect.Min.X-buttonGap, buttonY+buttonSize)

	actionTop := controlsTop + 3*lineHeight + 2*rowGap + 2*swatchSize
	h.startRect = image.Rect(panelPadding, actionTop, panelPadding+actionWidth, actionTop+buttonSize)
	h.resetRect = image.Rect(h.width-panelPadding-actionWidth, actionTop, h.width-panelPadding, actionTop+buttonSize)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	headerBaseline = 13
	labelBaseline  = 16
	controlsTop    = 40
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	rowGap         = 10
	swatchSize     = 12
	swatchOffset   = 20
	actionWidth    = 70
	timelineHeight = 10

	summaryLineHeight = 15
	okWidth           = 56

	levelStep = 5.0
)
