//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"vajontsim/internal/audio"
	"vajontsim/internal/render"
	"vajontsim/internal/scene"
	"vajontsim/internal/sequence"
	"vajontsim/internal/timeline"
	"vajontsim/internal/ui"
)

// Logical screen layout: the valley view on the left, the control panel on
// the right.
const (
	ViewWidth    = 440
	PanelWidth   = 200
	ScreenHeight = 400
)

// Game wires the stage, the sequence director, the HUD and the audio synth
// into the ebiten.Game interface.
type Game struct {
	stage    *scene.Stage
	director *sequence.Director
	hud      *ui.HUD
	view     *render.View
	synth    *audio.Synth
	pacer    *timeline.FixedStep
	logger   *slog.Logger

	canvas    *ebiten.Image
	lastState sequence.State
}

// New constructs the Game from the parsed configuration.
func New(cfg *Config, logger *slog.Logger) *Game {
	stage := scene.NewStage(cfg.Seed)
	hud := ui.NewHUD(ViewWidth, PanelWidth, ScreenHeight)
	director := sequence.New(stage, hud, logger)
	hud.Attach(director)
	director.SetLevel(cfg.Level)

	synth := audio.NewSynth()
	if !cfg.Mute {
		if err := synth.Init(); err != nil {
			logger.Warn("audio unavailable, continuing muted", "err", err)
		}
	}

	return &Game{
		stage:    stage,
		director: director,
		hud:      hud,
		view:     render.NewView(ViewWidth, ScreenHeight),
		synth:    synth,
		pacer:    timeline.NewFixedStep(cfg.TPS),
		logger:   logger,
		canvas:   ebiten.NewImage(ViewWidth, ScreenHeight),
	}
}

// Update handles input and advances the disaster sequence.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.synth.Close()
		return ebiten.Termination
	}

	now := time.Now()
	g.hud.Update(now)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.director.Start(now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.director.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		g.director.SetLevel(g.director.Level() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		g.director.SetLevel(g.director.Level() - 1)
	}
	g.handlePresetKeys()

	if g.pacer.ShouldStep(now) {
		g.director.Advance(now)
	}
	g.observeState()
	return nil
}

// handlePresetKeys jumps the camera between fixed viewpoints while the
// sequence is idle; during a run the director owns the camera.
func (g *Game) handlePresetKeys() {
	if g.director.Running() {
		return
	}
	presets := map[ebiten.Key]scene.Preset{
		ebiten.KeyDigit1: scene.PresetAerial,
		ebiten.KeyDigit2: scene.PresetDam,
		ebiten.KeyDigit3: scene.PresetSlope,
		ebiten.KeyDigit4: scene.PresetGeology,
	}
	for key, preset := range presets {
		if inpututil.IsKeyJustPressed(key) {
			g.stage.SetCameraPose(g.stage.PresetPose(preset))
		}
	}
}

// observeState logs sequence transitions and fires the matching sound
// effects.
func (g *Game) observeState() {
	s := g.director.State()
	if s == g.lastState {
		return
	}
	g.logger.Info("sequence transition", "from", g.lastState.String(), "to", s.String())
	switch s {
	case sequence.StateLandslide:
		g.synth.Rumble()
	case sequence.StateTsunami:
		g.synth.Splash()
		g.synth.Surge()
	}
	g.lastState = s
}

// Draw renders the valley view and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	g.view.Draw(g.canvas, g.stage)
	screen.DrawImage(g.canvas, nil)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ViewWidth + PanelWidth, ScreenHeight
}
