//go:build ebiten

package app

import (
	"image/color"
	"time"

	"cavegen/internal/render"
	"cavegen/internal/ui"
	"cavegen/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type inverter interface {
	ToggleInvert()
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD
	stepper *core.FixedStep

	onColor  color.Color
	offColor color.Color

	// view is the on-screen field size fixed at start; a growing field is
	// drawn at a smaller scale so it keeps filling the same area.
	viewW, viewH int

	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	scale := max(1, cfg.Scale)
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, cfg.Panel),
		stepper:  core.NewFixedStep(cfg.Speed),
		onColor:  color.RGBA{R: 230, G: 222, B: 205, A: 255},
		offColor: color.RGBA{R: 26, G: 26, B: 26, A: 255},
		viewW:    size.W * scale,
		viewH:    size.H * scale,
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		if inv, ok := g.sim.(inverter); ok {
			inv.ToggleInvert()
		}
	}

	due := g.stepper.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	g.hud.Update(g.paused)
	return nil
}

func (g *Game) drawScale() int {
	s := g.sim.Size()
	if s.W <= 0 || s.H <= 0 {
		return 1
	}
	return max(1, min(g.viewW/s.W, g.viewH/s.H))
}

func (g *Game) fieldSize() (int, int) {
	s, scale := g.sim.Size(), g.drawScale()
	return max(g.viewW, s.W*scale), max(g.viewH, s.H*scale)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	s := g.sim.Size()
	g.painter.Blit(screen, s.W, s.H, g.sim.Cells(), g.onColor, g.offColor, g.drawScale())
	w, h := g.fieldSize()
	g.hud.Draw(screen, w, h)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.fieldSize()
	return w + g.hud.Width(), h
}
