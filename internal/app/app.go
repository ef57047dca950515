//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"schelling/internal/core"
	"schelling/internal/render"
	"schelling/internal/ui"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type converger interface {
	Converged() bool
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA
	log     *slog.Logger

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
	err      error
}

// New constructs a Game for the provided simulation. The board starts paused.
func New(sim core.Sim, scale, hudWidth int, seed int64, logger *slog.Logger) *Game {
	size := sim.Size()
	g := &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, hudWidth),
		log:      logger,
		scale:    scale,
		hudWidth: hudWidth,
		paused:   true,
		seed:     seed,
	}
	if mp, ok := sim.(ui.MaskProvider); ok {
		g.overlay = ui.NewOverlay(mp, size.W, size.H)
	}
	if pp, ok := sim.(paletteProvider); ok {
		g.palette = pp.Palette()
	} else {
		g.palette = []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.err = nil
	g.log.Info("reset", "sim", g.sim.Name(), "seed", effectiveSeed(g.sim, seed))
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
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

	g.overlay.Update()
	g.hud.Update(g.boardWidth())

	if g.err == nil && (!g.paused || g.tickOnce) {
		g.advance()
	}
	g.tickOnce = false
	return nil
}

func (g *Game) advance() {
	if err := g.sim.Step(); err != nil {
		g.err = err
		g.paused = true
		g.log.Error("simulation halted", "sim", g.sim.Name(), "err", err)
		return
	}
	if c, ok := g.sim.(converger); ok && c.Converged() && !g.paused {
		g.paused = true
		g.log.Info("converged", "sim", g.sim.Name(), "seed", effectiveSeed(g.sim, g.seed))
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.BlitPalette(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen, g.scale)
	g.hud.Draw(screen, g.boardWidth(), g.scale)
	if g.err != nil {
		text.Draw(screen, g.err.Error(), basicfont.Face7x13, 8, 20, color.RGBA{R: 255, G: 80, B: 80, A: 255})
	}
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.boardWidth() + g.hudWidth, g.sim.Size().H * g.scale
}

func (g *Game) boardWidth() int {
	return g.sim.Size().W * g.scale
}
