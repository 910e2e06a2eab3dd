//go:build ebiten

package app

import (
	"time"

	"vox-ca/internal/core"
	"vox-ca/internal/render"
	"vox-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts the automaton controller to the ebiten.Game interface. It owns
// the current grid snapshot; each tick replaces it wholesale with the step
// result, never mutating in place.
type Game struct {
	ctrl    *core.Controller
	grid    *core.Grid
	painter *render.SlicePainter
	overlay *ui.Overlay
	fixed   *core.FixedStep

	cfg      *Config
	paused   bool
	tickOnce bool
	gen      int
}

// New constructs a Game driving the provided controller.
func New(ctrl *core.Controller, grid *core.Grid, cfg *Config) *Game {
	g := &Game{
		ctrl:    ctrl,
		grid:    grid,
		painter: render.NewSlicePainter(grid.X, grid.Y, grid.Z),
		fixed:   core.NewFixedStep(cfg.TPS),
		cfg:     cfg,
	}
	g.overlay = ui.NewOverlay(func() ui.Status {
		return ui.Status{
			Backend:    g.ctrl.ActiveBackend(),
			Rule:       cfg.Rule,
			Generation: g.gen,
			Paused:     g.paused,
			Alive:      g.grid.AliveCount(),
		}
	})
	return g
}

// Reset reseeds the grid from the configured pattern.
func (g *Game) Reset(seed int64) {
	grid, err := core.NewPatternGrid(g.cfg.Size, g.cfg.Size, g.cfg.Size, g.cfg.Pattern, seed)
	if err != nil {
		return
	}
	g.grid = grid
	g.gen = 0
	g.ctrl.Configure(grid, g.cfg.Rule)
	g.fixed.Reset()
}

// cycleBackend tears down the current controller and rebuilds one preferring
// the next registered backend, configured with the current grid and rule.
func (g *Game) cycleBackend() {
	next := NextBackend(g.cfg.Backend)
	ctrl, err := BuildController(next)
	if err != nil {
		return
	}
	g.ctrl.Dispose()
	g.ctrl = ctrl
	g.cfg.Backend = next
	g.ctrl.Configure(g.grid, g.cfg.Rule)
}

// Update handles per-frame input and advances the simulation at the fixed
// tick rate.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.fixed.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.cfg.Seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.cycleBackend()
	}

	g.overlay.Update()

	if (!g.paused && g.fixed.ShouldStep()) || g.tickOnce {
		res := g.ctrl.Step(g.grid)
		g.grid = res.Grid
		g.gen++
		g.tickOnce = false
	}
	return nil
}

// Draw renders the slice mosaic and the status overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.grid, g.cfg.Scale)
	g.overlay.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := g.painter.Size()
	return w * g.cfg.Scale, h * g.cfg.Scale
}
