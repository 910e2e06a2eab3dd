//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"

	"vox-ca/internal/app"
	"vox-ca/internal/core"
	_ "vox-ca/internal/engines/compute"
	_ "vox-ca/internal/engines/cpu"
	_ "vox-ca/internal/engines/tensorconv"
	_ "vox-ca/internal/engines/texture"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	verbose := flag.Bool("v", false, "log backend activity to stderr")
	flag.Parse()

	if *verbose {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	ctrl, err := app.BuildController(cfg.Backend)
	if err != nil {
		log.Fatal(err)
	}

	grid, err := core.NewPatternGrid(cfg.Size, cfg.Size, cfg.Size, cfg.Pattern, cfg.Seed)
	if err != nil {
		log.Fatalf("create %d^3 grid: %v", cfg.Size, err)
	}
	ctrl.Configure(grid, cfg.Rule)

	game := app.New(ctrl, grid, cfg)
	w, h := game.Layout(0, 0)

	ebiten.SetWindowTitle("vox-ca (" + ctrl.ActiveBackend() + ")")
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
	ctrl.Dispose()
}
