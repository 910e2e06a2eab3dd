//go:build ebiten

package ui

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Status is the snapshot of simulation state the overlay displays.
type Status struct {
	Backend    string
	Rule       string
	Generation int
	Paused     bool
	Alive      int
}

// StatusFunc supplies the current status each frame.
type StatusFunc func() Status

// Overlay draws a small status readout on top of the slice mosaic, including
// which backend is actually computing generations.
type Overlay struct {
	status  StatusFunc
	visible bool
}

// NewOverlay constructs an overlay fed by the provided status source.
func NewOverlay(status StatusFunc) *Overlay {
	return &Overlay{status: status, visible: true}
}

// Update toggles overlay visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
}

// Draw renders the status readout.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.visible || o.status == nil {
		return
	}
	s := o.status()
	state := "running"
	if s.Paused {
		state = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"backend: %s\nrule: %s\ngen: %d (%s)\nalive: %d",
		s.Backend, s.Rule, s.Generation, state, s.Alive))
}
