//go:build !ebiten

package ui

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

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(StatusFunc) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}
