package core

import (
	"errors"
	"fmt"
)

// Cell values shared by every backend. CellDying is only produced by the
// three-state rule family.
const (
	CellDead  uint8 = 0
	CellAlive uint8 = 1
	CellDying uint8 = 2
)

// ErrInvalidDims reports a grid dimension that is zero or negative.
var ErrInvalidDims = errors.New("core: grid dimensions must be positive")

// Grid stores a 3D block of cell values in canonical z-major order
// (index = z*Y*X + y*X + x). Every axis wraps for neighbor lookups, so the
// grid is a 3-torus.
type Grid struct {
	X, Y, Z int
	data    []uint8
}

// NewGrid allocates an all-dead grid with the given dimensions.
func NewGrid(x, y, z int) (*Grid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidDims, x, y, z)
	}
	return &Grid{X: x, Y: y, Z: z, data: make([]uint8, x*y*z)}, nil
}

// MinimalGrid returns the canonical 1x1x1 all-dead grid used when a malformed
// grid reaches a step entry point.
func MinimalGrid() *Grid {
	return &Grid{X: 1, Y: 1, Z: 1, data: make([]uint8, 1)}
}

// Validate reports whether the grid is well formed: positive dimensions and a
// backing slice of exactly X*Y*Z cells.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidDims)
	}
	if g.X <= 0 || g.Y <= 0 || g.Z <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidDims, g.X, g.Y, g.Z)
	}
	if len(g.data) != g.X*g.Y*g.Z {
		return fmt.Errorf("%w: backing slice holds %d cells, want %d", ErrInvalidDims, len(g.data), g.X*g.Y*g.Z)
	}
	return nil
}

// Index returns the linear slice index for coordinates (x, y, z).
func (g *Grid) Index(x, y, z int) int { return (z*g.Y+y)*g.X + x }

// At returns the cell value at (x, y, z).
func (g *Grid) At(x, y, z int) uint8 { return g.data[g.Index(x, y, z)] }

// Set writes the cell value at (x, y, z).
func (g *Grid) Set(x, y, z int, v uint8) { g.data[g.Index(x, y, z)] = v }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y, z int) (int, int, int) {
	x = (x%g.X + g.X) % g.X
	y = (y%g.Y + g.Y) % g.Y
	z = (z%g.Z + g.Z) % g.Z
	return x, y, z
}

// Cells exposes the backing slice in canonical order. Callers must not retain
// the slice across steps; use Linearize for a private copy.
func (g *Grid) Cells() []uint8 { return g.data }

// Linearize returns a fresh copy of the cells in canonical z-major order.
func (g *Grid) Linearize() []uint8 {
	out := make([]uint8, len(g.data))
	copy(out, g.data)
	return out
}

// Delinearize builds a grid from a flat cell sequence in canonical z-major
// order. The slice length must match the dimensions exactly.
func Delinearize(flat []uint8, x, y, z int) (*Grid, error) {
	g, err := NewGrid(x, y, z)
	if err != nil {
		return nil, err
	}
	if len(flat) != len(g.data) {
		return nil, fmt.Errorf("%w: flat sequence holds %d cells, want %d", ErrInvalidDims, len(flat), len(g.data))
	}
	copy(g.data, flat)
	return g, nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{X: g.X, Y: g.Y, Z: g.Z, data: make([]uint8, len(g.data))}
	copy(out.data, g.data)
	return out
}

// Equal reports whether two grids match in dimensions and every cell value.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.X != o.X || g.Y != o.Y || g.Z != o.Z {
		return false
	}
	for i, v := range g.data {
		if v != o.data[i] {
			return false
		}
	}
	return true
}

// AliveCount returns the number of cells in the alive state. Dying cells are
// not counted.
func (g *Grid) AliveCount() int {
	n := 0
	for _, v := range g.data {
		if v == CellAlive {
			n++
		}
	}
	return n
}

// Clear fills the grid with dead cells.
func (g *Grid) Clear() {
	for i := range g.data {
		g.data[i] = CellDead
	}
}
