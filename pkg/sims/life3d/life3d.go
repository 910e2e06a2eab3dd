// Package life3d implements a self-contained 3D life-family automaton with
// toroidal wrapping. It has no dependencies beyond the public RNG helpers and
// exists as the embeddable counterpart to the backend engines.
package life3d

import (
	"vox-ca/pkg/core"
)

// Size describes the dimensions of a simulation volume.
type Size struct {
	X, Y, Z int
}

// Life implements the 5,6,7/4,5,6 life rule on a 3-torus.
type Life struct {
	x, y, z int
	cur     []uint8
	nxt     []uint8
}

// New returns a Life simulation with the provided dimensions.
func New(x, y, z int) *Life {
	cells := make([]uint8, x*y*z)
	return &Life{x: x, y: y, z: z, cur: cells, nxt: make([]uint8, len(cells))}
}

// Name returns the simulation identifier.
func (l *Life) Name() string { return "life3d" }

// Size returns the volume dimensions.
func (l *Life) Size() Size { return Size{X: l.x, Y: l.y, Z: l.z} }

// Cells exposes the current cell values in z-major order.
func (l *Life) Cells() []uint8 { return l.cur }

// Reset randomizes the volume using the provided seed, roughly one cell in
// eight alive.
func (l *Life) Reset(seed int64) {
	rng := core.NewRNG(seed).Source()
	core.FillSparse(rng, l.cur, 8)
}

// Step advances the simulation by one generation.
func (l *Life) Step() {
	x, y, z := l.x, l.y, l.z
	for cz := 0; cz < z; cz++ {
		for cy := 0; cy < y; cy++ {
			for cx := 0; cx < x; cx++ {
				neighbors := 0
				for dz := -1; dz <= 1; dz++ {
					for dy := -1; dy <= 1; dy++ {
						for dx := -1; dx <= 1; dx++ {
							if dx == 0 && dy == 0 && dz == 0 {
								continue
							}
							nx := (cx + dx + x) % x
							ny := (cy + dy + y) % y
							nz := (cz + dz + z) % z
							if l.cur[(nz*y+ny)*x+nx] == 1 {
								neighbors++
							}
						}
					}
				}
				idx := (cz*y+cy)*x + cx
				alive := l.cur[idx] == 1
				l.nxt[idx] = 0
				if alive && neighbors >= 4 && neighbors <= 6 {
					l.nxt[idx] = 1
				}
				if !alive && neighbors >= 5 && neighbors <= 7 {
					l.nxt[idx] = 1
				}
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
}
