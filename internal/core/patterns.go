package core

import "math"

// Pattern names accepted by NewPatternGrid. "default" is an alias for the
// checkerboard; any unrecognized name selects the composite seed.
const (
	PatternCheckerboard = "checkerboard"
	PatternCross        = "cross"
	PatternRandom       = "random"
	PatternSphere       = "sphere"
	PatternDefault      = "default"
)

// randomFill is the live-cell probability used by the random pattern and the
// random component of the composite default.
const randomFill = 0.3

// NewPatternGrid builds a seeded grid for the named pattern. The checkerboard,
// cross and sphere patterns are fully deterministic; random-bearing patterns
// are deterministic per seed.
func NewPatternGrid(x, y, z int, pattern string, seed int64) (*Grid, error) {
	g, err := NewGrid(x, y, z)
	if err != nil {
		return nil, err
	}
	switch pattern {
	case PatternCheckerboard, PatternDefault:
		fillCheckerboard(g)
	case PatternCross:
		fillCross(g)
	case PatternRandom:
		fillRandom(g, seed)
	case PatternSphere:
		fillSphere(g)
	default:
		fillComposite(g, seed)
	}
	return g, nil
}

func fillCheckerboard(g *Grid) {
	for z := 0; z < g.Z; z++ {
		for y := 0; y < g.Y; y++ {
			for x := 0; x < g.X; x++ {
				if (x+y+z)%2 == 0 {
					g.Set(x, y, z, CellAlive)
				}
			}
		}
	}
}

// fillCross draws three orthogonal segments through the grid center, with arm
// length min(3, X/4) in each direction.
func fillCross(g *Grid) {
	cx, cy, cz := g.X/2, g.Y/2, g.Z/2
	arm := g.X / 4
	if arm > 3 {
		arm = 3
	}
	g.Set(cx, cy, cz, CellAlive)
	for d := 1; d <= arm; d++ {
		set := func(x, y, z int) {
			x, y, z = g.Wrap(x, y, z)
			g.Set(x, y, z, CellAlive)
		}
		set(cx-d, cy, cz)
		set(cx+d, cy, cz)
		set(cx, cy-d, cz)
		set(cx, cy+d, cz)
		set(cx, cy, cz-d)
		set(cx, cy, cz+d)
	}
}

func fillRandom(g *Grid, seed int64) {
	FillProb(NewRNG(seed).Source(), g.data, randomFill)
}

// fillSphere marks cells whose distance from the grid center lies within 0.8
// of radius min(X,Y,Z)/4, producing a thin spherical shell.
func fillSphere(g *Grid) {
	cx := float64(g.X-1) / 2
	cy := float64(g.Y-1) / 2
	cz := float64(g.Z-1) / 2
	r := float64(min3(g.X, g.Y, g.Z)) / 4
	for z := 0; z < g.Z; z++ {
		for y := 0; y < g.Y; y++ {
			for x := 0; x < g.X; x++ {
				dx := float64(x) - cx
				dy := float64(y) - cy
				dz := float64(z) - cz
				d := math.Sqrt(dx*dx + dy*dy + dz*dz)
				if math.Abs(d-r) <= 0.8 {
					g.Set(x, y, z, CellAlive)
				}
			}
		}
	}
}

// fillComposite seeds the fallback structure: axis arms out to ±2 from center,
// a hollow cube shell of the {-1,0,1}^3 offsets with L1 norm >= 2, and random
// cells at the usual density inside a centered 9x9x9 box.
func fillComposite(g *Grid, seed int64) {
	cx, cy, cz := g.X/2, g.Y/2, g.Z/2
	set := func(x, y, z int) {
		if x < 0 || x >= g.X || y < 0 || y >= g.Y || z < 0 || z >= g.Z {
			return
		}
		g.Set(x, y, z, CellAlive)
	}

	for d := -2; d <= 2; d++ {
		set(cx+d, cy, cz)
		set(cx, cy+d, cz)
		set(cx, cy, cz+d)
	}

	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if abs(dx)+abs(dy)+abs(dz) >= 2 {
					set(cx+dx, cy+dy, cz+dz)
				}
			}
		}
	}

	rng := NewRNG(seed).Source()
	for dz := -4; dz <= 4; dz++ {
		for dy := -4; dy <= 4; dy++ {
			for dx := -4; dx <= 4; dx++ {
				if rng.Float64() < randomFill {
					set(cx+dx, cy+dy, cz+dz)
				}
			}
		}
	}
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
