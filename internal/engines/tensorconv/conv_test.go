package tensorconv

import (
	"fmt"
	"math"
	"testing"

	"vox-ca/internal/core"
	"vox-ca/internal/engines/cpu"
)

func TestCountsMatchDirectNeighborSum(t *testing.T) {
	dims := [][3]int{{6, 6, 6}, {5, 4, 7}, {3, 3, 3}}
	for _, d := range dims {
		t.Run(fmt.Sprintf("%dx%dx%d", d[0], d[1], d[2]), func(t *testing.T) {
			g, err := core.NewPatternGrid(d[0], d[1], d[2], core.PatternRandom, 21)
			if err != nil {
				t.Fatal(err)
			}
			src := NewTensor(d[0], d[1], d[2])
			for i, v := range g.Cells() {
				if v == core.CellAlive {
					src.Data[i] = 1
				}
			}

			c := newConvolver(d[0], d[1], d[2])
			dst := NewTensor(d[0], d[1], d[2])
			c.Counts(src, dst)

			for z := 0; z < d[2]; z++ {
				for y := 0; y < d[1]; y++ {
					for x := 0; x < d[0]; x++ {
						want := float64(cpu.NeighborCount(g, x, y, z))
						got := dst.At(x, y, z)
						if math.Abs(got-want) > 1e-6 {
							t.Fatalf("count at (%d, %d, %d) = %g, want %g", x, y, z, got, want)
						}
					}
				}
			}
		})
	}
}

func TestCountsOnShortAxesUseWrapMultiplicity(t *testing.T) {
	// On a 2-cell axis the -1 and +1 offsets wrap to the same cell, so one
	// alive neighbor contributes twice. The direct count does the same, which
	// is the contract the accumulated kernel has to match.
	g, _ := core.NewGrid(2, 2, 2)
	g.Set(0, 0, 0, core.CellAlive)

	src := NewTensor(2, 2, 2)
	src.Data[0] = 1
	c := newConvolver(2, 2, 2)
	dst := NewTensor(2, 2, 2)
	c.Counts(src, dst)

	for z := 0; z < 2; z++ {
		for y := 0; y < 2; y++ {
			for x := 0; x < 2; x++ {
				want := float64(cpu.NeighborCount(g, x, y, z))
				got := dst.At(x, y, z)
				if math.Abs(got-want) > 1e-6 {
					t.Fatalf("count at (%d, %d, %d) = %g, want %g", x, y, z, got, want)
				}
			}
		}
	}
}

func TestCountsScratchReuseIsClean(t *testing.T) {
	// Back-to-back convolutions share the frequency scratch; the second
	// result must not see residue from the first.
	c := newConvolver(4, 4, 4)
	a := NewTensor(4, 4, 4)
	a.Set(1, 1, 1, 1)
	b := NewTensor(4, 4, 4)

	out1 := NewTensor(4, 4, 4)
	c.Counts(a, out1)
	out2 := NewTensor(4, 4, 4)
	c.Counts(b, out2)

	for i, v := range out2.Data {
		if math.Abs(v) > 1e-9 {
			t.Fatalf("zero input produced count %g at index %d", v, i)
		}
	}
}
