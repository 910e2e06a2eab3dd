package core

import "testing"

func TestNewGridRejectsBadDims(t *testing.T) {
	cases := [][3]int{{0, 4, 4}, {4, 0, 4}, {4, 4, 0}, {-1, 4, 4}, {4, -2, 4}}
	for _, c := range cases {
		if _, err := NewGrid(c[0], c[1], c[2]); err == nil {
			t.Errorf("NewGrid(%d, %d, %d) = nil error, want ErrInvalidDims", c[0], c[1], c[2])
		}
	}
	g, err := NewGrid(3, 4, 5)
	if err != nil {
		t.Fatalf("NewGrid(3, 4, 5): %v", err)
	}
	if len(g.Cells()) != 60 {
		t.Fatalf("backing slice holds %d cells, want 60", len(g.Cells()))
	}
}

func TestIndexOrderIsZMajor(t *testing.T) {
	g, _ := NewGrid(4, 3, 2)
	if got := g.Index(1, 2, 1); got != 1*3*4+2*4+1 {
		t.Fatalf("Index(1, 2, 1) = %d, want %d", got, 1*3*4+2*4+1)
	}
	g.Set(3, 1, 1, CellAlive)
	if g.Cells()[1*3*4+1*4+3] != CellAlive {
		t.Fatal("Set(3, 1, 1) did not land at the z-major slot")
	}
}

func TestLinearizeRoundTrip(t *testing.T) {
	g, _ := NewGrid(3, 3, 3)
	g.Set(0, 0, 0, CellAlive)
	g.Set(2, 1, 0, CellDying)
	g.Set(1, 2, 2, CellAlive)

	flat := g.Linearize()
	back, err := Delinearize(flat, 3, 3, 3)
	if err != nil {
		t.Fatalf("Delinearize: %v", err)
	}
	if !g.Equal(back) {
		t.Fatal("round trip through Linearize/Delinearize changed cell values")
	}

	flat[0] = CellDead
	if g.At(0, 0, 0) != CellAlive {
		t.Fatal("Linearize returned a slice aliasing the grid")
	}
}

func TestDelinearizeLengthMismatch(t *testing.T) {
	if _, err := Delinearize(make([]uint8, 26), 3, 3, 3); err == nil {
		t.Fatal("Delinearize accepted a 26-cell slice for a 27-cell grid")
	}
}

func TestWrapNegativeAndOverflow(t *testing.T) {
	g, _ := NewGrid(5, 4, 3)
	x, y, z := g.Wrap(-1, 4, 7)
	if x != 4 || y != 0 || z != 1 {
		t.Fatalf("Wrap(-1, 4, 7) = (%d, %d, %d), want (4, 0, 1)", x, y, z)
	}
	x, y, z = g.Wrap(-6, -1, -3)
	if x != 4 || y != 3 || z != 0 {
		t.Fatalf("Wrap(-6, -1, -3) = (%d, %d, %d), want (4, 3, 0)", x, y, z)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g, _ := NewGrid(2, 2, 2)
	g.Set(1, 1, 1, CellAlive)
	c := g.Clone()
	c.Set(0, 0, 0, CellAlive)
	if g.At(0, 0, 0) != CellDead {
		t.Fatal("mutating a clone leaked into the original grid")
	}
	if !c.Equal(c.Clone()) {
		t.Fatal("clone of clone differs")
	}
}

func TestValidate(t *testing.T) {
	var nilGrid *Grid
	if nilGrid.Validate() == nil {
		t.Fatal("nil grid validated")
	}
	bad := &Grid{X: 2, Y: 2, Z: 2, data: make([]uint8, 7)}
	if bad.Validate() == nil {
		t.Fatal("grid with short backing slice validated")
	}
	g, _ := NewGrid(2, 2, 2)
	if err := g.Validate(); err != nil {
		t.Fatalf("well-formed grid failed validation: %v", err)
	}
}

func TestAliveCountIgnoresDying(t *testing.T) {
	g, _ := NewGrid(3, 1, 1)
	g.Set(0, 0, 0, CellAlive)
	g.Set(1, 0, 0, CellDying)
	if got := g.AliveCount(); got != 1 {
		t.Fatalf("AliveCount = %d, want 1", got)
	}
	g.Clear()
	if got := g.AliveCount(); got != 0 {
		t.Fatalf("AliveCount after Clear = %d, want 0", got)
	}
}
