package cpu

import (
	"testing"

	"vox-ca/internal/core"
)

func TestNeighborCountWrapsAtCorner(t *testing.T) {
	g, _ := core.NewGrid(5, 5, 5)
	// The corner's wrapped neighborhood includes the opposite corner and the
	// far edges of each axis.
	g.Set(4, 4, 4, core.CellAlive)
	g.Set(1, 0, 0, core.CellAlive)
	g.Set(0, 4, 0, core.CellAlive)
	g.Set(4, 0, 1, core.CellAlive)

	if n := NeighborCount(g, 0, 0, 0); n != 4 {
		t.Fatalf("corner neighbor count = %d, want 4", n)
	}
}

func TestNeighborCountIgnoresDying(t *testing.T) {
	g, _ := core.NewGrid(3, 3, 3)
	g.Set(0, 1, 1, core.CellDying)
	g.Set(2, 1, 1, core.CellAlive)
	if n := NeighborCount(g, 1, 1, 1); n != 1 {
		t.Fatalf("neighbor count = %d, want 1 (dying cells do not count)", n)
	}
}

func TestCheckerboardDiesUnderConway(t *testing.T) {
	// On a 4^3 checkerboard every alive cell has 12 alive neighbors and every
	// dead cell 14; neither count is in B5-7/S4-6, so one generation clears
	// the grid.
	g, _ := core.NewPatternGrid(4, 4, 4, core.PatternCheckerboard, 0)
	next := Generation(g, core.LookupRule("conway3d"))
	if next.AliveCount() != 0 {
		t.Fatalf("%d cells alive after one generation, want 0", next.AliveCount())
	}
}

func TestBirthSurvivalSmallCluster(t *testing.T) {
	// A 2x2x2 block in a large grid: each block cell sees the other 7 block
	// cells as neighbors, and 7 is outside S4-6, so the block dies.
	g, _ := core.NewGrid(8, 8, 8)
	for z := 3; z <= 4; z++ {
		for y := 3; y <= 4; y++ {
			for x := 3; x <= 4; x++ {
				g.Set(x, y, z, core.CellAlive)
			}
		}
	}
	next := Generation(g, core.LookupRule("conway3d"))
	for z := 3; z <= 4; z++ {
		for y := 3; y <= 4; y++ {
			for x := 3; x <= 4; x++ {
				if next.At(x, y, z) != core.CellDead {
					t.Fatalf("block cell (%d, %d, %d) survived with 7 neighbors", x, y, z)
				}
			}
		}
	}
}

func TestSpecialLifecycle(t *testing.T) {
	g, _ := core.NewGrid(5, 5, 5)
	g.Set(1, 2, 2, core.CellAlive)
	g.Set(3, 2, 2, core.CellAlive)
	rule := core.LookupRule("briansbrain")

	// Generation 1: the cell between the pair sees exactly 2 alive neighbors
	// and fires; the pair starts dying.
	next := Generation(g, rule)
	if next.At(2, 2, 2) != core.CellAlive {
		t.Fatal("cell with exactly 2 alive neighbors did not fire")
	}
	if next.At(1, 2, 2) != core.CellDying || next.At(3, 2, 2) != core.CellDying {
		t.Fatal("alive cells did not transition to dying")
	}

	// Generation 2: the dying pair dies and must not have fed neighbor
	// counts.
	after := Generation(next, rule)
	if after.At(1, 2, 2) != core.CellDead || after.At(3, 2, 2) != core.CellDead {
		t.Fatal("dying cells did not die")
	}
	if after.At(2, 2, 2) != core.CellDying {
		t.Fatal("alive cell did not start dying")
	}
}

func TestStaticRuleIsIdentity(t *testing.T) {
	g, _ := core.NewPatternGrid(6, 6, 6, core.PatternRandom, 11)
	g.Set(0, 0, 0, core.CellDying)
	next := Generation(g, core.LookupRule("checkerboard"))
	if !next.Equal(g) {
		t.Fatal("static rule changed the grid")
	}
	next.Set(0, 0, 0, core.CellAlive)
	if g.At(0, 0, 0) != core.CellDying {
		t.Fatal("static rule returned the input grid instead of a copy")
	}
}

func TestStepDegradesOnMalformedGrid(t *testing.T) {
	e := New()
	res := e.Step(nil)
	if res.Status != core.StatusDegraded {
		t.Fatalf("status %v for nil grid, want degraded", res.Status)
	}
	if res.Grid == nil || res.Grid.X != 1 || res.Grid.Y != 1 || res.Grid.Z != 1 {
		t.Fatal("degraded step did not return the minimal grid")
	}
	if res.Reason == "" {
		t.Fatal("degraded step carries no reason")
	}
}

func TestStepReconfiguresOnDimensionChange(t *testing.T) {
	e := New()
	small, _ := core.NewPatternGrid(4, 4, 4, core.PatternCheckerboard, 0)
	e.Configure(small, "conway3d")
	if res := e.Step(small); res.Status != core.StatusOK {
		t.Fatalf("first step status %v", res.Status)
	}

	big, _ := core.NewPatternGrid(6, 5, 4, core.PatternCross, 0)
	res := e.Step(big)
	if res.Status != core.StatusOK {
		t.Fatalf("step after dimension change status %v", res.Status)
	}
	if res.Grid.X != 6 || res.Grid.Y != 5 || res.Grid.Z != 4 {
		t.Fatal("result grid does not match the new dimensions")
	}
}

func TestUnknownRuleFallsBackToDefault(t *testing.T) {
	g, _ := core.NewPatternGrid(5, 5, 5, core.PatternSphere, 0)
	want := Generation(g, core.LookupRule("conway3d"))
	got := Generation(g, core.LookupRule("definitely-not-a-rule"))
	if !got.Equal(want) {
		t.Fatal("unknown rule did not behave as the default rule")
	}
}
