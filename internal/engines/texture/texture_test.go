package texture

import (
	"fmt"
	"testing"

	"vox-ca/internal/core"
	"vox-ca/internal/engines/cpu"
)

// stepOracle advances a grid with the CPU reference generation.
func stepOracle(g *core.Grid, ruleID string) *core.Grid {
	return cpu.Generation(g, core.LookupRule(ruleID))
}

func TestAgreesWithReferenceAcrossCatalog(t *testing.T) {
	for _, info := range core.Rules() {
		t.Run(info.ID, func(t *testing.T) {
			seed, err := core.NewPatternGrid(6, 6, 6, core.PatternSphere, 0)
			if err != nil {
				t.Fatal(err)
			}
			e := New()
			e.Configure(seed, info.ID)

			got, want := seed, seed
			for gen := 1; gen <= 3; gen++ {
				res := e.Step(got)
				if res.Status != core.StatusOK {
					t.Fatalf("gen %d status %v", gen, res.Status)
				}
				got = res.Grid
				want = stepOracle(want, info.ID)
				if !got.Equal(want) {
					t.Fatalf("gen %d diverged from the reference engine", gen)
				}
			}
		})
	}
}

func TestAgreesWithReferenceOnRandomGrids(t *testing.T) {
	dims := [][3]int{{4, 4, 4}, {7, 5, 3}, {3, 8, 6}}
	for _, d := range dims {
		t.Run(fmt.Sprintf("%dx%dx%d", d[0], d[1], d[2]), func(t *testing.T) {
			g, err := core.NewPatternGrid(d[0], d[1], d[2], core.PatternRandom, 31)
			if err != nil {
				t.Fatal(err)
			}
			e := New()
			e.Configure(g, "conway3d")

			res := e.Step(g)
			want := stepOracle(g, "conway3d")
			if !res.Grid.Equal(want) {
				t.Fatal("diverged from the reference engine on a non-cubic grid")
			}
		})
	}
}

func TestSpecialEncodingRoundTrips(t *testing.T) {
	g, _ := core.NewGrid(4, 4, 4)
	g.Set(1, 1, 1, core.CellAlive)
	g.Set(2, 1, 1, core.CellDying)

	e := New()
	e.Configure(g, "briansbrain")
	res := e.Step(g)
	want := stepOracle(g, "briansbrain")
	if !res.Grid.Equal(want) {
		t.Fatal("three-state step diverged from the reference engine")
	}
	if res.Grid.At(1, 1, 1) != core.CellDying {
		t.Fatal("alive texel did not decode back as dying")
	}
	if res.Grid.At(2, 1, 1) != core.CellDead {
		t.Fatal("dying texel did not decode back as dead")
	}
}

func TestStepReconfiguresOnDimensionChange(t *testing.T) {
	e := New()
	small, _ := core.NewPatternGrid(4, 4, 4, core.PatternCheckerboard, 0)
	e.Configure(small, "conway3d")
	e.Step(small)

	big, _ := core.NewPatternGrid(6, 5, 4, core.PatternCross, 0)
	res := e.Step(big)
	if res.Status != core.StatusOK {
		t.Fatalf("step after dimension change status %v", res.Status)
	}
	want := stepOracle(big, "conway3d")
	if !res.Grid.Equal(want) {
		t.Fatal("reconfigured step diverged from the reference engine")
	}
}

func TestStepDegradesOnMalformedGrid(t *testing.T) {
	e := New()
	res := e.Step(&core.Grid{X: 2, Y: 2, Z: 0})
	if res.Status != core.StatusDegraded {
		t.Fatalf("status %v for malformed grid, want degraded", res.Status)
	}
	if res.Grid == nil || res.Grid.X*res.Grid.Y*res.Grid.Z != 1 {
		t.Fatal("degraded step did not return the minimal grid")
	}
}

func TestStepPicksUpOutOfBandMutation(t *testing.T) {
	g, _ := core.NewGrid(4, 4, 4)
	e := New()
	e.Configure(g, "conway3d")
	e.Step(g)

	// Mutate the caller's grid between steps; the engine must re-upload
	// rather than continue from its own front target.
	g.Clear()
	g.Set(1, 1, 1, core.CellAlive)
	res := e.Step(g)
	want := stepOracle(g, "conway3d")
	if !res.Grid.Equal(want) {
		t.Fatal("step ignored an out-of-band grid mutation")
	}
}

func TestRuleSwapReusesTargets(t *testing.T) {
	g, _ := core.NewPatternGrid(5, 5, 5, core.PatternRandom, 3)
	e := New()
	e.Configure(g, "conway3d")
	// Same dimensions and rule shape: only the parameters change.
	e.Configure(g, "crystal")

	res := e.Step(g)
	want := stepOracle(g, "crystal")
	if !res.Grid.Equal(want) {
		t.Fatal("rule swap did not take effect")
	}
}
