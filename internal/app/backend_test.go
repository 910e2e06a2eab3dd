package app

import (
	"testing"

	"vox-ca/internal/core"
	_ "vox-ca/internal/engines/cpu"
	_ "vox-ca/internal/engines/tensorconv"
	_ "vox-ca/internal/engines/texture"
)

func TestBuildControllerChainsFallbacks(t *testing.T) {
	ctrl, err := BuildController("tensor")
	if err != nil {
		t.Fatal(err)
	}
	defer ctrl.Dispose()
	if ctrl.ActiveBackend() != "tensor" {
		t.Fatalf("active backend %q, want the requested one", ctrl.ActiveBackend())
	}

	g, _ := core.NewPatternGrid(4, 4, 4, core.PatternCheckerboard, 0)
	ctrl.Configure(g, "conway3d")
	res := ctrl.Step(g)
	if res.Status != core.StatusOK {
		t.Fatalf("step status %v", res.Status)
	}
}

func TestBuildControllerRejectsUnknownBackend(t *testing.T) {
	if _, err := BuildController("quantum"); err == nil {
		t.Fatal("unknown backend accepted")
	}
}

func TestNextBackendCycles(t *testing.T) {
	names := Backends()
	if len(names) < 3 {
		t.Fatalf("registry lists %d backends", len(names))
	}
	seen := map[string]bool{}
	current := names[0]
	for range names {
		seen[current] = true
		current = NextBackend(current)
	}
	if len(seen) != len(names) || current != names[0] {
		t.Fatalf("cycle visited %d of %d backends", len(seen), len(names))
	}

	// A name outside the registry restarts the cycle deterministically.
	if NextBackend("quantum") != names[0] {
		t.Fatal("unknown backend did not restart the cycle")
	}
}
