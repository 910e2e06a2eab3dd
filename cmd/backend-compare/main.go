// Command backend-compare runs every registered compute backend against the
// CPU reference engine and reports per-generation agreement on the set of
// alive cells. It is the headless harness used to validate that the four
// step-function implementations are interchangeable.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"vox-ca/internal/core"
	_ "vox-ca/internal/engines/compute"
	"vox-ca/internal/engines/cpu"
	_ "vox-ca/internal/engines/tensorconv"
	_ "vox-ca/internal/engines/texture"
)

func main() {
	size := flag.Int("size", 6, "grid edge length (grid is size^3)")
	pattern := flag.String("pattern", "sphere", "initial pattern")
	ruleID := flag.String("rule", "all", "rule id, or 'all' for the whole catalog")
	gens := flag.Int("gens", 3, "generations to simulate")
	seed := flag.Int64("seed", 1337, "seed for random-bearing patterns")
	verbose := flag.Bool("v", false, "log backend activity to stderr")
	flag.Parse()

	if *verbose {
		core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	var rules []string
	if *ruleID == "all" {
		for _, r := range core.Rules() {
			rules = append(rules, r.ID)
		}
	} else {
		rules = []string{*ruleID}
	}

	backends := make([]string, 0, len(core.Engines()))
	for name := range core.Engines() {
		if name != "cpu" {
			backends = append(backends, name)
		}
	}
	sort.Strings(backends)

	failures := 0
	for _, rule := range rules {
		seedGrid, err := core.NewPatternGrid(*size, *size, *size, *pattern, *seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create grid: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("rule %-14s pattern %-12s %d^3, %d generations\n", rule, *pattern, *size, *gens)
		oracle := oracleRun(seedGrid, rule, *gens)
		for _, name := range backends {
			failures += compareBackend(name, seedGrid, rule, oracle)
		}
		fmt.Println()
	}
	if failures > 0 {
		fmt.Printf("FAIL: %d generation(s) diverged from the CPU reference\n", failures)
		os.Exit(1)
	}
	fmt.Println("All backends agree with the CPU reference.")
}

// oracleRun produces the reference grid for each generation.
func oracleRun(seedGrid *core.Grid, ruleID string, gens int) []*core.Grid {
	rule := core.LookupRule(ruleID)
	out := make([]*core.Grid, gens)
	g := seedGrid
	for i := range out {
		g = cpu.Generation(g, rule)
		out[i] = g
	}
	return out
}

func compareBackend(name string, seedGrid *core.Grid, ruleID string, oracle []*core.Grid) int {
	eng := core.Engines()[name](nil)
	defer eng.Dispose()
	eng.Configure(seedGrid, ruleID)

	failures := 0
	g := seedGrid
	var degraded string
	for i, want := range oracle {
		res := eng.Step(g)
		g = res.Grid
		if res.Status == core.StatusDegraded && degraded == "" {
			degraded = res.Backend
		}
		if d := aliveDiff(g, want); d > 0 {
			fmt.Printf("  %-8s gen %d: %d cell(s) diverge\n", name, i+1, d)
			failures++
		}
	}
	note := ""
	if degraded != "" {
		note = " (degraded via " + degraded + ")"
	}
	if failures == 0 {
		fmt.Printf("  %-8s ok over %d generation(s)%s\n", name, len(oracle), note)
	}
	return failures
}

// aliveDiff counts cells whose alive indicator differs. Dying cells compare
// as not-alive, matching the boolean cross-backend contract.
func aliveDiff(got, want *core.Grid) int {
	if got == nil || got.X != want.X || got.Y != want.Y || got.Z != want.Z {
		return want.X * want.Y * want.Z
	}
	diff := 0
	gc, wc := got.Cells(), want.Cells()
	for i := range wc {
		if (gc[i] == core.CellAlive) != (wc[i] == core.CellAlive) {
			diff++
		}
	}
	return diff
}
