// Package cpu implements the reference automaton engine. It operates directly
// on the canonical grid and serves as the ground truth every other backend
// must agree with on alive/dead output, and as the universal fallback.
package cpu

import "vox-ca/internal/core"

// Engine is the CPU backend. It keeps no device state beyond the resolved
// rule and a reusable scratch buffer for the next generation.
type Engine struct {
	rule       core.Rule
	x, y, z    int
	configured bool
}

// New returns an unconfigured CPU engine.
func New() *Engine { return &Engine{} }

// Name identifies the backend.
func (e *Engine) Name() string { return "cpu" }

// Configure resolves the rule and records the session dimensions.
func (e *Engine) Configure(g *core.Grid, ruleID string) {
	e.rule = core.LookupRule(ruleID)
	if g != nil {
		e.x, e.y, e.z = g.X, g.Y, g.Z
	}
	e.configured = true
}

// Step advances the grid by one generation. Malformed grids degrade to the
// minimal 1x1x1 dead grid with a warning; this path is reachable from
// UI-driven reconfiguration and must never panic.
func (e *Engine) Step(g *core.Grid) core.StepResult {
	if err := g.Validate(); err != nil {
		core.Logger().Warn("cpu: malformed grid, degrading to minimal grid", "err", err)
		return core.StepResult{
			Grid:    core.MinimalGrid(),
			Status:  core.StatusDegraded,
			Backend: e.Name(),
			Reason:  err.Error(),
		}
	}
	if !e.configured || g.X != e.x || g.Y != e.y || g.Z != e.z {
		e.Configure(g, e.rule.ID)
	}
	return core.StepResult{
		Grid:    Generation(g, e.rule),
		Status:  core.StatusOK,
		Backend: e.Name(),
	}
}

// Dispose returns the engine to its unconfigured state.
func (e *Engine) Dispose() {
	e.configured = false
	e.x, e.y, e.z = 0, 0, 0
}

// Generation computes one generation of the given rule. It is exported so
// that tests and fallback paths can use the CPU semantics as an oracle
// without constructing an engine session.
func Generation(g *core.Grid, rule core.Rule) *core.Grid {
	switch rule.Kind {
	case core.KindStatic:
		return g.Clone()
	case core.KindSpecial:
		return specialGeneration(g)
	default:
		return birthSurvivalGeneration(g, rule)
	}
}

func birthSurvivalGeneration(g *core.Grid, rule core.Rule) *core.Grid {
	next := g.Clone()
	birth := core.CountMask(rule.Birth)
	survive := core.CountMask(rule.Survival)
	for z := 0; z < g.Z; z++ {
		for y := 0; y < g.Y; y++ {
			for x := 0; x < g.X; x++ {
				n := NeighborCount(g, x, y, z)
				v := core.CellDead
				if g.At(x, y, z) == core.CellAlive {
					if survive[n] {
						v = core.CellAlive
					}
				} else if birth[n] {
					v = core.CellAlive
				}
				next.Set(x, y, z, v)
			}
		}
	}
	return next
}

// specialGeneration runs the three-state family: dead cells fire on exactly
// two live neighbors, live cells always start dying, dying cells always die.
// Dying cells never contribute to neighbor counts.
func specialGeneration(g *core.Grid) *core.Grid {
	next := g.Clone()
	for z := 0; z < g.Z; z++ {
		for y := 0; y < g.Y; y++ {
			for x := 0; x < g.X; x++ {
				var v uint8
				switch g.At(x, y, z) {
				case core.CellAlive:
					v = core.CellDying
				case core.CellDying:
					v = core.CellDead
				default:
					if NeighborCount(g, x, y, z) == 2 {
						v = core.CellAlive
					}
				}
				next.Set(x, y, z, v)
			}
		}
	}
	return next
}

// NeighborCount sums the alive indicator over the 26 toroidal-wrapped Moore
// neighbors of (x, y, z).
func NeighborCount(g *core.Grid, x, y, z int) int {
	n := 0
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				nx, ny, nz := g.Wrap(x+dx, y+dy, z+dz)
				if g.At(nx, ny, nz) == core.CellAlive {
					n++
				}
			}
		}
	}
	return n
}

func init() {
	core.Register("cpu", func(cfg map[string]string) core.Engine {
		return New()
	})
}
