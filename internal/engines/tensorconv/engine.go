// Package tensorconv implements the tensor-convolution automaton engine. The
// grid becomes a rank-3 float64 tensor, neighbor counts come from one
// circular 3D convolution with the 27-point Moore kernel, and the rule is
// applied as boolean masks combined per triggering count. All intermediate
// tensors are owned by the engine and reused across generations, so device
// memory stays bounded no matter how long the simulation runs.
package tensorconv

import (
	"math"

	"vox-ca/internal/core"
)

// Three-state encoding in tensor space. Decode uses the fixed 0.25/0.75
// thresholds.
const (
	encDead  = 0.0
	encDying = 0.5
	encAlive = 1.0
)

// Engine is the tensor-convolution backend.
type Engine struct {
	rule    core.Rule
	x, y, z int

	conv   *convolver
	state  *Tensor
	ind    *Tensor // alive indicator fed to the convolution
	counts *Tensor

	configured bool
}

// New returns an unconfigured tensor engine.
func New() *Engine { return &Engine{} }

// Name identifies the backend.
func (e *Engine) Name() string { return "tensor" }

// Configure allocates the tensors and kernel spectrum for the grid's shape.
// With unchanged dimensions it only swaps in the new rule.
func (e *Engine) Configure(g *core.Grid, ruleID string) {
	rule := core.LookupRule(ruleID)
	if e.configured && g != nil && g.X == e.x && g.Y == e.y && g.Z == e.z {
		e.rule = rule
		return
	}
	if err := g.Validate(); err != nil {
		core.Logger().Warn("tensor: configure with malformed grid", "err", err)
		e.configured = false
		return
	}
	e.rule = rule
	e.x, e.y, e.z = g.X, g.Y, g.Z
	e.conv = newConvolver(g.X, g.Y, g.Z)
	e.state = NewTensor(g.X, g.Y, g.Z)
	e.ind = NewTensor(g.X, g.Y, g.Z)
	e.counts = NewTensor(g.X, g.Y, g.Z)
	e.configured = true
	core.Logger().Debug("tensor: configured",
		"dims", []int{g.X, g.Y, g.Z}, "rule", rule.ID)
}

// Step encodes the grid, convolves for neighbor counts, applies the rule as
// mask operations and decodes a fresh grid.
func (e *Engine) Step(g *core.Grid) core.StepResult {
	if err := g.Validate(); err != nil {
		core.Logger().Warn("tensor: malformed grid, degrading to minimal grid", "err", err)
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

	if e.rule.Kind == core.KindStatic {
		return core.StepResult{Grid: g.Clone(), Status: core.StatusOK, Backend: e.Name()}
	}

	e.encode(g)
	e.conv.Counts(e.ind, e.counts)

	var out *core.Grid
	switch e.rule.Kind {
	case core.KindSpecial:
		out = e.applySpecial()
	default:
		out = e.applyBirthSurvival()
	}
	return core.StepResult{Grid: out, Status: core.StatusOK, Backend: e.Name()}
}

// Dispose releases the tensors and the kernel spectrum.
func (e *Engine) Dispose() {
	e.conv = nil
	e.state, e.ind, e.counts = nil, nil, nil
	e.configured = false
	e.x, e.y, e.z = 0, 0, 0
}

// encode fills the state tensor from the grid and the indicator tensor with
// ones at alive cells only; dying cells must never feed the convolution.
func (e *Engine) encode(g *core.Grid) {
	cells := g.Cells()
	for i, c := range cells {
		switch c {
		case core.CellAlive:
			e.state.Data[i] = encAlive
			e.ind.Data[i] = 1
		case core.CellDying:
			e.state.Data[i] = encDying
			e.ind.Data[i] = 0
		default:
			e.state.Data[i] = encDead
			e.ind.Data[i] = 0
		}
	}
}

// applyBirthSurvival builds the alive mask and one count-equality mask per
// triggering value, then ORs the birth and survival contributions into the
// next state. Counts span 0..26 here; no offset applies. The alive threshold
// is the decode threshold (0.75): only fully-alive cells take the survival
// branch, so a dying cell left over from a three-state session is dead to a
// birth/survival rule, matching the reference engine.
func (e *Engine) applyBirthSurvival() *core.Grid {
	n := len(e.state.Data)
	flat := make([]uint8, n)
	for _, k := range e.rule.Birth {
		for i := 0; i < n; i++ {
			if e.state.Data[i] < 0.75 && countEquals(e.counts.Data[i], k) {
				flat[i] = core.CellAlive
			}
		}
	}
	for _, k := range e.rule.Survival {
		for i := 0; i < n; i++ {
			if e.state.Data[i] > 0.75 && countEquals(e.counts.Data[i], k) {
				flat[i] = core.CellAlive
			}
		}
	}
	out, _ := core.Delinearize(flat, e.x, e.y, e.z)
	return out
}

// applySpecial advances the three-state family in tensor space and decodes
// with the fixed thresholds: above 0.75 alive, 0.25..0.75 dying, else dead.
func (e *Engine) applySpecial() *core.Grid {
	n := len(e.state.Data)
	flat := make([]uint8, n)
	for i := 0; i < n; i++ {
		v := e.state.Data[i]
		var next float64
		switch {
		case v > 0.75:
			next = encDying
		case v >= 0.25:
			next = encDead
		default:
			if countEquals(e.counts.Data[i], 2) {
				next = encAlive
			}
		}
		switch {
		case next > 0.75:
			flat[i] = core.CellAlive
		case next >= 0.25:
			flat[i] = core.CellDying
		}
	}
	out, _ := core.Delinearize(flat, e.x, e.y, e.z)
	return out
}

// countEquals compares a floating neighbor count from the FFT path against an
// integer target, absorbing roundoff.
func countEquals(c float64, k int) bool {
	return int(math.Round(c)) == k
}

func init() {
	core.Register("tensor", func(cfg map[string]string) core.Engine {
		return New()
	})
}
