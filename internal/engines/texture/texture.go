// Package texture implements the texture-encoded automaton engine. The 3D
// grid is flattened into a 2D RGBA image of width X and height Y*Z, with the
// Z-slice at depth z occupying the row block [z*Y, z*Y+Y). A per-texel
// fragment kernel reads the front render target with toroidal sampling and
// writes the next generation to the back target; the two targets ping-pong
// every step. The red channel carries a tri-level cell encoding; the other
// channels are fixed.
package texture

import "vox-ca/internal/core"

// Red-channel texel encoding of the cell states.
const (
	texDead  uint8 = 0
	texDying uint8 = 128
	texAlive uint8 = 255
)

const texelStride = 4 // RGBA

// fragmentKernel computes the new red-channel value for the texel at pixel
// (px, py) of the front target.
type fragmentKernel func(px, py int) uint8

// Engine is the texture-encoded backend. It is always available; the software
// rasterization path is the fragment-shader-equivalent kernel run per texel.
type Engine struct {
	rule    core.Rule
	x, y, z int

	// front and back are the two RGBA render targets.
	front, back []uint8
	kernel      fragmentKernel

	configured bool
}

// New returns an unconfigured texture engine.
func New() *Engine { return &Engine{} }

// Name identifies the backend.
func (e *Engine) Name() string { return "texture" }

// Configure allocates both render targets for the grid's dimensions, uploads
// the initial state and selects the kernel variant for the rule's shape.
// Calling it again with identical dimensions and rule shape only refreshes
// the rule parameters.
func (e *Engine) Configure(g *core.Grid, ruleID string) {
	rule := core.LookupRule(ruleID)
	if e.configured && g != nil && g.X == e.x && g.Y == e.y && g.Z == e.z && rule.Kind == e.rule.Kind {
		e.rule = rule
		e.bindKernel()
		return
	}
	if err := g.Validate(); err != nil {
		core.Logger().Warn("texture: configure with malformed grid", "err", err)
		e.configured = false
		return
	}
	e.rule = rule
	e.x, e.y, e.z = g.X, g.Y, g.Z
	size := texelStride * g.X * g.Y * g.Z
	e.front = make([]uint8, size)
	e.back = make([]uint8, size)
	e.upload(g)
	e.bindKernel()
	e.configured = true
	core.Logger().Debug("texture: configured",
		"dims", []int{g.X, g.Y, g.Z}, "rule", rule.ID, "target_bytes", size)
}

// Step uploads the given grid, runs the fragment kernel over every texel of
// the back target, swaps the targets and decodes the new front target into a
// fresh canonical grid.
func (e *Engine) Step(g *core.Grid) core.StepResult {
	if err := g.Validate(); err != nil {
		core.Logger().Warn("texture: malformed grid, degrading to minimal grid", "err", err)
		return core.StepResult{
			Grid:    core.MinimalGrid(),
			Status:  core.StatusDegraded,
			Backend: e.Name(),
			Reason:  err.Error(),
		}
	}
	if !e.configured || g.X != e.x || g.Y != e.y || g.Z != e.z {
		e.Configure(g, e.rule.ID)
	} else {
		// The caller may have mutated the grid out of band.
		e.upload(g)
	}

	w, h := e.x, e.y*e.z
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			base := (py*w + px) * texelStride
			e.back[base] = e.kernel(px, py)
			e.back[base+3] = 255
		}
	}
	e.front, e.back = e.back, e.front

	return core.StepResult{
		Grid:    e.readback(),
		Status:  core.StatusOK,
		Backend: e.Name(),
	}
}

// Dispose releases both render targets.
func (e *Engine) Dispose() {
	e.front, e.back = nil, nil
	e.kernel = nil
	e.configured = false
	e.x, e.y, e.z = 0, 0, 0
}

// bindKernel selects the fragment kernel variant for the configured rule
// shape. The three shapes are structurally different kernels, not data
// branches inside one kernel.
func (e *Engine) bindKernel() {
	switch e.rule.Kind {
	case core.KindStatic:
		e.kernel = e.copyKernel
	case core.KindSpecial:
		e.kernel = e.specialKernel
	default:
		birth := core.CountMask(e.rule.Birth)
		survive := core.CountMask(e.rule.Survival)
		e.kernel = func(px, py int) uint8 {
			n := e.sampleNeighbors(px, py)
			if e.sample(px, py) == texAlive {
				if survive[n] {
					return texAlive
				}
				return texDead
			}
			if birth[n] {
				return texAlive
			}
			return texDead
		}
	}
}

func (e *Engine) copyKernel(px, py int) uint8 { return e.sample(px, py) }

func (e *Engine) specialKernel(px, py int) uint8 {
	switch e.sample(px, py) {
	case texAlive:
		return texDying
	case texDying:
		return texDead
	default:
		if e.sampleNeighbors(px, py) == 2 {
			return texAlive
		}
		return texDead
	}
}

// sample reads the red channel at pixel (px, py) of the front target.
func (e *Engine) sample(px, py int) uint8 {
	return e.front[(py*e.x+px)*texelStride]
}

// sampleNeighbors decodes (px, py) back to grid coordinates and counts alive
// texels over the 26 wrapped neighbors. Wrapping happens per grid axis, not
// in raw image space: y wraps within the slice's row block and z wraps across
// row blocks.
func (e *Engine) sampleNeighbors(px, py int) int {
	x, y, z := px, py%e.y, py/e.y
	n := 0
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				wx := (x + dx + e.x) % e.x
				wy := (y + dy + e.y) % e.y
				wz := (z + dz + e.z) % e.z
				if e.sample(wx, wz*e.y+wy) == texAlive {
					n++
				}
			}
		}
	}
	return n
}

// upload encodes the canonical grid into the front target.
func (e *Engine) upload(g *core.Grid) {
	cells := g.Cells()
	for i, c := range cells {
		base := i * texelStride
		var v uint8
		switch c {
		case core.CellAlive:
			v = texAlive
		case core.CellDying:
			v = texDying
		}
		e.front[base] = v
		e.front[base+1] = 0
		e.front[base+2] = 0
		e.front[base+3] = 255
	}
}

// readback decodes the front target into a fresh canonical grid. The image
// row order coincides with the canonical z-major flat ordering, so the texel
// index is the flat cell index.
func (e *Engine) readback() *core.Grid {
	flat := make([]uint8, e.x*e.y*e.z)
	for i := range flat {
		switch e.front[i*texelStride] {
		case texAlive:
			flat[i] = core.CellAlive
		case texDying:
			flat[i] = core.CellDying
		}
	}
	g, _ := core.Delinearize(flat, e.x, e.y, e.z)
	return g
}

func init() {
	core.Register("texture", func(cfg map[string]string) core.Engine {
		return New()
	})
}
