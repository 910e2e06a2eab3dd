// Package compute implements the compute-buffer automaton engine on WebGPU.
// The grid is a flat u32 storage buffer; one work-item per cell recomputes
// its toroidal neighbor count and writes the next state to the paired output
// buffer. The two storage buffers ping-pong each generation and results stage
// back to the host through a mapped readback buffer.
//
// When the platform has no WebGPU support, or the device fails mid-session,
// the engine computes the generation on a texture engine instead and reports
// the step as degraded. Repeated failures downgrade the session permanently.
package compute

import (
	"encoding/binary"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"vox-ca/internal/core"
	"vox-ca/internal/engines/texture"
)

const workgroupDim = 4

// paramWords is the size of the params block in u32s: dims + pad + two
// 8-slot presence arrays.
const paramWords = 4 + 8 + 8

// Engine is the WebGPU compute-buffer backend.
type Engine struct {
	rule    core.Rule
	x, y, z int

	dev      *device
	shader   *wgpu.ShaderModule
	pipeline *wgpu.ComputePipeline
	layout   *wgpu.BindGroupLayout
	bufA     *wgpu.Buffer // storage ping-pong pair
	bufB     *wgpu.Buffer
	params   *wgpu.Buffer
	staging  *wgpu.Buffer
	frontIsA bool

	fallback   *texture.Engine
	failStreak int
	downgraded bool
	configured bool
}

// New returns an unconfigured compute engine.
func New() *Engine { return &Engine{} }

// Name identifies the backend.
func (e *Engine) Name() string { return "compute" }

// Available reports the cached platform capability probe.
func (e *Engine) Available() bool { return Available() }

// Configure builds the device session for the grid's dimensions and the
// rule's shape. With identical dimensions and shape it only rewrites the
// params buffer.
func (e *Engine) Configure(g *core.Grid, ruleID string) {
	rule := core.LookupRule(ruleID)
	if !Available() || e.downgraded {
		e.rule = rule
		if g != nil {
			e.x, e.y, e.z = g.X, g.Y, g.Z
		}
		return
	}
	if e.configured && g != nil && g.X == e.x && g.Y == e.y && g.Z == e.z && rule.Kind == e.rule.Kind {
		e.rule = rule
		e.writeParams()
		return
	}
	if err := g.Validate(); err != nil {
		core.Logger().Warn("compute: configure with malformed grid", "err", err)
		return
	}
	if err := e.rebuild(g, rule); err != nil {
		core.Logger().Warn("compute: session rebuild failed", "err", err)
		e.teardown()
		e.failStreak++
	}
}

// Step advances the grid by one generation on the device, falling back to the
// texture engine for this call when the device path fails.
func (e *Engine) Step(g *core.Grid) core.StepResult {
	if err := g.Validate(); err != nil {
		core.Logger().Warn("compute: malformed grid, degrading to minimal grid", "err", err)
		return core.StepResult{
			Grid:    core.MinimalGrid(),
			Status:  core.StatusDegraded,
			Backend: e.Name(),
			Reason:  err.Error(),
		}
	}
	if !Available() || e.downgraded {
		return e.fallbackStep(g, "webgpu unavailable")
	}
	if !e.configured || g.X != e.x || g.Y != e.y || g.Z != e.z {
		if err := e.rebuild(g, core.LookupRule(e.rule.ID)); err != nil {
			return e.deviceFailure(g, fmt.Errorf("reconfigure: %w", err))
		}
	}

	out, err := e.dispatch(g)
	if err != nil {
		return e.deviceFailure(g, err)
	}
	e.failStreak = 0
	return core.StepResult{Grid: out, Status: core.StatusOK, Backend: e.Name()}
}

// Dispose releases every device resource and the session state.
func (e *Engine) Dispose() {
	e.teardown()
	if e.fallback != nil {
		e.fallback.Dispose()
		e.fallback = nil
	}
	e.downgraded = false
	e.failStreak = 0
	e.x, e.y, e.z = 0, 0, 0
}

// rebuild tears down and recreates the whole device session: dimensions or
// rule shape changed, or this is the first configure.
func (e *Engine) rebuild(g *core.Grid, rule core.Rule) error {
	e.teardown()
	e.rule = rule
	e.x, e.y, e.z = g.X, g.Y, g.Z

	dev, err := newDevice()
	if err != nil {
		return err
	}
	e.dev = dev

	shader, err := dev.handle.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "ca-step",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: stepShaderWGSL},
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}
	e.shader = shader

	pipeline, err := dev.handle.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label: "ca-step-" + rule.Kind.String(),
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     shader,
			EntryPoint: entryPoint(rule.Kind),
		},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	e.pipeline = pipeline
	e.layout = pipeline.GetBindGroupLayout(0)

	cellBytes := uint64(g.X*g.Y*g.Z) * 4
	e.bufA, err = dev.handle.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "ca-state-a",
		Contents: cellWords(g),
		Usage:    wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create state buffer: %w", err)
	}
	e.bufB, err = dev.handle.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ca-state-b",
		Size:  cellBytes,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create state buffer: %w", err)
	}
	e.staging, err = dev.handle.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ca-readback",
		Size:  cellBytes,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create readback buffer: %w", err)
	}
	e.params, err = dev.handle.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ca-params",
		Size:  paramWords * 4,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create params buffer: %w", err)
	}
	e.writeParams()
	e.frontIsA = true
	e.configured = true
	core.Logger().Debug("compute: configured",
		"dims", []int{g.X, g.Y, g.Z}, "rule", rule.ID, "cell_bytes", cellBytes)
	return nil
}

// dispatch uploads the grid, runs one generation, swaps the ping-pong pair
// and reads the result back through the staging buffer.
func (e *Engine) dispatch(g *core.Grid) (*core.Grid, error) {
	front, back := e.bufA, e.bufB
	if !e.frontIsA {
		front, back = e.bufB, e.bufA
	}
	e.dev.queue.WriteBuffer(front, 0, cellWords(g))

	cellBytes := uint64(e.x*e.y*e.z) * 4
	bindGroup, err := e.dev.handle.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "ca-step-bind",
		Layout: e.layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: front, Size: cellBytes},
			{Binding: 1, Buffer: back, Size: cellBytes},
			{Binding: 2, Buffer: e.params, Size: paramWords * 4},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	defer bindGroup.Release()

	encoder, err := e.dev.handle.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(e.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(groups(e.x), groups(e.y), groups(e.z))
	pass.End()
	pass.Release()
	encoder.CopyBufferToBuffer(back, 0, e.staging, 0, cellBytes)
	commands, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("finish command encoder: %w", err)
	}
	e.dev.queue.Submit(commands)
	commands.Release()

	done := make(chan error, 1)
	err = e.staging.MapAsync(wgpu.MapModeRead, 0, cellBytes, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			done <- fmt.Errorf("map readback buffer: %v", status)
			return
		}
		done <- nil
	})
	if err != nil {
		return nil, fmt.Errorf("map readback buffer: %w", err)
	}
	e.dev.handle.Poll(true, nil)
	if err := <-done; err != nil {
		return nil, err
	}
	mapped := e.staging.GetMappedRange(0, uint(cellBytes))
	flat := make([]uint8, e.x*e.y*e.z)
	for i := range flat {
		flat[i] = uint8(binary.LittleEndian.Uint32(mapped[i*4:]))
	}
	e.staging.Unmap()

	e.frontIsA = !e.frontIsA
	out, err := core.Delinearize(flat, e.x, e.y, e.z)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// deviceFailure routes one generation through the fallback and applies the
// bounded retry policy: after three consecutive device failures the session
// downgrades for good instead of retrying forever.
func (e *Engine) deviceFailure(g *core.Grid, err error) core.StepResult {
	e.failStreak++
	core.Logger().Warn("compute: device failure, using texture fallback",
		"err", err, "streak", e.failStreak)
	if e.failStreak >= 3 && !e.downgraded {
		e.downgraded = true
		e.teardown()
		core.Logger().Warn("compute: persistent device failures, session downgraded to texture")
	}
	return e.fallbackStep(g, err.Error())
}

// fallbackStep computes the generation on the texture engine, preserving the
// configured rule. The result reports the backend that actually produced it.
func (e *Engine) fallbackStep(g *core.Grid, reason string) core.StepResult {
	if e.fallback == nil {
		e.fallback = texture.New()
	}
	e.fallback.Configure(g, e.rule.ID)
	res := e.fallback.Step(g)
	if res.Status == core.StatusOK {
		res.Status = core.StatusDegraded
	}
	res.Reason = reason
	return res
}

func (e *Engine) teardown() {
	for _, b := range []*wgpu.Buffer{e.bufA, e.bufB, e.params, e.staging} {
		if b != nil {
			b.Release()
		}
	}
	e.bufA, e.bufB, e.params, e.staging = nil, nil, nil, nil
	if e.layout != nil {
		e.layout.Release()
		e.layout = nil
	}
	if e.pipeline != nil {
		e.pipeline.Release()
		e.pipeline = nil
	}
	if e.shader != nil {
		e.shader.Release()
		e.shader = nil
	}
	if e.dev != nil {
		e.dev.release()
		e.dev = nil
	}
	e.configured = false
}

// writeParams uploads dims and the birth/survival presence arrays indexed by
// count-3 over the 3..10 range.
func (e *Engine) writeParams() {
	if e.params == nil {
		return
	}
	words := make([]uint32, paramWords)
	words[0], words[1], words[2] = uint32(e.x), uint32(e.y), uint32(e.z)
	for slot := 0; slot < 8; slot++ {
		if e.rule.Births(slot + 3) {
			words[4+slot] = 1
		}
		if e.rule.Survives(slot + 3) {
			words[12+slot] = 1
		}
	}
	e.dev.queue.WriteBuffer(e.params, 0, u32Bytes(words))
}

// groups returns the workgroup count covering n cells at workgroupDim per
// group.
func groups(n int) uint32 {
	return uint32((n + workgroupDim - 1) / workgroupDim)
}

// cellWords widens the grid's cells to the u32 buffer layout the kernel
// expects.
func cellWords(g *core.Grid) []byte {
	cells := g.Cells()
	out := make([]byte, len(cells)*4)
	for i, c := range cells {
		binary.LittleEndian.PutUint32(out[i*4:], uint32(c))
	}
	return out
}

func u32Bytes(words []uint32) []byte {
	out := make([]byte, len(words)*4)
	for i, w := range words {
		binary.LittleEndian.PutUint32(out[i*4:], w)
	}
	return out
}

func init() {
	core.Register("compute", func(cfg map[string]string) core.Engine {
		return New()
	})
}
