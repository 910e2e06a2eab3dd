package core

// Status classifies the health of a step result.
type Status int

const (
	// StatusOK means the configured backend computed the generation itself.
	StatusOK Status = iota
	// StatusDegraded means a fallback path produced the generation.
	StatusDegraded
	// StatusFailed means no grid could be produced by this engine.
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusDegraded:
		return "degraded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StepResult carries one generation's outcome. Grid is a fresh snapshot the
// caller may retain or mutate freely; Backend names the backend that actually
// computed it, which differs from the configured one when Status is degraded.
type StepResult struct {
	Grid    *Grid
	Status  Status
	Backend string
	Reason  string
}

// Engine is the contract every compute backend implements. Each engine owns
// its device resources exclusively and double-buffers internally; Step always
// returns a materialized snapshot of the next generation.
type Engine interface {
	Name() string

	// Configure sizes device resources for the grid's dimensions, uploads
	// the initial state and selects the kernel for the rule's shape. It is
	// an idempotent parameter refresh when dimensions and rule shape are
	// unchanged.
	Configure(g *Grid, ruleID string)

	// Step advances the automaton by one generation. A grid whose
	// dimensions differ from the configured session triggers a transparent
	// reconfigure using the given grid as the new initial state.
	Step(g *Grid) StepResult

	// Dispose releases all device resources and returns the engine to its
	// unconfigured state.
	Dispose()
}

// Prober is implemented by engines whose backing device or API may be absent
// on the current platform.
type Prober interface {
	Available() bool
}

// Factory constructs an Engine using an optional configuration map.
type Factory func(cfg map[string]string) Engine

var engines = map[string]Factory{}

// Register adds an engine factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Engines exposes the registry of available engine factories.
func Engines() map[string]Factory {
	return engines
}
