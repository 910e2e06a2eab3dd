package core

import "sync"

// downgradeAfter is the number of consecutive failed or degraded steps an
// engine may produce before the controller stops routing to it for the rest
// of the session.
const downgradeAfter = 3

// Controller drives one simulation through an ordered list of engines,
// serializing configure/step/dispose so no two operations overlap. The first
// engine whose capability probe succeeds is the active backend; when it fails
// mid-session the controller falls back per call, and downgrades permanently
// after repeated failures. The last engine in the list is expected to always
// be available.
type Controller struct {
	mu      sync.Mutex
	engines []Engine
	active  int
	ruleID  string
	streak  int
}

// NewController builds a controller over the given engines in preference
// order.
func NewController(engines ...Engine) *Controller {
	c := &Controller{engines: engines, ruleID: DefaultRuleID}
	c.active = c.firstAvailable(0)
	return c
}

func (c *Controller) firstAvailable(from int) int {
	for i := from; i < len(c.engines); i++ {
		p, ok := c.engines[i].(Prober)
		if !ok || p.Available() {
			return i
		}
		Logger().Warn("backend unavailable, falling back",
			"backend", c.engines[i].Name())
	}
	return len(c.engines) - 1
}

// ActiveBackend names the engine the controller currently routes steps to.
func (c *Controller) ActiveBackend() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engines[c.active].Name()
}

// Configure applies the grid and rule to the active engine. Rule changes take
// effect starting with the next Step call.
func (c *Controller) Configure(g *Grid, ruleID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ruleID = ruleID
	c.engines[c.active].Configure(g, ruleID)
}

// Step computes one generation on the active engine. A failed step retries on
// the next engine in preference order for that call only; persistent failure
// downgrades the session.
func (c *Controller) Step(g *Grid) StepResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	for {
		eng := c.engines[c.active]
		res := eng.Step(g)
		switch res.Status {
		case StatusOK:
			c.streak = 0
			return res
		case StatusDegraded:
			c.streak++
			c.maybeDowngrade(eng.Name(), res.Reason)
			return res
		default:
			c.streak++
			if c.active == len(c.engines)-1 {
				return res
			}
			Logger().Warn("backend step failed, retrying on fallback",
				"backend", eng.Name(), "reason", res.Reason)
			if c.maybeDowngrade(eng.Name(), res.Reason) {
				c.engines[c.active].Configure(g, c.ruleID)
				continue
			}
			// One-off failure: compute this generation on the next
			// engine without abandoning the active one.
			next := c.engines[c.firstAvailable(c.active+1)]
			next.Configure(g, c.ruleID)
			res = next.Step(g)
			if res.Status == StatusOK {
				res.Status = StatusDegraded
				res.Reason = "active backend failed for this step"
			}
			return res
		}
	}
}

// maybeDowngrade advances the active engine after too many consecutive bad
// steps. Reports whether a downgrade happened.
func (c *Controller) maybeDowngrade(name, reason string) bool {
	if c.streak < downgradeAfter || c.active >= len(c.engines)-1 {
		return false
	}
	old := c.engines[c.active]
	c.active = c.firstAvailable(c.active + 1)
	c.streak = 0
	old.Dispose()
	Logger().Warn("backend downgraded for the session",
		"from", name, "to", c.engines[c.active].Name(), "reason", reason)
	return true
}

// Dispose releases every engine's resources.
func (c *Controller) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.engines {
		e.Dispose()
	}
}
