package app

import (
	"errors"
	"sort"

	"vox-ca/internal/core"
)

// BuildController assembles the fallback chain for the requested backend: the
// requested engine first, then the texture engine (always available on the
// GPU-adjacent path), then the CPU reference as the last resort.
func BuildController(backend string) (*core.Controller, error) {
	factories := core.Engines()
	requested, ok := factories[backend]
	if !ok {
		return nil, errors.New("unknown backend " + backend)
	}
	chain := []core.Engine{requested(nil)}
	if f, ok := factories["texture"]; ok && backend != "texture" {
		chain = append(chain, f(nil))
	}
	if f, ok := factories["cpu"]; ok && backend != "cpu" {
		chain = append(chain, f(nil))
	}
	return core.NewController(chain...), nil
}

// Backends lists the registered backend names in a stable order.
func Backends() []string {
	names := make([]string, 0, len(core.Engines()))
	for name := range core.Engines() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NextBackend returns the name following current in the cycling order.
func NextBackend(current string) string {
	names := Backends()
	if len(names) == 0 {
		return current
	}
	for i, name := range names {
		if name == current {
			return names[(i+1)%len(names)]
		}
	}
	return names[0]
}
