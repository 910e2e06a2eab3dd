package app

import "flag"

// Config represents the command-line parameters for the viewer.
type Config struct {
	Backend string
	Rule    string
	Pattern string
	Size    int
	Scale   int
	TPS     int
	Seed    int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Backend: "cpu",
		Rule:    "conway3d",
		Pattern: "default",
		Size:    24,
		Scale:   6,
		TPS:     12,
		Seed:    42,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Backend, "backend", c.Backend, "compute backend to prefer (cpu, texture, compute, tensor)")
	fs.StringVar(&c.Rule, "rule", c.Rule, "automaton rule id")
	fs.StringVar(&c.Pattern, "pattern", c.Pattern, "initial pattern (checkerboard, cross, random, sphere, default)")
	fs.IntVar(&c.Size, "size", c.Size, "grid edge length (grid is size^3)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "generations per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for random-bearing patterns")
}
