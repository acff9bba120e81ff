package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the application.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	// Speed is the number of simulation steps per second, paced separately
	// from the frame rate.
	Speed int
	Seed  int64
	Panel int
	File  string
	Set   Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "caves", Scale: 4, TPS: 60, Speed: 10, Seed: 42, Panel: 220, Set: Overrides{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second")
	fs.IntVar(&c.Speed, "speed", c.Speed, "simulation steps per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Panel, "panel", c.Panel, "width of the parameter panel, 0 hides it")
	fs.StringVar(&c.File, "config", c.File, "JSON file with simulation settings")
	fs.Var(c.Set, "set", "simulation override in key=value form (repeatable)")
}

// Overrides collects repeatable key=value flags into a map.
type Overrides map[string]string

func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses a single key=value pair.
func (o Overrides) Set(value string) error {
	k, v, ok := strings.Cut(value, "=")
	if !ok || strings.TrimSpace(k) == "" {
		return fmt.Errorf("override %q is not in key=value form", value)
	}
	o[strings.TrimSpace(k)] = strings.TrimSpace(v)
	return nil
}
