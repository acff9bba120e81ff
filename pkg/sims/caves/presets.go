package caves

import (
	"cavegen/pkg/core"
	"cavegen/pkg/grid"
)

// LifeConfig runs plain Conway rules forever on an upright display.
func LifeConfig() Config {
	c := DefaultConfig()
	c.Density = 35
	c.Invert = false
	c.Schedule = Schedule{{Rules: []grid.RuleSet{grid.Conway}}}
	return c
}

// LinesConfig settles a cave map and then lets the lines rule thin it out.
func LinesConfig() Config {
	c := DefaultConfig()
	c.Density = 45
	c.Schedule = Schedule{
		{Rules: []grid.RuleSet{grid.SmoothCaves}, Repeat: 4},
		{Rules: []grid.RuleSet{grid.Lines}},
	}
	return c
}

// Presets maps registry names to their base configurations.
func Presets() map[string]func() Config {
	return map[string]func() Config{
		"caves": DefaultConfig,
		"life":  LifeConfig,
		"lines": LinesConfig,
	}
}

func init() {
	for name, base := range Presets() {
		core.Register(name, func(cfg map[string]string) core.Sim {
			return NewWithConfig(name, base().With(cfg))
		})
	}
}
