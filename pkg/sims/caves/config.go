package caves

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"

	"cavegen/pkg/grid"
)

// Config controls the cave sim's field, seeding and schedule.
type Config struct {
	Width  int   `json:"width"`
	Height int   `json:"height"`
	Seed   int64 `json:"seed"`

	// Density is the percent chance (0..100) that an interior cell starts Alive.
	Density int `json:"density"`

	// Invert shows Dead cells as filled, the way cave maps are usually read.
	Invert bool `json:"invert"`

	Schedule Schedule `json:"schedule"`
	// Loop restarts the schedule after its last stage instead of holding.
	Loop bool `json:"loop"`
	// MaxCells stops Grow once the field would exceed this many cells.
	// Zero disables the cap.
	MaxCells int `json:"max_cells"`
}

// DefaultSchedule is two cave-carving passes followed by smoothing while the
// field is doubled three times.
func DefaultSchedule() Schedule {
	return Schedule{
		{Rules: []grid.RuleSet{grid.Caves, grid.SmoothCaves}, Repeat: 3},
		{Rules: []grid.RuleSet{grid.Smooth}, Grow: true, Repeat: 3},
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:    125,
		Height:   125,
		Seed:     1337,
		Density:  50,
		Invert:   true,
		Schedule: DefaultSchedule(),
		MaxCells: 1 << 20,
	}
}

// With returns a copy of c with flag-style key/value overrides applied.
// Values that do not parse are ignored.
func (c Config) With(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 100 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["invert"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Invert = parsed
		}
	}
	if v, ok := cfg["loop"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Loop = parsed
		}
	}
	if v, ok := cfg["max_cells"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.MaxCells = parsed
		}
	}
	if v, ok := cfg["schedule"]; ok {
		if parsed, err := ParseSchedule(v); err == nil {
			c.Schedule = parsed
		}
	}
	return c
}

// LoadConfig reads a JSON config file on top of base. Fields missing from the
// file keep their base values.
func LoadConfig(filename string, base Config) (Config, error) {
	config := base

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if config.Density < 0 || config.Density > 100 {
		return config, errors.Errorf("[LoadConfig] density %d out of range 0..100 in %s", config.Density, filename)
	}
	return config, nil
}
