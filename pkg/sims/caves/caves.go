package caves

import (
	"strconv"

	"cavegen/pkg/core"
	"cavegen/pkg/grid"
)

// Caves drives a grid through a schedule of rule sets and growth steps.
type Caves struct {
	name string
	cfg  Config

	grid *grid.Grid
	pos  cursor
	gen  int

	display []uint8
	dirty   bool
}

// New returns a cave sim with the default configuration.
func New() *Caves {
	return NewWithConfig("caves", DefaultConfig())
}

// NewWithConfig returns a sim registered under name using cfg. Call Reset
// before stepping to seed the field.
func NewWithConfig(name string, cfg Config) *Caves {
	c := &Caves{name: name, cfg: cfg}
	c.grid = grid.New(cfg.Width, cfg.Height)
	c.dirty = true
	return c
}

// Name returns the simulation identifier.
func (c *Caves) Name() string { return c.name }

// Size returns the current field dimensions. It changes after growth.
func (c *Caves) Size() core.Size {
	return core.Size{W: c.grid.Width(), H: c.grid.Height()}
}

// Grid exposes the live field.
func (c *Caves) Grid() *grid.Grid { return c.grid }

// Generation returns the number of ticks since the last Reset.
func (c *Caves) Generation() int { return c.gen }

// Finished reports whether a non-looping schedule has run out of stages.
func (c *Caves) Finished() bool {
	_, ok := c.pos.current(c.cfg.Schedule)
	return !ok
}

// Reset rebuilds the field at its configured size and seeds it. A zero seed
// falls back to the configured one.
func (c *Caves) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = c.cfg.Seed
	}
	c.grid = grid.New(c.cfg.Width, c.cfg.Height)
	c.grid.Randomize(core.NewRNG(effective), c.cfg.Density)
	c.pos = cursor{}
	c.gen = 0
	c.dirty = true
}

// Step runs one tick of the current stage. Once a non-looping schedule is
// exhausted the field is held as is.
func (c *Caves) Step() {
	st, ok := c.pos.current(c.cfg.Schedule)
	if !ok {
		return
	}
	for _, rs := range st.Rules {
		c.grid.Step(rs)
	}
	if st.Grow && c.canGrow() {
		c.grid.Grow()
	}
	c.gen++
	c.pos.advance(c.cfg.Schedule, c.cfg.Loop)
	c.dirty = true
}

func (c *Caves) canGrow() bool {
	if c.cfg.MaxCells <= 0 {
		return true
	}
	return c.grid.Width()*c.grid.Height()*4 <= c.cfg.MaxCells
}

// ToggleInvert flips whether Cells reports the field inverted.
func (c *Caves) ToggleInvert() {
	c.cfg.Invert = !c.cfg.Invert
	c.dirty = true
}

// Cells exposes the display buffer, inverted when configured to.
func (c *Caves) Cells() []uint8 {
	if !c.dirty {
		return c.display
	}
	src := c.grid
	if c.cfg.Invert {
		src = src.Invert()
	}
	w, h := src.Width(), src.Height()
	if cap(c.display) < w*h {
		c.display = make([]uint8, w*h)
	}
	c.display = c.display[:w*h]
	for x, row := range src.Rows() {
		for y, cell := range row {
			c.display[y*w+x] = uint8(cell)
		}
	}
	c.dirty = false
	return c.display
}

// Parameters reports the current settings and progress for the HUD.
func (c *Caves) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", c.grid.Width()),
				intParam("h", "Height", c.grid.Height()),
				intParam("generation", "Generation", c.gen),
				intParam("population", "Alive", c.grid.Population()),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				intParam("density", "Density %", c.cfg.Density),
				{Key: "seed", Label: "Seed", Type: core.ParamTypeInt, Value: strconv.FormatInt(c.cfg.Seed, 10)},
			},
		},
		{
			Name: "Schedule",
			Params: []core.Parameter{
				{Key: "schedule", Label: "Schedule", Type: core.ParamTypeString, Value: c.cfg.Schedule.String()},
				{Key: "stage", Label: "Stage", Type: core.ParamTypeString, Value: c.stageLabel()},
				boolParam("loop", "Loop", c.cfg.Loop),
				boolParam("invert", "Invert", c.cfg.Invert),
			},
		},
	}}
}

func (c *Caves) stageLabel() string {
	st, ok := c.pos.current(c.cfg.Schedule)
	if !ok {
		return "done"
	}
	label := strconv.Itoa(c.pos.stage+1) + "/" + strconv.Itoa(len(c.cfg.Schedule))
	if st.Repeat > 0 {
		label += " (" + strconv.Itoa(c.pos.ticks) + "/" + strconv.Itoa(st.Repeat) + ")"
	}
	return label
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func boolParam(key, label string, v bool) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: strconv.FormatBool(v)}
}
