package caves

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"cavegen/pkg/core"
	"cavegen/pkg/grid"
)

func smallConfig() Config {
	cfg := DefaultConfig()
	cfg.Width = 10
	cfg.Height = 8
	return cfg
}

func TestParseSchedule(t *testing.T) {
	s, err := ParseSchedule(" caves + smooth caves *3 ; smooth/grow*3; lines ")
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	want := Schedule{
		{Rules: []grid.RuleSet{grid.Caves, grid.SmoothCaves}, Repeat: 3},
		{Rules: []grid.RuleSet{grid.Smooth}, Grow: true, Repeat: 3},
		{Rules: []grid.RuleSet{grid.Lines}},
	}
	if len(s) != len(want) {
		t.Fatalf("got %d stages, want %d", len(s), len(want))
	}
	for i := range want {
		if !slices.Equal(s[i].Rules, want[i].Rules) || s[i].Grow != want[i].Grow || s[i].Repeat != want[i].Repeat {
			t.Fatalf("stage %d = %+v, want %+v", i, s[i], want[i])
		}
	}
	if got := s.String(); got != "caves+smooth caves*3; smooth/grow*3; lines" {
		t.Fatalf("String() = %q", got)
	}
}

func TestParseScheduleUnknownRuleIsNotAnError(t *testing.T) {
	s, err := ParseSchedule("bogus*2")
	if err != nil {
		t.Fatalf("ParseSchedule: %v", err)
	}
	if s[0].Rules[0] != grid.Unknown {
		t.Fatalf("rule = %v, want Unknown", s[0].Rules[0])
	}
}

func TestParseScheduleErrors(t *testing.T) {
	for _, text := range []string{"", " ; ", "caves*x", "caves*-1", "caves/shrink", "caves++smooth"} {
		if _, err := ParseSchedule(text); err == nil {
			t.Fatalf("ParseSchedule(%q) should fail", text)
		}
	}
}

func TestScheduleJSONForms(t *testing.T) {
	var fromText, fromList Schedule
	if err := json.Unmarshal([]byte(`"caves*2; smooth/grow"`), &fromText); err != nil {
		t.Fatalf("text form: %v", err)
	}
	if err := json.Unmarshal([]byte(`[{"rules":["caves"],"repeat":2},{"rules":["smooth"],"grow":true}]`), &fromList); err != nil {
		t.Fatalf("list form: %v", err)
	}
	if fromText.String() != fromList.String() {
		t.Fatalf("forms disagree: %q vs %q", fromText, fromList)
	}
	if err := json.Unmarshal([]byte(`42`), &fromText); err == nil {
		t.Fatal("a number is not a schedule")
	}
}

func TestDefaultScheduleGrowsThreeTimesThenHolds(t *testing.T) {
	sim := NewWithConfig("caves", smallConfig())
	sim.Reset(0)

	sizes := []core.Size{}
	for i := 0; i < 6; i++ {
		sim.Step()
		sizes = append(sizes, sim.Size())
	}
	want := []core.Size{
		{W: 10, H: 8}, {W: 10, H: 8}, {W: 10, H: 8},
		{W: 20, H: 16}, {W: 40, H: 32}, {W: 80, H: 64},
	}
	if !slices.Equal(sizes, want) {
		t.Fatalf("sizes = %v, want %v", sizes, want)
	}
	if !sim.Finished() {
		t.Fatal("schedule should be finished after six ticks")
	}

	held := sim.Grid().Clone()
	sim.Step()
	if sim.Generation() != 6 || !sim.Grid().Equal(held) {
		t.Fatal("a finished schedule must hold the field")
	}
}

func TestMaxCellsCapsGrowth(t *testing.T) {
	cfg := smallConfig()
	cfg.MaxCells = 10 * 8 * 4
	sim := NewWithConfig("caves", cfg)
	sim.Reset(0)
	for i := 0; i < 6; i++ {
		sim.Step()
	}
	if got := sim.Size(); got != (core.Size{W: 20, H: 16}) {
		t.Fatalf("size = %v, want 20x16", got)
	}
}

func TestLoopRestartsSchedule(t *testing.T) {
	cfg := smallConfig()
	cfg.Loop = true
	cfg.Schedule = Schedule{
		{Rules: []grid.RuleSet{grid.Smooth}, Repeat: 1},
		{Rules: []grid.RuleSet{grid.Caves}, Repeat: 2},
	}
	sim := NewWithConfig("caves", cfg)
	sim.Reset(0)
	var stages []int
	for i := 0; i < 5; i++ {
		stages = append(stages, sim.pos.stage)
		sim.Step()
	}
	if !slices.Equal(stages, []int{0, 1, 1, 0, 1}) {
		t.Fatalf("stages = %v", stages)
	}
	if sim.Finished() {
		t.Fatal("a looping schedule never finishes")
	}
}

func TestResetDeterministic(t *testing.T) {
	sim := NewWithConfig("caves", smallConfig())
	sim.Reset(99)
	first := sim.Grid().Clone()
	sim.Step()
	sim.Reset(99)
	if !sim.Grid().Equal(first) || sim.Generation() != 0 {
		t.Fatal("Reset with the same seed must rebuild the same field")
	}
	sim.Reset(100)
	if sim.Grid().Equal(first) {
		t.Fatal("different seeds should produce different fields")
	}
}

func TestUnknownStageClearsField(t *testing.T) {
	cfg := smallConfig()
	cfg.Schedule, _ = ParseSchedule("typo")
	sim := NewWithConfig("caves", cfg)
	sim.Reset(0)
	sim.Step()
	if sim.Grid().Population() != 0 {
		t.Fatalf("population = %d, want 0", sim.Grid().Population())
	}
}

func TestCellsScreenOrderAndInvert(t *testing.T) {
	cfg := smallConfig()
	cfg.Width, cfg.Height = 3, 2
	cfg.Density = 100
	cfg.Invert = false
	sim := NewWithConfig("caves", cfg)
	sim.Reset(0)

	// Row 0 and column 0 are never seeded; (1,1) and (2,1) are Alive.
	if got := sim.Cells(); !slices.Equal(got, []uint8{0, 0, 0, 0, 1, 1}) {
		t.Fatalf("cells = %v", got)
	}
	sim.ToggleInvert()
	if got := sim.Cells(); !slices.Equal(got, []uint8{1, 1, 1, 1, 0, 0}) {
		t.Fatalf("inverted cells = %v", got)
	}
	if sim.Grid().At(1, 1) != grid.Alive {
		t.Fatal("display inversion must not touch the field")
	}
}

func TestWithOverrides(t *testing.T) {
	cfg := DefaultConfig().With(map[string]string{
		"w":         "64",
		"h":         "-3",
		"density":   "101",
		"seed":      "7",
		"invert":    "false",
		"loop":      "true",
		"max_cells": "4096",
		"schedule":  "lines*2",
	})
	if cfg.Width != 64 || cfg.Height != 125 {
		t.Fatalf("size = %dx%d, want 64x125", cfg.Width, cfg.Height)
	}
	if cfg.Density != 50 {
		t.Fatalf("out of range density should be ignored, got %d", cfg.Density)
	}
	if cfg.Seed != 7 || cfg.Invert || !cfg.Loop || cfg.MaxCells != 4096 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Schedule.String() != "lines*2" {
		t.Fatalf("schedule = %q", cfg.Schedule)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "caves.json")
	body := `{"width": 40, "density": 60, "schedule": "caves*4; smooth/grow*1"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path, DefaultConfig())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Width != 40 || cfg.Height != 125 || cfg.Density != 60 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Schedule.String() != "caves*4; smooth/grow*1" {
		t.Fatalf("schedule = %q", cfg.Schedule)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.json"), DefaultConfig()); err == nil || !strings.Contains(err.Error(), "[LoadConfig]") {
		t.Fatalf("missing file error = %v", err)
	}
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"density": 300}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad, DefaultConfig()); err == nil {
		t.Fatal("density out of range should fail")
	}
}

func TestPresetsRegistered(t *testing.T) {
	for name := range Presets() {
		f, ok := core.Lookup(name)
		if !ok {
			t.Fatalf("preset %q not registered", name)
		}
		sim := f(map[string]string{"w": "12", "h": "9"})
		if sim.Name() != name || sim.Size() != (core.Size{W: 12, H: 9}) {
			t.Fatalf("preset %q built %s at %v", name, sim.Name(), sim.Size())
		}
	}
}

func TestParametersSnapshot(t *testing.T) {
	sim := NewWithConfig("caves", smallConfig())
	sim.Reset(0)
	sim.Step()
	snap := sim.Parameters()
	values := map[string]string{}
	for _, g := range snap.Groups {
		for _, p := range g.Params {
			values[p.Key] = p.Value
		}
	}
	if values["generation"] != "1" || values["w"] != "10" || values["stage"] != "1/2 (1/3)" {
		t.Fatalf("unexpected snapshot values %v", values)
	}
}
