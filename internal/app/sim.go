package app

import (
	"github.com/pkg/errors"

	"cavegen/pkg/core"
	"cavegen/pkg/sims/caves"
)

// BuildSim constructs the simulation selected by cfg. A config file, when
// given, replaces the preset's defaults; -set overrides apply on top.
func BuildSim(cfg *Config) (core.Sim, error) {
	if v, ok := cfg.Set["schedule"]; ok {
		if _, err := caves.ParseSchedule(v); err != nil {
			return nil, errors.Wrap(err, "[BuildSim] schedule override")
		}
	}

	if cfg.File == "" {
		factory, ok := core.Lookup(cfg.Sim)
		if !ok {
			return nil, errors.Errorf("[BuildSim] unknown sim %q (have %v)", cfg.Sim, core.Names())
		}
		return factory(cfg.Set), nil
	}

	base, ok := caves.Presets()[cfg.Sim]
	if !ok {
		return nil, errors.Errorf("[BuildSim] sim %q does not take a config file", cfg.Sim)
	}
	loaded, err := caves.LoadConfig(cfg.File, base())
	if err != nil {
		return nil, err
	}
	return caves.NewWithConfig(cfg.Sim, loaded.With(cfg.Set)), nil
}
