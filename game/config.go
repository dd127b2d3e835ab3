package game

import "github.com/pthm-cable/ecoscript/config"

// Options holds run settings for game initialization.
type Options struct {
	Seed        int64  // 0 = time-based
	Randomize   bool   // redraw energies before the first turn
	LogStats    bool   // log each census window
	StatsWindow int    // turns per census window
	OutputDir   string // empty = no CSV output
}

// DefaultOptions returns the options described by cfg.
func DefaultOptions(cfg *config.Config) Options {
	return Options{
		Seed:        cfg.Simulation.Seed,
		Randomize:   cfg.Simulation.Randomize,
		LogStats:    cfg.Telemetry.LogStats,
		StatsWindow: cfg.Telemetry.StatsWindow,
	}
}
