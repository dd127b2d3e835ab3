// Package game drives a world turn by turn and reports on it.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/ecoscript/config"
	"github.com/pthm-cable/ecoscript/systems"
	"github.com/pthm-cable/ecoscript/telemetry"
)

// perfWindow is the number of turns averaged by the perf collector.
const perfWindow = 60

// Game holds the complete simulation state.
type Game struct {
	world *systems.World
	rng   *rand.Rand
	seed  int64

	// State
	tick int32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func([]telemetry.SpeciesStats)
}

// NewGame builds the world described by cfg and prepares it for its
// first turn.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	legend, err := BuildLegend(cfg)
	if err != nil {
		return nil, err
	}
	world, err := systems.FromLegend(legend, cfg.World.Map, rng)
	if err != nil {
		return nil, err
	}

	g, err := New(world, opts)
	if err != nil {
		return nil, err
	}
	g.seed = seed
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		g.Unload()
		return nil, err
	}

	slog.Info("world loaded",
		"seed", seed,
		"width", world.Width(),
		"height", world.Height(),
		"organisms", len(cfg.Organisms),
		"randomize", opts.Randomize,
		"output_dir", g.outputManager.Dir(),
	)
	return g, nil
}

// New wraps an existing world. The world's random source drives the game.
func New(world *systems.World, opts Options) (*Game, error) {
	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	g := &Game{
		world:         world,
		rng:           world.Rand(),
		seed:          opts.Seed,
		collector:     telemetry.NewCollector(opts.StatsWindow),
		perfCollector: telemetry.NewPerfCollector(perfWindow),
		outputManager: om,
		logStats:      opts.LogStats,
	}
	world.SetObserver(g.collector)

	if opts.Randomize {
		g.Randomize()
	}
	return g, nil
}

// World returns the simulated world.
func (g *Game) World() *systems.World {
	return g.world
}

// Tick returns the number of completed turns.
func (g *Game) Tick() int32 {
	return g.tick
}

// Seed returns the seed of the game's random source.
func (g *Game) Seed() int64 {
	return g.seed
}

// String renders the current grid.
func (g *Game) String() string {
	return g.world.String()
}

// SetStatsCallback registers a function called with each census window.
func (g *Game) SetStatsCallback(fn func([]telemetry.SpeciesStats)) {
	g.statsCallback = fn
}

// Unload releases output files.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}
