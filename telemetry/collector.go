package telemetry

import (
	"sort"

	"github.com/pthm-cable/ecoscript/systems"
)

// Collector accumulates lifecycle events within turn windows and produces
// per-species census rows. It implements systems.Observer.
type Collector struct {
	windowTurns     int32
	windowStartTurn int32

	births map[string]int
	deaths map[string][systems.NumDeathCauses]int
}

// NewCollector creates a collector that flushes every windowTurns turns.
func NewCollector(windowTurns int) *Collector {
	if windowTurns < 1 {
		windowTurns = 1
	}
	return &Collector{
		windowTurns: int32(windowTurns),
		births:      make(map[string]int),
		deaths:      make(map[string][systems.NumDeathCauses]int),
	}
}

// OnBirth records a birth event.
func (c *Collector) OnBirth(species string) {
	c.births[species]++
}

// OnDeath records a death event.
func (c *Collector) OnDeath(species string, cause systems.DeathCause) {
	if cause >= systems.NumDeathCauses {
		return
	}
	d := c.deaths[species]
	d[cause]++
	c.deaths[species] = d
}

// ShouldFlush reports whether the window ending at turn is complete.
func (c *Collector) ShouldFlush(turn int32) bool {
	return turn-c.windowStartTurn >= c.windowTurns
}

// Flush builds one row per species seen in the census or in the window's
// events, sorted by species, and starts a new window.
func (c *Collector) Flush(turn int32, census map[string][]float64) []SpeciesStats {
	seen := make(map[string]struct{}, len(census))
	for s := range census {
		seen[s] = struct{}{}
	}
	for s := range c.births {
		seen[s] = struct{}{}
	}
	for s := range c.deaths {
		seen[s] = struct{}{}
	}
	species := make([]string, 0, len(seen))
	for s := range seen {
		species = append(species, s)
	}
	sort.Strings(species)

	rows := make([]SpeciesStats, 0, len(species))
	for _, s := range species {
		energies := census[s]
		mean, std, p10, p50, p90 := ComputeEnergyStats(energies)
		d := c.deaths[s]
		rows = append(rows, SpeciesStats{
			WindowStartTurn: c.windowStartTurn,
			WindowEndTurn:   turn,
			Species:         s,
			Count:           len(energies),
			Births:          c.births[s],
			DeathsEaten:     d[systems.CauseEaten],
			DeathsStarved:   d[systems.CauseStarved],
			DeathsExhausted: d[systems.CauseExhausted],
			EnergyMean:      mean,
			EnergyStd:       std,
			EnergyP10:       p10,
			EnergyP50:       p50,
			EnergyP90:       p90,
		})
	}

	c.windowStartTurn = turn
	clear(c.births)
	clear(c.deaths)
	return rows
}
