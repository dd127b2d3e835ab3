package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// SpeciesStats is one census row: a species' population and energy at
// the end of a stats window, plus the events seen during it.
type SpeciesStats struct {
	WindowStartTurn int32  `csv:"-"`
	WindowEndTurn   int32  `csv:"turn"`
	Species         string `csv:"species"`

	Count int `csv:"count"`

	// Events during window
	Births          int `csv:"births"`
	DeathsEaten     int `csv:"deaths_eaten"`
	DeathsStarved   int `csv:"deaths_starved"`
	DeathsExhausted int `csv:"deaths_exhausted"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`
}

// Deaths returns the total deaths in the window.
func (s SpeciesStats) Deaths() int {
	return s.DeathsEaten + s.DeathsStarved + s.DeathsExhausted
}

// ComputeEnergyStats returns mean, standard deviation and empirical
// 10th/50th/90th percentiles. Returns zeros for an empty sample and a
// zero deviation for a single value.
func ComputeEnergyStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)

	return mean, std, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s SpeciesStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("turn", int(s.WindowEndTurn)),
		slog.String("species", s.Species),
		slog.Int("count", s.Count),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths()),
		slog.Int("deaths_eaten", s.DeathsEaten),
		slog.Int("deaths_starved", s.DeathsStarved),
		slog.Int("deaths_exhausted", s.DeathsExhausted),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p50", s.EnergyP50),
	)
}

// LogStats logs the census row using slog.
func (s SpeciesStats) LogStats() {
	slog.Info("census", "stats", s)
}
