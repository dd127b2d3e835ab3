package components

import "slices"

// Energy is an organism's reserve. Value stays within [0, Max] when
// written through Set.
type Energy struct {
	Value int
	Base  int
	Max   int
}

// Set stores v clamped to [0, Max].
func (e *Energy) Set(v int) {
	e.Value = max(0, min(v, e.Max))
}

// Add adjusts the reserve by delta, clamped like Set.
func (e *Energy) Add(delta int) {
	e.Set(e.Value + delta)
}

// Full reports whether the reserve has reached Max.
func (e *Energy) Full() bool {
	return e.Value >= e.Max
}

// Stats holds the per-organism rates read by behavior traits.
type Stats struct {
	GrowthRate   int
	Metabolism   int
	MovementCost int
	SenseRadius  int
	Diet         []string
}

// Eats reports whether species is part of the diet.
func (s *Stats) Eats(species string) bool {
	return slices.Contains(s.Diet, species)
}
