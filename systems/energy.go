package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecoscript/components"
)

// Grow adds the growth rate to e's energy. Always succeeds.
func Grow(w *World, e ecs.Entity, _ components.Vector) bool {
	energy, stats := w.Energy(e), w.Stats(e)
	if energy == nil || stats == nil {
		return false
	}
	energy.Add(stats.GrowthRate)
	return true
}

// Eat consumes the first adjacent entity whose species is in e's diet,
// gaining the larger of the prey's energy and its base energy. The prey
// is killed, so a pending turn of its own sees it dead.
func Eat(w *World, e ecs.Entity, origin components.Vector) bool {
	stats := w.Stats(e)
	if stats == nil {
		return false
	}
	for _, target := range w.View(origin, 1) {
		prey := w.Get(target)
		if prey.IsZero() {
			continue
		}
		id := w.Identity(prey)
		if !stats.Eats(id.Species) {
			continue
		}

		gain := 0
		if pe := w.Energy(prey); pe != nil {
			gain = max(pe.Value, pe.Base)
		}
		species := id.Species
		w.Kill(target)
		w.Energy(e).Add(gain)
		w.observer.OnDeath(species, CauseEaten)
		return true
	}
	return false
}

// Metabolize burns e's metabolism. When the reserve reaches zero the
// entity leaves the grid and Metabolize returns true; it returns false
// while the entity is still alive.
func Metabolize(w *World, e ecs.Entity, origin components.Vector) bool {
	energy, stats := w.Energy(e), w.Stats(e)
	if energy == nil || stats == nil {
		return false
	}
	energy.Add(-stats.Metabolism)
	if energy.Value > 0 {
		return false
	}
	species := w.Identity(e).Species
	w.Remove(origin)
	w.observer.OnDeath(species, CauseStarved)
	return true
}
