package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecoscript/components"
)

// Reproduce places a fresh organism from e's template on a random open
// neighbor once e is at full energy, and resets e to its base energy.
func Reproduce(w *World, e ecs.Entity, origin components.Vector) bool {
	energy := w.Energy(e)
	if energy == nil || !energy.Full() {
		return false
	}
	t := w.Template(e)
	if t == nil {
		return false
	}

	target, ok := sample(w, w.ViewWalkable(origin, 1))
	if !ok {
		return false
	}

	// Reset before spawning: component pointers do not survive storage growth.
	energy.Set(energy.Base)
	w.Set(target, w.Spawn(t))
	w.observer.OnBirth(t.Species)
	return true
}

// Pass declines unconditionally.
func Pass(*World, ecs.Entity, components.Vector) bool {
	return false
}

// sample picks a uniformly random element.
func sample(w *World, options []components.Vector) (components.Vector, bool) {
	if len(options) == 0 {
		return components.Vector{}, false
	}
	return options[w.rng.Intn(len(options))], true
}
