package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecoscript/components"
	"github.com/pthm-cable/ecoscript/traits"
)

// Action runs one trait for the entity e standing at pos. It returns true
// when it acted and false when its precondition was not met.
type Action func(w *World, e ecs.Entity, pos components.Vector) bool

func defaultActions() map[traits.Trait]Action {
	return map[traits.Trait]Action{
		traits.Grow:           Grow,
		traits.Eat:            Eat,
		traits.Metabolize:     Metabolize,
		traits.Go:             Go,
		traits.Wander:         Wander,
		traits.AvoidPredators: AvoidPredators,
		traits.Herd:           Herd,
		traits.Hunt:           Hunt,
		traits.Reproduce:      Reproduce,
		traits.Pass:           Pass,
	}
}

// RegisterAction binds a trait to an action, replacing any existing
// binding. Traits outside the built-in set may be registered too.
func (w *World) RegisterAction(t traits.Trait, a Action) {
	w.actions[t] = a
}

// Perform runs a single trait. Traits e does not compose decline.
func (w *World) Perform(t traits.Trait, e ecs.Entity, pos components.Vector) bool {
	b := w.Behavior(e)
	if b == nil || !b.Traits.Has(t) {
		return false
	}
	a, ok := w.actions[t]
	if !ok {
		panic(fmt.Sprintf("systems: no action registered for trait %v", t))
	}
	return a(w, e, pos)
}

// PreAct tries e's kind policy in order and stops at the first trait that
// acts. Returns false when every trait declined or there is no policy.
func (w *World) PreAct(e ecs.Entity, pos components.Vector) bool {
	b := w.Behavior(e)
	if b == nil {
		return false
	}
	return w.firstOf(b.PreAct, e, pos)
}

// Act tries e's configured actions in order, like PreAct.
func (w *World) Act(e ecs.Entity, pos components.Vector) bool {
	b := w.Behavior(e)
	if b == nil {
		return false
	}
	return w.firstOf(b.Act, e, pos)
}

func (w *World) firstOf(chain []traits.Trait, e ecs.Entity, pos components.Vector) bool {
	for _, t := range chain {
		if w.Perform(t, e, pos) {
			return true
		}
	}
	return false
}

// Go steps one cell along e's heading. When that cell is blocked it picks a
// random open neighbor and turns toward it. Costs the movement cost.
func Go(w *World, e ecs.Entity, origin components.Vector) bool {
	heading := w.Heading(e)
	if heading == nil {
		return false
	}
	dest := origin.Plus(heading.Dir)
	if !w.IsWalkable(dest) {
		var ok bool
		dest, ok = sample(w, w.ViewWalkable(origin, 1))
		if !ok {
			return false
		}
		heading.Dir = dest.Minus(origin)
	}

	w.Move(origin, dest)
	w.Energy(e).Add(-w.Stats(e).MovementCost)
	return true
}

// Wander turns toward a random open neighbor and goes there.
func Wander(w *World, e ecs.Entity, origin components.Vector) bool {
	dest, ok := sample(w, w.ViewWalkable(origin, 1))
	if !ok {
		return false
	}
	heading := w.Heading(e)
	if heading == nil {
		return false
	}
	heading.Dir = dest.Minus(origin)
	return Go(w, e, origin)
}

// AvoidPredators flees the closest predator within sense radius that can
// reach e in at most sense-radius steps. It heads straight away when that
// cell is open, otherwise toward the open neighbor farthest from the
// predator, then goes.
func AvoidPredators(w *World, e ecs.Entity, origin components.Vector) bool {
	id, stats := w.Identity(e), w.Stats(e)
	if id == nil || stats == nil {
		return false
	}

	var predators []components.Vector
	for _, target := range w.View(origin, stats.SenseRadius) {
		other := w.Stats(w.Get(target))
		if other == nil || !other.Eats(id.Species) {
			continue
		}
		if n := len(w.FindPath(origin, target)); n > 0 && n <= stats.SenseRadius {
			predators = append(predators, target)
		}
	}

	closest, ok := components.ClosestTo(origin, predators)
	if !ok {
		return false
	}

	heading := w.Heading(e)
	dir := origin.Minus(closest).Dir()
	if w.IsWalkable(origin.Plus(dir)) {
		heading.Dir = dir
	} else if best, ok := components.FurthestFrom(closest, w.ViewWalkable(origin, 1)); ok {
		heading.Dir = best.Minus(origin).Dir()
	}
	return Go(w, e, origin)
}

// Herd moves e one step along the path toward the closest member of its
// own species within sense radius.
func Herd(w *World, e ecs.Entity, origin components.Vector) bool {
	id, stats := w.Identity(e), w.Stats(e)
	if id == nil || stats == nil {
		return false
	}
	return pursue(w, e, origin, func(other ecs.Entity) bool {
		oid := w.Identity(other)
		return oid != nil && oid.Species == id.Species
	})
}

// Hunt moves e one step along the path toward the closest entity in its
// diet within sense radius.
func Hunt(w *World, e ecs.Entity, origin components.Vector) bool {
	stats := w.Stats(e)
	if stats == nil {
		return false
	}
	return pursue(w, e, origin, func(other ecs.Entity) bool {
		oid := w.Identity(other)
		return oid != nil && stats.Eats(oid.Species)
	})
}

// pursue heads along the first step of the path to the closest visible
// match. Declines when the match is adjacent or unreachable.
func pursue(w *World, e ecs.Entity, origin components.Vector, match func(ecs.Entity) bool) bool {
	var targets []components.Vector
	for _, target := range w.View(origin, w.Stats(e).SenseRadius) {
		if other := w.Get(target); !other.IsZero() && match(other) {
			targets = append(targets, target)
		}
	}

	closest, ok := components.ClosestTo(origin, targets)
	if !ok {
		return false
	}
	path := w.FindPath(origin, closest)
	if len(path) <= 1 {
		return false
	}
	w.Heading(e).Dir = path[0].Minus(origin)
	return Go(w, e, origin)
}
