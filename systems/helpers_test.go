package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecoscript/components"
	"github.com/pthm-cable/ecoscript/traits"
)

func newTestWorld(width, height int) *World {
	return NewWorld(width, height, rand.New(rand.NewSource(12345)))
}

// organism returns a generic organism template with wide energy bounds.
func organism(species string, base int, actions ...traits.Trait) *components.Template {
	return &components.Template{
		Name:       species,
		Species:    species,
		Glyph:      rune(species[0]),
		Kind:       components.KindOrganism,
		BaseEnergy: base,
		MaxEnergy:  100,
		Actions:    actions,
	}
}

// place spawns t at pos and returns the new entity.
func place(w *World, t *components.Template, pos components.Vector) ecs.Entity {
	e := w.Spawn(t)
	w.Set(pos, e)
	return e
}

// wallAt fills every listed position with a wall.
func wallAt(w *World, positions ...components.Vector) {
	wall := components.Wall('#')
	for _, p := range positions {
		place(w, wall, p)
	}
}

type event struct {
	species string
	birth   bool
	cause   DeathCause
}

type recordingObserver struct {
	events []event
}

func (o *recordingObserver) OnBirth(species string) {
	o.events = append(o.events, event{species: species, birth: true})
}

func (o *recordingObserver) OnDeath(species string, cause DeathCause) {
	o.events = append(o.events, event{species: species, cause: cause})
}
