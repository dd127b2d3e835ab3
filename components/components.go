// Package components defines ECS components for the simulation.
package components

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/ecoscript/traits"
)

// Kind distinguishes inert obstacles from acting organisms. It is fixed
// when the entity is created and never inspected at runtime otherwise.
type Kind uint8

const (
	KindWall     Kind = iota // Inert obstacle, no energy
	KindPlant                // Reproduce, else Grow
	KindAnimal               // AvoidPredators, else Reproduce, else Metabolize
	KindOrganism             // No preAct policy, only its configured actions
)

var kindNames = [...]string{"wall", "plant", "animal", "organism"}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Active reports whether entities of this kind carry energy and take turns.
func (k Kind) Active() bool {
	return k != KindWall
}

// ParseKind resolves a configuration type name.
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return KindWall, fmt.Errorf("unknown organism type %q", name)
}

// PreAct returns the ordered fallback chain the kind tries before its
// configured actions. Nil means the kind declines to specify one.
func (k Kind) PreAct() []traits.Trait {
	switch k {
	case KindPlant:
		return []traits.Trait{traits.Reproduce, traits.Grow}
	case KindAnimal:
		return []traits.Trait{traits.AvoidPredators, traits.Reproduce, traits.Metabolize}
	}
	return nil
}

// Traits returns the capabilities the kind composes on its own.
func (k Kind) Traits() traits.Trait {
	switch k {
	case KindPlant:
		return traits.OrganismTraits | traits.Grow
	case KindAnimal:
		return traits.OrganismTraits | traits.Compose(traits.Eat, traits.Metabolize, traits.AvoidPredators)
	case KindOrganism:
		return traits.OrganismTraits
	}
	return traits.None
}

// Identity holds the species tag and display glyph of any grid occupant.
type Identity struct {
	Species string
	Glyph   rune
	Kind    Kind
}

// Heading is the current movement direction; each component is in {-1,0,1}.
type Heading struct {
	Dir Vector
}

// Behavior is the composed trait set and the two-phase action policy.
type Behavior struct {
	Traits traits.Trait   // every capability composed
	PreAct []traits.Trait // kind policy, tried first
	Act    []traits.Trait // configured actions, tried when PreAct declines
}

// Lineage points at the template offspring are spawned from.
type Lineage struct {
	Template *Template
}
