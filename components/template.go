package components

import (
	"fmt"

	"github.com/pthm-cable/ecoscript/traits"
)

// Template is a resolved organism specification. The world spawns
// entities from it at construction and on reproduction.
type Template struct {
	Name    string
	Species string
	Glyph   rune
	Kind    Kind

	BaseEnergy   int
	MaxEnergy    int
	GrowthRate   int
	Metabolism   int
	MovementCost int
	SenseRadius  int
	Diet         []string

	// Actions is the configured fallback list tried by the generic act.
	Actions []traits.Trait
}

// Wall returns the template for an inert obstacle.
func Wall(glyph rune) *Template {
	return &Template{Name: "wall", Species: "wall", Glyph: glyph, Kind: KindWall}
}

// WithGlyph returns a copy of the template displayed as glyph.
func (t *Template) WithGlyph(glyph rune) *Template {
	c := *t
	c.Glyph = glyph
	return &c
}

// Traits returns every capability the template composes.
func (t *Template) Traits() traits.Trait {
	return t.Kind.Traits() | traits.Compose(t.Actions...)
}

// Behavior builds the two-phase policy component.
func (t *Template) Behavior() Behavior {
	return Behavior{
		Traits: t.Traits(),
		PreAct: t.Kind.PreAct(),
		Act:    t.Actions,
	}
}

// Validate checks the energy bounds of an active template.
func (t *Template) Validate() error {
	if !t.Kind.Active() {
		return nil
	}
	if t.MaxEnergy < t.BaseEnergy {
		return fmt.Errorf("organism %q: maxEnergy %d below baseEnergy %d", t.Name, t.MaxEnergy, t.BaseEnergy)
	}
	if t.BaseEnergy < 0 || t.SenseRadius < 0 {
		return fmt.Errorf("organism %q: negative baseEnergy or senseRadius", t.Name)
	}
	return nil
}
