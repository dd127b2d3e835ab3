// Package traits defines the composable organism behaviors.
package traits

import (
	"fmt"
	"strings"
)

// Trait is a behavior capability. Values are bit flags so a set of
// composed traits fits in a single Trait.
type Trait uint32

const (
	// Energy traits
	Grow       Trait = 1 << iota // Gains growth rate every call
	Eat                          // Consumes an adjacent diet member
	Metabolize                   // Burns metabolism, dies at zero

	// Movement traits
	Go             // Steps along the stored heading
	Wander         // Steps to a random open neighbor
	AvoidPredators // Flees the closest reachable predator
	Herd           // Closes in on the nearest flock member
	Hunt           // Closes in on the nearest prey

	// Organism traits
	Reproduce // Spawns offspring at full energy
	Pass      // Explicit no-op, always declines
)

// None is the empty trait set.
const None Trait = 0

var names = []struct {
	trait Trait
	name  string
}{
	{Grow, "grow"},
	{Eat, "eat"},
	{Metabolize, "metabolize"},
	{Go, "go"},
	{Wander, "wander"},
	{AvoidPredators, "avoidPredators"},
	{Herd, "herd"},
	{Hunt, "hunt"},
	{Reproduce, "reproduce"},
	{Pass, "pass"},
}

// Has checks if a trait set contains a trait.
func (t Trait) Has(other Trait) bool {
	return t&other != 0
}

// Add adds a trait to the set.
func (t Trait) Add(other Trait) Trait {
	return t | other
}

// Remove removes a trait from the set.
func (t Trait) Remove(other Trait) Trait {
	return t &^ other
}

// String returns the configuration name of a single trait, or a
// "|"-joined list for a set.
func (t Trait) String() string {
	if t == None {
		return "none"
	}
	var parts []string
	for _, n := range names {
		if t.Has(n.trait) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("trait(%#x)", uint32(t))
	}
	return strings.Join(parts, "|")
}

// Parse resolves a configuration action name. Names are matched
// case-insensitively so "avoidPredators" and "avoidpredators" agree.
func Parse(name string) (Trait, error) {
	for _, n := range names {
		if strings.EqualFold(n.name, name) {
			return n.trait, nil
		}
	}
	return None, fmt.Errorf("unknown trait %q", name)
}

// ParseAll resolves a list of action names, preserving order.
func ParseAll(list []string) ([]Trait, error) {
	out := make([]Trait, 0, len(list))
	for _, name := range list {
		t, err := Parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// Requires returns the traits a trait composes on its own. Every
// steering trait moves through Go.
func Requires(t Trait) Trait {
	switch t {
	case Wander, AvoidPredators, Herd, Hunt:
		return t | Go
	}
	return t
}

// Compose returns the full capability set for a chain of traits.
func Compose(chain ...Trait) Trait {
	set := None
	for _, t := range chain {
		set = set.Add(Requires(t))
	}
	return set
}

// OrganismTraits are composed by every living organism.
var OrganismTraits = Reproduce | Pass
