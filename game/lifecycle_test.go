package game

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/ecoscript/components"
	"github.com/pthm-cable/ecoscript/systems"
	"github.com/pthm-cable/ecoscript/traits"
)

func TestRandomizeStaysInBounds(t *testing.T) {
	tmpl := &components.Template{
		Name: "moss", Species: "moss", Glyph: 'm', Kind: components.KindOrganism,
		BaseEnergy: 2, MaxEnergy: 8, Actions: []traits.Trait{traits.Pass},
	}

	changed := 0
	for run := 0; run < 200; run++ {
		w := systems.NewWorld(2, 2, rand.New(rand.NewSource(int64(run+1))))
		w.Set(components.Vec(0, 0), w.Spawn(tmpl))
		w.Set(components.Vec(1, 1), w.Spawn(components.Wall('#')))

		g, err := New(w, Options{Randomize: true})
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		energy := g.World().Energy(g.World().Get(components.Vec(0, 0)))
		if energy.Value < tmpl.BaseEnergy || energy.Value > tmpl.MaxEnergy {
			t.Fatalf("run %d: energy %d outside [%d, %d]", run, energy.Value, tmpl.BaseEnergy, tmpl.MaxEnergy)
		}
		if energy.Value != tmpl.BaseEnergy {
			changed++
		}
	}
	if changed == 0 {
		t.Error("Randomize never moved energy off its base value")
	}
}

func TestCensusGroupsBySpecies(t *testing.T) {
	w := systems.NewWorld(3, 1, rand.New(rand.NewSource(1)))
	a := &components.Template{Name: "a", Species: "a", Glyph: 'a', Kind: components.KindOrganism, BaseEnergy: 4, MaxEnergy: 9}
	b := &components.Template{Name: "b", Species: "b", Glyph: 'b', Kind: components.KindOrganism, BaseEnergy: 1, MaxEnergy: 9}
	w.Set(components.Vec(0, 0), w.Spawn(a))
	w.Set(components.Vec(1, 0), w.Spawn(b))
	w.Set(components.Vec(2, 0), w.Spawn(a))

	g, err := New(w, Options{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	census := g.census()
	if len(census["a"]) != 2 || len(census["b"]) != 1 {
		t.Fatalf("census = %v, want 2 a and 1 b", census)
	}
	if census["b"][0] != 1 {
		t.Errorf("b energy = %v, want 1", census["b"][0])
	}
}
