package game

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/ecoscript/components"
	"github.com/pthm-cable/ecoscript/config"
	"github.com/pthm-cable/ecoscript/systems"
	"github.com/pthm-cable/ecoscript/traits"
)

func parseConfig(t *testing.T, doc string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return cfg
}

const twoOrganisms = `
organisms:
  t1:
    type: organism
  t2:
    type: organism
world:
  legend:
    "1": t1
    "2": t2
  map:
    - "12"
    - " 1"
`

func TestNewGameFromLegend(t *testing.T) {
	cfg := parseConfig(t, twoOrganisms)
	g, err := NewGame(cfg, Options{Seed: 7})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	defer g.Unload()

	w := g.World()
	want := map[components.Vector]string{
		components.Vec(0, 0): "t1",
		components.Vec(1, 0): "t2",
		components.Vec(1, 1): "t1",
	}
	for pos, species := range want {
		id := w.Identity(w.Get(pos))
		if id == nil || id.Species != species {
			t.Errorf("%v holds %+v, want %s", pos, id, species)
		}
	}
	if !w.Get(components.Vec(0, 1)).IsZero() {
		t.Error("(0,1) should be empty")
	}
	if got := g.String(); got != "12\n 1" {
		t.Errorf("String() = %q, want %q", got, "12\n 1")
	}
}

func TestBuildTemplatesDefaults(t *testing.T) {
	cfg := parseConfig(t, twoOrganisms)
	templates, err := BuildTemplates(cfg)
	if err != nil {
		t.Fatalf("BuildTemplates: %v", err)
	}
	t1 := templates["t1"]
	if t1.Species != "t1" {
		t.Errorf("species = %q, want organism name", t1.Species)
	}
	if len(t1.Actions) != 1 || t1.Actions[0] != traits.Go {
		t.Errorf("actions = %v, want [go]", t1.Actions)
	}
	if !t1.Traits().Has(traits.Reproduce) {
		t.Error("organism does not compose Reproduce")
	}
}

func TestBuildTemplatesKinds(t *testing.T) {
	cfg := parseConfig(t, `
organisms:
  grass:
    type: plant
    properties: {baseEnergy: 1, maxEnergy: 4, growthRate: 1}
  rabbit:
    type: Animal
    actions: [eat, avoidpredators, wander]
    properties: {baseEnergy: 2, maxEnergy: 8, diet: [grass], senseRadius: 2}
world:
  legend: {"*": grass, "r": rabbit, "#": wall}
  map: ["#*r"]
`)
	templates, err := BuildTemplates(cfg)
	if err != nil {
		t.Fatalf("BuildTemplates: %v", err)
	}
	if templates["grass"].Kind != components.KindPlant {
		t.Errorf("grass kind = %v", templates["grass"].Kind)
	}
	rabbit := templates["rabbit"]
	if rabbit.Kind != components.KindAnimal {
		t.Errorf("rabbit kind = %v", rabbit.Kind)
	}
	want := []traits.Trait{traits.Eat, traits.AvoidPredators, traits.Wander}
	for i, tr := range want {
		if rabbit.Actions[i] != tr {
			t.Errorf("action %d = %v, want %v", i, rabbit.Actions[i], tr)
		}
	}

	legend, err := BuildLegend(cfg)
	if err != nil {
		t.Fatalf("BuildLegend: %v", err)
	}
	if legend['#'].Kind != components.KindWall {
		t.Errorf("# kind = %v, want wall", legend['#'].Kind)
	}
}

func TestBuildLegendErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown organism", `
world:
  legend: {"x": ghost}
  map: ["x"]
`},
		{"long key", `
organisms: {a: {type: organism}}
world:
  legend: {"ab": a}
  map: ["a"]
`},
		{"space key", `
organisms: {a: {type: organism}}
world:
  legend: {" ": a}
  map: ["a"]
`},
		{"unknown type", `
organisms: {a: {type: fungus}}
world:
  legend: {"a": a}
  map: ["a"]
`},
		{"unknown action", `
organisms: {a: {type: organism, actions: [fly]}}
world:
  legend: {"a": a}
  map: ["a"]
`},
		{"bad energy bounds", `
organisms: {a: {type: organism, properties: {baseEnergy: 5, maxEnergy: 2}}}
world:
  legend: {"a": a}
  map: ["a"]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildLegend(parseConfig(t, tt.doc))
			if !errors.Is(err, systems.ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestNewGameRejectsMalformedMap(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"ragged rows", `
organisms: {a: {type: organism}}
world:
  legend: {"a": a}
  map: ["aa", "a"]
`},
		{"undefined symbol", `
organisms: {a: {type: organism}}
world:
  legend: {"a": a}
  map: ["ab"]
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGame(parseConfig(t, tt.doc), Options{Seed: 1})
			if !errors.Is(err, systems.ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestNewGameDefaultsRun(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dir := t.TempDir()
	opts := DefaultOptions(cfg)
	opts.Seed = 42
	opts.StatsWindow = 5
	opts.OutputDir = dir

	g, err := NewGame(cfg, opts)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}

	rows := len(cfg.World.Map)
	for i := 0; i < 20; i++ {
		snap := g.Step()
		if got := strings.Count(snap, "\n") + 1; got != rows {
			t.Fatalf("turn %d: snapshot has %d rows, want %d", i, got, rows)
		}
	}
	g.Unload()

	for _, name := range []string{"config.yaml", "census.csv", "perf.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
}
