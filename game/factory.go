package game

import (
	"fmt"
	"unicode/utf8"

	"github.com/pthm-cable/ecoscript/components"
	"github.com/pthm-cable/ecoscript/config"
	"github.com/pthm-cable/ecoscript/systems"
	"github.com/pthm-cable/ecoscript/traits"
)

// BuildTemplates resolves every configured organism into a template.
func BuildTemplates(cfg *config.Config) (map[string]*components.Template, error) {
	out := make(map[string]*components.Template, len(cfg.Organisms))
	for name, org := range cfg.Organisms {
		t, err := buildTemplate(name, org)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", systems.ErrConfiguration, err)
		}
		out[name] = t
	}
	return out, nil
}

func buildTemplate(name string, org config.OrganismConfig) (*components.Template, error) {
	kind, err := components.ParseKind(org.Type)
	if err != nil {
		return nil, fmt.Errorf("organism %q: %v", name, err)
	}
	if kind == components.KindWall {
		return components.Wall(0), nil
	}

	actions := org.Actions
	if len(actions) == 0 {
		actions = config.DefaultActions
	}
	chain, err := traits.ParseAll(actions)
	if err != nil {
		return nil, fmt.Errorf("organism %q: %v", name, err)
	}

	p := org.Properties
	species := p.Species
	if species == "" {
		species = name
	}
	t := &components.Template{
		Name:         name,
		Species:      species,
		Kind:         kind,
		BaseEnergy:   p.BaseEnergy,
		MaxEnergy:    p.MaxEnergy,
		GrowthRate:   p.GrowthRate,
		Metabolism:   p.Metabolism,
		MovementCost: p.MovementCost,
		SenseRadius:  p.SenseRadius,
		Diet:         p.Diet,
		Actions:      chain,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// BuildLegend maps each legend symbol to its template. The reserved name
// "wall" needs no organism entry.
func BuildLegend(cfg *config.Config) (map[rune]*components.Template, error) {
	templates, err := BuildTemplates(cfg)
	if err != nil {
		return nil, err
	}

	legend := make(map[rune]*components.Template, len(cfg.World.Legend))
	for key, name := range cfg.World.Legend {
		if utf8.RuneCountInString(key) != 1 {
			return nil, fmt.Errorf("%w: legend key %q must be a single character", systems.ErrConfiguration, key)
		}
		symbol, _ := utf8.DecodeRuneInString(key)
		if symbol == ' ' {
			return nil, fmt.Errorf("%w: legend key %q is reserved for empty cells", systems.ErrConfiguration, key)
		}

		t, ok := templates[name]
		switch {
		case ok:
		case name == config.WallName:
			t = components.Wall(symbol)
		default:
			return nil, fmt.Errorf("%w: legend symbol %q names unknown organism %q", systems.ErrConfiguration, key, name)
		}
		legend[symbol] = t
	}
	return legend, nil
}
