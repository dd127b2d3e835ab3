// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ecoscript/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds the run settings and the ecosystem description.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Stream     StreamConfig     `yaml:"stream"`

	// Ecosystem. Replaced wholesale when a user file provides a map.
	Organisms map[string]OrganismConfig `yaml:"organisms"`
	World     WorldConfig               `yaml:"world"`
}

// SimulationConfig holds run-loop settings.
type SimulationConfig struct {
	Seed      int64         `yaml:"seed"`      // 0 = time-based
	Randomize bool          `yaml:"randomize"` // redraw energies before the first turn
	Turns     int           `yaml:"turns"`     // 0 = unlimited
	Delay     time.Duration `yaml:"delay"`     // pause between printed frames
}

// TelemetryConfig holds census settings.
type TelemetryConfig struct {
	StatsWindow int  `yaml:"stats_window"` // turns per census window
	LogStats    bool `yaml:"log_stats"`
}

// StreamConfig holds the live snapshot server settings.
type StreamConfig struct {
	Listen string `yaml:"listen"` // empty = disabled
}

// OrganismConfig describes one organism: its kind, the actions its
// generic act tries in order, and its properties.
type OrganismConfig struct {
	Type       string           `yaml:"type"`
	Actions    []string         `yaml:"actions"`
	Properties PropertiesConfig `yaml:"properties"`
}

// PropertiesConfig is the property bag read by behavior traits.
type PropertiesConfig struct {
	Species      string   `yaml:"species"` // defaults to the organism name
	Diet         []string `yaml:"diet"`
	BaseEnergy   int      `yaml:"baseEnergy"`
	MaxEnergy    int      `yaml:"maxEnergy"`
	GrowthRate   int      `yaml:"growthRate"`
	Metabolism   int      `yaml:"metabolism"`
	MovementCost int      `yaml:"movementCost"`
	SenseRadius  int      `yaml:"senseRadius"`
}

// WorldConfig maps single-character symbols to organism names (or
// "wall") and lays them out as rows. A space is an empty cell.
type WorldConfig struct {
	Legend map[string]string `yaml:"legend"`
	Map    []string          `yaml:"map"`
}

// DefaultActions is used for organisms that list no actions.
var DefaultActions = []string{"go"}

// WallName is the reserved legend value for obstacles.
const WallName = "wall"

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		return Parse(nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse overlays data on the embedded defaults. Settings merge field by
// field; the ecosystem is taken from data only when data has a map.
// Organisms or a legend without a map are rejected with
// systems.ErrConfiguration.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if len(data) == 0 {
		cfg.applyDefaults()
		return cfg, nil
	}

	organisms, world := cfg.Organisms, cfg.World
	cfg.Organisms, cfg.World = nil, WorldConfig{}

	// Unmarshal into same struct - only overwrites fields present in file
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if len(cfg.World.Map) == 0 {
		if len(cfg.Organisms) > 0 || len(cfg.World.Legend) > 0 {
			return nil, fmt.Errorf("%w: organisms or world.legend given without world.map", systems.ErrConfiguration)
		}
		cfg.Organisms, cfg.World = organisms, world
	}

	cfg.applyDefaults()
	return cfg, nil
}

// applyDefaults fills organism fields left empty.
func (c *Config) applyDefaults() {
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 1
	}
	for name, org := range c.Organisms {
		if len(org.Actions) == 0 {
			org.Actions = DefaultActions
		}
		if org.Properties.Species == "" {
			org.Properties.Species = name
		}
		c.Organisms[name] = org
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
