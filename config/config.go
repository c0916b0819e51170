// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/warren/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation configuration parameters.
type Config struct {
	Field      FieldConfig      `yaml:"field"`
	Population PopulationConfig `yaml:"population"`
	Species    SpeciesConfig    `yaml:"species"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Bookmarks  BookmarksConfig  `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// FieldConfig holds the grid dimensions.
type FieldConfig struct {
	Depth int `yaml:"depth"` // Rows
	Width int `yaml:"width"` // Columns
}

// PopulationConfig holds the per-cell seeding probabilities. Each cell gets a
// fox with FoxCreationProbability, otherwise a rabbit with RabbitCreationProbability.
type PopulationConfig struct {
	FoxCreationProbability    float64 `yaml:"fox_creation_probability"`
	RabbitCreationProbability float64 `yaml:"rabbit_creation_probability"`
}

// SpeciesConfig holds the per-species constants.
type SpeciesConfig struct {
	Rabbit SpeciesParamsConfig `yaml:"rabbit"`
	Fox    SpeciesParamsConfig `yaml:"fox"`
}

// SpeciesParamsConfig mirrors components.SpeciesParams.
type SpeciesParamsConfig struct {
	BreedingAge         int     `yaml:"breeding_age"`
	MaxAge              int     `yaml:"max_age"`
	BreedingProbability float64 `yaml:"breeding_probability"`
	MaxLitterSize       int     `yaml:"max_litter_size"`
	FoodValue           int     `yaml:"food_value,omitempty"` // Predators only
}

// SimulationConfig holds run length and seeding.
type SimulationConfig struct {
	Steps int   `yaml:"steps"` // Steps for a headless run (0 = until not viable)
	Seed  int64 `yaml:"seed"`  // RNG seed (0 = time-based)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // Steps per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PredatorRecovery PredatorRecoveryConfig `yaml:"predator_recovery"`
	PreyCrash        PreyCrashConfig        `yaml:"prey_crash"`
	StableEcosystem  StableEcosystemConfig  `yaml:"stable_ecosystem"`
}

// PredatorRecoveryConfig holds predator recovery detection parameters.
type PredatorRecoveryConfig struct {
	MinPopulation      int `yaml:"min_population"`
	RecoveryMultiplier int `yaml:"recovery_multiplier"`
	MinFinal           int `yaml:"min_final"`
}

// PreyCrashConfig holds prey crash detection parameters.
type PreyCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// StableEcosystemConfig holds stable ecosystem detection parameters.
type StableEcosystemConfig struct {
	MinPrey       int     `yaml:"min_prey"`
	MinPred       int     `yaml:"min_pred"`
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Cells  int                                          // Depth * Width
	Params map[components.Kind]components.SpeciesParams // kind -> constants
}

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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate checks ranges the simulation relies on.
func (c *Config) Validate() error {
	if c.Field.Depth <= 0 || c.Field.Width <= 0 {
		return fmt.Errorf("%w: field must be at least 1x1, got %dx%d", ErrInvalid, c.Field.Depth, c.Field.Width)
	}
	if err := checkProbability("population.fox_creation_probability", c.Population.FoxCreationProbability); err != nil {
		return err
	}
	if err := checkProbability("population.rabbit_creation_probability", c.Population.RabbitCreationProbability); err != nil {
		return err
	}
	if err := c.Species.Rabbit.validate("species.rabbit", false); err != nil {
		return err
	}
	if err := c.Species.Fox.validate("species.fox", true); err != nil {
		return err
	}
	if c.Simulation.Steps < 0 {
		return fmt.Errorf("%w: simulation.steps must be >= 0", ErrInvalid)
	}
	if c.Telemetry.StatsWindow < 1 {
		return fmt.Errorf("%w: telemetry.stats_window must be >= 1", ErrInvalid)
	}
	return nil
}

func (s SpeciesParamsConfig) validate(name string, predator bool) error {
	if s.BreedingAge < 0 {
		return fmt.Errorf("%w: %s.breeding_age must be >= 0", ErrInvalid, name)
	}
	if s.MaxAge < 1 {
		return fmt.Errorf("%w: %s.max_age must be >= 1", ErrInvalid, name)
	}
	if s.MaxLitterSize < 1 {
		return fmt.Errorf("%w: %s.max_litter_size must be >= 1", ErrInvalid, name)
	}
	if predator && s.FoodValue < 1 {
		return fmt.Errorf("%w: %s.food_value must be >= 1", ErrInvalid, name)
	}
	return checkProbability(name+".breeding_probability", s.BreedingProbability)
}

func checkProbability(name string, p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("%w: %s must be in [0,1], got %v", ErrInvalid, name, p)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Cells = c.Field.Depth * c.Field.Width
	c.Derived.Params = map[components.Kind]components.SpeciesParams{
		components.KindRabbit: c.Species.Rabbit.Params(),
		components.KindFox:    c.Species.Fox.Params(),
	}
}

// Params converts to the runtime parameter tuple.
func (s SpeciesParamsConfig) Params() components.SpeciesParams {
	return components.SpeciesParams{
		BreedingAge:         s.BreedingAge,
		MaxAge:              s.MaxAge,
		BreedingProbability: s.BreedingProbability,
		MaxLitterSize:       s.MaxLitterSize,
		FoodValue:           s.FoodValue,
	}
}

// Clone returns an independent copy with derived values recomputed.
// Callers that tweak a clone must call Refresh afterwards.
func (c *Config) Clone() *Config {
	out := *c
	out.computeDerived()
	return &out
}

// Refresh validates and recomputes derived values after in-place edits.
func (c *Config) Refresh() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
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
