// Package game drives the simulation: it owns the field, the population
// and telemetry, and runs one sweep over every live animal per step.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/systems"
	"github.com/pthm-cable/warren/telemetry"
)

// ErrOccupied is returned when adding an animal to a taken cell.
var ErrOccupied = errors.New("cell occupied")

// Options configures a Game beyond the YAML config.
type Options struct {
	Seed          int64                       // RNG seed (0 = config, then time-based)
	Randomizer    systems.Randomizer          // Overrides Seed when set
	LogStats      bool                        // Log window stats via slog
	OutputDir     string                      // CSV + config snapshot directory (empty = disabled)
	StatsCallback func(telemetry.WindowStats) // Called on every window flush
}

// Game holds the complete simulation state.
type Game struct {
	cfg      *config.Config
	rng      systems.Randomizer
	seed     int64
	registry *systems.Registry
	field    *systems.Field

	// Population: one entity per animal.
	world     *ecs.World
	orgMap    *ecs.Map2[components.Organism, animalRef]
	orgFilter *ecs.Filter2[components.Organism, animalRef]

	// Telemetry
	collector        *telemetry.Collector
	lifetimeTracker  *telemetry.LifetimeTracker
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	statsCallback    func(telemetry.WindowStats)
	logStats         bool

	// State
	step      int32
	nextID    uint32
	deadCount int
}

// NewGame creates a game from cfg and populates the field.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game: nil config")
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := opts.Randomizer
	if rng == nil {
		rng = systems.NewRandomizer(seed)
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	world := ecs.NewWorld()
	g := &Game{
		cfg:              cfg,
		rng:              rng,
		seed:             seed,
		registry:         systems.NewRegistryFromParams(cfg.Derived.Params),
		field:            systems.NewField(cfg.Field.Depth, cfg.Field.Width, rng),
		world:            world,
		orgMap:           ecs.NewMap2[components.Organism, animalRef](world),
		orgFilter:        ecs.NewFilter2[components.Organism, animalRef](world),
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Bookmarks),
		outputManager:    om,
		statsCallback:    opts.StatsCallback,
		logStats:         opts.LogStats,
	}
	g.Reset()
	return g, nil
}

// Step runs one sweep: every live animal acts once, dead animals are
// removed, then the step's newborns join the population.
func (g *Game) Step() {
	g.perfCollector.StartStep()

	g.perfCollector.StartPhase(telemetry.PhaseSweep)
	newborns := g.sweep()
	g.step++

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	g.perfCollector.StartPhase(telemetry.PhaseBirths)
	g.mergeNewborns(newborns)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndStep()
}

// Simulate runs up to n steps, stopping early once the field is no longer
// viable. Returns the number of steps run.
func (g *Game) Simulate(n int) int {
	run := 0
	for run < n && g.IsViable() {
		g.Step()
		run++
	}
	return run
}

// Reset empties the field and repopulates it at step 0.
func (g *Game) Reset() {
	g.Clear()
	g.Populate()
}

// Clear removes every animal and restarts the step counter.
func (g *Game) Clear() {
	var entities []ecs.Entity
	query := g.orgFilter.Query()
	for query.Next() {
		entities = append(entities, query.Entity())
	}
	for _, e := range entities {
		g.world.RemoveEntity(e)
	}

	g.lifetimeTracker.Clear()
	g.field.Reset()
	g.step = 0
	g.deadCount = 0
	g.collector.Reset(0)
	g.bookmarkDetector = telemetry.NewBookmarkDetector(g.cfg.Telemetry.BookmarkHistorySize, g.cfg.Bookmarks)
}

// AddAnimal places a new animal of kind at loc and adds it to the population.
func (g *Game) AddAnimal(kind components.Kind, loc components.Location, randomAge bool) (*systems.Animal, error) {
	if !g.field.InBounds(loc) {
		return nil, fmt.Errorf("location %s outside %dx%d field", loc, g.field.Depth(), g.field.Width())
	}
	if g.field.ObjectAt(loc) != nil {
		return nil, fmt.Errorf("adding %s at %s: %w", kind, loc, ErrOccupied)
	}
	a := g.registry.Spawn(kind, g.rng, randomAge, g.field, loc)
	g.register(a)
	return a, nil
}

// Census counts the live animals on the field.
func (g *Game) Census() *telemetry.Census {
	return telemetry.TakeCensus(g.field)
}

// IsViable reports whether more than one species is still on the field.
func (g *Game) IsViable() bool {
	return g.Census().IsViable()
}

// Animals returns the population in sweep order.
func (g *Game) Animals() []*systems.Animal {
	out := make([]*systems.Animal, 0, g.lifetimeTracker.Len())
	query := g.orgFilter.Query()
	for query.Next() {
		_, ref := query.Get()
		out = append(out, ref.animal)
	}
	return out
}

// Field returns the shared field.
func (g *Game) Field() *systems.Field { return g.field }

// Registry returns the species table in use.
func (g *Game) Registry() *systems.Registry { return g.registry }

// StepCount returns the number of completed steps.
func (g *Game) StepCount() int32 { return g.step }

// Seed returns the seed the randomizer was built from.
func (g *Game) Seed() int64 { return g.seed }

// DeadCount returns the number of animals removed since the last Clear.
func (g *Game) DeadCount() int { return g.deadCount }

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
		return err
	}
	return nil
}
