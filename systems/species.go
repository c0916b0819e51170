package systems

import (
	"fmt"

	"github.com/pthm-cable/warren/components"
)

// ActFunc is a species' per-step policy.
type ActFunc func(a *Animal, newborns []*Animal) []*Animal

// BornFunc initialises species-specific state on a freshly created animal.
type BornFunc func(a *Animal, randomAge bool)

// Species is the parameter table and behaviour of one kind of animal.
// It doubles as the factory for newborns of that kind.
type Species struct {
	Kind   components.Kind
	Params components.SpeciesParams
	Prey   []components.Kind // kinds this species eats, empty for grazers

	act  ActFunc
	born BornFunc
}

// NewSpecies builds a species table. born may be nil. Panics if MaxAge or
// MaxLitterSize is below 1, since both bound random draws.
func NewSpecies(kind components.Kind, params components.SpeciesParams, prey []components.Kind, act ActFunc, born BornFunc) *Species {
	if params.MaxAge < 1 || params.MaxLitterSize < 1 {
		panic(fmt.Sprintf("species %s: max age %d and max litter size %d must be >= 1", kind, params.MaxAge, params.MaxLitterSize))
	}
	return &Species{Kind: kind, Params: params, Prey: prey, act: act, born: born}
}

// New creates an animal of this species on field at loc.
func (s *Species) New(rng Randomizer, randomAge bool, field *Field, loc components.Location) *Animal {
	return NewAnimal(s, rng, randomAge, field, loc)
}

// Eats reports whether kind is prey for this species.
func (s *Species) Eats(kind components.Kind) bool {
	for _, k := range s.Prey {
		if k == kind {
			return true
		}
	}
	return false
}

// Registry maps species tags to their tables.
type Registry struct {
	species []*Species
	byKind  map[components.Kind]*Species
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[components.Kind]*Species)}
}

// NewRegistryFromParams registers the built-in species with the given
// parameters. Kinds missing from params fall back to their defaults.
func NewRegistryFromParams(params map[components.Kind]components.SpeciesParams) *Registry {
	r := NewRegistry()
	rabbit, ok := params[components.KindRabbit]
	if !ok {
		rabbit = DefaultRabbitParams
	}
	fox, ok := params[components.KindFox]
	if !ok {
		fox = DefaultFoxParams
	}
	r.Register(Rabbit(rabbit))
	r.Register(Fox(fox))
	return r
}

// DefaultRegistry registers rabbits and foxes with their default parameters.
func DefaultRegistry() *Registry {
	return NewRegistryFromParams(nil)
}

// Register adds or replaces a species.
func (r *Registry) Register(s *Species) {
	if _, exists := r.byKind[s.Kind]; !exists {
		r.species = append(r.species, s)
	} else {
		for i, old := range r.species {
			if old.Kind == s.Kind {
				r.species[i] = s
			}
		}
	}
	r.byKind[s.Kind] = s
}

// Get returns the species for kind.
func (r *Registry) Get(kind components.Kind) (*Species, bool) {
	s, ok := r.byKind[kind]
	return s, ok
}

// Spawn creates an animal of the given kind. Panics on an unregistered kind.
func (r *Registry) Spawn(kind components.Kind, rng Randomizer, randomAge bool, field *Field, loc components.Location) *Animal {
	s, ok := r.byKind[kind]
	if !ok {
		panic(fmt.Sprintf("registry: unknown species %s", kind))
	}
	return s.New(rng, randomAge, field, loc)
}

// All returns the registered species in registration order.
func (r *Registry) All() []*Species {
	return r.species
}
