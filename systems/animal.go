package systems

import "github.com/pthm-cable/warren/components"

// Animal is a single creature on a field. Species behaviour is supplied by
// the Species it was created from; the lifecycle primitives below are shared.
//
// Invariant: a dead animal has no location and no field.
type Animal struct {
	species *Species
	rng     Randomizer

	age       int
	alive     bool
	location  components.Location
	located   bool
	field     *Field
	foodLevel int
	cause     components.DeathCause
}

// NewAnimal places a new animal of species s on field at loc. With randomAge
// the age is drawn uniformly from [0, MaxAge); otherwise it starts at 0.
func NewAnimal(s *Species, rng Randomizer, randomAge bool, field *Field, loc components.Location) *Animal {
	a := &Animal{
		species: s,
		rng:     rng,
		alive:   true,
		field:   field,
	}
	a.SetLocation(loc)
	if randomAge {
		a.age = rng.IntN(s.Params.MaxAge)
	}
	if s.born != nil {
		s.born(a, randomAge)
	}
	return a
}

// Act runs one step of the species policy. Newborns are appended to
// newborns and the extended slice is returned.
func (a *Animal) Act(newborns []*Animal) []*Animal {
	return a.species.act(a, newborns)
}

// Species returns the species table the animal was created from.
func (a *Animal) Species() *Species { return a.species }

// Kind returns the species tag.
func (a *Animal) Kind() components.Kind { return a.species.Kind }

// Age returns the age in steps.
func (a *Animal) Age() int { return a.age }

// SetAge overrides the age.
func (a *Animal) SetAge(age int) { a.age = age }

// IsAlive reports whether the animal is still alive.
func (a *Animal) IsAlive() bool { return a.alive }

// Location returns the current cell, or false once the animal is dead.
func (a *Animal) Location() (components.Location, bool) {
	return a.location, a.located
}

// Field returns the field the animal occupies, or nil once dead.
func (a *Animal) Field() *Field { return a.field }

// FoodLevel returns the steps left before starvation. Only predators use it.
func (a *Animal) FoodLevel() int { return a.foodLevel }

// SetFoodLevel overrides the food level.
func (a *Animal) SetFoodLevel(level int) { a.foodLevel = level }

// Cause returns why the animal died, or CauseNone while alive.
func (a *Animal) Cause() components.DeathCause { return a.cause }

// SetLocation moves the animal to loc, clearing its previous cell first so
// the field never holds a stale record of it.
func (a *Animal) SetLocation(loc components.Location) {
	if a.located {
		a.field.Clear(a.location)
	}
	a.location = loc
	a.located = true
	a.field.Place(a, loc)
}

// IncrementAge ages the animal by one step; it dies once age exceeds MaxAge.
func (a *Animal) IncrementAge() {
	a.age++
	if a.age > a.species.Params.MaxAge {
		a.kill(components.CauseAge)
	}
}

// CanBreed reports whether the animal has reached breeding age.
func (a *Animal) CanBreed() bool {
	return a.age >= a.species.Params.BreedingAge
}

// Breed returns the number of births this step (possibly zero). The breeding
// draw happens first, the litter size draw only on success.
func (a *Animal) Breed() int {
	p := a.species.Params
	if !a.CanBreed() || p.BreedingProbability <= 0 {
		return 0
	}
	if a.rng.Float64() <= p.BreedingProbability {
		return a.rng.IntN(p.MaxLitterSize) + 1
	}
	return 0
}

// GiveBirth places newborns into free adjacent cells, front to back, stopping
// when the litter is exhausted or the free cells run out.
func (a *Animal) GiveBirth(newborns []*Animal) []*Animal {
	if !a.located {
		return newborns
	}
	free := a.field.FreeAdjacentLocations(a.location)
	births := a.Breed()
	for b := 0; b < births && len(free) > 0; b++ {
		loc := free[0]
		free = free[1:]
		newborns = append(newborns, a.species.New(a.rng, false, a.field, loc))
	}
	return newborns
}

// SetDead kills the animal and removes it from the field. Calling it on a
// dead animal is a no-op.
func (a *Animal) SetDead() {
	a.kill(components.CauseExternal)
}

// kill is SetDead with a recorded cause. The first cause wins.
func (a *Animal) kill(cause components.DeathCause) {
	if a.alive {
		a.cause = cause
	}
	a.alive = false
	if a.located {
		a.field.Clear(a.location)
		a.location = components.Location{}
		a.located = false
		a.field = nil
	}
}

// moveOrDie moves to a free adjacent cell, or dies of overcrowding.
func (a *Animal) moveOrDie() {
	if next, ok := a.field.FreeAdjacentLocation(a.location); ok {
		a.SetLocation(next)
		return
	}
	a.kill(components.CauseOvercrowding)
}
