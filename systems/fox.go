package systems

import "github.com/pthm-cable/warren/components"

// DefaultFoxParams are the stock fox constants. FoodValue is the number of
// steps a fox can go without eating after catching a rabbit.
var DefaultFoxParams = components.SpeciesParams{
	BreedingAge:         15,
	MaxAge:              150,
	BreedingProbability: 0.08,
	MaxLitterSize:       2,
	FoodValue:           9,
}

// Fox returns the fox species table. Foxes eat rabbits.
func Fox(params components.SpeciesParams) *Species {
	return NewSpecies(components.KindFox, params, []components.Kind{components.KindRabbit}, foxAct, foxBorn)
}

func foxBorn(a *Animal, randomAge bool) {
	food := a.species.Params.FoodValue
	if randomAge && food > 0 {
		a.foodLevel = a.rng.IntN(food)
		return
	}
	a.foodLevel = food
}

// foxAct: age, get hungrier, breed, then hunt an adjacent prey or move.
func foxAct(a *Animal, newborns []*Animal) []*Animal {
	a.IncrementAge()
	a.incrementHunger()
	if !a.IsAlive() {
		return newborns
	}
	newborns = a.GiveBirth(newborns)
	if loc, ok := a.findFood(); ok {
		a.SetLocation(loc)
		return newborns
	}
	a.moveOrDie()
	return newborns
}

// incrementHunger burns one step of food; the animal starves at zero.
func (a *Animal) incrementHunger() {
	a.foodLevel--
	if a.foodLevel <= 0 {
		a.kill(components.CauseStarvation)
	}
}

// findFood eats the first live prey found among the adjacent cells and
// returns its cell.
func (a *Animal) findFood() (components.Location, bool) {
	for _, loc := range a.field.AdjacentLocations(a.location) {
		prey := a.field.ObjectAt(loc)
		if prey == nil || !prey.IsAlive() || !a.species.Eats(prey.Kind()) {
			continue
		}
		prey.kill(components.CausePredation)
		a.foodLevel = a.species.Params.FoodValue
		return loc, true
	}
	return components.Location{}, false
}
