package systems

import "github.com/pthm-cable/warren/components"

// DefaultRabbitParams are the stock rabbit constants.
var DefaultRabbitParams = components.SpeciesParams{
	BreedingAge:         5,
	MaxAge:              40,
	BreedingProbability: 0.12,
	MaxLitterSize:       4,
}

// Rabbit returns the rabbit species table.
func Rabbit(params components.SpeciesParams) *Species {
	return NewSpecies(components.KindRabbit, params, nil, rabbitAct, nil)
}

// rabbitAct: age, breed into free neighbours, then run to a free cell or
// die of overcrowding.
func rabbitAct(a *Animal, newborns []*Animal) []*Animal {
	a.IncrementAge()
	if !a.IsAlive() {
		return newborns
	}
	newborns = a.GiveBirth(newborns)
	a.moveOrDie()
	return newborns
}
