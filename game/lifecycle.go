package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
)

// Populate seeds every empty cell in row-major order: a fox with the fox
// creation probability, otherwise a rabbit with the rabbit creation
// probability. Seeded animals get a random age.
func (g *Game) Populate() {
	pop := g.cfg.Population
	for row := 0; row < g.field.Depth(); row++ {
		for col := 0; col < g.field.Width(); col++ {
			loc := components.At(row, col)
			if g.field.ObjectAt(loc) != nil {
				continue
			}
			switch {
			case g.rng.Float64() < pop.FoxCreationProbability:
				g.register(g.registry.Spawn(components.KindFox, g.rng, true, g.field, loc))
			case g.rng.Float64() < pop.RabbitCreationProbability:
				g.register(g.registry.Spawn(components.KindRabbit, g.rng, true, g.field, loc))
			}
		}
	}
}

// animalRef links an entity to the animal it stands for. The field holds
// the same pointer, so the animal itself stays outside ECS storage.
type animalRef struct {
	animal *systems.Animal
}

// register creates the entity for a and starts tracking its lifetime.
func (g *Game) register(a *systems.Animal) uint32 {
	id := g.nextID
	g.nextID++

	org := components.Organism{
		ID:        id,
		Kind:      a.Kind(),
		BirthStep: g.step,
	}
	g.orgMap.NewEntity(&org, &animalRef{animal: a})
	g.lifetimeTracker.Register(id, a.Kind(), g.step)
	return id
}

// sweep lets every live animal act once and returns the newborns in the
// order they were produced. Newborns do not act until the next step.
func (g *Game) sweep() []*systems.Animal {
	var newborns []*systems.Animal

	query := g.orgFilter.Query()
	for query.Next() {
		org, ref := query.Get()
		a := ref.animal
		if !a.IsAlive() {
			continue
		}
		before := len(newborns)
		newborns = a.Act(newborns)
		if n := len(newborns) - before; n > 0 {
			g.lifetimeTracker.RecordChildren(org.ID, n)
		}
	}
	return newborns
}

// mergeNewborns adds the step's offspring to the population. Offspring that
// were eaten before the sweep ended are counted as born and dead.
func (g *Game) mergeNewborns(newborns []*systems.Animal) {
	for _, a := range newborns {
		g.collector.RecordBirth(a.Kind())
		if !a.IsAlive() {
			g.collector.RecordDeath(a.Kind(), a.Cause(), a.Age(), 0)
			g.deadCount++
			continue
		}
		g.register(a)
	}
}

// cleanupDead removes dead animals from the world.
func (g *Game) cleanupDead() {
	// Collect first; the world is locked while the query runs.
	type deadAnimal struct {
		entity ecs.Entity
		id     uint32
		animal *systems.Animal
	}
	var toRemove []deadAnimal

	query := g.orgFilter.Query()
	for query.Next() {
		org, ref := query.Get()
		if !ref.animal.IsAlive() {
			toRemove = append(toRemove, deadAnimal{entity: query.Entity(), id: org.ID, animal: ref.animal})
		}
	}

	for _, dead := range toRemove {
		a := dead.animal
		children := 0
		if stats := g.lifetimeTracker.Get(dead.id); stats != nil {
			children = stats.Children
		}
		g.collector.RecordDeath(a.Kind(), a.Cause(), a.Age(), children)

		g.lifetimeTracker.Remove(dead.id)
		g.world.RemoveEntity(dead.entity)
		g.deadCount++
	}
}
