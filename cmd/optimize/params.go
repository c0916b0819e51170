// Package main provides CMA-ES optimization for warren simulation parameters.
package main

import (
	"math"

	"github.com/pthm-cable/warren/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Population seeding
			{Name: "fox_creation_prob", Path: "population.fox_creation_probability", Min: 0.005, Max: 0.1, Default: 0.02},
			{Name: "rabbit_creation_prob", Path: "population.rabbit_creation_probability", Min: 0.02, Max: 0.3, Default: 0.08},
			// Rabbit (breeding_age and max_age locked)
			{Name: "rabbit_breeding_prob", Path: "species.rabbit.breeding_probability", Min: 0.02, Max: 0.4, Default: 0.12},
			{Name: "rabbit_max_litter", Path: "species.rabbit.max_litter_size", Min: 1, Max: 8, Default: 4},
			// Fox
			{Name: "fox_breeding_age", Path: "species.fox.breeding_age", Min: 5, Max: 30, Default: 15},
			{Name: "fox_max_age", Path: "species.fox.max_age", Min: 50, Max: 300, Default: 150},
			{Name: "fox_breeding_prob", Path: "species.fox.breeding_probability", Min: 0.01, Max: 0.3, Default: 0.08},
			{Name: "fox_max_litter", Path: "species.fox.max_litter_size", Min: 1, Max: 5, Default: 2},
			{Name: "fox_food_value", Path: "species.fox.food_value", Min: 3, Max: 20, Default: 9},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to cfg and refreshes its derived values.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	clamped := pv.Clamp(values)
	round := func(v float64) int { return int(math.Round(v)) }

	// Order must match Specs order
	i := 0
	next := func() float64 {
		v := clamped[i]
		i++
		return v
	}

	cfg.Population.FoxCreationProbability = next()
	cfg.Population.RabbitCreationProbability = next()

	cfg.Species.Rabbit.BreedingProbability = next()
	cfg.Species.Rabbit.MaxLitterSize = round(next())

	cfg.Species.Fox.BreedingAge = round(next())
	cfg.Species.Fox.MaxAge = round(next())
	cfg.Species.Fox.BreedingProbability = next()
	cfg.Species.Fox.MaxLitterSize = round(next())
	cfg.Species.Fox.FoodValue = round(next())

	return cfg.Refresh()
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Population.FoxCreationProbability,
		cfg.Population.RabbitCreationProbability,
		cfg.Species.Rabbit.BreedingProbability,
		float64(cfg.Species.Rabbit.MaxLitterSize),
		float64(cfg.Species.Fox.BreedingAge),
		float64(cfg.Species.Fox.MaxAge),
		cfg.Species.Fox.BreedingProbability,
		float64(cfg.Species.Fox.MaxLitterSize),
		float64(cfg.Species.Fox.FoodValue),
	}
}
