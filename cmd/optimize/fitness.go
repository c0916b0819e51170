package main

import (
	"log/slog"
	"math"
	"sync"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
	"github.com/pthm-cable/warren/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	maxSteps int
	seeds    []int64
}

// NewFitnessEvaluator creates an evaluator running each config for up to
// maxSteps steps once per seed.
func NewFitnessEvaluator(maxSteps int, seeds []int64) *FitnessEvaluator {
	return &FitnessEvaluator{maxSteps: maxSteps, seeds: seeds}
}

// RunSummary aggregates one config's runs across all seeds.
type RunSummary struct {
	Fitness       float64 // mean fitness (lower = better)
	Quality       float64 // mean ecosystem quality in [0,1]
	SurvivalSteps float64 // mean steps both species coexisted
	Rabbits       float64 // mean rabbits alive at the end of a run
	Foxes         float64 // mean foxes alive at the end of a run
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalSteps int                     // steps before one species died out (or maxSteps)
	rabbits       int                     // final census
	foxes         int                     // final census
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// Evaluate runs cfg on every seed in parallel and averages the results.
// Fitness is negative survival steps: longer coexistence = lower (better) fitness.
func (fe *FitnessEvaluator) Evaluate(cfg *config.Config) RunSummary {
	// Seeds share the config read-only; each run owns its game.
	results := make([]*runResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(cfg, s)
			if err != nil {
				slog.Error("simulation failed", "seed", s, "error", err)
				return
			}
			results[idx] = result
		}(i, seed)
	}
	wg.Wait()

	var sum RunSummary
	for _, r := range results {
		if r == nil {
			continue
		}
		sum.Fitness += computeFitness(r)
		sum.Quality += computeQuality(r.windowStats)
		sum.SurvivalSteps += float64(r.survivalSteps)
		sum.Rabbits += float64(r.rabbits)
		sum.Foxes += float64(r.foxes)
	}

	n := float64(len(fe.seeds))
	return RunSummary{
		Fitness:       sum.Fitness / n,
		Quality:       sum.Quality / n,
		SurvivalSteps: sum.SurvivalSteps / n,
		Rabbits:       sum.Rabbits / n,
		Foxes:         sum.Foxes / n,
	}
}

// runSimulation executes a single headless simulation run.
// Runs until one species is gone or maxSteps, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) (*runResult, error) {
	result := &runResult{}

	g, err := game.NewGame(cfg, game.Options{
		Seed: seed,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Close()

	result.survivalSteps = g.Simulate(fe.maxSteps)
	census := g.Census()
	result.rabbits = census.Count(components.KindRabbit)
	result.foxes = census.Count(components.KindFox)
	return result, nil
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalSteps × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(r *runResult) float64 {
	survival := float64(r.survivalSteps)
	quality := computeQuality(r.windowStats)
	return -(survival * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightRatio     = 0.4
	qualityWeightStability = 0.4
	qualityWeightTurnover  = 0.2

	qualityTargetRatio   = 8.0 // rabbits per fox
	qualityWarmupWindows = 3   // skip first N windows (warmup)
	qualityMinPop        = 3   // exclude windows where either species < this
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	valid := windows[qualityWarmupWindows:]

	var ratioSum, turnoverSum float64
	var ratioCount int
	rabbits := make([]float64, 0, len(valid))
	foxes := make([]float64, 0, len(valid))

	for _, w := range valid {
		if w.Rabbits < qualityMinPop || w.Foxes < qualityMinPop {
			continue
		}
		rabbits = append(rabbits, float64(w.Rabbits))
		foxes = append(foxes, float64(w.Foxes))

		// 1. Population ratio score
		logErr := math.Log(float64(w.Rabbits) / float64(w.Foxes) / qualityTargetRatio)
		ratioSum += math.Exp(-logErr * logErr)
		ratioCount++

		// 3. Predation share of rabbit deaths
		if w.RabbitDeaths > 0 {
			turnoverSum += float64(w.DeathsPredation) / float64(w.RabbitDeaths)
		}
	}

	// No valid windows → zero quality
	if ratioCount == 0 {
		return 0
	}

	// 2. Population stability (CV across all valid windows)
	stabilityScore := 0.0
	if len(rabbits) >= 2 {
		cvRabbit, cvFox := cv(rabbits), cv(foxes)
		stabilityScore = math.Exp(-(cvRabbit*cvRabbit + cvFox*cvFox))
	}

	quality := qualityWeightRatio*ratioSum/float64(ratioCount) +
		qualityWeightStability*stabilityScore +
		qualityWeightTurnover*clamp01(turnoverSum/float64(ratioCount))

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	mean, std := telemetry.MeanStd(values)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return math.Min(math.Max(x, 0), 1)
}
