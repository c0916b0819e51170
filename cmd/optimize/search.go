package main

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/warren/config"
)

// EvalRecord is one row of optimize_log.csv: the outcome of a config and
// the parameter values it was run with.
type EvalRecord struct {
	Eval          int     `csv:"eval"`
	Fitness       float64 `csv:"fitness"`
	SurvivalSteps float64 `csv:"survival_steps"`
	Quality       float64 `csv:"quality"`
	Rabbits       float64 `csv:"final_rabbits"`
	Foxes         float64 `csv:"final_foxes"`

	FoxCreation        float64 `csv:"fox_creation_probability"`
	RabbitCreation     float64 `csv:"rabbit_creation_probability"`
	RabbitBreedingProb float64 `csv:"rabbit_breeding_probability"`
	RabbitMaxLitter    int     `csv:"rabbit_max_litter_size"`
	FoxBreedingAge     int     `csv:"fox_breeding_age"`
	FoxMaxAge          int     `csv:"fox_max_age"`
	FoxBreedingProb    float64 `csv:"fox_breeding_probability"`
	FoxMaxLitter       int     `csv:"fox_max_litter_size"`
	FoxFoodValue       int     `csv:"fox_food_value"`
}

func newEvalRecord(eval int, s RunSummary, cfg *config.Config) EvalRecord {
	rabbit, fox := cfg.Species.Rabbit, cfg.Species.Fox
	return EvalRecord{
		Eval:          eval,
		Fitness:       s.Fitness,
		SurvivalSteps: s.SurvivalSteps,
		Quality:       s.Quality,
		Rabbits:       s.Rabbits,
		Foxes:         s.Foxes,

		FoxCreation:        cfg.Population.FoxCreationProbability,
		RabbitCreation:     cfg.Population.RabbitCreationProbability,
		RabbitBreedingProb: rabbit.BreedingProbability,
		RabbitMaxLitter:    rabbit.MaxLitterSize,
		FoxBreedingAge:     fox.BreedingAge,
		FoxMaxAge:          fox.MaxAge,
		FoxBreedingProb:    fox.BreedingProbability,
		FoxMaxLitter:       fox.MaxLitterSize,
		FoxFoodValue:       fox.FoodValue,
	}
}

// populationSize is the standard CMA-ES default: 4 + floor(3*ln(n)).
func populationSize(dim int) int {
	if dim < 1 {
		return 4
	}
	return 4 + int(3.0*math.Log(float64(dim)))
}

// evalSeeds returns n fixed seeds so every config sees the same runs.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

// Search drives CMA-ES over a ParamVector, logging every evaluation.
type Search struct {
	params    *ParamVector
	base      *config.Config
	evaluator *FitnessEvaluator
	maxEvals  int

	log           io.Writer
	headerWritten bool

	evals   int
	best    EvalRecord
	bestCfg *config.Config
	start   time.Time
}

// NewSearch creates a search starting from base. Evaluation rows go to log.
func NewSearch(params *ParamVector, base *config.Config, evaluator *FitnessEvaluator, log io.Writer, maxEvals int) *Search {
	return &Search{
		params:    params,
		base:      base,
		evaluator: evaluator,
		maxEvals:  maxEvals,
		log:       log,
		start:     time.Now(),
	}
}

// Run minimises fitness with CmaEsChol. popSize 0 picks the default.
func (s *Search) Run(popSize int) error {
	if popSize <= 0 {
		popSize = populationSize(s.params.Dim())
	}

	// Start from the base config's values.
	initX := s.params.Normalize(s.params.Clamp(s.params.ExtractFromConfig(s.base)))

	problem := optimize.Problem{Func: s.objective}
	settings := &optimize.Settings{
		FuncEvaluations: s.maxEvals,
		Concurrent:      0, // objective is not safe for concurrent use
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	slog.Info("starting search",
		"params", s.params.Dim(),
		"population", popSize,
		"max_evals", s.maxEvals,
		"seeds", len(s.evaluator.seeds),
		"max_steps", s.evaluator.maxSteps,
	)
	_, err := optimize.Minimize(problem, initX, settings, method)
	return err
}

// objective evaluates one normalized parameter vector.
func (s *Search) objective(x []float64) float64 {
	cfg := s.base.Clone()
	if err := s.params.ApplyToConfig(cfg, s.params.Denormalize(x)); err != nil {
		slog.Warn("rejected parameters", "error", err)
		return 0
	}

	summary := s.evaluator.Evaluate(cfg)
	s.evals++
	rec := newEvalRecord(s.evals, summary, cfg)
	if s.bestCfg == nil || rec.Fitness < s.best.Fitness {
		s.best = rec
		s.bestCfg = cfg
	}

	if err := s.write(rec); err != nil {
		slog.Error("failed to write evaluation", "error", err)
	}

	elapsed := time.Since(s.start)
	remaining := time.Duration(s.maxEvals-s.evals) * (elapsed / time.Duration(s.evals))
	slog.Info("eval",
		"eval", s.evals,
		"survival_steps", summary.SurvivalSteps,
		"quality", summary.Quality,
		"rabbits", summary.Rabbits,
		"foxes", summary.Foxes,
		"best_survival_steps", s.best.SurvivalSteps,
		"elapsed", elapsed.Round(time.Second).String(),
		"eta", remaining.Round(time.Second).String(),
	)

	return summary.Fitness
}

// write appends rec to the log, emitting the CSV header on first use.
func (s *Search) write(rec EvalRecord) error {
	records := []EvalRecord{rec}
	if !s.headerWritten {
		s.headerWritten = true
		return gocsv.Marshal(records, s.log)
	}
	return gocsv.MarshalWithoutHeaders(records, s.log)
}

// Best returns the best evaluation so far and its config, or a nil config
// if nothing has been evaluated.
func (s *Search) Best() (EvalRecord, *config.Config) {
	return s.best, s.bestCfg
}

// Evals returns the number of completed evaluations.
func (s *Search) Evals() int { return s.evals }
