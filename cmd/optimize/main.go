// Package main provides CMA-ES optimization for finding species and
// population parameters that keep rabbits and foxes coexisting.
package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/pthm-cable/warren/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxSteps := flag.Int("max-steps", 2000, "Maximum simulation length in steps (cap)")
	seeds := flag.Int("seeds", 3, "Number of seeds per evaluation")
	maxEvals := flag.Int("max-evals", 200, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if *outputDir == "" {
		slog.Error("--output is required")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logFile, err := os.Create(filepath.Join(*outputDir, "optimize_log.csv"))
	if err != nil {
		slog.Error("failed to create log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	start := time.Now()
	evaluator := NewFitnessEvaluator(*maxSteps, evalSeeds(*seeds))
	search := NewSearch(NewParamVector(), config.Cfg(), evaluator, logFile, *maxEvals)
	if err := search.Run(*population); err != nil {
		slog.Warn("optimization ended", "error", err)
	}

	best, bestCfg := search.Best()
	if bestCfg == nil {
		slog.Error("no evaluations completed")
		os.Exit(1)
	}
	slog.Info("optimization complete",
		"evals", search.Evals(),
		"elapsed", time.Since(start).Round(time.Second).String(),
		"best_eval", best.Eval,
		"survival_steps", best.SurvivalSteps,
		"quality", best.Quality,
	)

	out := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(out); err != nil {
		slog.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	slog.Info("best config saved", "path", out)
}
