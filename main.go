package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in steps (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = use config, then time-based)")
	steps := flag.Int("steps", -1, "Stop after N steps (0 = until one species remains, -1 = use config)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}
	maxSteps := cfg.Simulation.Steps
	if *steps >= 0 {
		maxSteps = *steps
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:      *seed,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	slog.Info("starting simulation",
		"seed", g.Seed(),
		"field", cfg.Field,
		"steps", maxSteps,
		"census", g.Census().String(),
	)

	for maxSteps == 0 || int(g.StepCount()) < maxSteps {
		if !g.IsViable() {
			slog.Info("population no longer viable", "step", g.StepCount(), "census", g.Census().String())
			return
		}
		g.Step()
	}
	slog.Info("max steps reached", "step", g.StepCount(), "census", g.Census().String())
}
