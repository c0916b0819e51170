package main

import (
	"testing"

	"github.com/pthm-cable/warren/config"
	"github.com/pthm-cable/warren/telemetry"
)

func steadyWindows(n, rabbits, foxes int) []telemetry.WindowStats {
	windows := make([]telemetry.WindowStats, n)
	for i := range windows {
		windows[i] = telemetry.WindowStats{
			WindowEndStep:   int32((i + 1) * 50),
			Rabbits:         rabbits,
			Foxes:           foxes,
			RabbitDeaths:    10,
			DeathsPredation: 5,
		}
	}
	return windows
}

func TestComputeQuality(t *testing.T) {
	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		min     float64
		max     float64
	}{
		{"no windows", nil, 0, 0},
		{"warmup only", steadyWindows(qualityWarmupWindows, 80, 10), 0, 0},
		{"foxes extinct", steadyWindows(10, 80, 0), 0, 0},
		{"steady at target ratio", steadyWindows(10, 80, 10), 0.85, 0.95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeQuality(tt.windows)
			if got < tt.min || got > tt.max {
				t.Errorf("quality = %v, want [%v, %v]", got, tt.min, tt.max)
			}
		})
	}
}

func TestComputeFitnessPrefersLongerSurvival(t *testing.T) {
	short := computeFitness(&runResult{survivalSteps: 100})
	long := computeFitness(&runResult{survivalSteps: 500})
	if long >= short {
		t.Errorf("fitness(500) = %v, fitness(100) = %v; longer survival should be lower", long, short)
	}
}

func smallConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Field.Depth = 15
	cfg.Field.Width = 15
	cfg.Telemetry.StatsWindow = 5
	if err := cfg.Refresh(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestEvaluateRunsEverySeed(t *testing.T) {
	fe := NewFitnessEvaluator(20, []int64{1, 2})

	s := fe.Evaluate(smallConfig(t))

	if s.SurvivalSteps < 0 || s.SurvivalSteps > 20 {
		t.Errorf("survival = %v, want [0, 20]", s.SurvivalSteps)
	}
	if s.Fitness > 0 || s.Fitness < -20*1.2 {
		t.Errorf("fitness = %v, want within [-24, 0]", s.Fitness)
	}
	if s.Quality < 0 || s.Quality > 1 {
		t.Errorf("quality = %v, want [0, 1]", s.Quality)
	}
	if s.Rabbits < 0 || s.Foxes < 0 || s.Rabbits+s.Foxes > 15*15 {
		t.Errorf("final census rabbits=%v foxes=%v out of range", s.Rabbits, s.Foxes)
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	fe := NewFitnessEvaluator(30, []int64{5})
	cfg := smallConfig(t)

	a, b := fe.Evaluate(cfg), fe.Evaluate(cfg)
	if a != b {
		t.Errorf("same config and seeds gave %+v then %+v", a, b)
	}
}
