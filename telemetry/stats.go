package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of steps.
type WindowStats struct {
	WindowStartStep int32 `csv:"-"`
	WindowEndStep   int32 `csv:"window_end"`

	// Population counts at window end
	Rabbits int  `csv:"rabbits"`
	Foxes   int  `csv:"foxes"`
	Viable  bool `csv:"viable"`

	// Events during window
	RabbitBirths int `csv:"rabbit_births"`
	FoxBirths    int `csv:"fox_births"`
	RabbitDeaths int `csv:"rabbit_deaths"`
	FoxDeaths    int `csv:"fox_deaths"`

	// Deaths by cause
	DeathsAge          int `csv:"deaths_age"`
	DeathsOvercrowding int `csv:"deaths_overcrowding"`
	DeathsStarvation   int `csv:"deaths_starvation"`
	DeathsPredation    int `csv:"deaths_predation"`
	DeathsExternal     int `csv:"deaths_external"`

	// Age distribution (sampled at window end)
	RabbitAgeMean float64 `csv:"rabbit_age_mean"`
	RabbitAgeP50  float64 `csv:"rabbit_age_p50"`
	RabbitAgeP90  float64 `csv:"rabbit_age_p90"`
	FoxAgeMean    float64 `csv:"fox_age_mean"`
	FoxAgeP50     float64 `csv:"fox_age_p50"`
	FoxAgeP90     float64 `csv:"fox_age_p90"`
	FoxFoodMean   float64 `csv:"fox_food_mean"`

	// Animals that died during the window
	LifespanMean float64 `csv:"lifespan_mean"`
	LifespanStd  float64 `csv:"lifespan_std"`
	ChildrenMean float64 `csv:"children_mean"`
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if the slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// MeanStd returns the mean and population standard deviation.
func MeanStd(values []float64) (mean, std float64) {
	if len(values) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(values, nil)
}

// ComputeAgeStats calculates mean, median and 90th percentile.
func ComputeAgeStats(values []float64) (mean, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartStep)),
		slog.Int("window_end", int(s.WindowEndStep)),
		slog.Int("rabbits", s.Rabbits),
		slog.Int("foxes", s.Foxes),
		slog.Bool("viable", s.Viable),
		slog.Int("rabbit_births", s.RabbitBirths),
		slog.Int("fox_births", s.FoxBirths),
		slog.Int("rabbit_deaths", s.RabbitDeaths),
		slog.Int("fox_deaths", s.FoxDeaths),
		slog.Int("deaths_age", s.DeathsAge),
		slog.Int("deaths_overcrowding", s.DeathsOvercrowding),
		slog.Int("deaths_starvation", s.DeathsStarvation),
		slog.Int("deaths_predation", s.DeathsPredation),
		slog.Int("deaths_external", s.DeathsExternal),
		slog.Float64("rabbit_age_mean", s.RabbitAgeMean),
		slog.Float64("fox_age_mean", s.FoxAgeMean),
		slog.Float64("fox_food_mean", s.FoxFoodMean),
		slog.Float64("lifespan_mean", s.LifespanMean),
		slog.Float64("children_mean", s.ChildrenMean),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
