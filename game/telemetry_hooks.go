package game

import (
	"log/slog"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/telemetry"
)

// flushTelemetry closes the stats window when it is due and fans the
// result out to the log, the callback, the CSV output and the bookmark detector.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.step) {
		return
	}

	stats := g.collector.Flush(g.step, g.sample())
	perfStats := g.perfCollector.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, g.step); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, b := range g.bookmarkDetector.Check(stats) {
		if g.logStats {
			b.LogBookmark()
		}
		if err := g.outputManager.WriteBookmark(b); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// sample observes the live population at the end of a window.
func (g *Game) sample() telemetry.Sample {
	s := telemetry.Sample{Census: telemetry.NewCensus()}

	query := g.orgFilter.Query()
	for query.Next() {
		_, ref := query.Get()
		a := ref.animal
		if !a.IsAlive() {
			continue
		}
		s.Census.Increment(a.Kind())
		switch a.Kind() {
		case components.KindRabbit:
			s.RabbitAges = append(s.RabbitAges, float64(a.Age()))
		case components.KindFox:
			s.FoxAges = append(s.FoxAges, float64(a.Age()))
			s.FoxFood = append(s.FoxFood, float64(a.FoodLevel()))
		}
	}
	return s
}
