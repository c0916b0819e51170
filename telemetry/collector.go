package telemetry

import "github.com/pthm-cable/warren/components"

// Collector accumulates events within step windows and produces WindowStats.
type Collector struct {
	windowSteps int32

	// Current window tracking
	windowStartStep int32

	// Event counters for current window
	births    map[components.Kind]int
	deaths    map[components.Kind]int
	causes    map[components.DeathCause]int
	lifespans []float64
	children  []float64
}

// NewCollector creates a new stats collector that flushes every windowSteps steps.
func NewCollector(windowSteps int) *Collector {
	if windowSteps < 1 {
		windowSteps = 1
	}
	return &Collector{
		windowSteps: int32(windowSteps),
		births:      make(map[components.Kind]int),
		deaths:      make(map[components.Kind]int),
		causes:      make(map[components.DeathCause]int),
	}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(kind components.Kind) {
	c.births[kind]++
}

// RecordDeath records a death with its cause, the age reached and the
// number of offspring the animal produced.
func (c *Collector) RecordDeath(kind components.Kind, cause components.DeathCause, age, children int) {
	c.deaths[kind]++
	c.causes[cause]++
	c.lifespans = append(c.lifespans, float64(age))
	c.children = append(c.children, float64(children))
}

// ShouldFlush returns true if enough steps have passed to flush the window.
func (c *Collector) ShouldFlush(currentStep int32) bool {
	return currentStep-c.windowStartStep >= c.windowSteps
}

// Sample is the population state observed at the end of a window.
type Sample struct {
	Census     *Census
	RabbitAges []float64
	FoxAges    []float64
	FoxFood    []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentStep int32, s Sample) WindowStats {
	census := s.Census
	if census == nil {
		census = NewCensus()
	}

	rabbitMean, rabbitP50, rabbitP90 := ComputeAgeStats(s.RabbitAges)
	foxMean, foxP50, foxP90 := ComputeAgeStats(s.FoxAges)
	foodMean, _ := MeanStd(s.FoxFood)
	lifespanMean, lifespanStd := MeanStd(c.lifespans)
	childrenMean, _ := MeanStd(c.children)

	stats := WindowStats{
		WindowStartStep: c.windowStartStep,
		WindowEndStep:   currentStep,

		Rabbits: census.Count(components.KindRabbit),
		Foxes:   census.Count(components.KindFox),
		Viable:  census.IsViable(),

		RabbitBirths: c.births[components.KindRabbit],
		FoxBirths:    c.births[components.KindFox],
		RabbitDeaths: c.deaths[components.KindRabbit],
		FoxDeaths:    c.deaths[components.KindFox],

		DeathsAge:          c.causes[components.CauseAge],
		DeathsOvercrowding: c.causes[components.CauseOvercrowding],
		DeathsStarvation:   c.causes[components.CauseStarvation],
		DeathsPredation:    c.causes[components.CausePredation],
		DeathsExternal:     c.causes[components.CauseExternal],

		RabbitAgeMean: rabbitMean,
		RabbitAgeP50:  rabbitP50,
		RabbitAgeP90:  rabbitP90,
		FoxAgeMean:    foxMean,
		FoxAgeP50:     foxP50,
		FoxAgeP90:     foxP90,
		FoxFoodMean:   foodMean,

		LifespanMean: lifespanMean,
		LifespanStd:  lifespanStd,
		ChildrenMean: childrenMean,
	}

	c.Reset(currentStep)
	return stats
}

// Reset discards the current window and restarts it at step.
func (c *Collector) Reset(step int32) {
	c.windowStartStep = step
	clear(c.births)
	clear(c.deaths)
	clear(c.causes)
	c.lifespans = c.lifespans[:0]
	c.children = c.children[:0]
}

// WindowSteps returns the number of steps per window.
func (c *Collector) WindowSteps() int32 {
	return c.windowSteps
}
