package telemetry

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
)

// Census counts the live animals of each kind on a field.
type Census struct {
	counts map[components.Kind]int
}

// NewCensus creates an empty census.
func NewCensus() *Census {
	return &Census{counts: make(map[components.Kind]int)}
}

// TakeCensus counts every occupant of f.
func TakeCensus(f *systems.Field) *Census {
	c := NewCensus()
	f.Each(func(_ components.Location, a *systems.Animal) {
		if a.IsAlive() {
			c.Increment(a.Kind())
		}
	})
	return c
}

// Reset zeroes all counts.
func (c *Census) Reset() {
	clear(c.counts)
}

// Increment adds one animal of kind.
func (c *Census) Increment(kind components.Kind) {
	c.counts[kind]++
}

// Count returns the number of animals of kind.
func (c *Census) Count(kind components.Kind) int {
	return c.counts[kind]
}

// Total returns the number of animals counted.
func (c *Census) Total() int {
	n := 0
	for _, v := range c.counts {
		n += v
	}
	return n
}

// IsViable reports whether more than one species is still present.
func (c *Census) IsViable() bool {
	present := 0
	for _, v := range c.counts {
		if v > 0 {
			present++
		}
	}
	return present > 1
}

func (c *Census) String() string {
	var b strings.Builder
	for i, k := range components.Kinds {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%s: %d", k, c.counts[k])
	}
	return b.String()
}
