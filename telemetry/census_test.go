package telemetry

import (
	"testing"

	"github.com/pthm-cable/warren/components"
	"github.com/pthm-cable/warren/systems"
)

func TestTakeCensus(t *testing.T) {
	reg := systems.DefaultRegistry()
	rng := systems.NewRandomizer(1)
	f := systems.NewField(5, 5, rng)

	reg.Spawn(components.KindRabbit, rng, false, f, components.At(0, 0))
	reg.Spawn(components.KindRabbit, rng, false, f, components.At(1, 1))
	reg.Spawn(components.KindFox, rng, false, f, components.At(4, 4))

	c := TakeCensus(f)

	if c.Count(components.KindRabbit) != 2 {
		t.Errorf("rabbits = %d, want 2", c.Count(components.KindRabbit))
	}
	if c.Count(components.KindFox) != 1 {
		t.Errorf("foxes = %d, want 1", c.Count(components.KindFox))
	}
	if c.Total() != 3 {
		t.Errorf("total = %d, want 3", c.Total())
	}
	if !c.IsViable() {
		t.Error("two species present should be viable")
	}
	if got := c.String(); got != "rabbit: 2 fox: 1" {
		t.Errorf("String() = %q", got)
	}
}

func TestCensusViability(t *testing.T) {
	c := NewCensus()
	if c.IsViable() {
		t.Error("empty census should not be viable")
	}

	c.Increment(components.KindRabbit)
	if c.IsViable() {
		t.Error("single species should not be viable")
	}

	c.Increment(components.KindFox)
	if !c.IsViable() {
		t.Error("two species should be viable")
	}

	c.Reset()
	if c.Total() != 0 {
		t.Errorf("total after reset = %d", c.Total())
	}
}

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(7, components.KindFox, 12)
	lt.RecordChildren(7, 2)
	lt.RecordChildren(7, 1)
	lt.RecordChildren(99, 5) // unknown id is ignored

	s := lt.Remove(7)
	if s == nil || s.Children != 3 || s.BirthStep != 12 || s.Kind != components.KindFox {
		t.Fatalf("stats = %+v", s)
	}
	if lt.Len() != 0 {
		t.Errorf("len = %d after remove", lt.Len())
	}
}
