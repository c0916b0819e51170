package systems

import (
	"testing"

	"github.com/pthm-cable/warren/components"
)

func TestFieldAdjacentLocations(t *testing.T) {
	f := NewField(10, 10, nil)

	tests := []struct {
		name string
		loc  components.Location
		want int
	}{
		{"center", components.At(5, 5), 8},
		{"top left", components.At(0, 0), 3},
		{"top right", components.At(0, 9), 3},
		{"bottom left", components.At(9, 0), 3},
		{"bottom right", components.At(9, 9), 3},
		{"top edge", components.At(0, 4), 5},
		{"left edge", components.At(4, 0), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adj := f.AdjacentLocations(tt.loc)
			if len(adj) != tt.want {
				t.Fatalf("got %d adjacent cells, want %d", len(adj), tt.want)
			}
			for _, loc := range adj {
				if !f.InBounds(loc) {
					t.Errorf("adjacent %s out of bounds", loc)
				}
				if loc == tt.loc {
					t.Errorf("cell listed as its own neighbour")
				}
				dr, dc := loc.Row-tt.loc.Row, loc.Col-tt.loc.Col
				if dr < -1 || dr > 1 || dc < -1 || dc > 1 {
					t.Errorf("%s is not adjacent to %s", loc, tt.loc)
				}
			}
		})
	}
}

func TestFieldPlaceAndClear(t *testing.T) {
	f := NewField(4, 4, nil)
	rabbit := Rabbit(DefaultRabbitParams)
	a := rabbit.New(&scriptedRand{}, false, f, components.At(1, 1))

	if f.ObjectAt(components.At(1, 1)) != a {
		t.Fatal("animal not recorded at its location")
	}

	f.Clear(components.At(1, 1))
	if f.ObjectAt(components.At(1, 1)) != nil {
		t.Error("cell not cleared")
	}

	// Clearing an empty cell is a no-op.
	f.Clear(components.At(2, 2))
	if f.ObjectAt(components.At(2, 2)) != nil {
		t.Error("empty cell gained an occupant")
	}
}

func TestFieldPlaceOutOfBoundsPanics(t *testing.T) {
	f := NewField(3, 3, nil)

	defer func() {
		if recover() == nil {
			t.Error("expected panic placing outside the field")
		}
	}()
	f.Place(nil, components.At(3, 0))
}

func TestFieldFreeAdjacentLocations(t *testing.T) {
	f := NewField(3, 3, nil)
	rabbit := Rabbit(DefaultRabbitParams)
	rng := &scriptedRand{}

	center := components.At(1, 1)
	rabbit.New(rng, false, f, center)
	rabbit.New(rng, false, f, components.At(0, 0))
	rabbit.New(rng, false, f, components.At(2, 1))

	free := f.FreeAdjacentLocations(center)
	if len(free) != 6 {
		t.Fatalf("got %d free cells, want 6", len(free))
	}
	for _, loc := range free {
		if f.ObjectAt(loc) != nil {
			t.Errorf("%s reported free but occupied", loc)
		}
	}

	// Fill every neighbour.
	for _, loc := range free {
		rabbit.New(rng, false, f, loc)
	}
	if _, ok := f.FreeAdjacentLocation(center); ok {
		t.Error("expected no free adjacent location on a full field")
	}
}

func TestFieldFreeAdjacentLocationSingleCandidate(t *testing.T) {
	f := NewField(1, 2, nil)
	Rabbit(DefaultRabbitParams).New(&scriptedRand{}, false, f, components.At(0, 0))

	loc, ok := f.FreeAdjacentLocation(components.At(0, 0))
	if !ok {
		t.Fatal("expected a free location")
	}
	if loc != components.At(0, 1) {
		t.Errorf("got %s, want (0,1)", loc)
	}
}

func TestFieldAdjacencyDeterministicForSeed(t *testing.T) {
	a := NewField(10, 10, NewRandomizer(7))
	b := NewField(10, 10, NewRandomizer(7))

	for i := 0; i < 20; i++ {
		la := a.AdjacentLocations(components.At(5, 5))
		lb := b.AdjacentLocations(components.At(5, 5))
		for j := range la {
			if la[j] != lb[j] {
				t.Fatalf("iteration %d: order diverged at %d: %s vs %s", i, j, la[j], lb[j])
			}
		}
	}
}

func TestFieldReset(t *testing.T) {
	f := NewField(5, 5, nil)
	rabbit := Rabbit(DefaultRabbitParams)
	rng := &scriptedRand{}
	rabbit.New(rng, false, f, components.At(0, 0))
	rabbit.New(rng, false, f, components.At(4, 4))

	f.Reset()

	count := 0
	f.Each(func(components.Location, *Animal) { count++ })
	if count != 0 {
		t.Errorf("got %d occupants after reset, want 0", count)
	}
}
