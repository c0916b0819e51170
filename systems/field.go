// Package systems implements the animal lifecycle and field occupancy model.
package systems

import (
	"fmt"

	"github.com/pthm-cable/warren/components"
)

// neighborOffsets is the 8-neighbourhood in row-major order.
var neighborOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Field is the authoritative occupancy store: a depth x width grid with at
// most one animal per cell. Every animal placed on it shares the same Field.
type Field struct {
	depth int
	width int
	cells []*Animal // row-major, nil = empty
	rng   Randomizer
}

// NewField creates an empty field. If rng is non-nil, adjacency lists are
// shuffled with it; a nil rng yields row-major neighbour order.
func NewField(depth, width int, rng Randomizer) *Field {
	if depth <= 0 || width <= 0 {
		panic(fmt.Sprintf("field: invalid dimensions %dx%d", depth, width))
	}
	return &Field{
		depth: depth,
		width: width,
		cells: make([]*Animal, depth*width),
		rng:   rng,
	}
}

// Depth returns the number of rows.
func (f *Field) Depth() int { return f.depth }

// Width returns the number of columns.
func (f *Field) Width() int { return f.width }

// InBounds reports whether loc lies on the field.
func (f *Field) InBounds(loc components.Location) bool {
	return loc.Row >= 0 && loc.Row < f.depth && loc.Col >= 0 && loc.Col < f.width
}

func (f *Field) index(loc components.Location) int {
	if !f.InBounds(loc) {
		panic(fmt.Sprintf("field: location %s outside %dx%d", loc, f.depth, f.width))
	}
	return loc.Row*f.width + loc.Col
}

// Place records a as the occupant of loc, overwriting any previous record.
// Panics if loc is out of bounds.
func (f *Field) Place(a *Animal, loc components.Location) {
	f.cells[f.index(loc)] = a
}

// Clear removes any occupant record at loc.
func (f *Field) Clear(loc components.Location) {
	f.cells[f.index(loc)] = nil
}

// Reset empties every cell.
func (f *Field) Reset() {
	for i := range f.cells {
		f.cells[i] = nil
	}
}

// ObjectAt returns the occupant of loc, or nil.
func (f *Field) ObjectAt(loc components.Location) *Animal {
	return f.cells[f.index(loc)]
}

// AdjacentLocations returns the in-bounds cells surrounding loc
// (boundary-clipped 8-neighbourhood), shuffled when the field has a randomizer.
func (f *Field) AdjacentLocations(loc components.Location) []components.Location {
	adj := make([]components.Location, 0, len(neighborOffsets))
	for _, off := range neighborOffsets {
		next := components.Location{Row: loc.Row + off[0], Col: loc.Col + off[1]}
		if f.InBounds(next) {
			adj = append(adj, next)
		}
	}
	if f.rng != nil {
		f.rng.Shuffle(len(adj), func(i, j int) { adj[i], adj[j] = adj[j], adj[i] })
	}
	return adj
}

// FreeAdjacentLocations returns the adjacent cells that currently have no occupant.
func (f *Field) FreeAdjacentLocations(loc components.Location) []components.Location {
	adj := f.AdjacentLocations(loc)
	free := adj[:0]
	for _, next := range adj {
		if f.ObjectAt(next) == nil {
			free = append(free, next)
		}
	}
	return free
}

// FreeAdjacentLocation returns one free adjacent cell, if any.
func (f *Field) FreeAdjacentLocation(loc components.Location) (components.Location, bool) {
	free := f.FreeAdjacentLocations(loc)
	if len(free) == 0 {
		return components.Location{}, false
	}
	return free[0], true
}

// Each calls fn for every occupied cell in row-major order.
func (f *Field) Each(fn func(loc components.Location, a *Animal)) {
	for i, a := range f.cells {
		if a != nil {
			fn(components.Location{Row: i / f.width, Col: i % f.width}, a)
		}
	}
}
