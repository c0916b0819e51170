package components

import "fmt"

// Location is a single cell coordinate on the field.
// It is a comparable value and can be used directly as a map key.
type Location struct {
	Row int
	Col int
}

// At returns the location at (row, col).
func At(row, col int) Location {
	return Location{Row: row, Col: col}
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Col)
}
