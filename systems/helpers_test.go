package systems

import "github.com/pthm-cable/warren/components"

// scriptedRand replays fixed draws. Once a script runs out it keeps
// returning its last value (or 0 when empty). Shuffle is the identity.
type scriptedRand struct {
	floats []float64
	ints   []int
	fi, ii int
	nCalls []int // arguments passed to IntN
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[min(r.fi, len(r.floats)-1)]
	r.fi++
	return v
}

func (r *scriptedRand) IntN(n int) int {
	r.nCalls = append(r.nCalls, n)
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[min(r.ii, len(r.ints)-1)]
	r.ii++
	return v % n
}

func (r *scriptedRand) Shuffle(int, func(i, j int)) {}

// occupancyErrors checks that every live animal is recorded at its own
// location and that no two live animals share a cell.
func occupancyErrors(f *Field, animals []*Animal) []string {
	var errs []string
	seen := make(map[components.Location]*Animal)
	for _, a := range animals {
		loc, ok := a.Location()
		if !a.IsAlive() {
			if ok || a.Field() != nil {
				errs = append(errs, "dead animal still located")
			}
			continue
		}
		if !ok {
			errs = append(errs, "live animal without location")
			continue
		}
		if other, dup := seen[loc]; dup && other != a {
			errs = append(errs, "two live animals at "+loc.String())
		}
		seen[loc] = a
		if f.ObjectAt(loc) != a {
			errs = append(errs, "field disagrees at "+loc.String())
		}
	}
	return errs
}
