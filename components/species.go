// Package components defines the plain data shared by the simulation:
// cell coordinates, species tags and parameters, and the ECS components
// used by the step driver.
package components

// Kind tags a species. The set is closed; new species get a new tag and
// an entry in the species registry.
type Kind uint8

const (
	KindRabbit Kind = iota
	KindFox
)

// Kinds lists every species tag in a stable order.
var Kinds = []Kind{KindRabbit, KindFox}

func (k Kind) String() string {
	switch k {
	case KindRabbit:
		return "rabbit"
	case KindFox:
		return "fox"
	default:
		return "unknown"
	}
}

// ParseKind maps a species name back to its tag.
func ParseKind(name string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}

// SpeciesParams holds the fixed per-species constants. MaxAge and
// MaxLitterSize must be at least 1.
type SpeciesParams struct {
	BreedingAge         int     // Minimum age to reproduce
	MaxAge              int     // Animal dies once its age exceeds this
	BreedingProbability float64 // Chance of a breeding event per step, in [0,1]
	MaxLitterSize       int     // Upper bound on births per breeding event (>= 1)
	FoodValue           int     // Steps of food a predator gains per prey eaten (0 for prey)
}

// DeathCause records why an animal left the field.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseAge
	CauseOvercrowding
	CauseStarvation
	CausePredation
	CauseExternal
)

// Causes lists every death cause other than CauseNone.
var Causes = []DeathCause{CauseAge, CauseOvercrowding, CauseStarvation, CausePredation, CauseExternal}

func (c DeathCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseAge:
		return "age"
	case CauseOvercrowding:
		return "overcrowding"
	case CauseStarvation:
		return "starvation"
	case CausePredation:
		return "predation"
	case CauseExternal:
		return "external"
	default:
		return "unknown"
	}
}
