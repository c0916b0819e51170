package components

// Organism is the ECS component attached to every animal entity in the
// driver's population world.
type Organism struct {
	ID        uint32
	Kind      Kind
	BirthStep int32
}
