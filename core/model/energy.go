package model

// Energy represents a coarse level of mental energy, used both for a task's
// requirement and for the planner's belief about a given slot.
type Energy string

const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// Rank returns the ordinal position of the level (low < medium < high).
// Unknown values rank as medium.
func (e Energy) Rank() int {
	switch e {
	case EnergyLow:
		return 0
	case EnergyHigh:
		return 2
	default:
		return 1
	}
}

// Valid reports whether the value is one of the three known levels.
func (e Energy) Valid() bool {
	return e == EnergyLow || e == EnergyMedium || e == EnergyHigh
}

// EnergyProfile is the expected energy level per successive slot. Profiles
// shorter than the slot sequence repeat their last entry.
type EnergyProfile []Energy

// At returns the energy for the given slot index. An empty profile yields
// EnergyMedium.
func (p EnergyProfile) At(i int) Energy {
	if len(p) == 0 {
		return EnergyMedium
	}
	if i >= len(p) {
		i = len(p) - 1
	}
	if i < 0 {
		i = 0
	}
	return p[i]
}
