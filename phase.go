package twophase

// Phase represents progress through the two-phase algorithm.
// Phases progress from Scrambled (0) to Solved (2), allowing comparison
// with < and > operators.
type Phase int

const (
	// PhaseScrambled indicates the cube is outside the reduced subgroup.
	PhaseScrambled Phase = iota

	// PhaseReduced indicates phase 1 is complete: every corner and edge is
	// oriented and the four middle-slice edges sit in the middle slice.
	// Only U and D turns and half turns of the other faces are needed from
	// here.
	PhaseReduced

	// PhaseSolved indicates the cube is completely solved.
	PhaseSolved
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseReduced:
		return "reduced"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseReduced:
		return "Reduced (G1)"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// IsComplete returns true if the cube is solved.
func (p Phase) IsComplete() bool {
	return p == PhaseSolved
}
