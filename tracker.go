package twophase

// Tracker follows a cube through a stream of moves and reports phase
// changes. It starts from the solved state. A Tracker is not safe for
// concurrent use.
type Tracker struct {
	cube          *Cube
	history       []Move
	keepHistory   bool
	phase         Phase
	phaseCallback func(Phase)
}

// NewTracker creates a tracker starting from a solved state.
func NewTracker() *Tracker {
	return &Tracker{
		cube:        NewCube(),
		keepHistory: true,
		phase:       PhaseSolved,
	}
}

// SetPhaseCallback sets a callback that fires whenever the phase changes.
func (t *Tracker) SetPhaseCallback(cb func(Phase)) {
	t.phaseCallback = cb
}

// SetHistory enables or disables recording of applied moves.
func (t *Tracker) SetHistory(enabled bool) {
	t.keepHistory = enabled
	if !enabled {
		t.history = nil
	}
}

// Reset resets the tracker to a solved cube state and clears the history.
func (t *Tracker) Reset() {
	t.cube.Reset()
	t.history = nil
	t.phase = PhaseSolved
}

// ApplyMove applies a move and reports whether the phase changed.
func (t *Tracker) ApplyMove(m Move) bool {
	t.cube.Apply(m)
	if t.keepHistory {
		t.history = append(t.history, m)
	}
	return t.checkPhaseTransition()
}

// ApplyMoves applies multiple moves.
func (t *Tracker) ApplyMoves(moves []Move) {
	for _, m := range moves {
		t.ApplyMove(m)
	}
}

func (t *Tracker) checkPhaseTransition() bool {
	current := t.cube.Phase()
	if current == t.phase {
		return false
	}
	t.phase = current
	if t.phaseCallback != nil {
		t.phaseCallback(current)
	}
	return true
}

// Phase returns the current phase.
func (t *Tracker) Phase() Phase {
	return t.phase
}

// IsSolved returns true if the cube is solved.
func (t *Tracker) IsSolved() bool {
	return t.cube.IsSolved()
}

// Cube returns a copy of the tracked cube.
func (t *Tracker) Cube() *Cube {
	return t.cube.Clone()
}

// Moves returns a copy of the move history.
func (t *Tracker) Moves() []Move {
	result := make([]Move, len(t.history))
	copy(result, t.history)
	return result
}
