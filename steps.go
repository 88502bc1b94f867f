package twophase

// Axis is a rotation axis of the cube in a right-handed frame with Y up,
// X to the right and Z toward the viewer.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Direction is the sense of a rotation about an axis, looking down the axis
// from its positive end.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// Step is one layer rotation as an animator sees it. Layer 0 is the layer at
// the negative end of the axis and 2 the one at the positive end.
type Step struct {
	Axis      Axis
	Layer     int
	Direction Direction
	Quarters  int // 1 or 2
}

// faceSteps maps each face to its axis, layer and the axis direction of a
// clockwise turn of that face.
var faceSteps = map[Face]Step{
	FaceU: {Axis: AxisY, Layer: 2, Direction: Clockwise},
	FaceD: {Axis: AxisY, Layer: 0, Direction: CounterClockwise},
	FaceR: {Axis: AxisX, Layer: 2, Direction: Clockwise},
	FaceL: {Axis: AxisX, Layer: 0, Direction: CounterClockwise},
	FaceF: {Axis: AxisZ, Layer: 2, Direction: Clockwise},
	FaceB: {Axis: AxisZ, Layer: 0, Direction: CounterClockwise},
}

// Step returns the layer rotation for m. Half turns are a single step of
// two quarters.
func (m Move) Step() Step {
	st := faceSteps[m.Face]
	switch m.Turn {
	case CCW:
		st.Direction = -st.Direction
		st.Quarters = 1
	case Double:
		st.Quarters = 2
	default:
		st.Quarters = 1
	}
	return st
}

// Steps translates moves into layer rotations. With split set, every half
// turn becomes two quarter steps, for animators that only model quarter
// turns.
func Steps(moves []Move, split bool) []Step {
	steps := make([]Step, 0, len(moves))
	for _, m := range moves {
		if !m.Valid() {
			continue
		}
		st := m.Step()
		if split && st.Quarters == 2 {
			st.Quarters = 1
			steps = append(steps, st, st)
			continue
		}
		steps = append(steps, st)
	}
	return steps
}

// Steps returns the solution as layer rotations.
func (s *Solution) Steps(split bool) []Step {
	return Steps(s.Moves(), split)
}
