package cubie

// Face identifies one of the six faces, in U R F D L B order.
type Face uint8

const (
	FaceU Face = iota
	FaceR
	FaceF
	FaceD
	FaceL
	FaceB
)

// NumFaces is the number of faces.
const NumFaces = 6

const faceLetters = "URFDLB"

func (f Face) String() string {
	if int(f) < NumFaces {
		return faceLetters[f : f+1]
	}
	return "?"
}

// Opposite returns the face on the other side of the cube.
func (f Face) Opposite() Face {
	return (f + 3) % NumFaces
}

// Move is one of the 18 face turns. Moves are numbered face*3 + power-1, so
// U, U2, U' come first and B' last.
type Move uint8

const (
	U Move = iota
	U2
	UPrime
	R
	R2
	RPrime
	F
	F2
	FPrime
	D
	D2
	DPrime
	L
	L2
	LPrime
	B
	B2
	BPrime
)

// NumMoves is the size of the move vocabulary.
const NumMoves = 18

// AllMoves lists every move in search order.
var AllMoves = [NumMoves]Move{
	U, U2, UPrime, R, R2, RPrime, F, F2, FPrime,
	D, D2, DPrime, L, L2, LPrime, B, B2, BPrime,
}

// Phase2Moves lists the moves that keep a cube inside the reduced subgroup:
// every U and D turn plus half turns of the side faces.
var Phase2Moves = []Move{U, U2, UPrime, R2, F2, D, D2, DPrime, L2, B2}

// NewMove builds a move from a face and a clockwise quarter-turn count in 1..3.
func NewMove(f Face, power int) Move {
	return Move(int(f)*3 + power - 1)
}

// Face returns the face the move turns.
func (m Move) Face() Face {
	return Face(m / 3)
}

// Power returns the number of clockwise quarter turns (1, 2 or 3).
func (m Move) Power() int {
	return int(m%3) + 1
}

// Inverse returns the move that undoes m.
func (m Move) Inverse() Move {
	return m - m%3 + (2 - m%3)
}

// IsPhase2 reports whether m keeps the reduced subgroup closed.
func (m Move) IsPhase2() bool {
	switch m.Face() {
	case FaceU, FaceD:
		return true
	}
	return m.Power() == 2
}

func (m Move) String() string {
	if int(m) >= NumMoves {
		return "?"
	}
	switch m.Power() {
	case 2:
		return m.Face().String() + "2"
	case 3:
		return m.Face().String() + "'"
	}
	return m.Face().String()
}

// CanFollow reports whether next may be appended after prev. A move never
// follows a turn of the same face, and of two opposite faces (which commute)
// only the U-before-D, R-before-L, F-before-B order is allowed.
func CanFollow(prev, next Move) bool {
	pf, nf := prev.Face(), next.Face()
	if pf == nf {
		return false
	}
	if nf == pf.Opposite() && nf < pf {
		return false
	}
	return true
}

// basic holds the clockwise quarter turn of each face.
var basic = [NumFaces]Cube{
	FaceU: {
		CP: [NumCorners]Corner{UBR, URF, UFL, ULB, DFR, DLF, DBL, DRB},
		EP: [NumEdges]Edge{UB, UR, UF, UL, DR, DF, DL, DB, FR, FL, BL, BR},
	},
	FaceR: {
		CP: [NumCorners]Corner{DFR, UFL, ULB, URF, DRB, DLF, DBL, UBR},
		CO: [NumCorners]uint8{2, 0, 0, 1, 1, 0, 0, 2},
		EP: [NumEdges]Edge{FR, UF, UL, UB, BR, DF, DL, DB, DR, FL, BL, UR},
	},
	FaceF: {
		CP: [NumCorners]Corner{UFL, DLF, ULB, UBR, URF, DFR, DBL, DRB},
		CO: [NumCorners]uint8{1, 2, 0, 0, 2, 1, 0, 0},
		EP: [NumEdges]Edge{UR, FL, UL, UB, DR, FR, DL, DB, UF, DF, BL, BR},
		EO: [NumEdges]uint8{0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 0, 0},
	},
	FaceD: {
		CP: [NumCorners]Corner{URF, UFL, ULB, UBR, DLF, DBL, DRB, DFR},
		EP: [NumEdges]Edge{UR, UF, UL, UB, DF, DL, DB, DR, FR, FL, BL, BR},
	},
	FaceL: {
		CP: [NumCorners]Corner{URF, ULB, DBL, UBR, DFR, UFL, DLF, DRB},
		CO: [NumCorners]uint8{0, 1, 2, 0, 0, 2, 1, 0},
		EP: [NumEdges]Edge{UR, UF, BL, UB, DR, DF, FL, DB, FR, UL, DL, BR},
	},
	FaceB: {
		CP: [NumCorners]Corner{URF, UFL, UBR, DRB, DFR, DLF, ULB, DBL},
		CO: [NumCorners]uint8{0, 0, 1, 2, 0, 0, 2, 1},
		EP: [NumEdges]Edge{UR, UF, UL, BR, DR, DF, DL, BL, FR, FL, UB, DB},
		EO: [NumEdges]uint8{0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1},
	},
}

// moveCubes holds every move as a permutation, precomputed from basic.
var moveCubes [NumMoves]Cube

func init() {
	for f := Face(0); f < NumFaces; f++ {
		c := Solved
		for p := 1; p <= 3; p++ {
			c = c.Multiply(basic[f])
			moveCubes[NewMove(f, p)] = c
		}
	}
}

// Move returns the state reached by applying m to c.
func (c Cube) Move(m Move) Cube {
	return c.Multiply(moveCubes[m])
}

// Apply returns the state reached by applying moves in order.
func (c Cube) Apply(moves ...Move) Cube {
	for _, m := range moves {
		c = c.Multiply(moveCubes[m])
	}
	return c
}
