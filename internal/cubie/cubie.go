// Package cubie provides the cubie-level model of a 3x3 cube: which piece
// sits in each corner and edge slot and how it is twisted or flipped.
package cubie

import (
	"errors"
	"fmt"
)

// Corner identifies a corner slot or piece.
type Corner uint8

const (
	URF Corner = iota
	UFL
	ULB
	UBR
	DFR
	DLF
	DBL
	DRB
)

// NumCorners is the number of corner cubies.
const NumCorners = 8

var cornerNames = [NumCorners]string{"URF", "UFL", "ULB", "UBR", "DFR", "DLF", "DBL", "DRB"}

func (c Corner) String() string {
	if int(c) < NumCorners {
		return cornerNames[c]
	}
	return "?"
}

// Edge identifies an edge slot or piece.
type Edge uint8

const (
	UR Edge = iota
	UF
	UL
	UB
	DR
	DF
	DL
	DB
	FR
	FL
	BL
	BR
)

// NumEdges is the number of edge cubies.
const NumEdges = 12

var edgeNames = [NumEdges]string{"UR", "UF", "UL", "UB", "DR", "DF", "DL", "DB", "FR", "FL", "BL", "BR"}

func (e Edge) String() string {
	if int(e) < NumEdges {
		return edgeNames[e]
	}
	return "?"
}

// IsSlice reports whether e belongs to the middle (E) slice.
func (e Edge) IsSlice() bool {
	return e >= FR && e <= BR
}

// Errors returned by Verify.
var (
	ErrNotPermutation = errors.New("cubie: pieces do not form a permutation")
	ErrCornerTwist    = errors.New("cubie: corner orientation sum is not a multiple of 3")
	ErrEdgeFlip       = errors.New("cubie: edge orientation sum is odd")
	ErrParity         = errors.New("cubie: corner and edge permutation parities differ")
)

// Cube is a cube state in "replaced by" form: CP[i] is the corner piece that
// occupies slot i and CO[i] its twist; EP and EO likewise for edges.
type Cube struct {
	CP [NumCorners]Corner
	CO [NumCorners]uint8
	EP [NumEdges]Edge
	EO [NumEdges]uint8
}

// Solved is the identity state.
var Solved = Cube{
	CP: [NumCorners]Corner{URF, UFL, ULB, UBR, DFR, DLF, DBL, DRB},
	EP: [NumEdges]Edge{UR, UF, UL, UB, DR, DF, DL, DB, FR, FL, BL, BR},
}

// Multiply returns c*b, the state reached by applying b after c.
func (c Cube) Multiply(b Cube) Cube {
	var r Cube
	for i := 0; i < NumCorners; i++ {
		from := b.CP[i]
		r.CP[i] = c.CP[from]
		r.CO[i] = (c.CO[from] + b.CO[i]) % 3
	}
	for i := 0; i < NumEdges; i++ {
		from := b.EP[i]
		r.EP[i] = c.EP[from]
		r.EO[i] = (c.EO[from] + b.EO[i]) % 2
	}
	return r
}

// IsSolved reports whether c is the identity state.
func (c Cube) IsSolved() bool {
	return c == Solved
}

// CornerParity returns 0 for an even corner permutation and 1 for an odd one.
func (c Cube) CornerParity() int {
	s := 0
	for i := NumCorners - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			if c.CP[j] > c.CP[i] {
				s++
			}
		}
	}
	return s % 2
}

// EdgeParity returns 0 for an even edge permutation and 1 for an odd one.
func (c Cube) EdgeParity() int {
	s := 0
	for i := NumEdges - 1; i > 0; i-- {
		for j := i - 1; j >= 0; j-- {
			if c.EP[j] > c.EP[i] {
				s++
			}
		}
	}
	return s % 2
}

// Verify checks the invariants every physically reachable state satisfies.
func (c Cube) Verify() error {
	var cornerSeen [NumCorners]bool
	coSum := 0
	for i := 0; i < NumCorners; i++ {
		if int(c.CP[i]) >= NumCorners || cornerSeen[c.CP[i]] {
			return fmt.Errorf("%w: corner slot %s", ErrNotPermutation, Corner(i))
		}
		cornerSeen[c.CP[i]] = true
		if c.CO[i] > 2 {
			return fmt.Errorf("%w: twist %d at %s", ErrCornerTwist, c.CO[i], Corner(i))
		}
		coSum += int(c.CO[i])
	}
	if coSum%3 != 0 {
		return ErrCornerTwist
	}

	var edgeSeen [NumEdges]bool
	eoSum := 0
	for i := 0; i < NumEdges; i++ {
		if int(c.EP[i]) >= NumEdges || edgeSeen[c.EP[i]] {
			return fmt.Errorf("%w: edge slot %s", ErrNotPermutation, Edge(i))
		}
		edgeSeen[c.EP[i]] = true
		if c.EO[i] > 1 {
			return fmt.Errorf("%w: flip %d at %s", ErrEdgeFlip, c.EO[i], Edge(i))
		}
		eoSum += int(c.EO[i])
	}
	if eoSum%2 != 0 {
		return ErrEdgeFlip
	}

	if c.CornerParity() != c.EdgeParity() {
		return ErrParity
	}
	return nil
}
