// Package coord ranks parts of a cube state into dense integers used as
// table indices. Every encoder maps the solved state to 0.
package coord

import "github.com/SeamusWaldron/twophase/internal/cubie"

// Kind identifies one of the coordinates.
type Kind uint8

const (
	CornerTwist   Kind = iota // co_index
	EdgeFlip                  // eo_index
	SliceCombo                // e_combo_index
	CornerPerm                // cp_index
	UDEdgePerm                // ud_ep_index, meaningful inside the reduced subgroup only
	SliceEdgePerm             // e_ep_index, meaningful inside the reduced subgroup only
)

// NumKinds is the number of coordinate kinds.
const NumKinds = 6

// Coordinate sizes.
const (
	NumCornerTwist   = 2187  // 3^7
	NumEdgeFlip      = 2048  // 2^11
	NumSliceCombo    = 495   // C(12,4)
	NumCornerPerm    = 40320 // 8!
	NumUDEdgePerm    = 40320 // 8!
	NumSliceEdgePerm = 24    // 4!
)

var kindSizes = [NumKinds]int{
	NumCornerTwist, NumEdgeFlip, NumSliceCombo,
	NumCornerPerm, NumUDEdgePerm, NumSliceEdgePerm,
}

var kindNames = [NumKinds]string{
	"corner_twist", "edge_flip", "slice_combo",
	"corner_perm", "ud_edge_perm", "slice_edge_perm",
}

// Size returns the number of values the coordinate can take.
func (k Kind) Size() int {
	return kindSizes[k]
}

func (k Kind) String() string {
	if int(k) < NumKinds {
		return kindNames[k]
	}
	return "unknown"
}

// Encode returns the coordinate of c.
func (k Kind) Encode(c cubie.Cube) int {
	switch k {
	case CornerTwist:
		return CornerTwistIndex(c.CO)
	case EdgeFlip:
		return EdgeFlipIndex(c.EO)
	case SliceCombo:
		return SliceComboIndex(c.EP)
	case CornerPerm:
		return CornerPermIndex(c.CP)
	case UDEdgePerm:
		return UDEdgePermIndex(c.EP)
	case SliceEdgePerm:
		return SliceEdgePermIndex(c.EP)
	}
	panic("coord: unknown kind")
}

// CornerTwistIndex encodes the first seven corner twists in base 3; the
// eighth follows from the twist-sum invariant.
func CornerTwistIndex(co [cubie.NumCorners]uint8) int {
	idx := 0
	for i := 0; i < cubie.NumCorners-1; i++ {
		idx = idx*3 + int(co[i])
	}
	return idx
}

// EdgeFlipIndex encodes the first eleven edge flips in base 2.
func EdgeFlipIndex(eo [cubie.NumEdges]uint8) int {
	idx := 0
	for i := 0; i < cubie.NumEdges-1; i++ {
		idx = idx*2 + int(eo[i])
	}
	return idx
}

// SliceComboIndex ranks the set of slots holding the four slice edges,
// ignoring their order. Slots are scanned from BR down so the solved set
// (FR, FL, BL, BR in slots 8..11) ranks 0.
func SliceComboIndex(ep [cubie.NumEdges]cubie.Edge) int {
	idx, seen := 0, 0
	for j := cubie.NumEdges - 1; j >= 0; j-- {
		if ep[j].IsSlice() {
			idx += binomial(cubie.NumEdges-1-j, seen+1)
			seen++
		}
	}
	return idx
}

// CornerPermIndex ranks the corner permutation.
func CornerPermIndex(cp [cubie.NumCorners]cubie.Corner) int {
	var p [cubie.NumCorners]int
	for i, c := range cp {
		p[i] = int(c)
	}
	return rank(p[:])
}

// UDEdgePermIndex ranks the permutation of the eight U and D layer edges.
// The caller guarantees slots 0..7 hold those edges.
func UDEdgePermIndex(ep [cubie.NumEdges]cubie.Edge) int {
	var p [8]int
	for i := 0; i < 8; i++ {
		p[i] = int(ep[i])
	}
	return rank(p[:])
}

// SliceEdgePermIndex ranks the order of the four slice edges. The caller
// guarantees slots 8..11 hold them.
func SliceEdgePermIndex(ep [cubie.NumEdges]cubie.Edge) int {
	var p [4]int
	for i := 0; i < 4; i++ {
		p[i] = int(ep[8+i]) - int(cubie.FR)
	}
	return rank(p[:])
}

// rank returns the Lehmer rank of a permutation of 0..len(p)-1.
func rank(p []int) int {
	n := len(p)
	idx := 0
	for i := 0; i < n; i++ {
		smaller := 0
		for j := i + 1; j < n; j++ {
			if p[j] < p[i] {
				smaller++
			}
		}
		idx += smaller * factorial[n-1-i]
	}
	return idx
}

var factorial = [...]int{1, 1, 2, 6, 24, 120, 720, 5040, 40320}

func binomial(n, k int) int {
	if k < 0 || n < k {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	r := 1
	for i := 0; i < k; i++ {
		r = r * (n - i) / (i + 1)
	}
	return r
}

// Phase1 holds the three coordinates whose common zero is the reduced
// subgroup.
type Phase1 struct {
	Twist, Flip, Slice int
}

// NewPhase1 projects c onto the phase-1 coordinates.
func NewPhase1(c cubie.Cube) Phase1 {
	return Phase1{
		Twist: CornerTwistIndex(c.CO),
		Flip:  EdgeFlipIndex(c.EO),
		Slice: SliceComboIndex(c.EP),
	}
}

// Done reports whether the state lies in the reduced subgroup.
func (p Phase1) Done() bool {
	return p.Twist == 0 && p.Flip == 0 && p.Slice == 0
}

// Phase2 holds the three permutation coordinates used inside the subgroup.
type Phase2 struct {
	Corners, Edges, Slice int
}

// NewPhase2 projects c onto the phase-2 coordinates. c must lie in the
// reduced subgroup.
func NewPhase2(c cubie.Cube) Phase2 {
	return Phase2{
		Corners: CornerPermIndex(c.CP),
		Edges:   UDEdgePermIndex(c.EP),
		Slice:   SliceEdgePermIndex(c.EP),
	}
}

// Done reports whether the state is solved.
func (p Phase2) Done() bool {
	return p.Corners == 0 && p.Edges == 0 && p.Slice == 0
}

// InSubgroup reports whether c lies in the reduced subgroup.
func InSubgroup(c cubie.Cube) bool {
	return NewPhase1(c).Done()
}
