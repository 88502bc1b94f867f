// Package search runs the two-phase iterative-deepening search over the
// precomputed tables.
//
// Phase 1 reduces the cube to the subgroup where every piece is oriented and
// the four slice edges sit in the middle slice. Phase 2 solves the cube inside
// that subgroup using only the moves that keep it closed. Both phases are
// exact-depth depth-first searches pruned by table lower bounds, with the
// depth raised one at a time. The first complete solution within the budget
// is returned.
package search

import (
	"slices"
	"strings"

	"github.com/SeamusWaldron/twophase/internal/coord"
	"github.com/SeamusWaldron/twophase/internal/cubie"
	"github.com/SeamusWaldron/twophase/internal/tables"
)

// Solution is a phase-1 move sequence followed by a phase-2 move sequence.
// It shares no memory with the Solver that produced it.
type Solution struct {
	Phase1 []cubie.Move
	Phase2 []cubie.Move
}

// Len returns the total number of moves.
func (s Solution) Len() int {
	return len(s.Phase1) + len(s.Phase2)
}

// Moves returns both phases as one sequence.
func (s Solution) Moves() []cubie.Move {
	return slices.Concat(s.Phase1, s.Phase2)
}

func (s Solution) String() string {
	moves := s.Moves()
	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.String()
	}
	return strings.Join(parts, " ")
}

// Solver holds the scratch state of one search. It is not safe for
// concurrent use; create one per solve.
type Solver struct {
	t         *tables.Tables
	cube      cubie.Cube
	maxLength int

	phase1 []cubie.Move
	phase2 []cubie.Move

	nodes    int
	solution Solution
}

// New prepares a search for c using at most maxLength moves. c must satisfy
// the cubie invariants.
func New(t *tables.Tables, c cubie.Cube, maxLength int) *Solver {
	return &Solver{
		t:         t,
		cube:      c,
		maxLength: maxLength,
		phase1:    make([]cubie.Move, 0, maxLength+1),
		phase2:    make([]cubie.Move, 0, maxLength+1),
	}
}

// Nodes returns the number of search nodes visited so far.
func (s *Solver) Nodes() int {
	return s.nodes
}

// Solve runs the search. The boolean is false when no solution of at most
// maxLength moves was found.
func (s *Solver) Solve() (Solution, bool) {
	if s.maxLength < 0 {
		return Solution{}, false
	}
	p := coord.NewPhase1(s.cube)
	for depth := 0; depth <= s.maxLength; depth++ {
		if s.searchPhase1(p.Twist, p.Flip, p.Slice, depth) {
			return s.solution, true
		}
	}
	return Solution{}, false
}

func (s *Solver) searchPhase1(twist, flip, slice, depth int) bool {
	s.nodes++
	if depth == 0 {
		if twist != 0 || flip != 0 || slice != 0 {
			return false
		}
		// A sequence ending in a subgroup move already reached the
		// subgroup one move earlier.
		if n := len(s.phase1); n > 0 && s.phase1[n-1].IsPhase2() {
			return false
		}
		return s.startPhase2()
	}

	h := max(s.t.TwistSlice.Distance(twist, slice), s.t.FlipSlice.Distance(flip, slice))
	if h > depth {
		return false
	}

	twists := s.t.Move(coord.CornerTwist)
	flips := s.t.Move(coord.EdgeFlip)
	combos := s.t.Move(coord.SliceCombo)
	for _, m := range cubie.AllMoves {
		if n := len(s.phase1); n > 0 && !cubie.CanFollow(s.phase1[n-1], m) {
			continue
		}
		s.phase1 = append(s.phase1, m)
		ok := s.searchPhase1(twists.Apply(twist, m), flips.Apply(flip, m), combos.Apply(slice, m), depth-1)
		s.phase1 = s.phase1[:len(s.phase1)-1]
		if ok {
			return true
		}
	}
	return false
}

func (s *Solver) startPhase2() bool {
	p := coord.NewPhase2(s.cube.Apply(s.phase1...))
	budget := s.maxLength - len(s.phase1)
	for depth := 0; depth <= budget; depth++ {
		if s.searchPhase2(p.Corners, p.Edges, p.Slice, depth) {
			return true
		}
	}
	return false
}

func (s *Solver) searchPhase2(corners, edges, slice, depth int) bool {
	s.nodes++
	if depth == 0 {
		if corners != 0 || edges != 0 || slice != 0 {
			return false
		}
		s.record()
		return true
	}

	h := max(s.t.CornerSlice.Distance(corners, slice), s.t.EdgeSlice.Distance(edges, slice))
	if h > depth {
		return false
	}

	cps := s.t.Move(coord.CornerPerm)
	eps := s.t.Move(coord.UDEdgePerm)
	seps := s.t.Move(coord.SliceEdgePerm)
	for _, m := range cubie.Phase2Moves {
		if n := len(s.phase2); n > 0 && !cubie.CanFollow(s.phase2[n-1], m) {
			continue
		}
		s.phase2 = append(s.phase2, m)
		ok := s.searchPhase2(cps.Apply(corners, m), eps.Apply(edges, m), seps.Apply(slice, m), depth-1)
		s.phase2 = s.phase2[:len(s.phase2)-1]
		if ok {
			return true
		}
	}
	return false
}

// record copies the current paths into the solution. The phase-1 search
// never sees the first phase-2 move, so the joined sequence can repeat a face
// or turn an opposite pair out of order at the boundary. Both are folded away
// by normalize, and the phases are split again after the last move that is
// not a phase-2 move. Everything after that point only uses phase-2 moves and
// ends solved, so the cube after the new phase 1 is still in the subgroup.
func (s *Solver) record() {
	moves := normalize(slices.Concat(s.phase1, s.phase2))
	split := 0
	for i, m := range moves {
		if !m.IsPhase2() {
			split = i + 1
		}
	}
	s.solution = Solution{
		Phase1: moves[:split:split],
		Phase2: slices.Clone(moves[split:]),
	}
}

// normalize rewrites moves so that every adjacent pair satisfies
// cubie.CanFollow. Turns of one face are merged, and a turn that commutes
// with the opposite face just before it is moved ahead of that turn. The
// result is never longer than the input.
func normalize(moves []cubie.Move) []cubie.Move {
	out := make([]cubie.Move, 0, len(moves))
	for _, m := range moves {
		n := len(out)
		switch {
		case n > 0 && out[n-1].Face() == m.Face():
			out = mergeAt(out, n-1, m)
		case n > 0 && !cubie.CanFollow(out[n-1], m):
			// m sorts before the opposite face at the top and commutes with it.
			if n > 1 && out[n-2].Face() == m.Face() {
				out = mergeAt(out, n-2, m)
			} else {
				out = slices.Insert(out, n-1, m)
			}
		default:
			out = append(out, m)
		}
	}
	return out
}

// mergeAt adds m to the turn at out[i], which is on the same face, dropping
// it when the two cancel.
func mergeAt(out []cubie.Move, i int, m cubie.Move) []cubie.Move {
	power := (out[i].Power() + m.Power()) % 4
	if power == 0 {
		return slices.Delete(out, i, i+1)
	}
	out[i] = cubie.NewMove(m.Face(), power)
	return out
}
