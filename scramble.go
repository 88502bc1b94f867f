package twophase

import (
	"math/rand/v2"

	"github.com/SeamusWaldron/twophase/internal/cubie"
)

// Scramble returns n random moves. No move turns the same face as the one
// before it, and opposite faces appear in only one order.
func Scramble(rng *rand.Rand, n int) []Move {
	if n < 0 {
		n = 0
	}
	seq := make([]cubie.Move, 0, n)
	for len(seq) < n {
		m := cubie.Move(rng.IntN(cubie.NumMoves))
		if k := len(seq); k > 0 && !cubie.CanFollow(seq[k-1], m) {
			continue
		}
		seq = append(seq, m)
	}
	return fromCubieMoves(seq)
}
