package tables

import (
	"context"
	"fmt"

	"github.com/SeamusWaldron/twophase/internal/coord"
	"github.com/SeamusWaldron/twophase/internal/cubie"
)

// noEntry marks a (coordinate, move) pair the table does not define: moves
// outside the phase-2 set for the two subgroup-only coordinates.
const noEntry = 0xFFFF

// MoveTable maps (coordinate value, move) to the coordinate value after the
// move.
type MoveTable struct {
	kind coord.Kind
	data []uint16
}

// Kind returns the coordinate the table transforms.
func (t *MoveTable) Kind() coord.Kind {
	return t.kind
}

// Apply returns the coordinate reached from c by m.
func (t *MoveTable) Apply(c int, m cubie.Move) int {
	return int(t.data[c*cubie.NumMoves+int(m)])
}

// movesFor returns the moves a coordinate is defined under.
func movesFor(k coord.Kind) []cubie.Move {
	switch k {
	case coord.UDEdgePerm, coord.SliceEdgePerm:
		return cubie.Phase2Moves
	}
	return cubie.AllMoves[:]
}

// buildMoveTable explores cube states breadth first from the solved state.
// Each coordinate value is expanded from the first state that reached it,
// so no unranking is needed.
func buildMoveTable(ctx context.Context, k coord.Kind) (*MoveTable, error) {
	size := k.Size()
	moves := movesFor(k)

	data := make([]uint16, size*cubie.NumMoves)
	for i := range data {
		data[i] = noEntry
	}
	seen := make([]bool, size)

	if idx := k.Encode(cubie.Solved); idx != 0 {
		panic(fmt.Sprintf("tables: %s of solved cube is %d", k, idx))
	}
	queue := make([]cubie.Cube, 1, size)
	queue[0] = cubie.Solved
	seen[0] = true

	for head := 0; head < len(queue); head++ {
		if head%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		c := queue[head]
		src := k.Encode(c)
		for _, m := range moves {
			next := c.Move(m)
			dst := k.Encode(next)
			if dst < 0 || dst >= size {
				panic(fmt.Sprintf("tables: %s index %d out of range [0,%d)", k, dst, size))
			}
			data[src*cubie.NumMoves+int(m)] = uint16(dst)
			if !seen[dst] {
				seen[dst] = true
				queue = append(queue, next)
			}
		}
	}

	if len(queue) != size {
		panic(fmt.Sprintf("tables: %s reached %d of %d values", k, len(queue), size))
	}
	return &MoveTable{kind: k, data: data}, nil
}
