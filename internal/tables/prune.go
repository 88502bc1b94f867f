package tables

import (
	"context"
	"fmt"

	"github.com/SeamusWaldron/twophase/internal/cubie"
)

// unvisited marks a pair the breadth-first layering has not reached yet.
const unvisited = 0xFF

// PruningTable stores, for every pair of coordinate values, the number of
// moves needed to bring both to zero. The distance never exceeds the true
// remaining distance of any cube state projecting onto that pair.
type PruningTable struct {
	name string
	a, b *MoveTable
	nb   int
	data []uint8
}

// Name identifies the table in logs.
func (p *PruningTable) Name() string {
	return p.name
}

// Distance returns the lower bound for the pair (i, j).
func (p *PruningTable) Distance(i, j int) int {
	return int(p.data[i*p.nb+j])
}

// Depth returns the largest distance stored in the table.
func (p *PruningTable) Depth() int {
	depth := 0
	for _, v := range p.data {
		if int(v) > depth {
			depth = int(v)
		}
	}
	return depth
}

// buildPruningTable layers the product space of a and b breadth first from
// the solved pair (0, 0) using only the given moves.
func buildPruningTable(ctx context.Context, name string, a, b *MoveTable, moves []cubie.Move) (*PruningTable, error) {
	nb := b.kind.Size()
	size := a.kind.Size() * nb
	data := make([]uint8, size)
	for i := range data {
		data[i] = unvisited
	}

	data[0] = 0
	frontier := []uint32{0}
	visited := 1
	for depth := uint8(0); len(frontier) > 0; depth++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var next []uint32
		for _, idx := range frontier {
			i, j := int(idx)/nb, int(idx)%nb
			for _, m := range moves {
				k := a.Apply(i, m)*nb + b.Apply(j, m)
				if data[k] == unvisited {
					data[k] = depth + 1
					next = append(next, uint32(k))
				}
			}
		}
		visited += len(next)
		frontier = next
	}

	if visited != size {
		panic(fmt.Sprintf("tables: %s reached %d of %d pairs", name, visited, size))
	}
	return &PruningTable{name: name, a: a, b: b, nb: nb, data: data}, nil
}
