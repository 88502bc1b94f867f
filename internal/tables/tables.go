// Package tables builds the move and pruning tables the two-phase search
// consumes. Tables are built once and never modified afterwards, so one
// *Tables may be shared by any number of concurrent searches.
package tables

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/twophase/internal/coord"
	"github.com/SeamusWaldron/twophase/internal/cubie"
)

// Tables bundles every table the search needs.
type Tables struct {
	moves [coord.NumKinds]*MoveTable

	// Phase 1: corner twist x slice combo, edge flip x slice combo.
	TwistSlice *PruningTable
	FlipSlice  *PruningTable

	// Phase 2: corner perm x slice perm, U/D edge perm x slice perm.
	CornerSlice *PruningTable
	EdgeSlice   *PruningTable
}

// Move returns the move table of coordinate k.
func (t *Tables) Move(k coord.Kind) *MoveTable {
	return t.moves[k]
}

// Pruning returns the four pruning tables, phase 1 first.
func (t *Tables) Pruning() []*PruningTable {
	return []*PruningTable{t.TwistSlice, t.FlipSlice, t.CornerSlice, t.EdgeSlice}
}

// pruneSpec describes one pruning table.
type pruneSpec struct {
	name  string
	a, b  coord.Kind
	moves []cubie.Move
}

var pruneSpecs = [4]pruneSpec{
	{"twist_slice", coord.CornerTwist, coord.SliceCombo, cubie.AllMoves[:]},
	{"flip_slice", coord.EdgeFlip, coord.SliceCombo, cubie.AllMoves[:]},
	{"corner_slice", coord.CornerPerm, coord.SliceEdgePerm, cubie.Phase2Moves},
	{"edge_slice", coord.UDEdgePerm, coord.SliceEdgePerm, cubie.Phase2Moves},
}

// Build constructs every table. Independent tables are built concurrently;
// the only error is ctx being done.
func Build(ctx context.Context, log *zap.Logger) (*Tables, error) {
	if log == nil {
		log = zap.NewNop()
	}
	start := time.Now()
	t := &Tables{}

	g, gctx := errgroup.WithContext(ctx)
	for k := coord.Kind(0); k < coord.NumKinds; k++ {
		g.Go(func() error {
			began := time.Now()
			mt, err := buildMoveTable(gctx, k)
			if err != nil {
				return err
			}
			t.moves[k] = mt
			log.Debug("move table built",
				zap.String("kind", k.String()),
				zap.Int("size", k.Size()),
				zap.Duration("elapsed", time.Since(began)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var pruning [len(pruneSpecs)]*PruningTable
	g, gctx = errgroup.WithContext(ctx)
	for i, spec := range pruneSpecs {
		g.Go(func() error {
			began := time.Now()
			pt, err := buildPruningTable(gctx, spec.name, t.moves[spec.a], t.moves[spec.b], spec.moves)
			if err != nil {
				return err
			}
			pruning[i] = pt
			log.Debug("pruning table built",
				zap.String("table", spec.name),
				zap.Int("size", len(pt.data)),
				zap.Int("depth", pt.Depth()),
				zap.Duration("elapsed", time.Since(began)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	t.TwistSlice, t.FlipSlice, t.CornerSlice, t.EdgeSlice = pruning[0], pruning[1], pruning[2], pruning[3]

	log.Info("tables built", zap.Duration("elapsed", time.Since(start)))
	return t, nil
}
