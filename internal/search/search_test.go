package search

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/twophase/internal/coord"
	"github.com/SeamusWaldron/twophase/internal/cubie"
	"github.com/SeamusWaldron/twophase/internal/tables"
)

var (
	tablesOnce sync.Once
	shared     *tables.Tables
	sharedErr  error
)

func testTables(t *testing.T) *tables.Tables {
	t.Helper()
	tablesOnce.Do(func() {
		shared, sharedErr = tables.Build(context.Background(), nil)
	})
	require.NoError(t, sharedErr)
	return shared
}

func scramble(rng *rand.Rand, n int) []cubie.Move {
	seq := make([]cubie.Move, 0, n)
	for len(seq) < n {
		m := cubie.AllMoves[rng.IntN(cubie.NumMoves)]
		if k := len(seq); k > 0 && !cubie.CanFollow(seq[k-1], m) {
			continue
		}
		seq = append(seq, m)
	}
	return seq
}

func TestSolveSolved(t *testing.T) {
	sol, ok := New(testTables(t), cubie.Solved, 23).Solve()
	require.True(t, ok)
	assert.Empty(t, sol.Phase1)
	assert.Empty(t, sol.Phase2)
	assert.Zero(t, sol.Len())
	assert.Equal(t, "", sol.String())
}

func TestSolveSolvedWithZeroBudget(t *testing.T) {
	_, ok := New(testTables(t), cubie.Solved, 0).Solve()
	assert.True(t, ok)
}

func TestSolveSingleMove(t *testing.T) {
	tb := testTables(t)
	for _, m := range cubie.AllMoves {
		t.Run(m.String(), func(t *testing.T) {
			sol, ok := New(tb, cubie.Solved.Move(m), 23).Solve()
			require.True(t, ok)
			assert.Equal(t, []cubie.Move{m.Inverse()}, sol.Moves())
		})
	}
}

func TestSolveMergesSameFaceAtPhaseBoundary(t *testing.T) {
	sol, ok := New(testTables(t), cubie.Solved.Move(cubie.R), 23).Solve()
	require.True(t, ok)
	assert.Equal(t, []cubie.Move{cubie.RPrime}, sol.Phase1)
	assert.Empty(t, sol.Phase2)
}

func TestSolveOrdersOppositeFacesAtPhaseBoundary(t *testing.T) {
	tests := []struct {
		scramble []cubie.Move
		want     []cubie.Move
	}{
		{[]cubie.Move{cubie.R2, cubie.L}, []cubie.Move{cubie.R2, cubie.LPrime}},
		{[]cubie.Move{cubie.D2, cubie.B}, []cubie.Move{cubie.D2, cubie.BPrime}},
	}
	tb := testTables(t)
	for _, tt := range tests {
		c := cubie.Solved.Apply(tt.scramble...)
		sol, ok := New(tb, c, 23).Solve()
		require.True(t, ok, "scramble %v", tt.scramble)
		assert.Equal(t, tt.want, sol.Moves(), "scramble %v", tt.scramble)
		assert.Equal(t, tt.want, sol.Phase1, "scramble %v", tt.scramble)
		assert.Empty(t, sol.Phase2, "scramble %v", tt.scramble)
		assert.True(t, c.Apply(sol.Moves()...).IsSolved(), "scramble %v", tt.scramble)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []cubie.Move
		want []cubie.Move
	}{
		{"empty", nil, []cubie.Move{}},
		{"already ordered", []cubie.Move{cubie.R, cubie.L2, cubie.U}, []cubie.Move{cubie.R, cubie.L2, cubie.U}},
		{"same face", []cubie.Move{cubie.F, cubie.F2}, []cubie.Move{cubie.FPrime}},
		{"cancel", []cubie.Move{cubie.U, cubie.R, cubie.RPrime, cubie.D}, []cubie.Move{cubie.U, cubie.D}},
		{"opposite out of order", []cubie.Move{cubie.L, cubie.R2}, []cubie.Move{cubie.R2, cubie.L}},
		{"opposite then same face", []cubie.Move{cubie.L, cubie.R2, cubie.L2}, []cubie.Move{cubie.R2, cubie.LPrime}},
		{"commute into merge", []cubie.Move{cubie.R, cubie.L, cubie.R2}, []cubie.Move{cubie.RPrime, cubie.L}},
		{"commute into cancel", []cubie.Move{cubie.U, cubie.R2, cubie.L, cubie.R2}, []cubie.Move{cubie.U, cubie.L}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, cubie.Solved.Apply(tt.in...), cubie.Solved.Apply(got...))
		})
	}
}

func TestSolveSubgroupStateSkipsPhase1(t *testing.T) {
	c := cubie.Solved.Apply(cubie.U, cubie.R2, cubie.DPrime, cubie.F2)
	require.True(t, coord.InSubgroup(c))

	sol, ok := New(testTables(t), c, 23).Solve()
	require.True(t, ok)
	assert.Empty(t, sol.Phase1)
	assert.True(t, c.Apply(sol.Moves()...).IsSolved())
	assert.LessOrEqual(t, sol.Len(), 4)
}

func TestSolveRandomScrambles(t *testing.T) {
	tb := testTables(t)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 8; i++ {
		seq := scramble(rng, 1+rng.IntN(25))
		c := cubie.Solved.Apply(seq...)

		s := New(tb, c, 23)
		sol, ok := s.Solve()
		require.True(t, ok, "scramble %v", seq)
		assert.LessOrEqual(t, sol.Len(), 23)
		assert.True(t, c.Apply(sol.Moves()...).IsSolved(), "scramble %v, solution %s", seq, sol)
		assert.Positive(t, s.Nodes())

		moves := sol.Moves()
		for j := 1; j < len(moves); j++ {
			assert.True(t, cubie.CanFollow(moves[j-1], moves[j]), "solution %s", sol)
		}
		for _, m := range sol.Phase2 {
			assert.True(t, m.IsPhase2(), "solution %s", sol)
		}
	}
}

func TestSolveIsDeterministic(t *testing.T) {
	tb := testTables(t)
	c := cubie.Solved.Apply(scramble(rand.New(rand.NewPCG(7, 7)), 20)...)

	first, ok := New(tb, c, 23).Solve()
	require.True(t, ok)
	for i := 0; i < 3; i++ {
		again, ok := New(tb, c, 23).Solve()
		require.True(t, ok)
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("solution changed (-first +again):\n%s", diff)
		}
	}
}

func TestSolveBudgetTooSmall(t *testing.T) {
	c := cubie.Solved.Apply(cubie.R, cubie.U, cubie.F)
	_, ok := New(testTables(t), c, 2).Solve()
	assert.False(t, ok)

	_, ok = New(testTables(t), c, -1).Solve()
	assert.False(t, ok)
}

func TestSolutionDoesNotAliasScratch(t *testing.T) {
	c := cubie.Solved.Apply(cubie.R, cubie.U2, cubie.FPrime, cubie.L)
	s := New(testTables(t), c, 23)
	sol, ok := s.Solve()
	require.True(t, ok)

	want := sol.String()
	s.phase1 = append(s.phase1[:0], cubie.B, cubie.B, cubie.B)
	s.phase2 = append(s.phase2[:0], cubie.D, cubie.D, cubie.D)
	assert.Equal(t, want, sol.String())
}

func TestConcurrentSolvesShareTables(t *testing.T) {
	defer goleak.VerifyNone(t)
	tb := testTables(t)

	rng := rand.New(rand.NewPCG(3, 4))
	cubes := make([]cubie.Cube, 8)
	for i := range cubes {
		cubes[i] = cubie.Solved.Apply(scramble(rng, 18)...)
	}

	solutions := make([]Solution, len(cubes))
	var g errgroup.Group
	for i, c := range cubes {
		g.Go(func() error {
			sol, ok := New(tb, c, 23).Solve()
			if !ok {
				t.Errorf("cube %d not solved", i)
			}
			solutions[i] = sol
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for i, c := range cubes {
		assert.True(t, c.Apply(solutions[i].Moves()...).IsSolved(), "cube %d", i)
		serial, _ := New(tb, c, 23).Solve()
		assert.Empty(t, cmp.Diff(serial, solutions[i]), "cube %d", i)
	}
}
