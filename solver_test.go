package twophase

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/sync/errgroup"
)

func TestNewSolverRejectsNegativeMaxLength(t *testing.T) {
	_, err := NewSolver(WithMaxLength(-1))
	assert.ErrorIs(t, err, ErrInvalidMaxLength)

	s, err := NewSolver()
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxLength, s.MaxLength())
}

func TestSolveSolvedCube(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)

	sol, err := s.Solve(NewCube().Facelets())
	require.NoError(t, err)
	assert.Zero(t, sol.Len())
	assert.Empty(t, sol.Phase1)
	assert.Empty(t, sol.Phase2)
	assert.Equal(t, "", sol.String())
}

func TestSolveKnownLayout(t *testing.T) {
	const layout = "DRLUUBFBRBLURRLRUBLRDDFDLFUFUFFDBRDUBRUFLLFDDBFLUBLRBD"

	s, err := NewSolver(WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	sol, err := s.Solve(layout)
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.Len(), DefaultMaxLength)

	c, err := ParseFacelets(layout)
	require.NoError(t, err)
	c.Apply(sol.Moves()...)
	assert.True(t, c.IsSolved(), "solution %s", sol)
}

func TestSolveSingleMoves(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)
	for _, m := range AllMoves {
		c := NewCube()
		c.Apply(m)
		sol, err := s.SolveCube(c)
		require.NoError(t, err)
		assert.Equal(t, []Move{m.Inverse()}, sol.Moves(), m.Notation())
	}
}

func TestSolveRandomCubes(t *testing.T) {
	s, err := NewSolver(WithMaxLength(21), WithTables(DefaultTables()))
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(2024, 10))
	for i := 0; i < 5; i++ {
		c := NewCube()
		c.Apply(Scramble(rng, 25)...)
		before := c.Facelets()

		sol, err := s.SolveCube(c)
		require.NoError(t, err)
		assert.Equal(t, before, c.Facelets(), "SolveCube must not modify its input")

		c.Apply(sol.Moves()...)
		assert.True(t, c.IsSolved(), "solution %s", sol)
		assert.LessOrEqual(t, sol.Len(), 21)
	}
}

func TestSolveReportsInputErrors(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)

	_, err = s.Solve("UUU")
	assert.ErrorIs(t, err, ErrMalformedInput)

	solved := NewCube().Facelets()
	_, err = s.Solve(solved[:7] + "F" + solved[8:19] + "U" + solved[20:])
	assert.ErrorIs(t, err, ErrInvalidCubeState)
}

func TestSolveNoSolution(t *testing.T) {
	s, err := NewSolver(WithMaxLength(3))
	require.NoError(t, err)

	c := NewCube()
	c.Apply(SexyMove...)
	_, err = s.SolveCube(c)
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestSolutionSteps(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)

	c := NewCube()
	c.Apply(R2)
	sol, err := s.SolveCube(c)
	require.NoError(t, err)
	assert.Equal(t, []Step{{AxisX, 2, Clockwise, 2}}, sol.Steps(false))
	assert.Len(t, sol.Steps(true), 2)
}

func TestTablesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	n, err := DefaultTables().WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	loaded, err := ReadTables(&buf)
	require.NoError(t, err)

	s, err := NewSolver(WithTables(loaded))
	require.NoError(t, err)
	c := NewCube()
	c.Apply(TPerm...)
	sol, err := s.SolveCube(c)
	require.NoError(t, err)
	c.Apply(sol.Moves()...)
	assert.True(t, c.IsSolved())
}

func TestReadTablesRejectsGarbage(t *testing.T) {
	_, err := ReadTables(bytes.NewReader([]byte("not tables")))
	assert.Error(t, err)
}

func TestBuildTablesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := BuildTables(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolverIsSafeForConcurrentUse(t *testing.T) {
	s, err := NewSolver()
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(5, 6))
	cubes := make([]*Cube, 6)
	for i := range cubes {
		cubes[i] = NewCube()
		cubes[i].Apply(Scramble(rng, 20)...)
	}

	var g errgroup.Group
	for _, c := range cubes {
		g.Go(func() error {
			sol, err := s.SolveCube(c)
			if err != nil {
				return err
			}
			check := c.Clone()
			check.Apply(sol.Moves()...)
			if !check.IsSolved() {
				t.Errorf("solution %s does not solve %s", sol, c.Facelets())
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
