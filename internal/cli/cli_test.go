package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/twophase"
	"github.com/SeamusWaldron/twophase/internal/config"
	"github.com/SeamusWaldron/twophase/internal/storage"
)

func TestCubeFromInput(t *testing.T) {
	c, err := cubeFromInput(nil, "R U")
	require.NoError(t, err)
	want := twophase.NewCube()
	want.Apply(twophase.R, twophase.U)
	assert.Equal(t, want.Facelets(), c.Facelets())

	c, err = cubeFromInput([]string{want.Facelets()}, "")
	require.NoError(t, err)
	assert.Equal(t, want.Facelets(), c.Facelets())

	_, err = cubeFromInput(nil, "")
	assert.Error(t, err)
	_, err = cubeFromInput([]string{want.Facelets()}, "R")
	assert.Error(t, err)
	_, err = cubeFromInput(nil, "R Q")
	assert.ErrorIs(t, err, twophase.ErrInvalidNotation)
	_, err = cubeFromInput([]string{"UUU"}, "")
	assert.ErrorIs(t, err, twophase.ErrMalformedInput)
}

func TestReadLayouts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubes.txt")
	solved := twophase.NewCube().Facelets()
	content := "# header\n" + solved + "\n\n  " + solved + "  \nnot a cube\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	layouts, lines, err := readLayouts(path)
	require.NoError(t, err)
	assert.Equal(t, []string{solved, solved, "not a cube"}, layouts)
	assert.Equal(t, []int{2, 4, 5}, lines)

	_, _, err = readLayouts(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestSolveAll(t *testing.T) {
	solver, err := twophase.NewSolver()
	require.NoError(t, err)

	var layouts []string
	for _, scramble := range []string{"R U F", "D2 L' B", "U R2 F' L D2"} {
		c := twophase.NewCube()
		require.NoError(t, c.ApplyNotation(scramble))
		layouts = append(layouts, c.Facelets())
	}
	layouts = append(layouts, "garbage")

	results, err := solveAll(context.Background(), solver, layouts, 2)
	require.NoError(t, err)
	require.Len(t, results, len(layouts))

	for i, r := range results[:3] {
		require.NoError(t, r.err, "layout %d", i)
		c, err := twophase.ParseFacelets(layouts[i])
		require.NoError(t, err)
		c.Apply(r.sol.Moves()...)
		assert.True(t, c.IsSolved(), "layout %d", i)
	}
	assert.ErrorIs(t, results[3].err, twophase.ErrMalformedInput)
}

func TestSolveAllCancelled(t *testing.T) {
	solver, err := twophase.NewSolver()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = solveAll(ctx, solver, []string{twophase.NewCube().Facelets()}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveWithTimeout(t *testing.T) {
	solver, err := twophase.NewSolver()
	require.NoError(t, err)
	c := twophase.NewCube()
	c.Apply(twophase.Superflip...)

	sol, err := solveWithTimeout(solver, c, time.Minute)
	require.NoError(t, err)
	assert.LessOrEqual(t, sol.Len(), twophase.DefaultMaxLength)

	_, err = solveWithTimeout(solver, c, time.Nanosecond)
	if err != nil {
		assert.True(t, errors.Is(err, errTimeout))
	}
}

func TestRecordSolve(t *testing.T) {
	cfg = &config.Config{Solver: config.SolverConfig{MaxLength: 21}}
	db, err := storage.Open(filepath.Join(t.TempDir(), "cli.db"))
	require.NoError(t, err)
	defer db.Close()
	repo := storage.NewSolveRepository(db)

	sol := &twophase.Solution{
		Phase1:  []twophase.Move{twophase.UPrime},
		Phase2:  []twophase.Move{twophase.R2},
		Nodes:   7,
		Elapsed: 1500 * time.Microsecond,
	}
	id, err := recordSolve(repo, "facelets", "R2 U", sol)
	require.NoError(t, err)

	got, err := repo.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "U' R2", got.Solution)
	assert.Equal(t, 1, got.Phase1Len)
	assert.Equal(t, 1, got.Phase2Len)
	assert.Equal(t, 21, got.MaxLength)
	assert.EqualValues(t, 1, got.DurationMs)
	require.NotNil(t, got.ScrambleText)
	assert.Equal(t, "R2 U", *got.ScrambleText)

	id, err = recordSolve(repo, "facelets", "", sol)
	require.NoError(t, err)
	got, err = repo.Get(id)
	require.NoError(t, err)
	assert.Nil(t, got.ScrambleText)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "2.5ms", formatDuration(2500*time.Microsecond))
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2m5.0s", formatDuration(125*time.Second))

	assert.Equal(t, "512 B", formatBytes(512))
	assert.Equal(t, "2.0 KiB", formatBytes(2048))
	assert.Equal(t, "1.5 MiB", formatBytes(3<<19))
}

func TestRenderNet(t *testing.T) {
	lines := strings.Split(strings.TrimRight(renderNet(twophase.NewCube()), "\n"), "\n")
	assert.Len(t, lines, 9)
}

func TestRenderMovesWindow(t *testing.T) {
	moves := make([]twophase.Move, 30)
	for i := range moves {
		moves[i] = twophase.R
	}
	out := renderMoves(moves, 25)
	assert.True(t, strings.HasPrefix(out, "..."))
	assert.Equal(t, 20, strings.Count(out, "R"))

	assert.Empty(t, renderMoves(nil, 0))
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPlayModelSteps(t *testing.T) {
	start := twophase.NewCube()
	start.Apply(twophase.R, twophase.U)
	sol := &twophase.Solution{Phase1: []twophase.Move{twophase.UPrime, twophase.RPrime}}
	m := newPlayModel(start, sol, time.Second)

	m.Update(key("n"))
	assert.Equal(t, 1, m.index)
	m.Update(key("right"))
	assert.True(t, m.cube.IsSolved())

	m.Update(key("n"))
	assert.Equal(t, 2, m.index, "stepping past the end is a no-op")

	m.Update(key("left"))
	assert.Equal(t, 1, m.index)
	assert.False(t, m.cube.IsSolved())

	m.Update(key("r"))
	assert.Equal(t, 0, m.index)
	assert.Equal(t, start.Facelets(), m.cube.Facelets())
	assert.Contains(t, m.View(), "Move 0/2")
}

func TestPlayModelAutoplay(t *testing.T) {
	start := twophase.NewCube()
	start.Apply(twophase.F2, twophase.D)
	sol := &twophase.Solution{Phase2: []twophase.Move{twophase.DPrime, twophase.F2}}
	m := newPlayModel(start, sol, time.Second)

	_, cmd := m.Update(key("p"))
	require.NotNil(t, cmd)
	assert.True(t, m.playing)

	// Ticks from before a pause are ignored.
	stale := playTickMsg{seq: m.seq - 1}
	m.Update(stale)
	assert.Equal(t, 0, m.index)

	_, cmd = m.Update(playTickMsg{seq: m.seq})
	assert.NotNil(t, cmd)
	_, cmd = m.Update(playTickMsg{seq: m.seq})
	assert.Nil(t, cmd)
	assert.False(t, m.playing)
	assert.True(t, m.cube.IsSolved())
	assert.Contains(t, m.View(), "Solved")
}
