package twophase

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/twophase/internal/search"
)

// Solver finds solutions with the two-phase algorithm. A Solver holds only
// configuration and immutable tables, so it is safe for concurrent use.
//
// A solve runs to completion on the calling goroutine; it can take from
// microseconds to seconds. Callers needing a timeout should run it on its
// own goroutine and stop waiting.
type Solver struct {
	cfg *config
}

// NewSolver creates a solver. Without WithTables, the first solve builds
// DefaultTables.
func NewSolver(opts ...Option) (*Solver, error) {
	cfg := newConfig(opts)
	if cfg.maxLength < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidMaxLength, cfg.maxLength)
	}
	return &Solver{cfg: cfg}, nil
}

// MaxLength returns the configured move budget.
func (s *Solver) MaxLength() int {
	return s.cfg.maxLength
}

// Solve solves a 54-sticker layout. Layout errors are reported as by
// ParseFacelets, before any search. If no solution fits the budget the error
// is ErrNoSolution.
func (s *Solver) Solve(facelets string) (*Solution, error) {
	c, err := ParseFacelets(facelets)
	if err != nil {
		return nil, err
	}
	return s.SolveCube(c)
}

// SolveCube solves c. c is not modified.
func (s *Solver) SolveCube(c *Cube) (*Solution, error) {
	t := s.cfg.tables
	if t == nil {
		t = DefaultTables()
	}

	start := time.Now()
	engine := search.New(t.t, c.state, s.cfg.maxLength)
	found, ok := engine.Solve()
	elapsed := time.Since(start)

	if !ok {
		s.cfg.logger.Debug("no solution",
			zap.Int("max_length", s.cfg.maxLength),
			zap.Int("nodes", engine.Nodes()),
			zap.Duration("elapsed", elapsed))
		return nil, fmt.Errorf("%w: budget %d", ErrNoSolution, s.cfg.maxLength)
	}

	sol := &Solution{
		Phase1:  fromCubieMoves(found.Phase1),
		Phase2:  fromCubieMoves(found.Phase2),
		Nodes:   engine.Nodes(),
		Elapsed: elapsed,
	}
	s.cfg.logger.Debug("solved",
		zap.Int("phase1", len(sol.Phase1)),
		zap.Int("phase2", len(sol.Phase2)),
		zap.Int("nodes", sol.Nodes),
		zap.Duration("elapsed", elapsed))
	return sol, nil
}

// Solution is a phase-1 move sequence followed by a phase-2 move sequence.
// Applying Moves to the input cube solves it.
type Solution struct {
	Phase1 []Move
	Phase2 []Move

	// Search statistics
	Nodes   int
	Elapsed time.Duration
}

// Len returns the total number of moves.
func (s *Solution) Len() int {
	return len(s.Phase1) + len(s.Phase2)
}

// Moves returns both phases as one sequence.
func (s *Solution) Moves() []Move {
	moves := make([]Move, 0, s.Len())
	moves = append(moves, s.Phase1...)
	return append(moves, s.Phase2...)
}

// String returns the moves in standard notation.
func (s *Solution) String() string {
	return FormatMoves(s.Moves())
}
