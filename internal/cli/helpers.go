package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/SeamusWaldron/twophase"
	"github.com/SeamusWaldron/twophase/internal/storage"
)

func openDB() (*storage.DB, error) {
	db, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// loadTables returns the cached table set, or builds one and caches it.
// Without caching enabled it always builds.
func loadTables(ctx context.Context) (*twophase.Tables, error) {
	if !cfg.Storage.CacheTables {
		return twophase.BuildTables(ctx, logger)
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cache := storage.NewTableCache(db)
	data, err := cache.Load(twophase.TablesFormatVersion)
	switch {
	case err == nil:
		t, err := twophase.ReadTables(bytes.NewReader(data))
		if err == nil {
			logger.Debug("tables loaded from cache", zap.Int("bytes", len(data)))
			return t, nil
		}
		logger.Warn("cached tables unreadable, rebuilding", zap.Error(err))
	case errors.Is(err, storage.ErrNotFound):
		fmt.Println("Building tables (first run only)...")
	default:
		return nil, err
	}

	return buildAndCache(ctx, cache)
}

func buildAndCache(ctx context.Context, cache *storage.TableCache) (*twophase.Tables, error) {
	t, err := twophase.BuildTables(ctx, logger)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := t.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode tables: %w", err)
	}
	if err := cache.Save(twophase.TablesFormatVersion, buf.Bytes()); err != nil {
		return nil, err
	}
	logger.Info("tables cached", zap.Int("bytes", buf.Len()))
	return t, nil
}

func newSolver(t *twophase.Tables) (*twophase.Solver, error) {
	return twophase.NewSolver(
		twophase.WithTables(t),
		twophase.WithMaxLength(cfg.Solver.MaxLength),
		twophase.WithLogger(logger),
	)
}

// errTimeout is returned when a solve outlives the configured timeout.
var errTimeout = errors.New("solve timed out")

type solveResult struct {
	sol *twophase.Solution
	err error
}

// solveWithTimeout runs the solve on its own goroutine. On timeout the
// search is abandoned; it finishes in the background and its result is
// discarded.
func solveWithTimeout(s *twophase.Solver, c *twophase.Cube, d time.Duration) (*twophase.Solution, error) {
	if d <= 0 {
		return s.SolveCube(c)
	}

	done := make(chan solveResult, 1)
	go func() {
		sol, err := s.SolveCube(c)
		done <- solveResult{sol, err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case r := <-done:
		return r.sol, r.err
	case <-timer.C:
		return nil, fmt.Errorf("%w after %s", errTimeout, d)
	}
}

// cubeFromInput builds the cube to solve from a facelet argument or a
// scramble. Exactly one must be given.
func cubeFromInput(args []string, scramble string) (*twophase.Cube, error) {
	switch {
	case len(args) > 0 && scramble != "":
		return nil, errors.New("give either a facelet layout or --scramble, not both")
	case len(args) > 0:
		return twophase.ParseFacelets(args[0])
	case scramble != "":
		c := twophase.NewCube()
		if err := c.ApplyNotation(scramble); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.New("please provide a facelet layout or --scramble")
	}
}

func recordSolve(repo *storage.SolveRepository, facelets, scramble string, sol *twophase.Solution) (string, error) {
	rec := &storage.Solve{
		Facelets:   facelets,
		Solution:   sol.String(),
		Phase1Len:  len(sol.Phase1),
		Phase2Len:  len(sol.Phase2),
		MaxLength:  cfg.Solver.MaxLength,
		Nodes:      sol.Nodes,
		DurationMs: sol.Elapsed.Milliseconds(),
	}
	if scramble != "" {
		rec.ScrambleText = &scramble
	}
	return repo.Create(rec)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000)
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
