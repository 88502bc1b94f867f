package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/twophase"
	"github.com/SeamusWaldron/twophase/internal/storage"
)

var (
	batchWorkers int
	batchSave    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE",
	Short: "Solve many cubes from a file",
	Long: `Solve one facelet layout per line of FILE concurrently against one shared
table set. Blank lines and lines starting with # are skipped. Results are
printed in input order; a line that fails does not stop the others.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().IntVar(&batchWorkers, "workers", runtime.NumCPU(), "Number of concurrent solves")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "Record each solve in history")
}

type batchResult struct {
	sol *twophase.Solution
	err error
}

func readLayouts(path string) ([]string, []int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var layouts []string
	var lines []int
	sc := bufio.NewScanner(f)
	for n := 1; sc.Scan(); n++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		layouts = append(layouts, text)
		lines = append(lines, n)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return layouts, lines, nil
}

// solveAll solves every layout with at most workers concurrent solves.
// Per-layout failures are reported in the results; the returned error is
// only set when ctx ends first. A solve already running is not interrupted.
func solveAll(ctx context.Context, s *twophase.Solver, layouts []string, workers int) ([]batchResult, error) {
	results := make([]batchResult, len(layouts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, layout := range layouts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sol, err := s.Solve(layout)
			results[i] = batchResult{sol: sol, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	layouts, lines, err := readLayouts(args[0])
	if err != nil {
		return err
	}
	if len(layouts) == 0 {
		fmt.Println("No layouts found")
		return nil
	}

	t, err := loadTables(cmd.Context())
	if err != nil {
		return err
	}
	solver, err := newSolver(t)
	if err != nil {
		return err
	}

	logger.Info("batch started", zap.Int("layouts", len(layouts)), zap.Int("workers", batchWorkers))
	results, err := solveAll(cmd.Context(), solver, layouts, batchWorkers)
	if err != nil {
		return fmt.Errorf("batch aborted: %w", err)
	}

	var repo *storage.SolveRepository
	if batchSave {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()
		repo = storage.NewSolveRepository(db)
	}

	var failed, total int
	for i, r := range results {
		if r.err != nil {
			failed++
			fmt.Printf("%4d  error: %v\n", lines[i], r.err)
			continue
		}
		total += r.sol.Len()
		fmt.Printf("%4d  %2d  %s\n", lines[i], r.sol.Len(), r.sol)
		if repo != nil {
			if _, err := recordSolve(repo, layouts[i], "", r.sol); err != nil {
				return err
			}
		}
	}

	solved := len(results) - failed
	fmt.Println()
	fmt.Printf("Solved %d of %d", solved, len(results))
	if solved > 0 {
		fmt.Printf(" (average length %.2f)", float64(total)/float64(solved))
	}
	fmt.Println()
	if failed > 0 {
		return errors.New("some layouts could not be solved")
	}
	return nil
}
