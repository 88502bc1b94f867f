package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twophase"
	"github.com/SeamusWaldron/twophase/internal/storage"
)

var (
	solveScramble string
	solveSteps    bool
	solveSplit    bool
	solveNoSave   bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [facelets]",
	Short: "Solve a cube",
	Long: `Solve a cube given as a 54-character facelet layout or as a scramble.

The layout lists the U, R, F, D, L and B faces in that order, each read
row by row as seen from outside the cube. Any six symbols may be used;
each face's center defines its symbol.

Examples:
  twophase solve DRLUUBFBRBLURRLRUBLRDDFDLFUFUFFDBRDUBRUFLLFDDBFLUBLRBD
  twophase solve --scramble "R U R' U' F2 D"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveScramble, "scramble", "", "Scramble to apply to a solved cube")
	solveCmd.Flags().BoolVar(&solveSteps, "steps", false, "Print the solution as layer rotations")
	solveCmd.Flags().BoolVar(&solveSplit, "split", false, "With --steps, split half turns into two quarter steps")
	solveCmd.Flags().BoolVar(&solveNoSave, "no-save", false, "Do not record the solve in history")
}

func runSolve(cmd *cobra.Command, args []string) error {
	c, err := cubeFromInput(args, solveScramble)
	if err != nil {
		return err
	}

	t, err := loadTables(cmd.Context())
	if err != nil {
		return err
	}
	solver, err := newSolver(t)
	if err != nil {
		return err
	}

	sol, err := solveWithTimeout(solver, c, cfg.Solver.Timeout)
	if err != nil {
		return err
	}

	if sol.Len() == 0 {
		fmt.Println("Cube is already solved")
	} else {
		fmt.Println(sol.String())
	}
	fmt.Println()
	fmt.Printf("Length:  %d (phase 1: %d, phase 2: %d)\n", sol.Len(), len(sol.Phase1), len(sol.Phase2))
	fmt.Printf("Phase 1: %s\n", twophase.FormatMoves(sol.Phase1))
	fmt.Printf("Phase 2: %s\n", twophase.FormatMoves(sol.Phase2))
	fmt.Printf("Time:    %s (%d nodes)\n", formatDuration(sol.Elapsed), sol.Nodes)

	if solveSteps {
		fmt.Println()
		fmt.Println("Steps (axis layer direction quarters):")
		for i, st := range sol.Steps(solveSplit) {
			fmt.Printf("  %2d. %s %d %+d %d\n", i+1, st.Axis, st.Layer, st.Direction, st.Quarters)
		}
	}

	if solveNoSave {
		return nil
	}
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := recordSolve(storage.NewSolveRepository(db), c.Facelets(), solveScramble, sol)
	if err != nil {
		return err
	}
	fmt.Printf("\nSaved: %s\n", id)
	return nil
}
