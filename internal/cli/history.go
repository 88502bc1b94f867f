package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twophase/internal/storage"
)

var (
	listLimit int
	showLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded solves",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solves",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solve-id]",
	Short: "Show details of a solve",
	Long:  `Display a recorded solve. Use --last to show the most recent one.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of solves to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solve")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solves, err := storage.NewSolveRepository(db).List(listLimit)
	if err != nil {
		return err
	}

	if len(solves) == 0 {
		fmt.Println("No solves recorded yet")
		fmt.Println("Solve a cube with: twophase solve --scramble \"R U R' U'\"")
		return nil
	}

	fmt.Printf("Recent solves (showing %d):\n", len(solves))
	fmt.Println()
	fmt.Printf("%-36s  %-19s  %-6s  %-9s  %s\n", "ID", "Created", "Moves", "Time", "Solution")
	fmt.Println("------------------------------------  -------------------  ------  ---------  --------")

	for _, s := range solves {
		solution := s.Solution
		if len(solution) > 40 {
			solution = solution[:37] + "..."
		}
		fmt.Printf("%-36s  %-19s  %-6d  %-9s  %s\n",
			s.SolveID,
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			s.Phase1Len+s.Phase2Len,
			fmt.Sprintf("%dms", s.DurationMs),
			solution,
		)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolveRepository(db)

	var solveID string
	switch {
	case showLast:
		solves, err := repo.List(1)
		if err != nil {
			return err
		}
		if len(solves) == 0 {
			return fmt.Errorf("no solves found")
		}
		solveID = solves[0].SolveID
	case len(args) > 0:
		solveID = args[0]
	default:
		return fmt.Errorf("please provide a solve ID or use --last")
	}

	s, err := repo.Get(solveID)
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("solve not found: %s", solveID)
	}
	if err != nil {
		return err
	}

	fmt.Println("Solve Details")
	fmt.Println("=============")
	fmt.Println()
	fmt.Printf("ID:         %s\n", s.SolveID)
	fmt.Printf("Created:    %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Facelets:   %s\n", s.Facelets)
	if s.ScrambleText != nil {
		fmt.Printf("Scramble:   %s\n", *s.ScrambleText)
	}
	fmt.Println()
	fmt.Printf("Solution:   %s\n", s.Solution)
	fmt.Printf("Length:     %d (phase 1: %d, phase 2: %d, budget %d)\n",
		s.Phase1Len+s.Phase2Len, s.Phase1Len, s.Phase2Len, s.MaxLength)
	fmt.Printf("Search:     %dms, %d nodes\n", s.DurationMs, s.Nodes)
	return nil
}
