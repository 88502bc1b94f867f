package cli

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twophase"
)

var (
	scrambleLength int
	scrambleSeed   uint64
)

var scrambleCmd = &cobra.Command{
	Use:   "scramble",
	Short: "Generate a random scramble",
	Long: `Print a random move sequence and the facelet layout it produces.
No two consecutive moves turn the same face.`,
	Args: cobra.NoArgs,
	RunE: runScramble,
}

func init() {
	rootCmd.AddCommand(scrambleCmd)
	scrambleCmd.Flags().IntVar(&scrambleLength, "length", 25, "Number of moves")
	scrambleCmd.Flags().Uint64Var(&scrambleSeed, "seed", 0, "Random seed (default: time based)")
}

func runScramble(cmd *cobra.Command, args []string) error {
	if scrambleLength < 0 {
		return fmt.Errorf("length must not be negative, got %d", scrambleLength)
	}
	seed := scrambleSeed
	if !cmd.Flags().Changed("seed") {
		seed = uint64(time.Now().UnixNano())
	}

	moves := twophase.Scramble(rand.New(rand.NewPCG(seed, seed)), scrambleLength)
	c := twophase.NewCube()
	c.Apply(moves...)

	fmt.Printf("Scramble: %s\n", twophase.FormatMoves(moves))
	fmt.Printf("Facelets: %s\n", c.Facelets())
	fmt.Println()
	fmt.Print(renderNet(c))
	return nil
}
