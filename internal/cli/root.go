// Package cli implements the command-line interface for twophase.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/SeamusWaldron/twophase/internal/config"
	"github.com/SeamusWaldron/twophase/internal/logging"
)

const version = "0.2.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool
	maxLength  int
	timeout    time.Duration

	cfg    *config.Config
	logger = zap.NewNop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "twophase",
	Short: "Two-phase Rubik's Cube solver",
	Long: `twophase - A command-line Rubik's Cube solver using the two-phase algorithm.

Solve a cube from its 54-sticker layout or from a scramble, animate the
solution in the terminal, batch-solve files of layouts, and track a GoCube
smart cube over Bluetooth and solve it live.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}

		// Flags override the config file.
		if cmd.Flags().Changed("max-length") {
			cfg.Solver.MaxLength = maxLength
		}
		if cmd.Flags().Changed("timeout") {
			cfg.Solver.Timeout = timeout
		}
		if dbPath != "" {
			cfg.Storage.DBPath = dbPath
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err = logging.New(cfg.Log.Level, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./config.yaml or ~/.twophase/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.twophase/twophase.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().IntVar(&maxLength, "max-length", 23, "Maximum solution length")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Give up on a solve after this long (0 = never)")
}
