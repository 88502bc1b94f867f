package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/twophase"
	"github.com/SeamusWaldron/twophase/internal/storage"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Manage the precomputed search tables",
	Long: `The solver needs move and pruning tables that take a few seconds to
build. They are cached compressed in the database and reused.`,
}

var tablesBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the tables and store them in the cache",
	Args:  cobra.NoArgs,
	RunE:  runTablesBuild,
}

var tablesStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the table cache status",
	Args:  cobra.NoArgs,
	RunE:  runTablesStatus,
}

func init() {
	rootCmd.AddCommand(tablesCmd)
	tablesCmd.AddCommand(tablesBuildCmd)
	tablesCmd.AddCommand(tablesStatusCmd)
}

func runTablesBuild(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	cache := storage.NewTableCache(db)
	fmt.Println("Building tables...")
	if _, err := buildAndCache(cmd.Context(), cache); err != nil {
		return err
	}

	// Older formats can never be read again.
	pruned, err := cache.Prune(twophase.TablesFormatVersion)
	if err != nil {
		return err
	}

	st, err := cache.Status(twophase.TablesFormatVersion)
	if err != nil {
		return err
	}
	fmt.Printf("Stored format %d (%s)\n", st.FormatVersion, formatBytes(st.SizeBytes))
	if pruned > 0 {
		fmt.Printf("Removed %d outdated table set(s)\n", pruned)
	}
	return nil
}

func runTablesStatus(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Printf("Database: %s\n", db.Path())
	fmt.Printf("Caching:  %v\n", cfg.Storage.CacheTables)

	st, err := storage.NewTableCache(db).Status(twophase.TablesFormatVersion)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("Tables:   not cached (format %d)\n", twophase.TablesFormatVersion)
		fmt.Println("Build them with: twophase tables build")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Printf("Tables:   format %d, %s, built %s\n",
		st.FormatVersion, formatBytes(st.SizeBytes), st.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	return nil
}

func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
