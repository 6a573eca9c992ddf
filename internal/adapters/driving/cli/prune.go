package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var pruneKeep int

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old model versions",
	Long: `Deletes stored model versions beyond the newest --keep inactive
ones. The active version is never deleted.`,
	Args: cobra.NoArgs,
	RunE: runPrune,
}

func init() {
	pruneCmd.Flags().IntVar(&pruneKeep, "keep", 5, "number of inactive versions to keep")
	rootCmd.AddCommand(pruneCmd)
}

func runPrune(cmd *cobra.Command, _ []string) error {
	if modelStore == nil {
		return errors.New("model store not configured")
	}

	keep := pruneKeep
	if !cmd.Flags().Changed("keep") && configStore != nil {
		if v := configStore.GetInt("store.keep_versions"); v > 0 {
			keep = v
		}
	}
	if keep < 0 {
		return errors.New("--keep must not be negative")
	}

	if err := modelStore.Prune(context.Background(), keep); err != nil {
		return fmt.Errorf("pruning failed: %w", err)
	}

	cmd.Printf("Pruned inactive versions beyond the newest %d.\n", keep)
	return nil
}
