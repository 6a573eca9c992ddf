package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verilabs/veritext/internal/core/domain"
)

var versionsJSON bool

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List stored model versions",
	Long: `Lists all stored model versions, newest first, with their
training corpus size and held-out accuracy. The active version is
marked with an asterisk.`,
	Args: cobra.NoArgs,
	RunE: runVersions,
}

func init() {
	versionsCmd.Flags().BoolVar(&versionsJSON, "json", false, "output versions as JSON")
	rootCmd.AddCommand(versionsCmd)
}

func runVersions(cmd *cobra.Command, _ []string) error {
	if modelStore == nil {
		return errors.New("model store not configured")
	}

	ctx := context.Background()
	versions, err := modelStore.List(ctx)
	if err != nil {
		return fmt.Errorf("listing versions failed: %w", err)
	}

	activeID := ""
	if active, err := modelStore.GetActive(ctx); err == nil {
		activeID = active.ID
	} else if !errors.Is(err, domain.ErrNoModel) {
		return fmt.Errorf("loading active version failed: %w", err)
	}

	if versionsJSON {
		data, err := json.MarshalIndent(versions, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal versions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(versions) == 0 {
		cmd.Println("No model versions stored.")
		return nil
	}

	cmd.Println("Model versions:")
	for _, v := range versions {
		marker := " "
		if v.ID == activeID {
			marker = "*"
		}
		cmd.Printf("%s %s  corpus %d  accuracy %.3f  %s\n",
			marker, v.ID, v.TrainingCorpusSize, v.HoldoutAccuracy, v.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
