package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verilabs/veritext/internal/adapters/driven/dataset/csvfile"
	"github.com/verilabs/veritext/internal/core/domain"
)

var retrainBootstrap string

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Retrain the model on the full corpus",
	Long: `Runs one retraining cycle: the model is refitted on the entire
corpus, evaluated on a held-out slice and promoted if it does not
regress below the active model's accuracy.

With --bootstrap, a labelled CSV is staged into the corpus first. Use
this to seed a fresh installation before any dataset has been
submitted.`,
	Args: cobra.NoArgs,
	RunE: runRetrain,
}

func init() {
	retrainCmd.Flags().StringVar(&retrainBootstrap, "bootstrap", "", "labelled CSV to stage before retraining")
	rootCmd.AddCommand(retrainCmd)
}

func runRetrain(cmd *cobra.Command, _ []string) error {
	if retrainService == nil {
		return errors.New("retrain service not configured")
	}

	var staged []domain.DatasetRow
	if retrainBootstrap != "" {
		rows, err := csvfile.ReadFile(retrainBootstrap)
		if err != nil {
			return err
		}
		staged = rows
		cmd.Printf("Staging %d rows from %s...\n", len(rows), retrainBootstrap)
	}

	result, err := retrainService.Retrain(context.Background(), staged)
	switch {
	case errors.Is(err, domain.ErrRetrainInProgress):
		return errors.New("a retraining cycle is already running")
	case errors.Is(err, domain.ErrAccuracyRegression):
		return fmt.Errorf("candidate rejected: %w", err)
	case errors.Is(err, domain.ErrEmptyCorpus), errors.Is(err, domain.ErrInsufficientData):
		return fmt.Errorf("corpus cannot be trained on: %w", err)
	case err != nil:
		return fmt.Errorf("retraining failed: %w", err)
	}

	cmd.Printf("Promoted model %s\n", result.Version.ID)
	cmd.Printf("  corpus size:        %d\n", result.Version.TrainingCorpusSize)
	cmd.Printf("  held-out accuracy:  %.3f\n", result.CandidateAccuracy)
	if result.ActiveAccuracy > 0 {
		cmd.Printf("  previous accuracy:  %.3f\n", result.ActiveAccuracy)
	}
	return nil
}
