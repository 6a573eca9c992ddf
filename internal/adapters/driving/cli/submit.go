package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verilabs/veritext/internal/adapters/driven/dataset/csvfile"
	"github.com/verilabs/veritext/internal/core/domain"
)

var submitCmd = &cobra.Command{
	Use:   "submit [dataset.csv]",
	Short: "Submit a labelled dataset to the training corpus",
	Long: `Reads a CSV file with 'text' and 'label' columns and merges the
valid rows into the training corpus. Invalid rows are rejected
individually and reported; they never abort the whole submission.
Depending on configuration, a successful submission triggers a
retraining cycle.`,
	Args: cobra.ExactArgs(1),
	RunE: runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	if datasetService == nil {
		return errors.New("dataset service not configured")
	}

	rows, err := csvfile.ReadFile(args[0])
	if err != nil {
		return err
	}

	result, err := datasetService.Submit(context.Background(), rows)
	if result != nil {
		printIngestReport(cmd, &result.IngestReport)
	}
	if errors.Is(err, domain.ErrEmptyDataset) {
		return errors.New("no valid rows in dataset")
	}
	if err != nil {
		return fmt.Errorf("submission failed: %w", err)
	}

	if result.TriggeredRetrain {
		cmd.Println("Retraining triggered.")
	}
	return nil
}

func printIngestReport(cmd *cobra.Command, report *domain.IngestReport) {
	cmd.Printf("Accepted %d rows, rejected %d.\n", report.AcceptedCount, len(report.Rejected))
	for _, r := range report.Rejected {
		cmd.Printf("  row %d: %s\n", r.Index, r.Reason)
	}
}
