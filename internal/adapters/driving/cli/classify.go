package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/verilabs/veritext/internal/core/domain"
)

var classifyJSON bool

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Classify a piece of text as REAL or FAKE",
	Long: `Classifies the given text against the active model and prints the
label, the confidence and the model version that produced it.`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	if textClassifier == nil {
		return errors.New("classifier service not configured")
	}

	result, err := textClassifier.ClassifyText(context.Background(), args[0])
	if errors.Is(err, domain.ErrNoModel) {
		return errors.New("no model trained yet; submit a labelled dataset or run 'veritext retrain --bootstrap <csv>' first")
	}
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if classifyJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Label:      %s\n", result.Label)
	cmd.Printf("Confidence: %.3f\n", result.Confidence)
	cmd.Printf("Model:      %s\n", result.ModelVersion)
	return nil
}
