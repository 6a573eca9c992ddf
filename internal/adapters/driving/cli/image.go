package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/verilabs/veritext/internal/core/domain"
)

var imageCmd = &cobra.Command{
	Use:   "image [file]",
	Short: "Classify an image as REAL or FAKE",
	Long: `Sends an image file to the configured external image classifier
and prints its verdict. Requires image.classifier_url to be set in the
configuration.`,
	Args: cobra.ExactArgs(1),
	RunE: runImage,
}

func init() {
	rootCmd.AddCommand(imageCmd)
}

func runImage(cmd *cobra.Command, args []string) error {
	if imageService == nil {
		return errors.New("image service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}

	result, err := imageService.ClassifyImage(context.Background(), data)
	if errors.Is(err, domain.ErrUpstreamClassifier) {
		return fmt.Errorf("image classifier unavailable: %w", err)
	}
	if err != nil {
		return fmt.Errorf("image classification failed: %w", err)
	}

	cmd.Printf("Label:      %s\n", result.Label)
	cmd.Printf("Confidence: %.3f\n", result.Confidence)
	return nil
}
