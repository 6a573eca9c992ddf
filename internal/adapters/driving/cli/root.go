// Package cli exposes the command-line surface.
//
// Commands are thin: they parse flags, call a driving port and format
// the result. Services are injected once at startup via SetServices so
// tests can swap in fakes.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/verilabs/veritext/internal/core/ports/driven"
	"github.com/verilabs/veritext/internal/core/ports/driving"
	"github.com/verilabs/veritext/internal/logger"
)

// version is overridden at link time for releases.
var version = "dev"

// Injected services. Nil until SetServices runs; commands guard against
// missing services with a clear error.
var (
	textClassifier driving.TextClassifier
	datasetService driving.DatasetService
	retrainService driving.RetrainOrchestrator
	imageService   driving.ImageService
	modelStore     driven.ModelStore
	configStore    driven.ConfigStore
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "veritext",
	Short: "Classify news text as REAL or FAKE",
	Long: `Veritext labels news text as REAL or FAKE using a model trained
on a user-extendable corpus of labelled examples. Submit new labelled
datasets at any time; the model retrains and the improved version is
promoted atomically.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

// Services bundles everything the commands need.
type Services struct {
	TextClassifier driving.TextClassifier
	Dataset        driving.DatasetService
	Retrainer      driving.RetrainOrchestrator
	Images         driving.ImageService
	Models         driven.ModelStore
	Config         driven.ConfigStore
}

// SetServices injects the service implementations used by the commands.
func SetServices(s *Services) {
	textClassifier = s.TextClassifier
	datasetService = s.Dataset
	retrainService = s.Retrainer
	imageService = s.Images
	modelStore = s.Models
	configStore = s.Config
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}
