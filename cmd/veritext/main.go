// Command veritext classifies news text as REAL or FAKE and manages the
// model lifecycle behind it.
package main

import (
	"fmt"
	"os"

	"github.com/verilabs/veritext/internal/adapters/driven/config/file"
	"github.com/verilabs/veritext/internal/adapters/driven/imaging/httpapi"
	"github.com/verilabs/veritext/internal/adapters/driven/storage/sqlite"
	"github.com/verilabs/veritext/internal/adapters/driving/cli"
	"github.com/verilabs/veritext/internal/core/ports/driving"
	"github.com/verilabs/veritext/internal/core/services"
	"github.com/verilabs/veritext/internal/pipeline/features"
	"github.com/verilabs/veritext/internal/pipeline/normalizer"
	"github.com/verilabs/veritext/internal/pipeline/svm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := file.NewConfigStore(os.Getenv("VERITEXT_CONFIG_DIR"))
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err := sqlite.NewStore(os.Getenv("VERITEXT_DATA_DIR"))
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer store.Close()

	norm := normalizer.New()
	extractor := features.New(cfg.GetFloat(file.KeyMaxDocFreq))
	classifier := svm.New(cfg.GetInt(file.KeyEpochs), cfg.GetFloat(file.KeyLambda))

	models := store.ModelStore()
	corpus := store.CorpusStore()

	ingestor := services.NewDatasetIngestor(corpus)
	orchestrator := services.NewOrchestrator(
		norm, extractor, classifier, corpus, models, ingestor,
		cfg.GetFloat(file.KeyHoldoutFraction),
		cfg.GetFloat(file.KeyRegressionTolerance),
	)

	// Retrain-on-submit is on unless the configuration disables it.
	retrainOnSubmit := true
	if _, ok := cfg.Get(file.KeyRetrainOnSubmit); ok {
		retrainOnSubmit = cfg.GetBool(file.KeyRetrainOnSubmit)
	}
	ingestor.SetOrchestrator(orchestrator, retrainOnSubmit)

	var images driving.ImageService = services.NewImageService(nil)
	if url := cfg.GetString(file.KeyImageClassifierURL); url != "" {
		images = services.NewImageService(httpapi.New(httpapi.Config{BaseURL: url}))
	}

	cli.SetServices(&cli.Services{
		TextClassifier: services.NewClassifierService(norm, extractor, classifier, models),
		Dataset:        ingestor,
		Retrainer:      orchestrator,
		Images:         images,
		Models:         models,
		Config:         cfg,
	})

	return cli.Execute()
}
