package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verilabs/veritext/internal/adapters/driven/storage/memory"
	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/services"
	"github.com/verilabs/veritext/internal/pipeline/features"
	"github.com/verilabs/veritext/internal/pipeline/normalizer"
	"github.com/verilabs/veritext/internal/pipeline/svm"
)

// setupTestServices wires the commands to in-memory implementations and
// returns a cleanup that restores whatever was injected before.
func setupTestServices() func() {
	oldClassifier := textClassifier
	oldDataset := datasetService
	oldRetrain := retrainService
	oldImages := imageService
	oldModels := modelStore

	norm := normalizer.New()
	extractor := features.New(features.DefaultMaxDocFreq)
	classifier := svm.New(0, 0)
	corpus := memory.NewCorpusStore()
	models := memory.NewModelStore()
	ingestor := services.NewDatasetIngestor(corpus)
	orchestrator := services.NewOrchestrator(norm, extractor, classifier, corpus, models, ingestor, 0, 0)
	ingestor.SetOrchestrator(orchestrator, false)

	SetServices(&Services{
		TextClassifier: services.NewClassifierService(norm, extractor, classifier, models),
		Dataset:        ingestor,
		Retrainer:      orchestrator,
		Images:         services.NewImageService(nil),
		Models:         models,
	})

	return func() {
		textClassifier = oldClassifier
		datasetService = oldDataset
		retrainService = oldRetrain
		imageService = oldImages
		modelStore = oldModels
	}
}

// sampleRows is a small separable corpus for commands that need a
// trained model.
func sampleRows() []domain.DatasetRow {
	return []domain.DatasetRow{
		{Text: "Stocks rally after strong quarterly earnings report", Label: "REAL"},
		{Text: "Central bank holds interest rates steady this quarter", Label: "REAL"},
		{Text: "Tech shares climb as investors digest earnings", Label: "REAL"},
		{Text: "Oil prices fall amid rising crude inventories", Label: "REAL"},
		{Text: "Senate passes infrastructure spending bill", Label: "REAL"},
		{Text: "Aliens built the pyramids says secret dossier", Label: "FAKE"},
		{Text: "Moon landing was staged in a desert studio", Label: "FAKE"},
		{Text: "Vaccines contain mind control microchips", Label: "FAKE"},
		{Text: "Lizard people secretly run the government", Label: "FAKE"},
		{Text: "Miracle fruit cures every disease overnight", Label: "FAKE"},
		{Text: "Stocks rally after strong quarterly earnings report", Label: "REAL"},
		{Text: "Aliens built the pyramids says secret dossier", Label: "FAKE"},
	}
}

// trainSampleModel runs one retraining cycle on the sample corpus.
func trainSampleModel(t *testing.T) {
	t.Helper()
	_, err := retrainService.Retrain(context.Background(), sampleRows())
	require.NoError(t, err)
}

// execute runs the root command with args and captures its output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
