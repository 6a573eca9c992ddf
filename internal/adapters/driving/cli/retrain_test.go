package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDatasetCSV() string {
	csv := "text,label\n"
	for _, row := range sampleRows() {
		csv += row.Text + "," + row.Label + "\n"
	}
	return csv
}

func TestRetrainCmd_Use(t *testing.T) {
	assert.Equal(t, "retrain", retrainCmd.Use)
}

func TestRetrainCmd_HasBootstrapFlag(t *testing.T) {
	flag := retrainCmd.Flags().Lookup("bootstrap")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestRetrainCmd_ErrorsWithoutService(t *testing.T) {
	old := retrainService
	retrainService = nil
	defer func() { retrainService = old }()

	_, err := execute("retrain")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestRetrainCmd_EmptyCorpus(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("retrain")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "corpus cannot be trained on")
}

func TestRetrainCmd_Bootstrap(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	defer func() { retrainBootstrap = "" }()

	path := writeDataset(t, sampleDatasetCSV())

	out, err := execute("retrain", "--bootstrap", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Staging 12 rows")
	assert.Contains(t, out, "Promoted model")
	assert.Contains(t, out, "corpus size:        12")
}

func TestRetrainCmd_AfterBootstrapClassifies(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	trainSampleModel(t)

	out, err := execute("classify", "Lizard people secretly run everything")

	require.NoError(t, err)
	assert.Contains(t, out, "FAKE")
}
