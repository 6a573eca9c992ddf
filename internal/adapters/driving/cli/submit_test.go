package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestSubmitCmd_Use(t *testing.T) {
	assert.Equal(t, "submit [dataset.csv]", submitCmd.Use)
}

func TestSubmitCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("submit")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSubmitCmd_ErrorsWithoutService(t *testing.T) {
	old := datasetService
	datasetService = nil
	defer func() { datasetService = old }()

	_, err := execute("submit", "whatever.csv")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}

func TestSubmitCmd_ReportsAcceptedAndRejected(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeDataset(t, "text,label\nStocks rally on earnings,REAL\n,FAKE\nAliens built the pyramids,FAKE\n")

	out, err := execute("submit", path)

	require.NoError(t, err)
	assert.Contains(t, out, "Accepted 2 rows, rejected 1.")
	assert.Contains(t, out, "row 1: empty text")
}

func TestSubmitCmd_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute("submit", filepath.Join(t.TempDir(), "absent.csv"))

	assert.Error(t, err)
}

func TestSubmitCmd_EmptyDataset(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeDataset(t, "text,label\n,REAL\nsomething,MAYBE\n")

	out, err := execute("submit", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no valid rows")
	assert.Contains(t, out, "Accepted 0 rows, rejected 2.")
}
