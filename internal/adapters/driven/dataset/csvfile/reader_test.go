package csvfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verilabs/veritext/internal/core/domain"
)

func TestRead_Success(t *testing.T) {
	input := "text,label\nStocks rally on earnings,REAL\nAliens built the pyramids,FAKE\n"

	rows, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Stocks rally on earnings", rows[0].Text)
	assert.Equal(t, "REAL", rows[0].Label)
	assert.Equal(t, "FAKE", rows[1].Label)
}

func TestRead_ColumnsInAnyOrder(t *testing.T) {
	input := "label,id,text\nFAKE,7,Moon made of cheese\n"

	rows, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Moon made of cheese", rows[0].Text)
	assert.Equal(t, "FAKE", rows[0].Label)
}

func TestRead_MissingColumns(t *testing.T) {
	_, err := Read(strings.NewReader("title,body\na,b\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRead_EmptyFile(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRead_HeaderOnly(t *testing.T) {
	rows, err := Read(strings.NewReader("text,label\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRead_ShortRowsPassedThroughForValidation(t *testing.T) {
	// Ragged rows surface as empty fields; the ingestor rejects them
	// with a per-row reason instead of the whole file failing.
	input := "text,label\nonly text\n"

	rows, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "only text", rows[0].Text)
	assert.Empty(t, rows[0].Label)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte("text,label\nhello world,REAL\n"), 0600))

	rows, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
