package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verilabs/veritext/internal/core/domain"
)

func TestNormalize_LowercasesAndStripsPunctuation(t *testing.T) {
	n := New()

	doc, err := n.Normalize("Stocks RALLY, on earnings!!! (today)")
	require.NoError(t, err)
	assert.Equal(t, []string{"stocks", "rally", "earnings", "today"}, doc.Tokens)
}

func TestNormalize_RemovesStopwords(t *testing.T) {
	n := New()

	doc, err := n.Normalize("the aliens built the pyramids")
	require.NoError(t, err)
	assert.Equal(t, []string{"aliens", "built", "pyramids"}, doc.Tokens)
}

func TestNormalize_KeepsApostrophes(t *testing.T) {
	n := New()

	doc, err := n.Normalize("the market didn't crash")
	require.NoError(t, err)
	assert.Contains(t, doc.Tokens, "didn't")
}

func TestNormalize_EmptyInputIsValid(t *testing.T) {
	n := New()

	doc, err := n.Normalize("")
	require.NoError(t, err)
	assert.Empty(t, doc.Tokens)
}

func TestNormalize_AllStopwordsYieldsEmpty(t *testing.T) {
	n := New()

	doc, err := n.Normalize("the and or but")
	require.NoError(t, err)
	assert.Empty(t, doc.Tokens)
}

func TestNormalize_PunctuationOnlyYieldsEmpty(t *testing.T) {
	n := New()

	doc, err := n.Normalize("... 123 !!! 456")
	require.NoError(t, err)
	assert.Empty(t, doc.Tokens)
}

func TestNormalize_InvalidUTF8(t *testing.T) {
	n := New()

	_, err := n.Normalize(string([]byte{0xff, 0xfe, 0xfd}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalize_Deterministic(t *testing.T) {
	n := New()

	const input = "Breaking: Scientists Discover Water on Mars"
	first, err := n.Normalize(input)
	require.NoError(t, err)
	second, err := n.Normalize(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
