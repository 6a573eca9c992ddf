package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verilabs/veritext/internal/core/domain"
)

func docs(tokenLists ...[]string) []domain.NormalizedDocument {
	out := make([]domain.NormalizedDocument, 0, len(tokenLists))
	for _, tokens := range tokenLists {
		out = append(out, domain.NormalizedDocument{Tokens: tokens})
	}
	return out
}

func TestFit_BuildsSortedDenseVocabulary(t *testing.T) {
	e := New(DefaultMaxDocFreq)

	vocab, err := e.Fit(docs(
		[]string{"zebra", "apple"},
		[]string{"mango"},
	))
	require.NoError(t, err)

	// Indices follow lexicographic term order and are dense.
	assert.Equal(t, map[string]int{"apple": 0, "mango": 1, "zebra": 2}, vocab.Indices)
	assert.Len(t, vocab.IDF, 3)
	assert.Equal(t, 2, vocab.CorpusSize)
}

func TestFit_SmoothedIDF(t *testing.T) {
	// max-df of 1.0 keeps every term so the IDF formula is observable.
	e := New(1.0)

	vocab, err := e.Fit(docs(
		[]string{"rare", "common"},
		[]string{"common"},
		[]string{"common"},
		[]string{"filler"},
	))
	require.NoError(t, err)

	// df(rare)=1, N=4: log(5/2)+1
	idx := vocab.Indices["rare"]
	assert.InDelta(t, math.Log(5.0/2.0)+1.0, vocab.IDF[idx], 1e-12)

	// df(common)=3, N=4: log(5/4)+1
	idx = vocab.Indices["common"]
	assert.InDelta(t, math.Log(5.0/4.0)+1.0, vocab.IDF[idx], 1e-12)
}

func TestFit_ExcludesHighDocFreqTerms(t *testing.T) {
	// "everywhere" appears in all 3 documents (df fraction 1.0 > 0.5).
	e := New(0.5)

	vocab, err := e.Fit(docs(
		[]string{"everywhere", "alpha"},
		[]string{"everywhere", "beta"},
		[]string{"everywhere"},
	))
	require.NoError(t, err)

	assert.NotContains(t, vocab.Indices, "everywhere")
	assert.Contains(t, vocab.Indices, "alpha")
	assert.Contains(t, vocab.Indices, "beta")
}

func TestFit_TooFewDocuments(t *testing.T) {
	e := New(DefaultMaxDocFreq)

	_, err := e.Fit(docs([]string{"lonely"}))
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)

	_, err = e.Fit(nil)
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestFit_NothingSurvivesFiltering(t *testing.T) {
	// Every term appears in every document.
	e := New(0.5)

	_, err := e.Fit(docs(
		[]string{"same", "words"},
		[]string{"same", "words"},
	))
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestFit_Deterministic(t *testing.T) {
	e := New(DefaultMaxDocFreq)
	corpus := docs(
		[]string{"stocks", "rally", "earnings"},
		[]string{"aliens", "built", "pyramids"},
		[]string{"stocks", "fall", "fed"},
	)

	first, err := e.Fit(corpus)
	require.NoError(t, err)
	second, err := e.Fit(corpus)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTransform_TFIDFAndL2Norm(t *testing.T) {
	e := New(DefaultMaxDocFreq)

	vocab, err := e.Fit(docs(
		[]string{"apple", "banana"},
		[]string{"apple", "cherry"},
		[]string{"durian"},
	))
	require.NoError(t, err)

	vec := e.Transform(domain.NormalizedDocument{Tokens: []string{"apple", "apple", "banana"}}, vocab)
	require.NotEmpty(t, vec)

	// Unit length after L2 normalisation.
	norm := 0.0
	for _, w := range vec {
		norm += w * w
	}
	assert.InDelta(t, 1.0, norm, 1e-12)

	// apple appears twice, banana once; apple has lower IDF but higher
	// TF. Raw weights: apple 2/3*idf(a), banana 1/3*idf(b).
	ia, ib := vocab.Indices["apple"], vocab.Indices["banana"]
	assert.InDelta(t, (2.0/3.0*vocab.IDF[ia])/(1.0/3.0*vocab.IDF[ib]), vec[ia]/vec[ib], 1e-12)
}

func TestTransform_OutOfVocabularyDropped(t *testing.T) {
	e := New(DefaultMaxDocFreq)

	vocab, err := e.Fit(docs(
		[]string{"known"},
		[]string{"terms"},
	))
	require.NoError(t, err)

	vec := e.Transform(domain.NormalizedDocument{Tokens: []string{"unseen", "known"}}, vocab)
	assert.Len(t, vec, 1)
	assert.Contains(t, vec, vocab.Indices["known"])
}

func TestTransform_EmptyDocument(t *testing.T) {
	e := New(DefaultMaxDocFreq)

	vocab, err := e.Fit(docs(
		[]string{"alpha"},
		[]string{"beta"},
	))
	require.NoError(t, err)

	vec := e.Transform(domain.NormalizedDocument{}, vocab)
	assert.Empty(t, vec)
}

func TestTransform_DoesNotMutateVocabulary(t *testing.T) {
	e := New(DefaultMaxDocFreq)

	vocab, err := e.Fit(docs(
		[]string{"alpha"},
		[]string{"beta"},
	))
	require.NoError(t, err)

	before := vocab.Size()
	e.Transform(domain.NormalizedDocument{Tokens: []string{"gamma", "delta"}}, vocab)
	assert.Equal(t, before, vocab.Size())
	assert.NotContains(t, vocab.Indices, "gamma")
}
