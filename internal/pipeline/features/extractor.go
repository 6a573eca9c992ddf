// Package features projects normalised documents into a fixed TF-IDF
// feature space.
//
// Fit and Transform are strictly separated: Fit builds a frozen
// vocabulary from a corpus, Transform projects a single document onto an
// existing vocabulary and never mutates it. Inference can therefore
// never alter the feature space.
package features

import (
	"fmt"
	"math"
	"sort"

	"github.com/verilabs/veritext/internal/core/domain"
)

// DefaultMaxDocFreq is the default maximum document-frequency fraction.
// Terms appearing in more than this fraction of documents are excluded
// as uninformative.
const DefaultMaxDocFreq = 0.7

// Extractor builds vocabularies and computes TF-IDF feature vectors.
type Extractor struct {
	maxDocFreq float64
}

// New creates an extractor with the given maximum document-frequency
// fraction. Values outside (0, 1] fall back to DefaultMaxDocFreq.
func New(maxDocFreq float64) *Extractor {
	if maxDocFreq <= 0 || maxDocFreq > 1 {
		maxDocFreq = DefaultMaxDocFreq
	}
	return &Extractor{maxDocFreq: maxDocFreq}
}

// Fit builds a frozen vocabulary with per-term smoothed IDF values from
// the corpus. Indices are dense and assigned in sorted-term order, so
// fitting twice on the same input yields an identical vocabulary.
// Returns domain.ErrEmptyCorpus for fewer than 2 documents or when no
// term survives document-frequency filtering.
func (e *Extractor) Fit(docs []domain.NormalizedDocument) (*domain.Vocabulary, error) {
	if len(docs) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 documents, got %d", domain.ErrEmptyCorpus, len(docs))
	}

	// Document frequency per term.
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{}, len(doc.Tokens))
		for _, tok := range doc.Tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}

	// Drop terms above the max-df threshold, keep a stable ordering.
	n := float64(len(docs))
	terms := make([]string, 0, len(df))
	for term, count := range df {
		if float64(count)/n > e.maxDocFreq {
			continue
		}
		terms = append(terms, term)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("%w: no terms survived document-frequency filtering", domain.ErrEmptyCorpus)
	}
	sort.Strings(terms)

	vocab := &domain.Vocabulary{
		Indices:    make(map[string]int, len(terms)),
		IDF:        make([]float64, len(terms)),
		CorpusSize: len(docs),
	}
	for i, term := range terms {
		vocab.Indices[term] = i
		// Smoothed IDF
		vocab.IDF[i] = math.Log((1+n)/(1+float64(df[term]))) + 1.0
	}
	return vocab, nil
}

// Transform projects a normalised document onto a frozen vocabulary.
// Weight per term = (term count / total tokens) * IDF; the vector is
// L2-normalized afterwards so distance-based confidence is comparable
// across documents of different length. Out-of-vocabulary tokens are
// silently dropped. The vocabulary is never mutated.
func (e *Extractor) Transform(doc domain.NormalizedDocument, vocab *domain.Vocabulary) domain.FeatureVector {
	vec := make(domain.FeatureVector)

	tf := make(map[int]int)
	total := 0
	for _, tok := range doc.Tokens {
		if idx, ok := vocab.Indices[tok]; ok {
			tf[idx]++
			total++
		}
	}
	if total == 0 {
		return vec
	}

	norm := 0.0
	for idx, count := range tf {
		w := float64(count) / float64(total) * vocab.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}
