package domain

import "time"

// Vocabulary maps terms to dense, contiguous feature indices.
// Built once per extractor fit and frozen afterwards. Indices are
// assigned in sorted-term order, so fitting on identical input always
// yields an identical vocabulary.
type Vocabulary struct {
	// Indices maps a term to its feature index in [0, Size).
	Indices map[string]int `json:"indices"`

	// IDF holds the smoothed inverse document frequency per index:
	// log((1+N)/(1+df)) + 1.
	IDF []float64 `json:"idf"`

	// CorpusSize is N, the number of documents the vocabulary was
	// fitted on.
	CorpusSize int `json:"corpus_size"`
}

// Size returns the feature-space dimension.
func (v *Vocabulary) Size() int {
	return len(v.IDF)
}

// FeatureVector is a sparse mapping from vocabulary index to weight.
// Vectors produced under different vocabularies are never mixed.
type FeatureVector map[int]float64

// Weights is a fitted linear decision boundary over a feature space of
// a fixed dimension.
type Weights struct {
	// Coefficients has one entry per vocabulary index.
	Coefficients []float64 `json:"coefficients"`

	// Bias is the hyperplane intercept.
	Bias float64 `json:"bias"`
}

// ModelVersion is an immutable bundle of everything needed to classify:
// the frozen vocabulary and the fitted weights, plus training metadata.
// Exactly one version is active at a time; older versions are retained
// for rollback until pruned.
type ModelVersion struct {
	// ID uniquely identifies the version.
	ID string `json:"id"`

	// Vocabulary is the frozen feature space.
	Vocabulary *Vocabulary `json:"vocabulary"`

	// Weights is the fitted decision boundary.
	Weights *Weights `json:"weights"`

	// TrainingCorpusSize is the corpus length at fit time. Comparing it
	// against the current corpus length detects drift.
	TrainingCorpusSize int `json:"training_corpus_size"`

	// HoldoutAccuracy is the accuracy measured on the held-out split
	// when this version was evaluated.
	HoldoutAccuracy float64 `json:"holdout_accuracy"`

	// CreatedAt is when the version was fitted.
	CreatedAt time.Time `json:"created_at"`
}
