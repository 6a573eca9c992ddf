// Package svm fits and applies a linear maximum-margin decision
// boundary over TF-IDF feature vectors.
//
// Training uses Pegasos-style stochastic sub-gradient descent on the
// hinge loss with a fixed seed and a fixed epoch count, so fitting the
// same input twice yields identical weights.
package svm

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/verilabs/veritext/internal/core/domain"
)

// Defaults for the trainer. Chosen for small, frequently refit corpora.
const (
	DefaultEpochs = 50
	DefaultLambda = 0.01

	// seed fixes the shuffling order so fits are reproducible.
	seed = 42
)

// Classifier fits linear weights and predicts labels with a
// distance-based confidence score.
type Classifier struct {
	epochs int
	lambda float64
}

// New creates a classifier trainer. Non-positive arguments fall back to
// the package defaults.
func New(epochs int, lambda float64) *Classifier {
	if epochs <= 0 {
		epochs = DefaultEpochs
	}
	if lambda <= 0 {
		lambda = DefaultLambda
	}
	return &Classifier{epochs: epochs, lambda: lambda}
}

// Fit learns a separating hyperplane from labelled vectors. dim is the
// feature-space dimension (the vocabulary size at fit time).
// Returns domain.ErrInsufficientData when either label class has zero
// examples. Cancellation via ctx is honoured between epochs.
func (c *Classifier) Fit(
	ctx context.Context, vecs []domain.FeatureVector, labels []domain.Label, dim int,
) (*domain.Weights, error) {
	if len(vecs) != len(labels) {
		return nil, fmt.Errorf("%w: %d vectors but %d labels", domain.ErrInvalidInput, len(vecs), len(labels))
	}

	realCount, fakeCount := 0, 0
	for _, l := range labels {
		switch l {
		case domain.LabelReal:
			realCount++
		case domain.LabelFake:
			fakeCount++
		}
	}
	if realCount == 0 || fakeCount == 0 {
		return nil, fmt.Errorf(
			"%w: need both classes, got %d REAL and %d FAKE",
			domain.ErrInsufficientData, realCount, fakeCount,
		)
	}

	w := make([]float64, dim)
	bias := 0.0
	rng := rand.New(rand.NewSource(seed))
	t := 0

	for epoch := 0; epoch < c.epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrRetrainCancelled, err)
		}
		for _, i := range rng.Perm(len(vecs)) {
			t++
			eta := 1.0 / (c.lambda * float64(t))

			y := 1.0
			if labels[i] == domain.LabelFake {
				y = -1.0
			}

			margin := y * (dot(w, vecs[i]) + bias)

			// Regularisation shrink.
			shrink := 1.0 - eta*c.lambda
			if shrink < 0 {
				shrink = 0
			}
			for j := range w {
				w[j] *= shrink
			}

			if margin < 1 {
				for idx, x := range vecs[i] {
					w[idx] += eta * y * x
				}
				bias += eta * y
			}
		}
	}

	return &domain.Weights{Coefficients: w, Bias: bias}, nil
}

// Predict labels a feature vector. Confidence is a sigmoid transform of
// the unsigned distance from the hyperplane, so it lies in [0.5, 1].
//
// A vector exactly on the boundary (activation 0) resolves to FAKE with
// confidence 0.5. That is a deliberate policy: uncertain content is
// flagged rather than waved through.
func (c *Classifier) Predict(vec domain.FeatureVector, weights *domain.Weights) (domain.Label, float64) {
	activation := dot(weights.Coefficients, vec) + weights.Bias

	confidence := 1.0 / (1.0 + math.Exp(-math.Abs(activation)))
	if activation > 0 {
		return domain.LabelReal, confidence
	}
	return domain.LabelFake, confidence
}

// dot computes the inner product of dense weights and a sparse vector.
// Summation runs in ascending index order; map iteration order would
// make the floating-point result vary between runs. Indices beyond the
// weight dimension contribute nothing; they can only come from a
// mismatched vocabulary.
func dot(w []float64, vec domain.FeatureVector) float64 {
	indices := make([]int, 0, len(vec))
	for idx := range vec {
		if idx >= 0 && idx < len(w) {
			indices = append(indices, idx)
		}
	}
	sort.Ints(indices)

	sum := 0.0
	for _, idx := range indices {
		sum += w[idx] * vec[idx]
	}
	return sum
}
