package driving

import (
	"context"

	"github.com/verilabs/veritext/internal/core/domain"
)

// TextClassifier classifies submitted text against the active model.
type TextClassifier interface {
	// ClassifyText labels raw text as REAL or FAKE with a confidence
	// score and the id of the model version that produced it.
	// Returns domain.ErrInvalidInput for non-text input and
	// domain.ErrNoModel if no model has ever been trained.
	ClassifyText(ctx context.Context, raw string) (*domain.Classification, error)
}

// ImageService classifies images through the external collaborator.
type ImageService interface {
	// ClassifyImage labels raw image bytes. Collaborator failures are
	// reported as domain.ErrUpstreamClassifier.
	ClassifyImage(ctx context.Context, data []byte) (*domain.ImageClassification, error)
}
