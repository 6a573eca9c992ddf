package driven

import (
	"context"

	"github.com/verilabs/veritext/internal/core/domain"
)

// ImageClassifier is the external image-authenticity collaborator.
// Veritext only consumes this contract; the detector itself is a
// separate, independently specified system.
type ImageClassifier interface {
	// ClassifyImage labels raw image bytes as REAL or FAKE.
	ClassifyImage(ctx context.Context, data []byte) (*domain.ImageClassification, error)
}
