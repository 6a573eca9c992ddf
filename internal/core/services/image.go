package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/ports/driven"
	"github.com/verilabs/veritext/internal/core/ports/driving"
	"github.com/verilabs/veritext/internal/logger"
)

// Ensure ImageService implements the interface.
var _ driving.ImageService = (*ImageService)(nil)

// ImageService delegates image classification to the external
// collaborator. It owns no model state; a collaborator failure never
// touches the text pipeline.
type ImageService struct {
	classifier driven.ImageClassifier
}

// NewImageService creates a new image service.
// The classifier is optional; when nil, image classification is
// disabled and calls report the collaborator as unavailable.
func NewImageService(classifier driven.ImageClassifier) *ImageService {
	return &ImageService{classifier: classifier}
}

// ClassifyImage labels raw image bytes through the collaborator.
// Every failure path is wrapped as domain.ErrUpstreamClassifier.
func (s *ImageService) ClassifyImage(ctx context.Context, data []byte) (*domain.ImageClassification, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", domain.ErrInvalidInput)
	}
	if s.classifier == nil {
		return nil, fmt.Errorf("%w: not configured", domain.ErrUpstreamClassifier)
	}

	result, err := s.classifier.ClassifyImage(ctx, data)
	if err != nil {
		if errors.Is(err, domain.ErrUpstreamClassifier) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamClassifier, err)
	}
	logger.Info("Image classified as %s (confidence %.3f)", result.Label, result.Confidence)
	return result, nil
}
