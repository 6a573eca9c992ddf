package services

import (
	"context"
	"fmt"

	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/ports/driven"
	"github.com/verilabs/veritext/internal/core/ports/driving"
	"github.com/verilabs/veritext/internal/logger"
	"github.com/verilabs/veritext/internal/pipeline/features"
	"github.com/verilabs/veritext/internal/pipeline/normalizer"
	"github.com/verilabs/veritext/internal/pipeline/svm"
)

// Ensure ClassifierService implements the interface.
var _ driving.TextClassifier = (*ClassifierService)(nil)

// ClassifierService classifies text against the active model version.
//
// Inference is lock-free with respect to retraining: every call reads
// whatever version is active at that moment via a single ModelStore
// read and works on that immutable snapshot.
type ClassifierService struct {
	norm       *normalizer.Normalizer
	extractor  *features.Extractor
	classifier *svm.Classifier
	modelStore driven.ModelStore
}

// NewClassifierService creates a new classifier service.
func NewClassifierService(
	norm *normalizer.Normalizer,
	extractor *features.Extractor,
	classifier *svm.Classifier,
	modelStore driven.ModelStore,
) *ClassifierService {
	return &ClassifierService{
		norm:       norm,
		extractor:  extractor,
		classifier: classifier,
		modelStore: modelStore,
	}
}

// ClassifyText labels raw text as REAL or FAKE.
//
// Returns domain.ErrInvalidInput for non-text input and
// domain.ErrNoModel if no model has ever been trained. Text that
// normalises to zero known tokens sits on the decision boundary and
// resolves to FAKE at confidence 0.5 (the documented tie-break).
func (s *ClassifierService) ClassifyText(ctx context.Context, raw string) (*domain.Classification, error) {
	logger.Section("Classify Text")

	doc, err := s.norm.Normalize(raw)
	if err != nil {
		return nil, err
	}
	logger.Debug("Normalised to %d tokens", len(doc.Tokens))

	active, err := s.modelStore.GetActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load active model: %w", err)
	}
	logger.Debug("Active model %s (vocabulary %d terms)", active.ID, active.Vocabulary.Size())

	vec := s.extractor.Transform(doc, active.Vocabulary)
	if len(vec) == 0 {
		// No known tokens means no evidence either way. Policy: flag
		// uncertain content as FAKE at the boundary confidence rather
		// than let the bias term decide.
		logger.Debug("No vocabulary tokens, resolving to %s at 0.5", domain.LabelFake)
		return &domain.Classification{
			Label:        domain.LabelFake,
			Confidence:   0.5,
			ModelVersion: active.ID,
		}, nil
	}
	label, confidence := s.classifier.Predict(vec, active.Weights)
	logger.Info("Classified as %s (confidence %.3f)", label, confidence)

	return &domain.Classification{
		Label:        label,
		Confidence:   confidence,
		ModelVersion: active.ID,
	}, nil
}
