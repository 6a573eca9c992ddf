package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/ports/driven"
	"github.com/verilabs/veritext/internal/core/ports/driving"
	"github.com/verilabs/veritext/internal/logger"
	"github.com/verilabs/veritext/internal/pipeline/features"
	"github.com/verilabs/veritext/internal/pipeline/normalizer"
	"github.com/verilabs/veritext/internal/pipeline/svm"
)

// Ensure Orchestrator implements the interface.
var _ driving.RetrainOrchestrator = (*Orchestrator)(nil)

// Evaluation defaults.
const (
	// DefaultHoldoutFraction is the slice of the corpus (by insertion
	// order, from the end) withheld from fitting for evaluation.
	DefaultHoldoutFraction = 0.1

	// DefaultRegressionTolerance is how far below the active model's
	// held-out accuracy a candidate may score and still be promoted.
	DefaultRegressionTolerance = 0.02

	// minHoldoutCorpus is the corpus size below which no slice is
	// withheld: the candidate is fitted and evaluated on the full
	// corpus instead. Tiny corpora cannot spare examples.
	minHoldoutCorpus = 10
)

// Orchestrator runs the retraining pipeline:
//
//	Idle -> Validating -> Refitting -> Evaluating -> Promoting -> Idle
//
// with Validating -> Idle on an empty dataset and * -> Failed -> Idle on
// any later error. Failures never touch the active model; examples
// merged during Validating are retained for the next cycle.
type Orchestrator struct {
	norm       *normalizer.Normalizer
	extractor  *features.Extractor
	classifier *svm.Classifier
	corpus     driven.CorpusStore
	models     driven.ModelStore
	ingestor   *DatasetIngestor

	holdoutFraction     float64
	regressionTolerance float64

	// Single-writer guard and status tracking.
	mu      sync.Mutex
	running bool
	phase   driving.RetrainPhase
	lastErr error
}

// NewOrchestrator creates a retrain orchestrator. Non-positive fraction
// or tolerance arguments fall back to the package defaults.
func NewOrchestrator(
	norm *normalizer.Normalizer,
	extractor *features.Extractor,
	classifier *svm.Classifier,
	corpus driven.CorpusStore,
	models driven.ModelStore,
	ingestor *DatasetIngestor,
	holdoutFraction float64,
	regressionTolerance float64,
) *Orchestrator {
	if holdoutFraction <= 0 || holdoutFraction >= 1 {
		holdoutFraction = DefaultHoldoutFraction
	}
	if regressionTolerance < 0 {
		regressionTolerance = DefaultRegressionTolerance
	}
	return &Orchestrator{
		norm:                norm,
		extractor:           extractor,
		classifier:          classifier,
		corpus:              corpus,
		models:              models,
		ingestor:            ingestor,
		holdoutFraction:     holdoutFraction,
		regressionTolerance: regressionTolerance,
		phase:               driving.PhaseIdle,
	}
}

// Status returns the orchestrator's current phase and the failure
// reason of the most recent run, if any.
func (o *Orchestrator) Status() driving.RetrainStatus {
	o.mu.Lock()
	defer o.mu.Unlock()
	return driving.RetrainStatus{Phase: o.phase, LastError: o.lastErr}
}

// Retrain runs one full cycle: validate staged rows, merge them, refit
// on the corpus, evaluate against the held-out slice and promote the
// candidate if it does not regress. At most one cycle runs at a time;
// concurrent calls return domain.ErrRetrainInProgress.
func (o *Orchestrator) Retrain(ctx context.Context, staged []domain.DatasetRow) (*driving.RetrainResult, error) {
	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()

	logger.Section("Retraining Cycle")

	// Validating. An invalid dataset aborts with no side effects at
	// all: the corpus is untouched.
	o.setPhase(driving.PhaseValidating)
	if len(staged) > 0 {
		examples, report, err := o.ingestor.ValidateAndStage(staged)
		if err != nil {
			return nil, o.fail(fmt.Errorf("validate staged rows: %w", err))
		}
		logger.Info("Merging %d staged examples (%d rejected)", report.AcceptedCount, len(report.Rejected))
		if err := o.corpus.Append(ctx, examples); err != nil {
			return nil, o.fail(fmt.Errorf("merge staged rows: %w", err))
		}
	}

	// Refitting. From here on, merged examples stay in the corpus even
	// if the cycle fails; the next attempt includes them.
	o.setPhase(driving.PhaseRefitting)
	candidate, holdout, err := o.refit(ctx)
	if err != nil {
		return nil, o.fail(err)
	}

	// Evaluating.
	o.setPhase(driving.PhaseEvaluating)
	result, err := o.evaluate(ctx, candidate, holdout)
	if err != nil {
		return nil, o.fail(err)
	}

	// Promoting.
	o.setPhase(driving.PhasePromoting)
	if err := o.models.Publish(ctx, candidate); err != nil {
		return nil, o.fail(fmt.Errorf("publish candidate: %w", err))
	}
	logger.Info("Promoted model %s (held-out accuracy %.3f, corpus %d)",
		candidate.ID, candidate.HoldoutAccuracy, candidate.TrainingCorpusSize)

	o.succeed()
	return result, nil
}

// refit fits a candidate model on the training slice of the corpus and
// returns it together with the held-out slice.
func (o *Orchestrator) refit(ctx context.Context) (*domain.ModelVersion, []domain.TrainingExample, error) {
	examples, err := o.corpus.All(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load corpus: %w", err)
	}

	train, holdout := o.split(examples)
	logger.Debug("Corpus %d examples: %d train, %d held out", len(examples), len(train), len(holdout))

	docs := make([]domain.NormalizedDocument, len(train))
	labels := make([]domain.Label, len(train))
	for i, ex := range train {
		doc, err := o.norm.Normalize(ex.Text)
		if err != nil {
			return nil, nil, fmt.Errorf("normalise example %d: %w", i, err)
		}
		docs[i] = doc
		labels[i] = ex.Label
	}

	vocab, err := o.extractor.Fit(docs)
	if err != nil {
		return nil, nil, fmt.Errorf("fit vocabulary: %w", err)
	}
	logger.Debug("Fitted vocabulary with %d terms", vocab.Size())

	vecs := make([]domain.FeatureVector, len(docs))
	for i, doc := range docs {
		vecs[i] = o.extractor.Transform(doc, vocab)
	}

	weights, err := o.classifier.Fit(ctx, vecs, labels, vocab.Size())
	if err != nil {
		return nil, nil, fmt.Errorf("fit classifier: %w", err)
	}

	return &domain.ModelVersion{
		ID:                 uuid.New().String(),
		Vocabulary:         vocab,
		Weights:            weights,
		TrainingCorpusSize: len(examples),
		CreatedAt:          time.Now(),
	}, holdout, nil
}

// split separates the corpus into training and held-out slices. The
// held-out slice is the last holdoutFraction of the corpus by insertion
// order. Corpora below minHoldoutCorpus are too small to withhold from;
// both slices are then the full corpus (in-sample evaluation).
func (o *Orchestrator) split(examples []domain.TrainingExample) (train, holdout []domain.TrainingExample) {
	if len(examples) < minHoldoutCorpus {
		return examples, examples
	}
	cut := len(examples) - int(float64(len(examples))*o.holdoutFraction)
	if cut >= len(examples) {
		cut = len(examples) - 1
	}
	return examples[:cut], examples[cut:]
}

// evaluate scores the candidate on the held-out slice, compares it with
// the currently active model on the same slice, and rejects the
// candidate when it regresses below the accuracy floor.
func (o *Orchestrator) evaluate(
	ctx context.Context, candidate *domain.ModelVersion, holdout []domain.TrainingExample,
) (*driving.RetrainResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrRetrainCancelled, err)
	}

	candAcc, err := o.accuracy(candidate, holdout)
	if err != nil {
		return nil, fmt.Errorf("evaluate candidate: %w", err)
	}
	candidate.HoldoutAccuracy = candAcc

	active, err := o.models.GetActive(ctx)
	if errors.Is(err, domain.ErrNoModel) {
		// First model: nothing to regress against.
		logger.Debug("No active model, candidate accuracy %.3f accepted", candAcc)
		return &driving.RetrainResult{Version: candidate, CandidateAccuracy: candAcc}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load active model: %w", err)
	}

	activeAcc, err := o.accuracy(active, holdout)
	if err != nil {
		return nil, fmt.Errorf("evaluate active model: %w", err)
	}
	logger.Debug("Candidate accuracy %.3f vs active %.3f (tolerance %.3f)", candAcc, activeAcc, o.regressionTolerance)

	if candAcc < activeAcc-o.regressionTolerance {
		return nil, fmt.Errorf("%w: candidate %.3f, active %.3f", domain.ErrAccuracyRegression, candAcc, activeAcc)
	}

	return &driving.RetrainResult{
		Version:           candidate,
		CandidateAccuracy: candAcc,
		ActiveAccuracy:    activeAcc,
	}, nil
}

// accuracy scores a model version against labelled examples.
func (o *Orchestrator) accuracy(version *domain.ModelVersion, examples []domain.TrainingExample) (float64, error) {
	if len(examples) == 0 {
		return 0, fmt.Errorf("%w: empty evaluation slice", domain.ErrEmptyCorpus)
	}
	correct := 0
	for i, ex := range examples {
		doc, err := o.norm.Normalize(ex.Text)
		if err != nil {
			return 0, fmt.Errorf("normalise example %d: %w", i, err)
		}
		vec := o.extractor.Transform(doc, version.Vocabulary)
		label, _ := o.classifier.Predict(vec, version.Weights)
		if label == ex.Label {
			correct++
		}
	}
	return float64(correct) / float64(len(examples)), nil
}

// acquire takes the single-writer slot.
func (o *Orchestrator) acquire() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return domain.ErrRetrainInProgress
	}
	o.running = true
	o.lastErr = nil
	return nil
}

// release frees the single-writer slot.
func (o *Orchestrator) release() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = false
}

func (o *Orchestrator) setPhase(p driving.RetrainPhase) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phase = p
}

// fail records the failure and returns to Idle. The error is reported
// to the caller and kept in LastError; the active model is untouched.
func (o *Orchestrator) fail(err error) error {
	logger.Warn("Retraining failed: %v", err)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastErr = err
	o.phase = driving.PhaseIdle
	return err
}

func (o *Orchestrator) succeed() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.phase = driving.PhaseIdle
	o.lastErr = nil
}
