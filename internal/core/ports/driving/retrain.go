package driving

import (
	"context"

	"github.com/verilabs/veritext/internal/core/domain"
)

// RetrainPhase names a step of the retraining state machine.
type RetrainPhase string

// Retraining phases, in success-path order.
const (
	PhaseIdle       RetrainPhase = "idle"
	PhaseValidating RetrainPhase = "validating"
	PhaseRefitting  RetrainPhase = "refitting"
	PhaseEvaluating RetrainPhase = "evaluating"
	PhasePromoting  RetrainPhase = "promoting"
	PhaseFailed     RetrainPhase = "failed"
)

// RetrainStatus reports the current state of the orchestrator.
type RetrainStatus struct {
	// Phase is the current state-machine phase.
	Phase RetrainPhase

	// LastError is the failure reason of the most recent run, nil if
	// the last run succeeded or no run has happened yet.
	LastError error
}

// RetrainResult summarises a completed retraining cycle.
type RetrainResult struct {
	// Version is the promoted model version.
	Version *domain.ModelVersion

	// CandidateAccuracy is the candidate's held-out accuracy.
	CandidateAccuracy float64

	// ActiveAccuracy is the previously active model's accuracy on the
	// same split, 0 when there was no active model.
	ActiveAccuracy float64
}

// RetrainOrchestrator coordinates ingestion, refitting, evaluation and
// promotion as a single pipeline with rollback on failure.
type RetrainOrchestrator interface {
	// Retrain runs one full cycle over the current corpus plus the
	// given staged rows (may be nil for an explicit refit request).
	// At most one cycle runs at a time; concurrent calls return
	// domain.ErrRetrainInProgress. Cancellation via ctx is honoured
	// between phases and training epochs.
	Retrain(ctx context.Context, staged []domain.DatasetRow) (*RetrainResult, error)

	// Status returns the orchestrator's current phase.
	Status() RetrainStatus
}
