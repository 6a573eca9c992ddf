package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid caller input.
	// Never retried; surfaced as-is.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoModel indicates no model version has ever been trained.
	// Inference must be refused until a first model exists.
	ErrNoModel = errors.New("no trained model available")

	// ErrEmptyCorpus indicates the training corpus is too small to fit a
	// vocabulary, or that no terms survived document-frequency filtering.
	ErrEmptyCorpus = errors.New("corpus too small to fit")

	// ErrInsufficientData indicates a label class has zero examples.
	// A single-class corpus cannot define a decision boundary.
	ErrInsufficientData = errors.New("insufficient labelled data")

	// ErrEmptyDataset indicates a submitted dataset contained no valid rows.
	// No corpus mutation happens in that case.
	ErrEmptyDataset = errors.New("dataset contains no valid rows")

	// ErrRetrainInProgress indicates a retraining cycle is already running.
	// Transient; the caller may retry later.
	ErrRetrainInProgress = errors.New("retraining in progress")

	// ErrRetrainCancelled indicates a retraining cycle was cancelled
	// before a candidate model could be promoted.
	ErrRetrainCancelled = errors.New("retraining cancelled")

	// ErrAccuracyRegression indicates a candidate model scored below the
	// accuracy floor on the held-out split and was rejected.
	ErrAccuracyRegression = errors.New("candidate model regressed on held-out split")

	// ErrUpstreamClassifier indicates the external image classifier failed.
	// Isolated; never affects text pipeline state.
	ErrUpstreamClassifier = errors.New("upstream image classifier failed")
)
