package domain

// RowRejection explains why a single dataset row was rejected.
type RowRejection struct {
	// Index is the zero-based position of the row in the submission.
	Index int `json:"index"`

	// Reason is a human-readable rejection reason.
	Reason string `json:"reason"`
}

// IngestReport is the per-row accept/reject outcome of dataset
// validation. Rejected rows are reported, never silently dropped.
type IngestReport struct {
	// AcceptedCount is the number of rows that passed validation.
	AcceptedCount int `json:"accepted_count"`

	// Rejected lists every rejected row with its reason.
	Rejected []RowRejection `json:"rejected"`
}

// SubmitResult is returned from a dataset submission.
type SubmitResult struct {
	IngestReport

	// TriggeredRetrain reports whether the submission started a
	// retraining cycle.
	TriggeredRetrain bool `json:"triggered_retrain"`
}
