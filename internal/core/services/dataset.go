package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/ports/driven"
	"github.com/verilabs/veritext/internal/core/ports/driving"
	"github.com/verilabs/veritext/internal/logger"
)

// Ensure DatasetIngestor implements the interface.
var _ driving.DatasetService = (*DatasetIngestor)(nil)

// DatasetIngestor validates user-submitted labelled examples and merges
// them into the training corpus.
type DatasetIngestor struct {
	corpus          driven.CorpusStore
	orchestrator    driving.RetrainOrchestrator
	retrainOnSubmit bool
}

// NewDatasetIngestor creates a new dataset ingestor.
func NewDatasetIngestor(corpus driven.CorpusStore) *DatasetIngestor {
	return &DatasetIngestor{corpus: corpus}
}

// SetOrchestrator wires the retrain orchestrator for retrain-on-submit.
// Set after construction to break the ingestor/orchestrator cycle.
func (s *DatasetIngestor) SetOrchestrator(o driving.RetrainOrchestrator, retrainOnSubmit bool) {
	s.orchestrator = o
	s.retrainOnSubmit = retrainOnSubmit
}

// ValidateAndStage checks every row and converts accepted ones into
// TrainingExamples. Rows with empty text or an unknown label are
// rejected individually with a reason; nothing is silently dropped.
// Returns domain.ErrEmptyDataset (with the full report) when no row is
// accepted.
func (s *DatasetIngestor) ValidateAndStage(rows []domain.DatasetRow) ([]domain.TrainingExample, domain.IngestReport, error) {
	report := domain.IngestReport{Rejected: []domain.RowRejection{}}
	examples := make([]domain.TrainingExample, 0, len(rows))
	now := time.Now()

	for i, row := range rows {
		if strings.TrimSpace(row.Text) == "" {
			report.Rejected = append(report.Rejected, domain.RowRejection{Index: i, Reason: "empty text"})
			continue
		}
		label, ok := domain.ParseLabel(row.Label)
		if !ok {
			reason := fmt.Sprintf("invalid label %q", row.Label)
			if strings.TrimSpace(row.Label) == "" {
				reason = "missing label"
			}
			report.Rejected = append(report.Rejected, domain.RowRejection{Index: i, Reason: reason})
			continue
		}
		examples = append(examples, domain.TrainingExample{
			Text:    row.Text,
			Label:   label,
			AddedAt: now,
		})
	}
	report.AcceptedCount = len(examples)

	if len(examples) == 0 {
		return nil, report, fmt.Errorf("%w: %d rows rejected", domain.ErrEmptyDataset, len(report.Rejected))
	}
	return examples, report, nil
}

// Submit validates rows, appends accepted examples to the corpus in a
// single atomic append, and optionally triggers a retraining cycle.
//
// A dataset with zero accepted rows returns domain.ErrEmptyDataset and
// mutates nothing. A failed or already-running retrain does not fail
// the submission; the appended examples are picked up by the next
// cycle.
func (s *DatasetIngestor) Submit(ctx context.Context, rows []domain.DatasetRow) (*domain.SubmitResult, error) {
	logger.Section("Dataset Submission")
	logger.Debug("Received %d rows", len(rows))

	examples, report, err := s.ValidateAndStage(rows)
	if err != nil {
		return &domain.SubmitResult{IngestReport: report}, err
	}
	logger.Info("Accepted %d rows, rejected %d", report.AcceptedCount, len(report.Rejected))

	if err := s.corpus.Append(ctx, examples); err != nil {
		return &domain.SubmitResult{IngestReport: report}, fmt.Errorf("append to corpus: %w", err)
	}

	result := &domain.SubmitResult{IngestReport: report}
	if s.retrainOnSubmit && s.orchestrator != nil {
		result.TriggeredRetrain = true
		if _, err := s.orchestrator.Retrain(ctx, nil); err != nil {
			if errors.Is(err, domain.ErrRetrainInProgress) {
				// Another cycle is running; it or the next one will
				// pick up the appended examples.
				result.TriggeredRetrain = false
				logger.Debug("Retrain already in progress, submission merged only")
			} else {
				logger.Warn("Retrain after submission failed: %v", err)
			}
		}
	}
	return result, nil
}
