package driving

import (
	"context"

	"github.com/verilabs/veritext/internal/core/domain"
)

// DatasetService accepts user-submitted labelled examples.
type DatasetService interface {
	// Submit validates rows, appends accepted examples to the corpus
	// and reports the per-row outcome. Returns domain.ErrEmptyDataset
	// (with the report) when no row passes validation; the corpus is
	// untouched in that case.
	Submit(ctx context.Context, rows []domain.DatasetRow) (*domain.SubmitResult, error)
}
