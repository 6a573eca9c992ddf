package driven

import (
	"context"

	"github.com/verilabs/veritext/internal/core/domain"
)

// CorpusStore persists the append-only training corpus.
// The corpus grows monotonically; examples are never deleted.
type CorpusStore interface {
	// Append adds examples to the end of the corpus in one atomic
	// operation. Two concurrent appends never interleave.
	Append(ctx context.Context, examples []domain.TrainingExample) error

	// All returns every example in insertion order.
	All(ctx context.Context) ([]domain.TrainingExample, error)

	// Len returns the current corpus length.
	Len(ctx context.Context) (int, error)
}
