package driven

import (
	"context"

	"github.com/verilabs/veritext/internal/core/domain"
)

// ModelStore persists model versions durably.
// At most one version is active at any time; readers never observe a
// torn or partially written version.
type ModelStore interface {
	// GetActive retrieves the currently active model version.
	// Returns domain.ErrNoModel if no version has ever been published.
	GetActive(ctx context.Context) (*domain.ModelVersion, error)

	// Publish stores the candidate and atomically swaps the active
	// pointer to it. All-or-nothing: any failure leaves the prior
	// active version intact. The old version remains retrievable by id.
	Publish(ctx context.Context, candidate *domain.ModelVersion) error

	// Get retrieves a model version by id.
	// Returns domain.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*domain.ModelVersion, error)

	// List returns all stored versions, newest first.
	List(ctx context.Context) ([]domain.ModelVersion, error)

	// Prune deletes non-active versions, keeping the newest keep of
	// them. The active version is never pruned.
	Prune(ctx context.Context, keep int) error
}
