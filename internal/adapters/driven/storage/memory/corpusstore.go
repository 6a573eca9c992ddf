package memory

import (
	"context"
	"sync"

	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/ports/driven"
)

// Ensure CorpusStore implements the interface.
var _ driven.CorpusStore = (*CorpusStore)(nil)

// CorpusStore is an in-memory implementation of driven.CorpusStore.
// Appends are guarded by a single mutation lock, so two concurrent
// submissions never interleave.
type CorpusStore struct {
	mu       sync.RWMutex
	examples []domain.TrainingExample
}

// NewCorpusStore creates a new in-memory corpus store.
func NewCorpusStore() *CorpusStore {
	return &CorpusStore{}
}

// Append adds examples to the end of the corpus atomically.
func (s *CorpusStore) Append(_ context.Context, examples []domain.TrainingExample) error {
	if len(examples) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.examples = append(s.examples, examples...)
	return nil
}

// All returns every example in insertion order.
func (s *CorpusStore) All(_ context.Context) ([]domain.TrainingExample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TrainingExample, len(s.examples))
	copy(out, s.examples)
	return out, nil
}

// Len returns the current corpus length.
func (s *CorpusStore) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.examples), nil
}
