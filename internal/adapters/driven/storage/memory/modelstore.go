// Package memory provides in-memory implementations of the storage
// ports. Used in tests and as a reference for the SQLite adapters.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/verilabs/veritext/internal/core/domain"
	"github.com/verilabs/veritext/internal/core/ports/driven"
)

// Ensure ModelStore implements the interface.
var _ driven.ModelStore = (*ModelStore)(nil)

// ModelStore is an in-memory implementation of driven.ModelStore.
type ModelStore struct {
	mu       sync.RWMutex
	versions map[string]domain.ModelVersion
	activeID string
}

// NewModelStore creates a new in-memory model store.
func NewModelStore() *ModelStore {
	return &ModelStore{versions: make(map[string]domain.ModelVersion)}
}

// GetActive retrieves the currently active model version.
func (s *ModelStore) GetActive(_ context.Context) (*domain.ModelVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeID == "" {
		return nil, domain.ErrNoModel
	}
	v := s.versions[s.activeID]
	return &v, nil
}

// Publish stores the candidate and swaps the active pointer to it.
// Store and swap happen under one lock, so readers see either the old
// or the new active version, never a partial state.
func (s *ModelStore) Publish(_ context.Context, candidate *domain.ModelVersion) error {
	if candidate == nil || candidate.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[candidate.ID] = *candidate
	s.activeID = candidate.ID
	return nil
}

// Get retrieves a model version by id.
func (s *ModelStore) Get(_ context.Context, id string) (*domain.ModelVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.versions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

// List returns all stored versions, newest first.
func (s *ModelStore) List(_ context.Context) ([]domain.ModelVersion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ModelVersion, 0, len(s.versions))
	for id := range s.versions {
		out = append(out, s.versions[id])
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Prune deletes non-active versions beyond the newest keep of them.
func (s *ModelStore) Prune(_ context.Context, keep int) error {
	if keep < 0 {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	inactive := make([]domain.ModelVersion, 0, len(s.versions))
	for id := range s.versions {
		if id != s.activeID {
			inactive = append(inactive, s.versions[id])
		}
	}
	sort.Slice(inactive, func(i, j int) bool {
		return inactive[i].CreatedAt.After(inactive[j].CreatedAt)
	})
	for _, v := range inactive[min(keep, len(inactive)):] {
		delete(s.versions, v.ID)
	}
	return nil
}
