package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/iconidentify/splitdash/internal/domain"
)

// InMemorySplitRepository implements SplitRepository using in-memory storage.
type InMemorySplitRepository struct {
	mu     sync.RWMutex
	splits map[domain.SplitID]domain.Split
}

// NewInMemorySplitRepository creates a new in-memory split repository.
func NewInMemorySplitRepository() *InMemorySplitRepository {
	return &InMemorySplitRepository{
		splits: make(map[domain.SplitID]domain.Split),
	}
}

// List returns all splits ordered by label.
func (r *InMemorySplitRepository) List(ctx context.Context) ([]domain.Split, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Split, 0, len(r.splits))
	for _, s := range r.splits {
		result = append(result, s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Label == result[j].Label {
			return result[i].ID < result[j].ID
		}
		return result[i].Label < result[j].Label
	})

	return result, nil
}

// Get retrieves a split by ID.
func (r *InMemorySplitRepository) Get(ctx context.Context, id domain.SplitID) (*domain.Split, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.splits[id]
	if !ok {
		return nil, domain.ErrSplitNotFound
	}
	return &s, nil
}

// GetByName retrieves the split routed under name.
func (r *InMemorySplitRepository) GetByName(ctx context.Context, name string) (*domain.Split, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.splits {
		if s.Name == name {
			found := s
			return &found, nil
		}
	}
	return nil, domain.ErrSplitNotFound
}

// Create stores a new split.
func (r *InMemorySplitRepository) Create(ctx context.Context, split *domain.Split) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.splits {
		if s.Name == split.Name {
			return domain.ErrDuplicateSplit
		}
	}

	r.splits[split.ID] = *split
	return nil
}

// Update replaces an existing split.
func (r *InMemorySplitRepository) Update(ctx context.Context, split *domain.Split) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.splits[split.ID]; !ok {
		return domain.ErrSplitNotFound
	}

	// Check for duplicate name (excluding current split)
	for _, s := range r.splits {
		if s.ID != split.ID && s.Name == split.Name {
			return domain.ErrDuplicateSplit
		}
	}

	r.splits[split.ID] = *split
	return nil
}

// Delete removes a split.
func (r *InMemorySplitRepository) Delete(ctx context.Context, id domain.SplitID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.splits[id]; !ok {
		return domain.ErrSplitNotFound
	}

	delete(r.splits, id)
	return nil
}

// Count returns the number of stored splits.
func (r *InMemorySplitRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.splits), nil
}

// Clear removes all splits (useful for testing).
func (r *InMemorySplitRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.splits = make(map[domain.SplitID]domain.Split)
}
