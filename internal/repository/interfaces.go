package repository

import (
	"context"

	"github.com/iconidentify/splitdash/internal/domain"
)

// SplitRepository handles split persistence.
type SplitRepository interface {
	// List returns all splits ordered by label.
	List(ctx context.Context) ([]domain.Split, error)

	// Get retrieves a split by ID.
	Get(ctx context.Context, id domain.SplitID) (*domain.Split, error)

	// GetByName retrieves the split routed under name.
	GetByName(ctx context.Context, name string) (*domain.Split, error)

	// Create stores a new split. Names are unique.
	Create(ctx context.Context, split *domain.Split) error

	// Update replaces name, label and url of an existing split.
	Update(ctx context.Context, split *domain.Split) error

	// Delete removes a split.
	Delete(ctx context.Context, id domain.SplitID) error

	// Count returns the number of stored splits.
	Count(ctx context.Context) (int, error)
}
