package dashboard

import (
	"context"

	"github.com/iconidentify/splitdash/internal/domain"
)

// Backend is the split collection the store is synchronised with.
type Backend interface {
	List(ctx context.Context) ([]domain.Split, error)
	Create(ctx context.Context, d domain.Draft) (domain.Split, error)
	Update(ctx context.Context, id domain.SplitID, d domain.Draft) (domain.Split, error)
	Delete(ctx context.Context, id domain.SplitID) error
}
