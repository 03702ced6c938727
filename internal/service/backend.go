package service

import (
	"context"

	"github.com/iconidentify/splitdash/internal/domain"
)

// Backend exposes SplitService through the list/create/update/delete
// contract the dashboard client core consumes, without an HTTP round trip.
type Backend struct {
	svc *SplitService
}

// NewBackend wraps svc.
func NewBackend(svc *SplitService) *Backend {
	return &Backend{svc: svc}
}

// List returns all splits.
func (b *Backend) List(ctx context.Context) ([]domain.Split, error) {
	return b.svc.List(ctx)
}

// Create stores the draft. The name is derived from the sanitised label.
func (b *Backend) Create(ctx context.Context, d domain.Draft) (domain.Split, error) {
	s, err := b.svc.Create(ctx, SplitInput{Label: d.Label, URL: d.URL})
	if err != nil {
		return domain.Split{}, err
	}
	return *s, nil
}

// Update replaces the split fields with the draft.
func (b *Backend) Update(ctx context.Context, id domain.SplitID, d domain.Draft) (domain.Split, error) {
	s, err := b.svc.Update(ctx, id, SplitInput{Label: d.Label, URL: d.URL})
	if err != nil {
		return domain.Split{}, err
	}
	return *s, nil
}

// Delete removes the split.
func (b *Backend) Delete(ctx context.Context, id domain.SplitID) error {
	return b.svc.Delete(ctx, id)
}
