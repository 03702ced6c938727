package service

import (
	"context"
	"html"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/iconidentify/splitdash/internal/domain"
	"github.com/iconidentify/splitdash/internal/repository"
)

// SplitInput carries the fields accepted on create and update.
// Name is optional; it is derived from Label when empty.
type SplitInput struct {
	Label string
	URL   string
	Name  string
}

// SplitService handles split business logic.
type SplitService struct {
	repo      repository.SplitRepository
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewSplitService creates a new split service.
func NewSplitService(repo repository.SplitRepository, logger *slog.Logger) *SplitService {
	return &SplitService{
		repo:      repo,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// generateSplitID creates a new opaque split identifier.
func generateSplitID() domain.SplitID {
	return domain.SplitID(uuid.New().String())
}

// List returns all splits ordered by label.
func (s *SplitService) List(ctx context.Context) ([]domain.Split, error) {
	return s.repo.List(ctx)
}

// Get retrieves a split by ID.
func (s *SplitService) Get(ctx context.Context, id domain.SplitID) (*domain.Split, error) {
	return s.repo.Get(ctx, id)
}

// GetByName retrieves the split routed under name.
func (s *SplitService) GetByName(ctx context.Context, name string) (*domain.Split, error) {
	return s.repo.GetByName(ctx, name)
}

// Count returns the number of splits.
func (s *SplitService) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Create validates the input and stores a new split.
func (s *SplitService) Create(ctx context.Context, in SplitInput) (*domain.Split, error) {
	split, err := s.normalize(in)
	if err != nil {
		return nil, domain.NewSplitError("", "create", err)
	}
	split.ID = generateSplitID()

	if err := s.repo.Create(ctx, &split); err != nil {
		return nil, domain.NewSplitError("", "create", err)
	}

	s.logger.Info("created split", "id", split.ID, "name", split.Name)
	return &split, nil
}

// Update replaces the fields of an existing split, keeping its ID.
func (s *SplitService) Update(ctx context.Context, id domain.SplitID, in SplitInput) (*domain.Split, error) {
	split, err := s.normalize(in)
	if err != nil {
		return nil, domain.NewSplitError(id, "update", err)
	}
	split.ID = id

	if err := s.repo.Update(ctx, &split); err != nil {
		return nil, domain.NewSplitError(id, "update", err)
	}

	s.logger.Info("updated split", "id", split.ID, "name", split.Name)
	return &split, nil
}

// Delete removes a split.
func (s *SplitService) Delete(ctx context.Context, id domain.SplitID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return domain.NewSplitError(id, "delete", err)
	}

	s.logger.Info("deleted split", "id", id)
	return nil
}

// normalize strips markup, trims and validates the input, deriving the name.
func (s *SplitService) normalize(in SplitInput) (domain.Split, error) {
	label := strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(in.Label)))
	if label == "" {
		return domain.Split{}, domain.ErrEmptyLabel
	}

	rawURL := strings.TrimSpace(in.URL)
	if rawURL == "" {
		return domain.Split{}, domain.ErrEmptyURL
	}
	if err := validateTargetURL(rawURL); err != nil {
		return domain.Split{}, err
	}

	// A name that is just the slug of the submitted label is re-derived from
	// the sanitised label so markup never leaks into the route key.
	name := domain.Slugify(in.Name)
	if name == "" || name == domain.Slugify(in.Label) {
		name = domain.Slugify(label)
	}
	if strings.Trim(name, "-") == "" {
		return domain.Split{}, domain.ErrEmptyName
	}

	return domain.Split{
		Name:  name,
		Label: label,
		URL:   rawURL,
	}, nil
}

func validateTargetURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return domain.ErrInvalidURL
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.ErrInvalidURL
	}
	return nil
}
