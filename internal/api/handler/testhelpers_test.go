package handler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/iconidentify/splitdash/internal/repository"
	"github.com/iconidentify/splitdash/internal/service"
)

// testLogger returns a silent logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockSplitCounter is a test implementation of SplitCounter.
type mockSplitCounter struct {
	count int
	err   error
}

func (m *mockSplitCounter) Count(ctx context.Context) (int, error) {
	return m.count, m.err
}

// setupSplitService returns a service over a fresh in-memory repository.
func setupSplitService(t *testing.T) (*service.SplitService, *repository.InMemorySplitRepository) {
	t.Helper()
	repo := repository.NewInMemorySplitRepository()
	return service.NewSplitService(repo, testLogger()), repo
}

// seedSplit creates a split through the service and fails the test on error.
func seedSplit(t *testing.T, svc *service.SplitService, label, url string) string {
	t.Helper()
	sp, err := svc.Create(context.Background(), service.SplitInput{Label: label, URL: url})
	if err != nil {
		t.Fatalf("seed %q: %v", label, err)
	}
	return sp.ID.String()
}
