package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/iconidentify/splitdash/internal/domain"
	"github.com/iconidentify/splitdash/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupSplitService(t *testing.T) *SplitService {
	t.Helper()
	return NewSplitService(repository.NewInMemorySplitRepository(), testLogger())
}

func TestSplitService_Create(t *testing.T) {
	svc := setupSplitService(t)
	ctx := context.Background()

	split, err := svc.Create(ctx, SplitInput{Label: "Panel One", URL: "http://10.0.0.1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if split.ID == "" {
		t.Error("ID should not be empty")
	}
	if split.Name != "panel-one" {
		t.Errorf("Name = %q, want %q", split.Name, "panel-one")
	}
	if split.Label != "Panel One" {
		t.Errorf("Label = %q, want %q", split.Label, "Panel One")
	}
	if split.URL != "http://10.0.0.1" {
		t.Errorf("URL = %q, want %q", split.URL, "http://10.0.0.1")
	}
}

func TestSplitService_Create_UsesProvidedName(t *testing.T) {
	svc := setupSplitService(t)

	split, err := svc.Create(context.Background(), SplitInput{Label: "Panel One", URL: "http://10.0.0.1", Name: "Custom Name"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if split.Name != "custom-name" {
		t.Errorf("Name = %q, want slugified custom-name", split.Name)
	}
}

func TestSplitService_Create_SanitizesLabel(t *testing.T) {
	svc := setupSplitService(t)

	split, err := svc.Create(context.Background(), SplitInput{
		Label: `  <script>alert(1)</script><b>Tom & Jerry</b> `,
		URL:   "http://10.0.0.1",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if split.Label != "Tom & Jerry" {
		t.Errorf("Label = %q, want %q", split.Label, "Tom & Jerry")
	}
	if split.Name != "tom--jerry" {
		t.Errorf("Name = %q, want %q", split.Name, "tom--jerry")
	}
}

func TestSplitService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      SplitInput
		wantErr error
	}{
		{"empty label", SplitInput{Label: "   ", URL: "http://x"}, domain.ErrEmptyLabel},
		{"markup only label", SplitInput{Label: "<i></i>", URL: "http://x"}, domain.ErrEmptyLabel},
		{"empty url", SplitInput{Label: "A", URL: ""}, domain.ErrEmptyURL},
		{"relative url", SplitInput{Label: "A", URL: "/admin"}, domain.ErrInvalidURL},
		{"ftp url", SplitInput{Label: "A", URL: "ftp://10.0.0.1"}, domain.ErrInvalidURL},
		{"label without slug", SplitInput{Label: "!!!", URL: "http://x"}, domain.ErrEmptyName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setupSplitService(t)
			_, err := svc.Create(context.Background(), tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSplitService_Create_Duplicate(t *testing.T) {
	svc := setupSplitService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, SplitInput{Label: "NAS", URL: "http://10.0.0.5"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := svc.Create(ctx, SplitInput{Label: "nas", URL: "http://10.0.0.6"})
	if !errors.Is(err, domain.ErrDuplicateSplit) {
		t.Errorf("Create duplicate error = %v, want ErrDuplicateSplit", err)
	}
}

func TestSplitService_Update(t *testing.T) {
	svc := setupSplitService(t)
	ctx := context.Background()

	created, _ := svc.Create(ctx, SplitInput{Label: "Old Label", URL: "http://10.0.0.1"})

	updated, err := svc.Update(ctx, created.ID, SplitInput{Label: "New Label", URL: "https://10.0.0.2"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.ID != created.ID {
		t.Errorf("ID changed from %q to %q", created.ID, updated.ID)
	}
	if updated.Name != "new-label" || updated.Label != "New Label" || updated.URL != "https://10.0.0.2" {
		t.Errorf("updated = %+v", updated)
	}

	stored, _ := svc.Get(ctx, created.ID)
	if *stored != *updated {
		t.Errorf("stored = %+v, want %+v", stored, updated)
	}
}

func TestSplitService_Update_NotFound(t *testing.T) {
	svc := setupSplitService(t)

	_, err := svc.Update(context.Background(), "nonexistent", SplitInput{Label: "A", URL: "http://x"})
	if !errors.Is(err, domain.ErrSplitNotFound) {
		t.Errorf("expected ErrSplitNotFound, got %v", err)
	}

	var splitErr *domain.SplitError
	if !errors.As(err, &splitErr) || splitErr.Op != "update" || splitErr.ID != "nonexistent" {
		t.Errorf("expected SplitError for update, got %#v", err)
	}
}

func TestSplitService_Delete(t *testing.T) {
	svc := setupSplitService(t)
	ctx := context.Background()

	created, _ := svc.Create(ctx, SplitInput{Label: "Gone Soon", URL: "http://10.0.0.1"})

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrSplitNotFound) {
		t.Errorf("Get after delete error = %v, want ErrSplitNotFound", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, domain.ErrSplitNotFound) {
		t.Errorf("second Delete error = %v, want ErrSplitNotFound", err)
	}
}

func TestSplitService_List_OrderedByLabel(t *testing.T) {
	svc := setupSplitService(t)
	ctx := context.Background()

	for _, label := range []string{"Charlie", "Alpha", "Bravo"} {
		if _, err := svc.Create(ctx, SplitInput{Label: label, URL: "http://10.0.0.1"}); err != nil {
			t.Fatalf("Create %s failed: %v", label, err)
		}
	}

	splits, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{"Alpha", "Bravo", "Charlie"}
	for i, s := range splits {
		if s.Label != want[i] {
			t.Errorf("splits[%d] = %q, want %q", i, s.Label, want[i])
		}
	}
}

func TestBackend_DerivesNameFromDraft(t *testing.T) {
	svc := setupSplitService(t)
	backend := NewBackend(svc)
	ctx := context.Background()

	created, err := backend.Create(ctx, domain.Draft{Label: "Panel One", URL: "http://10.0.0.1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Name != "panel-one" {
		t.Errorf("Name = %q, want panel-one", created.Name)
	}

	updated, err := backend.Update(ctx, created.ID, domain.Draft{Label: "Panel Two", URL: "http://10.0.0.2"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.ID != created.ID || updated.Name != "panel-two" {
		t.Errorf("updated = %+v", updated)
	}

	list, _ := backend.List(ctx)
	if len(list) != 1 {
		t.Fatalf("List len = %d, want 1", len(list))
	}

	if err := backend.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
}

func TestSplitService_Create_NameFollowsSanitizedLabel(t *testing.T) {
	svc := setupSplitService(t)
	ctx := context.Background()

	// Clients derive the name from the label they typed, markup included.
	raw := "<b>Panel</b>"
	split, err := svc.Create(ctx, SplitInput{Label: raw, URL: "http://10.0.0.1", Name: domain.Slugify(raw)})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if split.Label != "Panel" || split.Name != "panel" {
		t.Errorf("split = %q/%q, want Panel/panel", split.Label, split.Name)
	}
	if split.Name != domain.Slugify(split.Label) {
		t.Errorf("Name %q is not the slug of Label %q", split.Name, split.Label)
	}

	updated, err := svc.Update(ctx, split.ID, SplitInput{Label: "<i>Router</i> Two", URL: "http://10.0.0.2", Name: domain.Slugify("<i>Router</i> Two")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "router-two" {
		t.Errorf("updated Name = %q, want router-two", updated.Name)
	}
}

func TestBackend_NameFromSanitizedLabel(t *testing.T) {
	backend := NewBackend(setupSplitService(t))

	created, err := backend.Create(context.Background(), domain.Draft{Label: "<b>Panel</b>", URL: "http://10.0.0.1"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Label != "Panel" || created.Name != "panel" {
		t.Errorf("created = %+v, want label Panel name panel", created)
	}
}
