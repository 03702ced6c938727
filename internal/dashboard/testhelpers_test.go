package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/iconidentify/splitdash/internal/domain"
)

var errBackendDown = errors.New("backend unavailable")

// mockBackend is an in-memory Backend with switchable failures.
type mockBackend struct {
	mu     sync.Mutex
	splits []domain.Split
	nextID int

	listErr   error
	createErr error
	updateErr error
	deleteErr error

	calls []string
}

func newMockBackend(splits ...domain.Split) *mockBackend {
	return &mockBackend{splits: splits, nextID: len(splits) + 1}
}

func (m *mockBackend) List(ctx context.Context) ([]domain.Split, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "list")
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.Split(nil), m.splits...), nil
}

func (m *mockBackend) Create(ctx context.Context, d domain.Draft) (domain.Split, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "create")
	if m.createErr != nil {
		return domain.Split{}, m.createErr
	}
	sp := d.Split(domain.SplitID(fmt.Sprintf("%d", m.nextID)))
	m.nextID++
	m.splits = append(m.splits, sp)
	return sp, nil
}

func (m *mockBackend) Update(ctx context.Context, id domain.SplitID, d domain.Draft) (domain.Split, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "update")
	if m.updateErr != nil {
		return domain.Split{}, m.updateErr
	}
	for i, sp := range m.splits {
		if sp.ID == id {
			m.splits[i] = sp.Apply(d)
			return m.splits[i], nil
		}
	}
	return domain.Split{}, domain.ErrSplitNotFound
}

func (m *mockBackend) Delete(ctx context.Context, id domain.SplitID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete")
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, sp := range m.splits {
		if sp.ID == id {
			m.splits = append(m.splits[:i], m.splits[i+1:]...)
			return nil
		}
	}
	return domain.ErrSplitNotFound
}

func (m *mockBackend) callCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == name {
			n++
		}
	}
	return n
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleSplits() []domain.Split {
	return []domain.Split{
		{ID: "1", Name: "a", Label: "A", URL: "http://10.0.0.1"},
		{ID: "2", Name: "b", Label: "B", URL: "http://10.0.0.2"},
	}
}

func startDashboard(tb interface {
	Helper()
	Fatalf(string, ...any)
}, backend *mockBackend, cfg Config, path string) (*Dashboard, Page) {
	tb.Helper()
	d := New(backend, &MemoryThemeStorage{}, cfg, testLogger())
	page, err := d.Start(context.Background(), path)
	if err != nil && backend.listErr == nil {
		tb.Fatalf("Start() error = %v", err)
	}
	return d, page
}

func activeItems(p Page) []SidebarItem {
	var out []SidebarItem
	for _, it := range p.Sidebar.Items {
		if it.Active {
			out = append(out, it)
		}
	}
	return out
}

// blockingBackend holds Delete until release is closed.
type blockingBackend struct {
	*mockBackend
	started chan struct{}
	release chan struct{}
}

func newBlockingBackend(splits ...domain.Split) *blockingBackend {
	return &blockingBackend{
		mockBackend: newMockBackend(splits...),
		started:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (b *blockingBackend) Delete(ctx context.Context, id domain.SplitID) error {
	close(b.started)
	<-b.release
	return b.mockBackend.Delete(ctx, id)
}
