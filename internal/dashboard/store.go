package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/iconidentify/splitdash/internal/domain"
)

// Store is the single writable copy of the split list. Order is the order
// the backend listed the splits in, followed by creations in creation order.
type Store struct {
	backend Backend

	mu      sync.RWMutex
	splits  []domain.Split
	loaded  bool
	loadErr error

	subMu       sync.Mutex
	subscribers map[uint64]func([]domain.Split)
	subSeq      uint64
}

// NewStore creates an empty store synchronised with backend.
func NewStore(backend Backend) *Store {
	return &Store{
		backend:     backend,
		subscribers: make(map[uint64]func([]domain.Split)),
	}
}

// Load replaces the store contents with the backend list. On failure the
// store stays empty and the error is kept for LoadErr.
func (s *Store) Load(ctx context.Context) error {
	splits, err := s.backend.List(ctx)

	s.mu.Lock()
	s.loaded = true
	if err != nil {
		s.loadErr = fmt.Errorf("list splits: %w", err)
		s.splits = nil
		s.mu.Unlock()
		return s.loadErr
	}
	s.loadErr = nil
	s.splits = append([]domain.Split(nil), splits...)
	s.mu.Unlock()

	s.notify()
	return nil
}

// Loaded reports whether Load has completed, successfully or not.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// LoadErr returns the error of the last Load, if any.
func (s *Store) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Splits returns a copy of the split list.
func (s *Store) Splits() []domain.Split {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Split(nil), s.splits...)
}

// Len returns the number of splits.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.splits)
}

// Find returns the first split routed under name.
func (s *Store) Find(name string) (domain.Split, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sp := range s.splits {
		if sp.Name == name {
			return sp, true
		}
	}
	return domain.Split{}, false
}

// Get returns the split with the given ID.
func (s *Store) Get(id domain.SplitID) (domain.Split, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Split{}, false
	}
	return s.splits[i], true
}

// Create sends the draft to the backend and appends the returned record.
func (s *Store) Create(ctx context.Context, d domain.Draft) (domain.Split, error) {
	created, err := s.backend.Create(ctx, d)
	if err != nil {
		return domain.Split{}, domain.NewSplitError("", "create", err)
	}

	s.mu.Lock()
	s.splits = append(s.splits, created)
	s.mu.Unlock()

	s.notify()
	return created, nil
}

// Update sends the draft for split id and, once the backend accepts it,
// replaces the stored fields while keeping the original ID.
func (s *Store) Update(ctx context.Context, id domain.SplitID, d domain.Draft) (domain.Split, error) {
	existing, ok := s.Get(id)
	if !ok {
		return domain.Split{}, domain.NewSplitError(id, "update", domain.ErrSplitNotFound)
	}

	returned, err := s.backend.Update(ctx, id, d)
	if err != nil {
		return domain.Split{}, domain.NewSplitError(id, "update", err)
	}
	merged := mergeSplit(existing, d, returned)

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.splits[i] = merged
	}
	s.mu.Unlock()

	s.notify()
	return merged, nil
}

// Delete removes split id from the backend, then from the store.
func (s *Store) Delete(ctx context.Context, id domain.SplitID) error {
	if _, ok := s.Get(id); !ok {
		return domain.NewSplitError(id, "delete", domain.ErrSplitNotFound)
	}

	if err := s.backend.Delete(ctx, id); err != nil {
		return domain.NewSplitError(id, "delete", err)
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.splits = append(s.splits[:i:i], s.splits[i+1:]...)
	}
	s.mu.Unlock()

	s.notify()
	return nil
}

// Subscribe registers fn to receive the split list after every change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func([]domain.Split)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.subSeq++
	id := s.subSeq
	s.subscribers[id] = fn

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func([]domain.Split), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	snapshot := s.Splits()
	for _, fn := range fns {
		fn(snapshot)
	}
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id domain.SplitID) int {
	for i, sp := range s.splits {
		if sp.ID == id {
			return i
		}
	}
	return -1
}

// mergeSplit applies the submitted draft to existing and lets non-empty
// fields from the backend response win, so server-side normalisation is kept.
func mergeSplit(existing domain.Split, submitted domain.Draft, returned domain.Split) domain.Split {
	merged := existing.Apply(submitted)
	if returned.Name != "" {
		merged.Name = returned.Name
	}
	if returned.Label != "" {
		merged.Label = returned.Label
	}
	if returned.URL != "" {
		merged.URL = returned.URL
	}
	return merged
}
