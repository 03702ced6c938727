package dashboard

import "sync"

// History is a back/forward stack of visited paths.
type History struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewHistory starts a history at path.
func NewHistory(path string) *History {
	return &History{entries: []string{path}}
}

// Current returns the path at the cursor.
func (h *History) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Push adds path after the cursor, dropping any forward entries.
func (h *History) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.index+1], path)
	h.index++
}

// Replace overwrites the entry at the cursor.
func (h *History) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = path
}

// Back moves the cursor one entry back.
func (h *History) Back() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index == 0 {
		return false
	}
	h.index--
	return true
}

// Forward moves the cursor one entry forward.
func (h *History) Forward() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.index >= len(h.entries)-1 {
		return false
	}
	h.index++
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
