package listing

import "sync"

// History is the address bar the controller keeps in sync. Push adds a
// navigable entry; Replace rewrites the current one.
type History interface {
	Push(query string)
	Replace(query string)
}

// NopHistory discards every update.
type NopHistory struct{}

func (NopHistory) Push(string)    {}
func (NopHistory) Replace(string) {}

// MemoryHistory is an in-process session history with back/forward
// navigation. It is safe for concurrent use.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	index   int
}

// NewMemoryHistory returns a history whose only entry is initial.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{entries: []string{initial}}
}

// Push discards any forward entries and appends query.
func (h *MemoryHistory) Push(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], query)
	h.index++
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = query
}

// Current returns the current entry.
func (h *MemoryHistory) Current() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

// Back moves one entry back and returns it. ok is false at the start.
func (h *MemoryHistory) Back() (query string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == 0 {
		return h.entries[0], false
	}
	h.index--
	return h.entries[h.index], true
}

// Forward moves one entry forward and returns it. ok is false at the end.
func (h *MemoryHistory) Forward() (query string, ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.index == len(h.entries)-1 {
		return h.entries[h.index], false
	}
	h.index++
	return h.entries[h.index], true
}

// Len returns the number of entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
