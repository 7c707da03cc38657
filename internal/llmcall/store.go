package llmcall

import "sync"

// DefaultStoreCapacity bounds the in-memory call log.
const DefaultStoreCapacity = 1000

// Store is a bounded in-memory call log. The oldest records are
// discarded once capacity is reached.
type Store struct {
	mu       sync.RWMutex
	calls    []*Call
	capacity int
}

// NewStore creates a store with the given capacity (or the default
// when capacity <= 0).
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultStoreCapacity
	}
	return &Store{capacity: capacity}
}

// Add appends a call record, evicting the oldest if full.
func (s *Store) Add(c *Call) {
	if c == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, c)
	if len(s.calls) > s.capacity {
		s.calls = s.calls[len(s.calls)-s.capacity:]
	}
}

// Recent returns up to n calls, newest first.
func (s *Store) Recent(n int) []*Call {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n <= 0 || n > len(s.calls) {
		n = len(s.calls)
	}
	out := make([]*Call, 0, n)
	for i := len(s.calls) - 1; i >= len(s.calls)-n; i-- {
		out = append(out, s.calls[i])
	}
	return out
}

// Len returns the number of stored calls.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.calls)
}
