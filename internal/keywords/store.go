package keywords

import (
	"fmt"
	"math/rand"
	"sync"
)

// Store is an ordered, in-memory collection of search keywords. Keywords
// are append-only and may repeat; the store lives for the process lifetime.
type Store struct {
	mu    sync.RWMutex
	items []string
}

// New creates a store seeded with the given keywords, in order.
func New(seed []string) *Store {
	items := make([]string, len(seed))
	copy(items, seed)
	return &Store{items: items}
}

// Add appends a keyword. Duplicates and empty strings are accepted as-is.
func (s *Store) Add(keyword string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, keyword)
}

// List returns a copy of the current keywords in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the number of stored keywords.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

// Sample returns n keywords drawn uniformly at random without replacement.
// Distinct positions are sampled, so a keyword stored twice can appear twice.
func (s *Store) Sample(n int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.items) {
		return nil, fmt.Errorf("cannot sample %d keywords from %d", n, len(s.items))
	}

	out := make([]string, 0, n)
	for _, idx := range rand.Perm(len(s.items))[:n] {
		out = append(out, s.items[idx])
	}
	return out, nil
}
