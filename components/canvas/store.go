package canvas

import (
	"context"
	"sync"
)

// InMemoryLayoutStore provides a concurrency-safe default store for demos
// and tests.
type InMemoryLayoutStore struct {
	mu      sync.RWMutex
	layouts []DashboardLayout
}

// NewInMemoryLayoutStore creates an empty layout store.
func NewInMemoryLayoutStore() *InMemoryLayoutStore {
	return &InMemoryLayoutStore{}
}

// Append adds a saved layout to the end of the list.
func (s *InMemoryLayoutStore) Append(_ context.Context, layout DashboardLayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts = append(s.layouts, layout)
	return nil
}

// LoadAll returns every saved layout in append order.
func (s *InMemoryLayoutStore) LoadAll(_ context.Context) ([]DashboardLayout, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]DashboardLayout, len(s.layouts))
	copy(out, s.layouts)
	return out, nil
}

var _ LayoutStore = (*InMemoryLayoutStore)(nil)
