package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultLayoutNamespace keys the slot holding the saved-layout array.
const DefaultLayoutNamespace = "composer.layouts"

// FileLayoutStore persists layouts as a single namespaced slot holding a
// JSON-encoded array. Appends are read-modify-write over the whole array,
// not a transactional log; the store assumes a single writing session.
type FileLayoutStore struct {
	path      string
	namespace string
	mu        sync.Mutex
}

// FileLayoutStoreOption customizes the store.
type FileLayoutStoreOption func(*FileLayoutStore)

// WithNamespace overrides the slot key.
func WithNamespace(ns string) FileLayoutStoreOption {
	return func(s *FileLayoutStore) {
		s.namespace = ns
	}
}

// NewFileLayoutStore builds a store writing to the given file path.
func NewFileLayoutStore(path string, opts ...FileLayoutStoreOption) *FileLayoutStore {
	s := &FileLayoutStore{
		path:      path,
		namespace: DefaultLayoutNamespace,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Append reads the existing array, pushes the layout, and writes the whole
// document back. Failures surface to the caller so the UI can retry or warn.
func (s *FileLayoutStore) Append(ctx context.Context, layout DashboardLayout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc[s.namespace] = append(doc[s.namespace], layout)
	return s.write(doc)
}

// LoadAll returns the stored layouts in append order.
func (s *FileLayoutStore) LoadAll(ctx context.Context) ([]DashboardLayout, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	return doc[s.namespace], nil
}

func (s *FileLayoutStore) read() (map[string][]DashboardLayout, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string][]DashboardLayout{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("canvas: read layout store %s: %w", s.path, err)
	}
	doc := map[string][]DashboardLayout{}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("canvas: decode layout store %s: %w", s.path, err)
	}
	return doc, nil
}

func (s *FileLayoutStore) write(doc map[string][]DashboardLayout) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("canvas: encode layout store: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("canvas: create layout store dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("canvas: write layout store %s: %w", s.path, err)
	}
	return nil
}

var _ LayoutStore = (*FileLayoutStore)(nil)
