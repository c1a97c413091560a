// Package wishlist manages the user's saved product set: local persistence,
// the shareable token encoding, and the markdown export.
package wishlist

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is the persisted wishlist: an ordered set of product names.
// Insertion order is preserved for display stability. Every mutation is
// written through to disk before it returns, so a render that follows a
// toggle always sees persisted state.
type Store struct {
	mu    sync.Mutex
	path  string
	names []string
	index map[string]int
}

// NewStore creates a store persisting to path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{path: path, index: make(map[string]int)}
}

// Load reads the persisted wishlist. A missing or corrupt file leaves the
// store empty and is reported for logging, never treated as fatal.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read wishlist: %w", err)
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("parse wishlist: %w", err)
	}
	s.replaceLocked(names)
	return nil
}

// Toggle flips membership for name, persists, and returns the new
// membership state. The returned error is a persistence failure; the
// in-memory state is already updated when it occurs.
func (s *Store) Toggle(name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[name]; ok {
		s.names = append(s.names[:i], s.names[i+1:]...)
		delete(s.index, name)
		for j := i; j < len(s.names); j++ {
			s.index[s.names[j]] = j
		}
		return false, s.saveLocked()
	}
	s.index[name] = len(s.names)
	s.names = append(s.names, name)
	return true, s.saveLocked()
}

// Contains reports membership.
func (s *Store) Contains(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[name]
	return ok
}

// Names returns the wishlist in insertion order.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of saved names.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.names)
}

// Clear removes every entry and persists the empty set. Callers must have
// confirmed the action with the user first.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaceLocked(nil)
	return s.saveLocked()
}

// Import merges names into the store, appending only the ones not already
// present, and persists. Used when the user explicitly accepts a shared
// wishlist; shared views never merge on their own.
func (s *Store) Import(names []string) (added int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, n := range names {
		if _, ok := s.index[n]; ok {
			continue
		}
		s.index[n] = len(s.names)
		s.names = append(s.names, n)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.saveLocked()
}

func (s *Store) replaceLocked(names []string) {
	s.names = nil
	s.index = make(map[string]int)
	for _, n := range names {
		if _, dup := s.index[n]; dup {
			continue
		}
		s.index[n] = len(s.names)
		s.names = append(s.names, n)
	}
}

func (s *Store) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create wishlist directory: %w", err)
	}
	data, err := json.MarshalIndent(s.names, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal wishlist: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write wishlist: %w", err)
	}
	return nil
}

// Set is an immutable ordered name set, used for read-only shared views.
type Set struct {
	names []string
	has   map[string]bool
}

// NewSet builds a set preserving first-seen order.
func NewSet(names []string) *Set {
	s := &Set{has: make(map[string]bool, len(names))}
	for _, n := range names {
		if s.has[n] {
			continue
		}
		s.has[n] = true
		s.names = append(s.names, n)
	}
	return s
}

// Contains reports membership.
func (s *Set) Contains(name string) bool { return s.has[name] }

// Names returns the set in order.
func (s *Set) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the set size.
func (s *Set) Len() int { return len(s.names) }
