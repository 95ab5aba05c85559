// Package memory provides in-memory implementations of the storage
// ports, used as fakes in tests.
package memory

import (
	"sync"

	"github.com/docdeck/docdeck-cli/internal/core/ports/driven"
)

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore is an in-memory implementation of driven.StateStore.
type StateStore struct {
	mu     sync.RWMutex
	values map[string]string

	// SetErr, when non-nil, is returned by Set. Lets tests exercise
	// persistence failures.
	SetErr error
}

// NewStateStore creates a new in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{
		values: make(map[string]string),
	}
}

// Get retrieves the blob stored under key.
func (s *StateStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok, nil
}

// Set stores the blob under key.
func (s *StateStore) Set(key, value string) error {
	if s.SetErr != nil {
		return s.SetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Delete removes the key.
func (s *StateStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Close releases resources (no-op for memory store).
func (s *StateStore) Close() error {
	return nil
}

// Len reports how many keys are stored. Useful in tests.
func (s *StateStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
