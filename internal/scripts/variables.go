// Package scripts defines the contract between request scripts and the
// variables they share across a request/response cycle.
package scripts

import (
	"maps"
	"sync"
)

// VariableStore is a named, mutable key-value store shared by script hooks.
// Implementations must be safe for concurrent use.
type VariableStore interface {
	Get(name string) (string, bool)
	Set(name, value string)
	Delete(name string)
	All() map[string]string
}

// MemoryStore is an in-memory VariableStore living for the process lifetime.
type MemoryStore struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMemoryStore creates a store seeded with initial.
func NewMemoryStore(initial map[string]string) *MemoryStore {
	s := &MemoryStore{vars: make(map[string]string, len(initial))}
	maps.Copy(s.vars, initial)
	return s
}

// Get returns the value stored under name.
func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.vars[name]
	return v, ok
}

// Set stores value under name.
func (s *MemoryStore) Set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vars == nil {
		s.vars = make(map[string]string)
	}
	s.vars[name] = value
}

// Delete removes name.
func (s *MemoryStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.vars, name)
}

// All returns a snapshot of every variable.
func (s *MemoryStore) All() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.vars)
}

var _ VariableStore = (*MemoryStore)(nil)
