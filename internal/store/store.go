// Package store keeps the entries saved from the form.
package store

import (
	"sync"

	"formdeck/internal/domain"
)

// EntryStore holds submitted entries in submission order
type EntryStore interface {
	Add(entry domain.Entry) int
	Get(index int) (domain.Entry, bool)
	All() []domain.Entry
	Len() int
}

// MemoryEntryStore is an in-memory implementation of EntryStore
type MemoryEntryStore struct {
	mu      sync.RWMutex
	entries []domain.Entry
}

// NewMemoryEntryStore creates a new memory-based entry store
func NewMemoryEntryStore() *MemoryEntryStore {
	return &MemoryEntryStore{}
}

// Add appends entry and returns its index
func (s *MemoryEntryStore) Add(entry domain.Entry) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return len(s.entries) - 1
}

func (s *MemoryEntryStore) Get(index int) (domain.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.entries) {
		return domain.Entry{}, false
	}
	return s.entries[index], true
}

func (s *MemoryEntryStore) All() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Return a copy to prevent external modification
	return append([]domain.Entry(nil), s.entries...)
}

func (s *MemoryEntryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
