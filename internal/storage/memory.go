package storage

import (
	"sort"
	"sync"

	"github.com/mockharness/mockharness/pkg/mock"
)

// InMemoryEntryStore is a thread-safe in-memory implementation of EntryStore.
type InMemoryEntryStore struct {
	mu      sync.RWMutex
	entries map[string]*mock.Entry
}

// NewInMemoryEntryStore creates a new InMemoryEntryStore.
func NewInMemoryEntryStore() *InMemoryEntryStore {
	return &InMemoryEntryStore{
		entries: make(map[string]*mock.Entry),
	}
}

// Get retrieves an entry by name. Returns nil if not found.
func (s *InMemoryEntryStore) Get(name string) *mock.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[name]
}

// Set stores or updates an entry.
func (s *InMemoryEntryStore) Set(e *mock.Entry) error {
	if e == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Name] = e
	return nil
}

// Delete removes an entry by name. Returns true if deleted, false if not found.
func (s *InMemoryEntryStore) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[name]; exists {
		delete(s.entries, name)
		return true
	}
	return false
}

// List returns all stored entries, sorted by registration time (ascending)
// then by name so output is stable across runs.
func (s *InMemoryEntryStore) List() []*mock.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*mock.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		ci, cj := result[i].Metadata.CreatedAt, result[j].Metadata.CreatedAt
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// ListByType returns all entries of a specific type.
func (s *InMemoryEntryStore) ListByType(t mock.Type) []*mock.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*mock.Entry
	for _, e := range s.entries {
		if e.Metadata.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// Count returns the number of stored entries.
func (s *InMemoryEntryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes all stored entries.
func (s *InMemoryEntryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]*mock.Entry)
}

// Exists checks if an entry with the given name exists.
func (s *InMemoryEntryStore) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, exists := s.entries[name]
	return exists
}

// Ensure InMemoryEntryStore implements EntryStore.
var _ EntryStore = (*InMemoryEntryStore)(nil)
