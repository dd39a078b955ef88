package storage

import (
	"github.com/mockharness/mockharness/pkg/mock"
)

// EntryStore defines the interface for storing and retrieving mock entries.
type EntryStore interface {
	// Get retrieves an entry by name. Returns nil if not found.
	Get(name string) *mock.Entry

	// Set stores or updates an entry. Existing entries are overwritten;
	// uniqueness policy is enforced by the registry, not the store.
	Set(e *mock.Entry) error

	// Delete removes an entry by name. Returns true if deleted, false if
	// not found.
	Delete(name string) bool

	// List returns all stored entries.
	List() []*mock.Entry

	// ListByType returns all entries of a specific type.
	ListByType(t mock.Type) []*mock.Entry

	// Count returns the number of stored entries.
	Count() int

	// Clear removes all stored entries.
	Clear()

	// Exists checks if an entry with the given name exists.
	Exists(name string) bool
}
