// Package storage provides entry storage abstractions and implementations.
//
// It defines the EntryStore interface for storing, retrieving, and managing
// registered mock entries, along with a concrete in-memory implementation.
//
// Key types:
//
//   - EntryStore: Interface defining the contract for entry storage backends
//   - InMemoryEntryStore: Thread-safe in-memory implementation of EntryStore
//
// The store is a pure data holder: Set overwrites unconditionally, and the
// registry layer above decides whether overwriting an existing name is an
// error, a warning, or allowed.
package storage
