package registry

import (
	"sync"

	"github.com/mockharness/mockharness/pkg/config"
)

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
// Prefer constructing an explicit registry per suite; the default exists
// for test setup files that have nowhere to thread one through. Tests
// sharing it must call Reset between runs; that is part of the contract,
// not incidental.
func Default() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultRegistry == nil {
		defaultRegistry = New(config.Options{})
	}
	return defaultRegistry
}

// SetDefault replaces the process-wide registry. Passing nil restores lazy
// construction on the next Default call.
func SetDefault(r *Registry) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRegistry = r
}
