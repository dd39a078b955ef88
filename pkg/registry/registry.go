package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mockharness/mockharness/internal/storage"
	"github.com/mockharness/mockharness/pkg/config"
	"github.com/mockharness/mockharness/pkg/graph"
	"github.com/mockharness/mockharness/pkg/logging"
	"github.com/mockharness/mockharness/pkg/mock"
)

// Registry is the central map from name to registered mock entry. It is an
// explicit context object: construct one per suite and call Reset between
// tests rather than sharing hidden global state across workers.
type Registry struct {
	mu    sync.RWMutex
	store storage.EntryStore
	opts  config.Options
	log   *slog.Logger

	filters *filterCache
}

// New creates an empty registry with the given options. Zero-valued option
// fields fall back to defaults (override merge strategy, strict errors).
func New(opts config.Options) *Registry {
	return &Registry{
		store:   storage.NewInMemoryEntryStore(),
		opts:    config.DefaultOptions().Merge(opts),
		log:     logging.Nop(),
		filters: newFilterCache(),
	}
}

// SetLogger sets the logger.
func (r *Registry) SetLogger(log *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log != nil {
		r.log = log
	}
}

// Register adds a mock under a unique name. Metadata and configuration
// defaults are always filled (version 1.0.0, enabled true). When the name
// already exists and overriding is disallowed, the call soft-fails: the
// stored entry is unchanged and Success is false (strict mode) or the
// duplicate is reported as a warning (lenient mode).
func (r *Registry) Register(name string, impl any, meta mock.Metadata, cfg mock.Configuration) *RegistrationResult {
	start := time.Now()
	result := &RegistrationResult{Success: true}

	entry := &mock.Entry{
		Name:           name,
		Implementation: impl,
		Metadata:       meta,
		Configuration:  cfg,
	}
	entry.ApplyDefaults(time.Now())

	if err := entry.Validate(); err != nil {
		r.reportError(result, &RegistrationError{Name: name, Message: err.Error()})
		result.LoadTime = time.Since(start)
		return result
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store.Exists(name) && !r.opts.OverrideExisting {
		r.reportError(result, &RegistrationError{Name: name, Message: "entry already exists"})
		result.LoadTime = time.Since(start)
		return result
	}

	// Unresolved dependencies are a warning, not a failure: partial stacks
	// resolve them as already satisfied.
	for _, dep := range entry.Metadata.Dependencies {
		if dep != name && !r.store.Exists(dep) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("dependency %q is not registered", dep))
		}
	}

	if r.opts.AutoLoad {
		entry.Loaded = true
	}

	if err := r.store.Set(entry); err != nil {
		r.reportError(result, &RegistrationError{Name: name, Message: err.Error()})
		result.LoadTime = time.Since(start)
		return result
	}

	r.log.Debug("mock registered",
		"name", name,
		"type", entry.Metadata.Type,
		"version", entry.Metadata.Version)

	result.LoadTime = time.Since(start)
	return result
}

// LoadOptions customizes a Load call.
type LoadOptions struct {
	// Loader fetches the implementation from an async source. When set, a
	// successful result replaces the entry's implementation.
	Loader func(ctx context.Context) (any, error)
}

// Load marks the named entry loaded. Loading a missing name is a no-op
// that reports failure naming the entry; it never re-registers.
func (r *Registry) Load(ctx context.Context, name string, opts *LoadOptions) *LoadResult {
	result := &LoadResult{Success: true}

	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.store.Get(name)
	if entry == nil {
		result.Success = false
		result.Errors = append(result.Errors,
			&LoadError{Name: name, Message: "entry not found"})
		return result
	}

	if opts != nil && opts.Loader != nil {
		impl, err := opts.Loader(ctx)
		if err != nil {
			r.reportLoadError(result, &LoadError{Name: name, Message: "loader failed", Err: err})
			if !result.Success {
				return result
			}
		} else if impl != nil {
			entry.Implementation = impl
		}
	}

	if r.opts.ValidateOnLoad {
		if err := entry.Validate(); err != nil {
			r.reportLoadError(result, &LoadError{Name: name, Message: "validation failed", Err: err})
			if !result.Success {
				return result
			}
		}
	}

	entry.Loaded = true
	entry.Metadata.UpdatedAt = time.Now()
	result.Entry = entry

	r.log.Debug("mock loaded", "name", name)
	return result
}

// Unload marks the named entry unloaded. It is idempotent; unloading an
// already-unloaded or missing entry is a no-op. Returns false only when no
// such entry exists.
func (r *Registry) Unload(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.store.Get(name)
	if entry == nil {
		return false
	}
	if entry.Loaded {
		entry.Loaded = false
		entry.Metadata.UpdatedAt = time.Now()
	}
	return true
}

// Remove unloads and deletes the named entry. Returns true if it existed.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Delete(name)
}

// Get returns the entry for name, or nil. This is the explicit resolve
// call; there is no interception-based lazy loading.
func (r *Registry) Get(name string) *mock.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.store.Get(name)
}

// UpdateConfig merges partial options into the registry configuration.
// The merge is shallow: non-zero fields of partial win per key.
func (r *Registry) UpdateConfig(partial config.Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opts = r.opts.Merge(partial)
}

// Options returns a copy of the effective configuration.
func (r *Registry) Options() config.Options {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.opts
}

// CleanupOptions restricts a Cleanup call.
type CleanupOptions struct {
	// Names limits cleanup to specific entries; empty means all.
	Names []string
}

// Cleanup resets call-tracking state on instrumented mocks without removing
// registrations. Returns the number of call logs cleared.
func (r *Registry) Cleanup(opts *CleanupOptions) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	var targets []*mock.Entry
	if opts != nil && len(opts.Names) > 0 {
		for _, name := range opts.Names {
			if e := r.store.Get(name); e != nil {
				targets = append(targets, e)
			}
		}
	} else {
		targets = r.store.List()
	}

	cleared := 0
	for _, e := range targets {
		cleared += resetCallLogs(e.Implementation)
	}
	return cleared
}

// resetCallLogs clears call logs reachable from an implementation: the
// value itself, or one level into a map of named members (a hook's API
// surface).
func resetCallLogs(impl any) int {
	switch v := impl.(type) {
	case *mock.Callable:
		if v.Instrumented() {
			v.Log.Reset()
			return 1
		}
	case *mock.CallLog:
		v.Reset()
		return 1
	case map[string]any:
		n := 0
		for _, member := range v {
			n += resetCallLogs(member)
		}
		return n
	}
	return 0
}

// Reset removes all entries and configuration, returning the registry to
// its just-constructed state. Tests are expected to call this between runs
// to avoid cross-test leakage.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store.Clear()
	r.opts = config.DefaultOptions()
	r.filters = newFilterCache()
}

// Stats returns counts by state and type.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{ByType: make(map[mock.Type]int)}
	for _, e := range r.store.List() {
		stats.TotalMocks++
		if e.IsEnabled() {
			stats.EnabledMocks++
		}
		if e.Loaded {
			stats.LoadedMocks++
		}
		stats.ByType[e.Metadata.Type]++
	}
	return stats
}

// Resolver builds a dependency resolver over the current entry set. It is
// rebuilt on demand; no incremental maintenance is needed at registry
// sizes.
func (r *Registry) Resolver() *graph.Resolver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.store.List()
	nodes := make([]graph.Node, 0, len(entries))
	for _, e := range entries {
		nodes = append(nodes, graph.Node{
			Name:         e.Name,
			Dependencies: e.Metadata.Dependencies,
			Priority:     e.Metadata.Priority,
		})
	}
	return graph.NewResolver(nodes)
}

// reportError records a failure on a registration result according to the
// error-handling mode: an error in strict mode, a warning in lenient mode,
// swallowed in silent mode.
func (r *Registry) reportError(result *RegistrationResult, err error) {
	switch r.opts.ErrorHandling {
	case config.ErrorLenient:
		result.Warnings = append(result.Warnings, err.Error())
	case config.ErrorSilent:
	default:
		result.Success = false
		result.Errors = append(result.Errors, err)
	}
}

// reportLoadError is reportError for load results.
func (r *Registry) reportLoadError(result *LoadResult, err error) {
	switch r.opts.ErrorHandling {
	case config.ErrorLenient:
		result.Warnings = append(result.Warnings, err.Error())
	case config.ErrorSilent:
	default:
		result.Success = false
		result.Errors = append(result.Errors, err)
	}
}
