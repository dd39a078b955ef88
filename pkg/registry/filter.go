package registry

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/mockharness/mockharness/pkg/mock"
)

// Filter selects entries in List. Nil fields match everything.
type Filter struct {
	Enabled *bool
	Loaded  *bool
	Type    mock.Type
	Tag     string
}

// List returns entries matching the filter, in the store's iteration order
// (registration time, then name). A nil filter returns everything.
func (r *Registry) List(f *Filter) []*mock.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.store.List()
	if f == nil {
		return entries
	}

	out := make([]*mock.Entry, 0, len(entries))
	for _, e := range entries {
		if f.Enabled != nil && e.IsEnabled() != *f.Enabled {
			continue
		}
		if f.Loaded != nil && e.Loaded != *f.Loaded {
			continue
		}
		if f.Type != "" && e.Metadata.Type != f.Type {
			continue
		}
		if f.Tag != "" && !e.HasTag(f.Tag) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Query returns entries for which the expression evaluates to true. The
// expression sees name, type, version, description, loaded, enabled, tags,
// and priority. Expressions are compiled once and cached.
func (r *Registry) Query(where string) ([]*mock.Entry, error) {
	r.mu.RLock()
	cache := r.filters
	entries := r.store.List()
	r.mu.RUnlock()

	program, err := cache.compile(where)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", where, err)
	}

	var out []*mock.Entry
	for _, e := range entries {
		env := filterEnv(e)
		matched, err := expr.Run(program, env)
		if err != nil {
			return nil, fmt.Errorf("eval %q: %w", where, err)
		}
		if b, ok := matched.(bool); ok && b {
			out = append(out, e)
		}
	}
	return out, nil
}

func filterEnv(e *mock.Entry) map[string]any {
	return map[string]any{
		"name":        e.Name,
		"type":        string(e.Metadata.Type),
		"version":     e.Metadata.Version,
		"description": e.Metadata.Description,
		"loaded":      e.Loaded,
		"enabled":     e.IsEnabled(),
		"tags":        e.Metadata.Tags,
		"priority":    e.Metadata.Priority,
	}
}

// filterCache caches compiled filter expressions. The environment shape is
// fixed, so the expression text alone is a sufficient key.
type filterCache struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
}

func newFilterCache() *filterCache {
	return &filterCache{programs: make(map[string]*vm.Program)}
}

func (c *filterCache) compile(expression string) (*vm.Program, error) {
	c.mu.RLock()
	if program, ok := c.programs[expression]; ok {
		c.mu.RUnlock()
		return program, nil
	}
	c.mu.RUnlock()

	program, err := expr.Compile(expression, expr.Env(filterEnv(&mock.Entry{})), expr.AsBool())
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// Double-check in case another goroutine compiled the same expression.
	if existing, ok := c.programs[expression]; ok {
		c.mu.Unlock()
		return existing, nil
	}
	c.programs[expression] = program
	c.mu.Unlock()

	return program, nil
}
