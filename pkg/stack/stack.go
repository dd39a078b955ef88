package stack

import (
	"context"
	"fmt"
)

// Renderer renders wrapped content inside a test.
type Renderer func(ctx context.Context) error

// Wrapper nests one provider around inner content.
type Wrapper func(next Renderer) Renderer

// Setup prepares a provider instance for one stack. The returned cleanup
// runs when the stack is cleaned up; it is registered as soon as Setup
// succeeds, even if a later provider in the same stack fails.
type Setup func(props map[string]any) (Wrapper, func(), error)

// ProviderError reports a provider that could not be composed.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %q: %s: %v", e.Provider, e.Message, e.Err)
	}
	return fmt.Sprintf("provider %q: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// Options configures a provider stack.
type Options struct {
	// EnabledProviders are the provider names to compose, in caller order.
	// The order only matters between providers with no dependency
	// relationship.
	EnabledProviders []string

	// ProviderProps carries per-provider setup properties
	ProviderProps map[string]map[string]any

	// OnError receives composition failures (cycles, missing providers,
	// setup errors). The stack degrades instead of panicking so a test
	// render does not crash outright on a misconfigured provider set.
	OnError func(err error, providerName string)
}

// Stack is a composed provider stack: wrappers in dependency-resolved
// order plus the cleanups registered while composing it.
type Stack struct {
	id       string
	opts     Options
	order    []string
	wrappers []Wrapper
	cleanups []func()
	degraded bool
}

// ID returns the stack identifier.
func (s *Stack) ID() string { return s.id }

// Order returns the resolved wrap order, outermost first.
func (s *Stack) Order() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Degraded reports whether dependency resolution failed and the stack fell
// back to priority ordering.
func (s *Stack) Degraded() bool { return s.degraded }

// Wrap nests the composed providers around inner. The resolved order is
// iterated in reverse so the first-resolved (most-depended-upon) provider
// ends up outermost and the least-depended-upon innermost, closest to the
// wrapped content.
func (s *Stack) Wrap(inner Renderer) Renderer {
	out := inner
	for i := len(s.wrappers) - 1; i >= 0; i-- {
		out = s.wrappers[i](out)
	}
	return out
}

// Render composes and runs the stack around inner.
func (s *Stack) Render(ctx context.Context, inner Renderer) error {
	return s.Wrap(inner)(ctx)
}

// runCleanups tears down the stack's providers in reverse setup order.
func (s *Stack) runCleanups() {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
}
