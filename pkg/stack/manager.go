package stack

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mockharness/mockharness/pkg/graph"
	"github.com/mockharness/mockharness/pkg/logging"
	"github.com/mockharness/mockharness/pkg/mock"
	"github.com/mockharness/mockharness/pkg/registry"
)

// Manager composes and tracks provider stacks over a registry.
type Manager struct {
	mu     sync.Mutex
	reg    *registry.Registry
	stacks map[string]*Stack
	log    *slog.Logger
}

// NewManager creates a stack manager over reg.
func NewManager(reg *registry.Registry) *Manager {
	return &Manager{
		reg:    reg,
		stacks: make(map[string]*Stack),
		log:    logging.Nop(),
	}
}

// SetLogger sets the logger.
func (m *Manager) SetLogger(log *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if log != nil {
		m.log = log
	}
}

// CreateStack composes the enabled providers into a stack. Ordering is
// delegated to the dependency resolver; on a cycle the stack degrades to
// priority ordering and the failure is surfaced through opts.OnError
// rather than returned, so composition itself never hard-fails. A stackID
// of "" gets a generated UUID.
func (m *Manager) CreateStack(stackID string, opts Options) *Stack {
	if stackID == "" {
		stackID = uuid.NewString()
	}

	s := &Stack{id: stackID, opts: opts}
	m.compose(s)

	m.mu.Lock()
	m.stacks[stackID] = s
	m.mu.Unlock()

	return s
}

// Get returns the stack with the given ID, or nil.
func (m *Manager) Get(stackID string) *Stack {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stacks[stackID]
}

// CleanupStack tears down the stack's providers (reverse setup order) and
// forgets the stack. Returns false when no such stack exists.
func (m *Manager) CleanupStack(stackID string) bool {
	m.mu.Lock()
	s, ok := m.stacks[stackID]
	delete(m.stacks, stackID)
	m.mu.Unlock()

	if !ok {
		return false
	}
	s.runCleanups()
	return true
}

// ResetStack tears down and recomposes the stack with its original
// options. Returns nil when no such stack exists.
func (m *Manager) ResetStack(stackID string) *Stack {
	m.mu.Lock()
	s, ok := m.stacks[stackID]
	m.mu.Unlock()
	if !ok {
		return nil
	}

	s.runCleanups()
	fresh := &Stack{id: stackID, opts: s.opts}
	m.compose(fresh)

	m.mu.Lock()
	m.stacks[stackID] = fresh
	m.mu.Unlock()
	return fresh
}

// Reset cleans up every stack.
func (m *Manager) Reset() {
	m.mu.Lock()
	stacks := m.stacks
	m.stacks = make(map[string]*Stack)
	m.mu.Unlock()

	for _, s := range stacks {
		s.runCleanups()
	}
}

// compose resolves the wrap order and instantiates each provider. A failed
// provider is reported and skipped; cleanups registered before the failure
// stay registered, and the caller tears them down via CleanupStack.
func (m *Manager) compose(s *Stack) {
	resolver := m.reg.Resolver()

	order, err := resolver.Resolve(s.opts.EnabledProviders)
	if err != nil {
		// Recoverable degradation: fall back to priority ordering.
		s.degraded = true
		order = resolver.PriorityOrder(s.opts.EnabledProviders)
		m.reportError(s, err, cycleNode(err))
		m.log.Warn("dependency resolution failed, using priority order",
			"stack", s.id, "error", err)
	}

	for _, name := range order {
		entry := m.reg.Get(name)
		if entry == nil {
			m.reportError(s, &ProviderError{Provider: name, Message: "not registered"}, name)
			continue
		}
		if entry.Metadata.Type != mock.TypeProvider {
			m.reportError(s, &ProviderError{
				Provider: name,
				Message:  "entry is not a provider (type " + string(entry.Metadata.Type) + ")",
			}, name)
			continue
		}

		wrapper, cleanup, err := m.instantiate(entry, s.opts.ProviderProps[name])
		if cleanup != nil {
			s.cleanups = append(s.cleanups, cleanup)
		}
		if err != nil {
			m.reportError(s, &ProviderError{Provider: name, Message: "setup failed", Err: err}, name)
			continue
		}

		s.order = append(s.order, name)
		s.wrappers = append(s.wrappers, wrapper)
	}
}

// instantiate turns a registered provider implementation into a wrapper.
func (m *Manager) instantiate(entry *mock.Entry, props map[string]any) (Wrapper, func(), error) {
	switch impl := entry.Implementation.(type) {
	case Setup:
		return impl(props)
	case func(map[string]any) (Wrapper, func(), error):
		return impl(props)
	case Wrapper:
		return impl, nil, nil
	case func(Renderer) Renderer:
		return Wrapper(impl), nil, nil
	default:
		return nil, nil, &ProviderError{
			Provider: entry.Name,
			Message:  "implementation is not a provider wrapper or setup function",
		}
	}
}

func (m *Manager) reportError(s *Stack, err error, provider string) {
	if s.opts.OnError != nil {
		s.opts.OnError(err, provider)
	}
}

// cycleNode extracts the offending node name from a resolution error.
func cycleNode(err error) string {
	var resErr *graph.ResolutionError
	if errors.As(err, &resErr) {
		return resErr.Node
	}
	return ""
}
