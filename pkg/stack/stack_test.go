package stack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mockharness/mockharness/pkg/config"
	"github.com/mockharness/mockharness/pkg/graph"
	"github.com/mockharness/mockharness/pkg/mock"
	"github.com/mockharness/mockharness/pkg/registry"
)

// tracingWrapper records enter order so nesting can be asserted on.
func tracingWrapper(name string, trace *[]string) Wrapper {
	return func(next Renderer) Renderer {
		return func(ctx context.Context) error {
			*trace = append(*trace, name)
			return next(ctx)
		}
	}
}

func registerProvider(t *testing.T, reg *registry.Registry, name string, deps []string, impl any) {
	t.Helper()
	result := reg.Register(name, impl,
		mock.Metadata{Type: mock.TypeProvider, Dependencies: deps},
		mock.Configuration{})
	require.True(t, result.Success)
}

func TestCreateStack_ProviderOrderingAndNesting(t *testing.T) {
	reg := registry.New(config.Options{})
	var trace []string

	registerProvider(t, reg, "session", nil, tracingWrapper("session", &trace))
	registerProvider(t, reg, "theme", []string{"session"}, tracingWrapper("theme", &trace))
	registerProvider(t, reg, "form", []string{"theme"}, tracingWrapper("form", &trace))

	m := NewManager(reg)
	s := m.CreateStack("render-1", Options{
		EnabledProviders: []string{"form", "session", "theme"},
	})

	require.NotNil(t, s)
	assert.False(t, s.Degraded())
	assert.Equal(t, []string{"session", "theme", "form"}, s.Order())

	var rendered bool
	err := s.Render(context.Background(), func(ctx context.Context) error {
		rendered = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, rendered)

	// session is outermost so it enters first; form is innermost.
	assert.Equal(t, []string{"session", "theme", "form"}, trace)
}

func TestCreateStack_GeneratesID(t *testing.T) {
	reg := registry.New(config.Options{})
	m := NewManager(reg)

	s := m.CreateStack("", Options{})
	assert.NotEmpty(t, s.ID())
	assert.Same(t, s, m.Get(s.ID()))
}

func TestCreateStack_CycleFallsBackToPriorityOrder(t *testing.T) {
	reg := registry.New(config.Options{})
	var trace []string

	register := func(name string, deps []string, priority int) {
		result := reg.Register(name, tracingWrapper(name, &trace),
			mock.Metadata{Type: mock.TypeProvider, Dependencies: deps, Priority: priority},
			mock.Configuration{})
		// The cycle itself only surfaces at composition time; the
		// unresolved-dependency warning at registration is expected.
		require.True(t, result.Success)
	}
	register("a", []string{"b"}, 2)
	register("b", []string{"a"}, 1)

	var gotErr error
	var gotProvider string
	m := NewManager(reg)
	s := m.CreateStack("cyclic", Options{
		EnabledProviders: []string{"a", "b"},
		OnError: func(err error, providerName string) {
			if gotErr == nil {
				gotErr = err
				gotProvider = providerName
			}
		},
	})

	assert.True(t, s.Degraded())
	require.Error(t, gotErr)
	var resErr *graph.ResolutionError
	assert.ErrorAs(t, gotErr, &resErr)
	assert.NotEmpty(t, gotProvider)

	// Priority fallback: b (1) before a (2).
	assert.Equal(t, []string{"b", "a"}, s.Order())

	err := s.Render(context.Background(), func(ctx context.Context) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, trace)
}

func TestCreateStack_MissingProviderReported(t *testing.T) {
	reg := registry.New(config.Options{})

	var reported []string
	m := NewManager(reg)
	s := m.CreateStack("partial", Options{
		EnabledProviders: []string{"ghost"},
		OnError: func(err error, providerName string) {
			reported = append(reported, providerName)
		},
	})

	assert.Equal(t, []string{"ghost"}, reported)
	assert.Empty(t, s.Order())
}

func TestCreateStack_NonProviderEntryReported(t *testing.T) {
	reg := registry.New(config.Options{})
	reg.Register("useToast", func() {}, mock.Metadata{Type: mock.TypeHook}, mock.Configuration{})

	var reported []string
	m := NewManager(reg)
	m.CreateStack("bad-type", Options{
		EnabledProviders: []string{"useToast"},
		OnError: func(err error, providerName string) {
			reported = append(reported, providerName)
		},
	})

	assert.Equal(t, []string{"useToast"}, reported)
}

func TestCreateStack_SetupPropsAndCleanup(t *testing.T) {
	reg := registry.New(config.Options{})

	var gotProps map[string]any
	var cleanedUp []string
	setup := Setup(func(props map[string]any) (Wrapper, func(), error) {
		gotProps = props
		return func(next Renderer) Renderer { return next },
			func() { cleanedUp = append(cleanedUp, "session") },
			nil
	})
	registerProvider(t, reg, "session", nil, setup)

	m := NewManager(reg)
	m.CreateStack("props", Options{
		EnabledProviders: []string{"session"},
		ProviderProps:    map[string]map[string]any{"session": {"user": "alice"}},
	})

	assert.Equal(t, map[string]any{"user": "alice"}, gotProps)
	assert.Empty(t, cleanedUp)

	require.True(t, m.CleanupStack("props"))
	assert.Equal(t, []string{"session"}, cleanedUp)

	// Cleaning up an unknown stack is a no-op.
	assert.False(t, m.CleanupStack("props"))
}

func TestCreateStack_FailedSetupKeepsEarlierCleanups(t *testing.T) {
	reg := registry.New(config.Options{})

	var cleanedUp []string
	good := Setup(func(props map[string]any) (Wrapper, func(), error) {
		return func(next Renderer) Renderer { return next },
			func() { cleanedUp = append(cleanedUp, "session") },
			nil
	})
	bad := Setup(func(props map[string]any) (Wrapper, func(), error) {
		return nil, nil, errors.New("setup exploded")
	})
	registerProvider(t, reg, "session", nil, good)
	registerProvider(t, reg, "theme", []string{"session"}, bad)

	var reported []string
	m := NewManager(reg)
	s := m.CreateStack("partial-failure", Options{
		EnabledProviders: []string{"session", "theme"},
		OnError: func(err error, providerName string) {
			reported = append(reported, providerName)
		},
	})

	assert.Equal(t, []string{"theme"}, reported)
	assert.Equal(t, []string{"session"}, s.Order(), "failed provider is skipped, not fatal")

	// The earlier provider's cleanup stayed registered; the caller tears
	// it down.
	m.CleanupStack("partial-failure")
	assert.Equal(t, []string{"session"}, cleanedUp)
}

func TestCleanup_ReverseOrder(t *testing.T) {
	reg := registry.New(config.Options{})

	var cleanedUp []string
	mkSetup := func(name string) Setup {
		return func(props map[string]any) (Wrapper, func(), error) {
			return func(next Renderer) Renderer { return next },
				func() { cleanedUp = append(cleanedUp, name) },
				nil
		}
	}
	registerProvider(t, reg, "session", nil, mkSetup("session"))
	registerProvider(t, reg, "theme", []string{"session"}, mkSetup("theme"))

	m := NewManager(reg)
	m.CreateStack("teardown", Options{EnabledProviders: []string{"session", "theme"}})
	m.CleanupStack("teardown")

	assert.Equal(t, []string{"theme", "session"}, cleanedUp)
}

func TestResetStack_Recomposes(t *testing.T) {
	reg := registry.New(config.Options{})

	setups := 0
	setup := Setup(func(props map[string]any) (Wrapper, func(), error) {
		setups++
		return func(next Renderer) Renderer { return next }, func() {}, nil
	})
	registerProvider(t, reg, "session", nil, setup)

	m := NewManager(reg)
	m.CreateStack("resettable", Options{EnabledProviders: []string{"session"}})
	require.Equal(t, 1, setups)

	fresh := m.ResetStack("resettable")
	require.NotNil(t, fresh)
	assert.Equal(t, 2, setups)
	assert.Same(t, fresh, m.Get("resettable"))

	assert.Nil(t, m.ResetStack("never-created"))
}

func TestManagerReset_CleansEverything(t *testing.T) {
	reg := registry.New(config.Options{})

	var cleanedUp int
	setup := Setup(func(props map[string]any) (Wrapper, func(), error) {
		return func(next Renderer) Renderer { return next },
			func() { cleanedUp++ },
			nil
	})
	registerProvider(t, reg, "session", nil, setup)

	m := NewManager(reg)
	m.CreateStack("one", Options{EnabledProviders: []string{"session"}})
	m.CreateStack("two", Options{EnabledProviders: []string{"session"}})

	m.Reset()
	assert.Equal(t, 2, cleanedUp)
	assert.Nil(t, m.Get("one"))
	assert.Nil(t, m.Get("two"))
}

func TestWrap_RendererErrorPropagates(t *testing.T) {
	reg := registry.New(config.Options{})
	registerProvider(t, reg, "session", nil,
		Wrapper(func(next Renderer) Renderer { return next }))

	m := NewManager(reg)
	s := m.CreateStack("errs", Options{EnabledProviders: []string{"session"}})

	want := errors.New("render failed")
	err := s.Render(context.Background(), func(ctx context.Context) error { return want })
	assert.ErrorIs(t, err, want)
}
