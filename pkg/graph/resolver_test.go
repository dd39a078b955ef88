package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOf(order []string, name string) int {
	for i, n := range order {
		if n == name {
			return i
		}
	}
	return -1
}

func TestResolve_DependenciesBeforeDependents(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "form", Dependencies: []string{"theme"}},
		{Name: "session"},
		{Name: "theme", Dependencies: []string{"session"}},
	})

	order, err := r.Resolve([]string{"form", "session", "theme"})
	require.NoError(t, err)
	require.Len(t, order, 3)

	assert.Less(t, indexOf(order, "session"), indexOf(order, "theme"))
	assert.Less(t, indexOf(order, "theme"), indexOf(order, "form"))
}

func TestResolve_ProviderScenarioOrder(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "session"},
		{Name: "theme", Dependencies: []string{"session"}},
		{Name: "form", Dependencies: []string{"theme"}},
	})

	order, err := r.Resolve([]string{"session", "theme", "form"})
	require.NoError(t, err)
	assert.Equal(t, []string{"session", "theme", "form"}, order)
}

func TestResolve_DiamondGraph(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "a"},
		{Name: "b", Dependencies: []string{"a"}},
		{Name: "c", Dependencies: []string{"a"}},
		{Name: "d", Dependencies: []string{"b", "c"}},
	})

	order, err := r.Resolve([]string{"d", "c", "b", "a"})
	require.NoError(t, err)
	require.Len(t, order, 4)

	assert.Less(t, indexOf(order, "a"), indexOf(order, "b"))
	assert.Less(t, indexOf(order, "a"), indexOf(order, "c"))
	assert.Less(t, indexOf(order, "b"), indexOf(order, "d"))
	assert.Less(t, indexOf(order, "c"), indexOf(order, "d"))
}

func TestResolve_CycleFailsFast(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "a", Dependencies: []string{"b"}},
		{Name: "b", Dependencies: []string{"a"}},
	})

	order, err := r.Resolve([]string{"a", "b"})
	assert.Nil(t, order)
	require.Error(t, err)

	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.NotEmpty(t, resErr.Node)
}

func TestResolve_SelfCycle(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "a", Dependencies: []string{"a"}},
	})

	_, err := r.Resolve([]string{"a"})
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "a", resErr.Node)
}

func TestResolve_AbsentDependenciesSkipped(t *testing.T) {
	// theme depends on session, but session is not in the active set:
	// it is treated as already satisfied rather than blocking the order.
	r := NewResolver([]Node{
		{Name: "theme", Dependencies: []string{"session"}},
		{Name: "form", Dependencies: []string{"theme"}},
	})

	order, err := r.Resolve([]string{"theme", "form"})
	require.NoError(t, err)
	assert.Equal(t, []string{"theme", "form"}, order)
}

func TestResolve_TieBreakFollowsInputOrder(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "a"},
		{Name: "b"},
		{Name: "c"},
	})

	order, err := r.Resolve([]string{"c", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, order)
}

func TestResolve_EmptyActiveSet(t *testing.T) {
	r := NewResolver(nil)
	order, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestPriorityOrder_AscendingWithUnrankedLast(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "a", Priority: 20},
		{Name: "b", Priority: 10},
		{Name: "c"}, // unranked
		{Name: "d", Priority: 15},
	})

	order := r.PriorityOrder([]string{"a", "b", "c", "d"})
	assert.Equal(t, []string{"b", "d", "a", "c"}, order)
}

func TestPriorityOrder_StableForEqualPriorities(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "x", Priority: 5},
		{Name: "y", Priority: 5},
		{Name: "z", Priority: 5},
	})

	order := r.PriorityOrder([]string{"z", "x", "y"})
	assert.Equal(t, []string{"z", "x", "y"}, order)
}

func TestDependents_ReverseEdges(t *testing.T) {
	r := NewResolver([]Node{
		{Name: "session"},
		{Name: "theme", Dependencies: []string{"session"}},
		{Name: "form", Dependencies: []string{"session"}},
	})

	deps := r.Dependents("session")
	assert.ElementsMatch(t, []string{"theme", "form"}, deps)
	assert.Empty(t, r.Dependents("form"))
}
