package graph

import (
	"fmt"
	"sort"
)

// UnrankedPriority is the sentinel rank assigned to nodes with no declared
// priority, so they sort after every ranked node in the fallback order.
const UnrankedPriority = 1 << 30

// Node is one named entity in the dependency graph.
type Node struct {
	// Name uniquely identifies the node
	Name string

	// Dependencies lists names this node depends on. Names not present in
	// the active set are treated as already satisfied.
	Dependencies []string

	// Priority ranks the node in the fallback order (ascending).
	// 0 means unranked.
	Priority int
}

// ResolutionError reports a dependency cycle.
type ResolutionError struct {
	// Node is the name at which the cycle was detected
	Node string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("dependency cycle detected at %q", e.Node)
}

// Resolver orders named nodes so that every node appears after all of its
// dependencies that are present in the active set. It is rebuilt from the
// full entry set whenever that set changes; rebuilding is O(nodes).
type Resolver struct {
	nodes      map[string]Node
	dependents map[string][]string
}

// NewResolver builds a resolver over the given nodes. Reverse edges
// (dependents) are derived eagerly.
func NewResolver(nodes []Node) *Resolver {
	r := &Resolver{
		nodes:      make(map[string]Node, len(nodes)),
		dependents: make(map[string][]string),
	}
	for _, n := range nodes {
		r.nodes[n.Name] = n
	}
	for _, n := range nodes {
		for _, dep := range n.Dependencies {
			r.dependents[dep] = append(r.dependents[dep], n.Name)
		}
	}
	return r
}

// Dependents returns the names of nodes that declare a dependency on name.
func (r *Resolver) Dependents(name string) []string {
	return r.dependents[name]
}

// visit colors for the iterative depth-first traversal.
type color uint8

const (
	unvisited color = iota
	visiting
	visited
)

// frame is one entry on the explicit DFS stack: a node plus the index of
// the next dependency to examine.
type frame struct {
	name string
	next int
}

// Resolve returns a total order of the active names in which every
// dependency precedes its dependents. Dependencies outside the active set
// do not block ordering; this allows partial provider stacks. Nodes with no
// dependency relationship keep the iteration order of the active slice, so
// deterministic output requires a deterministic input ordering.
//
// A cycle fails fast with a ResolutionError naming the re-encountered node;
// no partial order is returned.
func (r *Resolver) Resolve(active []string) ([]string, error) {
	inActive := make(map[string]bool, len(active))
	for _, name := range active {
		inActive[name] = true
	}

	state := make(map[string]color, len(active))
	order := make([]string, 0, len(active))
	stack := make([]frame, 0, len(active))

	for _, root := range active {
		if state[root] != unvisited {
			continue
		}
		state[root] = visiting
		stack = append(stack[:0], frame{name: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			deps := r.nodes[top.name].Dependencies

			pushed := false
			for top.next < len(deps) {
				dep := deps[top.next]
				top.next++
				if !inActive[dep] {
					continue
				}
				switch state[dep] {
				case visiting:
					return nil, &ResolutionError{Node: dep}
				case visited:
					continue
				default:
					state[dep] = visiting
					stack = append(stack, frame{name: dep})
					pushed = true
				}
				if pushed {
					break
				}
			}
			if pushed {
				continue
			}

			state[top.name] = visited
			order = append(order, top.name)
			stack = stack[:len(stack)-1]
		}
	}

	return order, nil
}

// PriorityOrder returns the active names sorted by declared priority,
// ascending, with unranked nodes (priority 0) last. The sort is stable, so
// equal priorities keep the input order. Callers use this as a recoverable
// fallback when Resolve reports a cycle.
func (r *Resolver) PriorityOrder(active []string) []string {
	out := make([]string, len(active))
	copy(out, active)
	rank := func(name string) int {
		p := r.nodes[name].Priority
		if p == 0 {
			return UnrankedPriority
		}
		return p
	}
	sort.SliceStable(out, func(i, j int) bool {
		return rank(out[i]) < rank(out[j])
	})
	return out
}
