// Package graph resolves dependency ordering for registered mocks.
//
// The Resolver builds a directed graph from named nodes to their declared
// dependencies and produces a total order in which every node follows the
// dependencies that are present in the active set. Dependencies naming
// absent nodes are skipped rather than blocking resolution, which permits
// partial or optional provider stacks.
//
// Resolution uses an iterative depth-first traversal with three-color
// marking. Re-encountering a node that is still being visited means the
// graph has a cycle; resolution fails fast with a ResolutionError naming
// that node. Callers composing provider stacks treat the cycle as a
// recoverable degradation and fall back to PriorityOrder.
package graph
