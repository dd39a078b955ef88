// Package diff compares an expected mock shape against a live value and
// produces a deterministic, machine-checkable report.
//
// Comparison is structural: keys, callability, and coarse type tags
// (string, number, boolean, array, object, function), never runtime
// values. A callable actual value is invoked with no arguments and its
// return value analyzed instead: a hook mock is a function that returns
// its API surface. Invocation failures fall back to treating the callable
// as an opaque function leaf.
//
// Expected shapes come from three sources: built by hand with NewShape,
// derived from a known-good reference value with ShapeOf, or loaded from a
// JSON Schema or reference JSON document (ShapeFromSchema,
// ShapeFromDocument).
//
// Each report carries a banded compatibility score: any critical issue
// caps the score, and otherwise it degrades stepwise with the difference
// count. Band constants live in ScoreConfig because they are empirical and
// may need recalibration per suite.
package diff
