// Package registry implements the central mock registry: a map from name
// to registered implementation with metadata, configuration, and loaded
// state.
//
// Nearly every operation favors soft failure with structured results over
// panics: Register and Load return {Success, Errors, Warnings} so a single
// bad mock does not abort an entire test run. The errorHandling option
// (strict, lenient, silent) governs whether a failure lands in Errors, in
// Warnings, or is swallowed.
//
// The registry holds no hidden global state: construct one per suite with
// New and call Reset between tests. A process-wide Default registry exists
// for setup files that cannot thread one through.
package registry
