// Package validation aggregates structural diff findings into pass/fail
// results for failure-diagnosis tooling.
//
// A Result is valid iff no finding has critical or high severity. The
// score starts at 100 and drops by a fixed penalty per severity, floored
// at 0; the table lives in Penalties because the constants are empirical.
//
// The Validator ties the diff engine to a registry: ValidateHookMock and
// ValidateComponentMock look up the registered entry by name, derive the
// expected shape from its implementation (or an explicit shape stored
// under the "expectedShape" option), and compare the live value against
// it. Results are returned, never asserted or logged here; any console or
// global interception is an adapter layered outside this package.
package validation
