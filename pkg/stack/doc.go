// Package stack composes registered providers into nested wrapper stacks
// for test renders.
//
// A provider stack is a nested composition of wrappers, each supplying one
// contextual dependency to the content below it. Wrap order comes from the
// dependency resolver: the resolved order is iterated in reverse so the
// most-depended-upon provider is outermost. When resolution fails on a
// cycle, the stack degrades to priority ordering and reports the failure
// through the OnError callback instead of panicking; a misconfigured
// provider set should not crash a test render outright.
//
// Composition has no transaction semantics: cleanups registered before a
// later provider fails stay registered, and the caller is responsible for
// tearing them down with CleanupStack.
package stack
