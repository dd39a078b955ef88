// Package config provides the registry's flat options surface and a loader
// for mock-suite manifests.
//
// Options is the recognized configuration shape: manifest sources, the
// auto-load and validate-on-load switches, the multi-source merge strategy,
// and the error-handling mode (strict, lenient, or silent).
//
// Manifests declare entries by name with metadata and configuration but no
// implementation; implementations attach when a test registers them. Both
// JSON and YAML formats are supported, and sources may be glob patterns
// with ** for recursive directory matching.
package config
