// Package mock provides the data model for registered mocks: the Entry
// type with its metadata and configuration, and the Callable wrapper that
// distinguishes plain stand-in functions from instrumented test doubles.
package mock

import (
	"time"
)

// Type classifies what kind of mock an entry holds.
type Type string

const (
	TypeHook      Type = "hook"
	TypeComponent Type = "component"
	TypeProvider  Type = "provider"
	TypeUtility   Type = "utility"
)

// DefaultVersion is assigned when a registration omits a version.
const DefaultVersion = "1.0.0"

// Metadata describes a registered mock.
type Metadata struct {
	// Version is the mock's declared version (defaults to DefaultVersion)
	Version string `json:"version" yaml:"version"`

	// Type classifies the mock (hook, component, provider, utility)
	Type Type `json:"type" yaml:"type"`

	// Dependencies lists names of other entries this mock depends on.
	// Names that resolve to no entry are a warning, not an error.
	Dependencies []string `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`

	// CompatibleVersions lists versions this mock is known to work with
	CompatibleVersions []string `json:"compatibleVersions,omitempty" yaml:"compatibleVersions,omitempty"`

	// Description is an optional longer description
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Tags are free-form labels for filtering
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`

	// Priority ranks the entry in the fallback wrap order used when
	// dependency resolution fails. 0 means unranked (sorts last).
	Priority int `json:"priority,omitempty" yaml:"priority,omitempty"`

	// CreatedAt is when the entry was registered
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`

	// UpdatedAt is when the entry was last modified
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Configuration holds per-entry settings.
type Configuration struct {
	// Enabled indicates whether this mock is active. Nil means enabled.
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Options is an open key-value map of mock-specific settings
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Entry is one registered mock: a named implementation plus its metadata,
// configuration, and loaded state.
type Entry struct {
	// Name is the unique key within a registry
	Name string `json:"name" yaml:"name"`

	// Implementation is the mock value itself. It is shared by reference
	// with callers and never serialized.
	Implementation any `json:"-" yaml:"-"`

	// Metadata describes the mock
	Metadata Metadata `json:"metadata" yaml:"metadata"`

	// Configuration holds per-entry settings
	Configuration Configuration `json:"configuration" yaml:"configuration"`

	// Loaded is true between Load and Unload
	Loaded bool `json:"loaded" yaml:"loaded"`
}

// IsEnabled reports whether the entry is active. An unset Enabled flag
// counts as enabled.
func (e *Entry) IsEnabled() bool {
	return e.Configuration.Enabled == nil || *e.Configuration.Enabled
}

// HasTag reports whether the entry carries the given tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Metadata.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ApplyDefaults fills zero-valued metadata and configuration fields:
// version, type, dependency list, timestamps, and the enabled flag.
func (e *Entry) ApplyDefaults(now time.Time) {
	if e.Metadata.Version == "" {
		e.Metadata.Version = DefaultVersion
	}
	if e.Metadata.Type == "" {
		e.Metadata.Type = TypeUtility
	}
	if e.Metadata.Dependencies == nil {
		e.Metadata.Dependencies = []string{}
	}
	if e.Metadata.CreatedAt.IsZero() {
		e.Metadata.CreatedAt = now
	}
	e.Metadata.UpdatedAt = now
	if e.Configuration.Enabled == nil {
		enabled := true
		e.Configuration.Enabled = &enabled
	}
}
