package config

// ErrorMode governs how the registry surfaces failures: as errors, as
// warnings, or swallowed entirely. This is a deliberate knob for tolerant
// test environments.
type ErrorMode string

const (
	// ErrorStrict surfaces failures as errors.
	ErrorStrict ErrorMode = "strict"
	// ErrorLenient downgrades failures to warnings.
	ErrorLenient ErrorMode = "lenient"
	// ErrorSilent swallows failures.
	ErrorSilent ErrorMode = "silent"
)

// MergeStrategy controls how entries from multiple sources combine.
type MergeStrategy string

const (
	// MergeOverride lets later sources replace earlier entries of the
	// same name.
	MergeOverride MergeStrategy = "override"
	// MergeMerge keeps the earlier entry but fills its zero-valued
	// metadata fields from later ones.
	MergeMerge MergeStrategy = "merge"
	// MergeAppend keeps the first entry per name and skips later
	// duplicates.
	MergeAppend MergeStrategy = "append"
)

// Options is the flat configuration surface recognized by the registry.
// Callers provide already-parsed values; any file or network loading is an
// external collaborator.
type Options struct {
	// Sources are manifest file paths or glob patterns (supports **)
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`

	// AutoLoad marks entries loaded immediately after registration
	AutoLoad bool `json:"autoLoad,omitempty" yaml:"autoLoad,omitempty"`

	// ValidateOnLoad runs entry validation when Load is called
	ValidateOnLoad bool `json:"validateOnLoad,omitempty" yaml:"validateOnLoad,omitempty"`

	// OverrideExisting allows Register to replace an entry with the
	// same name instead of soft-failing
	OverrideExisting bool `json:"overrideExisting,omitempty" yaml:"overrideExisting,omitempty"`

	// MergeStrategy controls multi-source combination (default override)
	MergeStrategy MergeStrategy `json:"mergeStrategy,omitempty" yaml:"mergeStrategy,omitempty"`

	// ErrorHandling selects strict, lenient, or silent failure surfacing
	ErrorHandling ErrorMode `json:"errorHandling,omitempty" yaml:"errorHandling,omitempty"`
}

// DefaultOptions returns the options used by a freshly constructed registry.
func DefaultOptions() Options {
	return Options{
		MergeStrategy: MergeOverride,
		ErrorHandling: ErrorStrict,
	}
}

// Merge returns o with non-zero fields of other applied on top. The merge
// is shallow: last write wins per key.
func (o Options) Merge(other Options) Options {
	if len(other.Sources) > 0 {
		o.Sources = other.Sources
	}
	if other.AutoLoad {
		o.AutoLoad = true
	}
	if other.ValidateOnLoad {
		o.ValidateOnLoad = true
	}
	if other.OverrideExisting {
		o.OverrideExisting = true
	}
	if other.MergeStrategy != "" {
		o.MergeStrategy = other.MergeStrategy
	}
	if other.ErrorHandling != "" {
		o.ErrorHandling = other.ErrorHandling
	}
	return o
}
