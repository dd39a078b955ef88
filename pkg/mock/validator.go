package mock

import (
	"fmt"
	"regexp"
)

// ValidationError represents a validation failure with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

// validTypes are the allowed entry types.
var validTypes = map[Type]bool{
	TypeHook:      true,
	TypeComponent: true,
	TypeProvider:  true,
	TypeUtility:   true,
}

// versionRegex accepts dotted numeric versions with an optional pre-release
// suffix (1.0.0, 2.1, 1.0.0-beta.1).
var versionRegex = regexp.MustCompile(`^\d+(\.\d+)*(-[0-9A-Za-z.-]+)?$`)

// Validate checks that the entry is well-formed. It does not check that
// dependencies resolve; unresolved dependencies are a registry-level
// warning, not an entry defect.
func (e *Entry) Validate() error {
	if e.Name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}

	if e.Metadata.Type != "" && !validTypes[e.Metadata.Type] {
		return &ValidationError{
			Field:   "metadata.type",
			Message: fmt.Sprintf("unknown mock type: %s", e.Metadata.Type),
		}
	}

	if e.Metadata.Version != "" && !versionRegex.MatchString(e.Metadata.Version) {
		return &ValidationError{
			Field:   "metadata.version",
			Message: fmt.Sprintf("malformed version: %s", e.Metadata.Version),
		}
	}

	for _, dep := range e.Metadata.Dependencies {
		if dep == "" {
			return &ValidationError{Field: "metadata.dependencies", Message: "dependency name cannot be empty"}
		}
		if dep == e.Name {
			return &ValidationError{
				Field:   "metadata.dependencies",
				Message: fmt.Sprintf("entry %s cannot depend on itself", e.Name),
			}
		}
	}

	if e.Metadata.Priority < 0 {
		return &ValidationError{Field: "metadata.priority", Message: "priority cannot be negative"}
	}

	return nil
}
