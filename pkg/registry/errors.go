package registry

import "fmt"

// RegistrationError reports a failed registration: a duplicate name or
// invalid metadata.
type RegistrationError struct {
	Name    string
	Message string
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("registration failed for %q: %s", e.Name, e.Message)
}

// LoadError reports a failed load: an unknown name or a loader failure.
type LoadError struct {
	Name    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load failed for %q: %s: %v", e.Name, e.Message, e.Err)
	}
	return fmt.Sprintf("load failed for %q: %s", e.Name, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Err }
