package registry

import (
	"time"

	"github.com/mockharness/mockharness/pkg/mock"
)

// RegistrationResult is the outcome of a Register call. Failures are soft:
// Success is false and Errors is populated, but nothing panics, so one bad
// mock does not abort a test run.
type RegistrationResult struct {
	Success  bool
	Errors   []error
	Warnings []string

	// LoadTime is how long the registration took
	LoadTime time.Duration
}

// LoadResult is the outcome of a Load call.
type LoadResult struct {
	Success  bool
	Errors   []error
	Warnings []string

	// Entry is the loaded entry, nil when loading failed
	Entry *mock.Entry
}

// Stats summarizes the registry contents.
type Stats struct {
	TotalMocks   int               `json:"totalMocks"`
	EnabledMocks int               `json:"enabledMocks"`
	LoadedMocks  int               `json:"loadedMocks"`
	ByType       map[mock.Type]int `json:"byType"`
}
