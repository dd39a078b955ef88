package validation

import (
	"fmt"

	"github.com/mockharness/mockharness/pkg/diff"
	"github.com/mockharness/mockharness/pkg/mock"
	"github.com/mockharness/mockharness/pkg/registry"
)

// ShapeOptionKey is the configuration option under which a registration
// may carry an explicit expected shape (*diff.Shape). Without it, the
// expected shape is derived from the registered implementation.
const ShapeOptionKey = "expectedShape"

// Validator checks live mock values against their registered expectations.
type Validator struct {
	reg       *registry.Registry
	engine    *diff.Engine
	penalties Penalties
}

// NewValidator creates a validator over reg with default scoring.
func NewValidator(reg *registry.Registry) *Validator {
	return &Validator{
		reg:       reg,
		engine:    diff.NewEngine(),
		penalties: DefaultPenalties(),
	}
}

// SetPenalties replaces the deduction table.
func (v *Validator) SetPenalties(p Penalties) {
	v.penalties = p
}

// ValidateHookMock compares a live hook mock against the registered entry
// of the same name.
func (v *Validator) ValidateHookMock(name string, live any) *Result {
	return v.validate(name, live, mock.TypeHook)
}

// ValidateComponentMock compares a live component mock against the
// registered entry of the same name.
func (v *Validator) ValidateComponentMock(name string, live any) *Result {
	return v.validate(name, live, mock.TypeComponent)
}

// GenerateMockDiff diffs an actual value against an expected reference
// value without consulting the registry.
func (v *Validator) GenerateMockDiff(expected, actual any, name string) *diff.Report {
	return v.engine.Compare(name, diff.ShapeOf(expected), actual)
}

func (v *Validator) validate(name string, live any, want mock.Type) *Result {
	result := &Result{}

	entry := v.reg.Get(name)
	if entry == nil {
		result.AddError(diff.Entry{
			Type:       diff.Missing,
			Path:       "registry." + name,
			Expected:   string(want),
			Severity:   diff.SeverityCritical,
			Suggestion: fmt.Sprintf("register %q before validating against it", name),
		})
		result.Finalize(v.penalties)
		return result
	}

	if entry.Metadata.Type != want {
		result.AddError(diff.Entry{
			Type:       diff.TypeMismatch,
			Path:       "metadata.type",
			Expected:   string(want),
			Actual:     string(entry.Metadata.Type),
			Severity:   diff.SeverityHigh,
			Suggestion: fmt.Sprintf("entry %q is registered as a %s", name, entry.Metadata.Type),
		})
	}

	report := v.engine.Compare(name, v.expectedShape(entry), live)
	result.Errors = append(result.Errors, report.Differences...)
	result.Warnings = append(result.Warnings, report.Warnings...)

	result.Finalize(v.penalties)
	return result
}

// expectedShape prefers an explicit shape stored in the entry's options
// and falls back to deriving one from the registered implementation.
func (v *Validator) expectedShape(entry *mock.Entry) *diff.Shape {
	if s, ok := entry.Configuration.Options[ShapeOptionKey].(*diff.Shape); ok && s != nil {
		return s
	}
	return diff.ShapeOf(entry.Implementation)
}
