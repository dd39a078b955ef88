package validation

import (
	"time"

	"github.com/mockharness/mockharness/pkg/diff"
)

// Penalties holds the per-severity score deductions. They are empirically
// chosen constants kept configurable so suites can recalibrate.
type Penalties struct {
	Critical int
	High     int
	Medium   int
	Low      int
	Warning  int
}

// DefaultPenalties returns the standard deduction table.
func DefaultPenalties() Penalties {
	return Penalties{
		Critical: 25,
		High:     15,
		Medium:   8,
		Low:      3,
		Warning:  2,
	}
}

// Result aggregates a validation run. IsValid is true iff no error has
// critical or high severity; the score starts at 100 and is reduced by
// fixed penalties per severity, floored at 0.
type Result struct {
	IsValid   bool         `json:"isValid"`
	Errors    []diff.Entry `json:"errors,omitempty"`
	Warnings  []diff.Entry `json:"warnings,omitempty"`
	Score     int          `json:"score"`
	Timestamp time.Time    `json:"timestamp"`
}

// AddError appends a validation error.
func (r *Result) AddError(e diff.Entry) {
	r.Errors = append(r.Errors, e)
}

// AddWarning appends a validation warning.
func (r *Result) AddWarning(e diff.Entry) {
	r.Warnings = append(r.Warnings, e)
}

// Finalize computes IsValid and Score from the accumulated entries.
func (r *Result) Finalize(p Penalties) {
	r.IsValid = true
	score := 100

	for _, e := range r.Errors {
		switch e.Severity {
		case diff.SeverityCritical:
			r.IsValid = false
			score -= p.Critical
		case diff.SeverityHigh:
			r.IsValid = false
			score -= p.High
		case diff.SeverityMedium:
			score -= p.Medium
		default:
			score -= p.Low
		}
	}
	score -= p.Warning * len(r.Warnings)

	if score < 0 {
		score = 0
	}
	r.Score = score
	r.Timestamp = time.Now()
}
