package diff

import (
	"fmt"
	"sort"
	"time"
)

// Type classifies one detected discrepancy.
type Type string

const (
	Missing           Type = "MISSING"
	Extra             Type = "EXTRA"
	TypeMismatch      Type = "TYPE_MISMATCH"
	ValueMismatch     Type = "VALUE_MISMATCH"
	StructureMismatch Type = "STRUCTURE_MISMATCH"
)

// Severity grades a discrepancy. Critical and high are reserved for a
// missing required member or a type mismatch on a present member.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Entry is one detected discrepancy between expected and actual structure.
type Entry struct {
	// Type is the discrepancy class
	Type Type `json:"type"`

	// Path is a dotted locator within the structure, e.g. "methods.toast"
	Path string `json:"path"`

	// Expected and Actual capture the compared values or type tags
	Expected any `json:"expected,omitempty"`
	Actual   any `json:"actual,omitempty"`

	// Severity grades the discrepancy
	Severity Severity `json:"severity"`

	// Suggestion is a human-readable remediation hint
	Suggestion string `json:"suggestion,omitempty"`
}

// StructureError wraps a diff entry as an error for callers that aggregate
// failures into validation results.
type StructureError struct {
	Entry Entry
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("%s at %s: expected %v, got %v",
		e.Entry.Type, e.Entry.Path, e.Entry.Expected, e.Entry.Actual)
}

// Health is the band label corresponding to a compatibility score.
type Health string

const (
	HealthExcellent Health = "excellent"
	HealthGood      Health = "good"
	HealthFair      Health = "fair"
	HealthPoor      Health = "poor"
	HealthCritical  Health = "critical"
)

// Report is the outcome of one comparison. It is computed fresh on every
// call and never persisted; callers may cache it.
type Report struct {
	// Name identifies the compared mock
	Name string `json:"name"`

	// Differences are the detected discrepancies
	Differences []Entry `json:"differences"`

	// Warnings are right-shape-but-uninstrumented findings: the member
	// exists with the correct type but supports no call assertions.
	Warnings []Entry `json:"warnings,omitempty"`

	// Score is the banded compatibility score, 0-100
	Score int `json:"score"`

	// Health is the band label for Score
	Health Health `json:"health"`

	// Timestamp is when the comparison ran
	Timestamp time.Time `json:"timestamp"`
}

// Count returns the number of differences of the given type.
func (r *Report) Count(t Type) int {
	n := 0
	for _, d := range r.Differences {
		if d.Type == t {
			n++
		}
	}
	return n
}

// CriticalCount returns the number of critical differences.
func (r *Report) CriticalCount() int {
	n := 0
	for _, d := range r.Differences {
		if d.Severity == SeverityCritical {
			n++
		}
	}
	return n
}

// Summary returns a one-line human-readable digest of the report.
func (r *Report) Summary() string {
	if len(r.Differences) == 0 && len(r.Warnings) == 0 {
		return fmt.Sprintf("%s: structure matches (score %d, %s)", r.Name, r.Score, r.Health)
	}
	return fmt.Sprintf("%s: %d difference(s), %d warning(s), score %d (%s)",
		r.Name, len(r.Differences), len(r.Warnings), r.Score, r.Health)
}

// Errors returns the differences as StructureErrors.
func (r *Report) Errors() []error {
	out := make([]error, 0, len(r.Differences))
	for _, d := range r.Differences {
		out = append(out, &StructureError{Entry: d})
	}
	return out
}

// Engine compares expected shapes against live mock values.
type Engine struct {
	score ScoreConfig
}

// NewEngine creates an engine with the default score configuration.
func NewEngine() *Engine {
	return &Engine{score: DefaultScoreConfig()}
}

// NewEngineWithScore creates an engine with a custom score configuration.
func NewEngineWithScore(cfg ScoreConfig) *Engine {
	return &Engine{score: cfg}
}

// Compare walks the expected shape against the actual value and returns a
// deterministic diff report. Comparison is structural: keys, callability,
// and coarse type tags, never runtime values.
func (e *Engine) Compare(name string, expected *Shape, actual any) *Report {
	report := &Report{Name: name, Timestamp: time.Now()}
	if expected == nil {
		expected = NewShape()
	}

	a := analyze(actual)

	if a.opaque {
		if len(expected.Properties)+len(expected.Methods) > 0 {
			report.Differences = append(report.Differences, Entry{
				Type:     StructureMismatch,
				Path:     "",
				Expected: "object with members",
				Actual:   string(a.tag),
				Severity: SeverityHigh,
				Suggestion: fmt.Sprintf(
					"mock %q is a %s leaf; replace it with a value exposing the expected members", name, a.tag),
			})
		}
		e.finish(report)
		return report
	}

	comparBucket(report, "properties", expected.Properties, a, kindProperty)
	comparBucket(report, "methods", expected.Methods, a, kindMethod)
	collectExtras(report, expected, a)

	e.finish(report)
	return report
}

// comparBucket applies the comparison rules for one bucket of expected
// members, independently of the other bucket.
func comparBucket(report *Report, bucket string, expected map[string]Member, a actualShape, kind memberKind) {
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := expected[name]
		path := bucket + "." + name

		m, present := a.members[name]
		if !present {
			severity := SeverityMedium
			if spec.Required {
				severity = SeverityCritical
			}
			report.Differences = append(report.Differences, Entry{
				Type:       Missing,
				Path:       path,
				Expected:   string(spec.Type),
				Severity:   severity,
				Suggestion: missingSuggestion(name, spec.Type),
			})
			continue
		}

		if m.kind != kind || (kind == kindProperty && m.tag != spec.Type) {
			report.Differences = append(report.Differences, Entry{
				Type:     TypeMismatch,
				Path:     path,
				Expected: string(spec.Type),
				Actual:   string(m.tag),
				Severity: SeverityHigh,
				Suggestion: fmt.Sprintf(
					"change %q from %s to %s", name, m.tag, spec.Type),
			})
			continue
		}

		// Right shape but not instrumented for assertions: a warning,
		// not an error.
		if kind == kindMethod && !m.instrumented {
			report.Warnings = append(report.Warnings, Entry{
				Type:     ValueMismatch,
				Path:     path,
				Expected: "instrumented mock function",
				Actual:   "plain function",
				Severity: SeverityLow,
				Suggestion: fmt.Sprintf(
					"wrap %q with mock.Instrument so calls can be asserted on", name),
			})
		}
	}
}

// collectExtras reports actual members absent from the expected shape.
// Extras are informational, never blocking.
func collectExtras(report *Report, expected *Shape, a actualShape) {
	names := make([]string, 0, len(a.members))
	for name := range a.members {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, ok := expected.Properties[name]; ok {
			continue
		}
		if _, ok := expected.Methods[name]; ok {
			continue
		}
		m := a.members[name]
		bucket := "properties"
		if m.kind == kindMethod {
			bucket = "methods"
		}
		report.Differences = append(report.Differences, Entry{
			Type:       Extra,
			Path:       bucket + "." + name,
			Actual:     string(m.tag),
			Severity:   SeverityLow,
			Suggestion: fmt.Sprintf("remove %q or add it to the expected shape", name),
		})
	}
}

func missingSuggestion(name string, tag TypeTag) string {
	if tag == TagFunction {
		return fmt.Sprintf("add method %q, e.g. %s", name, stubValue(TagFunction))
	}
	return fmt.Sprintf("add property %q with a %s value, e.g. %s", name, tag, stubValue(tag))
}

func (e *Engine) finish(report *Report) {
	report.Score, report.Health = e.score.Grade(report.CriticalCount(), len(report.Differences))
}
