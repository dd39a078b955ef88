package diff

import (
	"fmt"
	"sort"
	"strings"
)

// stubValue returns the default stand-in for a missing member of the given
// type, per the default-value-by-type table.
func stubValue(tag TypeTag) string {
	switch tag {
	case TagString:
		return `"placeholder"`
	case TagNumber:
		return "0"
	case TagBoolean:
		return "false"
	case TagArray:
		return "[]any{}"
	case TagObject:
		return "map[string]any{}"
	case TagFunction:
		return "mock.Instrument(func(args ...any) any { return nil })"
	default:
		return "nil"
	}
}

// FixStubs generates advisory stub code for every MISSING entry in the
// report: a map-literal fragment a developer can paste into the mock's API
// surface. This is remediation text, not executed code. Returns "" when
// nothing is missing.
func FixStubs(report *Report) string {
	var missing []Entry
	for _, d := range report.Differences {
		if d.Type == Missing {
			missing = append(missing, d)
		}
	}
	if len(missing) == 0 {
		return ""
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i].Path < missing[j].Path })

	var b strings.Builder
	fmt.Fprintf(&b, "// missing members for %q\n", report.Name)
	for _, d := range missing {
		name := d.Path
		if i := strings.LastIndex(name, "."); i >= 0 {
			name = name[i+1:]
		}
		tag := TagObject
		if s, ok := d.Expected.(string); ok {
			tag = TypeTag(s)
		}
		fmt.Fprintf(&b, "%q: %s,\n", name, stubValue(tag))
	}
	return b.String()
}
