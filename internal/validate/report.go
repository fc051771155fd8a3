// Package validate runs post-merge sanity checks over the canonical table
// and produces a diagnostic report. It never mutates the table; every
// finding is advisory and the decision to trust the merged output belongs
// to whoever reads the report.
package validate

import (
	"fmt"
	"strings"
)

// Severity classifies a finding.
type Severity int

const (
	// SeverityInfo marks expected-but-notable patterns, like a minor
	// statewide candidate with votes in few precincts.
	SeverityInfo Severity = iota

	// SeverityWarn marks tolerated degradations, like a skipped source file.
	SeverityWarn

	// SeverityStructural marks shape or alignment deviations in the merged
	// data itself.
	SeverityStructural

	// SeveritySuspect marks statistically implausible vote patterns that
	// usually indicate a column-alignment bug upstream.
	SeveritySuspect
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarn:
		return "warn"
	case SeverityStructural:
		return "structural"
	case SeveritySuspect:
		return "suspect"
	default:
		return "unknown"
	}
}

// Finding is one diagnostic observation.
type Finding struct {
	Severity Severity
	Message  string
}

// Report is an ordered sequence of findings.
type Report struct {
	Findings []Finding
}

// Add appends a finding.
func (r *Report) Add(sev Severity, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// Count returns how many findings carry the given severity.
func (r *Report) Count(sev Severity) int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == sev {
			n++
		}
	}
	return n
}

// renderCap bounds how many findings of one severity the rendered report
// lists before collapsing the rest into a remainder count.
const renderCap = 10

// Render formats the report for humans, grouping findings by severity in
// descending order of urgency and capping each group.
func (r *Report) Render() string {
	if len(r.Findings) == 0 {
		return "no problems found"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d findings\n", len(r.Findings))

	for _, sev := range []Severity{SeveritySuspect, SeverityStructural, SeverityWarn, SeverityInfo} {
		var group []Finding
		for _, f := range r.Findings {
			if f.Severity == sev {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}

		fmt.Fprintf(&b, "[%s] %d:\n", sev, len(group))
		for i, f := range group {
			if i == renderCap {
				fmt.Fprintf(&b, "  ... and %d more\n", len(group)-renderCap)
				break
			}
			fmt.Fprintf(&b, "  - %s\n", f.Message)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
