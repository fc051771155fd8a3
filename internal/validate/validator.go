package validate

import (
	"github.com/iowa-dashboard/ingest/internal/merge"
	"github.com/iowa-dashboard/ingest/internal/races"
)

// coverageThreshold is the fraction of precincts below which a statewide
// race's nonzero coverage is noted. Minor candidates legitimately sit below
// it, which is why the finding is informational.
const coverageThreshold = 0.5

// Check inspects a merged table and returns the diagnostic report.
//
// Structural problems and informational notes collected during the merge are
// folded in first so the report reads in accumulation order, then the
// statistical checks run:
//
//   - shape: every exported row must have the declared cell count, and the
//     per-file precinct contributions must sum to the table's column count.
//   - statewide coverage: a statewide race with nonzero votes in under half
//     of all precincts is informational.
//   - district suspicion: a non-statewide race with nonzero votes in every
//     single precinct almost always means misaligned columns upstream and is
//     surfaced prominently.
func Check(t *merge.Table, structural, notes []string, cls *races.Classifier) Report {
	var report Report

	for _, p := range structural {
		report.Add(SeverityStructural, "%s", p)
	}
	for _, n := range notes {
		report.Add(SeverityInfo, "%s", n)
	}

	precincts := t.Precincts()
	total := len(precincts)

	declared := 0
	for _, c := range t.Contributions() {
		declared += c.Precincts
	}
	if declared != total {
		report.Add(SeverityStructural,
			"per-file precinct contributions sum to %d, table has %d columns", declared, total)
	}

	wantCells := 3 + total
	for _, k := range t.Keys() {
		if got := len(t.Row(k)); got != wantCells {
			report.Add(SeverityStructural,
				"row (%s, %s) has %d cells, expected %d", k.Race, k.Candidate, got, wantCells)
		}
	}

	if total == 0 {
		return report
	}

	for _, k := range t.Keys() {
		nonzero := 0
		for _, p := range precincts {
			if t.Votes(k, p) > 0 {
				nonzero++
			}
		}

		if cls.Statewide(k.Race) {
			if float64(nonzero) < float64(total)*coverageThreshold {
				report.Add(SeverityInfo,
					"statewide race '%s' / '%s' has votes in only %d of %d precincts",
					k.Race, k.Candidate, nonzero, total)
			}
			continue
		}

		if nonzero == total {
			report.Add(SeveritySuspect,
				"'%s' / '%s' has votes in ALL %d precincts", k.Race, k.Candidate, total)
		}
	}

	return report
}
