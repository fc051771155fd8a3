package parse

import (
	"strings"

	"github.com/iowa-dashboard/ingest/internal/sheet"
)

// Metadata column names, matched exactly after trimming. Some exports pad
// these with leading spaces (" CandidateName" appears in 2016 files).
const (
	ColRaceTitle = "RaceTitle"
	ColCandidate = "CandidateName"
	ColParty     = "PoliticalPartyName"
)

// Column maps a kept source column to its output name.
type Column struct {
	Index int    // position in the source header row
	Name  string // output name; precinct columns have the total suffix stripped
	Meta  bool   // metadata column (race, candidate, party)
}

// ResolveColumns decides which header columns survive into the canonical
// output, preserving source order.
//
// Metadata columns are kept by exact name. Any other column is kept only if
// it ends with the total suffix AND the stripped name contains the precinct
// separator: "Polk-0001 Total" is a precinct total, but a bare "Polk Total"
// is a county aggregate whose inclusion would double-count every vote at the
// statewide merge. Absentee and polling breakdown columns match neither rule
// and are dropped.
func ResolveColumns(header []string, opts Options) []Column {
	opts = opts.Normalize()

	var cols []Column
	for i, h := range header {
		name := sheet.CleanHeader(h)
		if name == "" {
			continue
		}

		switch name {
		case ColRaceTitle, ColCandidate, ColParty:
			cols = append(cols, Column{Index: i, Name: name, Meta: true})
			continue
		}

		if !strings.HasSuffix(name, opts.TotalSuffix) {
			continue
		}

		precinct := strings.TrimSpace(strings.TrimSuffix(name, opts.TotalSuffix))
		if !strings.Contains(precinct, opts.PrecinctSeparator) {
			continue
		}

		cols = append(cols, Column{Index: i, Name: precinct})
	}

	return cols
}
