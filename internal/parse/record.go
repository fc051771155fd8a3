// Package parse recovers a uniform (race, candidate, precinct, votes)
// relation from the three incompatible source layouts: the flat statewide
// sheet, the flat per-county sheets, and the one-sheet-per-race workbooks.
package parse

import (
	"strconv"
	"strings"
)

// VoteRecord is the atomic parsing result. Records are created per source
// file and consumed immediately by the merger; they are never mutated.
type VoteRecord struct {
	RaceTitle string
	Candidate string
	Party     string
	Precinct  string
	Votes     int
}

// Options carries the format markers that vary (rarely) between election
// cycles. Zero values are filled in by Normalize.
type Options struct {
	// TotalSuffix marks precinct vote-total columns in flat headers.
	TotalSuffix string

	// PrecinctSeparator distinguishes "County-Precinct" totals from bare
	// county aggregate columns, which must be excluded to avoid double
	// counting in the statewide merge.
	PrecinctSeparator string

	// TotalMarker is the sentinel ending the precinct axis in per-race sheets.
	TotalMarker string

	// ExcludedSheets are workbook sheets skipped by exact name match.
	ExcludedSheets []string

	// Lookahead is how many category columns to scan for a candidate's
	// total-votes column.
	Lookahead int
}

// DefaultOptions returns the markers used by every documented cycle.
func DefaultOptions() Options {
	return Options{
		TotalSuffix:       " Total",
		PrecinctSeparator: "-",
		TotalMarker:       "Total:",
		ExcludedSheets:    []string{"Table of Contents", "Registered Voters"},
		Lookahead:         5,
	}
}

// Normalize fills zero-valued fields with defaults.
func (o Options) Normalize() Options {
	def := DefaultOptions()
	if o.TotalSuffix == "" {
		o.TotalSuffix = def.TotalSuffix
	}
	if o.PrecinctSeparator == "" {
		o.PrecinctSeparator = def.PrecinctSeparator
	}
	if o.TotalMarker == "" {
		o.TotalMarker = def.TotalMarker
	}
	if o.ExcludedSheets == nil {
		o.ExcludedSheets = def.ExcludedSheets
	}
	if o.Lookahead <= 0 {
		o.Lookahead = def.Lookahead
	}
	return o
}

// Stats counts what a single-file parse kept, dropped, and tolerated.
// Tolerated anomalies degrade to zero or skip by policy; the counts let the
// run summary distinguish "truly zero votes" from "cell could not be read".
type Stats struct {
	RowsKept          int // candidate rows emitted
	RowsDropped       int // rows excluded by the race classifier
	SheetsParsed      int
	SheetsSkipped     int // excluded, empty, or untracked sheets
	SheetErrors       int // sheets that could not be read at all
	CandidatesSkipped int // candidates with no total column in the lookahead window
	CellsDefaulted    int // blank or non-numeric vote cells coerced to zero
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.RowsKept += other.RowsKept
	s.RowsDropped += other.RowsDropped
	s.SheetsParsed += other.SheetsParsed
	s.SheetsSkipped += other.SheetsSkipped
	s.SheetErrors += other.SheetErrors
	s.CandidatesSkipped += other.CandidatesSkipped
	s.CellsDefaulted += other.CellsDefaulted
}

// VoteCell is the named outcome of reading one vote cell: the value plus
// whether the source cell actually held a usable number. Spreadsheets leave
// blank cells for zero-vote precincts, so a defaulted cell is not an error.
type VoteCell struct {
	Votes     int
	Defaulted bool
}

// ReadVoteCell coerces a raw cell to a non-negative vote count.
// Thousands separators are stripped and float renderings ("412.0", common in
// xlsx exports) are accepted. Anything else defaults to zero.
func ReadVoteCell(raw string) VoteCell {
	s := strings.TrimSpace(raw)
	if s == "" {
		return VoteCell{Defaulted: true}
	}
	s = strings.ReplaceAll(s, ",", "")

	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return VoteCell{Votes: n}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return VoteCell{Votes: int(f)}
	}
	return VoteCell{Defaulted: true}
}
