package parse

import (
	"github.com/iowa-dashboard/ingest/internal/races"
	"github.com/iowa-dashboard/ingest/internal/sheet"
)

// Fixed positions of the per-race sheet layout. The first three rows form a
// header (race title, candidate names, column categories); precinct rows
// start immediately after.
const (
	titleRow     = 0
	candidateRow = 1
	categoryRow  = 2
	dataStartRow = 3
)

// Category labels that mark a candidate's total-votes column. 2018 files say
// "Total Votes"; some 2020 sheets shorten it to "Total".
var totalCategoryLabels = []string{"Total Votes", "Total"}

// axisPoint is one discovered position on the precinct or candidate axis.
type axisPoint struct {
	index int    // row index for precincts, vote-column index for candidates
	name  string
}

// sheetLayout is the recovered structure of one per-race sheet.
// The layout is discovered positionally: nothing in the file declares how
// many precinct rows exist or which column belongs to which candidate.
type sheetLayout struct {
	title             string
	precincts         []axisPoint
	candidates        []axisPoint
	skippedCandidates int
}

// empty reports whether the sheet carries no usable data. Common and normal:
// summary pages and malformed sheets fall out here rather than erroring.
func (l sheetLayout) empty() bool {
	return l.title == "" || len(l.precincts) == 0 || len(l.candidates) == 0
}

// discoverLayout scans the three header rows and the precinct column.
//
// Precinct axis: column 0 from the data-start row until the "Total:" sentinel
// or the first blank cell, whichever comes first.
//
// Candidate axis: row 1 left to right from column 1. A non-empty cell names a
// candidate owning the columns that follow; the candidate's vote column is
// the one within the lookahead window whose category-row label means total
// votes. A candidate with no such column in the window is skipped entirely
// so a malformed header cannot abort the whole sheet.
func discoverLayout(g sheet.Grid, opts Options) sheetLayout {
	layout := sheetLayout{title: g.Cell(titleRow, 0)}

	for r := dataStartRow; r < len(g); r++ {
		name := g.Cell(r, 0)
		if name == "" || name == opts.TotalMarker {
			break
		}
		layout.precincts = append(layout.precincts, axisPoint{index: r, name: name})
	}

	width := 0
	for _, row := range []int{candidateRow, categoryRow} {
		if row < len(g) && len(g[row]) > width {
			width = len(g[row])
		}
	}

	for col := 1; col < width; {
		name := g.Cell(candidateRow, col)
		if name == "" {
			col++
			continue
		}

		voteCol := -1
		for off := 0; off < opts.Lookahead; off++ {
			if isTotalCategory(g.Cell(categoryRow, col+off)) {
				voteCol = col + off
				break
			}
		}

		if voteCol < 0 {
			layout.skippedCandidates++
			col++
			continue
		}

		layout.candidates = append(layout.candidates, axisPoint{index: voteCol, name: name})
		col = voteCol + 1
	}

	return layout
}

func isTotalCategory(label string) bool {
	for _, want := range totalCategoryLabels {
		if label == want {
			return true
		}
	}
	return false
}

// ParseWorkbook extracts vote records from a one-sheet-per-race workbook.
// Reserved sheets are excluded by exact name before any parsing. Each
// remaining sheet yields one record per (candidate, precinct) pair, with
// precinct keys qualified by the owning county for statewide uniqueness.
//
// The race classifier runs after layout discovery because the race title is
// only known once the sheet has been read; untracked sheets contribute
// nothing and are not errors.
func ParseWorkbook(wb sheet.Workbook, county string, cls *races.Classifier, opts Options) ([]VoteRecord, Stats) {
	opts = opts.Normalize()

	excluded := make(map[string]bool, len(opts.ExcludedSheets))
	for _, name := range opts.ExcludedSheets {
		excluded[name] = true
	}

	var records []VoteRecord
	var stats Stats

	for _, name := range wb.Sheets() {
		if excluded[name] {
			stats.SheetsSkipped++
			continue
		}

		g, err := wb.Rows(name)
		if err != nil {
			stats.SheetErrors++
			continue
		}

		layout := discoverLayout(g, opts)
		stats.CandidatesSkipped += layout.skippedCandidates

		if layout.empty() || !cls.Tracked(layout.title) {
			stats.SheetsSkipped++
			continue
		}

		for _, cand := range layout.candidates {
			for _, prec := range layout.precincts {
				vc := ReadVoteCell(g.Cell(prec.index, cand.index))
				if vc.Defaulted {
					stats.CellsDefaulted++
				}
				records = append(records, VoteRecord{
					RaceTitle: layout.title,
					Candidate: cand.name,
					Precinct:  county + opts.PrecinctSeparator + prec.name,
					Votes:     vc.Votes,
				})
			}
			stats.RowsKept++
		}
		stats.SheetsParsed++
	}

	return records, stats
}
