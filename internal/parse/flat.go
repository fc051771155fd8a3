package parse

import (
	"github.com/iowa-dashboard/ingest/internal/races"
	"github.com/iowa-dashboard/ingest/internal/sheet"
)

// ParseFlat extracts vote records from a flat single-sheet source: row 0 is
// the header, every later row is one (race, candidate, party, votes...)
// tuple. One record is emitted per kept data row and kept precinct column.
//
// Rows whose race title fails the classifier are dropped and counted.
// Blank and malformed vote cells become zero; they never fail the parse.
func ParseFlat(grid sheet.Grid, cls *races.Classifier, opts Options) ([]VoteRecord, Stats) {
	var stats Stats
	if len(grid) == 0 {
		return nil, stats
	}

	cols := ResolveColumns(grid[0], opts)

	raceIdx, candIdx, partyIdx := -1, -1, -1
	var precincts []Column
	for _, c := range cols {
		switch {
		case c.Meta && c.Name == ColRaceTitle:
			raceIdx = c.Index
		case c.Meta && c.Name == ColCandidate:
			candIdx = c.Index
		case c.Meta && c.Name == ColParty:
			partyIdx = c.Index
		case !c.Meta:
			precincts = append(precincts, c)
		}
	}

	// Without race and candidate columns there is nothing to key records on.
	if raceIdx < 0 || candIdx < 0 {
		return nil, stats
	}

	var records []VoteRecord
	for r := 1; r < len(grid); r++ {
		race := grid.Cell(r, raceIdx)
		if !cls.Tracked(race) {
			stats.RowsDropped++
			continue
		}

		candidate := grid.Cell(r, candIdx)
		party := ""
		if partyIdx >= 0 {
			party = grid.Cell(r, partyIdx)
		}

		for _, p := range precincts {
			vc := ReadVoteCell(grid.Cell(r, p.Index))
			if vc.Defaulted {
				stats.CellsDefaulted++
			}
			records = append(records, VoteRecord{
				RaceTitle: race,
				Candidate: candidate,
				Party:     party,
				Precinct:  p.Name,
				Votes:     vc.Votes,
			})
		}
		stats.RowsKept++
	}

	return records, stats
}
