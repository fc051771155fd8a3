package merge

import (
	"fmt"

	"github.com/iowa-dashboard/ingest/internal/parse"
)

// Merger accumulates per-file record sets into a canonical Table.
//
// Rows are aligned across files by (race, candidate) key, never by position.
// Same-year county files are expected to share identical row ordering, so a
// positional mismatch against the first file's structure is still detected
// and reported; it is purely a diagnostic signal, because accepting a
// misaligned row positionally would silently corrupt vote attribution.
type Merger struct {
	table    *Table
	base     []Key    // first file's row order, the positional baseline
	problems []string // structural findings
	notes    []string // informational findings
}

// NewMerger returns an empty Merger. Files must be added in a stable order;
// the table's column order follows the order of Add calls.
func NewMerger() *Merger {
	return &Merger{table: newTable()}
}

// Add merges one file's records into the table.
//
// The file contributes its distinct precinct keys as new columns and its
// distinct (race, candidate) keys as rows; keys already present from earlier
// files are aligned, new ones extend the union. A precinct column already
// contributed by another file is a structural problem and the duplicate is
// ignored, since one precinct must map to exactly one originating file.
func (m *Merger) Add(source string, records []parse.VoteRecord) {
	var fileKeys []Key
	fileKeyAt := make(map[Key]bool)
	var filePrecincts []string
	filePrecinctAt := make(map[string]bool)
	seenCell := make(map[Key]map[string]bool)

	contribution := Contribution{Source: source}

	for _, rec := range records {
		k := Key{Race: rec.RaceTitle, Candidate: rec.Candidate}

		if !fileKeyAt[k] {
			fileKeyAt[k] = true
			fileKeys = append(fileKeys, k)
		}

		if !filePrecinctAt[rec.Precinct] {
			filePrecinctAt[rec.Precinct] = true
			filePrecincts = append(filePrecincts, rec.Precinct)
		}

		// (race, candidate) must be unique per precinct within one file.
		if seenCell[k] == nil {
			seenCell[k] = make(map[string]bool)
		}
		if seenCell[k][rec.Precinct] {
			m.problems = append(m.problems, fmt.Sprintf(
				"%s: duplicate record for (%s, %s) at precinct %s; keeping the first",
				source, k.Race, k.Candidate, rec.Precinct))
			continue
		}
		seenCell[k][rec.Precinct] = true

		m.addRecord(source, k, rec)
	}

	// Positional check against the first file's structure. Mismatches are
	// reported but alignment stays key-based.
	if m.base == nil {
		m.base = fileKeys
	} else {
		for i, k := range fileKeys {
			if i >= len(m.base) {
				break
			}
			if m.base[i] != k {
				m.problems = append(m.problems, fmt.Sprintf(
					"row mismatch in %s: expected (%s, %s) at row %d, got (%s, %s)",
					source, m.base[i].Race, m.base[i].Candidate, i, k.Race, k.Candidate))
			}
		}
	}

	// Claim precinct columns for this file.
	for _, p := range filePrecincts {
		if owner, taken := m.table.source[p]; taken {
			m.problems = append(m.problems, fmt.Sprintf(
				"precinct column %q contributed by both %s and %s; ignoring the latter",
				p, owner, source))
			continue
		}
		m.table.source[p] = source
		m.table.precincts = append(m.table.precincts, p)
		contribution.Precincts++
	}

	contribution.Rows = len(fileKeys)
	m.table.perFile = append(m.table.perFile, contribution)
}

func (m *Merger) addRecord(source string, k Key, rec parse.VoteRecord) {
	t := m.table

	if _, ok := t.index[k]; !ok {
		t.index[k] = len(t.keys)
		t.keys = append(t.keys, k)
		t.votes[k] = make(map[string]int)
	}

	// Only the owning file may populate a precinct column; a duplicate
	// column was already reported and its values are dropped.
	if owner, taken := t.source[rec.Precinct]; taken && owner != source {
		return
	}
	if rec.Votes != 0 {
		t.votes[k][rec.Precinct] = rec.Votes
	}

	if rec.Party != "" {
		switch existing := t.party[k]; {
		case existing == "":
			t.party[k] = rec.Party
		case existing != rec.Party:
			m.notes = append(m.notes, fmt.Sprintf(
				"conflicting party for (%s, %s): %q from %s vs existing %q",
				k.Race, k.Candidate, rec.Party, source, existing))
		}
	}
}

// Table finalizes and returns the canonical table.
func (m *Merger) Table() *Table {
	return m.table
}

// Problems returns structural findings collected during the merge.
func (m *Merger) Problems() []string {
	return m.problems
}

// Notes returns informational findings (such as conflicting party labels).
func (m *Merger) Notes() []string {
	return m.notes
}
