// Package merge consolidates per-county record sets into the single
// statewide canonical table: one row per (race, candidate), one column per
// precinct.
package merge

import "strconv"

// Key identifies a canonical row. Within one source file the pair is unique;
// across files it is the alignment identity.
type Key struct {
	Race      string
	Candidate string
}

// Contribution records what one source file added to the table.
type Contribution struct {
	Source    string
	Precincts int
	Rows      int
}

// Table is the consolidated (race, candidate) x precinct vote matrix.
// It is built once by a Merger and read-only afterwards; absent cells are
// zero votes, never missing-and-unknown.
type Table struct {
	keys      []Key
	index     map[Key]int
	party     map[Key]string
	precincts []string
	source    map[string]string // precinct -> contributing file
	votes     map[Key]map[string]int
	perFile   []Contribution
}

func newTable() *Table {
	return &Table{
		index:  make(map[Key]int),
		party:  make(map[Key]string),
		source: make(map[string]string),
		votes:  make(map[Key]map[string]int),
	}
}

// Keys returns the row identities in first-seen order.
func (t *Table) Keys() []Key {
	out := make([]Key, len(t.keys))
	copy(out, t.keys)
	return out
}

// Precincts returns the precinct columns in contribution order.
func (t *Table) Precincts() []string {
	out := make([]string, len(t.precincts))
	copy(out, t.precincts)
	return out
}

// Votes returns the vote count for a row and precinct; zero when the
// originating file reported nothing for that row.
func (t *Table) Votes(k Key, precinct string) int {
	return t.votes[k][precinct]
}

// Party returns the party label attached to a row, or "" when unknown.
func (t *Table) Party(k Key) string {
	return t.party[k]
}

// Source returns the file that contributed a precinct column.
func (t *Table) Source(precinct string) string {
	return t.source[precinct]
}

// Contributions returns per-file precinct and row counts in merge order.
func (t *Table) Contributions() []Contribution {
	out := make([]Contribution, len(t.perFile))
	copy(out, t.perFile)
	return out
}

// Header returns the export header: the three metadata columns followed by
// one column per precinct.
func (t *Table) Header() []string {
	h := make([]string, 0, 3+len(t.precincts))
	h = append(h, "RaceTitle", "CandidateName", "PoliticalPartyName")
	h = append(h, t.precincts...)
	return h
}

// Row renders one row in Header order. Every row has exactly the same cell
// count; zero-vote cells render as "0".
func (t *Table) Row(k Key) []string {
	row := make([]string, 0, 3+len(t.precincts))
	row = append(row, k.Race, k.Candidate, t.party[k])
	votes := t.votes[k]
	for _, p := range t.precincts {
		row = append(row, strconv.Itoa(votes[p]))
	}
	return row
}

// Export renders the whole table as header plus one row per key.
func (t *Table) Export() [][]string {
	rows := make([][]string, 0, 1+len(t.keys))
	rows = append(rows, t.Header())
	for _, k := range t.keys {
		rows = append(rows, t.Row(k))
	}
	return rows
}
