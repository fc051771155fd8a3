// Package sheet provides uniform access to the source spreadsheets.
//
// All parsers work on a Grid of string cells regardless of whether the data
// came from a CSV export or an xlsx workbook. Cell cleaning handles the
// artifacts Excel leaves behind in exported data (formula-wrapped values,
// non-breaking spaces, BOMs).
package sheet

import "strings"

// Grid is a rectangular-ish block of cells, rows outermost.
// Rows may be ragged; callers use Cell for bounds-checked access.
type Grid [][]string

// Cell returns the trimmed value at (row, col), or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	r := g[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// CleanCell normalizes a raw cell value: trims whitespace, unwraps Excel
// formula-quoted text (="value"), and strips non-breaking spaces.
func CleanCell(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.TrimSpace(s)

	// Excel CSV exports sometimes wrap text as ="..." to force string typing
	if strings.HasPrefix(s, `="`) && strings.HasSuffix(s, `"`) && len(s) >= 3 {
		s = s[2 : len(s)-1]
		s = strings.TrimSpace(s)
	}

	return s
}

// CleanHeader normalizes a header cell. Same as CleanCell plus BOM removal,
// since the first header cell of a Windows CSV often carries one.
func CleanHeader(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return CleanCell(s)
}
