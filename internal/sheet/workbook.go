package sheet

import "fmt"

// Workbook is a named collection of sheets. The xlsx reader and the in-memory
// fixture used by tests both satisfy it.
type Workbook interface {
	// Name identifies the workbook (usually the source file name).
	Name() string

	// Sheets returns sheet names in workbook order.
	Sheets() []string

	// Rows returns the full cell grid of one sheet.
	Rows(sheet string) (Grid, error)

	// Close releases any underlying file handle.
	Close() error
}

// MemWorkbook is an in-memory Workbook.
type MemWorkbook struct {
	Label string
	Order []string
	Data  map[string]Grid
}

func (m *MemWorkbook) Name() string { return m.Label }

func (m *MemWorkbook) Sheets() []string { return m.Order }

func (m *MemWorkbook) Rows(sheet string) (Grid, error) {
	g, ok := m.Data[sheet]
	if !ok {
		return nil, fmt.Errorf("workbook %s has no sheet %q", m.Label, sheet)
	}
	return g, nil
}

func (m *MemWorkbook) Close() error { return nil }
