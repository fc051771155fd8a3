package sheet

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxWorkbook adapts an excelize file to the Workbook interface.
type xlsxWorkbook struct {
	f    *excelize.File
	name string
}

// OpenWorkbook opens an xlsx file for reading.
// The caller must Close the returned workbook.
func OpenWorkbook(path string) (Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &xlsxWorkbook{f: f, name: filepath.Base(path)}, nil
}

func (w *xlsxWorkbook) Name() string { return w.name }

func (w *xlsxWorkbook) Sheets() []string { return w.f.GetSheetList() }

func (w *xlsxWorkbook) Rows(sheet string) (Grid, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, w.name, err)
	}
	return Grid(rows), nil
}

func (w *xlsxWorkbook) Close() error { return w.f.Close() }

// ReadTable loads a flat single-sheet source, dispatching on extension:
// .csv files are read directly, anything else is treated as an xlsx workbook
// whose first sheet holds the data.
func ReadTable(path string) (Grid, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ReadCSV(path)
	}

	wb, err := OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	return wb.Rows(sheets[0])
}
