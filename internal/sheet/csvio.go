package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
)

// ReadCSV loads an entire CSV file into a Grid.
// Rows are allowed to have varying field counts; quoting is lenient to
// tolerate hand-edited exports.
func ReadCSV(path string) (Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening csv %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv %s: %w", path, err)
	}

	return Grid(rows), nil
}

// WriteCSV writes rows to path, overwriting any existing file.
func WriteCSV(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing csv %s: %w", path, err)
	}
	w.Flush()

	return w.Error()
}
