package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Polk-Des Moines 1", "Polk-Des Moines 1"},
		{"whitespace", "  Adair-1NW  ", "Adair-1NW"},
		{"formula wrapped", `="0001"`, "0001"},
		{"non-breaking space", "Story Total", "Story Total"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanHeader_StripsBOM(t *testing.T) {
	if got := CleanHeader("\uFEFFRaceTitle"); got != "RaceTitle" {
		t.Errorf("CleanHeader = %q, want %q", got, "RaceTitle")
	}
}

func TestGrid_Cell_OutOfRange(t *testing.T) {
	g := Grid{{"a", "b"}, {"c"}}

	if got := g.Cell(0, 1); got != "b" {
		t.Errorf("Cell(0,1) = %q, want %q", got, "b")
	}
	if got := g.Cell(1, 1); got != "" {
		t.Errorf("Cell(1,1) = %q, want empty (ragged row)", got)
	}
	if got := g.Cell(5, 0); got != "" {
		t.Errorf("Cell(5,0) = %q, want empty (row out of range)", got)
	}
	if got := g.Cell(-1, 0); got != "" {
		t.Errorf("Cell(-1,0) = %q, want empty", got)
	}
}

func TestCSV_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "votes.csv")

	rows := [][]string{
		{"RaceTitle", "CandidateName", "Polk-001 Total"},
		{"Governor", "A. Smith", "412"},
		{"Governor", "B. Jones", ""},
	}

	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	got, err := ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if len(got) != len(rows) {
		t.Fatalf("ReadCSV() rows = %d, want %d", len(got), len(rows))
	}
	if got.Cell(1, 2) != "412" {
		t.Errorf("cell (1,2) = %q, want %q", got.Cell(1, 2), "412")
	}
}

func TestReadCSV_Missing(t *testing.T) {
	_, err := ReadCSV(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("ReadCSV() expected error for missing file")
	}
}

func TestOpenWorkbook_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "county.xlsx")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "US Senate"); err != nil {
		t.Fatalf("SetSheetName() error = %v", err)
	}
	if _, err := f.NewSheet("Table of Contents"); err != nil {
		t.Fatalf("NewSheet() error = %v", err)
	}
	if err := f.SetCellValue("US Senate", "A1", "United States Senator"); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}
	if err := f.SetCellValue("US Senate", "B2", "A. Smith"); err != nil {
		t.Fatalf("SetCellValue() error = %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	f.Close()

	wb, err := OpenWorkbook(path)
	if err != nil {
		t.Fatalf("OpenWorkbook() error = %v", err)
	}
	defer wb.Close()

	sheets := wb.Sheets()
	if len(sheets) != 2 {
		t.Fatalf("Sheets() = %v, want 2 sheets", sheets)
	}

	g, err := wb.Rows("US Senate")
	if err != nil {
		t.Fatalf("Rows() error = %v", err)
	}
	if g.Cell(0, 0) != "United States Senator" {
		t.Errorf("cell (0,0) = %q, want race title", g.Cell(0, 0))
	}
	if g.Cell(1, 1) != "A. Smith" {
		t.Errorf("cell (1,1) = %q, want candidate", g.Cell(1, 1))
	}
}

func TestReadTable_CSVDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flat.csv")
	if err := os.WriteFile(path, []byte("RaceTitle,CandidateName\nGovernor,A\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := ReadTable(path)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if g.Cell(1, 0) != "Governor" {
		t.Errorf("cell (1,0) = %q, want %q", g.Cell(1, 0), "Governor")
	}
}

func TestMemWorkbook_UnknownSheet(t *testing.T) {
	wb := &MemWorkbook{Label: "test.xlsx", Order: []string{"one"}, Data: map[string]Grid{"one": {}}}
	if _, err := wb.Rows("missing"); err == nil {
		t.Fatal("Rows() expected error for unknown sheet")
	}
}
