package parse

import "testing"

func TestResolveColumns(t *testing.T) {
	header := []string{
		"RaceTitle",
		" CandidateName", // 2016 files pad this one
		"PoliticalPartyName",
		"Adair-1NW Total",
		"Adair-1NW Absentee",
		"Adair-1NW Polling",
		"Adair Total", // county aggregate, no hyphen once stripped
		"",
		"Polk-Des Moines 01 Total",
	}

	cols := ResolveColumns(header, Options{})

	want := []Column{
		{Index: 0, Name: "RaceTitle", Meta: true},
		{Index: 1, Name: "CandidateName", Meta: true},
		{Index: 2, Name: "PoliticalPartyName", Meta: true},
		{Index: 3, Name: "Adair-1NW"},
		{Index: 8, Name: "Polk-Des Moines 01"},
	}

	if len(cols) != len(want) {
		t.Fatalf("ResolveColumns() = %d columns, want %d: %v", len(cols), len(want), cols)
	}
	for i, w := range want {
		if cols[i] != w {
			t.Errorf("column %d = %+v, want %+v", i, cols[i], w)
		}
	}
}

func TestResolveColumns_NoCountyAggregates(t *testing.T) {
	// Property: no kept precinct column is a bare county aggregate, and no
	// correctly suffixed precinct total is dropped.
	header := []string{
		"Story Total", "Story-Ames 1 Total", "Story-Ames 2 Total",
		"Linn Total", "Linn-Cedar Rapids 3 Total",
	}

	cols := ResolveColumns(header, Options{})

	if len(cols) != 3 {
		t.Fatalf("ResolveColumns() kept %d columns, want 3: %v", len(cols), cols)
	}
	for _, c := range cols {
		if c.Meta {
			continue
		}
		hasSep := false
		for _, r := range c.Name {
			if r == '-' {
				hasSep = true
			}
		}
		if !hasSep {
			t.Errorf("kept column %q has no county-precinct separator", c.Name)
		}
	}
}

func TestResolveColumns_PreservesSourceOrder(t *testing.T) {
	header := []string{"B-2 Total", "RaceTitle", "A-1 Total"}

	cols := ResolveColumns(header, Options{})

	if len(cols) != 3 {
		t.Fatalf("ResolveColumns() = %d columns, want 3", len(cols))
	}
	for i := 1; i < len(cols); i++ {
		if cols[i].Index <= cols[i-1].Index {
			t.Errorf("column order not source order: %v", cols)
		}
	}
}

func TestResolveColumns_CustomSuffix(t *testing.T) {
	header := []string{"Adair-1NW Sum"}

	cols := ResolveColumns(header, Options{TotalSuffix: " Sum"})
	if len(cols) != 1 || cols[0].Name != "Adair-1NW" {
		t.Errorf("ResolveColumns() = %v, want Adair-1NW", cols)
	}
}
