package dashboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iowa-dashboard/ingest/internal/merge"
	"github.com/iowa-dashboard/ingest/internal/parse"
)

// senateTable is the two-precinct scenario: R gets 600/300, D gets 400/700.
func senateTable() *merge.Table {
	recs := []parse.VoteRecord{
		{RaceTitle: "U.S. Senator", Candidate: "R. Candidate", Party: "Republican Party", Precinct: "Polk-1", Votes: 600},
		{RaceTitle: "U.S. Senator", Candidate: "R. Candidate", Party: "Republican Party", Precinct: "Polk-2", Votes: 300},
		{RaceTitle: "U.S. Senator", Candidate: "D. Candidate", Party: "Democratic Party", Precinct: "Polk-1", Votes: 400},
		{RaceTitle: "U.S. Senator", Candidate: "D. Candidate", Party: "Democratic Party", Precinct: "Polk-2", Votes: 700},
	}
	m := merge.NewMerger()
	m.Add("Polk_2014.xlsx", recs)
	return m.Table()
}

var usSenate = Office{Key: "us_senate", Title: "U.S. Senator", Statewide: true}

func TestDistrictResults_StatewideShares(t *testing.T) {
	results := DistrictResults(senateTable(), usSenate, DefaultPartyMap())

	statewide, ok := results["statewide"]
	if !ok || len(statewide) != 2 {
		t.Fatalf("results = %v, want statewide list of 2", results)
	}

	// D leads with 1100 of 2000 (55.0%); R has 900 (45.0%)
	if statewide[0].Name != "D. Candidate" || statewide[0].Votes != 1100 || statewide[0].Share != 55.0 {
		t.Errorf("leader = %+v, want D. Candidate 1100 votes 55.0%%", statewide[0])
	}
	if statewide[1].Name != "R. Candidate" || statewide[1].Votes != 900 || statewide[1].Share != 45.0 {
		t.Errorf("runner-up = %+v, want R. Candidate 900 votes 45.0%%", statewide[1])
	}
}

func TestPrecinctShares_TwoParty(t *testing.T) {
	shares := PrecinctShares(senateTable(), usSenate, DefaultPartyMap())

	p1 := shares["Polk-1"]
	if p1.TotalVotes != 1000 || p1.RShare != 60.0 || p1.RTwoParty != 60.0 {
		t.Errorf("Polk-1 = %+v, want 1000 votes, 60.0 shares", p1)
	}

	p2 := shares["Polk-2"]
	if p2.TotalVotes != 1000 || p2.RShare != 30.0 {
		t.Errorf("Polk-2 = %+v, want 1000 votes, 30.0 r_share", p2)
	}
}

func TestPrecinctShares_ZeroTotalPrecinct(t *testing.T) {
	recs := []parse.VoteRecord{
		{RaceTitle: "U.S. Senator", Candidate: "R. Candidate", Party: "Republican Party", Precinct: "Adair-1", Votes: 0},
	}
	m := merge.NewMerger()
	m.Add("Adair_2014.xlsx", recs)

	shares := PrecinctShares(m.Table(), usSenate, DefaultPartyMap())
	if s := shares["Adair-1"]; s.RShare != 0.0 || s.RTwoParty != 0.0 || s.TotalVotes != 0 {
		t.Errorf("zero precinct = %+v, want all zeroes", s)
	}
}

func TestPrecinctResults_Ranked(t *testing.T) {
	results := PrecinctResults(senateTable(), usSenate, DefaultPartyMap())

	p2 := results["Polk-2"]
	if len(p2) != 2 {
		t.Fatalf("Polk-2 = %v, want 2 candidates", p2)
	}
	if p2[0].Name != "D. Candidate" || p2[0].Votes != 700 || p2[0].Share != 70.0 {
		t.Errorf("Polk-2 leader = %+v, want D. Candidate 700 at 70.0%%", p2[0])
	}
}

func TestOffice_District(t *testing.T) {
	congress := Office{Key: "us_congress", Prefix: "U.S. Rep"}

	tests := []struct {
		race string
		want string
	}{
		{"U.S. Rep. Dist. 3", "3"},
		{"United States Representative District 1", "1"},
		{"U.S. Rep. Dist. 05", "5"},
		{"U.S. Rep.", "U.S. Rep."},
	}
	for _, tt := range tests {
		if got := congress.District(tt.race); got != tt.want {
			t.Errorf("District(%q) = %q, want %q", tt.race, got, tt.want)
		}
	}

	if got := usSenate.District("U.S. Senator"); got != "statewide" {
		t.Errorf("statewide District() = %q", got)
	}
}

func TestOffice_DistrictGrouping(t *testing.T) {
	recs := []parse.VoteRecord{
		{RaceTitle: "U.S. Rep. Dist. 1", Candidate: "A", Party: "Republican Party", Precinct: "Linn-1", Votes: 100},
		{RaceTitle: "U.S. Rep. Dist. 1", Candidate: "B", Party: "Democratic Party", Precinct: "Linn-1", Votes: 300},
		{RaceTitle: "U.S. Rep. Dist. 3", Candidate: "C", Party: "Republican Party", Precinct: "Polk-1", Votes: 200},
	}
	m := merge.NewMerger()
	m.Add("test.xlsx", recs)

	congress := Office{Key: "us_congress", Prefix: "U.S. Rep"}
	results := DistrictResults(m.Table(), congress, DefaultPartyMap())

	if len(results) != 2 {
		t.Fatalf("districts = %v, want 2", results)
	}
	if results["1"][0].Name != "B" || results["1"][0].Share != 75.0 {
		t.Errorf("district 1 leader = %+v, want B at 75.0%%", results["1"][0])
	}
	if results["3"][0].Share != 100.0 {
		t.Errorf("district 3 = %+v, want C at 100.0%%", results["3"][0])
	}
}

func TestPartyMap_Normalize(t *testing.T) {
	pm := DefaultPartyMap()

	tests := []struct {
		raw  string
		want string
	}{
		{"Republican Party", PartyRepublican},
		{"Republican", PartyRepublican},
		{"Democratic Party", PartyDemocratic},
		{"Democrat", PartyDemocratic},
		{"Libertarian Party", PartyLibertarian},
		{"Green Party", PartyOther},
		{"", PartyOther},
	}
	for _, tt := range tests {
		if got := pm.Normalize(tt.raw); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestExport_WritesThreeArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dashboard_data")

	if err := Export(dir, usSenate, senateTable(), DefaultPartyMap()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	for _, artifact := range Artifacts {
		path := filepath.Join(dir, ArtifactFile(artifact, "us_senate"))
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("artifact %s missing: %v", artifact, err)
		}
		var payload map[string]any
		if err := json.Unmarshal(data, &payload); err != nil {
			t.Errorf("artifact %s is not valid JSON: %v", artifact, err)
		}
	}
}
