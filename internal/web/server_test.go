package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/iowa-dashboard/ingest/internal/config"
)

// newTestServer builds a server over a populated output directory.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	outDir := t.TempDir()

	writeFile(t, filepath.Join(outDir, "statewide_2014_cleaned.csv"),
		"RaceTitle,CandidateName,PoliticalPartyName,Adair-1\nGovernor,Kim Lee,Republican,120\n")
	writeFile(t, filepath.Join(outDir, "report_2014.txt"), "no problems found")
	writeFile(t, filepath.Join(outDir, "dashboard_data", "2014", "results_district_governor.json"),
		`{"statewide":[{"CandidateName":"Kim Lee","party":"Republican","votes":120,"share":100.0}]}`)

	cfg := &config.Config{
		Output: config.OutputConfig{Dir: outDir, DashboardDir: "dashboard_data"},
	}
	return NewServer(cfg)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestListOffices(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/offices")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var infos []officeInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(infos) != 6 {
		t.Fatalf("got %d offices, want 6", len(infos))
	}
	if infos[0].Key != "president" || !infos[0].Statewide {
		t.Errorf("first office = %+v, want statewide president", infos[0])
	}
	if len(infos[0].Artifacts) != 3 {
		t.Errorf("got %d artifacts, want 3", len(infos[0].Artifacts))
	}
}

func TestListYears(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/years")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var years []string
	if err := json.Unmarshal(rec.Body.Bytes(), &years); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(years) != 1 || years[0] != "2014" {
		t.Errorf("years = %v, want [2014]", years)
	}
}

func TestTable(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/table/2014")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q, want text/csv", ct)
	}

	if rec := get(t, s, "/api/table/2099"); rec.Code != http.StatusNotFound {
		t.Errorf("missing year: status = %d, want 404", rec.Code)
	}
	if rec := get(t, s, "/api/table/20x4"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad year: status = %d, want 400", rec.Code)
	}
}

func TestReport(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/report/2014")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Body.String(); got != "no problems found" {
		t.Errorf("body = %q", got)
	}
}

func TestArtifact(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/dashboard/2014/governor/results_district")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var districts map[string][]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &districts); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(districts["statewide"]) != 1 {
		t.Errorf("got %d statewide rows, want 1", len(districts["statewide"]))
	}

	tests := []struct {
		path string
		want int
	}{
		{"/api/dashboard/2014/mayor/results_district", http.StatusNotFound},
		{"/api/dashboard/2014/governor/secrets", http.StatusNotFound},
		{"/api/dashboard/2014/governor/../../etc/passwd", http.StatusNotFound},
		{"/api/dashboard/9x99/governor/results_district", http.StatusBadRequest},
		{"/api/dashboard/2016/governor/results_district", http.StatusNotFound},
	}
	for _, tt := range tests {
		if rec := get(t, s, tt.path); rec.Code != tt.want {
			t.Errorf("GET %s: status = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
}
