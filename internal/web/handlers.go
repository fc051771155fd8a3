package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iowa-dashboard/ingest/internal/dashboard"
)

// yearPattern bounds the {year} path parameter. Everything served from disk
// is addressed by year, so rejecting anything else also rejects traversal.
var yearPattern = regexp.MustCompile(`^\d{4}$`)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// officeInfo describes one office and its available artifact names.
type officeInfo struct {
	Key       string   `json:"key"`
	Statewide bool     `json:"statewide"`
	Artifacts []string `json:"artifacts"`
}

func (s *Server) handleListOffices(w http.ResponseWriter, r *http.Request) {
	infos := make([]officeInfo, 0, len(s.offices))
	for _, o := range s.offices {
		artifacts := make([]string, len(dashboard.Artifacts))
		for i, a := range dashboard.Artifacts {
			artifacts[i] = dashboard.ArtifactFile(a, o.Key)
		}
		infos = append(infos, officeInfo{Key: o.Key, Statewide: o.Statewide, Artifacts: artifacts})
	}
	respondJSON(w, http.StatusOK, infos)
}

// handleListYears reports which cycles have a canonical table on disk.
func (s *Server) handleListYears(w http.ResponseWriter, r *http.Request) {
	matches, err := filepath.Glob(filepath.Join(s.cfg.Output.Dir, "statewide_*_cleaned.csv"))
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "listing years failed")
		return
	}

	years := make([]string, 0, len(matches))
	for _, m := range matches {
		name := filepath.Base(m)
		year := strings.TrimSuffix(strings.TrimPrefix(name, "statewide_"), "_cleaned.csv")
		if yearPattern.MatchString(year) {
			years = append(years, year)
		}
	}
	sort.Strings(years)
	respondJSON(w, http.StatusOK, years)
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")
	if !yearPattern.MatchString(year) {
		respondError(w, r, fmt.Errorf("bad year %q", year), http.StatusBadRequest, "year must be four digits")
		return
	}
	s.serveFile(w, r, filepath.Join(s.cfg.Output.Dir, fmt.Sprintf("statewide_%s_cleaned.csv", year)), "text/csv")
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")
	if !yearPattern.MatchString(year) {
		respondError(w, r, fmt.Errorf("bad year %q", year), http.StatusBadRequest, "year must be four digits")
		return
	}
	s.serveFile(w, r, filepath.Join(s.cfg.Output.Dir, fmt.Sprintf("report_%s.txt", year)), "text/plain; charset=utf-8")
}

// handleArtifact serves one dashboard JSON file. Office keys and artifact
// names are matched against the allowlist before touching the filesystem.
func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	year := chi.URLParam(r, "year")
	office := chi.URLParam(r, "office")
	artifact := chi.URLParam(r, "artifact")

	if !yearPattern.MatchString(year) {
		respondError(w, r, fmt.Errorf("bad year %q", year), http.StatusBadRequest, "year must be four digits")
		return
	}
	if !s.knownOffice(office) {
		respondError(w, r, fmt.Errorf("unknown office %q", office), http.StatusNotFound, "unknown office")
		return
	}
	if !knownArtifact(artifact) {
		respondError(w, r, fmt.Errorf("unknown artifact %q", artifact), http.StatusNotFound, "unknown artifact")
		return
	}

	path := filepath.Join(s.cfg.Output.Dir, s.cfg.Output.DashboardDir, year, dashboard.ArtifactFile(artifact, office))
	s.serveFile(w, r, path, "application/json")
}

func (s *Server) knownOffice(key string) bool {
	for _, o := range s.offices {
		if o.Key == key {
			return true
		}
	}
	return false
}

func knownArtifact(name string) bool {
	for _, a := range dashboard.Artifacts {
		if a == name {
			return true
		}
	}
	return false
}

func (s *Server) serveFile(w http.ResponseWriter, r *http.Request, path, contentType string) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		respondError(w, r, err, http.StatusNotFound, "no results for that year")
		return
	}
	if err != nil {
		respondError(w, r, err, http.StatusInternalServerError, "reading results failed")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("writing response", "path", r.URL.Path, "error", err)
	}
}
