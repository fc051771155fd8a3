package dashboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iowa-dashboard/ingest/internal/merge"
)

// Artifact names, completed with the office key: precinct_rshare_us_senate.json.
const (
	ArtifactPrecinctShare   = "precinct_rshare"
	ArtifactDistrictResults = "results_district"
	ArtifactPrecinctResults = "results_precinct"
)

// Artifacts lists the three names in output order.
var Artifacts = []string{ArtifactPrecinctShare, ArtifactDistrictResults, ArtifactPrecinctResults}

// Export writes the three JSON artifacts for one office into dir, which is
// created if needed. The dashboard fetches these files by exact name.
func Export(dir string, o Office, t *merge.Table, pm PartyMap) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating dashboard dir: %w", err)
	}

	files := map[string]any{
		ArtifactPrecinctShare:   PrecinctShares(t, o, pm),
		ArtifactDistrictResults: DistrictResults(t, o, pm),
		ArtifactPrecinctResults: PrecinctResults(t, o, pm),
	}

	for artifact, payload := range files {
		path := filepath.Join(dir, ArtifactFile(artifact, o.Key))
		if err := writeJSON(path, payload); err != nil {
			return err
		}
	}

	return nil
}

// ArtifactFile returns the file name for an artifact and office key.
func ArtifactFile(artifact, officeKey string) string {
	return fmt.Sprintf("%s_%s.json", artifact, officeKey)
}

func writeJSON(path string, payload any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
