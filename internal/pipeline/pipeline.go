// Package pipeline orchestrates a full ingestion run: discover the source
// files for each election cycle, parse them in parallel, merge the counties
// into one canonical table per year, validate the result, and write the
// canonical CSV, the validation report, and the dashboard artifacts.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iowa-dashboard/ingest/internal/config"
	"github.com/iowa-dashboard/ingest/internal/dashboard"
	"github.com/iowa-dashboard/ingest/internal/logging"
	"github.com/iowa-dashboard/ingest/internal/merge"
	"github.com/iowa-dashboard/ingest/internal/parse"
	"github.com/iowa-dashboard/ingest/internal/races"
	"github.com/iowa-dashboard/ingest/internal/sheet"
	"github.com/iowa-dashboard/ingest/internal/validate"
)

// ErrNoInput is returned when a job's pattern matches no files. An empty
// batch means the input directory is wrong, so the run stops rather than
// producing an empty table that looks like a real result.
var ErrNoInput = errors.New("no input files matched")

// Saver persists a completed run. The store package provides the PostgreSQL
// implementation; a nil Saver skips persistence.
type Saver interface {
	SaveRun(ctx context.Context, res *RunResult) error
}

// RunResult summarizes one job after merge and validation.
type RunResult struct {
	RunID        string
	Year         string
	Files        int
	FilesSkipped int
	Stats        parse.Stats
	Table        *merge.Table
	Report       validate.Report
	TablePath    string
	ReportPath   string
}

// Runner executes ingestion jobs against a single configuration.
type Runner struct {
	cfg      *config.Config
	cls      *races.Classifier
	opts     parse.Options
	offices  []dashboard.Office
	partyMap dashboard.PartyMap

	// Saver is optional; set it before calling Run to persist results.
	Saver Saver
}

// New builds a Runner from configuration. Empty keyword lists fall back to
// the built-in race taxonomy.
func New(cfg *config.Config) *Runner {
	opts := parse.Options{
		TotalSuffix:       cfg.Parse.TotalSuffix,
		PrecinctSeparator: cfg.Parse.PrecinctSeparator,
		TotalMarker:       cfg.Parse.TotalMarker,
		ExcludedSheets:    cfg.Parse.ExcludedSheets,
		Lookahead:         cfg.Parse.Lookahead,
	}.Normalize()

	return &Runner{
		cfg:      cfg,
		cls:      races.NewClassifier(cfg.Races.Keywords, cfg.Races.StatewideKeywords),
		opts:     opts,
		offices:  dashboard.DefaultOffices(),
		partyMap: dashboard.DefaultPartyMap(),
	}
}

// Run executes every configured job in order. A failed job stops the run;
// results for jobs that already completed are still returned.
func (r *Runner) Run(ctx context.Context) ([]*RunResult, error) {
	jobs, err := ParseJobs(r.cfg.Input.Jobs)
	if err != nil {
		return nil, err
	}

	if r.cfg.Input.Dir == "" {
		return nil, errors.New("input directory is not configured")
	}
	if _, err := os.Stat(r.cfg.Input.Dir); err != nil {
		return nil, fmt.Errorf("input directory %s: %w", r.cfg.Input.Dir, err)
	}

	results := make([]*RunResult, 0, len(jobs))
	for _, job := range jobs {
		res, err := r.RunJob(ctx, job)
		if err != nil {
			return results, fmt.Errorf("job %s: %w", job.Year, err)
		}
		results = append(results, res)
	}
	return results, nil
}

// fileResult is the output of parsing one source file.
type fileResult struct {
	path    string
	records []parse.VoteRecord
	stats   parse.Stats
	err     error
}

// RunJob ingests one election cycle: parse all matching files concurrently,
// merge in sorted-filename order, validate, and write outputs. Per-file parse
// failures skip the file with a finding; only an empty batch is fatal.
func (r *Runner) RunJob(ctx context.Context, job Job) (*RunResult, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := logging.WithFields(ctx, "year", job.Year, "format", string(job.Format))

	matches, err := filepath.Glob(filepath.Join(r.cfg.Input.Dir, job.Pattern))
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", job.Pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: pattern %q in %s", ErrNoInput, job.Pattern, r.cfg.Input.Dir)
	}
	sort.Strings(matches)
	log.Info("starting ingestion", "files", len(matches))

	results := make([]fileResult, len(matches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Parse.Concurrency)
	for i, path := range matches {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs, stats, err := r.parseFile(path, job.Format)
			results[i] = fileResult{path: path, records: recs, stats: stats, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &RunResult{RunID: runID, Year: job.Year, Files: len(matches)}
	merger := merge.NewMerger()
	var skipped []string
	for _, fr := range results {
		if fr.err != nil {
			log.Warn("skipping unreadable file", "file", filepath.Base(fr.path), "error", fr.err)
			skipped = append(skipped, fmt.Sprintf("skipped %s: %v", filepath.Base(fr.path), fr.err))
			res.FilesSkipped++
			continue
		}
		res.Stats.Add(fr.stats)
		merger.Add(filepath.Base(fr.path), fr.records)
	}
	if res.FilesSkipped == res.Files {
		return nil, fmt.Errorf("%w: all %d files for %s were unreadable", ErrNoInput, res.Files, job.Year)
	}

	res.Table = merger.Table()
	res.Report = validate.Check(res.Table, merger.Problems(), merger.Notes(), r.cls)
	for _, msg := range skipped {
		res.Report.Add(validate.SeverityWarn, "%s", msg)
	}
	if res.Stats.CellsDefaulted > 0 {
		res.Report.Add(validate.SeverityInfo, "%d vote cells were blank or unreadable and defaulted to zero", res.Stats.CellsDefaulted)
	}

	if err := r.writeOutputs(res); err != nil {
		return nil, err
	}
	if r.Saver != nil {
		if err := r.Saver.SaveRun(ctx, res); err != nil {
			return nil, fmt.Errorf("persisting run: %w", err)
		}
	}

	log.Info("ingestion complete",
		"rows", len(res.Table.Keys()),
		"precincts", len(res.Table.Precincts()),
		"rows_dropped", res.Stats.RowsDropped,
		"files_skipped", res.FilesSkipped,
		"suspect", res.Report.Count(validate.SeveritySuspect),
		"structural", res.Report.Count(validate.SeverityStructural),
		"table", res.TablePath,
	)
	return res, nil
}

func (r *Runner) parseFile(path string, format Format) ([]parse.VoteRecord, parse.Stats, error) {
	switch format {
	case FormatFlat:
		grid, err := sheet.ReadTable(path)
		if err != nil {
			return nil, parse.Stats{}, err
		}
		recs, stats := parse.ParseFlat(grid, r.cls, r.opts)
		return recs, stats, nil
	case FormatSheets:
		wb, err := sheet.OpenWorkbook(path)
		if err != nil {
			return nil, parse.Stats{}, err
		}
		defer wb.Close()
		recs, stats := parse.ParseWorkbook(wb, CountyName(path), r.cls, r.opts)
		return recs, stats, nil
	default:
		return nil, parse.Stats{}, fmt.Errorf("unknown format %q", format)
	}
}

// writeOutputs writes the canonical CSV, the rendered validation report, and
// the per-office dashboard artifacts.
func (r *Runner) writeOutputs(res *RunResult) error {
	outDir := r.cfg.Output.Dir
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	res.TablePath = filepath.Join(outDir, fmt.Sprintf("statewide_%s_cleaned.csv", res.Year))
	if err := sheet.WriteCSV(res.TablePath, res.Table.Export()); err != nil {
		return fmt.Errorf("writing canonical table: %w", err)
	}

	res.ReportPath = filepath.Join(outDir, fmt.Sprintf("report_%s.txt", res.Year))
	if err := os.WriteFile(res.ReportPath, []byte(res.Report.Render()), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	dashDir := filepath.Join(outDir, r.cfg.Output.DashboardDir, res.Year)
	for _, office := range r.offices {
		if err := dashboard.Export(dashDir, office, res.Table, r.partyMap); err != nil {
			return fmt.Errorf("writing %s artifacts: %w", office.Key, err)
		}
	}
	return nil
}

// CountyName derives the county from a source filename. Per-county files are
// named "<County>_<year>.<ext>"; the statewide files yield "statewide", which
// is harmless because their precinct keys already carry the county.
func CountyName(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if i := strings.Index(stem, "_"); i > 0 {
		return stem[:i]
	}
	return stem
}
