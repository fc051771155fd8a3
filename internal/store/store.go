// Package store persists completed ingestion runs to PostgreSQL. Persistence
// is optional: the flat-file outputs are the primary product and the database
// is a queryable mirror for ad-hoc analysis.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iowa-dashboard/ingest/internal/merge"
	"github.com/iowa-dashboard/ingest/internal/pipeline"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
	CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error)
}

// Store writes run results through a DBTX.
type Store struct {
	db DBTX
}

func New(db DBTX) *Store {
	return &Store{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            UUID PRIMARY KEY,
	year          TEXT NOT NULL,
	files         INT NOT NULL,
	files_skipped INT NOT NULL,
	rows_kept     INT NOT NULL,
	rows_dropped  INT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS canonical_votes (
	run_id    UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	race      TEXT NOT NULL,
	candidate TEXT NOT NULL,
	party     TEXT NOT NULL,
	precinct  TEXT NOT NULL,
	votes     INT NOT NULL,
	PRIMARY KEY (run_id, race, candidate, precinct)
);

CREATE TABLE IF NOT EXISTS findings (
	run_id   UUID NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	severity TEXT NOT NULL,
	message  TEXT NOT NULL
);
`

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// SaveRun writes one run: the summary row, every nonzero vote cell, and the
// validation findings. Zero cells are omitted; readers reconstruct them from
// the run's precinct set the same way the CSV export does.
func (s *Store) SaveRun(ctx context.Context, res *pipeline.RunResult) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO runs (id, year, files, files_skipped, rows_kept, rows_dropped)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		res.RunID, res.Year, res.Files, res.FilesSkipped, res.Stats.RowsKept, res.Stats.RowsDropped)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", res.RunID, err)
	}

	votes := voteRows(res.RunID, res.Table)
	if len(votes) > 0 {
		_, err = s.db.CopyFrom(ctx,
			pgx.Identifier{"canonical_votes"},
			[]string{"run_id", "race", "candidate", "party", "precinct", "votes"},
			pgx.CopyFromRows(votes))
		if err != nil {
			return fmt.Errorf("copying votes for run %s: %w", res.RunID, err)
		}
	}

	findings := findingRows(res.RunID, res)
	if len(findings) > 0 {
		_, err = s.db.CopyFrom(ctx,
			pgx.Identifier{"findings"},
			[]string{"run_id", "severity", "message"},
			pgx.CopyFromRows(findings))
		if err != nil {
			return fmt.Errorf("copying findings for run %s: %w", res.RunID, err)
		}
	}

	return nil
}

// voteRows flattens the canonical table into CopyFrom rows, nonzero cells only.
func voteRows(runID string, t *merge.Table) [][]any {
	var rows [][]any
	for _, k := range t.Keys() {
		party := t.Party(k)
		for _, precinct := range t.Precincts() {
			v := t.Votes(k, precinct)
			if v == 0 {
				continue
			}
			rows = append(rows, []any{runID, k.Race, k.Candidate, party, precinct, v})
		}
	}
	return rows
}

func findingRows(runID string, res *pipeline.RunResult) [][]any {
	rows := make([][]any, 0, len(res.Report.Findings))
	for _, f := range res.Report.Findings {
		rows = append(rows, []any{runID, f.Severity.String(), f.Message})
	}
	return rows
}
