package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/iowa-dashboard/ingest/internal/config"
	"github.com/iowa-dashboard/ingest/internal/logging"
	"github.com/iowa-dashboard/ingest/internal/pipeline"
	"github.com/iowa-dashboard/ingest/internal/store"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Input.Dir == "" {
		slog.Error("INGEST_INPUT_DIR is not set")
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"input_dir", cfg.Input.Dir,
		"output_dir", cfg.Output.Dir,
		"jobs", len(cfg.Input.Jobs),
		"concurrency", cfg.Parse.Concurrency,
	)

	ctx := context.Background()
	runner := pipeline.New(cfg)

	// Persistence is optional; without a database URL only files are written.
	if cfg.Database.URL != "" {
		pool, err := connect(ctx, cfg)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		st := store.New(pool)
		if err := st.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare schema", "error", err)
			os.Exit(1)
		}
		runner.Saver = st
	}

	results, err := runner.Run(ctx)
	if err != nil {
		slog.Error("ingestion failed", "error", err, "completed_jobs", len(results))
		os.Exit(1)
	}

	for _, res := range results {
		slog.Info("job summary",
			"year", res.Year,
			"run_id", res.RunID,
			"files", res.Files,
			"files_skipped", res.FilesSkipped,
			"rows", res.Stats.RowsKept,
			"findings", len(res.Report.Findings),
		)
	}
}

func connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)

	connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, err
	}

	if u, err := url.Parse(cfg.Database.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}
	return pool, nil
}
