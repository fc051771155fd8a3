package pipeline

import (
	"fmt"
	"strings"
)

// Format selects which parser a job's files go through.
type Format string

const (
	// FormatFlat is the single-sheet layout: 2014 statewide file and the
	// 2016 per-county files.
	FormatFlat Format = "flat"

	// FormatSheets is the one-sheet-per-race workbook layout used from 2018 on.
	FormatSheets Format = "sheets"
)

// Job is one ingestion unit: every file matching Pattern for one election
// cycle, parsed with the given format.
type Job struct {
	Year    string
	Format  Format
	Pattern string
}

// ParseJobs decodes "year:format:pattern" entries from configuration.
func ParseJobs(entries []string) ([]Job, error) {
	jobs := make([]Job, 0, len(entries))
	for _, entry := range entries {
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[2] == "" {
			return nil, fmt.Errorf("job entry %q: want year:format:pattern", entry)
		}

		format := Format(parts[1])
		switch format {
		case FormatFlat, FormatSheets:
		default:
			return nil, fmt.Errorf("job entry %q: unknown format %q", entry, parts[1])
		}

		jobs = append(jobs, Job{Year: parts[0], Format: format, Pattern: parts[2]})
	}
	return jobs, nil
}
