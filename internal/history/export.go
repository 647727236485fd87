package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/parquet"
)

// ErrNoHistory is returned when there is nothing to export.
var ErrNoHistory = errors.New("no run history found to export")

// ExportHistory writes runs and run entries to "<outputFile>.runs.parquet" and
// "<outputFile>.run_entries.parquet", reporting progress to w.
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return errors.New("history is disabled. Set --history-backend to enable it")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total entry records: %d\n", status.TableSizes[runEntriesTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	entries, err := store.GetAllRunEntries()
	if err != nil {
		return fmt.Errorf("failed to retrieve run entries: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetEntries := parquet.ConvertRunEntryRecords(entries)
	entriesFile := outputFile + ".run_entries.parquet"
	if err := parquet.WriteRunEntriesParquet(parquetEntries, entriesFile); err != nil {
		return fmt.Errorf("failed to write run entries: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d run entries to: %s\n", len(parquetEntries), entriesFile)
	return nil
}
