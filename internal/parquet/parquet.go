// Package parquet provides data structures and functions for exporting scorecard
// data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/scorecard/schema"
	"github.com/parquet-go/parquet-go"
)

// ScorecardRow is one exported entry with its computed score.
type ScorecardRow struct {
	// Position is the entry's 1-based position in the store
	Position int64 `parquet:"position,snappy"`

	// Name is the entity name
	Name string `parquet:"name,snappy"`

	// Values holds one criterion value per registry column, in registry order
	Values []CriterionValue `parquet:"values"`

	// TotalScore is the weighted score of the entry
	TotalScore float64 `parquet:"total_score,snappy"`
}

// CriterionValue is a single criterion column of an exported entry.
type CriterionValue struct {
	Criterion string  `parquet:"criterion,snappy,dict"`
	Value     float64 `parquet:"value,snappy"`
}

// Run represents a single recorded view invocation.
// This struct maps to the scorecard_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// SessionID identifies the in-memory session that produced the run
	SessionID string `parquet:"session_id,snappy,dict"`

	// Command is the view that was executed
	Command string `parquet:"command,snappy,dict"`

	// ScoreMode is raw or normalized
	ScoreMode string `parquet:"score_mode,snappy,dict"`

	// Criteria contains the JSON-encoded criteria registry at run time
	Criteria string `parquet:"criteria,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// DurationMs is the duration of the run in milliseconds (nullable)
	DurationMs *int64 `parquet:"duration_ms,optional,snappy"`

	// TotalEntries is the number of entries scored (nullable)
	TotalEntries *int64 `parquet:"total_entries,optional,snappy"`
}

// RunEntry represents one scored entry of a recorded run.
// This struct maps to the scorecard_run_entries database table.
type RunEntry struct {
	RunID      int64   `parquet:"run_id,snappy"`
	Position   int64   `parquet:"position,snappy"`
	EntryName  string  `parquet:"entry_name,snappy"`
	Score      float64 `parquet:"score,snappy"`
	ValuesJSON string  `parquet:"values_json,snappy"`
}

// writeRows writes rows of any parquet-tagged struct to w.
func writeRows[T any](w io.Writer, data []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet: %w", err)
	}
	return nil
}

// writeRowsToFile creates outputPath and writes rows to it.
func writeRowsToFile[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()
	return writeRows(file, data)
}

// WriteScorecard writes an export table as Parquet.
func WriteScorecard(w io.Writer, table schema.ExportTable) error {
	return writeRows(w, ConvertExportTable(table))
}

// WriteRunsParquet writes recorded runs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeRowsToFile(data, outputPath)
}

// WriteRunEntriesParquet writes recorded run entries to a Parquet file.
func WriteRunEntriesParquet(data []RunEntry, outputPath string) error {
	return writeRowsToFile(data, outputPath)
}

// ConvertExportTable pairs each row's values with the criterion names they belong to.
func ConvertExportTable(table schema.ExportTable) []ScorecardRow {
	out := make([]ScorecardRow, len(table.Rows))
	for i, r := range table.Rows {
		values := make([]CriterionValue, 0, len(r.Values))
		for j, v := range r.Values {
			name := ""
			if j < len(table.Criteria) {
				name = table.Criteria[j]
			}
			values = append(values, CriterionValue{Criterion: name, Value: v})
		}
		out[i] = ScorecardRow{
			Position:   int64(i + 1),
			Name:       r.Name,
			Values:     values,
			TotalScore: r.Score,
		}
	}
	return out
}

// ConvertRunRecords converts history run records to their Parquet shape.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	out := make([]Run, len(records))
	for i, r := range records {
		out[i] = Run{
			RunID:        r.RunID,
			SessionID:    r.SessionID,
			Command:      r.Command,
			ScoreMode:    r.ScoreMode,
			Criteria:     r.CriteriaJSON,
			StartTime:    r.StartTime,
			EndTime:      r.EndTime,
			DurationMs:   r.DurationMs,
			TotalEntries: r.TotalEntries,
		}
	}
	return out
}

// ConvertRunEntryRecords converts history run entry records to their Parquet shape.
func ConvertRunEntryRecords(records []schema.RunEntryRecord) []RunEntry {
	out := make([]RunEntry, len(records))
	for i, r := range records {
		out[i] = RunEntry(r)
	}
	return out
}
