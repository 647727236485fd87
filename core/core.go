// Package core has core logic for scoring, aggregation, ranking and the session that owns them.
package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/outwriter"
	"github.com/huangsam/scorecard/schema"
)

// ExecutorFunc defines the function signature for executing the different views.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error

// LoadSession builds a session from the validated config: weight edits are applied first,
// then manual entries are appended, then input files are imported in order.
func LoadSession(ctx context.Context, cfg *contract.Config, opts ...SessionOption) (*Session, schema.ImportReport, error) {
	base := []SessionOption{
		WithScoreMode(cfg.ScoreMode),
		WithMissingPolicy(cfg.Missing),
		WithSessionLogger(loggerFrom(ctx)),
	}
	session, err := NewSession(cfg.Criteria, append(base, opts...)...)
	if err != nil {
		return nil, schema.ImportReport{}, err
	}

	for _, edit := range cfg.WeightEdits {
		if _, err := session.SetWeight(edit.Name, edit.Raw); err != nil {
			return nil, schema.ImportReport{}, err
		}
	}
	for _, fields := range cfg.Entries {
		if _, err := session.AddEntry(fields); err != nil {
			return nil, schema.ImportReport{}, fmt.Errorf("invalid entry: %w", err)
		}
	}
	report, err := session.ImportFiles(ctx, cfg.Inputs)
	if err != nil {
		return nil, report, err
	}
	return session, report, nil
}

// ExecuteDashboard scores every entry and prints the dashboard view.
// It serves as the main entry point for the 'dashboard' command.
func ExecuteDashboard(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	session, _, err := LoadSession(ctx, cfg)
	if err != nil {
		return err
	}
	dash := session.Dashboard(cfg.Explain || cfg.Detail)
	RecordSessionRun(ctx, mgr, session, "dashboard", start, dash.Entries)
	return outwriter.WriteDashboard(dash, cfg, time.Since(start))
}

// ExecuteCompare ranks the selected entities and prints the comparison view.
// Without a selection every distinct entity name is compared.
func ExecuteCompare(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	session, _, err := LoadSession(ctx, cfg)
	if err != nil {
		return err
	}
	names := cfg.Select
	if len(names) == 0 {
		names = session.ComparisonOptions()
	}
	comparison, err := session.Compare(names)
	if err != nil {
		return err
	}
	RecordSessionRun(ctx, mgr, session, "compare", start, RankedEntries(session, comparison))
	return outwriter.WriteComparison(comparison, cfg, time.Since(start))
}

// ExecuteExport writes the store to a file in the configured export format.
func ExecuteExport(ctx context.Context, cfg *contract.Config, mgr contract.HistoryManager) error {
	start := time.Now()
	session, _, err := LoadSession(ctx, cfg)
	if err != nil {
		return err
	}
	if session.Len() == 0 {
		return fmt.Errorf("%w. Please add some entries first", schema.ErrEmptyStore)
	}
	outputFile := cfg.OutputFile
	if outputFile == "" {
		outputFile = schema.DefaultExportFiles[cfg.ExportFormat]
	}
	err = outwriter.WriteToFile(outputFile, func(w io.Writer) error {
		return session.Export(w, cfg.ExportFormat)
	}, "Exported "+string(cfg.ExportFormat))
	if err != nil {
		return err
	}
	RecordSessionRun(ctx, mgr, session, "export", start, session.Dashboard(false).Entries)
	return nil
}

// ExecuteCriteria prints the effective criteria registry after weight edits.
func ExecuteCriteria(ctx context.Context, cfg *contract.Config, _ contract.HistoryManager) error {
	session, err := NewSession(cfg.Criteria, WithSessionLogger(loggerFrom(ctx)))
	if err != nil {
		return err
	}
	for _, edit := range cfg.WeightEdits {
		if _, err := session.SetWeight(edit.Name, edit.Raw); err != nil {
			return err
		}
	}
	return outwriter.WriteCriteria(session.Criteria(), cfg)
}

// RankedEntries returns the selected entries scored and ordered as in the comparison rankings.
func RankedEntries(session *Session, comparison schema.Comparison) []schema.ScoredEntry {
	entries := session.Entries()
	out := make([]schema.ScoredEntry, 0, len(comparison.Rankings))
	for _, r := range comparison.Rankings {
		if e, ok := findEntry(entries, r.Name); ok {
			out = append(out, schema.ScoredEntry{Entry: e, Score: r.Score})
		}
	}
	return out
}

// RecordRun stores a view invocation and its scored entries in run history.
// Failures are logged and never fail the view.
func RecordRun(ctx context.Context, store contract.HistoryStore, params schema.RunParams, start time.Time, scored []schema.ScoredEntry) {
	if store == nil {
		return
	}
	logger := loggerFrom(ctx)
	runID, err := store.BeginRun(start, params)
	if err != nil {
		logger.Warn("failed to begin history run", "command", params.Command, "error", err)
		return
	}
	if err := store.RecordEntries(runID, scored); err != nil {
		logger.Warn("failed to record history entries", "run_id", runID, "error", err)
	}
	if err := store.EndRun(runID, time.Now(), len(scored)); err != nil {
		logger.Warn("failed to end history run", "run_id", runID, "error", err)
	}
}

// RecordSessionRun records a view over session when history is enabled.
func RecordSessionRun(ctx context.Context, mgr contract.HistoryManager, session *Session, command string, start time.Time, scored []schema.ScoredEntry) {
	if mgr == nil {
		return
	}
	RecordRun(ctx, mgr.GetHistoryStore(), schema.RunParams{
		SessionID: session.ID(),
		Command:   command,
		ScoreMode: session.ScoreMode(),
		Criteria:  session.Criteria(),
	}, start, scored)
}
