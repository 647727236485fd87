package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/events"
	"github.com/huangsam/scorecard/internal/ingest"
	"github.com/huangsam/scorecard/internal/outwriter"
	"github.com/huangsam/scorecard/schema"
)

// Session owns the criteria registry and the entry store for one process lifetime.
// The registry changes only through SetWeight and the store only grows through
// AddEntry and the import methods. Views always work on a snapshot, so nothing is cached.
type Session struct {
	mu        sync.RWMutex
	id        string
	criteria  schema.Criteria
	entries   []schema.Entry
	mode      schema.ScoreMode
	missing   schema.MissingPolicy
	logger    *slog.Logger
	publisher contract.EventPublisher
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithScoreMode selects raw or normalized scoring.
func WithScoreMode(mode schema.ScoreMode) SessionOption {
	return func(s *Session) { s.mode = mode }
}

// WithMissingPolicy selects how absent or non-numeric imported values are handled.
func WithMissingPolicy(policy schema.MissingPolicy) SessionOption {
	return func(s *Session) { s.missing = policy }
}

// WithSessionLogger sets the logger for import diagnostics.
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = logger }
}

// WithPublisher publishes session events after every mutation and export.
func WithPublisher(p contract.EventPublisher) SessionOption {
	return func(s *Session) { s.publisher = p }
}

// Source is an in-memory file to import, such as a multipart upload.
type Source struct {
	Name   string
	Reader io.ReadSeeker
}

// NewSession creates an empty session over a validated copy of criteria.
func NewSession(criteria schema.Criteria, opts ...SessionOption) (*Session, error) {
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		id:       uuid.NewString(),
		criteria: criteria.Clone(),
		mode:     schema.RawScore,
		missing:  schema.ZeroMissing,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session identifier used in events and run history.
func (s *Session) ID() string { return s.id }

// ScoreMode returns the configured score mode.
func (s *Session) ScoreMode() schema.ScoreMode { return s.mode }

// Criteria returns a copy of the registry.
func (s *Session) Criteria() schema.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.Clone()
}

// Entries returns a copy of the store in insertion order.
func (s *Session) Entries() []schema.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.entries)
}

// Len returns the number of stored entries.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// snapshot returns consistent copies of the registry and the store.
// Entry value maps are shared; they are never written after append.
func (s *Session) snapshot() (schema.Criteria, []schema.Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria.Clone(), slices.Clone(s.entries)
}

// SetWeight parses raw and replaces the named criterion's weight.
// The value is not bounded; only non-numeric input is rejected.
func (s *Session) SetWeight(name, raw string) (schema.Criterion, error) {
	weight, err := schema.ParseNumber(raw)
	if err != nil {
		return schema.Criterion{}, fmt.Errorf("invalid weight for %q: %w", name, err)
	}

	s.mu.Lock()
	idx := s.criteria.Index(name)
	if idx < 0 {
		s.mu.Unlock()
		return schema.Criterion{}, fmt.Errorf("%w: %q", schema.ErrUnknownCriterion, name)
	}
	s.criteria[idx].Weight = weight
	updated := s.criteria[idx]
	s.mu.Unlock()

	s.publish(events.SubjectCriteriaUpdated(s.id), events.CriteriaUpdatedEvent{
		SessionID: s.id,
		Criterion: updated.Name,
		Weight:    updated.Weight,
		At:        time.Now().UTC(),
	})
	return updated, nil
}

// AddEntry validates a manual submission and appends it.
// The name and every criterion value are required.
func (s *Session) AddEntry(fields map[string]string) (schema.Entry, error) {
	entry, err := manualEntry(fields, s.Criteria())
	if err != nil {
		return schema.Entry{}, err
	}
	total := s.appendEntries([]schema.Entry{entry})
	s.publishAppended(schema.ManualSource, 1, total)
	return entry, nil
}

// ImportFiles imports files sequentially in the given order.
// A file that cannot be read or converted is logged, recorded in the report and skipped;
// the remaining files still import. Entries are appended in file order, then row order.
// Only context cancellation stops the import early: files completed before the
// cancellation are appended and the context error is returned with the report.
func (s *Session) ImportFiles(ctx context.Context, paths []string) (schema.ImportReport, error) {
	sources := make([]func() (string, ingest.Table, error), len(paths))
	for i, path := range paths {
		sources[i] = func() (string, ingest.Table, error) {
			table, err := ingest.ReadFile(path)
			return path, table, err
		}
	}
	return s.importAll(ctx, sources)
}

// ImportSources imports in-memory files with the same semantics as ImportFiles.
func (s *Session) ImportSources(ctx context.Context, files []Source) (schema.ImportReport, error) {
	sources := make([]func() (string, ingest.Table, error), len(files))
	for i, f := range files {
		sources[i] = func() (string, ingest.Table, error) {
			table, err := ingest.Read(f.Name, f.Reader)
			return f.Name, table, err
		}
	}
	return s.importAll(ctx, sources)
}

func (s *Session) importAll(ctx context.Context, sources []func() (string, ingest.Table, error)) (schema.ImportReport, error) {
	report := schema.ImportReport{Files: make([]schema.FileImport, 0, len(sources))}
	criteria := s.Criteria()
	var pending []schema.Entry

	var cancelled error
	for _, next := range sources {
		if cancelled = ctx.Err(); cancelled != nil {
			break
		}
		name, table, err := next()
		result := schema.FileImport{Path: name}
		if err == nil {
			if !matchesAnyColumn(table.Header, criteria) {
				s.logger.Warn("no column matches name or a criterion", "file", name, "header", table.Header)
			}
			result.Rows = len(table.Records())
			var converted []schema.Entry
			converted, result.Skipped, err = entriesFromTable(table, criteria, s.missing, name)
			if err == nil {
				result.Appended = len(converted)
				pending = append(pending, converted...)
			}
		}
		if err != nil {
			result.Error = err.Error()
			s.logger.Warn("error processing file", "file", name, "error", err)
		} else {
			s.logger.Info("imported file", "file", name, "rows", result.Rows, "appended", result.Appended, "skipped", result.Skipped)
		}
		report.Files = append(report.Files, result)
	}

	if len(pending) > 0 {
		total := s.appendEntries(pending)
		for _, f := range report.Files {
			if f.Appended > 0 {
				s.publishAppended(f.Path, f.Appended, total)
			}
		}
	}
	return report, cancelled
}

// matchesAnyColumn reports whether a header names the entity column or any criterion.
func matchesAnyColumn(header []string, criteria schema.Criteria) bool {
	for _, key := range header {
		if key == schema.NameColumn || criteria.Index(key) >= 0 {
			return true
		}
	}
	return false
}

func (s *Session) appendEntries(entries []schema.Entry) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return len(s.entries)
}

// Dashboard derives overall scores, category averages and radar points.
func (s *Session) Dashboard(explain bool) schema.Dashboard {
	criteria, entries := s.snapshot()
	return BuildDashboard(criteria, entries, s.mode, explain)
}

// ComparisonOptions lists every entry name in store order.
func (s *Session) ComparisonOptions() []string {
	_, entries := s.snapshot()
	return ComparisonOptions(entries)
}

// Compare derives the comparison view for the selected names.
func (s *Session) Compare(names []string) (schema.Comparison, error) {
	criteria, entries := s.snapshot()
	return BuildComparison(criteria, entries, names, s.mode)
}

// ExportTable flattens the store for export. It fails with schema.ErrEmptyStore when there is no data.
func (s *Session) ExportTable() (schema.ExportTable, error) {
	criteria, entries := s.snapshot()
	return BuildExportTable(criteria, entries, s.mode)
}

// Export writes the store in the given format.
func (s *Session) Export(w io.Writer, format schema.ExportFormat) error {
	table, err := s.ExportTable()
	if err != nil {
		return err
	}
	if err := outwriter.WriteExport(w, format, table); err != nil {
		return err
	}
	s.publish(events.SubjectExportCompleted(s.id), events.ExportCompletedEvent{
		SessionID: s.id,
		Format:    string(format),
		Rows:      len(table.Rows),
		At:        time.Now().UTC(),
	})
	return nil
}

func (s *Session) publishAppended(source string, count, total int) {
	s.publish(events.SubjectEntriesAppended(s.id), events.EntriesAppendedEvent{
		SessionID: s.id,
		Source:    source,
		Count:     count,
		Total:     total,
		At:        time.Now().UTC(),
	})
}

// publish logs and drops publisher errors.
func (s *Session) publish(subject string, data any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(subject, data); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
