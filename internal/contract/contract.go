// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/scorecard/schema"
)

// HistoryManager defines the interface for reaching the run history store.
// This allows the history layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for recording view invocations and their scores.
type HistoryStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, params schema.RunParams) (int64, error)

	// RecordEntries stores the scored entries of a run in presentation order
	RecordEntries(runID int64, entries []schema.ScoredEntry) error

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalEntries int) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns retrieves every recorded run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllRunEntries retrieves every recorded run entry
	GetAllRunEntries() ([]schema.RunEntryRecord, error)

	// Close closes the underlying connection
	Close() error
}

// EventPublisher publishes session events to a message bus.
type EventPublisher interface {
	Publish(subject string, data any) error
	Close()
}
