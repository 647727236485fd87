package schema

import "time"

// HistoryStatus represents the status of the run history store.
type HistoryStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int64            `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalEntries  int64            `json:"total_entries_scored"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the scorecard_runs table.
type RunRecord struct {
	RunID        int64
	SessionID    string
	Command      string
	ScoreMode    string
	CriteriaJSON string
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int64
	TotalEntries *int64
}

// RunEntryRecord represents a row from the scorecard_run_entries table.
type RunEntryRecord struct {
	RunID      int64
	Position   int64
	EntryName  string
	Score      float64
	ValuesJSON string
}

// RunParams describes a view invocation recorded in run history.
type RunParams struct {
	SessionID string    `json:"session_id"`
	Command   string    `json:"command"`
	ScoreMode ScoreMode `json:"score_mode"`
	Criteria  Criteria  `json:"criteria"`
}
