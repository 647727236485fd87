package core

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func execConfig(t *testing.T) *contract.Config {
	t.Helper()
	return &contract.Config{
		Criteria:       schema.DefaultCriteria(),
		Missing:        schema.ZeroMissing,
		ScoreMode:      schema.RawScore,
		Output:         schema.JSONOut,
		OutputFile:     filepath.Join(t.TempDir(), "out.json"),
		Precision:      2,
		ResultLimit:    contract.DefaultResultLimit,
		ExportFormat:   schema.CSVExport,
		HistoryBackend: schema.NoneBackend,
	}
}

func TestLoadSession(t *testing.T) {
	dir := t.TempDir()
	cfg := execConfig(t)
	cfg.WeightEdits = []contract.WeightEdit{{Name: "quality", Raw: "1"}}
	cfg.Entries = []map[string]string{{"name": "Manual", "productivity": "1", "quality": "1", "timeliness": "1"}}
	cfg.Inputs = []string{writeCSV(t, dir, "a.csv", header+"FromFile,1,2,3\n")}

	session, report, err := LoadSession(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Appended())
	assert.Equal(t, []string{"Manual", "FromFile"}, session.ComparisonOptions())
	assert.Equal(t, 1.0, session.Criteria()[1].Weight)

	t.Run("bad weight edit", func(t *testing.T) {
		cfg := execConfig(t)
		cfg.WeightEdits = []contract.WeightEdit{{Name: "quality", Raw: "lots"}}
		_, _, err := LoadSession(context.Background(), cfg)
		assert.ErrorIs(t, err, schema.ErrNonNumeric)
	})

	t.Run("bad manual entry", func(t *testing.T) {
		cfg := execConfig(t)
		cfg.Entries = []map[string]string{{"name": "X"}}
		_, _, err := LoadSession(context.Background(), cfg)
		require.ErrorIs(t, err, schema.ErrMissingField)
		assert.Contains(t, err.Error(), "invalid entry")
	})
}

func TestExecuteDashboard(t *testing.T) {
	cfg := execConfig(t)
	cfg.Entries = []map[string]string{{"name": "A", "productivity": "80", "quality": "90", "timeliness": "70"}}

	require.NoError(t, ExecuteDashboard(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var dash schema.Dashboard
	require.NoError(t, json.Unmarshal(data, &dash))
	require.Len(t, dash.Entries, 1)
	assert.InDelta(t, 80.0, dash.Entries[0].Score, 1e-9)
}

func TestExecuteCompare(t *testing.T) {
	cfg := execConfig(t)
	cfg.Entries = []map[string]string{
		{"name": "A", "productivity": "10", "quality": "10", "timeliness": "10"},
		{"name": "B", "productivity": "80", "quality": "90", "timeliness": "70"},
	}

	t.Run("defaults to every entity", func(t *testing.T) {
		require.NoError(t, ExecuteCompare(context.Background(), cfg, nil))
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		var cmp schema.Comparison
		require.NoError(t, json.Unmarshal(data, &cmp))
		require.Len(t, cmp.Rankings, 2)
		assert.Equal(t, "B", cmp.Rankings[0].Name)
	})

	t.Run("unknown selection", func(t *testing.T) {
		bad := cfg.Clone()
		bad.Select = []string{"Nobody"}
		assert.ErrorIs(t, ExecuteCompare(context.Background(), bad, nil), schema.ErrUnknownEntity)
	})
}

func TestExecuteExport(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		cfg := execConfig(t)
		cfg.OutputFile = filepath.Join(t.TempDir(), "empty.csv")
		err := ExecuteExport(context.Background(), cfg, nil)
		require.ErrorIs(t, err, schema.ErrEmptyStore)
		assert.Contains(t, err.Error(), "Please add some entries first")
		assert.NoFileExists(t, cfg.OutputFile)
	})

	t.Run("writes file", func(t *testing.T) {
		cfg := execConfig(t)
		cfg.OutputFile = filepath.Join(t.TempDir(), "out.csv")
		cfg.Entries = []map[string]string{{"name": "A", "productivity": "80", "quality": "90", "timeliness": "70"}}
		require.NoError(t, ExecuteExport(context.Background(), cfg, nil))
		data, err := os.ReadFile(cfg.OutputFile)
		require.NoError(t, err)
		assert.Contains(t, string(data), "A,80,90,70,80")
	})
}

func TestExecuteCriteria(t *testing.T) {
	cfg := execConfig(t)
	cfg.WeightEdits = []contract.WeightEdit{{Name: "timeliness", Raw: "2"}}
	require.NoError(t, ExecuteCriteria(context.Background(), cfg, nil))

	data, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	var criteria schema.Criteria
	require.NoError(t, json.Unmarshal(data, &criteria))
	assert.Equal(t, 2.0, criteria[2].Weight)

	cfg.WeightEdits = []contract.WeightEdit{{Name: "unknown", Raw: "2"}}
	assert.ErrorIs(t, ExecuteCriteria(context.Background(), cfg, nil), schema.ErrUnknownCriterion)
}

func TestExecuteRecordsHistory(t *testing.T) {
	store := &contract.MockHistoryStore{}
	mgr := &contract.MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	store.On("BeginRun", mock.AnythingOfType("time.Time"), mock.MatchedBy(func(p schema.RunParams) bool {
		return p.Command == "dashboard" && p.ScoreMode == schema.RawScore && len(p.Criteria) == 3
	})).Return(int64(7), nil).Once()
	store.On("RecordEntries", int64(7), mock.MatchedBy(func(entries []schema.ScoredEntry) bool {
		return len(entries) == 1 && entries[0].Name == "A"
	})).Return(nil).Once()
	store.On("EndRun", int64(7), mock.AnythingOfType("time.Time"), 1).Return(nil).Once()

	cfg := execConfig(t)
	cfg.Entries = []map[string]string{{"name": "A", "productivity": "1", "quality": "1", "timeliness": "1"}}
	require.NoError(t, ExecuteDashboard(context.Background(), cfg, mgr))

	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}

func TestRecordRunFailures(t *testing.T) {
	t.Run("nil store", func(t *testing.T) {
		RecordRun(context.Background(), nil, schema.RunParams{}, time.Now(), nil)
	})

	t.Run("begin failure stops recording", func(t *testing.T) {
		store := &contract.MockHistoryStore{}
		store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(0), assert.AnError).Once()
		RecordRun(context.Background(), store, schema.RunParams{Command: "export"}, time.Now(), nil)
		store.AssertExpectations(t)
		store.AssertNotCalled(t, "RecordEntries", mock.Anything, mock.Anything)
	})

	t.Run("entry failure still ends run", func(t *testing.T) {
		store := &contract.MockHistoryStore{}
		store.On("BeginRun", mock.Anything, mock.Anything).Return(int64(3), nil).Once()
		store.On("RecordEntries", int64(3), mock.Anything).Return(assert.AnError).Once()
		store.On("EndRun", int64(3), mock.Anything, 0).Return(nil).Once()
		RecordRun(context.Background(), store, schema.RunParams{}, time.Now(), nil)
		store.AssertExpectations(t)
	})
}

func TestLoggerFrom(t *testing.T) {
	assert.NotNil(t, loggerFrom(context.Background()))
	logger := contract.NewLogger(os.Stderr, 0, "text")
	assert.Same(t, logger, loggerFrom(WithLogger(context.Background(), logger)))
}
