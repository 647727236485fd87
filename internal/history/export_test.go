package history

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHistory(t *testing.T) {
	store := newSQLiteStore(t)
	runID, err := store.BeginRun(time.Now(), sampleParams())
	require.NoError(t, err)
	require.NoError(t, store.RecordEntries(runID, sampleScored()))
	require.NoError(t, store.EndRun(runID, time.Now(), 2))

	out := filepath.Join(t.TempDir(), "history")
	var buf bytes.Buffer
	require.NoError(t, ExportHistory(store, out, &buf))

	for _, suffix := range []string{".runs.parquet", ".run_entries.parquet"} {
		info, err := os.Stat(out + suffix)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
	assert.Contains(t, buf.String(), "Exported 1 runs")
	assert.Contains(t, buf.String(), "Exported 2 run entries")
}

func TestExportHistory_Errors(t *testing.T) {
	var buf bytes.Buffer

	assert.Error(t, ExportHistory(newSQLiteStore(t), "", &buf))
	assert.Error(t, ExportHistory(nil, "out", &buf))
	assert.ErrorIs(t, ExportHistory(newSQLiteStore(t), filepath.Join(t.TempDir(), "x"), &buf), ErrNoHistory)

	mockStore := &contract.MockHistoryStore{}
	mockStore.On("GetStatus").Return(schema.HistoryStatus{}, assert.AnError)
	assert.ErrorIs(t, ExportHistory(mockStore, "out", &buf), assert.AnError)
}

func TestHistoryStoreManager(t *testing.T) {
	mgr := &HistoryStoreManager{}
	assert.Nil(t, mgr.GetHistoryStore())

	store := newSQLiteStore(t)
	mgr.store = store
	assert.Same(t, store, mgr.GetHistoryStore())
}
