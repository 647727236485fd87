//go:build basic

// Package integration contains integration tests for scorecard.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Database tests need Docker: go test -tags database ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/scorecard/schema"
)

// TestDashboardScores verifies every score against the weighted sum computed by hand.
func TestDashboardScores(t *testing.T) {
	out, err := runScorecard(t, nil, "dashboard", "testdata/team.csv", "testdata/contractors.csv", "--output", "json")
	require.NoError(t, err)

	var dash schema.Dashboard
	require.NoError(t, json.Unmarshal([]byte(out), &dash))

	want := map[string]float64{
		"Alice": 0.4*80 + 0.3*90 + 0.3*70,
		"Bob":   0.4*60 + 0.3*75 + 0.3*95,
		"Carol": 0.4*95 + 0.3*65 + 0.3*80,
		"Dave":  0.4*70 + 0.3*70 + 0.3*70,
		"Erin":  0.4*88 + 0.3*0 + 0.3*92,
	}
	require.Len(t, dash.Entries, len(want))
	names := make([]string, len(dash.Entries))
	for i, e := range dash.Entries {
		names[i] = e.Name
		assert.InDelta(t, want[e.Name], e.Score, 1e-9, e.Name)
	}
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave", "Erin"}, names, "file order, then row order")
	assert.Equal(t, []string{"quality"}, dash.Entries[4].Missing)
}

// TestWeightOverride verifies that --weight changes scores linearly.
func TestWeightOverride(t *testing.T) {
	out, err := runScorecard(t, nil, "compare", "testdata/team.csv", "--weight", "productivity=1", "--select", "Alice,Carol", "--output", "json")
	require.NoError(t, err)

	var comparison schema.Comparison
	require.NoError(t, json.Unmarshal([]byte(out), &comparison))
	require.Len(t, comparison.Rankings, 2)
	assert.Equal(t, "Carol", comparison.Rankings[0].Name)
	assert.InDelta(t, 95+0.3*65+0.3*80, comparison.Rankings[0].Score, 1e-9)
	assert.InDelta(t, 80+0.3*90+0.3*70, comparison.Rankings[1].Score, 1e-9)
}

// TestExportFormats verifies the files written for every export format.
func TestExportFormats(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out.csv")
	_, err := runScorecard(t, nil, "export", "testdata/team.csv", "--format", "csv", "--output-file", csvPath)
	require.NoError(t, err)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "Name,Productivity,Quality,Timeliness,Total Score\n"+
		"Alice,80,90,70,80\n"+
		"Bob,60,75,95,75\n"+
		"Carol,95,65,80,81.5\n", string(data))

	for _, format := range []string{"xlsx", "pdf", "json", "parquet"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(dir, "out."+format)
			_, err := runScorecard(t, nil, "export", "testdata/team.csv", "--format", format, "--output-file", path)
			require.NoError(t, err)
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Positive(t, info.Size())
		})
	}
}

// TestExportEmptyStoreFails verifies that exporting nothing is refused.
func TestExportEmptyStoreFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	_, err := runScorecard(t, nil, "export", "--format", "csv", "--output-file", path)
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

// TestSQLiteHistory records runs into a SQLite file and exports them.
func TestSQLiteHistory(t *testing.T) {
	dir := t.TempDir()
	env := []string{
		"SCORECARD_HISTORY_BACKEND=sqlite",
		"SCORECARD_HISTORY_DB_CONNECT=" + filepath.Join(dir, "history.db"),
	}

	_, err := runScorecard(t, env, "history", "migrate")
	require.NoError(t, err)
	_, err = runScorecard(t, env, "dashboard", "testdata/team.csv", "--output", "csv")
	require.NoError(t, err)
	_, err = runScorecard(t, env, "compare", "testdata/team.csv", "--output", "csv")
	require.NoError(t, err)

	status, err := runScorecard(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, status, "scorecard_runs")

	_, err = runScorecard(t, env, "history", "export", "--output-file", filepath.Join(dir, "history"))
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "history.runs.parquet"))
	assert.FileExists(t, filepath.Join(dir, "history.run_entries.parquet"))

	_, err = runScorecard(t, env, "history", "clear")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "history.db"))
}
