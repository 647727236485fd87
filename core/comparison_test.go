package core

import (
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comparisonEntries() []schema.Entry {
	return []schema.Entry{
		entry("Alice", map[string]float64{"productivity": 80, "quality": 90, "timeliness": 70}),
		entry("Bob", map[string]float64{"productivity": 60, "quality": 50, "timeliness": 40}),
		entry("Cara", map[string]float64{"productivity": 95, "quality": 95, "timeliness": 95}),
		entry("Alice", map[string]float64{"productivity": 1, "quality": 1, "timeliness": 1}),
	}
}

func TestComparisonOptions(t *testing.T) {
	assert.Empty(t, ComparisonOptions(nil))
	assert.Equal(t, []string{"Alice", "Bob", "Cara", "Alice"}, ComparisonOptions(comparisonEntries()))
}

func TestBuildComparison(t *testing.T) {
	criteria := schema.DefaultCriteria()

	t.Run("ranks selected entities", func(t *testing.T) {
		cmp, err := BuildComparison(criteria, comparisonEntries(), []string{"Bob", "Alice", "Cara"}, schema.RawScore)
		require.NoError(t, err)

		require.Len(t, cmp.Rankings, 3)
		assert.Equal(t, "Cara", cmp.Rankings[0].Name)
		assert.Equal(t, "Alice", cmp.Rankings[1].Name)
		assert.Equal(t, "Bob", cmp.Rankings[2].Name)
		for i := 1; i < len(cmp.Rankings); i++ {
			assert.GreaterOrEqual(t, cmp.Rankings[i-1].Score, cmp.Rankings[i].Score)
		}

		require.Len(t, cmp.Rows, 3)
		assert.Equal(t, "Productivity", cmp.Rows[0].Subject)
		assert.Equal(t, 60.0, cmp.Rows[0].Values["Bob"])
		assert.Len(t, cmp.Options, 4)
	})

	t.Run("duplicate name resolves to first entry", func(t *testing.T) {
		cmp, err := BuildComparison(criteria, comparisonEntries(), []string{"Alice"}, schema.RawScore)
		require.NoError(t, err)
		require.Len(t, cmp.Rankings, 1)
		assert.InDelta(t, 80.0, cmp.Rankings[0].Score, 1e-9)
	})

	t.Run("repeated selection collapses", func(t *testing.T) {
		cmp, err := BuildComparison(criteria, comparisonEntries(), []string{"Bob", "Bob"}, schema.RawScore)
		require.NoError(t, err)
		assert.Equal(t, []string{"Bob"}, cmp.Selected)
		assert.Len(t, cmp.Rankings, 1)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := BuildComparison(criteria, comparisonEntries(), []string{"Alice", "Zed"}, schema.RawScore)
		assert.ErrorIs(t, err, schema.ErrUnknownEntity)
	})

	t.Run("empty store has no options", func(t *testing.T) {
		cmp, err := BuildComparison(criteria, nil, nil, schema.RawScore)
		require.NoError(t, err)
		assert.Empty(t, cmp.Options)
		assert.Empty(t, cmp.Rankings)
	})
}

func TestBuildExportTable(t *testing.T) {
	criteria := schema.DefaultCriteria()

	t.Run("empty store refused", func(t *testing.T) {
		_, err := BuildExportTable(criteria, nil, schema.RawScore)
		assert.ErrorIs(t, err, schema.ErrEmptyStore)
	})

	t.Run("headers from live registry", func(t *testing.T) {
		table, err := BuildExportTable(criteria, comparisonEntries()[:2], schema.RawScore)
		require.NoError(t, err)
		assert.Equal(t, []string{"Name", "Productivity", "Quality", "Timeliness", "Total Score"}, table.Header)
		assert.Equal(t, criteria.Names(), table.Criteria)
		require.Len(t, table.Rows, 2)
		assert.Equal(t, []float64{80, 90, 70}, table.Rows[0].Values)
		assert.InDelta(t, 80.0, table.Rows[0].Score, 1e-9)
	})
}
