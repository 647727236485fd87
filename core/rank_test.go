package core

import (
	"math"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scored(name string, score float64) schema.ScoredEntry {
	return schema.ScoredEntry{Entry: schema.Entry{Name: name}, Score: score}
}

func TestRankEntries(t *testing.T) {
	t.Run("non-increasing", func(t *testing.T) {
		ranked := RankEntries([]schema.ScoredEntry{scored("a", 3), scored("b", 9), scored("c", -1), scored("d", 5)})
		for i := 1; i < len(ranked); i++ {
			assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
		}
		assert.Equal(t, "b", ranked[0].Name)
	})

	t.Run("ties keep store order", func(t *testing.T) {
		ranked := RankEntries([]schema.ScoredEntry{scored("x", 1), scored("y", 2), scored("z", 1), scored("w", 2)})
		names := make([]string, len(ranked))
		for i, r := range ranked {
			names[i] = r.Name
		}
		assert.Equal(t, []string{"y", "w", "x", "z"}, names)
	})

	t.Run("nan sorts last", func(t *testing.T) {
		ranked := RankEntries([]schema.ScoredEntry{scored("n", math.NaN()), scored("a", -5), scored("b", 10)})
		require.Len(t, ranked, 3)
		assert.Equal(t, "b", ranked[0].Name)
		assert.Equal(t, "a", ranked[1].Name)
		assert.True(t, math.IsNaN(ranked[2].Score))
	})

	t.Run("input untouched", func(t *testing.T) {
		in := []schema.ScoredEntry{scored("a", 1), scored("b", 2)}
		_ = RankEntries(in)
		assert.Equal(t, "a", in[0].Name)
	})
}

func TestBuildRankings(t *testing.T) {
	rankings := buildRankings([]schema.ScoredEntry{scored("b", 9), scored("a", 3)})
	assert.Equal(t, []schema.Ranking{{Rank: 1, Name: "b", Score: 9}, {Rank: 2, Name: "a", Score: 3}}, rankings)
}
