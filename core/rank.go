package core

import (
	"math"
	"slices"

	"github.com/huangsam/scorecard/schema"
)

// RankEntries returns a copy of the scored entries ordered by score, highest first.
// Ties keep their store order and NaN scores sort last.
func RankEntries(scored []schema.ScoredEntry) []schema.ScoredEntry {
	ranked := slices.Clone(scored)
	slices.SortStableFunc(ranked, func(a, b schema.ScoredEntry) int {
		return compareScoresDesc(a.Score, b.Score)
	})
	return ranked
}

// buildRankings numbers ranked entries from 1.
func buildRankings(ranked []schema.ScoredEntry) []schema.Ranking {
	out := make([]schema.Ranking, len(ranked))
	for i, r := range ranked {
		out[i] = schema.Ranking{Rank: i + 1, Name: r.Name, Score: r.Score}
	}
	return out
}

func compareScoresDesc(a, b float64) int {
	aNaN, bNaN := math.IsNaN(a), math.IsNaN(b)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case a > b:
		return -1
	case a < b:
		return 1
	default:
		return 0
	}
}
