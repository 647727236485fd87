package core

import (
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// Score returns the weighted sum of an entry's values over every criterion in the registry.
// No normalization is applied; weights are used exactly as configured.
func Score(e schema.Entry, criteria schema.Criteria) float64 {
	var total float64
	for _, c := range criteria {
		total += c.Weight * e.Values[c.Name]
	}
	return total
}

// NormalizedScore scales each value by its criterion's max score and divides by the total weight,
// giving a 0-100 score when values lie within [0, maxScore]. A zero total weight yields 0.
func NormalizedScore(e schema.Entry, criteria schema.Criteria) float64 {
	totalWeight := criteria.TotalWeight()
	if totalWeight == 0 {
		return 0
	}
	var total float64
	for _, c := range criteria {
		total += c.Weight * (e.Values[c.Name] / c.MaxScore)
	}
	return 100 * total / totalWeight
}

// ScoreFor dispatches on the score mode.
func ScoreFor(mode schema.ScoreMode, e schema.Entry, criteria schema.Criteria) float64 {
	if mode == schema.NormalizedScore {
		return NormalizedScore(e, criteria)
	}
	return Score(e, criteria)
}

// Breakdown returns each criterion's raw contribution (weight * value) in registry order.
func Breakdown(e schema.Entry, criteria schema.Criteria) []schema.Contribution {
	out := make([]schema.Contribution, len(criteria))
	for i, c := range criteria {
		v := e.Values[c.Name]
		out[i] = schema.Contribution{
			Criterion: c.Name,
			Value:     v,
			Weight:    c.Weight,
			Points:    c.Weight * v,
		}
	}
	return out
}

// scoreEntries scores every entry in store order.
// Labels are only meaningful on the bounded normalized scale.
func scoreEntries(entries []schema.Entry, criteria schema.Criteria, mode schema.ScoreMode, explain bool) []schema.ScoredEntry {
	scored := make([]schema.ScoredEntry, len(entries))
	for i, e := range entries {
		s := schema.ScoredEntry{
			Entry: e,
			Score: ScoreFor(mode, e, criteria),
		}
		if mode == schema.NormalizedScore {
			s.Label = contract.GetPlainLabel(s.Score)
		}
		if explain {
			s.Breakdown = Breakdown(e, criteria)
		}
		scored[i] = s
	}
	return scored
}
