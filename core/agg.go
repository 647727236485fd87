package core

import "github.com/huangsam/scorecard/schema"

// Averages returns the arithmetic mean of each criterion over all entries.
// An empty store yields an empty map rather than dividing by zero.
func Averages(entries []schema.Entry, criteria schema.Criteria) map[string]float64 {
	avgs := make(map[string]float64, len(criteria))
	if len(entries) == 0 {
		return avgs
	}
	n := float64(len(entries))
	for _, c := range criteria {
		var sum float64
		for _, e := range entries {
			sum += e.Values[c.Name]
		}
		avgs[c.Name] = sum / n
	}
	return avgs
}

// RadarPoints lays the averages out on one axis per criterion, in registry order.
// Criteria without an average plot at 0.
func RadarPoints(avgs map[string]float64, criteria schema.Criteria) []schema.RadarPoint {
	points := make([]schema.RadarPoint, len(criteria))
	for i, c := range criteria {
		points[i] = schema.RadarPoint{
			Subject:   schema.TitleCase(c.Name),
			Criterion: c.Name,
			Average:   avgs[c.Name],
		}
	}
	return points
}

// BuildDashboard derives the dashboard view from a snapshot of the registry and store.
func BuildDashboard(criteria schema.Criteria, entries []schema.Entry, mode schema.ScoreMode, explain bool) schema.Dashboard {
	avgs := Averages(entries, criteria)
	return schema.Dashboard{
		Criteria:  criteria,
		ScoreMode: mode,
		Entries:   scoreEntries(entries, criteria, mode, explain),
		Averages:  avgs,
		Radar:     RadarPoints(avgs, criteria),
	}
}
