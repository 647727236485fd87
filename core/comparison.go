package core

import (
	"fmt"

	"github.com/huangsam/scorecard/schema"
)

// ComparisonOptions lists every entry name in store order.
func ComparisonOptions(entries []schema.Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

// BuildComparison derives radar rows and rankings for the selected entity names.
// A name matching several entries resolves to the first one in store order.
// Repeated selections are collapsed and unknown names are an error.
func BuildComparison(criteria schema.Criteria, entries []schema.Entry, names []string, mode schema.ScoreMode) (schema.Comparison, error) {
	selected := make([]schema.Entry, 0, len(names))
	selectedNames := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		e, ok := findEntry(entries, name)
		if !ok {
			return schema.Comparison{}, fmt.Errorf("%w: %q", schema.ErrUnknownEntity, name)
		}
		selected = append(selected, e)
		selectedNames = append(selectedNames, name)
	}

	rows := make([]schema.ComparisonRow, len(criteria))
	for i, c := range criteria {
		values := make(map[string]float64, len(selected))
		for _, e := range selected {
			values[e.Name] = e.Values[c.Name]
		}
		rows[i] = schema.ComparisonRow{
			Subject:   schema.TitleCase(c.Name),
			Criterion: c.Name,
			Values:    values,
		}
	}

	ranked := RankEntries(scoreEntries(selected, criteria, mode, false))
	return schema.Comparison{
		Options:   ComparisonOptions(entries),
		Selected:  selectedNames,
		Rows:      rows,
		Rankings:  buildRankings(ranked),
		ScoreMode: mode,
	}, nil
}

func findEntry(entries []schema.Entry, name string) (schema.Entry, bool) {
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return schema.Entry{}, false
}
