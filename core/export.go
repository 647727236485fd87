package core

import "github.com/huangsam/scorecard/schema"

// BuildExportTable flattens the store into export rows with headers from the live registry.
// An empty store cannot be exported.
func BuildExportTable(criteria schema.Criteria, entries []schema.Entry, mode schema.ScoreMode) (schema.ExportTable, error) {
	if len(entries) == 0 {
		return schema.ExportTable{}, schema.ErrEmptyStore
	}

	header := make([]string, 0, len(criteria)+2)
	header = append(header, "Name")
	for _, c := range criteria {
		header = append(header, schema.TitleCase(c.Name))
	}
	header = append(header, schema.TotalScoreHeader)

	rows := make([]schema.ExportRow, len(entries))
	for i, e := range entries {
		values := make([]float64, len(criteria))
		for j, c := range criteria {
			values[j] = e.Values[c.Name]
		}
		rows[i] = schema.ExportRow{
			Name:   e.Name,
			Values: values,
			Score:  ScoreFor(mode, e, criteria),
		}
	}
	return schema.ExportTable{Header: header, Criteria: criteria.Names(), Rows: rows}, nil
}
