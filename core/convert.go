package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/huangsam/scorecard/internal/ingest"
	"github.com/huangsam/scorecard/schema"
)

// entriesFromTable converts decoded rows into entries following the missing value policy.
// Under RejectMissing the first incomplete row fails the whole table.
func entriesFromTable(table ingest.Table, criteria schema.Criteria, policy schema.MissingPolicy, source string) ([]schema.Entry, int, error) {
	records := table.Records()
	entries := make([]schema.Entry, 0, len(records))
	skipped := 0
	for _, rec := range records {
		entry, missing := entryFromFields(rec.Fields, criteria)
		if len(missing) > 0 {
			switch policy {
			case schema.RejectMissing:
				return nil, 0, fmt.Errorf("line %d: %w: %s", rec.Line, schema.ErrMissingField, strings.Join(missing, ", "))
			case schema.SkipMissing:
				skipped++
				continue
			}
		}
		entry.ID = uuid.NewString()
		entry.Source = source
		entry.Missing = missing
		entries = append(entries, entry)
	}
	return entries, skipped, nil
}

// entryFromFields reads the name and every criterion value from a record.
// Absent or non-numeric values become 0 and are reported as missing.
func entryFromFields(fields map[string]string, criteria schema.Criteria) (schema.Entry, []string) {
	var missing []string
	name := strings.TrimSpace(fields[schema.NameColumn])
	if name == "" {
		missing = append(missing, schema.NameColumn)
	}
	values := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		v, err := schema.ParseNumber(fields[c.Name])
		if err != nil {
			missing = append(missing, c.Name)
			v = 0
		}
		values[c.Name] = v
	}
	return schema.Entry{Name: name, Values: values}, missing
}

// manualEntry validates a manual submission: the name and every criterion are required
// and no unknown fields are accepted.
func manualEntry(fields map[string]string, criteria schema.Criteria) (schema.Entry, error) {
	for key := range fields {
		if key != schema.NameColumn && criteria.Index(key) < 0 {
			return schema.Entry{}, fmt.Errorf("%w: %q", schema.ErrUnknownCriterion, key)
		}
	}
	name := strings.TrimSpace(fields[schema.NameColumn])
	if name == "" {
		return schema.Entry{}, fmt.Errorf("%w: %s", schema.ErrMissingField, schema.NameColumn)
	}
	values := make(map[string]float64, len(criteria))
	for _, c := range criteria {
		raw, ok := fields[c.Name]
		if !ok || strings.TrimSpace(raw) == "" {
			return schema.Entry{}, fmt.Errorf("%w: %s", schema.ErrMissingField, c.Name)
		}
		v, err := schema.ParseNumber(raw)
		if err != nil {
			return schema.Entry{}, fmt.Errorf("%s: %w", c.Name, err)
		}
		values[c.Name] = v
	}
	return schema.Entry{
		ID:     uuid.NewString(),
		Name:   name,
		Values: values,
		Source: schema.ManualSource,
	}, nil
}
