package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// WriteCriteria prints the effective criteria registry using the configured output format.
func WriteCriteria(criteria schema.Criteria, cfg *contract.Config) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, criteria)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, map[string]any{"criteria": criteria})
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"name", "weight", "max_score"}, func(cw *csv.Writer) error {
				for _, c := range criteria {
					if err := cw.Write([]string{c.Name, fmtFloat(c.Weight), fmtFloat(c.MaxScore)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCriteriaTable(w, criteria, fmtFloat)
		}, "Wrote table")
	}
}

// writeCriteriaTable lists each criterion with its weight and the resulting score formula.
func writeCriteriaTable(w io.Writer, criteria schema.Criteria, fmtFloat func(float64) string) error {
	var data [][]string
	for _, c := range criteria {
		data = append(data, []string{c.Name, schema.TitleCase(c.Name), fmtFloat(c.Weight), fmtFloat(c.MaxScore)})
	}
	if err := renderTable(w, []string{"Key", "Category", "Weight", "Max Score"}, data); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Score = %s\n", formatFormula(criteria, fmtFloat)); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Total weight: %s\n", fmtFloat(criteria.TotalWeight()))
	return err
}

// formatFormula renders the weighted sum, e.g. "0.40*productivity + 0.30*quality".
func formatFormula(criteria schema.Criteria, fmtFloat func(float64) string) string {
	formula := ""
	for i, c := range criteria {
		if i > 0 {
			formula += " + "
		}
		formula += fmtFloat(c.Weight) + "*" + c.Name
	}
	return formula
}
