package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
)

// WriteComparison outputs the comparison, dispatching based on the output format configured.
func WriteComparison(comparison schema.Comparison, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, comparison)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, comparison)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonCSV(w, comparison, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, comparison, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeComparisonTable renders the radar rows followed by the ranking list.
func writeComparisonTable(w io.Writer, comparison schema.Comparison, fmtFloat func(float64) string, duration time.Duration) error {
	names := rankedNames(comparison)

	headers := []string{"Category"}
	for _, name := range names {
		headers = append(headers, contract.TruncateName(name, 20))
	}
	var data [][]string
	for _, r := range comparison.Rows {
		row := []string{r.Subject}
		for _, name := range names {
			row = append(row, fmtFloat(r.Values[name]))
		}
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nRankings"); err != nil {
		return err
	}
	for _, r := range comparison.Rankings {
		label := ""
		if comparison.ScoreMode == schema.NormalizedScore {
			label = " (" + contract.GetColorLabel(r.Score) + ")"
		}
		if _, err := fmt.Fprintf(w, "%d. %s - Score: %s%s\n", r.Rank, r.Name, fmtFloat(r.Score), label); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "Compared %d of %d entities in %v. Score mode: %s\n", len(comparison.Rankings), len(comparison.Options), duration, comparison.ScoreMode); err != nil {
		return err
	}
	return nil
}

// writeComparisonCSV writes the ranking with one column per criterion value.
func writeComparisonCSV(w io.Writer, comparison schema.Comparison, fmtFloat func(float64) string) error {
	header := []string{"rank", "name", "score"}
	for _, r := range comparison.Rows {
		header = append(header, r.Criterion)
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range comparison.Rankings {
			rec := []string{strconv.Itoa(r.Rank), r.Name, fmtFloat(r.Score)}
			for _, row := range comparison.Rows {
				rec = append(rec, fmtFloat(row.Values[r.Name]))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// rankedNames returns the compared names in ranking order.
func rankedNames(comparison schema.Comparison) []string {
	names := make([]string, len(comparison.Rankings))
	for i, r := range comparison.Rankings {
		names[i] = r.Name
	}
	return names
}
