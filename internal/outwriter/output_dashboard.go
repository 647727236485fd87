package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteDashboard outputs the dashboard, dispatching based on the output format configured.
func WriteDashboard(dash schema.Dashboard, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, dash)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, dash)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardCSV(w, dash, fmtFloat)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDashboardTable(w, dash, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// writeDashboardTable renders the three dashboard sections as text tables.
func writeDashboardTable(w io.Writer, dash schema.Dashboard, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	normalized := dash.ScoreMode == schema.NormalizedScore
	shown := dash.Entries
	if cfg.ResultLimit > 0 && len(shown) > cfg.ResultLimit {
		shown = shown[:cfg.ResultLimit]
	}

	// 1. Overall Performance Scores
	if _, err := fmt.Fprintln(w, "Overall Performance Scores"); err != nil {
		return err
	}
	scores := make([]float64, len(dash.Entries))
	for i, e := range dash.Entries {
		scores[i] = e.Score
	}
	scoreMax := maxOf(scores)
	barWidth := getBarWidth(cfg, 50)

	headers := []string{"#", "Name", "Score"}
	if normalized {
		headers = append(headers, "Label")
	}
	headers = append(headers, "Bar")

	var data [][]string
	for i, e := range shown {
		row := []string{
			strconv.Itoa(i + 1),
			contract.TruncateName(e.Name, 30),
			fmtFloat(e.Score),
		}
		if normalized {
			row = append(row, contract.GetColorLabel(e.Score))
		}
		row = append(row, renderBar(e.Score, scoreMax, barWidth))
		data = append(data, row)
	}
	if err := renderTable(w, headers, data); err != nil {
		return err
	}

	// 2. Category Performance
	if _, err := fmt.Fprintln(w, "\nCategory Performance"); err != nil {
		return err
	}
	averages := make([]float64, len(dash.Radar))
	for i, p := range dash.Radar {
		averages[i] = p.Average
	}
	avgMax := maxOf(averages)
	data = nil
	for i, p := range dash.Radar {
		weight := 0.0
		if i < len(dash.Criteria) {
			weight = dash.Criteria[i].Weight
		}
		data = append(data, []string{
			p.Subject,
			fmtFloat(weight),
			fmtFloat(p.Average),
			renderBar(p.Average, avgMax, barWidth),
		})
	}
	if err := renderTable(w, []string{"Category", "Weight", "Average", "Bar"}, data); err != nil {
		return err
	}

	// 3. Category Breakdown
	if cfg.Detail || cfg.Explain {
		if _, err := fmt.Fprintln(w, "\nCategory Breakdown"); err != nil {
			return err
		}
		if err := writeBreakdownTable(w, shown, dash.Criteria, cfg.Explain, fmtFloat); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Showing %d of %d entries across %d criteria. Score mode: %s\n", len(shown), len(dash.Entries), len(dash.Criteria), dash.ScoreMode); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Dashboard built in %v. History backend: %s\n", duration, cfg.HistoryBackend); err != nil {
		return err
	}
	return nil
}

// writeBreakdownTable shows every criterion value per entry, or each weighted contribution when explain is set.
func writeBreakdownTable(w io.Writer, entries []schema.ScoredEntry, criteria schema.Criteria, explain bool, fmtFloat func(float64) string) error {
	headers := []string{"Name"}
	for _, c := range criteria {
		headers = append(headers, schema.TitleCase(c.Name))
	}

	var data [][]string
	for _, e := range entries {
		row := []string{contract.TruncateName(e.Name, 30)}
		if explain && len(e.Breakdown) == len(criteria) {
			for _, part := range e.Breakdown {
				row = append(row, fmt.Sprintf("%s×%s=%s", fmtFloat(part.Weight), fmtFloat(part.Value), fmtFloat(part.Points)))
			}
		} else {
			for _, c := range criteria {
				row = append(row, fmtFloat(e.Values[c.Name]))
			}
		}
		data = append(data, row)
	}
	return renderTable(w, headers, data)
}

// writeDashboardCSV writes one row per entry with its values, score and label.
func writeDashboardCSV(w io.Writer, dash schema.Dashboard, fmtFloat func(float64) string) error {
	header := []string{"position", "name"}
	header = append(header, dash.Criteria.Names()...)
	header = append(header, "score", "label", "missing", "source")

	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, e := range dash.Entries {
			rec := []string{strconv.Itoa(i + 1), e.Name}
			for _, c := range dash.Criteria {
				rec = append(rec, fmtFloat(e.Values[c.Name]))
			}
			rec = append(rec, fmtFloat(e.Score), e.Label, strings.Join(e.Missing, "|"), e.Source)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// renderTable writes a right-aligned table with the given headers.
func renderTable(w io.Writer, headers []string, data [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
