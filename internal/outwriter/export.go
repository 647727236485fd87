package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/huangsam/scorecard/internal/parquet"
	"github.com/huangsam/scorecard/schema"
	"github.com/xuri/excelize/v2"
)

const (
	// ExportSheetName is the worksheet that holds exported rows.
	ExportSheetName = "Scorecard"

	// ReportTitle heads the PDF report.
	ReportTitle = "Scorecard Report"
)

// WriteExport serializes an export table in the given format.
func WriteExport(w io.Writer, format schema.ExportFormat, table schema.ExportTable) error {
	switch format {
	case schema.XLSXExport:
		return writeXLSXExport(w, table)
	case schema.CSVExport:
		return writeCSVExport(w, table)
	case schema.PDFExport:
		return writePDFExport(w, table)
	case schema.JSONExport:
		return writeJSON(w, toExportJSON(table))
	case schema.ParquetExport:
		return parquet.WriteScorecard(w, table)
	default:
		return fmt.Errorf("%w: export format %q", schema.ErrUnsupportedFormat, format)
	}
}

// exportCells returns a row as name, values and score.
func exportCells(row schema.ExportRow) []any {
	cells := make([]any, 0, len(row.Values)+2)
	cells = append(cells, row.Name)
	for _, v := range row.Values {
		cells = append(cells, v)
	}
	return append(cells, row.Score)
}

// writeXLSXExport writes a single worksheet with a bold header and numeric cells.
func writeXLSXExport(w io.Writer, table schema.ExportTable) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(table.Header))
	for i, h := range table.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetRowStyle(ExportSheetName, 1, 1, style)
	}

	for i, row := range table.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := exportCells(row)
		if err := f.SetSheetRow(ExportSheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeCSVExport writes values at full precision.
// Headers are display titles, so the file does not re-import as is.
func writeCSVExport(w io.Writer, table schema.ExportTable) error {
	return writeCSVWithHeader(w, table.Header, func(cw *csv.Writer) error {
		for _, row := range table.Rows {
			rec := make([]string, 0, len(row.Values)+2)
			rec = append(rec, row.Name)
			for _, v := range row.Values {
				rec = append(rec, strconv.FormatFloat(v, 'f', -1, 64))
			}
			rec = append(rec, strconv.FormatFloat(row.Score, 'f', -1, 64))
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writePDFExport writes a titled report table with scores to two decimals.
func writePDFExport(w io.Writer, table schema.ExportTable) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(ReportTitle, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, ReportTitle, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colWidth := (pageWidth - left - right) / float64(max(len(table.Header), 1))

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, h := range table.Header {
		pdf.CellFormat(colWidth, 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range table.Rows {
		pdf.CellFormat(colWidth, 7, tr(row.Name), "1", 0, "L", false, 0, "")
		for _, v := range row.Values {
			pdf.CellFormat(colWidth, 7, strconv.FormatFloat(v, 'f', -1, 64), "1", 0, "R", false, 0, "")
		}
		pdf.CellFormat(colWidth, 7, strconv.FormatFloat(row.Score, 'f', 2, 64), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

type exportJSONRow struct {
	Name       string             `json:"name"`
	Values     map[string]float64 `json:"values"`
	TotalScore float64            `json:"totalScore"`
}

type exportJSON struct {
	Header   []string        `json:"header"`
	Criteria []string        `json:"criteria"`
	Rows     []exportJSONRow `json:"rows"`
}

// toExportJSON keys each row's values by criterion name.
func toExportJSON(table schema.ExportTable) exportJSON {
	rows := make([]exportJSONRow, len(table.Rows))
	for i, r := range table.Rows {
		values := make(map[string]float64, len(r.Values))
		for j, v := range r.Values {
			if j < len(table.Criteria) {
				values[table.Criteria[j]] = v
			}
		}
		rows[i] = exportJSONRow{Name: r.Name, Values: values, TotalScore: r.Score}
	}
	return exportJSON{Header: table.Header, Criteria: table.Criteria, Rows: rows}
}
