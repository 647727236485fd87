// Package ingest decodes uploaded spreadsheets into header-keyed records.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/scorecard/schema"
)

// Format is a supported spreadsheet file format.
type Format string

// All formats supported.
const (
	CSVFormat  Format = "csv"
	XLSXFormat Format = "xlsx"
	XLSFormat  Format = "xls"
)

// ErrEmptyFile is returned when a file has no header row.
var ErrEmptyFile = errors.New("empty file")

// Table is the first worksheet of a file: a header row followed by data rows.
type Table struct {
	Header []string
	Rows   [][]string

	lines []int // source line of each data row; nil when rows map onto lines 1:1
}

// Record is one data row keyed by header name.
type Record struct {
	Line   int // 1-based source line the row starts on, header included
	Fields map[string]string
}

// FormatFor picks a decoder from the file extension.
func FormatFor(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return CSVFormat, nil
	case ".xlsx", ".xlsm":
		return XLSXFormat, nil
	case ".xls":
		return XLSFormat, nil
	default:
		return "", fmt.Errorf("%w: %q", schema.ErrUnsupportedFormat, filepath.Ext(name))
	}
}

// ReadFile opens and decodes the file at path.
func ReadFile(path string) (Table, error) {
	if _, err := FormatFor(path); err != nil {
		return Table{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer func() { _ = f.Close() }()
	return Read(path, f)
}

// Read decodes r using the format implied by name.
func Read(name string, r io.ReadSeeker) (Table, error) {
	format, err := FormatFor(name)
	if err != nil {
		return Table{}, err
	}

	var (
		rows  [][]string
		lines []int
	)
	switch format {
	case CSVFormat:
		rows, lines, err = readCSV(r)
	case XLSXFormat:
		rows, err = readXLSX(r)
	case XLSFormat:
		rows, err = readXLS(r)
	}
	if err != nil {
		return Table{}, fmt.Errorf("read %s: %w", filepath.Base(name), err)
	}
	return newTable(rows, lines)
}

// newTable cleans every cell and splits off the header row.
// lines holds the source line of each row and may be nil.
func newTable(rows [][]string, lines []int) (Table, error) {
	if len(rows) == 0 {
		return Table{}, ErrEmptyFile
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	if isBlank(header) {
		return Table{}, ErrEmptyFile
	}
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		cleaned := make([]string, len(row))
		for i, cell := range row {
			cleaned[i] = cleanCell(cell)
		}
		data = append(data, cleaned)
	}
	table := Table{Header: header, Rows: data}
	if len(lines) == len(rows) {
		table.lines = lines[1:]
	}
	return table, nil
}

// Records keys each non-blank row by header.
// Blank header cells are ignored and the first occurrence of a repeated header wins.
func (t Table) Records() []Record {
	records := make([]Record, 0, len(t.Rows))
	for i, row := range t.Rows {
		if isBlank(row) {
			continue
		}
		fields := make(map[string]string, len(t.Header))
		for col, key := range t.Header {
			if key == "" {
				continue
			}
			if _, seen := fields[key]; seen {
				continue
			}
			if col < len(row) {
				fields[key] = row[col]
			} else {
				fields[key] = ""
			}
		}
		line := i + 2
		if i < len(t.lines) {
			line = t.lines[i]
		}
		records = append(records, Record{Line: line, Fields: fields})
	}
	return records
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
