package ingest

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/scorecard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFormatFor(t *testing.T) {
	tests := []struct {
		name     string
		expected Format
		wantErr  bool
	}{
		{"scores.csv", CSVFormat, false},
		{"Scores.XLSX", XLSXFormat, false},
		{"macro.xlsm", XLSXFormat, false},
		{"legacy.xls", XLSFormat, false},
		{"notes.txt", "", true},
		{"noext", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FormatFor(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, schema.ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestReadCSV(t *testing.T) {
	data := "\ufeffname, productivity ,quality\nA,80,90\n\n , ,\nB,70\n"
	table, err := Read("in.csv", strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "productivity", "quality"}, table.Header)
	records := table.Records()
	require.Len(t, records, 2, "blank rows are dropped")
	assert.Equal(t, map[string]string{"name": "A", "productivity": "80", "quality": "90"}, records[0].Fields)
	assert.Equal(t, 2, records[0].Line)
	assert.Equal(t, map[string]string{"name": "B", "productivity": "70", "quality": ""}, records[1].Fields)
	assert.Equal(t, 5, records[1].Line, "blank lines still count")
}

func TestReadCSVMultilineField(t *testing.T) {
	data := "name,quality\n\n\"A\nB\",1\nC,2\n"
	table, err := Read("in.csv", strings.NewReader(data))
	require.NoError(t, err)

	records := table.Records()
	require.Len(t, records, 2)
	assert.Equal(t, 3, records[0].Line)
	assert.Equal(t, 5, records[1].Line)
}

func TestReadCSVEmpty(t *testing.T) {
	_, err := Read("empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyFile)

	_, err = Read("blank.csv", strings.NewReader(" , \n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestReadCSVMalformed(t *testing.T) {
	_, err := Read("bad.csv", strings.NewReader("name,quality\n\"A,90\n"))
	assert.Error(t, err)
}

func TestRecordsRepeatedAndBlankHeaders(t *testing.T) {
	table := Table{
		Header: []string{"name", "", "quality", "quality"},
		Rows:   [][]string{{"A", "ignored", "1", "2"}},
	}
	records := table.Records()
	require.Len(t, records, 1)
	assert.Equal(t, map[string]string{"name": "A", "quality": "1"}, records[0].Fields)
}

func writeWorkbook(t *testing.T, rows [][]any) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	// A second sheet must be ignored.
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Other", "A1", "name"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadXLSXFirstSheet(t *testing.T) {
	r := writeWorkbook(t, [][]any{
		{"name", "productivity", "quality", "timeliness"},
		{"A", 80, 90.5, 70},
		{"B", 60, 75, 85},
	})
	table, err := Read("upload.xlsx", r)
	require.NoError(t, err)

	records := table.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "A", records[0].Fields["name"])
	assert.Equal(t, "90.5", records[0].Fields["quality"])
	assert.Equal(t, "85", records[1].Fields["timeliness"])
}

func TestReadXLSXCorrupt(t *testing.T) {
	_, err := Read("broken.xlsx", bytes.NewReader([]byte("not a zip")))
	assert.Error(t, err)
}

func TestReadXLSCorrupt(t *testing.T) {
	_, err := Read("broken.xls", bytes.NewReader([]byte("not an ole2 file")))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scores.csv")
	require.NoError(t, os.WriteFile(path, []byte("name,quality\nA,1\n"), 0o644))

	table, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, table.Records(), 1)

	_, err = ReadFile(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	_, err = ReadFile(filepath.Join(dir, "scores.txt"))
	assert.ErrorIs(t, err, schema.ErrUnsupportedFormat)
}
