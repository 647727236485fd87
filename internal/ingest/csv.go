package ingest

import (
	"encoding/csv"
	"errors"
	"io"
)

// readCSV returns every record with the source line it starts on.
// encoding/csv drops blank lines, so row index and line number can differ.
func readCSV(r io.Reader) ([][]string, []int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	var (
		rows  [][]string
		lines []int
	)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return rows, lines, nil
		}
		if err != nil {
			return nil, nil, err
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, rec)
		lines = append(lines, line)
	}
}
