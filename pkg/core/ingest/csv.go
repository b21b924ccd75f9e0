// Package ingest turns uploaded statement files into raw tables ready for
// extraction: CSV and XLSX exports, HTML reports and text-first PDFs.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"finsight/pkg/core/statement"
)

// =============================================================================
// CSV READER - Accounting-package CSV exports
// =============================================================================

var headerRowKeywords = []string{
	"period", "ytd", "year", "current", "prior", "month ended", "quarter",
}

// ReadCSV parses one statement export into a raw table. The header row is
// located by period keywords or a year pattern; rows above it, typically the
// report title and entity name, are dropped.
func ReadCSV(r io.Reader, typ statement.Type) (*statement.Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	cr := csv.NewReader(bytes.NewReader(raw))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file is empty")
	}
	return tableFromGrid(records, typ)
}

// tableFromGrid builds a raw table from a 2D grid shared by the CSV and
// XLSX readers.
func tableFromGrid(grid [][]string, typ statement.Type) (*statement.Table, error) {
	headerIdx := identifyHeaderRow(grid)
	header := grid[headerIdx]

	t := &statement.Table{Type: typ, Headers: padRow(header, len(header))}
	maxCols := len(header)
	for _, row := range grid[headerIdx+1:] {
		if len(row) == 0 || allEmpty(row) {
			continue
		}
		if len(row) > maxCols {
			maxCols = len(row)
		}
		padded := padRow(row, maxCols)
		t.Rows = append(t.Rows, statement.Row{Label: strings.TrimSpace(padded[0]), Cells: padded[1:]})
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("no data rows found below header row %d", headerIdx)
	}
	log.Printf("[Ingest] parsed %d rows, header at row %d", len(t.Rows), headerIdx)
	return t, nil
}

// identifyHeaderRow finds the first row that names periods, either by
// keyword or by carrying a fiscal year. Defaults to the first row.
func identifyHeaderRow(grid [][]string) int {
	for i, row := range grid {
		if i > 10 {
			break
		}
		for _, cell := range row {
			lower := strings.ToLower(cell)
			for _, kw := range headerRowKeywords {
				if strings.Contains(lower, kw) {
					return i
				}
			}
			if statement.ExtractYear(cell) > 0 {
				return i
			}
		}
	}
	return 0
}

func padRow(row []string, width int) []string {
	if len(row) >= width {
		return row
	}
	padded := make([]string, width)
	copy(padded, row)
	return padded
}

func allEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
