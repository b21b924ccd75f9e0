package ingest

import (
	"fmt"
	"io"
	"log"

	"github.com/xuri/excelize/v2"

	"finsight/pkg/core/statement"
)

// =============================================================================
// XLSX READER - Spreadsheet statement exports
// =============================================================================

// ReadXLSX parses the first sheet of a spreadsheet export into a raw table.
func ReadXLSX(r io.Reader, typ statement.Type) (*statement.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.Printf("[Ingest] closing spreadsheet: %v", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}
	return tableFromGrid(rows, typ)
}
