// Package statement turns loosely-structured financial statement tables into
// canonical per-period records. It covers amount parsing, column
// classification, section tracking, subtotal-preference extraction, and
// component aggregation.
package statement

import "strings"

// Type identifies which financial statement a table represents.
type Type string

const (
	TypeProfitLoss   Type = "profit_loss"
	TypeBalanceSheet Type = "balance_sheet"
	TypeCashFlow     Type = "cash_flow"
)

// Row is one line of a statement table: a label plus one cell per value column.
type Row struct {
	Label string   `json:"label"`
	Cells []string `json:"cells"`
}

// Table is a raw statement grid: one label column and N period-value columns.
// Headers[0] belongs to the label column; Headers[i+1] describes Cells[i].
// Tables are transient and consumed once per parse.
type Table struct {
	Type    Type     `json:"type"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// ColumnCount returns the number of non-label columns.
func (t *Table) ColumnCount() int {
	n := 0
	for _, r := range t.Rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	if len(t.Headers) > 0 && len(t.Headers)-1 > n {
		n = len(t.Headers) - 1
	}
	return n
}

// Cell returns the raw cell text for a row at the given value-column index,
// or "" when the row is short.
func (r Row) Cell(col int) string {
	if col < 0 || col >= len(r.Cells) {
		return ""
	}
	return strings.TrimSpace(r.Cells[col])
}

// Header returns the header text for a value-column index, or "" if absent.
func (t *Table) Header(col int) string {
	idx := col + 1
	if idx < 0 || idx >= len(t.Headers) {
		return ""
	}
	return strings.TrimSpace(t.Headers[idx])
}
