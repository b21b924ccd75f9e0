package statement

import "strings"

// =============================================================================
// COMPONENT AGGREGATOR - Sum matching line items with subtotal short-circuit
// =============================================================================

// Component is one line item that contributed to an aggregated field.
type Component struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// SumAllMatching aggregates every distinct line item whose label matches
// keywords. A subtotal row that matches short-circuits the walk because the
// statement has already done the addition. Duplicate labels are collapsed
// case-insensitively so a repeated "Depreciation" row counts once.
func SumAllMatching(t *Table, keywords []string, opts ExtractOptions) (*float64, []Component) {
	seen := make(map[string]bool)
	var sum float64
	var parts []Component
	for _, row := range t.Rows {
		if !MatchesKeywords(row.Label, keywords) {
			continue
		}
		v := ParseAmount(row.Cell(opts.Column))
		if v == nil {
			continue
		}
		if IsSubtotalRow(row.Label) {
			return v, []Component{{Label: row.Label, Value: *v}}
		}
		key := strings.ToLower(strings.TrimSpace(row.Label))
		if seen[key] {
			continue
		}
		seen[key] = true
		sum += *v
		parts = append(parts, Component{Label: row.Label, Value: *v})
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return &sum, parts
}
