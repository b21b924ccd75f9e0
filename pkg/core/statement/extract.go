package statement

import "strings"

// =============================================================================
// FIELD EXTRACTOR - Keyword matching with subtotal preference
// =============================================================================

// MatchPolicy controls which row wins when several rows match the same
// keyword set. Statements list components before their subtotal, so the
// last match is the safer default.
type MatchPolicy string

const (
	MatchLast  MatchPolicy = "last"
	MatchFirst MatchPolicy = "first"
)

// ExtractOptions carries the knobs shared by every field walk over a table.
// Exclude drops rows whose label contains any of the listed substrings, so
// "Total Cost of Sales" never bleeds into a revenue match on "sales".
type ExtractOptions struct {
	Column  int
	Policy  MatchPolicy
	Exclude []string
}

func (o ExtractOptions) excluded(label string) bool {
	return len(o.Exclude) > 0 && MatchesKeywords(label, o.Exclude)
}

func (o ExtractOptions) policy() MatchPolicy {
	if o.Policy == MatchFirst {
		return MatchFirst
	}
	return MatchLast
}

// FindValue scans the table for rows whose label matches keywords and
// returns the winning amount. Rows whose label also matches a subtotal
// keyword are preferred over plain matches, so "Total Revenue" beats a
// "Revenue - other" line item regardless of position.
func FindValue(t *Table, keywords []string, opts ExtractOptions) *float64 {
	var plain, subtotal *float64
	for _, row := range t.Rows {
		if !MatchesKeywords(row.Label, keywords) || opts.excluded(row.Label) {
			continue
		}
		v := ParseAmount(row.Cell(opts.Column))
		if v == nil {
			continue
		}
		if IsSubtotalRow(row.Label) {
			if subtotal == nil || opts.policy() == MatchLast {
				subtotal = v
			}
			continue
		}
		if plain == nil || opts.policy() == MatchLast {
			plain = v
		}
	}
	if subtotal != nil {
		return subtotal
	}
	return plain
}

// ExtractField resolves a canonical field with a three step precedence:
// rows matching the field's total keywords, then any matching row under the
// subtotal preference of FindValue, then a summation of line items inside
// the named section.
func ExtractField(t *Table, totalKeywords, keywords []string, section Section, opts ExtractOptions) *float64 {
	if len(totalKeywords) > 0 {
		if v := FindValue(t, totalKeywords, opts); v != nil {
			return v
		}
	}
	if v := FindValue(t, keywords, opts); v != nil {
		return v
	}
	if section != SectionUnknown {
		if v, _ := SumSectionLines(t, section, opts); v != nil {
			return v
		}
	}
	return nil
}

// SumSectionLines adds every valued line item inside the given section,
// skipping subtotal rows so the components are not double counted. It also
// returns the contributing components for audit output.
func SumSectionLines(t *Table, section Section, opts ExtractOptions) (*float64, []Component) {
	tracker := NewSectionTracker()
	var sum float64
	var parts []Component
	for _, row := range t.Rows {
		v := ParseAmount(row.Cell(opts.Column))
		rowSection := tracker.Advance(row.Label, v != nil)
		if rowSection != section || v == nil {
			continue
		}
		if IsSubtotalRow(row.Label) || strings.HasPrefix(normalizeLabel(row.Label), "total ") {
			continue
		}
		sum += *v
		parts = append(parts, Component{Label: row.Label, Value: *v})
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return &sum, parts
}
