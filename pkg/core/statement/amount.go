package statement

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// AMOUNT PARSER - Heterogeneous numeric text to signed float values
// =============================================================================

var largeNumberPattern = regexp.MustCompile(`[\d,]{4,}`)

// ParseAmount converts numeric text into a signed value. It strips currency
// symbols, thousands separators, and whitespace; parenthesised text maps to a
// negative; empty, dash, "n/a" and "nil" map to nil. Malformed input returns
// nil rather than an error.
func ParseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "-", "–", "—", "n/a", "na", "nil", "nan":
		return nil
	}

	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.NewReplacer("(", "", ")", "", "$", "", ",", "", " ", "", " ", "").Replace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	if negative {
		d = d.Neg()
	}
	v := d.InexactFloat64()
	return &v
}

// FindAmountInLine extracts the first plausible dollar amount from a free-text
// line, skipping small integers that look like note references.
func FindAmountInLine(line string) *float64 {
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`\([\d,]+(?:\.\d{1,2})?\)`), // parenthesised negative
		regexp.MustCompile(`-[\d,]+(?:\.\d{1,2})?`),    // minus-sign negative
		regexp.MustCompile(`[\d,]+(?:\.\d{1,2})?`),     // plain positive
	}
	for _, p := range patterns {
		for _, m := range p.FindAllString(line, -1) {
			v := ParseAmount(m)
			if v != nil && !IsProbableNoteReference(*v, line) {
				return v
			}
		}
	}
	return nil
}

// IsProbableNoteReference reports whether a value is likely a footnote index
// rather than a financial figure: a small integer in [1,50], appearing in a
// line that carries either a larger number (the real figure) or no currency
// marker at all.
func IsProbableNoteReference(v float64, line string) bool {
	if v != float64(int64(v)) {
		return false
	}
	if v < 1 || v > 50 {
		return false
	}
	if largeNumberPattern.MatchString(line) {
		// A real financial figure sits alongside this small integer.
		return true
	}
	if strings.Contains(line, "$") {
		return false
	}
	return true
}
