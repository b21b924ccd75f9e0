package statement

import (
	"log"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// =============================================================================
// COLUMN CLASSIFIER - Value vs note-reference columns, newest-first ordering
// =============================================================================

// ColumnClassification describes which table columns carry financial values
// and which carry footnote indices. ValueColumns are ordered newest to
// oldest. The two sets are disjoint; every non-label column lands in exactly
// one of them.
type ColumnClassification struct {
	ValueColumns           []int    `json:"value_columns"`
	ReferenceColumns       []int    `json:"reference_columns"`
	UsedPositionalFallback bool     `json:"used_positional_fallback"`
	PeriodLabels           []string `json:"period_labels"`
}

var (
	fy4Pattern       = regexp.MustCompile(`(?i)\bFY\s*(\d{4})\b`)
	fy2Pattern       = regexp.MustCompile(`(?i)\bFY\s*(\d{2})\b`)
	yearEndedPattern = regexp.MustCompile(`(?i)year\s+ended.*?(20\d{2})`)
	splitYearPattern = regexp.MustCompile(`\b(20\d{2})/(\d{2,4})\b`)
	monthSpanPattern = regexp.MustCompile(`[A-Za-z]{3}\s+\d{4}\s*[-\x{2013}]\s*[A-Za-z]{3}\s+(20\d{2})`)
	bareYearPattern  = regexp.MustCompile(`\b(20\d{2})\b`)
)

// relativePriority orders columns labelled with relative period terms when no
// fiscal year is present.
var relativePriority = []struct {
	term     string
	priority int
}{
	{"current year", 100}, {"current", 100}, {"this year", 100},
	{"prior year", 50}, {"prior", 50}, {"previous year", 50},
	{"comparative", 50}, {"last year", 50},
}

// ExtractYear pulls a 4-digit fiscal year from a column header. Returns 0
// when no year cue is present.
func ExtractYear(header string) int {
	s := strings.TrimSpace(header)
	if m := fy4Pattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := fy2Pattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return 2000 + y
	}
	if m := yearEndedPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := splitYearPattern.FindStringSubmatch(s); m != nil {
		// A 2023/24 split financial year: take the later year.
		if len(m[2]) == 2 {
			y, _ := strconv.Atoi(m[1][:2] + m[2])
			return y
		}
		y, _ := strconv.Atoi(m[2])
		return y
	}
	if m := monthSpanPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := bareYearPattern.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	return 0
}

// ClassifyColumns identifies reference columns and orders value columns
// newest to oldest using header date cues. Ordering priority: fiscal years,
// then relative terms, then original left-to-right order with the positional
// fallback flagged.
func ClassifyColumns(t *Table) ColumnClassification {
	n := t.ColumnCount()
	cls := ColumnClassification{}
	if n == 0 {
		return cls
	}

	refSet := make(map[int]bool)
	for col := 0; col < n; col++ {
		if isReferenceColumn(t, col) {
			refSet[col] = true
			cls.ReferenceColumns = append(cls.ReferenceColumns, col)
			log.Printf("[Columns] column %q detected as note reference column - excluded from extraction", t.Header(col))
		}
	}

	var valueCols []int
	for col := 0; col < n; col++ {
		if !refSet[col] {
			valueCols = append(valueCols, col)
		}
	}
	if len(valueCols) == 0 {
		return cls
	}

	years := make(map[int]int)
	for _, col := range valueCols {
		if y := ExtractYear(t.Header(col)); y > 0 {
			years[col] = y
		}
	}

	switch {
	case len(years) > 0:
		sort.SliceStable(valueCols, func(i, j int) bool {
			return years[valueCols[i]] > years[valueCols[j]]
		})
		cls.UsedPositionalFallback = len(years) < len(valueCols)
	default:
		rel := make(map[int]int)
		matched := false
		for _, col := range valueCols {
			header := strings.ToLower(strings.TrimSpace(t.Header(col)))
			for _, rp := range relativePriority {
				if strings.Contains(header, rp.term) {
					rel[col] = rp.priority
					matched = true
					break
				}
			}
		}
		if matched {
			sort.SliceStable(valueCols, func(i, j int) bool {
				return rel[valueCols[i]] > rel[valueCols[j]]
			})
		} else {
			cls.UsedPositionalFallback = true
		}
	}

	cls.ValueColumns = valueCols
	for i, col := range valueCols {
		if i >= 3 {
			break
		}
		label := t.Header(col)
		if label == "" {
			label = [3]string{"Current", "Prior", "Prior 2"}[i]
		}
		cls.PeriodLabels = append(cls.PeriodLabels, label)
	}
	return cls
}

// isReferenceColumn reports whether every numeric value in the column is an
// integer in [1,50] with no fractional component and a median absolute value
// of at most 50, the signature of a footnote index column.
func isReferenceColumn(t *Table, col int) bool {
	var vals []float64
	for _, row := range t.Rows {
		v := ParseAmount(row.Cell(col))
		if v == nil {
			continue
		}
		if *v != math.Trunc(*v) {
			return false
		}
		vals = append(vals, *v)
	}
	if len(vals) == 0 {
		return false
	}
	for _, v := range vals {
		if v < 1 || v > 50 {
			return false
		}
	}
	return medianAbs(vals) <= 50
}

func medianAbs(vals []float64) float64 {
	abs := make([]float64, len(vals))
	for i, v := range vals {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)
	mid := len(abs) / 2
	if len(abs)%2 == 0 {
		return (abs[mid-1] + abs[mid]) / 2
	}
	return abs[mid]
}
