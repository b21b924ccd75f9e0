// Package report renders analysis results for humans: value formatting,
// markdown reports and HTML conversion.
package report

import (
	"fmt"
	"strings"

	"finsight/pkg/core/calc"
)

// =============================================================================
// VALUE FORMATTERS - Display strings per format type
// =============================================================================

// FormatCurrency renders a dollar value with thousands separators and no
// cents; statement-level analysis has no use for sub-dollar precision.
func FormatCurrency(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.0f", v)
	var b strings.Builder
	for i, d := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	if neg {
		return "-$" + b.String()
	}
	return "$" + b.String()
}

// FormatPercent renders a percentage to one decimal place.
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// FormatRatio renders a ratio with an x suffix.
func FormatRatio(v float64) string {
	return fmt.Sprintf("%.2fx", v)
}

// FormatDays renders a day count as a whole number.
func FormatDays(v float64) string {
	return fmt.Sprintf("%.0f days", v)
}

// FormatValue renders a value per format type.
func FormatValue(v *float64, ft calc.FormatType) string {
	if v == nil {
		return "n/a"
	}
	switch ft {
	case calc.FormatCurrency:
		return FormatCurrency(*v)
	case calc.FormatPercentage:
		return FormatPercent(*v)
	case calc.FormatDays:
		return FormatDays(*v)
	default:
		return FormatRatio(*v)
	}
}

// FormatMetric renders a metric's current value.
func FormatMetric(m *calc.MetricResult) string {
	if m == nil {
		return "n/a"
	}
	return FormatValue(m.Current, m.FormatType)
}

var statusIcons = map[calc.Status]string{
	calc.StatusGreen: "🟢",
	calc.StatusAmber: "🟡",
	calc.StatusRed:   "🔴",
	calc.StatusGrey:  "⚪",
}

var trendArrows = map[calc.TrendDir]string{
	calc.TrendUp:      "↑",
	calc.TrendDown:    "↓",
	calc.TrendFlat:    "→",
	calc.TrendUnknown: "",
}

// StatusIcon returns the traffic light symbol for a status.
func StatusIcon(s calc.Status) string {
	if icon, ok := statusIcons[s]; ok {
		return icon
	}
	return statusIcons[calc.StatusGrey]
}

// TrendArrow returns the direction symbol for a trend.
func TrendArrow(t calc.TrendDir) string {
	return trendArrows[t]
}
