package report

import (
	"fmt"
	"strings"

	"finsight/pkg/core/calc"
)

// =============================================================================
// MARKDOWN REPORT - Full analysis result rendering
// =============================================================================

var categoryTitles = []struct {
	cat   calc.Category
	title string
}{
	{calc.CategoryLiquidity, "Liquidity"},
	{calc.CategoryProfitability, "Profitability"},
	{calc.CategoryEfficiency, "Efficiency"},
	{calc.CategoryLeverage, "Leverage"},
	{calc.CategoryGrowth, "Growth"},
}

// RenderMarkdown produces the full report: metric tables by category,
// self-checks, red flags, benchmark comparisons and optional commentary.
func RenderMarkdown(result *calc.AnalysisResult, commentary string) string {
	var b strings.Builder

	b.WriteString("# Financial Analysis\n\n")
	if len(result.PeriodLabels) > 0 {
		fmt.Fprintf(&b, "Periods: %s\n\n", strings.Join(result.PeriodLabels, ", "))
	}
	if result.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n\n", result.Industry)
	}

	if calc.HasFails(result.SelfChecks) {
		b.WriteString("> **Warning:** one or more data consistency checks failed. Verify the figures below against the source statements.\n\n")
	}

	for _, ct := range categoryTitles {
		metrics := result.MetricsByCategory(ct.cat)
		if len(metrics) == 0 {
			continue
		}
		fmt.Fprintf(&b, "## %s\n\n", ct.title)
		b.WriteString("| Metric | Current | Prior | Trend | Status |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for _, m := range metrics {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				m.Label,
				FormatValue(m.Current, m.FormatType),
				FormatValue(m.Prior, m.FormatType),
				TrendArrow(m.Trend),
				StatusIcon(m.Status))
		}
		b.WriteString("\n")
		for _, m := range metrics {
			if m.Notes != "" {
				fmt.Fprintf(&b, "*%s: %s*\n\n", m.Label, m.Notes)
			}
		}
	}

	if len(result.SelfChecks) > 0 {
		b.WriteString("## Data Quality Checks\n\n")
		for _, c := range result.SelfChecks {
			fmt.Fprintf(&b, "- %s **%s** %s: %s\n", checkIcon(c.Status), strings.ToUpper(string(c.Status)), c.Description, c.Detail)
		}
		b.WriteString("\n")
	}

	if len(result.RedFlags) > 0 {
		b.WriteString("## Red Flags\n\n")
		for _, f := range result.RedFlags {
			fmt.Fprintf(&b, "- ⚠️ %s\n", f)
		}
		b.WriteString("\n")
	}

	if len(result.BenchmarkComparisons) > 0 {
		b.WriteString("## Industry Benchmarks\n\n")
		b.WriteString("| Measure | Company | Industry Range | Status |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, c := range result.BenchmarkComparisons {
			company := "n/a"
			if c.CompanyValue != nil {
				company = FormatPercent(*c.CompanyValue)
			}
			fmt.Fprintf(&b, "| %s | %s | %s - %s | %s |\n",
				c.Label, company, FormatPercent(c.Low), FormatPercent(c.High), StatusIcon(c.Status))
		}
		b.WriteString("\n")
	}

	if commentary != "" {
		b.WriteString("## Commentary\n\n")
		b.WriteString(commentary)
		b.WriteString("\n")
	}

	return b.String()
}

func checkIcon(s calc.CheckStatus) string {
	switch s {
	case calc.CheckPass:
		return "✅"
	case calc.CheckFail:
		return "❌"
	default:
		return "⚠️"
	}
}
