package commentary

import (
	"fmt"
	"strings"

	"finsight/pkg/core/calc"
	"finsight/pkg/core/report"
)

// =============================================================================
// PROMPT BUILDERS - Advisor persona and data summaries
// =============================================================================

// SystemPrompt frames the model as an advisor writing for a business owner,
// not an accountant. The data discipline rules matter more than the tone:
// the model must not invent numbers the engine did not compute.
const SystemPrompt = `You are an experienced CPA advising small business owners. You write in plain English for readers without an accounting background.

Rules:
- Use only the figures provided. Never invent, estimate or extrapolate numbers.
- When a figure is marked as unavailable, say so rather than guessing.
- Explain what each observation means for the business, not just what the number is.
- Be direct about problems. Softening bad news helps nobody.
- Keep the commentary under 600 words.`

// commentaryTemplate drives the narrative structure.
const commentaryTemplate = `Write financial commentary for the business described below, using these sections:

## Executive Summary
## Trading Performance
## Cashflow & Liquidity
## Balance Sheet Strength
## Key Risks
## Talking Points

%s`

// BuildCommentaryPrompt renders the analysis result into the user prompt.
func BuildCommentaryPrompt(result *calc.AnalysisResult) string {
	return fmt.Sprintf(commentaryTemplate, DataSummary(result))
}

// highlightsPrompt asks for machine-readable highlights. Decoded leniently
// because models decorate JSON despite instructions.
const highlightsPrompt = `From the financial data below, return ONLY a JSON object with this exact shape:
{"headline": "one sentence on the overall position", "risks": ["up to three risks"], "opportunities": ["up to three opportunities"]}

%s`

// BuildHighlightsPrompt renders the structured-highlights request.
func BuildHighlightsPrompt(result *calc.AnalysisResult) string {
	return fmt.Sprintf(highlightsPrompt, DataSummary(result))
}

// DataSummary flattens the analysis result into prompt text: metrics by
// category, self-check outcomes, red flags and benchmark positions.
func DataSummary(result *calc.AnalysisResult) string {
	var b strings.Builder

	if len(result.PeriodLabels) > 0 {
		fmt.Fprintf(&b, "Periods analysed: %s\n\n", strings.Join(result.PeriodLabels, ", "))
	}

	for _, cat := range []calc.Category{
		calc.CategoryLiquidity, calc.CategoryProfitability, calc.CategoryEfficiency,
		calc.CategoryLeverage, calc.CategoryGrowth,
	} {
		metrics := result.MetricsByCategory(cat)
		if len(metrics) == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", titleCase(string(cat)))
		for _, m := range metrics {
			fmt.Fprintf(&b, "- %s: %s (status %s, trend %s)", m.Label, report.FormatMetric(m), m.Status, m.Trend)
			if m.Notes != "" {
				fmt.Fprintf(&b, " [%s]", m.Notes)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(result.SelfChecks) > 0 {
		b.WriteString("Data quality checks:\n")
		for _, c := range result.SelfChecks {
			fmt.Fprintf(&b, "- %s: %s (%s)\n", c.Description, c.Status, c.Detail)
		}
		b.WriteString("\n")
	}

	if len(result.RedFlags) > 0 {
		b.WriteString("Red flags:\n")
		for _, f := range result.RedFlags {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}

	if len(result.BenchmarkComparisons) > 0 {
		fmt.Fprintf(&b, "Industry benchmarks (%s):\n", result.Industry)
		for _, c := range result.BenchmarkComparisons {
			fmt.Fprintf(&b, "- %s: %s\n", c.Label, c.Commentary)
		}
	}

	return strings.TrimSpace(b.String())
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
