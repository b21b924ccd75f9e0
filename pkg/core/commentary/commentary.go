package commentary

import (
	"context"
	"fmt"
	"log"
	"strings"

	"finsight/pkg/core/calc"
	"finsight/pkg/core/report"
	"finsight/pkg/core/utils"
)

// =============================================================================
// COMMENTARY BUILDER - Narrative and structured highlights over a result
// =============================================================================

// Highlights is the machine-readable summary used by dashboards and exports.
type Highlights struct {
	Headline      string   `json:"headline"`
	Risks         []string `json:"risks"`
	Opportunities []string `json:"opportunities"`
}

// Builder generates commentary for analysis results. A nil Generator makes
// every call fall back to the deterministic template.
type Builder struct {
	Generator Generator
}

// Generate streams the full narrative commentary and returns the cleaned
// markdown. Partial text is returned alongside the error when a stream dies
// midway, so callers can show what arrived.
func (b *Builder) Generate(ctx context.Context, result *calc.AnalysisResult) (string, error) {
	if b.Generator == nil {
		return FallbackCommentary(result), nil
	}

	stream, err := b.Generator.Stream(ctx, SystemPrompt, BuildCommentaryPrompt(result))
	if err != nil {
		log.Printf("[Commentary] generator unavailable, using fallback: %v", err)
		return FallbackCommentary(result), nil
	}

	var sb strings.Builder
	for chunk := range stream {
		if chunk.Err != nil {
			return utils.CleanMarkdown(sb.String()), fmt.Errorf("commentary stream: %w", chunk.Err)
		}
		sb.WriteString(chunk.Text)
	}
	text := utils.CleanMarkdown(sb.String())
	if !utils.ValidateMarkdown(text) || text == "" {
		return FallbackCommentary(result), nil
	}
	return text, nil
}

// GenerateHighlights asks the model for structured highlights and decodes
// them leniently. Falls back to a deterministic digest when no generator is
// configured or the output cannot be decoded.
func (b *Builder) GenerateHighlights(ctx context.Context, result *calc.AnalysisResult) (*Highlights, error) {
	if b.Generator == nil {
		return fallbackHighlights(result), nil
	}

	stream, err := b.Generator.Stream(ctx, SystemPrompt, BuildHighlightsPrompt(result))
	if err != nil {
		return fallbackHighlights(result), nil
	}

	var sb strings.Builder
	for chunk := range stream {
		if chunk.Err != nil {
			return nil, fmt.Errorf("highlights stream: %w", chunk.Err)
		}
		sb.WriteString(chunk.Text)
	}

	var h Highlights
	if err := utils.DecodeLenient(sb.String(), &h); err != nil {
		log.Printf("[Commentary] could not decode highlights, using fallback: %v", err)
		return fallbackHighlights(result), nil
	}
	return &h, nil
}

// FallbackCommentary assembles a plain factual narrative without a model.
// Used when no API key is configured or the stream fails validation.
func FallbackCommentary(result *calc.AnalysisResult) string {
	var b strings.Builder
	b.WriteString("## Financial Snapshot\n\n")

	for _, name := range []string{"current_ratio", "gross_margin", "net_margin", "ebit_margin", "revenue_growth"} {
		m := result.Metric(name)
		if m == nil || m.Current == nil {
			continue
		}
		fmt.Fprintf(&b, "- %s: %s\n", m.Label, report.FormatMetric(m))
	}

	if len(result.RedFlags) > 0 {
		b.WriteString("\n## Areas of Concern\n\n")
		for _, f := range result.RedFlags {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}

	if calc.HasFails(result.SelfChecks) {
		b.WriteString("\nSome data consistency checks failed. Figures above should be verified against the source statements before relying on them.\n")
	}
	return strings.TrimSpace(b.String())
}

func fallbackHighlights(result *calc.AnalysisResult) *Highlights {
	h := &Highlights{}
	if m := result.Metric("net_margin"); m != nil && m.Current != nil {
		h.Headline = fmt.Sprintf("Net margin of %.1f%% for the latest period", *m.Current)
	} else {
		h.Headline = "Analysis complete; key margins unavailable from the source data"
	}
	n := len(result.RedFlags)
	if n > 3 {
		n = 3
	}
	h.Risks = append(h.Risks, result.RedFlags[:n]...)
	for _, name := range []string{"revenue_growth", "gross_profit_growth"} {
		if m := result.Metric(name); m != nil && m.Current != nil && *m.Current > 0 {
			h.Opportunities = append(h.Opportunities,
				fmt.Sprintf("%s of %.1f%% year over year", m.Label, *m.Current))
		}
	}
	return h
}
