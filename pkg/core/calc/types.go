// Package calc provides deterministic financial analysis over canonical
// period records: ratio metrics with traffic lights, internal consistency
// self-checks and red-flag heuristics. Every computation is null-safe; a
// missing input yields a null value with grey status, never a panic and
// never a fabricated number.
package calc

import "finsight/pkg/core/statement"

// =============================================================================
// ANALYSIS DATA STRUCTURES
// =============================================================================

// Status is the traffic light attached to a metric.
type Status string

const (
	StatusGreen Status = "green"
	StatusAmber Status = "amber"
	StatusRed   Status = "red"
	StatusGrey  Status = "grey"
)

// FormatType tells presentation code how to render a metric value.
type FormatType string

const (
	FormatPercentage FormatType = "percentage"
	FormatRatio      FormatType = "ratio"
	FormatCurrency   FormatType = "currency"
	FormatDays       FormatType = "days"
)

// Category groups metrics for display.
type Category string

const (
	CategoryLiquidity     Category = "liquidity"
	CategoryProfitability Category = "profitability"
	CategoryEfficiency    Category = "efficiency"
	CategoryLeverage      Category = "leverage"
	CategoryGrowth        Category = "growth"
)

// TrendDir is the period-over-period direction of a metric.
type TrendDir string

const (
	TrendUp      TrendDir = "up"
	TrendDown    TrendDir = "down"
	TrendFlat    TrendDir = "flat"
	TrendUnknown TrendDir = "unknown"
)

// MetricResult is one computed metric across up to three periods.
// Status stays grey whenever Current is nil.
type MetricResult struct {
	Name          string              `json:"name"`
	Label         string              `json:"label"`
	Current       *float64            `json:"current"`
	Prior         *float64            `json:"prior"`
	Prior2        *float64            `json:"prior2"`
	Status        Status              `json:"status"`
	FormatType    FormatType          `json:"format_type"`
	Category      Category            `json:"category"`
	Trend         TrendDir            `json:"trend"`
	BenchmarkLow  *float64            `json:"benchmark_low"`
	BenchmarkHigh *float64            `json:"benchmark_high"`
	Notes         string              `json:"notes"`
	Components    map[string]*float64 `json:"components,omitempty"`
}

// CheckStatus is the outcome of one self-check.
type CheckStatus string

const (
	CheckPass CheckStatus = "pass"
	CheckWarn CheckStatus = "warn"
	CheckFail CheckStatus = "fail"
)

// SelfCheckResult is one internal-consistency verdict. A check that cannot
// evaluate because inputs are missing reports warn with the missing fields
// named, never pass and never fail.
type SelfCheckResult struct {
	CheckName   string             `json:"check_name"`
	Description string             `json:"description"`
	Status      CheckStatus        `json:"status"`
	Detail      string             `json:"detail"`
	WhatItMeans string             `json:"what_it_means"`
	Values      map[string]float64 `json:"values,omitempty"`
}

// BenchmarkComparison relates one company figure to an industry range.
type BenchmarkComparison struct {
	Name         string   `json:"name"`
	Label        string   `json:"label"`
	CompanyValue *float64 `json:"company_value"`
	Low          float64  `json:"low"`
	High         float64  `json:"high"`
	Status       Status   `json:"status"`
	Commentary   string   `json:"commentary"`
}

// AnalysisResult is the complete output bundle for one run. It is created
// once by the orchestrator and read-only to every downstream consumer.
type AnalysisResult struct {
	RunID                string                             `json:"run_id"`
	Industry             string                             `json:"industry,omitempty"`
	Metrics              map[string]*MetricResult           `json:"metrics"`
	RedFlags             []string                           `json:"red_flags"`
	SelfChecks           []SelfCheckResult                  `json:"self_checks"`
	HasFails             bool                               `json:"has_fails"`
	HasWarns             bool                               `json:"has_warns"`
	PeriodLabels         []string                           `json:"period_labels"`
	Periods              map[string]*statement.PeriodRecord `json:"canonical_data"`
	BenchmarkComparisons []BenchmarkComparison              `json:"benchmark_comparisons,omitempty"`
}

// Metric returns the named metric or nil when absent.
func (a *AnalysisResult) Metric(name string) *MetricResult {
	if a == nil || a.Metrics == nil {
		return nil
	}
	return a.Metrics[name]
}

// MetricsByCategory returns the metric names in insertion-independent,
// display-stable order for one category.
func (a *AnalysisResult) MetricsByCategory(cat Category) []*MetricResult {
	var out []*MetricResult
	for _, name := range MetricOrder {
		if m := a.Metric(name); m != nil && m.Category == cat {
			out = append(out, m)
		}
	}
	return out
}
