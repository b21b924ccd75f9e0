// Package benchmark compares company figures against industry ranges and
// applies benchmark-driven statuses to the margin metrics that have no
// universal threshold.
package benchmark

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"finsight/pkg/core/calc"
	"finsight/pkg/core/statement"
)

// =============================================================================
// INDUSTRY BENCHMARKS - Range data, banding and metric application
// =============================================================================

//go:embed data/benchmarks.json
var embeddedData []byte

// Range is one industry benchmark band, expressed in percent of revenue for
// expense lines and in margin percent for the margin keys.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Dataset maps industry name to its benchmark ranges keyed by metric name.
type Dataset map[string]map[string]Range

// Load returns the embedded benchmark dataset.
func Load() (Dataset, error) {
	return parse(embeddedData)
}

// LoadFile reads a benchmark dataset from disk, for deployments that carry
// their own industry data.
func LoadFile(path string) (Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading benchmark file: %w", err)
	}
	return parse(raw)
}

func parse(raw []byte) (Dataset, error) {
	var ds Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, fmt.Errorf("parsing benchmark data: %w", err)
	}
	return ds, nil
}

// Industries lists the known industry names sorted alphabetically.
func (d Dataset) Industries() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Ranges returns the benchmark ranges for an industry, matching the name
// case-insensitively. ok is false for an unknown industry.
func (d Dataset) Ranges(industry string) (map[string]Range, bool) {
	if r, ok := d[industry]; ok {
		return r, true
	}
	for name, r := range d {
		if strings.EqualFold(name, industry) {
			return r, true
		}
	}
	return nil, false
}

// StatusFor bands a value against a range: green inside, amber within 20%
// of the range width beyond either edge, red further out. Grey on nil.
func StatusFor(v *float64, r Range) calc.Status {
	if v == nil {
		return calc.StatusGrey
	}
	slack := 0.2 * (r.High - r.Low)
	switch {
	case *v >= r.Low && *v <= r.High:
		return calc.StatusGreen
	case *v >= r.Low-slack && *v <= r.High+slack:
		return calc.StatusAmber
	default:
		return calc.StatusRed
	}
}

// Apply grades the gross and net margin metrics against the industry ranges
// and stamps the range onto each metric. Metrics stay grey when the industry
// is unknown or carries no range for them.
func (d Dataset) Apply(metrics map[string]*calc.MetricResult, industry string) {
	ranges, ok := d.Ranges(industry)
	if !ok {
		log.Printf("[Benchmark] no benchmark data for industry %q", industry)
		return
	}
	for _, name := range []string{"gross_margin", "net_margin"} {
		m, found := metrics[name]
		if !found {
			continue
		}
		r, has := ranges[name]
		if !has {
			continue
		}
		m.BenchmarkLow = &r.Low
		m.BenchmarkHigh = &r.High
		m.Status = StatusFor(m.Current, r)
	}
}

// expenseKeys maps benchmark keys to the line item keywords that feed them.
var expenseKeys = []struct {
	key      string
	label    string
	keywords []string
}{
	{"cost_of_sales_pct", "Cost of Sales % of Revenue", []string{"cost of sales", "cost of goods", "direct costs", "purchases"}},
	{"labour_pct", "Labour % of Revenue", []string{"wages", "salaries", "superannuation", "labour", "staff"}},
	{"rent_pct", "Rent % of Revenue", []string{"rent", "lease"}},
	{"motor_vehicle_pct", "Motor Vehicle % of Revenue", []string{"motor vehicle", "fuel", "vehicle"}},
}

// Comparisons expresses the major expense categories as a percentage of
// revenue and bands each against the industry range. Categories with no
// matching line items report a nil company value with grey status.
func (d Dataset) Comparisons(r *statement.PeriodRecord, industry string) []calc.BenchmarkComparison {
	ranges, ok := d.Ranges(industry)
	if !ok || r == nil || r.Revenue == nil || *r.Revenue == 0 {
		return nil
	}

	var out []calc.BenchmarkComparison
	for _, ek := range expenseKeys {
		rng, has := ranges[ek.key]
		if !has {
			continue
		}
		var value *float64
		if ek.key == "cost_of_sales_pct" && r.COGS != nil {
			value = calc.Pct(r.COGS, r.Revenue)
		} else if sum := sumLineItems(r.LineItems, ek.keywords); sum != nil {
			value = calc.Pct(sum, r.Revenue)
		}

		cmp := calc.BenchmarkComparison{
			Name:         ek.key,
			Label:        ek.label,
			CompanyValue: value,
			Low:          rng.Low,
			High:         rng.High,
			Status:       StatusFor(value, rng),
		}
		cmp.Commentary = commentaryFor(cmp)
		out = append(out, cmp)
	}
	return out
}

func sumLineItems(items []statement.Component, keywords []string) *float64 {
	sum := 0.0
	any := false
	for _, item := range items {
		if statement.MatchesKeywords(item.Label, keywords) {
			sum += item.Value
			any = true
		}
	}
	if !any {
		return nil
	}
	return &sum
}

func commentaryFor(c calc.BenchmarkComparison) string {
	if c.CompanyValue == nil {
		return "No matching line items found in the statements"
	}
	switch {
	case *c.CompanyValue < c.Low:
		return fmt.Sprintf("%.1f%% sits below the industry range of %.1f-%.1f%%", *c.CompanyValue, c.Low, c.High)
	case *c.CompanyValue > c.High:
		return fmt.Sprintf("%.1f%% sits above the industry range of %.1f-%.1f%%", *c.CompanyValue, c.Low, c.High)
	default:
		return fmt.Sprintf("%.1f%% is within the industry range of %.1f-%.1f%%", *c.CompanyValue, c.Low, c.High)
	}
}
