package calc

import (
	"fmt"

	"finsight/pkg/core/statement"
)

// =============================================================================
// METRICS ENGINE - Ratio computation with traffic lights across periods
// =============================================================================

// MetricOrder fixes the display order of every metric the engine produces.
var MetricOrder = []string{
	"current_ratio", "quick_ratio", "days_cash_on_hand",
	"gross_margin", "net_margin", "ebit_margin", "ebitda_margin", "roa", "roe",
	"debtor_days", "creditor_days", "inventory_days", "cash_conversion_cycle",
	"debt_to_equity", "interest_coverage", "net_debt",
	"revenue_growth", "gross_profit_growth", "expense_growth", "net_profit_growth",
}

const daysPerYear = 365.0

// ComputeMetrics evaluates every metric over up to three periods. Nil prior
// records are treated as empty so each metric simply reports nil for the
// periods it cannot see. Growth metrics are omitted entirely when no prior
// record exists at all.
func ComputeMetrics(current, prior, prior2 *statement.PeriodRecord) map[string]*MetricResult {
	hadPrior := prior != nil
	if current == nil {
		current = &statement.PeriodRecord{}
	}
	if prior == nil {
		prior = &statement.PeriodRecord{}
	}
	if prior2 == nil {
		prior2 = &statement.PeriodRecord{}
	}

	m := make(map[string]*MetricResult)
	e := engine{current: current, prior: prior, prior2: prior2, out: m}

	e.liquidity()
	e.profitability()
	e.efficiency()
	e.leverage()
	if hadPrior {
		e.growth()
	}
	return m
}

type engine struct {
	current, prior, prior2 *statement.PeriodRecord
	out                    map[string]*MetricResult
}

type periodFn func(r *statement.PeriodRecord) *float64

// add evaluates fn against each period and stores the metric. The caller
// assigns status afterwards; higherIsBetter only drives the trend arrow.
func (e *engine) add(name, label string, cat Category, format FormatType, higherIsBetter bool, fn periodFn) *MetricResult {
	m := &MetricResult{
		Name:       name,
		Label:      label,
		Category:   cat,
		FormatType: format,
		Status:     StatusGrey,
		Current:    fn(e.current),
		Prior:      fn(e.prior),
		Prior2:     fn(e.prior2),
	}
	m.Trend = TrendOf(m.Current, m.Prior, higherIsBetter)
	e.out[name] = m
	return m
}

// -----------------------------------------------------------------------------
// Liquidity

func (e *engine) liquidity() {
	cr := e.add("current_ratio", "Current Ratio", CategoryLiquidity, FormatRatio, true,
		func(r *statement.PeriodRecord) *float64 {
			return SafeDiv(r.CurrentAssets, r.CurrentLiabilities)
		})
	cr.Status = trafficHigher(cr.Current, 2.0, 1.0)

	qr := e.add("quick_ratio", "Quick Ratio", CategoryLiquidity, FormatRatio, true,
		func(r *statement.PeriodRecord) *float64 {
			if r.InventorySource == statement.InventoryNotFound || r.Inventory == nil {
				return SafeDiv(r.CurrentAssets, r.CurrentLiabilities)
			}
			return SafeDiv(subPtr(r.CurrentAssets, r.Inventory), r.CurrentLiabilities)
		})
	qr.Status = trafficHigher(qr.Current, 1.0, 0.5)
	if e.current.InventorySource == statement.InventoryNotFound {
		qr.Notes = "Inventory not found; quick ratio equals current ratio (inventory treated as zero)"
	}

	dc := e.add("days_cash_on_hand", "Days Cash on Hand", CategoryLiquidity, FormatDays, true,
		func(r *statement.PeriodRecord) *float64 {
			daily := SafeDiv(r.OperatingExpenses, ptr(daysPerYear))
			return SafeDiv(r.Cash, daily)
		})
	dc.Status = trafficHigher(dc.Current, 30, 15)
}

// -----------------------------------------------------------------------------
// Profitability

func (e *engine) profitability() {
	// Margin benchmarks are industry-specific, so gross and net margin stay
	// grey until the benchmark comparator applies a range.
	e.add("gross_margin", "Gross Profit Margin", CategoryProfitability, FormatPercentage, true,
		func(r *statement.PeriodRecord) *float64 { return Pct(r.GrossProfit, r.Revenue) })
	e.add("net_margin", "Net Profit Margin", CategoryProfitability, FormatPercentage, true,
		func(r *statement.PeriodRecord) *float64 { return Pct(r.NetProfit, r.Revenue) })

	em := e.add("ebit_margin", "EBIT Margin", CategoryProfitability, FormatPercentage, true,
		func(r *statement.PeriodRecord) *float64 { return Pct(r.EBIT, r.Revenue) })
	em.Status = trafficHigher(em.Current, 10, 3)
	em.Components = e.current.EBITComponents

	ed := e.add("ebitda_margin", "EBITDA Margin", CategoryProfitability, FormatPercentage, true,
		func(r *statement.PeriodRecord) *float64 { return Pct(r.EBITDA, r.Revenue) })
	ed.Status = trafficHigher(ed.Current, 15, 5)

	roa := e.add("roa", "Return on Assets", CategoryProfitability, FormatPercentage, true,
		func(r *statement.PeriodRecord) *float64 { return Pct(r.NetProfit, r.TotalAssets) })
	roa.Status = trafficHigher(roa.Current, 10, 3)

	roe := e.add("roe", "Return on Equity", CategoryProfitability, FormatPercentage, true,
		func(r *statement.PeriodRecord) *float64 { return Pct(r.NetProfit, r.Equity) })
	roe.Status = trafficHigher(roe.Current, 15, 5)
}

// -----------------------------------------------------------------------------
// Efficiency

func (e *engine) efficiency() {
	dd := e.add("debtor_days", "Debtor Days", CategoryEfficiency, FormatDays, false,
		func(r *statement.PeriodRecord) *float64 {
			v := SafeDiv(r.AccountsReceivable, r.Revenue)
			if v == nil {
				return nil
			}
			return ptr(*v * daysPerYear)
		})
	dd.Status = trafficLower(dd.Current, 30, 60)

	cd := e.add("creditor_days", "Creditor Days", CategoryEfficiency, FormatDays, true,
		func(r *statement.PeriodRecord) *float64 {
			// Service businesses often report no COGS; purchases then sit in
			// operating expenses, so revenue is the nearest denominator.
			denom := r.COGS
			if denom == nil {
				denom = r.Revenue
			}
			v := SafeDiv(r.AccountsPayable, denom)
			if v == nil {
				return nil
			}
			return ptr(*v * daysPerYear)
		})
	// Informational: no threshold grading, but short creditor terms against
	// long debtor terms squeeze working capital.
	if cd.Current != nil && dd.Current != nil && *cd.Current < *dd.Current {
		cd.Notes = "Creditor days below debtor days: paying suppliers faster than customers pay you (working capital pressure)"
	}

	id := e.add("inventory_days", "Inventory Days", CategoryEfficiency, FormatDays, false,
		func(r *statement.PeriodRecord) *float64 {
			if r.InventorySource == statement.InventoryNotFound {
				return nil
			}
			v := SafeDiv(r.Inventory, r.COGS)
			if v == nil {
				return nil
			}
			return ptr(*v * daysPerYear)
		})
	id.Status = trafficLower(id.Current, 45, 90)
	if e.current.InventorySource == statement.InventoryNotFound {
		id.Status = StatusGrey
		id.Notes = "Inventory not found on the balance sheet; inventory days not computed"
	}

	ccc := e.add("cash_conversion_cycle", "Cash Conversion Cycle", CategoryEfficiency, FormatDays, false,
		func(r *statement.PeriodRecord) *float64 { return nil })
	ccc.Current = cccFrom(dd.Current, id.Current, cd.Current)
	ccc.Prior = cccFrom(dd.Prior, id.Prior, cd.Prior)
	ccc.Prior2 = cccFrom(dd.Prior2, id.Prior2, cd.Prior2)
	ccc.Trend = TrendOf(ccc.Current, ccc.Prior, false)
	ccc.Status = trafficLower(ccc.Current, 30, 60)
}

func cccFrom(debtor, inventory, creditor *float64) *float64 {
	if debtor == nil || inventory == nil || creditor == nil {
		return nil
	}
	return ptr(*debtor + *inventory - *creditor)
}

// -----------------------------------------------------------------------------
// Leverage

func (e *engine) leverage() {
	de := e.add("debt_to_equity", "Debt to Equity", CategoryLeverage, FormatRatio, false,
		func(r *statement.PeriodRecord) *float64 {
			return SafeDiv(r.TotalLiabilities, r.Equity)
		})
	de.Status = trafficLower(de.Current, 1.0, 2.0)

	ic := e.add("interest_coverage", "Interest Coverage", CategoryLeverage, FormatRatio, true,
		func(r *statement.PeriodRecord) *float64 {
			return SafeDiv(r.EBIT, r.InterestExpense)
		})
	ic.Status = trafficHigher(ic.Current, 3.0, 1.5)
	if ic.Current == nil && e.current.EBIT != nil && e.current.InterestExpense == nil {
		ic.Notes = "No interest expense found; the business may carry no debt"
	}

	nd := e.add("net_debt", "Net Debt", CategoryLeverage, FormatCurrency, false,
		func(r *statement.PeriodRecord) *float64 {
			return subPtr(r.TotalDebt, r.Cash)
		})
	if nd.Current != nil && *nd.Current < 0 {
		nd.Notes = "Cash exceeds total debt"
	}
}

// -----------------------------------------------------------------------------
// Growth

func (e *engine) growth() {
	grow := func(name, label string, higherIsBetter bool, fn periodFn) *MetricResult {
		m := &MetricResult{
			Name:       name,
			Label:      label,
			Category:   CategoryGrowth,
			FormatType: FormatPercentage,
			Status:     StatusGrey,
			Current:    PctChange(fn(e.current), fn(e.prior)),
			Prior:      PctChange(fn(e.prior), fn(e.prior2)),
		}
		m.Trend = TrendOf(m.Current, m.Prior, higherIsBetter)
		e.out[name] = m
		return m
	}

	rg := grow("revenue_growth", "Revenue Growth", true,
		func(r *statement.PeriodRecord) *float64 { return r.Revenue })
	rg.Status = trafficHigher(rg.Current, 10, 0)

	gg := grow("gross_profit_growth", "Gross Profit Growth", true,
		func(r *statement.PeriodRecord) *float64 { return r.GrossProfit })
	gg.Status = trafficHigher(gg.Current, 10, 0)

	eg := grow("expense_growth", "Expense Growth", false,
		func(r *statement.PeriodRecord) *float64 { return r.OperatingExpenses })
	if eg.Current != nil && rg.Current != nil {
		switch {
		case *eg.Current > *rg.Current+2:
			eg.Status = StatusRed
			eg.Notes = fmt.Sprintf("Expenses growing faster than revenue (%.1f%% vs %.1f%%)", *eg.Current, *rg.Current)
		case *eg.Current <= *rg.Current:
			eg.Status = StatusGreen
		default:
			eg.Status = StatusAmber
		}
	}

	ng := grow("net_profit_growth", "Net Profit Growth", true,
		func(r *statement.PeriodRecord) *float64 { return r.NetProfit })
	ng.Status = trafficHigher(ng.Current, 10, 0)
}
