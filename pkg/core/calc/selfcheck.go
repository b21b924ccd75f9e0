package calc

import (
	"fmt"
	"math"
	"strings"

	"finsight/pkg/core/statement"
)

// =============================================================================
// SELF-CHECK ENGINE - Internal consistency verification per period
// =============================================================================

// RunSelfChecks evaluates every internal consistency check over the current
// record and, where a check compares periods, the prior record. Checks that
// need prior-year data are skipped outright when no prior record exists;
// within an evaluated check, missing fields always surface as warn with the
// fields named.
func RunSelfChecks(current, prior *statement.PeriodRecord) []SelfCheckResult {
	if current == nil {
		current = &statement.PeriodRecord{}
	}
	checks := []SelfCheckResult{
		checkProfitLossBalance(current),
		checkGrossProfit(current),
		checkBalanceSheetEquation(current),
		checkCurrentAssetsSubtotal(current),
	}
	if prior != nil {
		if c, ok := checkEquityMovement(current, prior); ok {
			checks = append(checks, c)
		}
		if c, ok := checkRevenueReasonableness(current, prior); ok {
			checks = append(checks, c)
		}
	}
	return checks
}

// HasFails reports whether any check failed.
func HasFails(checks []SelfCheckResult) bool {
	for _, c := range checks {
		if c.Status == CheckFail {
			return true
		}
	}
	return false
}

// HasWarns reports whether any check warned.
func HasWarns(checks []SelfCheckResult) bool {
	for _, c := range checks {
		if c.Status == CheckWarn {
			return true
		}
	}
	return false
}

func missingWarn(name, description, meaning string, missing []string) SelfCheckResult {
	return SelfCheckResult{
		CheckName:   name,
		Description: description,
		Status:      CheckWarn,
		Detail:      "Cannot evaluate, missing: " + strings.Join(missing, ", "),
		WhatItMeans: meaning,
	}
}

func missingFields(pairs map[string]*float64, order []string) []string {
	var out []string
	for _, name := range order {
		if pairs[name] == nil {
			out = append(out, name)
		}
	}
	return out
}

// checkProfitLossBalance verifies revenue - cogs - opex - interest - tax
// against the reported net profit. Interest and tax default to zero when
// absent because many small entities report neither.
func checkProfitLossBalance(r *statement.PeriodRecord) SelfCheckResult {
	const name = "pl_balance"
	const desc = "P&L arithmetic: revenue - costs reconciles to net profit"
	const meaning = "If this fails, a P&L line was misread or a section total was missed during extraction."

	if miss := missingFields(map[string]*float64{
		"revenue": r.Revenue, "cogs": r.COGS, "operating_expenses": r.OperatingExpenses, "net_profit": r.NetProfit,
	}, []string{"revenue", "cogs", "operating_expenses", "net_profit"}); len(miss) > 0 {
		return missingWarn(name, desc, meaning, miss)
	}

	interest, tax := 0.0, 0.0
	if r.InterestExpense != nil {
		interest = *r.InterestExpense
	}
	if r.TaxExpense != nil {
		tax = *r.TaxExpense
	}
	computed := *r.Revenue - *r.COGS - *r.OperatingExpenses - interest - tax
	diff := math.Abs(computed - *r.NetProfit)
	tolerance := math.Max(1, 0.001*math.Abs(*r.NetProfit))

	res := SelfCheckResult{
		CheckName:   name,
		Description: desc,
		WhatItMeans: meaning,
		Values: map[string]float64{
			"computed_net_profit": computed,
			"reported_net_profit": *r.NetProfit,
			"difference":          diff,
		},
	}
	switch {
	case diff <= 1:
		res.Status = CheckPass
		res.Detail = "Computed net profit matches the reported figure"
	case diff <= tolerance:
		res.Status = CheckWarn
		res.Detail = fmt.Sprintf("Computed net profit differs by $%.0f (within 0.1%% tolerance)", diff)
	default:
		res.Status = CheckFail
		res.Detail = fmt.Sprintf("Computed net profit $%.0f differs from reported $%.0f by $%.0f", computed, *r.NetProfit, diff)
	}
	return res
}

// checkGrossProfit verifies revenue - cogs against the gross profit figure.
func checkGrossProfit(r *statement.PeriodRecord) SelfCheckResult {
	const name = "gross_profit"
	const desc = "Gross profit equals revenue minus cost of sales"
	const meaning = "A mismatch means the gross profit line and its components disagree in the source statement."

	if miss := missingFields(map[string]*float64{
		"revenue": r.Revenue, "cogs": r.COGS, "gross_profit": r.GrossProfit,
	}, []string{"revenue", "cogs", "gross_profit"}); len(miss) > 0 {
		return missingWarn(name, desc, meaning, miss)
	}

	computed := *r.Revenue - *r.COGS
	diff := math.Abs(computed - *r.GrossProfit)
	res := SelfCheckResult{
		CheckName:   name,
		Description: desc,
		WhatItMeans: meaning,
		Values: map[string]float64{
			"computed_gross_profit": computed,
			"reported_gross_profit": *r.GrossProfit,
			"difference":            diff,
		},
	}
	if diff <= 1 {
		res.Status = CheckPass
		res.Detail = "Gross profit reconciles"
	} else {
		res.Status = CheckFail
		res.Detail = fmt.Sprintf("Revenue minus COGS gives $%.0f but gross profit reads $%.0f", computed, *r.GrossProfit)
	}
	return res
}

// checkBalanceSheetEquation verifies assets = liabilities + equity.
func checkBalanceSheetEquation(r *statement.PeriodRecord) SelfCheckResult {
	const name = "balance_sheet_equation"
	const desc = "Total assets equal total liabilities plus equity"
	const meaning = "The accounting equation must hold; a breach means a balance sheet section was misread."

	if miss := missingFields(map[string]*float64{
		"total_assets": r.TotalAssets, "total_liabilities": r.TotalLiabilities, "equity": r.Equity,
	}, []string{"total_assets", "total_liabilities", "equity"}); len(miss) > 0 {
		return missingWarn(name, desc, meaning, miss)
	}

	computed := *r.TotalLiabilities + *r.Equity
	diff := math.Abs(computed - *r.TotalAssets)
	tolerance := 0.005 * math.Abs(*r.TotalAssets)

	res := SelfCheckResult{
		CheckName:   name,
		Description: desc,
		WhatItMeans: meaning,
		Values: map[string]float64{
			"liabilities_plus_equity": computed,
			"total_assets":            *r.TotalAssets,
			"difference":              diff,
		},
	}
	switch {
	case diff <= 1:
		res.Status = CheckPass
		res.Detail = "Accounting equation holds"
	case diff <= tolerance:
		res.Status = CheckWarn
		res.Detail = fmt.Sprintf("Equation off by $%.0f (within 0.5%% of total assets)", diff)
	default:
		res.Status = CheckFail
		res.Detail = fmt.Sprintf("Liabilities plus equity $%.0f does not equal total assets $%.0f (off by $%.0f)", computed, *r.TotalAssets, diff)
	}
	return res
}

// checkEquityMovement verifies prior equity plus net profit roughly equals
// current equity. Always warn rather than fail; dividends and capital
// injections legitimately break the identity.
func checkEquityMovement(current, prior *statement.PeriodRecord) (SelfCheckResult, bool) {
	const name = "equity_movement"
	const desc = "Prior equity plus net profit reconciles to current equity"
	const meaning = "A gap usually reflects dividends or capital movements rather than an extraction error."

	if prior.Equity == nil {
		// No prior equity at all: prerequisite data absent, skip silently.
		return SelfCheckResult{}, false
	}
	if miss := missingFields(map[string]*float64{
		"equity": current.Equity, "net_profit": current.NetProfit,
	}, []string{"equity", "net_profit"}); len(miss) > 0 {
		return missingWarn(name, desc, meaning, miss), true
	}

	expected := *prior.Equity + *current.NetProfit
	diff := math.Abs(expected - *current.Equity)
	res := SelfCheckResult{
		CheckName:   name,
		Description: desc,
		WhatItMeans: meaning,
		Values: map[string]float64{
			"expected_equity": expected,
			"current_equity":  *current.Equity,
			"difference":      diff,
		},
	}
	if diff <= 1 {
		res.Status = CheckPass
		res.Detail = "Equity movement explained by retained profit"
	} else {
		res.Status = CheckWarn
		res.Detail = fmt.Sprintf("Equity moved by $%.0f more than retained profit explains (dividends or capital movements likely)", diff)
	}
	return res, true
}

// checkCurrentAssetsSubtotal verifies the identified current asset
// components do not exceed the stated total. Components summing below the
// total is expected because not every line is recognised.
func checkCurrentAssetsSubtotal(r *statement.PeriodRecord) SelfCheckResult {
	const name = "current_assets_subtotal"
	const desc = "Identified current asset components fit within the stated total"
	const meaning = "Components exceeding the total suggest a value was double counted or misattributed."

	if miss := missingFields(map[string]*float64{
		"current_assets": r.CurrentAssets,
	}, []string{"current_assets"}); len(miss) > 0 {
		return missingWarn(name, desc, meaning, miss)
	}

	sum := 0.0
	for _, v := range []*float64{r.Cash, r.AccountsReceivable, r.Inventory} {
		if v != nil {
			sum += *v
		}
	}
	res := SelfCheckResult{
		CheckName:   name,
		Description: desc,
		WhatItMeans: meaning,
		Values: map[string]float64{
			"component_sum":  sum,
			"current_assets": *r.CurrentAssets,
		},
	}
	if sum <= *r.CurrentAssets+1 {
		res.Status = CheckPass
		res.Detail = "Component sum within the stated current assets total"
	} else {
		res.Status = CheckWarn
		res.Detail = fmt.Sprintf("Cash, receivables and inventory sum to $%.0f, above the stated total $%.0f", sum, *r.CurrentAssets)
	}
	return res
}

// checkRevenueReasonableness flags a year-over-year revenue swing beyond
// 50 percent either way. Large swings are possible but worth a second look.
func checkRevenueReasonableness(current, prior *statement.PeriodRecord) (SelfCheckResult, bool) {
	const name = "revenue_reasonableness"
	const desc = "Year-over-year revenue change within a plausible band"
	const meaning = "A swing beyond 50% either way may be real, but often signals a column or unit mix-up."

	if prior.Revenue == nil {
		return SelfCheckResult{}, false
	}
	if current.Revenue == nil {
		return missingWarn(name, desc, meaning, []string{"revenue"}), true
	}
	change := PctChange(current.Revenue, prior.Revenue)
	if change == nil {
		return missingWarn(name, desc, meaning, []string{"revenue"}), true
	}

	res := SelfCheckResult{
		CheckName:   name,
		Description: desc,
		WhatItMeans: meaning,
		Values: map[string]float64{
			"current_revenue": *current.Revenue,
			"prior_revenue":   *prior.Revenue,
			"change_pct":      *change,
		},
	}
	if math.Abs(*change) <= 50 {
		res.Status = CheckPass
		res.Detail = fmt.Sprintf("Revenue changed %.1f%% year over year", *change)
	} else {
		res.Status = CheckWarn
		res.Detail = fmt.Sprintf("Revenue changed %.1f%% year over year, beyond the 50%% reasonableness band", *change)
	}
	return res, true
}
