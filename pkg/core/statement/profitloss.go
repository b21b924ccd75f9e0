package statement

import "log"

// =============================================================================
// PROFIT & LOSS WALK - Canonical field extraction for one period column
// =============================================================================

// ProfitLossFields holds the raw extraction output for one P&L period before
// the record builder applies its derivations.
type ProfitLossFields struct {
	Revenue     *float64
	COGS        *float64
	GrossProfit *float64
	OpEx        *float64
	NetProfit   *float64

	InterestExpense *float64
	TaxExpense      *float64
	Depreciation    *float64

	InterestComponents     []Component
	TaxComponents          []Component
	DepreciationComponents []Component

	LineItems []Component
}

// ExtractProfitLoss walks one value column of a P&L table. Revenue, COGS and
// operating expenses resolve through the subtotal preference with a section
// summation fallback; interest, tax and depreciation aggregate every matching
// line because small entities rarely print a single total for them.
func ExtractProfitLoss(t *Table, opts ExtractOptions) ProfitLossFields {
	revOpts := opts
	revOpts.Exclude = []string{"cost of", "expense"}
	f := ProfitLossFields{
		Revenue:     ExtractField(t, RevenueTotalKeywords, RevenueKeywords, SectionRevenue, revOpts),
		COGS:        ExtractField(t, COGSTotalKeywords, COGSKeywords, SectionCOGS, opts),
		GrossProfit: FindValue(t, GrossProfitKeywords, opts),
		OpEx:        ExtractField(t, nil, OperatingExpensesKeywords, SectionOperatingExpenses, opts),
		NetProfit:   FindValue(t, NetProfitKeywords, opts),
	}
	f.InterestExpense, f.InterestComponents = SumAllMatching(t, InterestKeywords, opts)
	f.TaxExpense, f.TaxComponents = SumAllMatching(t, TaxKeywords, opts)
	f.Depreciation, f.DepreciationComponents = SumAllMatching(t, DepreciationKeywords, opts)
	f.LineItems = collectLineItems(t, opts)

	if f.Revenue == nil {
		log.Printf("[ProfitLoss] no revenue found in column %d - margins will be unavailable", opts.Column)
	}
	return f
}

// collectLineItems keeps every valued non-subtotal row for audit display.
func collectLineItems(t *Table, opts ExtractOptions) []Component {
	var items []Component
	for _, row := range t.Rows {
		if IsSubtotalRow(row.Label) {
			continue
		}
		if v := ParseAmount(row.Cell(opts.Column)); v != nil {
			items = append(items, Component{Label: row.Label, Value: *v})
		}
	}
	return items
}
