package statement

import (
	"fmt"
	"log"
)

// =============================================================================
// CANONICAL RECORD BUILDER - Derivations and provenance per period
// =============================================================================

// PeriodRecord is the canonical snapshot of one financial period. Fields are
// pointers so an absent value stays distinguishable from zero. Built once
// per upload or confirmation and treated as immutable afterwards.
type PeriodRecord struct {
	Revenue           *float64 `json:"revenue"`
	COGS              *float64 `json:"cogs"`
	GrossProfit       *float64 `json:"gross_profit"`
	OperatingExpenses *float64 `json:"operating_expenses"`
	Depreciation      *float64 `json:"depreciation"`
	InterestExpense   *float64 `json:"interest_expense"`
	TaxExpense        *float64 `json:"tax_expense"`
	EBIT              *float64 `json:"ebit"`
	EBITDA            *float64 `json:"ebitda"`
	NetProfit         *float64 `json:"net_profit"`

	Cash               *float64 `json:"cash"`
	AccountsReceivable *float64 `json:"accounts_receivable"`
	Inventory          *float64 `json:"inventory"`
	CurrentAssets      *float64 `json:"current_assets"`
	NonCurrentAssets   *float64 `json:"non_current_assets"`
	TotalAssets        *float64 `json:"total_assets"`

	AccountsPayable       *float64 `json:"accounts_payable"`
	CurrentLiabilities    *float64 `json:"current_liabilities"`
	NonCurrentLiabilities *float64 `json:"non_current_liabilities"`
	TotalLiabilities      *float64 `json:"total_liabilities"`
	Equity                *float64 `json:"equity"`
	TotalDebt             *float64 `json:"total_debt"`

	OperatingCashFlow *float64 `json:"operating_cash_flow"`
	InvestingCashFlow *float64 `json:"investing_cash_flow"`
	FinancingCashFlow *float64 `json:"financing_cash_flow"`

	InventorySource string              `json:"inventory_source"`
	EBITComponents  map[string]*float64 `json:"ebit_components,omitempty"`
	DebtComponents  []Component         `json:"debt_components,omitempty"`
	AssumptionNotes []string            `json:"assumption_notes,omitempty"`
	LineItems       []Component         `json:"line_items,omitempty"`
}

// BuildPeriodRecord merges the three statement walks for one period and
// applies the derivation rules. Each derivation only fills a field that is
// still nil, except EBIT and EBITDA which are always recomputed from
// components because parsed EBIT lines are unreliable in small-entity
// statements.
func BuildPeriodRecord(pl ProfitLossFields, bs BalanceSheetFields, cf CashFlowFields) *PeriodRecord {
	r := &PeriodRecord{
		Revenue:           pl.Revenue,
		COGS:              pl.COGS,
		GrossProfit:       pl.GrossProfit,
		OperatingExpenses: pl.OpEx,
		Depreciation:      pl.Depreciation,
		InterestExpense:   pl.InterestExpense,
		TaxExpense:        pl.TaxExpense,
		NetProfit:         pl.NetProfit,

		Cash:               bs.Cash,
		AccountsReceivable: bs.AccountsReceivable,
		Inventory:          bs.Inventory,
		CurrentAssets:      bs.CurrentAssets,
		NonCurrentAssets:   bs.NonCurrentAssets,
		TotalAssets:        bs.TotalAssets,

		AccountsPayable:       bs.AccountsPayable,
		CurrentLiabilities:    bs.CurrentLiabilities,
		NonCurrentLiabilities: bs.NonCurrentLiabilities,
		TotalLiabilities:      bs.TotalLiabilities,
		Equity:                bs.Equity,
		TotalDebt:             bs.TotalDebt,
		DebtComponents:        bs.DebtComponents,

		OperatingCashFlow: cf.OperatingCF,
		InvestingCashFlow: cf.InvestingCF,
		FinancingCashFlow: cf.FinancingCF,

		InventorySource: bs.InventorySource,
	}
	if r.InventorySource == "" {
		r.InventorySource = InventoryNotFound
	}
	r.LineItems = append(r.LineItems, pl.LineItems...)
	r.LineItems = append(r.LineItems, bs.LineItems...)
	r.LineItems = append(r.LineItems, cf.LineItems...)

	r.derive()
	return r
}

// derive applies the canonical derivation rules in order.
func (r *PeriodRecord) derive() {
	if r.Inventory != nil && *r.Inventory < 0 {
		log.Printf("[Record] discarding negative inventory %.2f", *r.Inventory)
		r.Inventory = nil
		r.InventorySource = InventoryNotFound
	}

	if r.GrossProfit == nil && r.Revenue != nil && r.COGS != nil {
		gp := *r.Revenue - *r.COGS
		r.GrossProfit = &gp
	}

	r.computeEBIT()

	if r.CurrentAssets == nil {
		if sum, ok := sumPresent(r.Cash, r.AccountsReceivable, r.Inventory); ok {
			r.CurrentAssets = &sum
			r.AssumptionNotes = append(r.AssumptionNotes,
				"Current assets summed from identified components only; may understate if other current-asset lines exist")
		}
	}
	if r.TotalAssets == nil && r.CurrentAssets != nil && r.NonCurrentAssets != nil {
		ta := *r.CurrentAssets + *r.NonCurrentAssets
		r.TotalAssets = &ta
	}
	if r.TotalLiabilities == nil && r.CurrentLiabilities != nil && r.NonCurrentLiabilities != nil {
		tl := *r.CurrentLiabilities + *r.NonCurrentLiabilities
		r.TotalLiabilities = &tl
	}
}

// computeEBIT always rebuilds EBIT and EBITDA from net profit plus
// components, noting any component that defaulted to zero. A zero default is
// ambiguous between "no debt" and "not found", which is exactly why the
// note exists.
func (r *PeriodRecord) computeEBIT() {
	if r.NetProfit == nil {
		r.EBIT = nil
		r.EBITDA = nil
		return
	}
	tax, interest, dep := 0.0, 0.0, 0.0
	if r.TaxExpense != nil {
		tax = *r.TaxExpense
	} else {
		r.AssumptionNotes = append(r.AssumptionNotes, "Tax expense not found; EBIT assumes $0 tax")
	}
	if r.InterestExpense != nil {
		interest = *r.InterestExpense
	} else {
		r.AssumptionNotes = append(r.AssumptionNotes, "Interest expense not found; EBIT assumes $0 interest")
	}
	ebit := *r.NetProfit + tax + interest
	r.EBIT = &ebit

	if r.Depreciation != nil {
		dep = *r.Depreciation
	} else {
		r.AssumptionNotes = append(r.AssumptionNotes, "Depreciation not found; EBITDA may be understated")
	}
	ebitda := ebit + dep
	r.EBITDA = &ebitda

	r.EBITComponents = map[string]*float64{
		"net_profit":       r.NetProfit,
		"tax_expense":      r.TaxExpense,
		"interest_expense": r.InterestExpense,
		"depreciation":     r.Depreciation,
	}
}

// RecordFromFieldMap converts a confirmed field map, as edited by a human
// after PDF review, into a canonical record. Values arrive as strings or
// numbers; the amount parser handles both spellings.
func RecordFromFieldMap(fields map[string]interface{}) *PeriodRecord {
	get := func(name string) *float64 {
		raw, ok := fields[name]
		if !ok || raw == nil {
			return nil
		}
		switch v := raw.(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			return ParseAmount(v)
		default:
			return ParseAmount(fmt.Sprint(v))
		}
	}

	r := &PeriodRecord{
		Revenue:           get("revenue"),
		COGS:              get("cogs"),
		GrossProfit:       get("gross_profit"),
		OperatingExpenses: get("operating_expenses"),
		Depreciation:      get("depreciation"),
		InterestExpense:   get("interest_expense"),
		TaxExpense:        get("tax_expense"),
		NetProfit:         get("net_profit"),

		Cash:               get("cash"),
		AccountsReceivable: get("accounts_receivable"),
		Inventory:          get("inventory"),
		CurrentAssets:      get("current_assets"),
		NonCurrentAssets:   get("non_current_assets"),
		TotalAssets:        get("total_assets"),

		AccountsPayable:       get("accounts_payable"),
		CurrentLiabilities:    get("current_liabilities"),
		NonCurrentLiabilities: get("non_current_liabilities"),
		TotalLiabilities:      get("total_liabilities"),
		Equity:                get("equity"),
		TotalDebt:             get("total_debt"),

		OperatingCashFlow: get("operating_cash_flow"),
		InvestingCashFlow: get("investing_cash_flow"),
		FinancingCashFlow: get("financing_cash_flow"),

		InventorySource: InventoryNotFound,
	}
	if r.Inventory != nil {
		r.InventorySource = InventoryUserConfirmed
	}
	r.derive()
	return r
}

func sumPresent(vals ...*float64) (float64, bool) {
	sum := 0.0
	any := false
	for _, v := range vals {
		if v != nil {
			sum += *v
			any = true
		}
	}
	return sum, any
}
