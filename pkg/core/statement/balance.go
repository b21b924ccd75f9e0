package statement

import "log"

// =============================================================================
// BALANCE SHEET WALK - Section-tagged extraction for one period column
// =============================================================================

// InventorySource records where an inventory figure came from, or that none
// was acceptable. Ratio code treats "not_found" specially rather than
// assuming zero stock.
const (
	InventoryNotFound       = "not_found"
	InventoryFromBS         = "balance_sheet/current_assets"
	InventoryUserConfirmed  = "balance_sheet/current_assets (user confirmed)"
)

// BalanceSheetFields holds the raw extraction output for one Balance Sheet
// period column.
type BalanceSheetFields struct {
	Cash               *float64
	AccountsReceivable *float64
	Inventory          *float64
	InventorySource    string
	CurrentAssets      *float64
	NonCurrentAssets   *float64
	TotalAssets        *float64

	AccountsPayable       *float64
	CurrentLiabilities    *float64
	NonCurrentLiabilities *float64
	TotalLiabilities      *float64
	TotalDebt             *float64
	DebtComponents        []Component

	Equity *float64

	LineItems []Component
}

// ExtractBalanceSheet walks one value column of a Balance Sheet. Most fields
// resolve through the usual keyword precedence, but inventory is gated on the
// section tracker: an inventory label is only trusted when the walk is inside
// the current assets section. A closing stock adjustment on a P&L export or
// a mislabelled row elsewhere never populates it.
func ExtractBalanceSheet(t *Table, opts ExtractOptions) BalanceSheetFields {
	// Loan rows mention banks too, and every "non-current" label contains
	// the words "current assets" or "current liabilities".
	cashOpts := opts
	cashOpts.Exclude = []string{"loan", "overdraft", "borrow"}
	currentOpts := opts
	currentOpts.Exclude = []string{"non-current", "non current", "noncurrent"}

	f := BalanceSheetFields{
		Cash:               FindValue(t, CashKeywords, cashOpts),
		AccountsReceivable: FindValue(t, ReceivablesKeywords, opts),
		InventorySource:    InventoryNotFound,
		CurrentAssets:      ExtractField(t, nil, CurrentAssetsKeywords, SectionCurrentAssets, currentOpts),
		NonCurrentAssets:   FindValue(t, NonCurrentAssetsKeywords, opts),
		TotalAssets:        FindValue(t, TotalAssetsKeywords, opts),

		AccountsPayable:       FindValue(t, PayablesKeywords, opts),
		CurrentLiabilities:    FindValue(t, CurrentLiabilitiesKeywords, currentOpts),
		NonCurrentLiabilities: FindValue(t, NonCurrentLiabilitiesKeywords, opts),
		TotalLiabilities: FindValue(t, TotalLiabilitiesKeywords, opts),

		Equity: FindValue(t, EquityKeywords, opts),
	}
	f.TotalDebt, f.DebtComponents = SumAllMatching(t, DebtKeywords, opts)
	f.Inventory, f.InventorySource = extractInventory(t, opts)
	f.LineItems = collectLineItems(t, opts)
	return f
}

// extractInventory scans with the section tracker and only accepts a
// matching row tagged current_assets. Last match wins under the default
// policy, mirroring the field extractor.
func extractInventory(t *Table, opts ExtractOptions) (*float64, string) {
	tracker := NewSectionTracker()
	var found *float64
	for _, row := range t.Rows {
		v := ParseAmount(row.Cell(opts.Column))
		section := tracker.Advance(row.Label, v != nil)
		if v == nil || !MatchesKeywords(row.Label, InventoryKeywords) {
			continue
		}
		if section != SectionCurrentAssets {
			log.Printf("[BalanceSheet] ignoring %q outside current assets (section=%s)", row.Label, section)
			continue
		}
		if found == nil || opts.policy() == MatchLast {
			found = v
		}
	}
	if found == nil {
		return nil, InventoryNotFound
	}
	return found, InventoryFromBS
}
