package statement

// =============================================================================
// CASH FLOW WALK - Canonical field extraction for one period column
// =============================================================================

// CashFlowFields holds the raw extraction output for one Cash Flow period
// column. The statement is optional; a missing table simply leaves the
// cash-flow fields nil on the period record.
type CashFlowFields struct {
	OperatingCF *float64
	InvestingCF *float64
	FinancingCF *float64

	LineItems []Component
}

// ExtractCashFlow walks one value column of a Cash Flow statement.
func ExtractCashFlow(t *Table, opts ExtractOptions) CashFlowFields {
	return CashFlowFields{
		OperatingCF: FindValue(t, OperatingCFKeywords, opts),
		InvestingCF: FindValue(t, InvestingCFKeywords, opts),
		FinancingCF: FindValue(t, FinancingCFKeywords, opts),
		LineItems:   collectLineItems(t, opts),
	}
}
