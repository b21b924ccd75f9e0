package ingest

import (
	"finsight/pkg/core/statement"
)

// =============================================================================
// CONFIRMATION LAYER - Human review of PDF-extracted fields
// =============================================================================

// FieldDef describes one confirmable canonical field for review display.
type FieldDef struct {
	Name      string         `json:"name"`
	Label     string         `json:"label"`
	Statement statement.Type `json:"statement"`
	Required  bool           `json:"required"`
}

// ConfirmableFields lists every canonical field in review display order.
var ConfirmableFields = []FieldDef{
	{"revenue", "Revenue", statement.TypeProfitLoss, true},
	{"cogs", "Cost of Sales", statement.TypeProfitLoss, false},
	{"gross_profit", "Gross Profit", statement.TypeProfitLoss, false},
	{"operating_expenses", "Operating Expenses", statement.TypeProfitLoss, true},
	{"depreciation", "Depreciation & Amortisation", statement.TypeProfitLoss, false},
	{"interest_expense", "Interest Expense", statement.TypeProfitLoss, false},
	{"tax_expense", "Tax Expense", statement.TypeProfitLoss, false},
	{"net_profit", "Net Profit", statement.TypeProfitLoss, true},

	{"cash", "Cash & Equivalents", statement.TypeBalanceSheet, false},
	{"accounts_receivable", "Accounts Receivable", statement.TypeBalanceSheet, false},
	{"inventory", "Inventory", statement.TypeBalanceSheet, false},
	{"current_assets", "Total Current Assets", statement.TypeBalanceSheet, false},
	{"non_current_assets", "Total Non-Current Assets", statement.TypeBalanceSheet, false},
	{"total_assets", "Total Assets", statement.TypeBalanceSheet, false},
	{"accounts_payable", "Accounts Payable", statement.TypeBalanceSheet, false},
	{"current_liabilities", "Total Current Liabilities", statement.TypeBalanceSheet, false},
	{"non_current_liabilities", "Total Non-Current Liabilities", statement.TypeBalanceSheet, false},
	{"total_liabilities", "Total Liabilities", statement.TypeBalanceSheet, false},
	{"equity", "Total Equity", statement.TypeBalanceSheet, false},
	{"total_debt", "Total Debt", statement.TypeBalanceSheet, false},

	{"operating_cash_flow", "Operating Cash Flow", statement.TypeCashFlow, false},
	{"investing_cash_flow", "Investing Cash Flow", statement.TypeCashFlow, false},
	{"financing_cash_flow", "Financing Cash Flow", statement.TypeCashFlow, false},
}

// ConfirmationTemplate pre-fills the review form with the text extraction's
// candidate values. Fields the parse missed appear with a nil value so the
// reviewer sees what is still unknown.
func ConfirmationTemplate(ex *TextExtraction) map[string]*float64 {
	tmpl := make(map[string]*float64, len(ConfirmableFields))
	for _, def := range ConfirmableFields {
		if ex != nil {
			if v, ok := ex.Fields[def.Name]; ok {
				val := v
				tmpl[def.Name] = &val
				continue
			}
		}
		tmpl[def.Name] = nil
	}
	return tmpl
}

// BuildConfirmedRecord converts the reviewer-approved field map into a
// canonical record. Strings and numbers are both accepted; the record
// builder applies the usual derivations on top.
func BuildConfirmedRecord(confirmed map[string]interface{}) *statement.PeriodRecord {
	return statement.RecordFromFieldMap(confirmed)
}
