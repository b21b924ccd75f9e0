package statement

import "strings"

// =============================================================================
// KEYWORD SETS - Canonical field and section vocabulary
// Tuned for small-business accounting exports (Xero-style labels).
// =============================================================================

// SubtotalKeywords mark rows that aggregate the detail lines above them.
var SubtotalKeywords = []string{
	"total", "subtotal", "gross profit", "net profit", "net loss", "net income",
	"net revenue", "net sales",
}

var RevenueKeywords = []string{
	"revenue", "income", "sales", "turnover", "fees", "service income",
	"trading income", "gross receipts", "total income", "total revenue",
	"grant income", "other income",
}

// RevenueTotalKeywords are explicit total-row patterns, checked before the
// broader keyword set so a section total beats a detail line.
var RevenueTotalKeywords = []string{
	"total revenue", "total income", "total sales", "total trading income",
	"total fees", "total service income", "total turnover", "gross income",
	"total receipts", "total gross receipts",
}

var COGSKeywords = []string{
	"cost of sales", "cost of goods", "cogs", "direct costs", "direct expenses",
	"purchases", "cost of revenue", "materials", "subcontractors",
	"direct labour", "direct wages", "opening stock", "closing stock",
	"freight in", "freight-in",
}

var COGSTotalKeywords = []string{
	"total cost of sales", "total cost of goods", "total cogs",
	"total direct costs", "total direct expenses", "total purchases",
	"total cost of revenue", "total materials",
}

var GrossProfitKeywords = []string{"gross profit", "gross margin"}

var OperatingExpensesKeywords = []string{
	"operating expenses", "expenses", "overheads", "administrative",
	"general expenses", "selling expenses", "total expenses", "total overheads",
}

var EBITKeywords = []string{"ebit", "operating profit", "profit from operations", "operating income"}
var EBITDAKeywords = []string{"ebitda"}

var NetProfitKeywords = []string{
	"net profit", "net income", "profit after tax", "profit before tax",
	"net loss", "net earnings", "profit for the year", "surplus",
}

// Multi-line component categories: these rarely have a single total row, so
// the aggregator sums every distinct matching line.
var DepreciationKeywords = []string{
	"depreciation", "amortisation", "amortization", "dep &",
	"depreciation and amortisation", "depreciation and amortization",
	"d&a", "right of use", "rou asset depreciation", "right-of-use",
	"amortisation of intangibles", "amortization of intangibles",
}

var InterestKeywords = []string{
	"interest expense", "finance charge", "bank charge", "loan interest",
	"interest on loan", "borrowing cost", "finance costs", "interest paid",
	"bank interest", "interest on overdraft", "hire purchase interest",
}

var TaxKeywords = []string{
	"income tax", "tax expense", "taxation", "company tax",
	"income tax expense", "provision for tax", "corporate tax", "tax payable",
	"fringe benefits tax", "fbt",
}

// Balance sheet vocabulary.
var CurrentAssetsKeywords = []string{"current assets", "total current assets"}
var CashKeywords = []string{"cash", "bank", "cash and cash equivalents", "cash at bank"}
var ReceivablesKeywords = []string{
	"accounts receivable", "debtors", "trade receivables", "receivables",
	"trade debtors", "sundry debtors",
}

// InventoryKeywords only apply inside the Balance Sheet current-assets
// section; a matching P&L line (closing stock) is a different animal.
var InventoryKeywords = []string{
	"inventory", "stock on hand", "closing stock", "finished goods",
	"raw materials", "work in progress", "wip", "trading stock", "stock",
}

var NonCurrentAssetsKeywords = []string{
	"non-current assets", "fixed assets", "total non-current assets",
	"plant and equipment", "property plant",
}
var TotalAssetsKeywords = []string{"total assets"}
var CurrentLiabilitiesKeywords = []string{"current liabilities", "total current liabilities"}
var PayablesKeywords = []string{
	"accounts payable", "creditors", "trade payables", "trade creditors", "sundry creditors",
}
var NonCurrentLiabilitiesKeywords = []string{
	"non-current liabilities", "long-term liabilities", "total non-current liabilities",
}
var TotalLiabilitiesKeywords = []string{"total liabilities"}
var EquityKeywords = []string{"equity", "total equity", "shareholders equity", "net assets", "owners equity"}
var DebtKeywords = []string{"loans", "borrowings", "bank loan", "term loan", "line of credit", "overdraft"}

// Cash flow vocabulary.
var OperatingCFKeywords = []string{
	"cash from operations", "operating cash flow", "net cash from operating",
	"cash generated from operations", "net cash provided by operating",
}
var InvestingCFKeywords = []string{
	"cash from investing", "investing activities", "net cash from investing",
}
var FinancingCFKeywords = []string{
	"cash from financing", "financing activities", "net cash from financing",
}

// MatchesKeywords reports whether any keyword occurs in the label
// (case-insensitive substring match).
func MatchesKeywords(label string, keywords []string) bool {
	t := strings.ToLower(strings.TrimSpace(label))
	for _, kw := range keywords {
		if strings.Contains(t, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// IsSubtotalRow reports whether the label indicates a subtotal, total, or net
// row.
func IsSubtotalRow(label string) bool {
	return MatchesKeywords(label, SubtotalKeywords)
}
