package ingest

import (
	"bytes"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"

	"finsight/pkg/core/statement"
)

// =============================================================================
// PDF READER - Free-text extraction for statements without table structure
// =============================================================================

// ExtractPDFText pulls the plain text out of a PDF. Scanned image PDFs
// yield little or no text; callers should treat a short result as "needs
// manual entry".
func ExtractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}

var statementBanners = map[statement.Type][]string{
	statement.TypeProfitLoss:   {"profit and loss", "profit & loss", "income statement", "statement of financial performance"},
	statement.TypeBalanceSheet: {"balance sheet", "statement of financial position"},
	statement.TypeCashFlow:     {"statement of cash flows", "cash flow statement"},
}

// textField ties a canonical field name to its line keywords and the
// statement it belongs to. Order matters: more specific phrases come first
// so "total revenue" is tried before "revenue".
type textField struct {
	name     string
	typ      statement.Type
	keywords []string
}

var textFields = []textField{
	{"revenue", statement.TypeProfitLoss, []string{"total revenue", "total income", "total sales", "revenue", "turnover"}},
	{"cogs", statement.TypeProfitLoss, []string{"total cost of sales", "cost of sales", "cost of goods sold"}},
	{"gross_profit", statement.TypeProfitLoss, []string{"gross profit"}},
	{"operating_expenses", statement.TypeProfitLoss, []string{"total operating expenses", "total expenses", "operating expenses"}},
	{"depreciation", statement.TypeProfitLoss, []string{"depreciation and amortisation", "depreciation"}},
	{"interest_expense", statement.TypeProfitLoss, []string{"interest expense", "finance costs", "interest paid"}},
	{"tax_expense", statement.TypeProfitLoss, []string{"income tax expense", "tax expense", "income tax"}},
	{"net_profit", statement.TypeProfitLoss, []string{"net profit after tax", "net profit", "net income", "net loss", "profit for the year"}},

	{"cash", statement.TypeBalanceSheet, []string{"cash and cash equivalents", "cash at bank", "cash on hand"}},
	{"accounts_receivable", statement.TypeBalanceSheet, []string{"trade receivables", "accounts receivable", "trade debtors"}},
	{"inventory", statement.TypeBalanceSheet, []string{"inventories", "inventory", "stock on hand"}},
	{"current_assets", statement.TypeBalanceSheet, []string{"total current assets"}},
	{"non_current_assets", statement.TypeBalanceSheet, []string{"total non-current assets", "total non current assets"}},
	{"total_assets", statement.TypeBalanceSheet, []string{"total assets"}},
	{"accounts_payable", statement.TypeBalanceSheet, []string{"trade payables", "accounts payable", "trade creditors"}},
	{"current_liabilities", statement.TypeBalanceSheet, []string{"total current liabilities"}},
	{"non_current_liabilities", statement.TypeBalanceSheet, []string{"total non-current liabilities", "total non current liabilities"}},
	{"total_liabilities", statement.TypeBalanceSheet, []string{"total liabilities"}},
	{"equity", statement.TypeBalanceSheet, []string{"total equity", "net assets"}},

	{"operating_cash_flow", statement.TypeCashFlow, []string{"net cash from operating activities", "cash flows from operating"}},
	{"investing_cash_flow", statement.TypeCashFlow, []string{"net cash used in investing activities", "cash flows from investing"}},
	{"financing_cash_flow", statement.TypeCashFlow, []string{"net cash from financing activities", "cash flows from financing"}},
}

// TextExtraction is the best-effort field map parsed from free PDF text.
// Every value is a candidate for human confirmation, never final.
type TextExtraction struct {
	Fields         map[string]float64 `json:"fields"`
	InventoryFound bool               `json:"inventory_found"`
	Notes          []string           `json:"notes"`
}

// ParseStatementText scans loose statement text line by line. Statement
// banners switch the active context so "total assets" on a P&L page is not
// trusted. Later candidates overwrite earlier ones, matching the subtotal
// position at the bottom of each section. Negative inventory is discarded;
// it is a P&L stock adjustment, not a balance.
func ParseStatementText(text string) *TextExtraction {
	out := &TextExtraction{Fields: make(map[string]float64)}
	active := statement.TypeProfitLoss

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if typ, ok := bannerType(lower); ok {
			active = typ
			continue
		}

		value := statement.FindAmountInLine(line)
		if value == nil {
			continue
		}
		for _, tf := range textFields {
			if tf.typ != active {
				continue
			}
			if matchesAny(lower, tf.keywords) {
				out.Fields[tf.name] = *value
				break
			}
		}
	}

	if inv, ok := out.Fields["inventory"]; ok {
		if inv < 0 {
			delete(out.Fields, "inventory")
			out.Notes = append(out.Notes, fmt.Sprintf("Discarded negative inventory %.0f (likely a stock adjustment line)", inv))
		} else {
			out.InventoryFound = true
		}
	}
	log.Printf("[Ingest] text parse found %d fields", len(out.Fields))
	return out
}

func bannerType(lower string) (statement.Type, bool) {
	for typ, banners := range statementBanners {
		for _, b := range banners {
			if strings.Contains(lower, b) {
				return typ, true
			}
		}
	}
	return "", false
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
