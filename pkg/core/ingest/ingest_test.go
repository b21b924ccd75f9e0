package ingest

import (
	"strings"
	"testing"

	"finsight/pkg/core/statement"
)

const plCSV = "Demo Trading Pty Ltd\nProfit and Loss\n" +
	"Account,FY2024,FY2023\n" +
	"Income,,\n" +
	"Product Sales,\"2,849,000\",\"2,599,000\"\n" +
	"Consulting Income,\"1,000\",\"1,000\"\n" +
	"Total Income,\"2,850,000\",\"2,600,000\"\n" +
	"Cost of Sales,,\n" +
	"Total Cost of Sales,\"1,200,000\",\"1,080,000\"\n"

func TestReadCSVSkipsTitleRows(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(plCSV), statement.TypeProfitLoss)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if tbl.Headers[0] != "Account" {
		t.Fatalf("header row not detected, got %v", tbl.Headers)
	}
	if len(tbl.Rows) != 6 {
		t.Fatalf("got %d rows, want 6", len(tbl.Rows))
	}
	if tbl.Rows[1].Label != "Product Sales" || tbl.Rows[1].Cell(0) != "2,849,000" {
		t.Fatalf("unexpected row: %+v", tbl.Rows[1])
	}
}

func TestReadCSVStripsBOM(t *testing.T) {
	withBOM := "\xEF\xBB\xBF" + plCSV
	tbl, err := ReadCSV(strings.NewReader(withBOM), statement.TypeProfitLoss)
	if err != nil {
		t.Fatalf("ReadCSV with BOM: %v", err)
	}
	if tbl.Headers[0] != "Account" {
		t.Fatalf("BOM broke header detection: %v", tbl.Headers)
	}
}

func TestReadCSVEndToEndExtraction(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(plCSV), statement.TypeProfitLoss)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	cls := statement.ClassifyColumns(tbl)
	if len(cls.ValueColumns) != 2 || cls.ValueColumns[0] != 0 {
		t.Fatalf("FY2024 should order first, got %v", cls.ValueColumns)
	}
	pl := statement.ExtractProfitLoss(tbl, statement.ExtractOptions{Column: cls.ValueColumns[0]})
	if pl.Revenue == nil || *pl.Revenue != 2850000 {
		t.Fatalf("revenue = %v, want 2850000", pl.Revenue)
	}
	if pl.COGS == nil || *pl.COGS != 1200000 {
		t.Fatalf("cogs = %v, want 1200000", pl.COGS)
	}
}

const statementText = `
Demo Trading Pty Ltd
Profit and Loss Statement
For the year ended 30 June 2024

Total Revenue 2,850,000
Total Cost of Sales 1,200,000
Gross Profit 1,650,000
Total Operating Expenses 1,325,000
Interest Expense 25,000
Income Tax Expense 60,000
Closing Stock (500)
Net Profit 240,000

Balance Sheet
As at 30 June 2024

Cash at Bank 155,000
Trade Receivables 380,000
Inventory 220,000
Total Current Assets 755,000
Total Assets 1,300,000
Total Liabilities 700,000
Total Equity 600,000
`

func TestParseStatementText(t *testing.T) {
	ex := ParseStatementText(statementText)

	want := map[string]float64{
		"revenue":             2850000,
		"cogs":                1200000,
		"gross_profit":        1650000,
		"operating_expenses":  1325000,
		"interest_expense":    25000,
		"tax_expense":         60000,
		"net_profit":          240000,
		"cash":                155000,
		"accounts_receivable": 380000,
		"inventory":           220000,
		"current_assets":      755000,
		"total_assets":        1300000,
		"total_liabilities":   700000,
		"equity":              600000,
	}
	for name, v := range want {
		if got, ok := ex.Fields[name]; !ok || got != v {
			t.Errorf("%s = %v (found %v), want %v", name, got, ok, v)
		}
	}
	if !ex.InventoryFound {
		t.Error("inventory should be marked found")
	}
}

func TestParseStatementTextBannerGating(t *testing.T) {
	// "Total Assets" appearing on P&L text must not populate the field.
	ex := ParseStatementText("Profit and Loss\nTotal Assets 999,999\nTotal Revenue 100,000\n")
	if _, ok := ex.Fields["total_assets"]; ok {
		t.Error("balance sheet field captured outside its statement")
	}
	if ex.Fields["revenue"] != 100000 {
		t.Errorf("revenue = %v, want 100000", ex.Fields["revenue"])
	}
}

func TestParseStatementTextNegativeInventoryDiscarded(t *testing.T) {
	ex := ParseStatementText("Balance Sheet\nInventory (500)\n")
	if _, ok := ex.Fields["inventory"]; ok {
		t.Error("negative inventory must be discarded")
	}
	if ex.InventoryFound {
		t.Error("inventory must not be marked found")
	}
	if len(ex.Notes) == 0 {
		t.Error("discard should leave an audit note")
	}
}

func TestConfirmationFlow(t *testing.T) {
	ex := ParseStatementText(statementText)
	tmpl := ConfirmationTemplate(ex)
	if tmpl["revenue"] == nil || *tmpl["revenue"] != 2850000 {
		t.Fatalf("template revenue = %v", tmpl["revenue"])
	}
	if tmpl["total_debt"] != nil {
		t.Fatal("unparsed fields should be nil in the template")
	}

	// Reviewer corrects a value and confirms.
	confirmed := map[string]interface{}{
		"revenue":    "2,850,000",
		"cogs":       "1,200,000",
		"net_profit": "240,000",
		"tax_expense": "60,000",
		"interest_expense": "25,000",
		"inventory":  "220,000",
	}
	r := BuildConfirmedRecord(confirmed)
	if r.EBIT == nil || *r.EBIT != 325000 {
		t.Fatalf("EBIT = %v, want 325000", r.EBIT)
	}
	if r.InventorySource != statement.InventoryUserConfirmed {
		t.Fatalf("inventory source = %q", r.InventorySource)
	}
}
