package pipeline

import "finsight/pkg/core/statement"

// =============================================================================
// DEMO DATASET - Two-year sample statements for trials and end-to-end tests
// =============================================================================

// DemoInput returns the built-in sample business: a profitable two-period
// trading company with internally consistent statements.
func DemoInput() Input {
	return Input{
		Industry:     "Retail Trade",
		Client:       "Demo Trading Pty Ltd",
		ProfitLoss:   demoProfitLoss(),
		BalanceSheet: demoBalanceSheet(),
		CashFlow:     demoCashFlow(),
	}
}

func row(label string, cells ...string) statement.Row {
	return statement.Row{Label: label, Cells: cells}
}

func demoProfitLoss() *statement.Table {
	return &statement.Table{
		Type:    statement.TypeProfitLoss,
		Headers: []string{"Account", "FY2024", "FY2023"},
		Rows: []statement.Row{
			row("Income"),
			row("Product Sales", "2,680,000", "2,450,000"),
			row("Service Income", "170,000", "150,000"),
			row("Total Income", "2,850,000", "2,600,000"),
			row("Cost of Sales"),
			row("Purchases", "1,130,000", "1,015,000"),
			row("Freight Inwards", "70,000", "65,000"),
			row("Total Cost of Sales", "1,200,000", "1,080,000"),
			row("Gross Profit", "1,650,000", "1,520,000"),
			row("Operating Expenses"),
			row("Wages and Salaries", "900,000", "840,000"),
			row("Rent", "180,000", "170,000"),
			row("Depreciation", "85,000", "80,000"),
			row("Other Expenses", "160,000", "130,000"),
			row("Total Operating Expenses", "1,325,000", "1,220,000"),
			row("Interest Expense", "25,000", "28,000"),
			row("Income Tax Expense", "60,000", "52,000"),
			row("Net Profit", "240,000", "220,000"),
		},
	}
}

func demoBalanceSheet() *statement.Table {
	return &statement.Table{
		Type:    statement.TypeBalanceSheet,
		Headers: []string{"Account", "FY2024", "FY2023"},
		Rows: []statement.Row{
			row("Current Assets"),
			row("Cash at Bank", "155,000", "120,000"),
			row("Trade Receivables", "380,000", "355,000"),
			row("Inventory", "220,000", "195,000"),
			row("Total Current Assets", "755,000", "670,000"),
			row("Non-Current Assets"),
			row("Plant and Equipment", "545,000", "490,000"),
			row("Total Non-Current Assets", "545,000", "490,000"),
			row("Total Assets", "1,300,000", "1,160,000"),
			row("Current Liabilities"),
			row("Trade Payables", "210,000", "190,000"),
			row("Bank Loan - Current", "170,000", "180,000"),
			row("Total Current Liabilities", "380,000", "370,000"),
			row("Non-Current Liabilities"),
			row("Bank Loan", "320,000", "430,000"),
			row("Total Non-Current Liabilities", "320,000", "430,000"),
			row("Total Liabilities", "700,000", "800,000"),
			row("Equity"),
			row("Retained Earnings", "600,000", "360,000"),
			row("Total Equity", "600,000", "360,000"),
		},
	}
}

func demoCashFlow() *statement.Table {
	return &statement.Table{
		Type:    statement.TypeCashFlow,
		Headers: []string{"Account", "FY2024", "FY2023"},
		Rows: []statement.Row{
			row("Net Cash from Operating Activities", "310,000", "295,000"),
			row("Net Cash used in Investing Activities", "(140,000)", "(95,000)"),
			row("Net Cash from Financing Activities", "(135,000)", "(150,000)"),
			row("Net Increase in Cash", "35,000", "50,000"),
		},
	}
}
