package calc

import (
	"strings"
	"testing"

	"finsight/pkg/core/statement"
)

func demoCurrent() *statement.PeriodRecord {
	return &statement.PeriodRecord{
		Revenue:           f(2850000),
		COGS:              f(1200000),
		GrossProfit:       f(1650000),
		OperatingExpenses: f(1240000),
		Depreciation:      f(85000),
		InterestExpense:   f(25000),
		TaxExpense:        f(60000),
		EBIT:              f(325000),
		EBITDA:            f(410000),
		NetProfit:         f(240000),

		Cash:               f(155000),
		AccountsReceivable: f(380000),
		Inventory:          f(220000),
		CurrentAssets:      f(755000),
		NonCurrentAssets:   f(545000),
		TotalAssets:        f(1300000),

		AccountsPayable:       f(210000),
		CurrentLiabilities:    f(380000),
		NonCurrentLiabilities: f(320000),
		TotalLiabilities:      f(700000),
		Equity:                f(600000),
		TotalDebt:             f(350000),

		OperatingCashFlow: f(310000),

		InventorySource: statement.InventoryFromBS,
	}
}

func demoPrior() *statement.PeriodRecord {
	return &statement.PeriodRecord{
		Revenue:            f(2600000),
		COGS:               f(1080000),
		GrossProfit:        f(1520000),
		OperatingExpenses:  f(1150000),
		NetProfit:          f(220000),
		AccountsReceivable: f(355000),
		Inventory:          f(195000),
		OperatingCashFlow:  f(295000),
		Equity:             f(430000),
		InventorySource:    statement.InventoryFromBS,
	}
}

func TestComputeMetricsCore(t *testing.T) {
	m := ComputeMetrics(demoCurrent(), demoPrior(), nil)

	// Current ratio = 755,000 / 380,000 = 1.986... -> amber (below 2.0)
	cr := m["current_ratio"]
	if cr.Current == nil || *cr.Current < 1.98 || *cr.Current > 1.99 {
		t.Fatalf("current ratio = %v, want ~1.987", cr.Current)
	}
	if cr.Status != StatusAmber {
		t.Errorf("current ratio status = %s, want amber", cr.Status)
	}

	// Quick ratio = (755,000 - 220,000) / 380,000 = 1.407... -> green
	qr := m["quick_ratio"]
	if qr.Current == nil || *qr.Current < 1.40 || *qr.Current > 1.41 {
		t.Fatalf("quick ratio = %v, want ~1.408", qr.Current)
	}
	if qr.Status != StatusGreen {
		t.Errorf("quick ratio status = %s, want green", qr.Status)
	}

	// EBIT margin = 325,000 / 2,850,000 = 11.40...% -> green (>=10)
	em := m["ebit_margin"]
	if em.Current == nil || *em.Current < 11.4 || *em.Current > 11.5 {
		t.Fatalf("EBIT margin = %v, want ~11.40", em.Current)
	}
	if em.Status != StatusGreen {
		t.Errorf("EBIT margin status = %s, want green", em.Status)
	}

	// Margins awaiting benchmarks stay grey.
	if m["gross_margin"].Status != StatusGrey {
		t.Errorf("gross margin starts grey, got %s", m["gross_margin"].Status)
	}

	// Debtor days = 380,000 / 2,850,000 * 365 = 48.66... -> amber
	dd := m["debtor_days"]
	if dd.Current == nil || *dd.Current < 48.6 || *dd.Current > 48.7 {
		t.Fatalf("debtor days = %v, want ~48.67", dd.Current)
	}
	if dd.Status != StatusAmber {
		t.Errorf("debtor days status = %s, want amber", dd.Status)
	}

	// Interest coverage = 325,000 / 25,000 = 13x -> green
	ic := m["interest_coverage"]
	if ic.Current == nil || *ic.Current != 13 {
		t.Fatalf("interest coverage = %v, want 13", ic.Current)
	}
	if ic.Status != StatusGreen {
		t.Errorf("interest coverage status = %s, want green", ic.Status)
	}

	// Revenue growth = (2,850,000-2,600,000)/2,600,000 = 9.615...% -> amber (below 10)
	rg := m["revenue_growth"]
	if rg.Current == nil || *rg.Current < 9.61 || *rg.Current > 9.62 {
		t.Fatalf("revenue growth = %v, want ~9.615", rg.Current)
	}
	if rg.Status != StatusAmber {
		t.Errorf("revenue growth status = %s, want amber", rg.Status)
	}

	// Days cash on hand = 155,000 / (1,240,000/365) = 45.6 -> green (>=30)
	dc := m["days_cash_on_hand"]
	if dc.Current == nil || *dc.Current < 45.6 || *dc.Current > 45.7 {
		t.Fatalf("days cash on hand = %v, want ~45.6", dc.Current)
	}
	if dc.Status != StatusGreen {
		t.Errorf("days cash on hand status = %s, want green", dc.Status)
	}

	// CCC = 48.67 + 66.92 - 63.88 = 51.7 -> amber (between 30 and 60)
	ccc := m["cash_conversion_cycle"]
	if ccc.Current == nil || *ccc.Current < 51.6 || *ccc.Current > 51.8 {
		t.Fatalf("cash conversion cycle = %v, want ~51.7", ccc.Current)
	}
	if ccc.Status != StatusAmber {
		t.Errorf("cash conversion cycle status = %s, want amber", ccc.Status)
	}
}

func TestExpenseGrowthBanding(t *testing.T) {
	cur, prior := demoCurrent(), demoPrior()

	// 7.8% expense growth against 9.6% revenue growth -> green.
	m := ComputeMetrics(cur, prior, nil)
	if got := m["expense_growth"].Status; got != StatusGreen {
		t.Errorf("slower-than-revenue expense growth = %s, want green", got)
	}

	// 11.3% vs 9.6%: faster than revenue but within 2 points -> amber, no note.
	prior.OperatingExpenses = f(1114000)
	m = ComputeMetrics(cur, prior, nil)
	eg := m["expense_growth"]
	if eg.Status != StatusAmber {
		t.Errorf("within-2-points expense growth = %s, want amber", eg.Status)
	}
	if eg.Notes != "" {
		t.Errorf("amber expense growth should carry no note, got %q", eg.Notes)
	}

	// 12.7% vs 9.6%: more than 2 points over revenue -> red with a note.
	prior.OperatingExpenses = f(1100000)
	m = ComputeMetrics(cur, prior, nil)
	eg = m["expense_growth"]
	if eg.Status != StatusRed {
		t.Errorf("runaway expense growth = %s, want red", eg.Status)
	}
	if !strings.Contains(eg.Notes, "faster than revenue") {
		t.Errorf("expected runaway-expense note, got %q", eg.Notes)
	}
}

func TestCreditorDaysFallsBackToRevenue(t *testing.T) {
	cur := demoCurrent()
	cur.COGS = nil
	m := ComputeMetrics(cur, nil, nil)

	// 210,000 / 2,850,000 * 365 = 26.89 days against revenue.
	cd := m["creditor_days"]
	if cd.Current == nil || *cd.Current < 26.8 || *cd.Current > 27.0 {
		t.Fatalf("creditor days = %v, want ~26.9 from the revenue fallback", cd.Current)
	}
}

func TestQuickRatioFallbackWithoutInventory(t *testing.T) {
	cur := demoCurrent()
	cur.Inventory = nil
	cur.InventorySource = statement.InventoryNotFound
	m := ComputeMetrics(cur, nil, nil)

	qr, cr := m["quick_ratio"], m["current_ratio"]
	if qr.Current == nil || cr.Current == nil || *qr.Current != *cr.Current {
		t.Fatalf("quick ratio %v should equal current ratio %v when inventory is missing", qr.Current, cr.Current)
	}
	if !strings.Contains(qr.Notes, "Inventory not found") {
		t.Errorf("quick ratio should carry a note, got %q", qr.Notes)
	}

	// Inventory days must be null outright, not zero-inventory days.
	id := m["inventory_days"]
	if id.Current != nil {
		t.Fatalf("inventory days = %v, want nil", *id.Current)
	}
	if id.Status != StatusGrey {
		t.Errorf("inventory days status = %s, want grey", id.Status)
	}
}

func TestGrowthMetricsNeedPrior(t *testing.T) {
	m := ComputeMetrics(demoCurrent(), nil, nil)
	if _, ok := m["revenue_growth"]; ok {
		t.Error("growth metrics must be omitted without any prior record")
	}
}

func TestMetricsNeverPanicOnEmptyRecord(t *testing.T) {
	m := ComputeMetrics(&statement.PeriodRecord{}, nil, nil)
	for name, metric := range m {
		if metric.Current != nil {
			t.Errorf("%s = %v on empty record, want nil", name, *metric.Current)
		}
		if metric.Status != StatusGrey {
			t.Errorf("%s status = %s on empty record, want grey", name, metric.Status)
		}
	}
}

func TestCreditorDaysWorkingCapitalNote(t *testing.T) {
	cur := demoCurrent()
	// Creditor days = 210,000/1,200,000*365 = 63.9; debtor days 48.7.
	m := ComputeMetrics(cur, nil, nil)
	if note := m["creditor_days"].Notes; note != "" {
		t.Fatalf("creditor days above debtor days should carry no note, got %q", note)
	}

	cur.AccountsPayable = f(100000) // 30.4 creditor days, below debtor days
	m = ComputeMetrics(cur, nil, nil)
	if note := m["creditor_days"].Notes; !strings.Contains(note, "working capital") {
		t.Fatalf("expected working capital note, got %q", note)
	}
}
