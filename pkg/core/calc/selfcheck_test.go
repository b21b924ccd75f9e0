package calc

import (
	"strings"
	"testing"

	"finsight/pkg/core/statement"
)

func checkByName(checks []SelfCheckResult, name string) *SelfCheckResult {
	for i := range checks {
		if checks[i].CheckName == name {
			return &checks[i]
		}
	}
	return nil
}

func TestProfitLossBalancePasses(t *testing.T) {
	// 2,850,000 - 1,200,000 - 1,325,000 - 25,000 - 60,000 = 240,000 exactly.
	r := &statement.PeriodRecord{
		Revenue:           f(2850000),
		COGS:              f(1200000),
		OperatingExpenses: f(1325000),
		InterestExpense:   f(25000),
		TaxExpense:        f(60000),
		NetProfit:         f(240000),
	}
	c := checkByName(RunSelfChecks(r, nil), "pl_balance")
	if c == nil || c.Status != CheckPass {
		t.Fatalf("got %+v, want pass", c)
	}
}

func TestProfitLossBalanceToleranceBands(t *testing.T) {
	r := &statement.PeriodRecord{
		Revenue:           f(2850000),
		COGS:              f(1200000),
		OperatingExpenses: f(1325000),
		InterestExpense:   f(25000),
		TaxExpense:        f(60000),
		NetProfit:         f(240100), // off by $100, within 0.1% of 240,100
	}
	c := checkByName(RunSelfChecks(r, nil), "pl_balance")
	if c.Status != CheckWarn {
		t.Fatalf("diff of $100 on $240k profit should warn, got %s: %s", c.Status, c.Detail)
	}

	r.NetProfit = f(250000) // off by $10,000
	c = checkByName(RunSelfChecks(r, nil), "pl_balance")
	if c.Status != CheckFail {
		t.Fatalf("diff of $10,000 should fail, got %s", c.Status)
	}
}

func TestMissingInputsWarnWithNamedFields(t *testing.T) {
	c := checkByName(RunSelfChecks(&statement.PeriodRecord{}, nil), "pl_balance")
	if c.Status != CheckWarn {
		t.Fatalf("missing inputs must warn, got %s", c.Status)
	}
	for _, field := range []string{"revenue", "cogs", "net_profit"} {
		if !strings.Contains(c.Detail, field) {
			t.Errorf("detail should name %q, got %q", field, c.Detail)
		}
	}
}

func TestBalanceSheetEquation(t *testing.T) {
	r := &statement.PeriodRecord{
		TotalAssets:      f(1300000),
		TotalLiabilities: f(700000),
		Equity:           f(600000),
	}
	c := checkByName(RunSelfChecks(r, nil), "balance_sheet_equation")
	if c.Status != CheckPass {
		t.Fatalf("got %s, want pass", c.Status)
	}

	// Off by $1: still within the dollar tolerance.
	r.Equity = f(600001)
	c = checkByName(RunSelfChecks(r, nil), "balance_sheet_equation")
	if c.Status != CheckPass {
		t.Fatalf("$1 diff should pass, got %s", c.Status)
	}

	// Off by $6 on $1,000 of assets: above 0.5% tolerance, fail.
	small := &statement.PeriodRecord{
		TotalAssets:      f(1000),
		TotalLiabilities: f(500),
		Equity:           f(506),
	}
	c = checkByName(RunSelfChecks(small, nil), "balance_sheet_equation")
	if c.Status != CheckFail {
		t.Fatalf("$6 diff on $1,000 assets should fail, got %s", c.Status)
	}
}

func TestEquityMovementNeverFails(t *testing.T) {
	cur := &statement.PeriodRecord{Equity: f(600000), NetProfit: f(240000)}
	prior := &statement.PeriodRecord{Equity: f(430000)}
	// Expected 430,000 + 240,000 = 670,000 vs 600,000: $70,000 gap.
	c := checkByName(RunSelfChecks(cur, prior), "equity_movement")
	if c == nil {
		t.Fatal("equity movement check missing")
	}
	if c.Status != CheckWarn {
		t.Fatalf("a gap warns, never fails, got %s", c.Status)
	}
}

func TestPriorAbsentChecksSkippedSilently(t *testing.T) {
	checks := RunSelfChecks(demoCurrent(), nil)
	if checkByName(checks, "equity_movement") != nil {
		t.Error("equity movement should be skipped without a prior record")
	}
	if checkByName(checks, "revenue_reasonableness") != nil {
		t.Error("revenue reasonableness should be skipped without a prior record")
	}
}

func TestCurrentAssetsSubtotal(t *testing.T) {
	r := &statement.PeriodRecord{
		Cash:               f(155000),
		AccountsReceivable: f(380000),
		Inventory:          f(220000),
		CurrentAssets:      f(755000),
	}
	c := checkByName(RunSelfChecks(r, nil), "current_assets_subtotal")
	if c.Status != CheckPass {
		t.Fatalf("components equal to total should pass, got %s", c.Status)
	}

	r.CurrentAssets = f(700000)
	c = checkByName(RunSelfChecks(r, nil), "current_assets_subtotal")
	if c.Status != CheckWarn {
		t.Fatalf("components above total should warn, got %s", c.Status)
	}
}

func TestRevenueReasonableness(t *testing.T) {
	cur := &statement.PeriodRecord{Revenue: f(2850000)}
	prior := &statement.PeriodRecord{Revenue: f(2600000)}
	c := checkByName(RunSelfChecks(cur, prior), "revenue_reasonableness")
	if c.Status != CheckPass {
		t.Fatalf("9.6%% growth should pass, got %s", c.Status)
	}

	cur.Revenue = f(4000000) // +53.8%
	c = checkByName(RunSelfChecks(cur, prior), "revenue_reasonableness")
	if c.Status != CheckWarn {
		t.Fatalf("53.8%% growth should warn, got %s", c.Status)
	}
}

func TestHasFailsHasWarns(t *testing.T) {
	checks := []SelfCheckResult{
		{Status: CheckPass},
		{Status: CheckWarn},
	}
	if HasFails(checks) {
		t.Error("no fail present")
	}
	if !HasWarns(checks) {
		t.Error("a warn is present")
	}
	checks = append(checks, SelfCheckResult{Status: CheckFail})
	if !HasFails(checks) {
		t.Error("a fail is present")
	}
}
