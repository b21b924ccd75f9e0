package calc

import (
	"strings"
	"testing"

	"finsight/pkg/core/statement"
)

func flagsContaining(flags []string, substr string) bool {
	for _, f := range flags {
		if strings.Contains(f, substr) {
			return true
		}
	}
	return false
}

func TestRedFlagsHealthyBusinessRaisesNone(t *testing.T) {
	cur, prior := demoCurrent(), demoPrior()
	m := ComputeMetrics(cur, prior, nil)
	flags := DetectRedFlags(cur, prior, m)
	if len(flags) != 0 {
		t.Fatalf("healthy demo data raised flags: %v", flags)
	}
}

func TestRedFlagLiquidityBreach(t *testing.T) {
	cur := demoCurrent()
	cur.CurrentLiabilities = f(900000) // current ratio 0.84
	m := ComputeMetrics(cur, nil, nil)
	flags := DetectRedFlags(cur, nil, m)
	if !flagsContaining(flags, "Current ratio") {
		t.Fatalf("expected liquidity flag, got %v", flags)
	}
}

func TestRedFlagInterestCoverage(t *testing.T) {
	cur := demoCurrent()
	cur.InterestExpense = f(250000) // coverage 325,000/250,000 = 1.3
	m := ComputeMetrics(cur, nil, nil)
	flags := DetectRedFlags(cur, nil, m)
	if !flagsContaining(flags, "Interest coverage") {
		t.Fatalf("expected coverage flag, got %v", flags)
	}
}

func TestRedFlagNegativeNetProfit(t *testing.T) {
	cur := demoCurrent()
	cur.NetProfit = f(-50000)
	flags := DetectRedFlags(cur, nil, ComputeMetrics(cur, nil, nil))
	if !flagsContaining(flags, "loss-making") {
		t.Fatalf("expected loss flag, got %v", flags)
	}
}

func TestRedFlagReceivablesDivergence(t *testing.T) {
	cur, prior := demoCurrent(), demoPrior()
	// AR grew 355,000 -> 450,000 = 26.8% against 9.6% revenue growth.
	cur.AccountsReceivable = f(450000)
	flags := DetectRedFlags(cur, prior, ComputeMetrics(cur, prior, nil))
	if !flagsContaining(flags, "Receivables grew") {
		t.Fatalf("expected receivables flag, got %v", flags)
	}
}

func TestRedFlagCashFlowDivergence(t *testing.T) {
	cur, prior := demoCurrent(), demoPrior()
	cur.OperatingCashFlow = f(150000) // fell from 295,000 while revenue grew
	flags := DetectRedFlags(cur, prior, ComputeMetrics(cur, prior, nil))
	if !flagsContaining(flags, "operating cash flow fell") {
		t.Fatalf("expected earnings quality flag, got %v", flags)
	}
}

func TestRedFlagRulesSkipOnMissingData(t *testing.T) {
	empty := &statement.PeriodRecord{}
	flags := DetectRedFlags(empty, nil, ComputeMetrics(empty, nil, nil))
	if len(flags) != 0 {
		t.Fatalf("missing data must skip rules, not flag: %v", flags)
	}
}
