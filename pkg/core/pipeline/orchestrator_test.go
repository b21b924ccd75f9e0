package pipeline

import (
	"context"
	"testing"

	"finsight/pkg/core/calc"
	"finsight/pkg/core/statement"
	"finsight/pkg/core/store"
)

func newTestOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()
	o, err := NewOrchestrator(DefaultConfig())
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	return o
}

func TestAnalyzeDemoEndToEnd(t *testing.T) {
	o := newTestOrchestrator(t)
	result, err := o.Analyze(context.Background(), DemoInput())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	cur := result.Periods["current"]
	if cur == nil {
		t.Fatal("current period record missing")
	}
	if cur.Revenue == nil || *cur.Revenue != 2850000 {
		t.Errorf("revenue = %v, want 2850000", cur.Revenue)
	}
	// EBIT = 240,000 + 60,000 + 25,000 = 325,000; EBITDA adds 85,000.
	if cur.EBIT == nil || *cur.EBIT != 325000 {
		t.Errorf("EBIT = %v, want 325000", cur.EBIT)
	}
	if cur.EBITDA == nil || *cur.EBITDA != 410000 {
		t.Errorf("EBITDA = %v, want 410000", cur.EBITDA)
	}
	if cur.InventorySource != statement.InventoryFromBS {
		t.Errorf("inventory source = %q", cur.InventorySource)
	}

	// EBIT margin = 325,000 / 2,850,000 = 11.40% -> green.
	em := result.Metric("ebit_margin")
	if em == nil || em.Current == nil || *em.Current < 11.4 || *em.Current > 11.5 {
		t.Fatalf("EBIT margin = %+v, want ~11.40", em)
	}
	if em.Status != calc.StatusGreen {
		t.Errorf("EBIT margin status = %s, want green", em.Status)
	}

	// The demo statements are internally consistent.
	if result.HasFails {
		t.Errorf("demo data should pass all checks: %+v", result.SelfChecks)
	}
	for _, c := range result.SelfChecks {
		if c.Status != calc.CheckPass {
			t.Errorf("check %s = %s (%s), want pass", c.CheckName, c.Status, c.Detail)
		}
	}
	if len(result.RedFlags) != 0 {
		t.Errorf("demo data raised red flags: %v", result.RedFlags)
	}

	// Period labels come from the year headers, newest first.
	if len(result.PeriodLabels) != 2 || result.PeriodLabels[0] != "FY2024" {
		t.Errorf("period labels = %v", result.PeriodLabels)
	}

	// Retail Trade benchmarks attach to the margin metrics.
	gm := result.Metric("gross_margin")
	if gm.BenchmarkLow == nil {
		t.Error("gross margin should carry a benchmark range")
	}
	if gm.Status == calc.StatusGrey {
		t.Error("benchmarked gross margin should be graded")
	}
	if len(result.BenchmarkComparisons) == 0 {
		t.Error("benchmark comparisons missing")
	}
	if result.RunID == "" {
		t.Error("run id missing")
	}
}

func TestAnalyzeRequiresProfitLoss(t *testing.T) {
	o := newTestOrchestrator(t)
	if _, err := o.Analyze(context.Background(), Input{}); err == nil {
		t.Fatal("missing P&L should error")
	}
}

func TestAnalyzePersistsRuns(t *testing.T) {
	o := newTestOrchestrator(t)
	repo := store.NewMemoryRepository()
	o.Repo = repo

	in := DemoInput()
	result, err := o.Analyze(context.Background(), in)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	run, err := repo.Latest(context.Background(), in.Client)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if run.Result.RunID != result.RunID {
		t.Fatalf("persisted run %s, want %s", run.Result.RunID, result.RunID)
	}
}

func TestAnalyzeStrictModeGatesFailures(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Analysis.Strict = true
	o, err := NewOrchestrator(cfg)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	in := DemoInput()
	// Corrupt reported net profit so the profit and loss check fails hard.
	for i, r := range in.ProfitLoss.Rows {
		if r.Label == "Net Profit" {
			in.ProfitLoss.Rows[i] = row("Net Profit", "990,000", "220,000")
		}
	}
	result, err := o.Analyze(context.Background(), in)
	if err == nil {
		t.Fatal("strict mode should refuse failed checks")
	}
	if result == nil || !result.HasFails {
		t.Fatal("the failing result should still be returned for inspection")
	}
}

func TestAnalyzeRecordsConfirmedPath(t *testing.T) {
	o := newTestOrchestrator(t)
	rec := statement.RecordFromFieldMap(map[string]interface{}{
		"revenue":            "2,850,000",
		"cogs":               "1,200,000",
		"operating_expenses": "1,325,000",
		"interest_expense":   "25,000",
		"tax_expense":        "60,000",
		"net_profit":         "240,000",
	})
	result, err := o.AnalyzeRecords(context.Background(), []*statement.PeriodRecord{rec}, nil, "", "manual")
	if err != nil {
		t.Fatalf("AnalyzeRecords: %v", err)
	}
	if result.Metric("ebit_margin").Current == nil {
		t.Fatal("metrics missing from confirmed-path result")
	}
	if len(result.PeriodLabels) != 1 || result.PeriodLabels[0] != "Current" {
		t.Fatalf("labels = %v", result.PeriodLabels)
	}
	if _, ok := result.Metrics["revenue_growth"]; ok {
		t.Error("single-period run should omit growth metrics")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Extraction.MatchPolicy != "last" {
		t.Errorf("default match policy = %q, want last", cfg.Extraction.MatchPolicy)
	}
	if cfg.MatchPolicy() != statement.MatchLast {
		t.Error("MatchPolicy() should map to last-wins")
	}
	cfg.Extraction.MatchPolicy = "first"
	if cfg.MatchPolicy() != statement.MatchFirst {
		t.Error("MatchPolicy() should map first to first-wins")
	}
}
