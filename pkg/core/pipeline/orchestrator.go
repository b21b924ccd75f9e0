package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"finsight/pkg/core/benchmark"
	"finsight/pkg/core/calc"
	"finsight/pkg/core/statement"
	"finsight/pkg/core/store"
)

// =============================================================================
// ORCHESTRATOR - Table input to AnalysisResult
// =============================================================================

// Input is one analysis request: raw tables per statement plus context.
// The balance sheet and cash flow tables are optional; missing statements
// simply leave their canonical fields unknown.
type Input struct {
	ProfitLoss   *statement.Table
	BalanceSheet *statement.Table
	CashFlow     *statement.Table
	Industry     string
	Client       string
}

// Orchestrator runs the full analysis flow. Repo is optional; when set,
// every result is persisted.
type Orchestrator struct {
	Config     Config
	Benchmarks benchmark.Dataset
	Repo       store.AnalysisRepository
}

// NewOrchestrator builds an orchestrator with the embedded benchmark data,
// or the dataset named by the config when one is set.
func NewOrchestrator(cfg Config) (*Orchestrator, error) {
	var (
		ds  benchmark.Dataset
		err error
	)
	if cfg.Benchmarks.Path != "" {
		ds, err = benchmark.LoadFile(cfg.Benchmarks.Path)
	} else {
		ds, err = benchmark.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading benchmarks: %w", err)
	}
	return &Orchestrator{Config: cfg, Benchmarks: ds}, nil
}

// Analyze classifies columns, extracts up to three periods from each
// statement, merges them into canonical records and computes the full
// result bundle. In strict mode a failed self-check aborts the run.
func (o *Orchestrator) Analyze(ctx context.Context, in Input) (*calc.AnalysisResult, error) {
	if in.ProfitLoss == nil {
		return nil, fmt.Errorf("profit and loss statement is required")
	}
	start := time.Now()

	policy := o.Config.MatchPolicy()
	plCols := statement.ClassifyColumns(in.ProfitLoss)
	if len(plCols.ValueColumns) == 0 {
		return nil, fmt.Errorf("no value columns found in profit and loss table")
	}

	var bsCols, cfCols statement.ColumnClassification
	if in.BalanceSheet != nil {
		bsCols = statement.ClassifyColumns(in.BalanceSheet)
	}
	if in.CashFlow != nil {
		cfCols = statement.ClassifyColumns(in.CashFlow)
	}

	periods := len(plCols.ValueColumns)
	if periods > 3 {
		periods = 3
	}
	records := make([]*statement.PeriodRecord, periods)
	for i := 0; i < periods; i++ {
		var pl statement.ProfitLossFields
		var bs statement.BalanceSheetFields
		var cf statement.CashFlowFields

		pl = statement.ExtractProfitLoss(in.ProfitLoss, statement.ExtractOptions{
			Column: plCols.ValueColumns[i], Policy: policy,
		})
		if in.BalanceSheet != nil && i < len(bsCols.ValueColumns) {
			bs = statement.ExtractBalanceSheet(in.BalanceSheet, statement.ExtractOptions{
				Column: bsCols.ValueColumns[i], Policy: policy,
			})
		}
		if in.CashFlow != nil && i < len(cfCols.ValueColumns) {
			cf = statement.ExtractCashFlow(in.CashFlow, statement.ExtractOptions{
				Column: cfCols.ValueColumns[i], Policy: policy,
			})
		}
		records[i] = statement.BuildPeriodRecord(pl, bs, cf)
	}

	labels := plCols.PeriodLabels
	result, err := o.analyzeRecords(ctx, records, labels, in.Industry, in.Client)
	if err != nil {
		// Strict-mode refusals still carry the result so callers can show
		// which checks failed.
		return result, err
	}
	log.Printf("[Pipeline] analysis %s completed in %s (%d periods)", result.RunID, time.Since(start), periods)
	return result, nil
}

// AnalyzeRecords runs the calculation half of the pipeline over records
// built elsewhere, such as the confirmed PDF path or the demo dataset.
// records are ordered newest first.
func (o *Orchestrator) AnalyzeRecords(ctx context.Context, records []*statement.PeriodRecord, labels []string, industry, client string) (*calc.AnalysisResult, error) {
	if len(records) == 0 || records[0] == nil {
		return nil, fmt.Errorf("at least a current period record is required")
	}
	return o.analyzeRecords(ctx, records, labels, industry, client)
}

func (o *Orchestrator) analyzeRecords(ctx context.Context, records []*statement.PeriodRecord, labels []string, industry, client string) (*calc.AnalysisResult, error) {
	current := records[0]
	var prior, prior2 *statement.PeriodRecord
	if len(records) > 1 {
		prior = records[1]
	}
	if len(records) > 2 {
		prior2 = records[2]
	}

	metrics := calc.ComputeMetrics(current, prior, prior2)
	o.Benchmarks.Apply(metrics, industry)
	checks := calc.RunSelfChecks(current, prior)
	flags := calc.DetectRedFlags(current, prior, metrics)

	if len(labels) == 0 {
		for i := range records {
			switch i {
			case 0:
				labels = append(labels, "Current")
			case 1:
				labels = append(labels, "Prior")
			default:
				labels = append(labels, fmt.Sprintf("Prior %d", i))
			}
		}
	}

	periodMap := map[string]*statement.PeriodRecord{"current": current}
	if prior != nil {
		periodMap["prior"] = prior
	}
	if prior2 != nil {
		periodMap["prior2"] = prior2
	}

	result := &calc.AnalysisResult{
		RunID:                uuid.NewString(),
		Industry:             industry,
		Metrics:              metrics,
		RedFlags:             flags,
		SelfChecks:           checks,
		HasFails:             calc.HasFails(checks),
		HasWarns:             calc.HasWarns(checks),
		PeriodLabels:         labels,
		Periods:              periodMap,
		BenchmarkComparisons: o.Benchmarks.Comparisons(current, industry),
	}

	if o.Config.Analysis.Strict && result.HasFails {
		return result, fmt.Errorf("self-checks failed in strict mode; review the source statements")
	}

	if o.Repo != nil {
		run := &store.Run{
			ID:        uuid.MustParse(result.RunID),
			Client:    client,
			CreatedAt: time.Now(),
			Result:    result,
		}
		if err := o.Repo.Save(ctx, run); err != nil {
			log.Printf("[Pipeline] persisting run %s failed: %v", result.RunID, err)
		}
	}
	return result, nil
}
