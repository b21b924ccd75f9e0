package calc

import (
	"fmt"

	"finsight/pkg/core/statement"
)

// =============================================================================
// RED-FLAG DETECTOR - Cross-metric warning heuristics
// =============================================================================

// DetectRedFlags applies cross-metric heuristics over the records and
// computed metrics, returning human-readable warnings in a stable order.
// Each rule fires only when every input it needs is present; missing data
// skips the rule without raising anything.
func DetectRedFlags(current, prior *statement.PeriodRecord, metrics map[string]*MetricResult) []string {
	if current == nil {
		current = &statement.PeriodRecord{}
	}
	if prior == nil {
		prior = &statement.PeriodRecord{}
	}
	var flags []string

	if cr := metrics["current_ratio"]; cr != nil && cr.Current != nil && *cr.Current < 1.0 {
		flags = append(flags, fmt.Sprintf(
			"Current ratio of %.2f is below 1.0: current liabilities exceed current assets", *cr.Current))
	}

	if ic := metrics["interest_coverage"]; ic != nil && ic.Current != nil && *ic.Current < 1.5 {
		flags = append(flags, fmt.Sprintf(
			"Interest coverage of %.2fx is below 1.5x: earnings barely cover interest payments", *ic.Current))
	}

	if current.NetProfit != nil && *current.NetProfit < 0 {
		flags = append(flags, fmt.Sprintf(
			"Business is loss-making: net profit of $%.0f", *current.NetProfit))
	}

	// Receivables outpacing revenue suggests collection trouble or
	// aggressive revenue recognition.
	arGrowth := PctChange(current.AccountsReceivable, prior.AccountsReceivable)
	revGrowth := PctChange(current.Revenue, prior.Revenue)
	if arGrowth != nil && revGrowth != nil && *arGrowth > 5 && *revGrowth > 5 && *arGrowth-*revGrowth > 5 {
		flags = append(flags, fmt.Sprintf(
			"Receivables grew %.1f%% against revenue growth of %.1f%%: customers may be paying slower", *arGrowth, *revGrowth))
	}

	invGrowth := PctChange(current.Inventory, prior.Inventory)
	cogsGrowth := PctChange(current.COGS, prior.COGS)
	if invGrowth != nil && cogsGrowth != nil && *invGrowth > 5 && *cogsGrowth > 5 && *invGrowth-*cogsGrowth > 5 {
		flags = append(flags, fmt.Sprintf(
			"Inventory grew %.1f%% against cost of sales growth of %.1f%%: stock may be building up unsold", *invGrowth, *cogsGrowth))
	}

	// Revenue up while operating cash flow fell is a quality-of-earnings
	// concern: profit on paper, not in the bank.
	if revGrowth != nil && *revGrowth > 0 &&
		current.OperatingCashFlow != nil && prior.OperatingCashFlow != nil &&
		*current.OperatingCashFlow < *prior.OperatingCashFlow {
		flags = append(flags, fmt.Sprintf(
			"Revenue grew %.1f%% but operating cash flow fell from $%.0f to $%.0f: earnings quality concern",
			*revGrowth, *prior.OperatingCashFlow, *current.OperatingCashFlow))
	}

	expGrowth := PctChange(current.OperatingExpenses, prior.OperatingExpenses)
	if expGrowth != nil && revGrowth != nil && *expGrowth-*revGrowth > 2 {
		flags = append(flags, fmt.Sprintf(
			"Expenses grew %.1f%% against revenue growth of %.1f%%: margins are compressing", *expGrowth, *revGrowth))
	}

	return flags
}
