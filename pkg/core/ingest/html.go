package ingest

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"finsight/pkg/core/statement"
)

// =============================================================================
// HTML READER - Statement tables in exported HTML reports
// =============================================================================

var statementTitleCues = map[statement.Type][]string{
	statement.TypeProfitLoss:   {"profit and loss", "profit & loss", "income statement", "statement of financial performance"},
	statement.TypeBalanceSheet: {"balance sheet", "statement of financial position"},
	statement.TypeCashFlow:     {"cash flow", "statement of cash flows"},
}

// ReadHTML scans an HTML report for the statement table of the requested
// type, matching the table caption or nearest preceding heading against the
// statement title cues.
func ReadHTML(r io.Reader, typ statement.Type) (*statement.Table, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing html: %w", err)
	}

	var result *statement.Table
	doc.Find("table").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title := tableTitle(sel)
		if !matchesType(title, typ) {
			return true
		}
		log.Printf("[Ingest] table #%d %q matched %s", i, title, typ)
		grid := gridFromTable(sel)
		if len(grid) < 2 {
			return true
		}
		t, err := tableFromGrid(grid, typ)
		if err != nil {
			log.Printf("[Ingest] table #%d rejected: %v", i, err)
			return true
		}
		result = t
		return false
	})
	if result == nil {
		return nil, fmt.Errorf("no %s table found in document", typ)
	}
	return result, nil
}

// tableTitle finds the caption or the closest preceding heading.
func tableTitle(sel *goquery.Selection) string {
	if caption := strings.TrimSpace(sel.Find("caption").First().Text()); caption != "" {
		return caption
	}
	for prev := sel.Prev(); prev.Length() > 0; prev = prev.Prev() {
		if goquery.NodeName(prev) == "table" {
			break
		}
		if text := strings.TrimSpace(prev.Text()); text != "" {
			return text
		}
	}
	return ""
}

func matchesType(title string, typ statement.Type) bool {
	lower := strings.ToLower(title)
	for _, cue := range statementTitleCues[typ] {
		if strings.Contains(lower, cue) {
			return true
		}
	}
	return false
}

func gridFromTable(sel *goquery.Selection) [][]string {
	var grid [][]string
	sel.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, strings.TrimSpace(cell.Text()))
		})
		if len(row) > 0 {
			grid = append(grid, row)
		}
	})
	return grid
}
