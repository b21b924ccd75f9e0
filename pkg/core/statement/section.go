package statement

import "strings"

// =============================================================================
// SECTION TRACKER - Heading-driven state machine over statement rows
// =============================================================================

// Section labels the region of a statement the walk is currently inside.
type Section int

const (
	SectionUnknown Section = iota
	SectionRevenue
	SectionCOGS
	SectionGrossProfit
	SectionOperatingExpenses
	SectionCurrentAssets
	SectionNonCurrentAssets
	SectionCurrentLiabilities
	SectionNonCurrentLiabilities
	SectionEquity
)

func (s Section) String() string {
	switch s {
	case SectionRevenue:
		return "revenue"
	case SectionCOGS:
		return "cost_of_sales"
	case SectionGrossProfit:
		return "gross_profit"
	case SectionOperatingExpenses:
		return "operating_expenses"
	case SectionCurrentAssets:
		return "current_assets"
	case SectionNonCurrentAssets:
		return "non_current_assets"
	case SectionCurrentLiabilities:
		return "current_liabilities"
	case SectionNonCurrentLiabilities:
		return "non_current_liabilities"
	case SectionEquity:
		return "equity"
	default:
		return "unknown"
	}
}

// sectionHeading maps a bare heading phrase to the section it opens.
// Non-current variants are listed before their current counterparts so
// "non-current assets" never matches through "current assets".
var sectionHeadings = []struct {
	phrase  string
	section Section
}{
	{"non-current assets", SectionNonCurrentAssets},
	{"non current assets", SectionNonCurrentAssets},
	{"noncurrent assets", SectionNonCurrentAssets},
	{"fixed assets", SectionNonCurrentAssets},
	{"current assets", SectionCurrentAssets},
	{"non-current liabilities", SectionNonCurrentLiabilities},
	{"non current liabilities", SectionNonCurrentLiabilities},
	{"noncurrent liabilities", SectionNonCurrentLiabilities},
	{"long term liabilities", SectionNonCurrentLiabilities},
	{"long-term liabilities", SectionNonCurrentLiabilities},
	{"current liabilities", SectionCurrentLiabilities},
	{"equity", SectionEquity},
	{"shareholders equity", SectionEquity},
	{"shareholders' equity", SectionEquity},
	{"owners equity", SectionEquity},
	{"income", SectionRevenue},
	{"revenue", SectionRevenue},
	{"trading income", SectionRevenue},
	{"cost of sales", SectionCOGS},
	{"cost of goods sold", SectionCOGS},
	{"direct costs", SectionCOGS},
	{"gross profit", SectionGrossProfit},
	{"operating expenses", SectionOperatingExpenses},
	{"expenses", SectionOperatingExpenses},
	{"overheads", SectionOperatingExpenses},
}

// SectionTracker follows heading rows through a statement walk. A heading
// only opens a section when the row carries no value; a "Total X" row closes
// the matching section after its amount has been consumed by the caller.
type SectionTracker struct {
	current Section
}

// NewSectionTracker starts outside any section.
func NewSectionTracker() *SectionTracker {
	return &SectionTracker{current: SectionUnknown}
}

// Current returns the section the tracker is inside.
func (st *SectionTracker) Current() Section {
	return st.current
}

// Advance feeds the tracker the next row label. hasValue distinguishes a
// bare heading from a line item that merely contains a heading phrase.
// It returns the section in effect for this row, so a "Total current assets"
// row is still attributed to SectionCurrentAssets before the exit applies.
func (st *SectionTracker) Advance(label string, hasValue bool) Section {
	norm := normalizeLabel(label)
	if norm == "" {
		return st.current
	}

	effective := st.current
	if strings.HasPrefix(norm, "total ") {
		if sec := headingSection(strings.TrimPrefix(norm, "total ")); sec != SectionUnknown && sec == st.current {
			st.current = SectionUnknown
		}
		return effective
	}

	if !hasValue {
		if sec := headingSection(norm); sec != SectionUnknown {
			st.current = sec
			return st.current
		}
	}
	return effective
}

// headingSection matches by substring so decorated headings like
// "Current Assets (continued)" or "CURRENT ASSETS - Note 3" still open
// their section. Labels carrying "total" never open one; they close
// sections in Advance instead.
func headingSection(norm string) Section {
	if strings.Contains(norm, "total") {
		return SectionUnknown
	}
	for _, h := range sectionHeadings {
		if strings.Contains(norm, h.phrase) {
			return h.section
		}
	}
	return SectionUnknown
}

func normalizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.TrimRight(s, ":")
	return strings.Join(strings.Fields(s), " ")
}
