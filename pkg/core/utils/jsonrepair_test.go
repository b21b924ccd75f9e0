package utils

import "testing"

type highlights struct {
	Headline string   `json:"headline"`
	Risks    []string `json:"risks"`
}

func TestRepairJSONFixesCommonDefects(t *testing.T) {
	repaired, err := RepairJSON("{'headline': 'Strong year', 'risks': ['debt',]}")
	if err != nil {
		t.Fatalf("RepairJSON: %v", err)
	}
	var h highlights
	if err := DecodeLenient(repaired, &h); err != nil {
		t.Fatalf("decode repaired: %v", err)
	}
	if h.Headline != "Strong year" || len(h.Risks) != 1 {
		t.Fatalf("got %+v", h)
	}
}

func TestDecodeLenientStrictFirst(t *testing.T) {
	var h highlights
	if err := DecodeLenient(`{"headline":"ok","risks":[]}`, &h); err != nil {
		t.Fatalf("strict json should decode: %v", err)
	}
	if h.Headline != "ok" {
		t.Fatalf("got %+v", h)
	}
}

func TestDecodeLenientFencedModelOutput(t *testing.T) {
	input := "```json\n{\"headline\": \"Margins holding\", \"risks\": [\"rent\"]}\n```"
	var h highlights
	if err := DecodeLenient(input, &h); err != nil {
		t.Fatalf("fenced output should decode after repair: %v", err)
	}
	if h.Headline != "Margins holding" {
		t.Fatalf("got %+v", h)
	}
}

func TestCleanMarkdown(t *testing.T) {
	got := CleanMarkdown("```markdown\n# Summary\ntext\n```")
	if got != "# Summary\ntext" {
		t.Fatalf("got %q", got)
	}
	if CleanMarkdown("  plain  ") != "plain" {
		t.Fatal("plain text should only be trimmed")
	}
}
