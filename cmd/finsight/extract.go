package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"finsight/pkg/core/ingest"
	"finsight/pkg/core/pipeline"
	"finsight/pkg/core/statement"
)

// extract pulls figures out of a text-based PDF. The positional form prints a
// field template for the user to review; --confirmed feeds the reviewed
// template back in and runs the analysis on it.
func newExtractCmd() *cobra.Command {
	var (
		confirmed string
		industry  string
		client    string
		format    string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "extract [statements.pdf]",
		Short: "Extract figures from a PDF and analyze them after review",
		RunE: func(cmd *cobra.Command, args []string) error {
			if confirmed != "" {
				return runConfirmed(cmd, confirmed, industry, client, format, out)
			}
			if len(args) != 1 {
				return fmt.Errorf("expected a PDF path, or --confirmed with a reviewed template")
			}
			return runExtract(args[0], out)
		},
	}

	cmd.Flags().StringVar(&confirmed, "confirmed", "", "reviewed field template (json) to analyze")
	cmd.Flags().StringVar(&industry, "industry", "", "industry for benchmark comparison")
	cmd.Flags().StringVar(&client, "client", "", "client name")
	cmd.Flags().StringVar(&format, "format", "md", "output format: md, html or json")
	cmd.Flags().StringVar(&out, "out", "", "write output to a file instead of stdout")

	return cmd
}

func runExtract(path, out string) error {
	text, err := ingest.ExtractPDFText(path)
	if err != nil {
		return err
	}
	ex := ingest.ParseStatementText(text)
	for _, note := range ex.Notes {
		log.Printf("[Extract] %s", note)
	}
	log.Printf("[Extract] found %d fields; review the template and rerun with --confirmed", len(ex.Fields))

	template := ingest.ConfirmationTemplate(ex)
	raw, err := json.MarshalIndent(template, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}
	if out != "" {
		return os.WriteFile(out, append(raw, '\n'), 0644)
	}
	fmt.Println(string(raw))
	return nil
}

func runConfirmed(cmd *cobra.Command, path, industry, client, format, out string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading template: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	o, err := pipeline.NewOrchestrator(pipeline.DefaultConfig())
	if err != nil {
		return err
	}
	rec := ingest.BuildConfirmedRecord(fields)
	result, err := o.AnalyzeRecords(cmd.Context(), []*statement.PeriodRecord{rec}, nil, industry, client)
	if err != nil {
		return err
	}

	rendered, err := render(result, "", format)
	if err != nil {
		return err
	}
	if out != "" {
		return os.WriteFile(out, []byte(rendered), 0644)
	}
	fmt.Println(rendered)
	return nil
}
