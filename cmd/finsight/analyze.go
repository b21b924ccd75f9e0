package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"finsight/pkg/core/calc"
	"finsight/pkg/core/commentary"
	"finsight/pkg/core/ingest"
	"finsight/pkg/core/pipeline"
	"finsight/pkg/core/report"
	"finsight/pkg/core/statement"
	"finsight/pkg/core/store"
)

type analyzeFlags struct {
	pl         string
	bs         string
	cf         string
	industry   string
	client     string
	format     string
	out        string
	configPath string
	demo       bool
	withAI     bool
	save       bool
	force      bool
}

func newAnalyzeCmd() *cobra.Command {
	var f analyzeFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the analysis pipeline over financial statements",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVar(&f.pl, "pl", "", "profit and loss statement (csv, xlsx or html)")
	cmd.Flags().StringVar(&f.bs, "bs", "", "balance sheet (csv, xlsx or html)")
	cmd.Flags().StringVar(&f.cf, "cf", "", "cash flow statement (csv, xlsx or html)")
	cmd.Flags().StringVar(&f.industry, "industry", "", "industry for benchmark comparison (see 'finsight industries')")
	cmd.Flags().StringVar(&f.client, "client", "", "client name for stored runs")
	cmd.Flags().StringVar(&f.format, "format", "md", "output format: md, html or json")
	cmd.Flags().StringVar(&f.out, "out", "", "write the report to a file instead of stdout")
	cmd.Flags().StringVar(&f.configPath, "config", "", "path to a YAML config file")
	cmd.Flags().BoolVar(&f.demo, "demo", false, "run against the built-in demo statements")
	cmd.Flags().BoolVar(&f.withAI, "commentary", false, "generate narrative commentary (uses GEMINI_API_KEY when set)")
	cmd.Flags().BoolVar(&f.save, "save", false, "persist the run to Postgres (requires DATABASE_URL)")
	cmd.Flags().BoolVar(&f.force, "force", false, "produce a report even when self-checks fail")

	return cmd
}

func runAnalyze(ctx context.Context, f analyzeFlags) error {
	cfg := pipeline.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = pipeline.LoadConfig(f.configPath); err != nil {
			return err
		}
	}

	o, err := pipeline.NewOrchestrator(cfg)
	if err != nil {
		return err
	}

	if f.save {
		if err := store.InitDB(ctx); err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer store.Close()
		o.Repo = store.NewPostgresRepository()
	}

	in, err := buildInput(f)
	if err != nil {
		return err
	}

	result, err := o.Analyze(ctx, in)
	if err != nil {
		return err
	}

	if result.HasFails && !f.force {
		for _, c := range result.SelfChecks {
			log.Printf("[Analyze] %s: %s (%s)", c.CheckName, c.Status, c.Detail)
		}
		return fmt.Errorf("self-checks failed; fix the source statements or rerun with --force")
	}

	var narrative string
	if f.withAI {
		b := &commentary.Builder{}
		if os.Getenv("GEMINI_API_KEY") != "" {
			b.Generator = &commentary.GeminiGenerator{Model: cfg.Commentary.Model}
		} else if os.Getenv("DEEPSEEK_API_KEY") != "" {
			b.Generator = &commentary.DeepSeekGenerator{}
		}
		narrative, err = b.Generate(ctx, result)
		if err != nil {
			log.Printf("[Analyze] commentary degraded: %v", err)
		}
	}

	rendered, err := render(result, narrative, f.format)
	if err != nil {
		return err
	}

	if f.out != "" {
		if err := os.WriteFile(f.out, []byte(rendered), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		log.Printf("[Analyze] report written to %s", f.out)
		return nil
	}
	fmt.Println(rendered)
	return nil
}

func buildInput(f analyzeFlags) (pipeline.Input, error) {
	if f.demo {
		return pipeline.DemoInput(), nil
	}
	if f.pl == "" {
		return pipeline.Input{}, fmt.Errorf("a profit and loss statement is required (--pl, or --demo)")
	}

	in := pipeline.Input{Industry: f.industry, Client: f.client}
	var err error
	if in.ProfitLoss, err = loadTable(f.pl, statement.TypeProfitLoss); err != nil {
		return in, err
	}
	if f.bs != "" {
		if in.BalanceSheet, err = loadTable(f.bs, statement.TypeBalanceSheet); err != nil {
			return in, err
		}
	}
	if f.cf != "" {
		if in.CashFlow, err = loadTable(f.cf, statement.TypeCashFlow); err != nil {
			return in, err
		}
	}
	return in, nil
}

func loadTable(path string, typ statement.Type) (*statement.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.ReadCSV(file, typ)
	case ".xlsx":
		return ingest.ReadXLSX(file, typ)
	case ".html", ".htm":
		return ingest.ReadHTML(file, typ)
	default:
		return nil, fmt.Errorf("unsupported file type %q, expected csv, xlsx or html", filepath.Ext(path))
	}
}

func render(result *calc.AnalysisResult, narrative, format string) (string, error) {
	switch format {
	case "md", "markdown":
		return report.RenderMarkdown(result, narrative), nil
	case "html":
		return report.RenderHTML(result, narrative)
	case "json":
		raw, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encoding result: %w", err)
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("unknown format %q, expected md, html or json", format)
	}
}
