// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/esg-scan/internal/extract"
	"github.com/pdiddy/esg-scan/internal/match"
	"github.com/pdiddy/esg-scan/internal/report"
	"github.com/pdiddy/esg-scan/internal/scan"
	"github.com/pdiddy/esg-scan/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [documents-dir]",
	Short: "Count taxonomy terms in every PDF of a directory",
	Long: `Scan loads the taxonomy, extracts the text of every *.pdf file in the
documents directory, and reports per-document match counts for each
subcategory with at least one match. Text reports on stdout are printed
as each document finishes; JSON, YAML and --output reports are written
once the batch completes.

A document that cannot be read is reported and skipped. A missing documents
directory or one without PDFs ends the run without error. Use --strict to
exit non-zero when any document fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

// newExtractor is replaced in tests.
var newExtractor = extract.New

func init() {
	scanCmd.Flags().String("documents-dir", defaultDocumentsDir, "directory containing PDF files")
	scanCmd.Flags().String("backend", string(types.BackendNative), "text extraction backend: native or pdftotext")
	scanCmd.Flags().String("format", string(types.FormatText), "report format: text, json, or yaml")
	scanCmd.Flags().Int("workers", 1, "number of documents processed in parallel")
	scanCmd.Flags().Int("min-matches", 1, "smallest subcategory total shown in text reports")
	scanCmd.Flags().StringP("output", "o", "", "write the report to this file instead of stdout")
	scanCmd.Flags().Bool("strict", false, "exit non-zero if any document fails extraction")

	for key, flag := range map[string]string{
		"documents_dir": "documents-dir",
		"backend":       "backend",
		"format":        "format",
		"workers":       "workers",
		"min_matches":   "min-matches",
		"output":        "output",
		"strict":        "strict",
	} {
		viper.BindPFlag(key, scanCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(scanCmd)
}

// scanConfig reads the effective settings: flag, then ESG_SCAN_* env, then config file.
func scanConfig(args []string) types.ScanConfig {
	cfg := types.ScanConfig{
		TaxonomyPath: viper.GetString("taxonomy"),
		DocumentsDir: viper.GetString("documents_dir"),
		Backend:      types.ExtractionBackend(viper.GetString("backend")),
		Workers:      viper.GetInt("workers"),
		Strict:       viper.GetBool("strict"),
		Report: types.ReportConfig{
			Format:     types.ReportFormat(viper.GetString("format")),
			MinMatches: viper.GetInt("min_matches"),
			OutputPath: viper.GetString("output"),
		},
	}
	if len(args) == 1 {
		cfg.DocumentsDir = args[0]
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg := scanConfig(args)

	switch cfg.Report.Format {
	case types.FormatText, types.FormatJSON, types.FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q: use text, json, or yaml", cfg.Report.Format)
	}

	tax, err := loadTaxonomy(cfg.TaxonomyPath)
	if err != nil {
		return err
	}

	ex, err := newExtractor(cfg.Backend)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Structured reports on stdout must not be mixed with progress lines.
	progress := cmd.OutOrStdout()
	if cfg.Report.Format != types.FormatText && cfg.Report.OutputPath == "" {
		progress = cmd.ErrOrStderr()
	}

	opts := scan.Options{DocumentsDir: cfg.DocumentsDir, Workers: cfg.Workers}

	// A console text report follows each document's progress lines.
	streaming := cfg.Report.Format == types.FormatText && cfg.Report.OutputPath == ""
	if streaming {
		opts.OnResult = func(r types.DocumentResult, w io.Writer) error {
			return report.WriteDocument(w, r, cfg.Report.MinMatches)
		}
	}

	summary, results, err := scan.Run(ctx, opts, ex, match.NewEvaluator(tax), progress)
	if err != nil {
		if errors.Is(err, scan.ErrNoDocumentsDir) || errors.Is(err, scan.ErrNoPDFs) {
			return nil
		}
		return err
	}

	if !streaming {
		if err := writeReport(cmd.OutOrStdout(), cfg.Report, results); err != nil {
			return err
		}
	}

	if cfg.Strict && summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}

func writeReport(stdout io.Writer, cfg types.ReportConfig, results []types.DocumentResult) error {
	opts := report.Options{Format: cfg.Format, MinMatches: cfg.MinMatches}
	if cfg.OutputPath == "" {
		return report.Write(stdout, results, opts)
	}

	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := report.Write(f, results, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing report file: %w", err)
	}
	fmt.Fprintf(stdout, "\nReport written to %s\n", cfg.OutputPath)
	return nil
}
