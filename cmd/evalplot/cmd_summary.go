package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/isw2/evalplot/internal/metrics"
	"github.com/isw2/evalplot/internal/reporting"
)

type summaryOptions struct {
	format     string
	output     string
	ci         bool
	level      float64
	allMetrics bool
}

func newSummaryCommand(root *rootOptions) *cobra.Command {
	opts := &summaryOptions{}

	cmd := &cobra.Command{
		Use:   "summary <results-file>",
		Short: "Print the mean of every metric per Model / Feature Selection",
		Long: `Summarise a results file: the mean of each main metric per
Model / Feature Selection pair, the number of runs behind it, and the best
pair of every metric.

Formats: table (default), json, markdown, html and xlsx. xlsx needs --output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSummary(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "table", "Output format: table, json, markdown, html or xlsx")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the summary to a file instead of stdout")
	cmd.Flags().BoolVar(&opts.ci, "ci", false, "Add a bootstrap confidence interval to every mean")
	cmd.Flags().Float64Var(&opts.level, "level", 0.95, "Confidence level used with --ci")
	cmd.Flags().BoolVar(&opts.allMetrics, "all-metrics", false, "Summarise all eleven metrics instead of the six main ones")

	return cmd
}

func runSummary(cmd *cobra.Command, root *rootOptions, opts *summaryOptions, name string) error {
	cfg, err := loadProject(root)
	if err != nil {
		return err
	}

	// Flags given on the command line win over the config file.
	flags := cmd.Flags()
	if !flags.Changed("format") {
		opts.format = cfg.Summary.Format
	}
	if !flags.Changed("ci") && cfg.Summary.CI != nil {
		opts.ci = *cfg.Summary.CI
	}
	if !flags.Changed("level") {
		opts.level = cfg.Summary.ConfidenceLevel
	}

	format, err := reporting.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	if format == reporting.FormatXLSX && opts.output == "" {
		return fmt.Errorf("--format xlsx requires --output")
	}
	if opts.ci && (opts.level <= 0 || opts.level >= 1) {
		return fmt.Errorf("confidence level must be between 0 and 1, got %g", opts.level)
	}

	tbl, path, err := loadTable(cfg, name)
	if err != nil {
		return err
	}

	metricNames := metrics.Main
	if opts.allMetrics {
		metricNames = metrics.All
	}
	s, err := reporting.BuildSummary(filepath.Base(path), tbl, metricNames, reporting.Options{
		CI:              opts.ci,
		ConfidenceLevel: opts.level,
	})
	if err != nil {
		return err
	}

	if format == reporting.FormatXLSX {
		if err := reporting.WriteXLSX(opts.output, s); err != nil {
			return err
		}
		newStatusReporter(cmd.OutOrStdout()).wrote(opts.output)
		return nil
	}

	if opts.output == "" {
		return writeSummary(cmd.OutOrStdout(), format, s)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("creating %s: %w", opts.output, err)
	}
	if err := writeSummary(f, format, s); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	newStatusReporter(cmd.OutOrStdout()).wrote(opts.output)
	return nil
}

func writeSummary(w io.Writer, format reporting.Format, s *reporting.Summary) error {
	switch format {
	case reporting.FormatJSON:
		return reporting.WriteJSON(w, s)
	case reporting.FormatMarkdown:
		return reporting.WriteMarkdown(w, s)
	case reporting.FormatHTML:
		return reporting.WriteHTML(w, s)
	default:
		return reporting.WriteTable(w, s)
	}
}
