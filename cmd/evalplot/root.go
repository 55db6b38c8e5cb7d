package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/isw2/evalplot/internal/charts"
	"github.com/isw2/evalplot/internal/spinner"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	var outDir string

	cmd := &cobra.Command{
		Use:   "evalplot <results-file>",
		Short: "evalplot - charts for model evaluation results",
		Long: `evalplot reads a results file of evaluation runs (one row per run, with
Model, Feature Selection and metric columns) and writes comparison charts:

  - one box plot per metric (<metric>_boxplot.png)
  - a grid of box plots for the main metrics (main_metrics_grid_boxplot.png)
  - a bar chart of mean main metrics per Model / Feature Selection with the
    best pair of every metric highlighted
    (mean_metrics_model_fs_barplot_highlighted.png)

A relative results file is looked up in the input directory (../output by
default). Fields may be separated by tabs, semicolons or commas.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlots(cmd, opts, outDir, args[0])
		},
	}

	pf := cmd.PersistentFlags()
	pf.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	pf.StringVar(&opts.configPath, "config", "", "Path to a config file (default: .evalplot.yaml searched upward from the working directory)")
	pf.StringVar(&opts.inputDir, "input-dir", "", "Directory relative results files are read from (overrides paths.input_dir)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory charts are written to (overrides paths.output_dir)")

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if opts.debug {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newSummaryCommand(opts))

	return cmd
}

func runPlots(cmd *cobra.Command, opts *rootOptions, outDir, name string) error {
	cfg, err := loadProject(opts)
	if err != nil {
		return err
	}
	if outDir != "" {
		cfg.Paths.OutputDir = outDir
	}
	style, err := cfg.ChartStyle()
	if err != nil {
		return err
	}

	reporter := newStatusReporter(cmd.OutOrStdout())

	tbl, path, err := loadTable(cfg, name)
	if err != nil {
		return err
	}
	reporter.loaded(path, tbl.Len(), len(tbl.ModelOrder()), len(tbl.FeatureSelectionOrder()))

	var progress *spinner.Spinner
	showProgress := !opts.debug && isTerminal(os.Stderr)
	hooks := charts.Hooks{
		Start: func(file string) {
			if showProgress {
				progress = spinner.Start(os.Stderr, "rendering "+file)
			}
		},
		Written: func(path string) {
			progress.Stop()
			progress = nil
			reporter.wrote(path)
		},
	}

	written, err := charts.RenderAll(tbl, cfg.Paths.OutputDir, style, hooks)
	progress.Stop()
	if err != nil {
		return err
	}
	reporter.finished(len(written), cfg.Paths.OutputDir)
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
