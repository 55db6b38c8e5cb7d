package main

import (
	"log/slog"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
	"github.com/isw2/evalplot/internal/projectconfig"
	"github.com/isw2/evalplot/internal/utils"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	debug      bool
	configPath string
	inputDir   string
}

// loadProject reads the configuration (--config, or .evalplot.yaml found
// upward from the working directory) and applies flag overrides.
func loadProject(opts *rootOptions) (*projectconfig.ProjectConfig, error) {
	var (
		cfg *projectconfig.ProjectConfig
		err error
	)
	if opts.configPath != "" {
		cfg, err = projectconfig.LoadFile(opts.configPath)
	} else {
		cfg, err = projectconfig.Load(".")
	}
	if err != nil {
		return nil, err
	}
	if opts.inputDir != "" {
		cfg.Paths.InputDir = opts.inputDir
	}
	return cfg, nil
}

// loadTable resolves name against the configured input directory and loads
// the results file.
func loadTable(cfg *projectconfig.ProjectConfig, name string) (*dataset.Table, string, error) {
	path, err := utils.ResolveInputFile(name, cfg.Paths.InputDir)
	if err != nil {
		return nil, "", &dataset.LoadError{Path: utils.ResolvePath(name, cfg.Paths.InputDir), Err: err}
	}
	slog.Debug("Resolved results file", "name", name, "path", path)

	tbl, err := dataset.LoadResults(path)
	if err != nil {
		return nil, "", err
	}

	if utils.DebugEnabled() {
		counts := make([]int, 0, len(metrics.All))
		for _, m := range metrics.All {
			col, err := tbl.Column(m)
			if err != nil {
				return nil, "", err
			}
			counts = append(counts, metrics.Count(col))
		}
		utils.DebugColumns("Present values per metric", metrics.All, counts)
	}
	return tbl, path, nil
}
