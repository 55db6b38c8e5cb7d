package charts

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
)

// Hooks lets a caller follow a rendering run. Nil fields are skipped.
type Hooks struct {
	Start   func(file string)
	Written func(path string)
}

type job struct {
	file   string
	render func(path string) error
}

// OutputFiles lists, in rendering order, the files RenderAll writes.
func OutputFiles() []string {
	files := make([]string, 0, len(metrics.All)+2)
	for _, m := range metrics.All {
		files = append(files, BoxPlotFile(m))
	}
	return append(files, GridFile, BarChartFile)
}

// RenderAll writes every chart to outDir: the per-metric box plots, the
// faceted grid and the highlighted bar chart, in that order. It stops at
// the first failure; files written before it are left in place.
func RenderAll(t *dataset.Table, outDir string, style Style, hooks Hooks) ([]string, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	jobs := boxPlotJobs(t, style)
	jobs = append(jobs, gridJob(t, style), barJob(t, style))
	return runJobs(outDir, jobs, hooks)
}

func runJobs(outDir string, jobs []job, hooks Hooks) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	written := make([]string, 0, len(jobs))
	for _, j := range jobs {
		if hooks.Start != nil {
			hooks.Start(j.file)
		}
		path := filepath.Join(outDir, j.file)
		if err := j.render(path); err != nil {
			var re *RenderError
			if errors.As(err, &re) {
				return written, err
			}
			return written, &RenderError{File: j.file, Err: err}
		}
		slog.Debug("Chart written", "path", path)
		written = append(written, path)
		if hooks.Written != nil {
			hooks.Written(path)
		}
	}
	return written, nil
}
