package charts

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
)

// BoxPlotFile is the output name of the box plot for metric.
func BoxPlotFile(metric string) string {
	return metrics.FileSlug(metric) + "_boxplot.png"
}

// MetricBoxPlot builds the box plot of one metric: Model on the x-axis and
// one dodged box per Feature Selection within each model.
func MetricBoxPlot(t *dataset.Table, metric string, style Style) (*plot.Plot, error) {
	groups, err := t.GroupValues(metric)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no values to plot for %s", metric)
	}

	models := t.ModelOrder()
	selections := t.FeatureSelectionOrder()

	p := plot.New()
	p.Title.Text = "Box Plot " + metric
	p.X.Label.Text = metrics.ModelColumn
	p.Y.Label.Text = metric
	p.NominalX(models...)
	p.X.Min, p.X.Max = -0.5, float64(len(models))-0.5

	w := slotWidth(style.Box.Width, len(models)) * vg.Length(style.GroupWidth) / vg.Length(len(selections))
	for j, fs := range selections {
		for i, model := range models {
			values := groups[dataset.GroupKey{Model: model, FeatureSelection: fs}]
			if len(values) == 0 {
				continue
			}
			b, err := newBox(w, float64(i), values, style, j)
			if err != nil {
				return nil, fmt.Errorf("%s / %s: %w", model, fs, err)
			}
			b.Offset = dodge(j, len(selections), w)
			p.Add(b)
		}
	}

	addLegend(&p.Legend, metrics.FeatureSelectionColumn, selections, style.PaletteColor, style.Legend)
	return p, nil
}

// newBox builds one filled box for group j of the palette.
func newBox(w vg.Length, loc float64, values []float64, style Style, j int) (*plotter.BoxPlot, error) {
	b, err := plotter.NewBoxPlot(w, loc, plotter.Values(values))
	if err != nil {
		return nil, err
	}
	b.FillColor = style.PaletteColor(j)
	b.BoxStyle.Width = style.LineWidth
	b.MedianStyle.Width = style.LineWidth
	b.WhiskerStyle.Width = style.LineWidth
	return b, nil
}

func boxPlotJobs(t *dataset.Table, style Style) []job {
	jobs := make([]job, 0, len(metrics.All))
	for _, metric := range metrics.All {
		jobs = append(jobs, job{
			file: BoxPlotFile(metric),
			render: func(path string) error {
				p, err := MetricBoxPlot(t, metric, style)
				if err != nil {
					return err
				}
				return savePlot(p, path, style.Box)
			},
		})
	}
	return jobs
}

// RenderMetricBoxPlots writes one box plot per metric in metrics.All to
// outDir and returns the written paths.
func RenderMetricBoxPlots(t *dataset.Table, outDir string, style Style) ([]string, error) {
	if err := style.Validate(); err != nil {
		return nil, err
	}
	return runJobs(outDir, boxPlotJobs(t, style), Hooks{})
}
