package charts

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
	"github.com/isw2/evalplot/internal/statistics"
)

// BarChartFile is the output name of the highlighted mean bar chart.
const BarChartFile = "mean_metrics_model_fs_barplot_highlighted.png"

// MeanBarChart builds the bar chart of per-label means: one group of bars
// per composite label, one bar per metric. The legend is drawn beside the
// chart by the renderer, not inside the data area. A bar takes its metric's
// highlight colour when it is that metric's winner in hm. Bars are coloured
// as they are created so no bar is matched back by value.
func MeanBarChart(mt *statistics.MeanTable, hm statistics.HighlightMap, style Style) (*plot.Plot, error) {
	if len(mt.Rows) == 0 {
		return nil, fmt.Errorf("no rows to plot")
	}
	for _, m := range mt.Metrics {
		if _, ok := hm[m]; !ok {
			return nil, fmt.Errorf("no values to plot for %s", m)
		}
	}

	labels := mt.Labels()
	p := plot.New()
	p.Title.Text = "Mean metrics per " + metrics.ModelColumn + dataset.LabelSeparator + metrics.FeatureSelectionColumn + " (max highlighted)"
	p.X.Label.Text = metrics.ModelColumn + dataset.LabelSeparator + metrics.FeatureSelectionColumn
	p.Y.Label.Text = "Mean"
	p.NominalX(labels...)
	p.X.Min, p.X.Max = -0.5, float64(len(labels))-0.5
	p.X.Tick.Label.Rotation = math.Pi / 6
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YTop

	w := slotWidth(style.Bar.Width, len(labels)) * vg.Length(style.GroupWidth) / vg.Length(len(mt.Metrics))
	position := make(map[string]int, len(labels))
	for i, l := range labels {
		position[l] = i
	}
	for _, cell := range mt.Melt() {
		if math.IsNaN(cell.Mean) {
			continue
		}
		j := metrics.IndexOf(mt.Metrics, cell.Metric)
		bar, err := plotter.NewBarChart(plotter.Values{cell.Mean}, w)
		if err != nil {
			return nil, fmt.Errorf("%s, %s: %w", cell.Label, cell.Metric, err)
		}
		bar.XMin = float64(position[cell.Label])
		bar.Offset = dodge(j, len(mt.Metrics), w)
		bar.Color = barColor(style, hm, j, cell.Metric, cell.Label, cell.Mean)
		p.Add(bar)
	}

	return p, nil
}

// meanBarLegend lists the base colour of every metric followed by its
// highlight colour.
func meanBarLegend(metricNames []string, style Style) plot.Legend {
	legend := plot.NewLegend()
	addLegend(&legend, "Metric", metricNames, style.PaletteColor, style.Legend)
	for j, m := range metricNames {
		legend.Add("max "+m, swatch{color: style.HighlightColor(j)})
	}
	return legend
}

// barColor picks the colour of the bar for metric (position j in the metric
// list) and label.
func barColor(style Style, hm statistics.HighlightMap, j int, metric, label string, mean float64) color.Color {
	if hm.IsHighlighted(metric, label, mean) {
		return style.HighlightColor(j)
	}
	return style.PaletteColor(j)
}

func barJob(t *dataset.Table, style Style) job {
	return job{
		file: BarChartFile,
		render: func(path string) error {
			mt, err := statistics.ComputeMeans(t, metrics.Main)
			if err != nil {
				return err
			}
			p, err := MeanBarChart(mt, mt.Highlights(), style)
			if err != nil {
				return err
			}
			return savePlotBeside(p, meanBarLegend(mt.Metrics, style), path, style.Bar)
		},
	}
}

// RenderMeanBarChart writes the highlighted bar chart of the main metrics
// to outDir and returns its path.
func RenderMeanBarChart(t *dataset.Table, outDir string, style Style) (string, error) {
	if err := style.Validate(); err != nil {
		return "", err
	}
	written, err := runJobs(outDir, []job{barJob(t, style)}, Hooks{})
	if err != nil {
		return "", err
	}
	return written[0], nil
}
