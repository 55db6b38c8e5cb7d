package charts

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
)

// GridFile is the output name of the faceted grid.
const GridFile = "main_metrics_grid_boxplot.png"

// MetricGrid builds the faceted grid: one row per main metric, one column
// per model, with Feature Selection on the x-axis of every cell. Each cell
// keeps its own y range.
func MetricGrid(t *dataset.Table, style Style) ([][]*plot.Plot, error) {
	models := t.ModelOrder()
	selections := t.FeatureSelectionOrder()
	w := slotWidth(style.Grid.Width, len(selections)) * vg.Length(style.GroupWidth)

	long, err := t.Melt(metrics.Main)
	if err != nil {
		return nil, err
	}
	byMetric := make(map[string]map[dataset.GroupKey][]float64, len(metrics.Main))
	for _, row := range long {
		if math.IsNaN(row.Value) || math.IsInf(row.Value, 0) {
			continue
		}
		if byMetric[row.Metric] == nil {
			byMetric[row.Metric] = make(map[dataset.GroupKey][]float64)
		}
		byMetric[row.Metric][row.Key()] = append(byMetric[row.Metric][row.Key()], row.Value)
	}

	grid := make([][]*plot.Plot, len(metrics.Main))
	for r, metric := range metrics.Main {
		groups := byMetric[metric]
		if len(groups) == 0 {
			return nil, fmt.Errorf("no values to plot for %s", metric)
		}

		grid[r] = make([]*plot.Plot, len(models))
		for c, model := range models {
			p := plot.New()
			p.Title.Text = fmt.Sprintf("Metric = %s | %s = %s", metric, metrics.ModelColumn, model)
			p.NominalX(selections...)
			p.X.Min, p.X.Max = -0.5, float64(len(selections))-0.5
			if c == 0 {
				p.Y.Label.Text = "Value"
			}
			if r == len(metrics.Main)-1 {
				p.X.Label.Text = metrics.FeatureSelectionColumn
			}
			for j, fs := range selections {
				values := groups[dataset.GroupKey{Model: model, FeatureSelection: fs}]
				if len(values) == 0 {
					continue
				}
				b, err := newBox(w, float64(j), values, style, j)
				if err != nil {
					return nil, fmt.Errorf("%s, %s / %s: %w", metric, model, fs, err)
				}
				p.Add(b)
			}
			grid[r][c] = p
		}
	}
	return grid, nil
}

// gridSize is the whole figure: one Grid-sized tile per cell plus the
// legend strip.
func gridSize(style Style, rows, cols int) FigureSize {
	return withLegendStrip(FigureSize{
		Width:  style.Grid.Width * vg.Length(cols),
		Height: style.Grid.Height * vg.Length(rows),
		DPI:    style.Grid.DPI,
	})
}

func saveGrid(grid [][]*plot.Plot, selections []string, path string, style Style) error {
	size := gridSize(style, len(grid), len(grid[0]))
	return savePNG(path, size, func(dc draw.Canvas) {
		width := dc.Max.X - dc.Min.X
		cells := draw.Crop(dc, 0, -legendStrip, 0, 0)
		side := draw.Crop(dc, width-legendStrip, 0, 0, 0)

		tiles := draw.Tiles{
			Rows:      len(grid),
			Cols:      len(grid[0]),
			PadX:      vg.Millimeter * 4,
			PadY:      vg.Millimeter * 4,
			PadTop:    vg.Millimeter * 2,
			PadBottom: vg.Millimeter * 2,
			PadLeft:   vg.Millimeter * 2,
			PadRight:  vg.Millimeter * 2,
		}
		canvases := plot.Align(grid, tiles, cells)
		for r := range grid {
			for c := range grid[r] {
				grid[r][c].Draw(canvases[r][c])
			}
		}

		legend := plot.NewLegend()
		addLegend(&legend, metrics.FeatureSelectionColumn, selections, style.PaletteColor, style.Legend)
		drawLegendStrip(legend, side)
	})
}

func gridJob(t *dataset.Table, style Style) job {
	return job{
		file: GridFile,
		render: func(path string) error {
			grid, err := MetricGrid(t, style)
			if err != nil {
				return err
			}
			return saveGrid(grid, t.FeatureSelectionOrder(), path, style)
		},
	}
}

// RenderMetricGrid writes the faceted grid to outDir and returns its path.
func RenderMetricGrid(t *dataset.Table, outDir string, style Style) (string, error) {
	if err := style.Validate(); err != nil {
		return "", err
	}
	written, err := runJobs(outDir, []job{gridJob(t, style)}, Hooks{})
	if err != nil {
		return "", err
	}
	return written[0], nil
}
