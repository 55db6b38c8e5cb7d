package charts

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// plotAreaShare approximates the fraction of a figure's width taken by the
// data area once axes and labels are laid out.
const plotAreaShare = 0.85

// slotWidth estimates the drawn length of one category slot when n
// categories span a figure of the given width.
func slotWidth(figure vg.Length, n int) vg.Length {
	if n < 1 {
		n = 1
	}
	return figure * plotAreaShare / vg.Length(n)
}

// dodge returns the offset of member j of an n-wide group of glyphs of
// width w, centring the group on its category.
func dodge(j, n int, w vg.Length) vg.Length {
	return vg.Length(float64(j)-float64(n-1)/2) * w
}

// swatch is a filled legend thumbnail.
type swatch struct {
	color color.Color
}

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.color, c.ClipPolygonY(pts))
}

// addLegend writes a titled list of colour swatches to l.
func addLegend(l *plot.Legend, title string, names []string, colorOf func(int) color.Color, at LegendPlacement) {
	l.Add(title)
	for i, name := range names {
		l.Add(name, swatch{color: colorOf(i)})
	}
	l.Top = at.Top
	l.Left = at.Left
}

// legendStrip is the width reserved at the right of a figure for a legend
// drawn outside the data area.
const legendStrip = 2.5 * vg.Inch

// drawLegendStrip draws legend left-aligned in the strip canvas c.
func drawLegendStrip(legend plot.Legend, c draw.Canvas) {
	legend.Left = true
	legend.XOffs = vg.Millimeter * 2
	legend.Draw(c)
}

// withLegendStrip widens size by the legend strip.
func withLegendStrip(size FigureSize) FigureSize {
	size.Width += legendStrip
	return size
}

// savePNG draws onto a canvas of the given size and writes it to path.
func savePNG(path string, size FigureSize, paint func(dc draw.Canvas)) error {
	img := vgimg.NewWith(vgimg.UseWH(size.Width, size.Height), vgimg.UseDPI(size.DPI))
	paint(draw.New(img))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// savePlotBeside renders p into size and legend into a strip to its right.
func savePlotBeside(p *plot.Plot, legend plot.Legend, path string, size FigureSize) error {
	return savePNG(path, withLegendStrip(size), func(dc draw.Canvas) {
		width := dc.Max.X - dc.Min.X
		p.Draw(draw.Crop(dc, 0, -legendStrip, 0, 0))
		drawLegendStrip(legend, draw.Crop(dc, width-legendStrip, 0, 0, 0))
	})
}

// savePlot renders a single plot filling the whole figure.
func savePlot(p *plot.Plot, path string, size FigureSize) error {
	return savePNG(path, size, p.Draw)
}
