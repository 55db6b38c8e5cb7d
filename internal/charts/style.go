package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
)

// FigureSize is the physical size and resolution of one rendered image.
type FigureSize struct {
	Width  vg.Length
	Height vg.Length
	DPI    int
}

// Pixels returns the size of the encoded image.
func (f FigureSize) Pixels() (int, int) {
	return int(f.Width.Dots(float64(f.DPI))), int(f.Height.Dots(float64(f.DPI)))
}

// LegendPlacement selects the corner a legend is drawn in.
type LegendPlacement struct {
	Top  bool
	Left bool
}

// ParseLegendPlacement accepts "top-right", "top-left", "bottom-right" and
// "bottom-left".
func ParseLegendPlacement(s string) (LegendPlacement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top-right", "":
		return LegendPlacement{Top: true}, nil
	case "top-left":
		return LegendPlacement{Top: true, Left: true}, nil
	case "bottom-right":
		return LegendPlacement{}, nil
	case "bottom-left":
		return LegendPlacement{Left: true}, nil
	}
	return LegendPlacement{}, fmt.Errorf("unknown legend placement %q", s)
}

// Style carries everything a renderer needs to know about presentation.
// Renderers never read process-wide plotting state.
type Style struct {
	// Palette colours feature-selection groups and, in the bar chart, metrics.
	// It is cycled when there are more groups than colours.
	Palette []color.Color
	// Highlight holds one colour per main metric for the winning bar.
	Highlight []color.Color
	Legend    LegendPlacement

	Box  FigureSize // one per-metric box plot
	Grid FigureSize // one cell of the faceted grid
	Bar  FigureSize // the mean bar chart

	// GroupWidth is the share of a category slot the dodged boxes or bars fill.
	GroupWidth float64
	LineWidth  vg.Length
}

// Pastel1 is the nine-colour qualitative palette used by default.
var Pastel1 = []color.Color{
	color.RGBA{R: 0xfb, G: 0xb4, B: 0xae, A: 0xff},
	color.RGBA{R: 0xb3, G: 0xcd, B: 0xe3, A: 0xff},
	color.RGBA{R: 0xcc, G: 0xeb, B: 0xc5, A: 0xff},
	color.RGBA{R: 0xde, G: 0xcb, B: 0xe4, A: 0xff},
	color.RGBA{R: 0xfe, G: 0xd9, B: 0xa6, A: 0xff},
	color.RGBA{R: 0xff, G: 0xff, B: 0xcc, A: 0xff},
	color.RGBA{R: 0xe5, G: 0xd8, B: 0xbd, A: 0xff},
	color.RGBA{R: 0xfd, G: 0xda, B: 0xec, A: 0xff},
	color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff},
}

// DefaultHighlight pairs with metrics.Main.
var DefaultHighlight = []color.Color{
	colornames.Crimson,
	colornames.Royalblue,
	colornames.Limegreen,
	colornames.Purple,
	colornames.Orange,
	colornames.Yellow,
}

// DefaultStyle returns the presentation used when nothing is configured.
func DefaultStyle() Style {
	return Style{
		Palette:    append([]color.Color(nil), Pastel1...),
		Highlight:  append([]color.Color(nil), DefaultHighlight...),
		Legend:     LegendPlacement{Top: true},
		Box:        FigureSize{Width: 16 * vg.Inch, Height: 7 * vg.Inch, DPI: 100},
		Grid:       FigureSize{Width: 9 * vg.Inch, Height: 5 * vg.Inch, DPI: 200},
		Bar:        FigureSize{Width: 18 * vg.Inch, Height: 7 * vg.Inch, DPI: 200},
		GroupWidth: 0.6,
		LineWidth:  vg.Points(1),
	}
}

// Validate reports settings no chart can be drawn with.
func (s Style) Validate() error {
	if len(s.Palette) == 0 {
		return fmt.Errorf("style: palette is empty")
	}
	if len(s.Highlight) == 0 {
		return fmt.Errorf("style: highlight palette is empty")
	}
	for name, f := range map[string]FigureSize{"box": s.Box, "grid": s.Grid, "bar": s.Bar} {
		if f.Width <= 0 || f.Height <= 0 || f.DPI <= 0 {
			return fmt.Errorf("style: %s figure needs a positive width, height and dpi", name)
		}
	}
	if s.GroupWidth <= 0 || s.GroupWidth > 1 {
		return fmt.Errorf("style: group width must be in (0, 1], got %g", s.GroupWidth)
	}
	return nil
}

// PaletteColor returns the colour for the i-th group, cycling the palette.
func (s Style) PaletteColor(i int) color.Color {
	return s.Palette[i%len(s.Palette)]
}

// HighlightColor returns the highlight colour for the i-th main metric.
func (s Style) HighlightColor(i int) color.Color {
	return s.Highlight[i%len(s.Highlight)]
}

// ParseColor accepts a CSS colour name ("crimson") or a hex triplet
// ("#fbb4ae" or "#fba").
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return nil, fmt.Errorf("unknown colour %q", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return nil, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid hex colour %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// ParseColors parses every entry of names with ParseColor.
func ParseColors(names []string) ([]color.Color, error) {
	out := make([]color.Color, 0, len(names))
	for _, n := range names {
		c, err := ParseColor(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
