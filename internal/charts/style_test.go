package charts

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
	"gonum.org/v1/plot/vg"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.Color
		wantErr bool
	}{
		{in: "crimson", want: colornames.Crimson},
		{in: " RoyalBlue ", want: colornames.Royalblue},
		{in: "#fbb4ae", want: color.RGBA{R: 0xfb, G: 0xb4, B: 0xae, A: 0xff}},
		{in: "#FFF", want: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "notacolour", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColors(t *testing.T) {
	got, err := ParseColors([]string{"orange", "#000000"})
	require.NoError(t, err)
	assert.Equal(t, []color.Color{colornames.Orange, color.RGBA{A: 0xff}}, got)

	_, err = ParseColors([]string{"orange", "nope"})
	require.Error(t, err)
}

func TestParseLegendPlacement(t *testing.T) {
	tests := map[string]LegendPlacement{
		"":             {Top: true},
		"top-right":    {Top: true},
		"Top-Left":     {Top: true, Left: true},
		"bottom-right": {},
		"bottom-left":  {Left: true},
	}
	for in, want := range tests {
		got, err := ParseLegendPlacement(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLegendPlacement("middle")
	require.Error(t, err)
}

func TestStyle_PaletteCycles(t *testing.T) {
	s := DefaultStyle()
	assert.Equal(t, Pastel1[0], s.PaletteColor(len(Pastel1)))
	assert.Equal(t, Pastel1[2], s.PaletteColor(2))
	assert.Equal(t, colornames.Yellow, s.HighlightColor(5))
	assert.Equal(t, colornames.Crimson, s.HighlightColor(6))
}

func TestStyle_Validate(t *testing.T) {
	require.NoError(t, DefaultStyle().Validate())

	tests := []struct {
		name   string
		mutate func(*Style)
		msg    string
	}{
		{"empty palette", func(s *Style) { s.Palette = nil }, "palette is empty"},
		{"empty highlight", func(s *Style) { s.Highlight = nil }, "highlight palette is empty"},
		{"zero dpi", func(s *Style) { s.Bar.DPI = 0 }, "bar figure"},
		{"zero width", func(s *Style) { s.Box.Width = 0 }, "box figure"},
		{"group width", func(s *Style) { s.GroupWidth = 1.5 }, "group width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultStyle()
			tt.mutate(&s)
			err := s.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestFigureSize_Pixels(t *testing.T) {
	w, h := FigureSize{Width: 16 * vg.Inch, Height: 7 * vg.Inch, DPI: 100}.Pixels()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 700, h)
}
