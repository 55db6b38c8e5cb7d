// Package projectconfig provides the ProjectConfig struct and loader for
// .evalplot.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"

	"github.com/isw2/evalplot/internal/charts"
	"github.com/isw2/evalplot/internal/utils"
	"github.com/isw2/evalplot/internal/validation"
)

// FileName is the configuration file looked up from the working directory.
const FileName = ".evalplot.yaml"

// Default values for project configuration. These are the single source of
// truth: New() references them and no other code should duplicate them.
const (
	DefaultInputDir  = "../output"
	DefaultOutputDir = "."

	DefaultLegend     = "top-right"
	DefaultGroupWidth = 0.6
	DefaultLineWidth  = 1.0

	DefaultBoxWidth   = 16.0
	DefaultBoxHeight  = 7.0
	DefaultBoxDPI     = 100
	DefaultGridWidth  = 9.0
	DefaultGridHeight = 5.0
	DefaultGridDPI    = 200
	DefaultBarWidth   = 18.0
	DefaultBarHeight  = 7.0
	DefaultBarDPI     = 200

	DefaultSummaryFormat   = "table"
	DefaultConfidenceLevel = 0.95
)

// DefaultPalette is the Pastel1 palette written as hex triplets.
var DefaultPalette = []string{
	"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6",
	"#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2",
}

// DefaultHighlight holds one colour per main metric.
var DefaultHighlight = []string{"crimson", "royalblue", "limegreen", "purple", "orange", "yellow"}

// PathsConfig holds where results are read from and charts written to.
type PathsConfig struct {
	InputDir  string `yaml:"input_dir,omitempty"`
	OutputDir string `yaml:"output_dir,omitempty"`
}

// FigureConfig is a figure size in inches plus its resolution.
type FigureConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
	DPI    int     `yaml:"dpi,omitempty"`
}

// StyleConfig holds chart presentation settings.
type StyleConfig struct {
	Palette    []string     `yaml:"palette,omitempty"`
	Highlight  []string     `yaml:"highlight,omitempty"`
	Legend     string       `yaml:"legend,omitempty"`
	GroupWidth float64      `yaml:"group_width,omitempty"`
	LineWidth  float64      `yaml:"line_width,omitempty"`
	Box        FigureConfig `yaml:"box,omitempty"`
	Grid       FigureConfig `yaml:"grid,omitempty"`
	Bar        FigureConfig `yaml:"bar,omitempty"`
}

// SummaryConfig holds defaults for the summary command.
type SummaryConfig struct {
	Format          string  `yaml:"format,omitempty"`
	CI              *bool   `yaml:"ci,omitempty"`
	ConfidenceLevel float64 `yaml:"confidence_level,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .evalplot.yaml.
type ProjectConfig struct {
	Paths   PathsConfig   `yaml:"paths,omitempty"`
	Style   StyleConfig   `yaml:"style,omitempty"`
	Summary SummaryConfig `yaml:"summary,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Paths: PathsConfig{
			InputDir:  DefaultInputDir,
			OutputDir: DefaultOutputDir,
		},
		Style: StyleConfig{
			Palette:    append([]string(nil), DefaultPalette...),
			Highlight:  append([]string(nil), DefaultHighlight...),
			Legend:     DefaultLegend,
			GroupWidth: DefaultGroupWidth,
			LineWidth:  DefaultLineWidth,
			Box:        FigureConfig{Width: DefaultBoxWidth, Height: DefaultBoxHeight, DPI: DefaultBoxDPI},
			Grid:       FigureConfig{Width: DefaultGridWidth, Height: DefaultGridHeight, DPI: DefaultGridDPI},
			Bar:        FigureConfig{Width: DefaultBarWidth, Height: DefaultBarHeight, DPI: DefaultBarDPI},
		},
		Summary: SummaryConfig{
			Format:          DefaultSummaryFormat,
			CI:              utils.Ptr(false),
			ConfidenceLevel: DefaultConfidenceLevel,
		},
	}
}

// Load finds .evalplot.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", FileName, err)
	}
	return parse(data, FileName)
}

// LoadFile reads the configuration at path. Unlike Load, a missing file is
// an error.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, name string) (*ProjectConfig, error) {
	if errs := validation.ValidateConfigBytes(data); len(errs) > 0 {
		return nil, fmt.Errorf("invalid %s:\n  %s", name, strings.Join(errs, "\n  "))
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}

	cfg := New()
	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .evalplot.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, FileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	// Paths
	if src.Paths.InputDir != "" {
		dst.Paths.InputDir = src.Paths.InputDir
	}
	if src.Paths.OutputDir != "" {
		dst.Paths.OutputDir = src.Paths.OutputDir
	}

	// Style
	if len(src.Style.Palette) > 0 {
		dst.Style.Palette = src.Style.Palette
	}
	if len(src.Style.Highlight) > 0 {
		dst.Style.Highlight = src.Style.Highlight
	}
	if src.Style.Legend != "" {
		dst.Style.Legend = src.Style.Legend
	}
	if src.Style.GroupWidth != 0 {
		dst.Style.GroupWidth = src.Style.GroupWidth
	}
	if src.Style.LineWidth != 0 {
		dst.Style.LineWidth = src.Style.LineWidth
	}
	mergeFigure(&dst.Style.Box, src.Style.Box)
	mergeFigure(&dst.Style.Grid, src.Style.Grid)
	mergeFigure(&dst.Style.Bar, src.Style.Bar)

	// Summary
	if src.Summary.Format != "" {
		dst.Summary.Format = src.Summary.Format
	}
	if src.Summary.CI != nil {
		dst.Summary.CI = src.Summary.CI
	}
	if src.Summary.ConfidenceLevel != 0 {
		dst.Summary.ConfidenceLevel = src.Summary.ConfidenceLevel
	}
}

func mergeFigure(dst *FigureConfig, src FigureConfig) {
	if src.Width != 0 {
		dst.Width = src.Width
	}
	if src.Height != 0 {
		dst.Height = src.Height
	}
	if src.DPI != 0 {
		dst.DPI = src.DPI
	}
}

// ChartStyle converts the style section into the value the renderers take.
func (c *ProjectConfig) ChartStyle() (charts.Style, error) {
	palette, err := charts.ParseColors(c.Style.Palette)
	if err != nil {
		return charts.Style{}, fmt.Errorf("style.palette: %w", err)
	}
	highlight, err := charts.ParseColors(c.Style.Highlight)
	if err != nil {
		return charts.Style{}, fmt.Errorf("style.highlight: %w", err)
	}
	legend, err := charts.ParseLegendPlacement(c.Style.Legend)
	if err != nil {
		return charts.Style{}, fmt.Errorf("style.legend: %w", err)
	}

	s := charts.Style{
		Palette:    palette,
		Highlight:  highlight,
		Legend:     legend,
		Box:        c.Style.Box.figure(),
		Grid:       c.Style.Grid.figure(),
		Bar:        c.Style.Bar.figure(),
		GroupWidth: c.Style.GroupWidth,
		LineWidth:  vg.Points(c.Style.LineWidth),
	}
	if err := s.Validate(); err != nil {
		return charts.Style{}, err
	}
	return s, nil
}

func (f FigureConfig) figure() charts.FigureSize {
	return charts.FigureSize{
		Width:  vg.Length(f.Width) * vg.Inch,
		Height: vg.Length(f.Height) * vg.Inch,
		DPI:    f.DPI,
	}
}
