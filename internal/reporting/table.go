package reporting

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/isw2/evalplot/internal/dataset"
	"github.com/isw2/evalplot/internal/metrics"
)

var printer = message.NewPrinter(language.English)

// WriteTable writes the aligned text summary followed by the per-metric
// interpretation. Winning cells carry a trailing "*".
func WriteTable(w io.Writer, s *Summary) error {
	header := append([]string{metrics.ModelColumn + dataset.LabelSeparator + metrics.FeatureSelectionColumn, "n"}, s.Metrics...)
	rows := make([][]string, 0, len(s.Rows))
	for _, r := range s.Rows {
		line := []string{r.Label, fmt.Sprint(r.Runs)}
		for _, c := range r.Cells {
			line = append(line, formatCell(c, "*"))
		}
		rows = append(rows, line)
	}

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, line := range rows {
		for i, cell := range line {
			if sw := runewidth.StringWidth(cell); sw > widths[i] {
				widths[i] = sw
			}
		}
	}

	var b strings.Builder
	b.WriteString(printer.Sprintf("%s: %d runs, %d Model / Feature Selection pairs\n\n", s.Source, s.TotalRuns, len(s.Rows)))
	writeAligned(&b, header, widths)
	sep := make([]string, len(widths))
	for i, wd := range widths {
		sep[i] = strings.Repeat("-", wd)
	}
	writeAligned(&b, sep, widths)
	for _, line := range rows {
		writeAligned(&b, line, widths)
	}
	if s.WithCI {
		b.WriteString(fmt.Sprintf("\n[low, high]: %.0f%% bootstrap confidence interval\n", s.ConfidenceLevel*100))
	}
	b.WriteString("\n")
	b.WriteString(FormatInterpretation(s))

	_, err := io.WriteString(w, b.String())
	return err
}

func writeAligned(b *strings.Builder, cells []string, widths []int) {
	for i, c := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		if i == len(cells)-1 {
			b.WriteString(c)
			continue
		}
		b.WriteString(padRight(c, widths[i]))
	}
	b.WriteString("\n")
}

// padRight pads s with spaces to the given display width, accounting for
// wide runes.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
