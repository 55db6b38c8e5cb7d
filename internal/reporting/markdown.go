package reporting

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/isw2/evalplot/internal/metrics"
)

// Markdown renders the summary as a GitHub-flavoured markdown document.
// Winning cells are bold.
func Markdown(s *Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Mean metrics: %s\n\n", escapeCell(s.Source)))
	b.WriteString(printer.Sprintf("%d runs, %d Model / Feature Selection pairs.\n\n", s.TotalRuns, len(s.Rows)))

	b.WriteString("| " + metrics.ModelColumn + " | " + metrics.FeatureSelectionColumn + " | n |")
	for _, m := range s.Metrics {
		b.WriteString(" " + escapeCell(m) + " |")
	}
	b.WriteString("\n|---|---|---:|")
	for range s.Metrics {
		b.WriteString("---:|")
	}
	b.WriteString("\n")

	for _, r := range s.Rows {
		b.WriteString(fmt.Sprintf("| %s | %s | %d |", escapeCell(r.Model), escapeCell(r.FeatureSelection), r.Runs))
		for _, c := range r.Cells {
			v := formatCell(Cell{Mean: c.Mean, CI: c.CI}, "")
			if c.Best {
				v = "**" + v + "**"
			}
			b.WriteString(" " + v + " |")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n## Best per metric\n\n")
	for _, m := range s.Metrics {
		h, ok := s.Highlights[m]
		if !ok {
			b.WriteString(fmt.Sprintf("- **%s**: no values\n", escapeCell(m)))
			continue
		}
		b.WriteString(fmt.Sprintf("- **%s**: %s, %s (%s)\n", escapeCell(m), escapeCell(h.Label), formatMean(h.Mean), rating(m, h.Mean)))
	}
	if s.WithCI {
		b.WriteString(fmt.Sprintf("\nIntervals are %.0f%% bootstrap confidence intervals.\n", s.ConfidenceLevel*100))
	}
	return b.String()
}

// WriteMarkdown writes Markdown(s) to w.
func WriteMarkdown(w io.Writer, s *Summary) error {
	_, err := io.WriteString(w, Markdown(s))
	return err
}

// WriteHTML renders the markdown summary to an HTML fragment.
func WriteHTML(w io.Writer, s *Summary) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert([]byte(Markdown(s)), &buf); err != nil {
		return fmt.Errorf("rendering html: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
