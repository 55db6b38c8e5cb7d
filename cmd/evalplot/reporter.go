package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// statusReporter prints the user-facing progress lines of a run.
type statusReporter struct {
	w       io.Writer
	printer *message.Printer

	green func(a ...any) string
	cyan  func(a ...any) string
}

func newStatusReporter(w io.Writer) *statusReporter {
	return &statusReporter{
		w:       w,
		printer: message.NewPrinter(language.English),
		green:   color.New(color.FgGreen).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
	}
}

func (r *statusReporter) loaded(path string, runs, models, selections int) {
	r.printer.Fprintf(r.w, "%s %s: %d runs, %d models, %d feature selections\n", //nolint:errcheck
		r.cyan("•"), path, runs, models, selections)
}

func (r *statusReporter) wrote(path string) {
	fmt.Fprintf(r.w, "%s wrote %s\n", r.green("✓"), path) //nolint:errcheck
}

func (r *statusReporter) finished(count int, dir string) {
	r.printer.Fprintf(r.w, "%s %d charts written to %s\n", r.green("✓"), count, dir) //nolint:errcheck
}
