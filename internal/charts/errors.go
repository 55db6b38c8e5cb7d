// Package charts renders the comparison charts of a results table to PNG
// files with gonum/plot.
package charts

import "fmt"

// RenderError reports a chart that could not be produced.
type RenderError struct {
	File string
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s: %v", e.File, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
