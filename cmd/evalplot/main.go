package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/isw2/evalplot/internal/charts"
	"github.com/isw2/evalplot/internal/dataset"
)

// Exit codes for different failure modes
const (
	ExitSuccess     = 0
	ExitError       = 1 // Configuration or usage error
	ExitLoadError   = 2 // Results file missing, unreadable or malformed
	ExitRenderError = 3 // A chart could not be produced
)

// exitCode maps an error returned by the command tree to the process exit
// code.
func exitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var loadErr *dataset.LoadError
	if errors.As(err, &loadErr) {
		return ExitLoadError
	}

	var renderErr *charts.RenderError
	if errors.As(err, &renderErr) {
		return ExitRenderError
	}

	return ExitError
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
