package utils

import (
	"context"
	"log/slog"
)

// DebugEnabled reports whether the default logger emits debug records.
func DebugEnabled() bool {
	return slog.Default().Enabled(context.Background(), slog.LevelDebug)
}

// DebugColumns logs a column summary of a loaded file at debug level. Each
// entry of counts is logged under its column name; columns beyond counts
// are only counted.
func DebugColumns(msg string, columns []string, counts []int) {
	if !DebugEnabled() {
		return
	}

	attrs := []any{"columns", len(columns)}
	for i, c := range columns {
		if i < len(counts) {
			attrs = append(attrs, c, counts[i])
		}
	}

	slog.Debug(msg, attrs...)
}
