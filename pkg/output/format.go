// Package output renders reconciliation results as text, a table or JSON.
package output

import (
	"fmt"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatText streams one report line per dependency while processing.
	FormatText Format = "text"
	// FormatTable prints a table after processing.
	FormatTable Format = "table"
	// FormatJSON prints a JSON document after processing.
	FormatJSON Format = "json"
)

// ParseFormat parses a format string, case-insensitively. An empty string
// selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text":
		return FormatText, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want text, table or json)", s)
	}
}

// IsStreaming reports whether the format writes lines during processing
// rather than rendering all results at the end.
func IsStreaming(f Format) bool {
	return f == FormatText || f == ""
}
