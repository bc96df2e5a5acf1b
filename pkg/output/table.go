package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Table is a column-aligned text table. Widths are measured in terminal
// cells, so emoji and wide characters line up.
type Table struct {
	headers   []string
	widths    []int
	rows      [][]string
	separator string
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	t := &Table{
		headers:   headers,
		widths:    make([]int, len(headers)),
		separator: "  ",
	}
	for i, h := range headers {
		t.widths[i] = runewidth.StringWidth(h)
	}
	return t
}

// AddRow appends a row, growing column widths as needed. Missing values are
// blank; extra values are dropped.
func (t *Table) AddRow(values ...string) *Table {
	row := make([]string, len(t.headers))
	copy(row, values)
	for i, v := range row {
		if w := runewidth.StringWidth(v); w > t.widths[i] {
			t.widths[i] = w
		}
	}
	t.rows = append(t.rows, row)
	return t
}

// Width returns the display width of column i.
func (t *Table) Width(i int) int {
	if i < 0 || i >= len(t.widths) {
		return 0
	}
	return t.widths[i]
}

func (t *Table) format(values []string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = runewidth.FillRight(v, t.widths[i])
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// Fprint writes the header, a separator row and all rows to w.
func (t *Table) Fprint(w io.Writer) error {
	dashes := make([]string, len(t.widths))
	for i, width := range t.widths {
		dashes[i] = strings.Repeat("-", width)
	}

	lines := []string{t.format(t.headers), t.format(dashes)}
	for _, row := range t.rows {
		lines = append(lines, t.format(row))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
