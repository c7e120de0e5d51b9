// Package output writes the rendered documents to disk and formats the
// run summary for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Align selects how values are padded inside a column.
type Align int

const (
	// AlignLeft pads values on the right.
	AlignLeft Align = iota
	// AlignRight pads values on the left; used for counts.
	AlignRight
)

// Column represents a single table column with its header and current width.
//
// Fields:
//   - Header: The display text for this column's header
//   - Width: The current display width for this column in terminal cells
//   - Align: Padding side for values
type Column struct {
	Header string
	Width  int
	Align  Align
}

// columnSeparator is placed between adjacent columns.
const columnSeparator = "  "

// Table formats rows with dynamic, terminal-cell aware column widths.
//
// Package names may contain wide characters, so widths are measured with
// runewidth rather than byte or rune counts.
type Table struct {
	columns []Column
}

// NewTable creates a table with no columns.
func NewTable() *Table {
	return &Table{columns: make([]Column, 0)}
}

// AddColumn adds a left-aligned column sized to its header.
//
// Parameters:
//   - header: The text to display in the column header
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	return t.AddAlignedColumn(header, AlignLeft)
}

// AddAlignedColumn adds a column with the given alignment sized to its header.
//
// Parameters:
//   - header: The text to display in the column header
//   - align: Padding side for the column's values
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddAlignedColumn(header string, align Align) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  DisplayWidth(header),
		Align:  align,
	})
	return t
}

// UpdateWidths widens columns so that every value of the row fits.
//
// Parameters:
//   - values: One string per column; extra values are ignored
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i < len(t.columns) {
			if width := DisplayWidth(val); width > t.columns[i].Width {
				t.columns[i].Width = width
			}
		}
	}
	return t
}

// HeaderRow returns the formatted header row.
func (t *Table) HeaderRow() string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	return t.FormatRow(headers...)
}

// SeparatorRow returns a row of dashes matching the column widths.
func (t *Table) SeparatorRow() string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		parts[i] = strings.Repeat("-", col.Width)
	}
	return strings.Join(parts, columnSeparator)
}

// FormatRow pads each value to its column width and joins them.
//
// Missing values are treated as empty strings. Trailing padding of the last
// column is trimmed so rows never end in spaces.
//
// Parameters:
//   - values: One string per column
//
// Returns:
//   - string: The formatted row
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts[i] = pad(val, col)
	}
	return strings.TrimRight(strings.Join(parts, columnSeparator), " ")
}

// Fprint writes the header row, the separator row, and every data row.
//
// Widths are computed from rows before anything is written.
//
// Parameters:
//   - w: Destination writer
//   - rows: Data rows, one string per column
func (t *Table) Fprint(w io.Writer, rows [][]string) {
	for _, row := range rows {
		t.UpdateWidths(row...)
	}
	_, _ = fmt.Fprintln(w, t.HeaderRow())
	_, _ = fmt.Fprintln(w, t.SeparatorRow())
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, t.FormatRow(row...))
	}
}

// DisplayWidth returns the number of terminal cells val occupies.
func DisplayWidth(val string) int {
	return runewidth.StringWidth(val)
}

func pad(val string, col Column) string {
	if col.Align == AlignRight {
		return runewidth.FillLeft(val, col.Width)
	}
	return runewidth.FillRight(val, col.Width)
}
