package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Table renders left-aligned columns separated by spaces, without borders.
// Widths are measured with lipgloss so styled cells line up.
type Table struct {
	header     []string
	rows       [][]string
	colWidths  []int
	colPadding int
}

// NewTable creates a table with the given column headers.
func NewTable(header ...string) *Table {
	t := NewTableCols(len(header))
	if len(header) > 0 {
		t.header = header
		t.track(header)
	}
	return t
}

// NewTableCols creates a headerless table with cols columns.
func NewTableCols(cols int) *Table {
	return &Table{
		colWidths:  make([]int, cols),
		colPadding: 2,
	}
}

// AddRow adds a row. Missing cells are blank and extra cells are dropped.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.colWidths))
	copy(row, cells)
	t.track(row)
	t.rows = append(t.rows, row)
}

func (t *Table) track(cells []string) {
	for i := 0; i < len(t.colWidths) && i < len(cells); i++ {
		if w := lipgloss.Width(cells[i]); w > t.colWidths[i] {
			t.colWidths[i] = w
		}
	}
}

// Len returns the number of body rows.
func (t *Table) Len() int { return len(t.rows) }

// String renders the table. The header row, if any, is bold.
func (t *Table) String() string {
	if len(t.rows) == 0 && len(t.header) == 0 {
		return ""
	}

	var sb strings.Builder
	if len(t.header) > 0 {
		styled := make([]string, len(t.header))
		for i, h := range t.header {
			styled[i] = Bold.Render(h)
		}
		t.writeRow(&sb, styled)
	}
	for _, row := range t.rows {
		t.writeRow(&sb, row)
	}
	return sb.String()
}

func (t *Table) writeRow(sb *strings.Builder, row []string) {
	padding := strings.Repeat(" ", t.colPadding)
	for i, cell := range row {
		if i > 0 {
			sb.WriteString(padding)
		}
		sb.WriteString(cell)
		// no trailing spaces after the last column
		if i < len(row)-1 {
			sb.WriteString(strings.Repeat(" ", t.colWidths[i]-lipgloss.Width(cell)))
		}
	}
	sb.WriteString("\n")
}
