// Package model contains domain models passed between layers.
package model

// IdentifierColumn is the leading column of every tournament table. It holds
// a row identifier or offset and is never parsed as a placement.
const IdentifierColumn = 0

// Table is one tournament table: ordered rows (competitors) by ordered
// columns (events). Cells hold free-text placements.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Len returns the number of competitor rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Row returns the row at 0-based position i.
func (t *Table) Row(i int) ([]string, bool) {
	if t == nil || i < 0 || i >= len(t.Rows) {
		return nil, false
	}
	return t.Rows[i], true
}

// Identifier returns the identifier cell of row i, or "" when absent.
func (t *Table) Identifier(i int) string {
	row, ok := t.Row(i)
	if !ok || len(row) <= IdentifierColumn {
		return ""
	}
	return row[IdentifierColumn]
}

// EventCells returns the cells of row i after the identifier column.
func (t *Table) EventCells(i int) []string {
	row, ok := t.Row(i)
	if !ok || len(row) <= IdentifierColumn+1 {
		return nil
	}
	return row[IdentifierColumn+1:]
}
