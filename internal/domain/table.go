package domain

import "strings"

// Row maps a column name to the raw cell text for one spreadsheet line.
type Row map[string]string

// Table is an ordered, dynamically-columned view over an uploaded
// spreadsheet. Column names are unique; rows need not be.
type Table struct {
	Columns []string
	Rows    []Row
}

// Cell returns the raw text of a cell, or "" when the column is absent.
func (r Row) Cell(column string) string {
	return r[column]
}

// HasColumn reports whether the table carries the named column.
func (t Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// IsEmpty reports whether the table has no rows or no columns.
func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0 || len(t.Columns) == 0
}

// DropEmptyColumns removes every column whose cells are all blank after
// trimming, preserving the order of the remaining columns.
func (t Table) DropEmptyColumns() Table {
	kept := make([]string, 0, len(t.Columns))
	for _, col := range t.Columns {
		empty := true
		for _, row := range t.Rows {
			if strings.TrimSpace(row[col]) != "" {
				empty = false
				break
			}
		}
		if !empty {
			kept = append(kept, col)
		}
	}
	if len(kept) == len(t.Columns) {
		return t
	}
	rows := make([]Row, len(t.Rows))
	for i, row := range t.Rows {
		trimmed := make(Row, len(kept))
		for _, col := range kept {
			trimmed[col] = row[col]
		}
		rows[i] = trimmed
	}
	return Table{Columns: kept, Rows: rows}
}
