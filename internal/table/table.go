// Package table provides the raw tabular buffer exchanged between the
// importer and the data model: ordered named columns over typed cell
// values, with missing-value normalization applied at parse time.
package table

import (
	"errors"
	"fmt"
)

// ErrEmptyData indicates a buffer with zero rows or zero columns. A data
// source must have at least one column and one row.
var ErrEmptyData = errors.New("dataset is empty: at least one row and one column required")

// Table is an in-memory rectangular buffer: ordered column names plus
// row-major cells. Tables are treated as immutable once constructed;
// transformations produce a new Table.
type Table struct {
	columns []string
	rows    [][]Value
}

// New validates and constructs a Table. It fails with ErrEmptyData for a
// zero-row or zero-column buffer, and rejects duplicate or empty column
// names and ragged rows.
func New(columns []string, rows [][]Value) (*Table, error) {
	if len(columns) == 0 || len(rows) == 0 {
		return nil, ErrEmptyData
	}
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if name == "" {
			return nil, fmt.Errorf("column name must not be empty")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", name)
		}
		seen[name] = struct{}{}
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i, len(row), len(columns))
		}
	}
	return &Table{columns: columns, rows: rows}, nil
}

// Columns returns the ordered column names.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int { return len(t.columns) }

// Row returns the cells of one row.
func (t *Table) Row(i int) []Value { return t.rows[i] }

// ColumnIndex resolves a column name to its position. Lookup is linear
// over the ordered name list; tables are small enough that an index map
// is not worth maintaining.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// ColumnValues returns all cells of the named column in row order.
func (t *Table) ColumnValues(name string) ([]Value, bool) {
	idx, ok := t.ColumnIndex(name)
	if !ok {
		return nil, false
	}
	out := make([]Value, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[idx]
	}
	return out, true
}

// Equal reports whether two tables have identical column names and cell
// values.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.columns) != len(other.columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for i, c := range t.columns {
		if other.columns[i] != c {
			return false
		}
	}
	for i, row := range t.rows {
		for j, v := range row {
			if !v.Equal(other.rows[i][j]) {
				return false
			}
		}
	}
	return true
}
