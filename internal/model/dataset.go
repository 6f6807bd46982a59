package model

import (
	"time"

	"github.com/datainspect/datainspect/internal/table"
)

// Dataset owns the tabular buffer produced by one import event plus the
// Columns derived from it. Datasets are built once, by import or by
// deserialization; transformations are applied as a batch before
// construction, producing a new buffer, never incremental edits after.
type Dataset struct {
	Table      *table.Table
	Columns    []*Column
	Metadata   map[string]any
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// NewDataset derives a Dataset from a raw tabular buffer. The column set
// always mirrors the buffer: one Column per buffer column, in order. A
// nil buffer fails with ErrEmptyData (table construction already rejects
// empty buffers).
func NewDataset(tbl *table.Table) (*Dataset, error) {
	if tbl == nil {
		return nil, ErrEmptyData
	}
	now := time.Now()
	ds := &Dataset{
		Table:      tbl,
		Metadata:   map[string]any{},
		CreatedAt:  now,
		ModifiedAt: now,
	}
	for _, name := range tbl.Columns() {
		values, _ := tbl.ColumnValues(name)
		ds.Columns = append(ds.Columns, ColumnFromValues(name, values))
	}
	ds.GenerateMetadata(nil)
	return ds, nil
}

// Column returns the Column with the given name. Absent names yield a
// not-found outcome, not an error; lookups are routinely speculative.
func (d *Dataset) Column(name string) (*Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// RowCount returns the number of data rows.
func (d *Dataset) RowCount() int { return d.Table.RowCount() }

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return d.Table.ColumnCount() }

// GenerateMetadata populates the dataset metadata with row and column
// counts and, when source info is supplied, merges import provenance
// (file name, import options, timestamps) under the "source" key.
func (d *Dataset) GenerateMetadata(sourceInfo map[string]any) {
	d.Metadata["row_count"] = d.Table.RowCount()
	d.Metadata["column_count"] = d.Table.ColumnCount()
	if sourceInfo != nil {
		d.Metadata["source"] = sourceInfo
	}
}
