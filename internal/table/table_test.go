package table

import (
	"errors"
	"testing"
)

func makeRows(cells ...[]Value) [][]Value { return cells }

func TestNew_Valid(t *testing.T) {
	tbl, err := New([]string{"name", "value"}, makeRows(
		[]Value{String("A"), Int(1)},
		[]Value{String("B"), Int(2)},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.RowCount() != 2 || tbl.ColumnCount() != 2 {
		t.Errorf("expected 2x2 table, got %dx%d", tbl.RowCount(), tbl.ColumnCount())
	}
}

func TestNew_Empty(t *testing.T) {
	if _, err := New(nil, nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData for no columns, got %v", err)
	}
	if _, err := New([]string{"a"}, nil); !errors.Is(err, ErrEmptyData) {
		t.Errorf("expected ErrEmptyData for no rows, got %v", err)
	}
}

func TestNew_DuplicateColumn(t *testing.T) {
	_, err := New([]string{"a", "a"}, makeRows([]Value{Int(1), Int(2)}))
	if err == nil {
		t.Fatal("expected error for duplicate column name")
	}
}

func TestNew_EmptyColumnName(t *testing.T) {
	_, err := New([]string{"a", ""}, makeRows([]Value{Int(1), Int(2)}))
	if err == nil {
		t.Fatal("expected error for empty column name")
	}
}

func TestNew_RaggedRows(t *testing.T) {
	_, err := New([]string{"a", "b"}, makeRows(
		[]Value{Int(1), Int(2)},
		[]Value{Int(3)},
	))
	if err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestTable_ColumnValues(t *testing.T) {
	tbl, err := New([]string{"name", "value"}, makeRows(
		[]Value{String("A"), Int(1)},
		[]Value{String("B"), Int(2)},
		[]Value{String("C"), Int(3)},
	))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	values, ok := tbl.ColumnValues("value")
	if !ok {
		t.Fatal("expected column 'value' to exist")
	}
	if len(values) != 3 {
		t.Fatalf("expected 3 values, got %d", len(values))
	}
	for i, want := range []int64{1, 2, 3} {
		if values[i].IntValue() != want {
			t.Errorf("row %d: expected %d, got %d", i, want, values[i].IntValue())
		}
	}

	if _, ok := tbl.ColumnValues("missing"); ok {
		t.Error("expected lookup of unknown column to report not found")
	}
}

func TestTable_ColumnIndex(t *testing.T) {
	tbl, _ := New([]string{"a", "b"}, makeRows([]Value{Int(1), Int(2)}))
	if idx, ok := tbl.ColumnIndex("b"); !ok || idx != 1 {
		t.Errorf("expected index 1 for b, got %d (ok=%v)", idx, ok)
	}
	if _, ok := tbl.ColumnIndex("z"); ok {
		t.Error("expected not found for unknown column")
	}
}

func TestTable_Equal(t *testing.T) {
	a, _ := New([]string{"x"}, makeRows([]Value{Int(1)}, []Value{Int(2)}))
	b, _ := New([]string{"x"}, makeRows([]Value{Int(1)}, []Value{Int(2)}))
	c, _ := New([]string{"x"}, makeRows([]Value{Int(1)}, []Value{Int(3)}))

	if !a.Equal(b) {
		t.Error("identical tables should compare equal")
	}
	if a.Equal(c) {
		t.Error("tables with different cells should not compare equal")
	}
	if a.Equal(nil) {
		t.Error("nil comparison should report unequal")
	}
}
