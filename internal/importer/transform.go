package importer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/datainspect/datainspect/internal/table"
)

// TransformOp enumerates the batch transformations applied between
// parsing and dataset construction.
type TransformOp string

const (
	// Missing-value policy.
	OpDropMissing TransformOp = "drop_missing"
	OpFillMean    TransformOp = "fill_mean"
	OpFillMedian  TransformOp = "fill_median"
	OpFillMode    TransformOp = "fill_mode"
	OpFillCustom  TransformOp = "fill_custom"

	// Type overrides.
	OpToNumeric TransformOp = "to_numeric"
	OpToText    TransformOp = "to_text"

	// Text operations.
	OpLowercase TransformOp = "lowercase"
	OpUppercase TransformOp = "uppercase"
	OpTrim      TransformOp = "trim"
	OpReplace   TransformOp = "replace"

	// Column rename.
	OpRename TransformOp = "rename"
)

// Transform is one batch operation on one column. Value carries the
// operation argument: the custom fill value, the text to replace, or the
// new column name. With is the replacement text for OpReplace.
type Transform struct {
	Column string
	Op     TransformOp
	Value  string
	With   string
}

// Apply runs the transformations in order against the buffer and
// returns a new Table; the input is left untouched. Transformations are
// applied once, at import time, never incrementally afterwards.
func Apply(tbl *table.Table, transforms []Transform) (*table.Table, error) {
	columns := tbl.Columns()
	rows := make([][]table.Value, tbl.RowCount())
	for i := range rows {
		src := tbl.Row(i)
		rows[i] = make([]table.Value, len(src))
		copy(rows[i], src)
	}

	for _, tf := range transforms {
		idx := -1
		for i, c := range columns {
			if c == tf.Column {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, fmt.Errorf("transform %s: column %q not found", tf.Op, tf.Column)
		}

		var err error
		rows, err = applyOne(tf, columns, rows, idx)
		if err != nil {
			return nil, err
		}
		if tf.Op == OpRename {
			columns[idx] = tf.Value
		}
	}
	return table.New(columns, rows)
}

func applyOne(tf Transform, columns []string, rows [][]table.Value, idx int) ([][]table.Value, error) {
	switch tf.Op {
	case OpDropMissing:
		kept := rows[:0]
		for _, row := range rows {
			if !row[idx].IsMissing() {
				kept = append(kept, row)
			}
		}
		return kept, nil

	case OpFillMean, OpFillMedian:
		fill, ok := numericFill(rows, idx, tf.Op == OpFillMedian)
		if !ok {
			return nil, fmt.Errorf("transform %s: column %q has no numeric values", tf.Op, tf.Column)
		}
		return fillMissing(rows, idx, table.Float(fill)), nil

	case OpFillMode:
		mode, ok := modeValue(rows, idx)
		if !ok {
			return nil, fmt.Errorf("transform %s: column %q has no values to take a mode from", tf.Op, tf.Column)
		}
		return fillMissing(rows, idx, mode), nil

	case OpFillCustom:
		v := table.ParseValue(tf.Value, table.DefaultParseOptions())
		return fillMissing(rows, idx, v), nil

	case OpToNumeric:
		opts := table.DefaultParseOptions()
		for r, row := range rows {
			v := row[idx]
			if v.IsMissing() || v.IsNumeric() {
				continue
			}
			parsed := table.ParseValue(v.String(), opts)
			if !parsed.IsNumeric() {
				return nil, &table.ValueError{Column: tf.Column, Row: r, Reason: fmt.Sprintf("%q is not numeric", v.String())}
			}
			row[idx] = parsed
		}
		return rows, nil

	case OpToText:
		for _, row := range rows {
			if !row[idx].IsMissing() {
				row[idx] = table.String(row[idx].String())
			}
		}
		return rows, nil

	case OpLowercase, OpUppercase, OpTrim, OpReplace:
		for _, row := range rows {
			v := row[idx]
			if v.Kind() != table.KindString {
				continue
			}
			row[idx] = table.String(textOp(tf, v.StringValue()))
		}
		return rows, nil

	case OpRename:
		if tf.Value == "" {
			return nil, fmt.Errorf("transform rename: new name for %q must not be empty", tf.Column)
		}
		for _, c := range columns {
			if c == tf.Value {
				return nil, fmt.Errorf("transform rename: column %q already exists", tf.Value)
			}
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unknown transform operation %q", tf.Op)
}

func textOp(tf Transform, s string) string {
	switch tf.Op {
	case OpLowercase:
		return strings.ToLower(s)
	case OpUppercase:
		return strings.ToUpper(s)
	case OpTrim:
		return strings.TrimSpace(s)
	default:
		return strings.ReplaceAll(s, tf.Value, tf.With)
	}
}

func fillMissing(rows [][]table.Value, idx int, fill table.Value) [][]table.Value {
	for _, row := range rows {
		if row[idx].IsMissing() {
			row[idx] = fill
		}
	}
	return rows
}

func numericFill(rows [][]table.Value, idx int, median bool) (float64, bool) {
	var nums []float64
	for _, row := range rows {
		if row[idx].IsNumeric() {
			nums = append(nums, row[idx].FloatValue())
		}
	}
	if len(nums) == 0 {
		return 0, false
	}
	if !median {
		var sum float64
		for _, f := range nums {
			sum += f
		}
		return sum / float64(len(nums)), true
	}
	sort.Float64s(nums)
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		return nums[mid], true
	}
	return (nums[mid-1] + nums[mid]) / 2, true
}

func modeValue(rows [][]table.Value, idx int) (table.Value, bool) {
	counts := map[string]int{}
	byKey := map[string]table.Value{}
	for _, row := range rows {
		v := row[idx]
		if v.IsMissing() {
			continue
		}
		key := v.String()
		counts[key]++
		byKey[key] = v
	}
	if len(counts) == 0 {
		return table.Value{}, false
	}
	bestKey, best := "", -1
	for key, c := range counts {
		if c > best || (c == best && key < bestKey) {
			bestKey, best = key, c
		}
	}
	return byKey[bestKey], true
}
