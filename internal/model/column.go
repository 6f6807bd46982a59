package model

import (
	"math"
	"sort"

	"github.com/datainspect/datainspect/internal/table"
)

// DataType is the inferred semantic type of a column, used for
// visualization defaults and statistics eligibility.
type DataType string

const (
	DataTypeNumeric     DataType = "numeric"
	DataTypeText        DataType = "text"
	DataTypeDate        DataType = "date"
	DataTypeCategorical DataType = "categorical"
	DataTypeBoolean     DataType = "boolean"
)

// Categorical inference thresholds: a text column is categorical when
// its distinct non-missing values are few both absolutely and relative
// to the number of non-missing rows.
const (
	categoricalMaxDistinct = 20
	categoricalMaxRatio    = 0.5
)

// Stats holds descriptive statistics for one column. Numeric aggregates
// are nil for non-numeric columns and are omitted from the serialized
// form rather than zero-filled.
type Stats struct {
	Count        int
	MissingCount int

	// Numeric aggregates, present only for numeric columns.
	Min    *float64
	Max    *float64
	Mean   *float64
	Median *float64
	StdDev *float64

	// Present for every data type.
	DistinctCount int
	MostFrequent  []string
}

// Column describes one field of a dataset: its inferred semantic type,
// the raw scalar kind observed before normalization, and descriptive
// statistics. Columns are immutable after construction; rebuilding the
// owning dataset regenerates them wholesale.
type Column struct {
	Name         string
	DataType     DataType
	OriginalType string
	Stats        Stats
	Metadata     map[string]any
}

// ColumnFromValues derives a Column from one raw column buffer. The
// inference is deterministic: identical input values always yield the
// same data type and statistics.
//
// Type rules, checked in order over the non-missing values:
// boolean (all bools, or an integer set within {0,1}), numeric (all
// numbers), date (all date/time values), categorical (text under the
// distinct-count thresholds), otherwise text. A column with no
// non-missing values is text.
func ColumnFromValues(name string, values []table.Value) *Column {
	col := &Column{Name: name, Metadata: map[string]any{}}

	var present []table.Value
	for _, v := range values {
		if !v.IsMissing() {
			present = append(present, v)
		}
	}
	col.Stats.Count = len(present)
	col.Stats.MissingCount = len(values) - len(present)

	if len(present) == 0 {
		col.DataType = DataTypeText
		col.OriginalType = string(table.KindMissing)
		return col
	}
	col.OriginalType = string(present[0].Kind())
	col.DataType = inferType(present)

	if col.DataType == DataTypeDate {
		for _, v := range present {
			if layout := v.TimeLayout(); layout != "" {
				col.Metadata["date_format"] = layout
				break
			}
		}
	}

	distinct, mostFrequent := frequencies(present)
	col.Stats.DistinctCount = distinct
	col.Stats.MostFrequent = mostFrequent

	if col.DataType == DataTypeNumeric {
		computeNumericStats(&col.Stats, present)
	}
	return col
}

func inferType(present []table.Value) DataType {
	allBool, allNumeric, allTime, binaryInts := true, true, true, true
	for _, v := range present {
		k := v.Kind()
		if k != table.KindBool {
			allBool = false
		}
		if !v.IsNumeric() {
			allNumeric = false
			binaryInts = false
		} else if k != table.KindInt || (v.IntValue() != 0 && v.IntValue() != 1) {
			binaryInts = false
		}
		if k != table.KindTime {
			allTime = false
		}
	}

	switch {
	case allBool, binaryInts:
		return DataTypeBoolean
	case allNumeric:
		return DataTypeNumeric
	case allTime:
		return DataTypeDate
	}

	distinct, _ := frequencies(present)
	if distinct <= categoricalMaxDistinct &&
		float64(distinct) <= categoricalMaxRatio*float64(len(present)) {
		return DataTypeCategorical
	}
	return DataTypeText
}

// frequencies returns the distinct count and the most frequent rendered
// value(s), sorted for determinism.
func frequencies(present []table.Value) (int, []string) {
	counts := make(map[string]int, len(present))
	for _, v := range present {
		counts[v.String()]++
	}
	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	var top []string
	for s, c := range counts {
		if c == best {
			top = append(top, s)
		}
	}
	sort.Strings(top)
	return len(counts), top
}

func computeNumericStats(s *Stats, present []table.Value) {
	nums := make([]float64, len(present))
	for i, v := range present {
		nums[i] = v.FloatValue()
	}
	sort.Float64s(nums)

	minV, maxV := nums[0], nums[len(nums)-1]
	var sum float64
	for _, f := range nums {
		sum += f
	}
	mean := sum / float64(len(nums))

	var median float64
	mid := len(nums) / 2
	if len(nums)%2 == 1 {
		median = nums[mid]
	} else {
		median = (nums[mid-1] + nums[mid]) / 2
	}

	// Population standard deviation.
	var variance float64
	for _, f := range nums {
		d := f - mean
		variance += d * d
	}
	variance /= float64(len(nums))
	stddev := math.Sqrt(variance)

	s.Min, s.Max = &minV, &maxV
	s.Mean, s.Median, s.StdDev = &mean, &median, &stddev
}
