// Package render assembles validated render requests for the chart
// rendering collaborator: the chart type, the resolved column data
// slices and the axis bounds. Figure and pixel production happen
// elsewhere; this package ends at the request.
package render

import (
	"fmt"

	"github.com/datainspect/datainspect/internal/model"
	"github.com/datainspect/datainspect/internal/table"
)

// Bounds is a resolved numeric axis range.
type Bounds struct {
	Min float64
	Max float64
}

// Series is one bound column with its resolved cell values.
type Series struct {
	Column string
	Color  string
	Values []table.Value
}

// Request is everything the renderer needs for one visualization:
// validated bindings resolved to data slices, plus bounds for numeric
// axes. Axis spacing is linear and proportional to the underlying
// values; a log-scale option is not part of the config schema.
type Request struct {
	ChartType model.ChartType
	Title     string
	X         Series
	Series    []Series
	// Value is the heatmap value series; empty otherwise.
	Value Series
	// XBounds and YBounds are set when the corresponding axis is
	// numeric.
	XBounds *Bounds
	YBounds *Bounds
}

// BuildRequest validates the visualization with the given id against
// its owning data source and resolves its bindings into data slices.
// Lookup of an unknown visualization id is a not-found outcome.
func BuildRequest(ds *model.DataSource, vizID string) (*Request, bool, error) {
	viz, ok := ds.Visualization(vizID)
	if !ok {
		return nil, false, nil
	}
	req, err := Build(ds.Dataset, viz)
	if err != nil {
		return nil, true, err
	}
	return req, true, nil
}

// Build validates a visualization against a dataset and assembles the
// render request.
func Build(dataset *model.Dataset, viz *model.Visualization) (*Request, error) {
	if err := viz.Validate(dataset); err != nil {
		return nil, err
	}

	req := &Request{
		ChartType: viz.ChartType,
		Title:     viz.Config.Title,
	}

	x, err := resolveSeries(dataset, model.AxisBinding{Column: viz.Config.XAxis})
	if err != nil {
		return nil, err
	}
	req.X = x

	for _, y := range viz.Config.YAxes {
		s, err := resolveSeries(dataset, y)
		if err != nil {
			return nil, err
		}
		req.Series = append(req.Series, s)
	}

	if viz.Config.Value != "" {
		s, err := resolveSeries(dataset, model.AxisBinding{Column: viz.Config.Value})
		if err != nil {
			return nil, err
		}
		req.Value = s
	}

	if req.XBounds, err = resolveBounds(dataset, viz.Config.XAxis, viz.Config.XMin, viz.Config.XMax); err != nil {
		return nil, err
	}
	req.YBounds, err = yBounds(dataset, viz)
	if err != nil {
		return nil, err
	}
	return req, nil
}

func resolveSeries(dataset *model.Dataset, binding model.AxisBinding) (Series, error) {
	values, ok := dataset.Table.ColumnValues(binding.Column)
	if !ok {
		return Series{}, fmt.Errorf("column %q not found in dataset", binding.Column)
	}
	return Series{Column: binding.Column, Color: binding.Color, Values: values}, nil
}

// resolveBounds produces bounds for a numeric column: explicit config
// overrides win, otherwise the column statistics supply min and max. A
// numeric axis without resolvable bounds is an error; non-numeric
// columns have no bounds.
func resolveBounds(dataset *model.Dataset, column string, minOverride, maxOverride *float64) (*Bounds, error) {
	col, ok := dataset.Column(column)
	if !ok || col.DataType != model.DataTypeNumeric {
		return nil, nil
	}
	b := &Bounds{}
	switch {
	case minOverride != nil:
		b.Min = *minOverride
	case col.Stats.Min != nil:
		b.Min = *col.Stats.Min
	default:
		return nil, fmt.Errorf("numeric axis %q: minimum is unresolvable", column)
	}
	switch {
	case maxOverride != nil:
		b.Max = *maxOverride
	case col.Stats.Max != nil:
		b.Max = *col.Stats.Max
	default:
		return nil, fmt.Errorf("numeric axis %q: maximum is unresolvable", column)
	}
	return b, nil
}

// yBounds resolves the shared Y range across all Y series.
func yBounds(dataset *model.Dataset, viz *model.Visualization) (*Bounds, error) {
	var merged *Bounds
	for _, y := range viz.Config.YAxes {
		b, err := resolveBounds(dataset, y.Column, viz.Config.YMin, viz.Config.YMax)
		if err != nil {
			return nil, err
		}
		if b == nil {
			continue
		}
		if merged == nil {
			merged = &Bounds{Min: b.Min, Max: b.Max}
			continue
		}
		if b.Min < merged.Min {
			merged.Min = b.Min
		}
		if b.Max > merged.Max {
			merged.Max = b.Max
		}
	}
	return merged, nil
}
