package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChartType enumerates the supported chart kinds.
type ChartType string

const (
	ChartBar     ChartType = "bar"
	ChartLine    ChartType = "line"
	ChartPie     ChartType = "pie"
	ChartScatter ChartType = "scatter"
	ChartHeatmap ChartType = "heatmap"
)

// KnownChartType reports whether t is a supported chart kind.
func KnownChartType(t ChartType) bool {
	switch t {
	case ChartBar, ChartLine, ChartPie, ChartScatter, ChartHeatmap:
		return true
	}
	return false
}

// AxisBinding binds one series to a column, with an optional display
// color.
type AxisBinding struct {
	Column string
	Color  string
}

// VizConfig is the structured chart configuration: column bindings,
// titles, color scheme and optional explicit axis bounds. The bindings
// a chart type requires are enforced by Visualization.Validate.
type VizConfig struct {
	XAxis string
	YAxes []AxisBinding
	// Value is the numeric value column for heatmaps.
	Value       string
	Title       string
	ColorScheme string
	// Explicit axis bound overrides. When unset, numeric bounds resolve
	// from the bound column's statistics.
	XMin, XMax *float64
	YMin, YMax *float64
}

// Visualization is a named, configured rendering specification attached
// to one DataSource. It may exist with incomplete bindings while being
// edited, but must validate before it is rendered or persisted as
// complete.
type Visualization struct {
	ID         string
	Name       string
	ChartType  ChartType
	Config     VizConfig
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// NewVisualization creates a visualization with a fresh id. The
// configuration is not validated here; call Validate once editing is
// done.
func NewVisualization(name string, chartType ChartType, config VizConfig) *Visualization {
	now := time.Now()
	return &Visualization{
		ID:         uuid.New().String(),
		Name:       name,
		ChartType:  chartType,
		Config:     config,
		CreatedAt:  now,
		ModifiedAt: now,
	}
}

// UpdateConfig replaces the configuration and bumps the modification
// time. Dirty-state bookkeeping happens at the owning DataSource.
func (v *Visualization) UpdateConfig(config VizConfig) {
	v.Config = config
	v.ModifiedAt = time.Now()
}

// Validate enforces the binding rules for the chart type against the
// given dataset. Errors identify the missing or unsuitable binding.
//
//	bar      >=1 X column, >=1 Y column
//	line     >=1 X column, >=1 Y column
//	pie      exactly 1 category column, exactly 1 numeric value column
//	scatter  exactly 2 numeric columns (X, Y)
//	heatmap  2 axis dimensions plus 1 numeric value column
func (v *Visualization) Validate(ds *Dataset) error {
	if !KnownChartType(v.ChartType) {
		return fmt.Errorf("unknown chart type %q", v.ChartType)
	}
	if err := v.requireX(ds); err != nil {
		return err
	}

	switch v.ChartType {
	case ChartBar, ChartLine:
		if len(v.Config.YAxes) == 0 {
			return &BindingError{ChartType: v.ChartType, Binding: "y", Reason: "at least one Y column is required"}
		}
		return v.checkYColumns(ds, false)

	case ChartPie:
		if len(v.Config.YAxes) != 1 {
			return &BindingError{ChartType: v.ChartType, Binding: "y", Reason: fmt.Sprintf("exactly one numeric value column is required, got %d", len(v.Config.YAxes))}
		}
		return v.checkYColumns(ds, true)

	case ChartScatter:
		if len(v.Config.YAxes) != 1 {
			return &BindingError{ChartType: v.ChartType, Binding: "y", Reason: fmt.Sprintf("exactly one numeric Y column is required, got %d", len(v.Config.YAxes))}
		}
		if err := v.requireNumeric(ds, "x", v.Config.XAxis); err != nil {
			return err
		}
		return v.checkYColumns(ds, true)

	case ChartHeatmap:
		if len(v.Config.YAxes) != 1 {
			return &BindingError{ChartType: v.ChartType, Binding: "y", Reason: "exactly one Y dimension is required"}
		}
		if err := v.checkYColumns(ds, false); err != nil {
			return err
		}
		if v.Config.Value == "" {
			return &BindingError{ChartType: v.ChartType, Binding: "value", Reason: "a numeric value column is required"}
		}
		return v.requireNumeric(ds, "value", v.Config.Value)
	}
	return nil
}

func (v *Visualization) requireX(ds *Dataset) error {
	if v.Config.XAxis == "" {
		return &BindingError{ChartType: v.ChartType, Binding: "x", Reason: "an X column is required"}
	}
	if _, ok := ds.Column(v.Config.XAxis); !ok {
		return &BindingError{ChartType: v.ChartType, Binding: "x", Reason: fmt.Sprintf("column %q not found in dataset", v.Config.XAxis)}
	}
	return nil
}

func (v *Visualization) checkYColumns(ds *Dataset, numeric bool) error {
	for _, y := range v.Config.YAxes {
		if y.Column == "" {
			return &BindingError{ChartType: v.ChartType, Binding: "y", Reason: "Y binding has no column"}
		}
		col, ok := ds.Column(y.Column)
		if !ok {
			return &BindingError{ChartType: v.ChartType, Binding: "y", Reason: fmt.Sprintf("column %q not found in dataset", y.Column)}
		}
		if numeric && col.DataType != DataTypeNumeric {
			return &BindingError{ChartType: v.ChartType, Binding: "y", Reason: fmt.Sprintf("column %q is %s, numeric required", y.Column, col.DataType)}
		}
	}
	return nil
}

func (v *Visualization) requireNumeric(ds *Dataset, binding, name string) error {
	col, ok := ds.Column(name)
	if !ok {
		return &BindingError{ChartType: v.ChartType, Binding: binding, Reason: fmt.Sprintf("column %q not found in dataset", name)}
	}
	if col.DataType != DataTypeNumeric {
		return &BindingError{ChartType: v.ChartType, Binding: binding, Reason: fmt.Sprintf("column %q is %s, numeric required", name, col.DataType)}
	}
	return nil
}
