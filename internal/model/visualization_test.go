package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisualization_Validate_BarAndLine(t *testing.T) {
	ds := testDataset(t)

	for _, ct := range []ChartType{ChartBar, ChartLine} {
		viz := NewVisualization("v", ct, VizConfig{
			XAxis: "name",
			YAxes: []AxisBinding{{Column: "value"}},
		})
		assert.NoError(t, viz.Validate(ds), "%s with one X and one Y is valid", ct)

		viz = NewVisualization("v", ct, VizConfig{XAxis: "name"})
		var be *BindingError
		require.ErrorAs(t, viz.Validate(ds), &be, "%s without Y must fail", ct)
		assert.Equal(t, "y", be.Binding)
	}
}

func TestVisualization_Validate_MissingX(t *testing.T) {
	ds := testDataset(t)
	viz := NewVisualization("v", ChartBar, VizConfig{YAxes: []AxisBinding{{Column: "value"}}})

	var be *BindingError
	require.ErrorAs(t, viz.Validate(ds), &be)
	assert.Equal(t, "x", be.Binding)
}

func TestVisualization_Validate_UnknownColumn(t *testing.T) {
	ds := testDataset(t)
	viz := NewVisualization("v", ChartBar, VizConfig{
		XAxis: "nope",
		YAxes: []AxisBinding{{Column: "value"}},
	})

	var be *BindingError
	require.ErrorAs(t, viz.Validate(ds), &be)
	assert.Equal(t, "x", be.Binding)
	assert.Contains(t, be.Error(), "nope")
}

func TestVisualization_Validate_Pie(t *testing.T) {
	ds := testDataset(t)

	viz := NewVisualization("v", ChartPie, VizConfig{
		XAxis: "name",
		YAxes: []AxisBinding{{Column: "value"}},
	})
	assert.NoError(t, viz.Validate(ds))

	// Exactly one value column, and it must be numeric.
	viz = NewVisualization("v", ChartPie, VizConfig{
		XAxis: "name",
		YAxes: []AxisBinding{{Column: "value"}, {Column: "value"}},
	})
	assert.Error(t, viz.Validate(ds))

	viz = NewVisualization("v", ChartPie, VizConfig{
		XAxis: "name",
		YAxes: []AxisBinding{{Column: "name"}},
	})
	var be *BindingError
	require.ErrorAs(t, viz.Validate(ds), &be)
	assert.Equal(t, "y", be.Binding)
}

func TestVisualization_Validate_Scatter(t *testing.T) {
	ds := testDataset(t)

	// A scatter needs two numeric columns; "name" is text.
	viz := NewVisualization("v", ChartScatter, VizConfig{
		XAxis: "name",
		YAxes: []AxisBinding{{Column: "value"}},
	})
	var be *BindingError
	require.ErrorAs(t, viz.Validate(ds), &be)
	assert.Equal(t, "x", be.Binding)

	// One bound column is not enough.
	viz = NewVisualization("v", ChartScatter, VizConfig{XAxis: "value"})
	require.ErrorAs(t, viz.Validate(ds), &be)
	assert.Equal(t, "y", be.Binding)

	viz = NewVisualization("v", ChartScatter, VizConfig{
		XAxis: "value",
		YAxes: []AxisBinding{{Column: "value"}},
	})
	assert.NoError(t, viz.Validate(ds))
}

func TestVisualization_Validate_Heatmap(t *testing.T) {
	ds := testDataset(t)

	viz := NewVisualization("v", ChartHeatmap, VizConfig{
		XAxis: "name",
		YAxes: []AxisBinding{{Column: "name"}},
		Value: "value",
	})
	assert.NoError(t, viz.Validate(ds))

	viz = NewVisualization("v", ChartHeatmap, VizConfig{
		XAxis: "name",
		YAxes: []AxisBinding{{Column: "name"}},
	})
	var be *BindingError
	require.ErrorAs(t, viz.Validate(ds), &be)
	assert.Equal(t, "value", be.Binding)

	viz = NewVisualization("v", ChartHeatmap, VizConfig{
		XAxis: "name",
		YAxes: []AxisBinding{{Column: "name"}},
		Value: "name",
	})
	require.ErrorAs(t, viz.Validate(ds), &be)
	assert.Equal(t, "value", be.Binding)
}

func TestVisualization_Validate_UnknownChartType(t *testing.T) {
	ds := testDataset(t)
	viz := NewVisualization("v", ChartType("sunburst"), VizConfig{XAxis: "name"})
	assert.Error(t, viz.Validate(ds))
}

func TestVisualization_IncompleteWhileEditing(t *testing.T) {
	// An unbound visualization can exist and be attached; only Validate
	// enforces completeness.
	src := testSource(t, "sales")
	viz := NewVisualization("draft", ChartBar, VizConfig{})
	require.NoError(t, src.AddVisualization(viz))
	assert.Error(t, viz.Validate(src.Dataset))
}

func TestVisualization_UpdateConfig(t *testing.T) {
	viz := NewVisualization("v", ChartBar, VizConfig{XAxis: "name"})
	before := viz.ModifiedAt

	viz.UpdateConfig(VizConfig{XAxis: "name", YAxes: []AxisBinding{{Column: "value"}}})
	assert.Len(t, viz.Config.YAxes, 1)
	assert.False(t, viz.ModifiedAt.Before(before))
}
