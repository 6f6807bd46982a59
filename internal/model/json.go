package model

import (
	"fmt"
	"math"
	"time"

	"github.com/datainspect/datainspect/internal/table"
)

// timeLayout is the timestamp format used in the persisted form.
// Timestamps round-trip exactly and are never regenerated on load.
const timeLayout = time.RFC3339Nano

// ToJSON returns the plain nested representation of the whole project
// subtree: maps, sequences and portable scalars only, with owned
// entities embedded inline.
func (p *Project) ToJSON() (map[string]any, error) {
	sources := make([]any, 0, p.dataSources.Len())
	for i, d := range p.dataSources.All() {
		m, err := d.ToJSON()
		if err != nil {
			return nil, fmt.Errorf("data_sources[%d]: %w", i, err)
		}
		sources = append(sources, m)
	}
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"created":      p.Created.Format(timeLayout),
		"modified":     p.Modified.Format(timeLayout),
		"data_sources": sources,
	}, nil
}

// ProjectFromJSON is the exact inverse of Project.ToJSON: it rebuilds
// the project with identical field values, ids and timestamps included.
// The reconstructed project reports no unsaved changes.
func ProjectFromJSON(data map[string]any) (*Project, error) {
	p := &Project{}
	var err error
	if p.ID, err = getString(data, "id"); err != nil {
		return nil, err
	}
	if p.Name, err = getString(data, "name"); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, decodeErrf("name", "must not be empty")
	}
	if p.Created, err = getTime(data, "created"); err != nil {
		return nil, err
	}
	if p.Modified, err = getTime(data, "modified"); err != nil {
		return nil, err
	}

	p.dataSources = NewTrackedList[*DataSource](nil)
	raw, err := getSlice(data, "data_sources")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, decodeErrf("data_sources", "element %d is not an object", i)
		}
		d, err := DataSourceFromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("data_sources[%d]: %w", i, err)
		}
		if _, dup := seen[d.ID]; dup {
			return nil, &DuplicateIDError{Entity: "data source", ID: d.ID}
		}
		seen[d.ID] = struct{}{}
		d.setOwner(p.childModified)
		p.dataSources.Append(d)
	}
	p.dataSources.onModify = p.markDirty
	p.resetSavedState()
	return p, nil
}

// ToJSON returns the plain representation of the data source with its
// dataset and visualizations embedded.
func (d *DataSource) ToJSON() (map[string]any, error) {
	dataset, err := d.Dataset.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	vizs := make([]any, 0, d.visualizations.Len())
	for _, v := range d.visualizations.All() {
		vizs = append(vizs, v.ToJSON())
	}
	return map[string]any{
		"id":             d.ID,
		"name":           d.Name,
		"source_type":    string(d.SourceType),
		"file_path":      d.FilePath,
		"created_at":     d.CreatedAt.Format(timeLayout),
		"dataset":        dataset,
		"visualizations": vizs,
	}, nil
}

// DataSourceFromJSON rebuilds a data source from its serialized form.
func DataSourceFromJSON(data map[string]any) (*DataSource, error) {
	d := &DataSource{}
	var err error
	if d.ID, err = getString(data, "id"); err != nil {
		return nil, err
	}
	if d.Name, err = getString(data, "name"); err != nil {
		return nil, err
	}
	st, err := getString(data, "source_type")
	if err != nil {
		return nil, err
	}
	d.SourceType = SourceType(st)
	if d.FilePath, err = getString(data, "file_path"); err != nil {
		return nil, err
	}
	if d.CreatedAt, err = getTime(data, "created_at"); err != nil {
		return nil, err
	}

	dsMap, err := getMap(data, "dataset")
	if err != nil {
		return nil, err
	}
	if d.Dataset, err = DatasetFromJSON(dsMap); err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}

	d.visualizations = NewTrackedList[*Visualization](nil)
	raw, err := getSlice(data, "visualizations")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, decodeErrf("visualizations", "element %d is not an object", i)
		}
		v, err := VisualizationFromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("visualizations[%d]: %w", i, err)
		}
		if _, dup := seen[v.ID]; dup {
			return nil, &DuplicateIDError{Entity: "visualization", ID: v.ID}
		}
		seen[v.ID] = struct{}{}
		d.visualizations.Append(v)
	}
	d.visualizations.onModify = d.markModified
	return d, nil
}

// ToJSON returns the plain representation of the dataset. Cell values
// are emitted column-major with a parallel kind list per column, so the
// inverse conversion restores the exact native scalar kinds.
func (d *Dataset) ToJSON() (map[string]any, error) {
	cols := make([]any, 0, d.Table.ColumnCount())
	for _, name := range d.Table.Columns() {
		values, _ := d.Table.ColumnValues(name)
		kinds := make([]any, len(values))
		cells := make([]any, len(values))
		for i, v := range values {
			kinds[i] = string(v.Kind())
			cells[i] = portableValue(v)
		}
		cols = append(cols, map[string]any{
			"name":   name,
			"kinds":  kinds,
			"values": cells,
		})
	}
	meta, err := portableAny(d.Metadata)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	columns := make([]any, 0, len(d.Columns))
	for _, c := range d.Columns {
		m, err := c.ToJSON()
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		columns = append(columns, m)
	}
	return map[string]any{
		"data": map[string]any{
			"columns":   cols,
			"row_count": float64(d.Table.RowCount()),
		},
		"columns":     columns,
		"metadata":    meta,
		"created_at":  d.CreatedAt.Format(timeLayout),
		"modified_at": d.ModifiedAt.Format(timeLayout),
	}, nil
}

// DatasetFromJSON rebuilds a dataset, buffer and columns included.
// Column descriptors are restored from the serialized form rather than
// re-derived, so statistics and inferred types survive the round trip
// bit for bit.
func DatasetFromJSON(data map[string]any) (*Dataset, error) {
	d := &Dataset{Metadata: map[string]any{}}
	var err error
	if d.CreatedAt, err = getTime(data, "created_at"); err != nil {
		return nil, err
	}
	if d.ModifiedAt, err = getTime(data, "modified_at"); err != nil {
		return nil, err
	}
	if meta, ok := data["metadata"].(map[string]any); ok {
		d.Metadata = meta
	}

	buf, err := getMap(data, "data")
	if err != nil {
		return nil, err
	}
	if d.Table, err = tableFromJSON(buf); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}

	raw, err := getSlice(data, "columns")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, decodeErrf("columns", "element %d is not an object", i)
		}
		c, err := ColumnFromJSON(m)
		if err != nil {
			return nil, fmt.Errorf("columns[%d]: %w", i, err)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, decodeErrf("columns", "duplicate column %q", c.Name)
		}
		seen[c.Name] = struct{}{}
		d.Columns = append(d.Columns, c)
	}

	// The descriptor set must mirror the buffer exactly.
	if len(d.Columns) != d.Table.ColumnCount() {
		return nil, decodeErrf("columns", "%d descriptors for %d data columns", len(d.Columns), d.Table.ColumnCount())
	}
	for i, name := range d.Table.Columns() {
		if d.Columns[i].Name != name {
			return nil, decodeErrf("columns", "descriptor %d is %q, data column is %q", i, d.Columns[i].Name, name)
		}
	}
	return d, nil
}

func tableFromJSON(data map[string]any) (*table.Table, error) {
	rowCountRaw, ok := data["row_count"].(float64)
	if !ok {
		return nil, decodeErrf("row_count", "missing or not a number")
	}
	if rowCountRaw < 0 || rowCountRaw > math.MaxInt32 || rowCountRaw != math.Trunc(rowCountRaw) {
		return nil, decodeErrf("row_count", "invalid row count %v", rowCountRaw)
	}
	rowCount := int(rowCountRaw)

	raw, err := getSlice(data, "columns")
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 && rowCount > 0 {
		return nil, decodeErrf("columns", "no columns for %d rows", rowCount)
	}
	names := make([]string, 0, len(raw))
	columns := make([][]table.Value, 0, len(raw))
	for i, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, decodeErrf("columns", "element %d is not an object", i)
		}
		name, err := getString(m, "name")
		if err != nil {
			return nil, err
		}
		kinds, err := getSlice(m, "kinds")
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		cells, err := getSlice(m, "values")
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		if len(kinds) != rowCount || len(cells) != rowCount {
			return nil, decodeErrf("columns", "column %q has %d values for %d rows", name, len(cells), rowCount)
		}
		values := make([]table.Value, rowCount)
		for r := range cells {
			kind, ok := kinds[r].(string)
			if !ok {
				return nil, decodeErrf("kinds", "column %q row %d kind is not a string", name, r)
			}
			v, err := valueFromPortable(table.Kind(kind), cells[r])
			if err != nil {
				return nil, decodeErrf("values", "column %q row %d: %v", name, r, err)
			}
			values[r] = v
		}
		names = append(names, name)
		columns = append(columns, values)
	}

	rows := make([][]table.Value, rowCount)
	for r := range rows {
		row := make([]table.Value, len(columns))
		for c := range columns {
			row[c] = columns[c][r]
		}
		rows[r] = row
	}
	return table.New(names, rows)
}

// ToJSON returns the plain representation of the column. Statistics
// fields that do not apply to the data type are absent, not null.
func (c *Column) ToJSON() (map[string]any, error) {
	stats := map[string]any{
		"count":          float64(c.Stats.Count),
		"missing_count":  float64(c.Stats.MissingCount),
		"distinct_count": float64(c.Stats.DistinctCount),
	}
	if len(c.Stats.MostFrequent) > 0 {
		top := make([]any, len(c.Stats.MostFrequent))
		for i, s := range c.Stats.MostFrequent {
			top[i] = s
		}
		stats["most_frequent"] = top
	}
	for key, v := range map[string]*float64{
		"min":     c.Stats.Min,
		"max":     c.Stats.Max,
		"mean":    c.Stats.Mean,
		"median":  c.Stats.Median,
		"std_dev": c.Stats.StdDev,
	} {
		if v != nil {
			stats[key] = portableFloat(*v)
		}
	}

	meta, err := portableAny(c.Metadata)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	if meta == nil {
		meta = map[string]any{}
	}
	return map[string]any{
		"name":          c.Name,
		"data_type":     string(c.DataType),
		"original_type": c.OriginalType,
		"stats":         stats,
		"metadata":      meta,
	}, nil
}

// ColumnFromJSON rebuilds a column descriptor.
func ColumnFromJSON(data map[string]any) (*Column, error) {
	c := &Column{Metadata: map[string]any{}}
	var err error
	if c.Name, err = getString(data, "name"); err != nil {
		return nil, err
	}
	dt, err := getString(data, "data_type")
	if err != nil {
		return nil, err
	}
	c.DataType = DataType(dt)
	if c.OriginalType, err = getString(data, "original_type"); err != nil {
		return nil, err
	}
	if meta, ok := data["metadata"].(map[string]any); ok {
		c.Metadata = meta
	}

	stats, err := getMap(data, "stats")
	if err != nil {
		return nil, err
	}
	if c.Stats.Count, err = getInt(stats, "count"); err != nil {
		return nil, err
	}
	if c.Stats.MissingCount, err = getInt(stats, "missing_count"); err != nil {
		return nil, err
	}
	if c.Stats.DistinctCount, err = getInt(stats, "distinct_count"); err != nil {
		return nil, err
	}
	if raw, ok := stats["most_frequent"].([]any); ok {
		for i, item := range raw {
			s, ok := item.(string)
			if !ok {
				return nil, decodeErrf("most_frequent", "element %d is not a string", i)
			}
			c.Stats.MostFrequent = append(c.Stats.MostFrequent, s)
		}
	}
	for key, dst := range map[string]**float64{
		"min":     &c.Stats.Min,
		"max":     &c.Stats.Max,
		"mean":    &c.Stats.Mean,
		"median":  &c.Stats.Median,
		"std_dev": &c.Stats.StdDev,
	} {
		raw, ok := stats[key]
		if !ok {
			continue
		}
		f, err := floatFromPortable(raw)
		if err != nil {
			return nil, decodeErrf(key, "%v", err)
		}
		*dst = &f
	}
	return c, nil
}

// ToJSON returns the plain representation of the visualization. Config
// fields that are unset are omitted.
func (v *Visualization) ToJSON() map[string]any {
	config := map[string]any{}
	if v.Config.XAxis != "" {
		config["x_axis"] = v.Config.XAxis
	}
	if len(v.Config.YAxes) > 0 {
		axes := make([]any, len(v.Config.YAxes))
		for i, y := range v.Config.YAxes {
			axis := map[string]any{"column": y.Column}
			if y.Color != "" {
				axis["color"] = y.Color
			}
			axes[i] = axis
		}
		config["y_axes"] = axes
	}
	if v.Config.Value != "" {
		config["value"] = v.Config.Value
	}
	if v.Config.Title != "" {
		config["title"] = v.Config.Title
	}
	if v.Config.ColorScheme != "" {
		config["color_scheme"] = v.Config.ColorScheme
	}
	for key, b := range map[string]*float64{
		"x_min": v.Config.XMin,
		"x_max": v.Config.XMax,
		"y_min": v.Config.YMin,
		"y_max": v.Config.YMax,
	} {
		if b != nil {
			config[key] = portableFloat(*b)
		}
	}
	return map[string]any{
		"id":          v.ID,
		"name":        v.Name,
		"chart_type":  string(v.ChartType),
		"config":      config,
		"created_at":  v.CreatedAt.Format(timeLayout),
		"modified_at": v.ModifiedAt.Format(timeLayout),
	}
}

// VisualizationFromJSON rebuilds a visualization.
func VisualizationFromJSON(data map[string]any) (*Visualization, error) {
	v := &Visualization{}
	var err error
	if v.ID, err = getString(data, "id"); err != nil {
		return nil, err
	}
	if v.Name, err = getString(data, "name"); err != nil {
		return nil, err
	}
	ct, err := getString(data, "chart_type")
	if err != nil {
		return nil, err
	}
	v.ChartType = ChartType(ct)
	if !KnownChartType(v.ChartType) {
		return nil, decodeErrf("chart_type", "unknown chart type %q", ct)
	}
	if v.CreatedAt, err = getTime(data, "created_at"); err != nil {
		return nil, err
	}
	if v.ModifiedAt, err = getTime(data, "modified_at"); err != nil {
		return nil, err
	}

	config, err := getMap(data, "config")
	if err != nil {
		return nil, err
	}
	v.Config.XAxis = optString(config, "x_axis")
	v.Config.Value = optString(config, "value")
	v.Config.Title = optString(config, "title")
	v.Config.ColorScheme = optString(config, "color_scheme")
	if raw, ok := config["y_axes"].([]any); ok {
		for i, item := range raw {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, decodeErrf("y_axes", "element %d is not an object", i)
			}
			col, err := getString(m, "column")
			if err != nil {
				return nil, fmt.Errorf("y_axes[%d]: %w", i, err)
			}
			v.Config.YAxes = append(v.Config.YAxes, AxisBinding{
				Column: col,
				Color:  optString(m, "color"),
			})
		}
	}
	for key, dst := range map[string]**float64{
		"x_min": &v.Config.XMin,
		"x_max": &v.Config.XMax,
		"y_min": &v.Config.YMin,
		"y_max": &v.Config.YMax,
	} {
		raw, ok := config[key]
		if !ok {
			continue
		}
		f, err := floatFromPortable(raw)
		if err != nil {
			return nil, decodeErrf(key, "%v", err)
		}
		*dst = &f
	}
	return v, nil
}

// --- decode helpers ---

func getString(m map[string]any, field string) (string, error) {
	raw, ok := m[field]
	if !ok {
		return "", decodeErrf(field, "missing")
	}
	s, ok := raw.(string)
	if !ok {
		return "", decodeErrf(field, "expected string, got %T", raw)
	}
	return s, nil
}

func optString(m map[string]any, field string) string {
	s, _ := m[field].(string)
	return s
}

func getTime(m map[string]any, field string) (time.Time, error) {
	s, err := getString(m, field)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, decodeErrf(field, "invalid timestamp %q", s)
	}
	return t, nil
}

func getMap(m map[string]any, field string) (map[string]any, error) {
	raw, ok := m[field]
	if !ok {
		return nil, decodeErrf(field, "missing")
	}
	result, ok := raw.(map[string]any)
	if !ok {
		return nil, decodeErrf(field, "expected object, got %T", raw)
	}
	return result, nil
}

func getSlice(m map[string]any, field string) ([]any, error) {
	raw, ok := m[field]
	if !ok {
		return nil, decodeErrf(field, "missing")
	}
	result, ok := raw.([]any)
	if !ok {
		return nil, decodeErrf(field, "expected array, got %T", raw)
	}
	return result, nil
}

func getInt(m map[string]any, field string) (int, error) {
	raw, ok := m[field]
	if !ok {
		return 0, decodeErrf(field, "missing")
	}
	f, ok := raw.(float64)
	if !ok {
		return 0, decodeErrf(field, "expected number, got %T", raw)
	}
	return int(f), nil
}
