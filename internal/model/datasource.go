package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SourceType enumerates the origin formats of a data source. Only CSV is
// realized; the excel and json values are reserved for future importers.
type SourceType string

const (
	SourceCSV   SourceType = "csv"
	SourceExcel SourceType = "excel"
	SourceJSON  SourceType = "json"
)

// DataSource wraps exactly one Dataset, the result of one import event,
// plus the visualizations derived from it and the import provenance.
// The Dataset is fixed at construction and never swapped; refreshing a
// source means replacing the whole DataSource.
type DataSource struct {
	observable

	ID         string
	Name       string
	SourceType SourceType
	// FilePath is the origin file, informational only; it is never
	// re-read after import.
	FilePath  string
	CreatedAt time.Time
	Dataset   *Dataset

	visualizations *TrackedList[*Visualization]
	onModify       func()
}

// NewDataSource creates a data source around a fully populated dataset.
// The dataset is required: a DataSource never exists without one.
func NewDataSource(name string, sourceType SourceType, filePath string, dataset *Dataset) (*DataSource, error) {
	if dataset == nil {
		return nil, fmt.Errorf("data source %q: dataset is required", name)
	}
	d := &DataSource{
		ID:         uuid.New().String(),
		Name:       name,
		SourceType: sourceType,
		FilePath:   filePath,
		CreatedAt:  time.Now(),
		Dataset:    dataset,
	}
	d.visualizations = NewTrackedList[*Visualization](d.markModified)
	return d, nil
}

// markModified bubbles a mutation to the owning project, if any.
func (d *DataSource) markModified() {
	if d.onModify != nil {
		d.onModify()
	}
}

// setOwner wires (or, with nil, unwires) the mutation channel to the
// owning project.
func (d *DataSource) setOwner(onModify func()) { d.onModify = onModify }

// Visualizations returns the visualizations in order.
func (d *DataSource) Visualizations() []*Visualization {
	return d.visualizations.All()
}

// Visualization looks up a visualization by id. Absent ids yield a
// not-found outcome, not an error.
func (d *DataSource) Visualization(id string) (*Visualization, bool) {
	return d.visualizations.Find(func(v *Visualization) bool { return v.ID == id })
}

// AddVisualization attaches a visualization, enforcing id uniqueness
// within this source. Observers are notified after the change applies.
func (d *DataSource) AddVisualization(v *Visualization) error {
	if _, exists := d.Visualization(v.ID); exists {
		return &DuplicateIDError{Entity: "visualization", ID: v.ID}
	}
	d.visualizations.Append(v)
	d.notifyObservers(d)
	return nil
}

// RemoveVisualization detaches the visualization with the given id.
// Returns false if no such visualization exists; nothing is notified in
// that case.
func (d *DataSource) RemoveVisualization(id string) bool {
	removed := d.visualizations.RemoveFunc(func(v *Visualization) bool { return v.ID == id })
	if removed {
		d.notifyObservers(d)
	}
	return removed
}

// UpdateVisualization replaces the configuration of the visualization
// with the given id. The in-place field mutation is routed through the
// same dirty channel as collection changes, so the fast-path flag stays
// authoritative.
func (d *DataSource) UpdateVisualization(id string, config VizConfig) bool {
	v, ok := d.Visualization(id)
	if !ok {
		return false
	}
	v.UpdateConfig(config)
	d.markModified()
	d.notifyObservers(d)
	return true
}

// Rename changes the display name.
func (d *DataSource) Rename(name string) {
	d.Name = name
	d.markModified()
	d.notifyObservers(d)
}

// detach severs ownership when the source is removed from its project:
// the mutation channel is cleared, owned visualizations are dropped and
// registered observers are released so a removed source cannot keep
// notifying stale listeners. The owner walks the tree; children never
// need a parent pointer.
func (d *DataSource) detach() {
	d.onModify = nil
	d.visualizations.Clear()
	d.observers = nil
}
