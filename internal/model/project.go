package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Project is the aggregate root: it owns an ordered collection of data
// sources, acts as the observer subject for the whole subtree, and
// tracks whether the in-memory state differs from the last saved
// snapshot.
//
// The model is single-threaded by design: the project graph is mutated
// from one logical thread (the UI event loop), so no locking is done
// here. Background work hands back fully-formed immutable results that
// are attached on that thread.
type Project struct {
	observable

	ID       string
	Name     string
	Created  time.Time
	Modified time.Time
	// FilePath is set once the project has been persisted.
	FilePath string

	dataSources *TrackedList[*DataSource]

	// Unsaved-changes tracking: a fast-path flag flipped by every
	// tracked mutation, plus the serialized snapshot captured at the
	// last save for the always-correct comparison fallback.
	dirty      bool
	savedState []byte
}

// NewProject creates an empty project. The saved-state baseline is the
// freshly serialized form, so a never-mutated project reports no
// unsaved changes.
func NewProject(name string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name must not be empty")
	}
	now := time.Now()
	p := &Project{
		ID:       uuid.New().String(),
		Name:     name,
		Created:  now,
		Modified: now,
	}
	p.dataSources = NewTrackedList[*DataSource](p.markDirty)
	p.resetSavedState()
	return p, nil
}

// markDirty flips the fast-path flag and bumps the modification time.
// Every tracked mutation, collection-level or in-place on an owned
// entity, routes through here so the flag stays authoritative.
func (p *Project) markDirty() {
	p.dirty = true
	p.Modified = time.Now()
}

// childModified is the mutation channel handed to owned data sources.
func (p *Project) childModified() {
	p.markDirty()
	p.notifyObservers(p)
}

// DataSources returns the data sources in order.
func (p *Project) DataSources() []*DataSource {
	return p.dataSources.All()
}

// DataSourceCount returns the number of data sources.
func (p *Project) DataSourceCount() int { return p.dataSources.Len() }

// DataSource looks up a data source by id. Lookup is linear over the
// ordered collection; projects hold few sources, so no index map is
// maintained. Absent ids yield a not-found outcome, not an error.
func (p *Project) DataSource(id string) (*DataSource, bool) {
	return p.dataSources.Find(func(d *DataSource) bool { return d.ID == id })
}

// AddDataSource appends a data source, enforcing id uniqueness across
// the project. The source must arrive fully populated; observers are
// notified once after the change applies.
func (p *Project) AddDataSource(d *DataSource) error {
	if _, exists := p.DataSource(d.ID); exists {
		return &DuplicateIDError{Entity: "data source", ID: d.ID}
	}
	d.setOwner(p.childModified)
	p.dataSources.Append(d)
	p.notifyObservers(p)
	return nil
}

// RemoveDataSource removes the data source with the given id, cascading
// over its owned dataset and visualizations. Returns false when the id
// is unknown; nothing is notified in that case.
func (p *Project) RemoveDataSource(id string) bool {
	removed := p.dataSources.RemoveFunc(func(d *DataSource) bool {
		if d.ID != id {
			return false
		}
		d.detach()
		return true
	})
	if removed {
		p.notifyObservers(p)
	}
	return removed
}

// RenameDataSource renames an owned data source through the project so
// the dirty flag is flipped alongside the field change.
func (p *Project) RenameDataSource(id, name string) bool {
	d, ok := p.DataSource(id)
	if !ok {
		return false
	}
	d.Rename(name)
	return true
}

// Rename changes the project name.
func (p *Project) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("project name must not be empty")
	}
	p.Name = name
	p.markDirty()
	p.notifyObservers(p)
	return nil
}

// Snapshot returns the canonical serialized form of the project, the
// value MarkSaved expects after a successful write.
func (p *Project) Snapshot() ([]byte, error) {
	data, err := p.ToJSON()
	if err != nil {
		return nil, err
	}
	return json.Marshal(data)
}

// HasUnsavedChanges reports whether the in-memory project differs from
// the last saved state. The fast-path flag answers in O(1); when it is
// clear, the current serialized form is compared against the saved
// snapshot, which stays correct even for mutations that bypassed the
// flag.
func (p *Project) HasUnsavedChanges() bool {
	if p.dirty {
		return true
	}
	current, err := p.Snapshot()
	if err != nil {
		return true
	}
	return !bytes.Equal(current, p.savedState)
}

// MarkSaved records the snapshot written to storage and clears the
// fast-path flag. The persistence collaborator calls this exactly once
// per successful save, after the write succeeded; a failed save leaves
// the dirty state untouched.
func (p *Project) MarkSaved(snapshot []byte) {
	p.savedState = snapshot
	p.dirty = false
}

// resetSavedState captures the current serialized form as the clean
// baseline. Used at construction and after deserialization.
func (p *Project) resetSavedState() {
	snapshot, err := p.Snapshot()
	if err != nil {
		return
	}
	p.MarkSaved(snapshot)
}
