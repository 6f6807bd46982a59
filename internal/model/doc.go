// Package model holds the DataInspect object graph: Project owns
// DataSources, each DataSource owns exactly one Dataset and its derived
// Visualizations, and a Dataset owns the Columns describing its tabular
// buffer. The package also carries the observer subject role, the
// tracked-collection change detection backing unsaved-changes checks,
// and the lossless to/from JSON contract used by the project store.
package model
