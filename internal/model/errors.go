package model

import (
	"errors"
	"fmt"
)

// ErrEmptyData indicates a dataset built from a zero-row or zero-column
// buffer.
var ErrEmptyData = errors.New("dataset is empty: at least one row and one column required")

// ErrInvalidObserver indicates an observer registration that does not
// satisfy the observer capability (currently: a nil observer).
var ErrInvalidObserver = errors.New("observer must implement SubjectChanged")

// DuplicateIDError indicates an attempt to add an entity whose id is
// already present in the owning collection.
type DuplicateIDError struct {
	Entity string
	ID     string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s with id %q already exists", e.Entity, e.ID)
}

// BindingError reports a visualization configuration that lacks a column
// binding required by its chart type, or binds a column unsuitable for
// the role.
type BindingError struct {
	ChartType ChartType
	Binding   string
	Reason    string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s chart: %s binding invalid: %s", e.ChartType, e.Binding, e.Reason)
}

// DecodeError reports a malformed field encountered while reconstructing
// an entity from its serialized form.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
}

func decodeErrf(field, format string, args ...any) *DecodeError {
	return &DecodeError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
