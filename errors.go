package tusk

import (
	"context"
	"errors"
	"fmt"
)

// Standard sentinel errors for common operations.
var (
	// ErrNotFound is returned when a query expecting a record matches none.
	ErrNotFound = errors.New("tusk: record not found")

	// ErrNotSingular is returned when a query that expects exactly one
	// result matches more than one row.
	ErrNotSingular = errors.New("tusk: record not singular")

	// ErrTxStarted is returned when attempting to start a new transaction
	// within an existing transaction.
	ErrTxStarted = errors.New("tusk: cannot start a transaction within a transaction")

	// ErrTxDone is returned when a committed or rolled back transaction
	// is used again.
	ErrTxDone = errors.New("tusk: transaction is already committed or rolled back")
)

// NotFoundError represents a query that matched no record.
type NotFoundError struct {
	label string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("tusk: %s not found", e.label)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(err, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Label returns the record type label.
func (e *NotFoundError) Label() string {
	return e.label
}

// NewNotFoundError returns a new NotFoundError for the given record type.
func NewNotFoundError(label string) *NotFoundError {
	return &NotFoundError{label: label}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// NotSingularError represents a query that expected exactly one record
// but matched more.
type NotSingularError struct {
	label string
	count int // Number of results observed (-1 if unknown)
}

// Error returns the error string.
func (e *NotSingularError) Error() string {
	if e.count >= 0 {
		return fmt.Sprintf("tusk: %s not singular (got %d results, expected 1)", e.label, e.count)
	}
	return fmt.Sprintf("tusk: %s not singular", e.label)
}

// Is reports whether the target error matches NotSingularError.
// This allows errors.Is(err, ErrNotSingular) to return true.
func (e *NotSingularError) Is(err error) bool {
	return err == ErrNotSingular
}

// Label returns the record type label.
func (e *NotSingularError) Label() string {
	return e.label
}

// Count returns the number of observed results, or -1 if unknown.
func (e *NotSingularError) Count() int {
	return e.count
}

// NewNotSingularError returns a new NotSingularError for the given record type.
func NewNotSingularError(label string, count int) *NotSingularError {
	return &NotSingularError{label: label, count: count}
}

// IsNotSingular returns true if the error is a NotSingularError.
func IsNotSingular(err error) bool {
	if err == nil {
		return false
	}
	var e *NotSingularError
	return errors.As(err, &e) || errors.Is(err, ErrNotSingular)
}

// SchemaError reports a column or field that the record descriptor
// does not declare. It is raised while building, never at execution,
// so a query can be validated without a connection.
type SchemaError struct {
	Entity string // Record type name
	Column string // The unknown column
}

// Error returns the error string.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("tusk: unknown column %q for %s", e.Column, e.Entity)
}

// NewSchemaError returns a new SchemaError.
func NewSchemaError(entity, column string) *SchemaError {
	return &SchemaError{Entity: entity, Column: column}
}

// IsSchemaError returns true if the error is a SchemaError.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e)
}

// ShapeError reports a structurally invalid combination of query
// clauses, such as ordering an INSERT or a negative limit. Like
// SchemaError it is detected while building.
type ShapeError struct {
	msg string
}

// Error returns the error string.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("tusk: invalid query shape: %s", e.msg)
}

// NewShapeError returns a new ShapeError with the given message.
func NewShapeError(format string, args ...any) *ShapeError {
	return &ShapeError{msg: fmt.Sprintf(format, args...)}
}

// IsShapeError returns true if the error is a ShapeError.
func IsShapeError(err error) bool {
	if err == nil {
		return false
	}
	var e *ShapeError
	return errors.As(err, &e)
}

// IdentityError reports a diff across two snapshots that do not
// describe the same logical row.
type IdentityError struct {
	Entity string // Record type name
	Field  string // Key field that disagrees
	Old    any
	New    any
}

// Error returns the error string.
func (e *IdentityError) Error() string {
	return fmt.Sprintf("tusk: diffing distinct %s records: key %q is %v vs %v", e.Entity, e.Field, e.Old, e.New)
}

// IsIdentityError returns true if the error is an IdentityError.
func IsIdentityError(err error) bool {
	if err == nil {
		return false
	}
	var e *IdentityError
	return errors.As(err, &e)
}

// MaterializationError reports a row that cannot be converted into the
// declared record shape.
type MaterializationError struct {
	Entity string // Record type name
	Column string // Column that failed
	Err    error  // Underlying cause, nil for null violations
}

// Error returns the error string.
func (e *MaterializationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tusk: cannot materialize %s.%s: %v", e.Entity, e.Column, e.Err)
	}
	return fmt.Sprintf("tusk: cannot materialize %s.%s", e.Entity, e.Column)
}

// Unwrap returns the underlying error.
func (e *MaterializationError) Unwrap() error {
	return e.Err
}

// IsMaterializationError returns true if the error is a MaterializationError.
func IsMaterializationError(err error) bool {
	if err == nil {
		return false
	}
	var e *MaterializationError
	return errors.As(err, &e)
}

// RollbackError wraps an error that occurred during a transaction rollback.
type RollbackError struct {
	Err error // Original error that triggered rollback
}

// Error returns the error string.
func (e *RollbackError) Error() string {
	return fmt.Sprintf("tusk: rollback failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *RollbackError) Unwrap() error {
	return e.Err
}

// QueryError wraps an execution error with the record type and
// operation, without masking the driver's error: errors.Is and
// errors.As still reach the original failure.
type QueryError struct {
	Entity string // Record type being queried
	Op     string // Operation (e.g. "select", "count", "exist")
	Err    error  // Underlying error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("tusk: querying %s (%s): %v", e.Entity, e.Op, e.Err)
	}
	return fmt.Sprintf("tusk: querying %s: %v", e.Entity, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// IsCanceled returns true if the error stems from a canceled or timed
// out context.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
