package tide

import (
	"errors"
	"fmt"
)

// Standard sentinel errors.
var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("tide: record not found")

	// ErrInvalidToken is returned for tokens that do not decode to a record
	// of the requested model.
	ErrInvalidToken = errors.New("tide: invalid token")

	// ErrNoPrimaryKey is returned when a model has no column for its
	// primary key.
	ErrNoPrimaryKey = errors.New("tide: model has no primary key column")
)

// NotFoundError reports a missing record.
type NotFoundError struct {
	label string
	id    any
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.id != nil {
		return fmt.Sprintf("tide: %s not found (id=%v)", e.label, e.id)
	}
	return fmt.Sprintf("tide: %s not found", e.label)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Label returns the table of the missing record.
func (e *NotFoundError) Label() string {
	return e.label
}

// ID returns the key that was searched for, if any.
func (e *NotFoundError) ID() any {
	return e.id
}

// NewNotFoundError returns a NotFoundError for the given table and key.
func NewNotFoundError(label string, id any) *NotFoundError {
	return &NotFoundError{label: label, id: id}
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// ValidationError reports input that cannot be used, such as a malformed
// key or request body.
type ValidationError struct {
	Name string
	Err  error
}

// Error returns the error string.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("tide: invalid %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError returns a ValidationError for the named input.
func NewValidationError(name string, err error) *ValidationError {
	return &ValidationError{Name: name, Err: err}
}

// IsValidationError reports whether err is or wraps a ValidationError.
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// QueryError wraps a database error with the table and operation.
type QueryError struct {
	Table string
	Op    string
	Err   error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	return fmt.Sprintf("tide: %s %s: %v", e.Op, e.Table, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError returns a QueryError.
func NewQueryError(table, op string, err error) *QueryError {
	return &QueryError{Table: table, Op: op, Err: err}
}

// IsQueryError reports whether err is or wraps a QueryError.
func IsQueryError(err error) bool {
	var e *QueryError
	return errors.As(err, &e)
}

// MigrationError reports a migration that failed to apply or revert.
type MigrationError struct {
	Name string
	Op   string
	Err  error
}

// Error returns the error string.
func (e *MigrationError) Error() string {
	return fmt.Sprintf("tide: migration %s (%s): %v", e.Name, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *MigrationError) Unwrap() error {
	return e.Err
}
