package store

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NotFoundError reports an operation that targeted a nonexistent entity.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// NotFound builds a NotFoundError for the given entity kind and id.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ReferentialConflictError reports an attempted delete of an entity that is
// still referenced elsewhere. The operation performs no state change.
type ReferentialConflictError struct {
	Entity       string
	ID           string
	ReferencedBy string
	References   int
}

// Error implements the error interface.
func (e *ReferentialConflictError) Error() string {
	return fmt.Sprintf("cannot delete %s %q: referenced by %d %s record(s)",
		e.Entity, e.ID, e.References, e.ReferencedBy)
}

// IsReferentialConflict reports whether err is (or wraps) a
// ReferentialConflictError.
func IsReferentialConflict(err error) bool {
	var target *ReferentialConflictError
	return errors.As(err, &target)
}

// DuplicateError reports a write that would violate a unique key. Duplicates
// are detected by pre-check so the rejection happens before any store write.
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// IsValidation reports whether err is a validation failure: a rule violation
// from the model validators or a duplicate unique key.
func IsValidation(err error) bool {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return true
	}
	var rules validation.Errors
	if errors.As(err, &rules) {
		return true
	}
	var single validation.Error
	return errors.As(err, &single)
}
