package ordering

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Catalog and Store lookups when no matching
// row exists. Inactive catalog rows count as not found for fresh lookups.
var ErrNotFound = errors.New("not found")

// ErrDuplicateNumber is returned by Store.CreateOrder when the database
// rejects the order or invoice number on its uniqueness constraint.
var ErrDuplicateNumber = errors.New("duplicate order or invoice number")

// ValidationError reports a malformed order request. It is always raised
// before any write is attempted.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError identifies which catalog reference in a request could not
// be resolved to an active row.
type NotFoundError struct {
	Kind string
	ID   uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found or inactive", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
