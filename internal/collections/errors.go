package collections

import (
	"errors"
	"fmt"
)

var (
	ErrNameRequired         = errors.New("collections: name is required")
	ErrUserRequired         = errors.New("collections: acting user is required")
	ErrCollectionIDRequired = errors.New("collections: collection id required")
	ErrPermissionInvalid    = errors.New("collections: permission is invalid")
	ErrSlugExists           = errors.New("collections: slug already exists")
)

// NotFoundError represents missing records from repository lookups.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// ForbiddenError is returned when the acting user lacks access to the
// collection targeted by an operation.
type ForbiddenError struct {
	Resource string
	Key      string
	UserID   string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user %q may not access %s %q", e.UserID, e.Resource, e.Key)
}

// ValidationError wraps input failures with the offending field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
