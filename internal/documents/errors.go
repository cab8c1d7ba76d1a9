package documents

import (
	"errors"
	"fmt"
)

var (
	ErrTitleRequired      = errors.New("documents: title is required")
	ErrTitleTooLong       = errors.New("documents: title exceeds 100 characters")
	ErrUserRequired       = errors.New("documents: acting user is required")
	ErrDocumentIDRequired = errors.New("documents: document id required")
	ErrStatusInvalid      = errors.New("documents: status is invalid")
	ErrParentCycle        = errors.New("documents: parent change would create a cycle")

	// ErrAttachmentsDisabled is returned by the attachment operations when the
	// feature is switched off in configuration.
	ErrAttachmentsDisabled = errors.New("documents: attachments are disabled")
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

// ForbiddenError is returned when the acting user lacks ownership of the
// document or fork targeted by a mutation.
type ForbiddenError struct {
	Resource string
	Key      string
	UserID   string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("user %q may not modify %s %q", e.UserID, e.Resource, e.Key)
}

// ConflictError is returned when acquiring an edit fork loses the race to a
// concurrent editor.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already has an active fork", e.Resource, e.Key)
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
