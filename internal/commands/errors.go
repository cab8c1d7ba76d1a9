package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to wrapped command errors so callers can branch on the
// failure class without string-matching messages.
const (
	codeValidationFailed = "PAGES_COMMAND_VALIDATION_FAILED"
	codeCanceled         = "PAGES_COMMAND_CANCELED"
	codeTimeout          = "PAGES_COMMAND_TIMEOUT"
	codeContextFailed    = "PAGES_COMMAND_CONTEXT_FAILED"
	codeExecutionFailed  = "PAGES_COMMAND_EXECUTION_FAILED"
)

// wrapValidationError normalizes validation failures into the shared error
// envelope. Already-wrapped errors pass through untouched.
func wrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(codeValidationFailed)
}

func wrapContextError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command canceled").
			WithTextCode(codeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command timed out").
			WithTextCode(codeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context failed").
			WithTextCode(codeContextFailed)
	}
}

func wrapExecuteError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(codeExecutionFailed)
}
