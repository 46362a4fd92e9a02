// Package errors defines the coded errors returned by dungeonforge.
//
// Every failure a caller may want to branch on carries a [Code]. Validation
// failures use the INVALID_* family, stage ordering failures use
// PRECONDITION_FAILED, and anything else is INTERNAL_ERROR.
//
//	err := errors.New(errors.ErrCodeInvalidStage, "unknown stage %q", name)
//	if errors.Is(err, errors.ErrCodeInvalidStage) {
//	    ...
//	}
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidStage  Code = "INVALID_STAGE"
	ErrCodeInvalidPacing Code = "INVALID_PACING"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPoint  Code = "INVALID_POINT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidKind   Code = "INVALID_KIND"

	// ErrCodePrecondition marks a stage invoked before the stage it depends on.
	ErrCodePrecondition Code = "PRECONDITION_FAILED"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Invalid reports whether c belongs to the INVALID_* family.
func (c Code) Invalid() bool {
	return len(c) > 8 && c[:8] == "INVALID_"
}

// Error is a coded error. Stage is set when the failure belongs to one
// pipeline stage.
type Error struct {
	Code    Code
	Stage   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with an underlying cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Precondition reports that stage ran before requires.
func Precondition(stage, requires string) *Error {
	e := New(ErrCodePrecondition, "%s requires %s to run first", stage, requires)
	e.Stage = stage
	return e
}

func find(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	e, ok := find(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	if e, ok := find(err); ok {
		return e.Code
	}
	return ""
}

// StageOf returns the stage recorded on err, or "".
func StageOf(err error) string {
	if e, ok := find(err); ok {
		return e.Stage
	}
	return ""
}

// UserMessage renders err without code prefixes, keeping the messages of
// any causes.
func UserMessage(err error) string {
	e, ok := find(err)
	if !ok {
		return err.Error()
	}
	if e.Cause != nil {
		return e.Message + ": " + UserMessage(e.Cause)
	}
	return e.Message
}

// ExitCode maps err to a process exit status: 0 for nil, 130 for
// cancellation, 2 for invalid input and 1 otherwise.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case GetCode(err).Invalid():
		return 2
	default:
		return 1
	}
}
