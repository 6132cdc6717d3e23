package vcd

import (
	"fmt"

	"github.com/pkg/errors"
)

// A ValidationError reports a malformed value, name or width: a value that
// does not fit the variable's type, an empty scope or variable name, a
// missing required width or an oversize vector.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// A PhaseError reports an operation issued in the wrong writer phase:
// registering after finalization, changing a value after Close, an
// out-of-order timestamp, or operating on an unknown scope or variable.
type PhaseError struct {
	msg string
}

func (e *PhaseError) Error() string { return e.msg }

// A DuplicateError reports registration of an already known (scope, name)
// pair while duplicate checking is enabled.
type DuplicateError struct {
	msg string
}

func (e *DuplicateError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&ValidationError{msg: fmt.Sprintf(format, args...)})
}

func phaseErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&PhaseError{msg: fmt.Sprintf(format, args...)})
}

func duplicateErrorf(format string, args ...interface{}) error {
	return errors.WithStack(&DuplicateError{msg: fmt.Sprintf(format, args...)})
}

// IsValidation reports whether the cause of err is a ValidationError.
func IsValidation(err error) bool {
	_, ok := errors.Cause(err).(*ValidationError)
	return ok
}

// IsPhase reports whether the cause of err is a PhaseError.
func IsPhase(err error) bool {
	_, ok := errors.Cause(err).(*PhaseError)
	return ok
}

// IsDuplicate reports whether the cause of err is a DuplicateError.
func IsDuplicate(err error) bool {
	_, ok := errors.Cause(err).(*DuplicateError)
	return ok
}
