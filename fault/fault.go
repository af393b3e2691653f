// Package fault defines the error taxonomy shared by the page and
// storage packages and the append-only contextual stack required to
// diagnose a failure after it crosses a few call frames.
//
// The fallible operations of the page and storage packages report
// failures as *fault.Error values; Header.UnmarshalBinary's length check
// is the exception and returns a plain error. Wrap appends another frame of context without discarding the
// ones already recorded, exactly like repeated github.com/pkg/errors
// wrapping — that is in fact what it is built on.
package fault

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code identifies the kind of failure independent of its message, so
// callers can switch on it instead of parsing strings.
type Code int

const (
	// Unknown is the zero value. Wrap gives it to errors that did not
	// already carry a Code (i.e. were not a *fault.Error).
	Unknown Code = iota

	// StorageWrongMetadataType: factory received metadata whose type tag
	// does not match the factory it was dispatched to.
	StorageWrongMetadataType

	// StorageInvalidOption: e.g. array payload_size or array_size == 0.
	StorageInvalidOption

	// StorageDuplicateID: registry already has a live storage with this id.
	StorageDuplicateID

	// StorageDuplicateName: registry already has a live storage with this name.
	StorageDuplicateName

	// StorageNotFound: lookup miss where one was required.
	StorageNotFound

	// PageChecksumMismatch: snapshot page failed integrity check on load.
	PageChecksumMismatch

	// PageTypeMismatch: header tag disagrees with expected storage type.
	PageTypeMismatch

	// Timeout: try_lock exceeded its budget. Always recoverable.
	Timeout
)

func (c Code) String() string {
	switch c {
	case StorageWrongMetadataType:
		return "StorageWrongMetadataType"
	case StorageInvalidOption:
		return "StorageInvalidOption"
	case StorageDuplicateID:
		return "StorageDuplicateID"
	case StorageDuplicateName:
		return "StorageDuplicateName"
	case StorageNotFound:
		return "StorageNotFound"
	case PageChecksumMismatch:
		return "PageChecksumMismatch"
	case PageTypeMismatch:
		return "PageTypeMismatch"
	case Timeout:
		return "Timeout"
	default:
		return "Unknown"
	}
}

// Error is a coded error carrying an append-only stack of contextual
// strings. The zero value is not usable; construct with New or Wrap.
type Error struct {
	code  Code
	cause error
}

// New creates a fault.Error with the given code and a root message,
// capturing a stack trace at the call site via github.com/pkg/errors.
func New(code Code, message string) *Error {
	return &Error{code: code, cause: errors.New(message)}
}

// Newf is New with fmt.Sprintf-style formatting.
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap appends a frame of context to err without losing the ones already
// recorded or the original Code. Returns nil if err is nil, so call
// sites can unconditionally do `return fault.Wrap(err, "...")`.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}
	if fe, ok := err.(*Error); ok {
		return &Error{code: fe.code, cause: errors.Wrap(fe.cause, message)}
	}
	return &Error{code: Unknown, cause: errors.Wrap(err, message)}
}

// Wrapf is Wrap with fmt.Sprintf-style formatting.
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// Code returns the error's taxonomy code.
func (e *Error) Code() Code {
	if e == nil {
		return Unknown
	}
	return e.code
}

// Error implements the error interface, rendering the full context
// stack from outermost to root.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.code, e.cause)
}

// Unwrap exposes the underlying pkg/errors chain to errors.Is/As.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// StackTrace renders the full contextual stack, one frame per line,
// innermost call first — useful in logs and test failure output.
func (e *Error) StackTrace() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%+v", e.cause)
}

// Is reports whether err is a *fault.Error carrying the given code.
func Is(err error, code Code) bool {
	fe, ok := err.(*Error)
	return ok && fe != nil && fe.code == code
}
