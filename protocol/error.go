// Defines the error codes returned when a value
// fails to decode from its canonical text form.

package protocol

import (
	"errors"
	"fmt"
)

// An ErrorCode names the reason a value was rejected.
// Every decode path fails with exactly one of these codes.
type ErrorCode int

const (
	// ErrMissingSeparator indicates that a tagged value has no ':'.
	ErrMissingSeparator ErrorCode = iota + 10
	// ErrUnknownTag indicates that a tagged value's prefix is not known.
	ErrUnknownTag
	// ErrBadLength indicates that an encoded or decoded length is wrong.
	ErrBadLength
	// ErrBadEncoding indicates malformed base64url or JSON text.
	ErrBadEncoding
	// ErrBadValue indicates that a value has the wrong JSON type
	// or cannot be constructed from its bytes.
	ErrBadValue
	// ErrUnknownActionTag indicates an unrecognized "action" discriminant.
	ErrUnknownActionTag
	// ErrMissingField indicates that a required member is absent.
	ErrMissingField
	// ErrUnexpectedField indicates an unknown or duplicated member.
	ErrUnexpectedField
	// ErrFlattenNameCollision indicates that a flattened payload
	// uses a member name reserved by its envelope.
	ErrFlattenNameCollision
)

var errorMessages = map[ErrorCode]string{
	ErrMissingSeparator:     "[pkd] Missing separator",
	ErrUnknownTag:           "[pkd] Unknown tag",
	ErrBadLength:            "[pkd] Bad length",
	ErrBadEncoding:          "[pkd] Bad encoding",
	ErrBadValue:             "[pkd] Bad value",
	ErrUnknownActionTag:     "[pkd] Unknown action tag",
	ErrMissingField:         "[pkd] Missing field",
	ErrUnexpectedField:      "[pkd] Unexpected field",
	ErrFlattenNameCollision: "[pkd] Flattened field name collision",
}

// Error returns the error message corresponding to the error code e.
func (e ErrorCode) Error() string {
	if m, ok := errorMessages[e]; ok {
		return m
	}
	return fmt.Sprintf("[pkd] Unknown error code %d", int(e))
}

// An Error describes why a value was rejected: its Code,
// the dotted path of the offending Field (empty for a bare value),
// and an optional cause.
// errors.Is(err, code) reports whether err carries the given ErrorCode.
type Error struct {
	Code  ErrorCode
	Field string
	Msg   string
	Err   error
}

func (e *Error) Error() string {
	s := e.Code.Error()
	if e.Field != "" {
		s += " at " + e.Field
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is e's ErrorCode.
func (e *Error) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == e.Code
}

func newError(code ErrorCode, format string, args ...interface{}) error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(code ErrorCode, cause error, msg string) error {
	return &Error{Code: code, Msg: msg, Err: cause}
}

// inField attributes err to the member name of the enclosing object.
// Errors which are not *Error are reported as ErrBadValue.
func inField(name string, err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !errors.As(err, &e) {
		return &Error{Code: ErrBadValue, Field: name, Err: err}
	}
	field := name
	if e.Field != "" {
		field = name + "." + e.Field
	}
	return &Error{Code: e.Code, Field: field, Msg: e.Msg, Err: e.Err}
}

// CodeOf returns the ErrorCode carried by err, or 0 if there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}
	return 0
}

// FieldOf returns the dotted path of the field err was raised for.
func FieldOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Field
	}
	return ""
}
