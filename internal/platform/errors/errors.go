// Package errors is the project error type: a machine code, a message safe
// to show callers, an optional offending field and the wrapped cause.
// Import it as perr.
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the numeric code clients see; values are part of the wire format
type ErrorCode uint16

const (
	ErrorCodeUnknown         ErrorCode = iota // unclassified, 500
	ErrorCodePanic                            // recovered handler panic
	ErrorCodeUnavailable                      // retry may succeed: cancelled, store down, model missing
	ErrorCodeUnauthorized                     // missing or unknown api key
	ErrorCodeInvalidArgument                  // well-formed request the pipeline cannot use
	ErrorCodeValidation                       // request body failed validation
	ErrorCodeJSON                             // body is not the expected JSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodeDecode        // subtitle bytes or cue format could not be read
	ErrorCodeEmptyDocument // the track carries no usable speech
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeEmptyDocument:   http.StatusUnprocessableEntity,
	ErrorCodeDuplicateKey:    http.StatusConflict,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeDecode:          http.StatusBadRequest,
	ErrorCodeUnauthorized:    http.StatusUnauthorized,
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
}

// HTTPStatusCode maps a code to its status; unmapped codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// ErrNotFound is the bare not-found error
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is the project error. Treat it as immutable; WithField copies.
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
}

// Wire is the serialisable part of an Error. The cause never leaves the process.
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.orig != nil:
		return e.msg + ": " + e.orig.Error()
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field names the offending input field, if any
func (e *Error) Field() string { return e.field }

// WireFrom returns the wire form of err; foreign errors become Unknown with
// their text, nil gives the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root follows Unwrap to the innermost cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// CodeOf returns the code of the first project error in err's chain
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is HTTPStatusCode(CodeOf(err))
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As finds the first project error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	ok := stderrs.As(err, &e)
	return e, ok
}

// WithField returns a copy of err naming field. Foreign errors pass through.
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	c.field = field
	return &c
}

// New returns an error with code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format
func Newf(code ErrorCode, format string, a ...any) error { return New(code, fmt.Sprintf(format, a...)) }

// Wrap attaches code and message to orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf is Wrap with a format
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

func NotFoundf(format string, a ...any) error      { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error    { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error       { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error      { return Newf(ErrorCodePanic, format, a...) }
func Unauthorizedf(format string, a ...any) error  { return Newf(ErrorCodeUnauthorized, format, a...) }
func Unavailablef(format string, a ...any) error   { return Newf(ErrorCodeUnavailable, format, a...) }
func Decodef(format string, a ...any) error        { return Newf(ErrorCodeDecode, format, a...) }
func EmptyDocumentf(format string, a ...any) error { return Newf(ErrorCodeEmptyDocument, format, a...) }
