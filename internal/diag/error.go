package diag

import (
	"errors"
	"fmt"

	"github.com/OIEIEIO/lobster/internal/source"
)

// Error is the typed failure returned by symbol-table and image operations.
// Every declare/lookup returns one of these instead of aborting the compile;
// callers propagate it up to the driver, which renders it as a Diagnostic.
type Error struct {
	Code Code
	Msg  string
	Span source.Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Errorf builds a typed error with a formatted message and no position.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
		Span: source.Span{File: source.NoFileID},
	}
}

// At attaches a source position to the error.
func (e *Error) At(span source.Span) *Error {
	e.Span = span
	return e
}

// CodeOf extracts the diagnostic code from an error chain, or UnknownCode.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return UnknownCode
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}
