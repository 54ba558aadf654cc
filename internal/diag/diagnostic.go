package diag

import (
	"errors"

	"github.com/OIEIEIO/lobster/internal/source"
)

// Note carries secondary context for a diagnostic, e.g. "first declared here".
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is the presentation-layer record the CLI renders. Producers keep
// returning typed *Error values; FromError lifts one into a Diagnostic.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

// FromError lifts a typed error into an error-severity diagnostic.
// A nil or untyped error produces an UnknownCode record.
func FromError(err error) Diagnostic {
	d := Diagnostic{
		Severity: SevError,
		Code:     UnknownCode,
		Primary:  source.Span{File: source.NoFileID},
	}
	if err == nil {
		return d
	}
	d.Message = err.Error()
	var de *Error
	if errors.As(err, &de) {
		d.Code = de.Code
		d.Message = de.Msg
		d.Primary = de.Span
	}
	return d
}

// WithNote appends a note and returns the diagnostic for chaining.
func (d Diagnostic) WithNote(span source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: span, Msg: msg})
	return d
}
