package source

import "fmt"

// Span is the minimal source position attached to diagnostics: the file and
// the 1-based line a declaration or lookup came from.
type Span struct {
	File FileID
	Line int32
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.File, s.Line)
}
