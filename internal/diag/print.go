package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/OIEIEIO/lobster/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	codeColor = color.New(color.Faint)
)

// Print renders one diagnostic to w. Color output follows the global
// color.NoColor switch, which the CLI sets from its --color flag.
func Print(w io.Writer, d Diagnostic, files *source.FileSet) {
	label := infoColor.Sprint("info")
	switch d.Severity {
	case SevError:
		label = errColor.Sprint("error")
	case SevWarning:
		label = warnColor.Sprint("warning")
	}
	fmt.Fprintf(w, "%s %s: %s\n", label, codeColor.Sprint(d.Code.String()), d.Message)
	if loc := formatSpan(d.Primary, files); loc != "" {
		fmt.Fprintf(w, "  at %s\n", loc)
	}
	for _, n := range d.Notes {
		if loc := formatSpan(n.Span, files); loc != "" {
			fmt.Fprintf(w, "  note: %s (%s)\n", n.Msg, loc)
		} else {
			fmt.Fprintf(w, "  note: %s\n", n.Msg)
		}
	}
}

func formatSpan(s source.Span, files *source.FileSet) string {
	if !s.File.IsValid() {
		return ""
	}
	name := fmt.Sprintf("file#%d", s.File)
	if files != nil {
		if n, ok := files.Name(s.File); ok {
			name = n
		}
	}
	if s.Line > 0 {
		return fmt.Sprintf("%s:%d", name, s.Line)
	}
	return name
}
