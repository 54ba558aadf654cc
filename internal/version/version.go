package version

import "github.com/fatih/color"

// Build identity for the lobster CLI.
// These variables can be overridden at build time via -ldflags.

var (
	// Version is the semantic version of the compiler.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionColor = color.New(color.FgGreen, color.Bold)
	commitColor  = color.New(color.Faint)
)

// ImageToken is the build identity stamped into every persisted image. A
// loaded image whose token differs from the running compiler's is rejected
// outright, so anything that changes the compiler's behavior must change
// this string.
func ImageToken() string {
	token := "lobster " + Version
	if GitCommit != "" {
		token += " " + GitCommit
	}
	return token
}

// Pretty renders the version string with terminal colors. Output honors the
// global color switch set by the CLI.
func Pretty() string {
	s := versionColor.Sprint(Version)
	if GitCommit != "" {
		s += " " + commitColor.Sprint("("+GitCommit+")")
	}
	return s
}
