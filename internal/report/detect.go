package report

import (
	"os"

	"golang.org/x/term"
)

// ShouldStyle reports whether text written to f should carry ANSI styling.
//
// Returns false if:
//   - NO_COLOR is set (https://no-color.org)
//   - CI is set (build logs rarely render escape codes well)
//   - f is nil or not a terminal
func ShouldStyle(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("CI") != "" {
		return false
	}
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
