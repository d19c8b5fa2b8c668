package validation

import (
	"os"
	"strings"
)

var separatorReplacer = strings.NewReplacer(
	`\`, string(os.PathSeparator),
	"/", string(os.PathSeparator),
)

// NormalizePath replaces every backslash and forward slash with the platform's
// path separator so that paths compare equal regardless of how they were written.
// Nothing else is cleaned: duplicate or trailing separators are kept.
func NormalizePath(path string) string {
	return separatorReplacer.Replace(path)
}
