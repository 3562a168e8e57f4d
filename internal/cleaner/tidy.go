package cleaner

import (
	"regexp"
	"strings"
)

var (
	blankRun     = regexp.MustCompile(`[ \t]+`)
	manyNewlines = regexp.MustCompile(`\n{3,}`)
)

// Tidy collapses runs of spaces and tabs, drops a space before a newline,
// limits blank lines to one and trims the result.
func Tidy(text string) string {
	text = blankRun.ReplaceAllLiteralString(text, " ")
	text = strings.ReplaceAll(text, " \n", "\n")
	text = manyNewlines.ReplaceAllLiteralString(text, "\n\n")
	return strings.TrimSpace(text)
}
