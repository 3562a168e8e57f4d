package cleaner

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitTokens splits text into alternating runs of whitespace and
// non-whitespace. Joining the result reproduces text exactly.
func SplitTokens(text string) []string {
	var parts []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i > start && space != inSpace {
			parts = append(parts, text[start:i])
			start = i
		}
		inSpace = space
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

func isSpaceRun(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r)
}

// FilterTokens drops unit, number and symbol tokens according to opts while
// leaving all whitespace in place.
func FilterTokens(text string, opts Options) string {
	if !opts.ExcludeUnits && !opts.ExcludeNumbers && !opts.ExcludeSymbols {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, part := range SplitTokens(text) {
		if isSpaceRun(part) || keepToken(part, opts) {
			b.WriteString(part)
		}
	}
	return b.String()
}

func keepToken(tok string, opts Options) bool {
	switch {
	case opts.ExcludeUnits && ShouldDropUnitToken(tok):
		return false
	case opts.ExcludeNumbers && hasDigit(tok):
		return false
	case opts.ExcludeSymbols && !hasASCIILetter(tok):
		return false
	}
	return true
}
