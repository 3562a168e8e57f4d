package cleaner

import (
	"regexp"
	"strings"
)

var (
	// Parenthesized spans never cross a closing paren, so each match runs
	// from an opening paren to the nearest ")".
	parenWithNumber = regexp.MustCompile(`\([^)]*\d[^)]*\)`)
	parenNoDate     = regexp.MustCompile(`(?i)\([^)]*\bn\.[\s\p{Zs}]*d\b\.?[^)]*\)`)
	bracketNumber   = regexp.MustCompile(`\[[^\]]*\d[^\]]*\]`)
	figureLead      = regexp.MustCompile(`(?i)^\([\s\p{Zs}]*(?:Figure\b|Fig\.|Table\b)`)

	parenEquation   = regexp.MustCompile(`\([^)]*=[^)]*\)`)
	bracketEquation = regexp.MustCompile(`\[[^\]]*=[^\]]*\]`)

	inlineFigureRef = regexp.MustCompile(`\b(?:Figure|Fig\.|Table)[\s\p{Zs}]*\d+\b`)

	doubleQuoted = regexp.MustCompile(`"[^"\n]*"`)
	singleQuoted = regexp.MustCompile(`'[^'\n]*'`)
)

// StripCitations removes author-date citations such as "(Smith, 2019)",
// no-date citations such as "(Jones, n.d.)" and numeric markers such as
// "[12]" or "[3, 4]". Spans that open with Figure, Fig. or Table are kept.
func StripCitations(text string) string {
	text = replaceSpans(text, parenWithNumber, isFigureSpan)
	text = replaceSpans(text, parenNoDate, isFigureSpan)
	return bracketNumber.ReplaceAllLiteralString(text, " ")
}

// StripBracketEquations removes parenthesized or bracketed spans that
// contain "=", such as "(p = 0.03)".
func StripBracketEquations(text string) string {
	text = parenEquation.ReplaceAllLiteralString(text, " ")
	return bracketEquation.ReplaceAllLiteralString(text, " ")
}

// RemoveInlineFigureRefs removes bare references such as "Figure 2",
// "Fig. 3" or "Table 1" from running text.
func RemoveInlineFigureRefs(text string) string {
	return inlineFigureRef.ReplaceAllLiteralString(text, " ")
}

// StripInlineQuotes removes double- and single-quoted spans that stay on one
// line.
func StripInlineQuotes(text string) string {
	text = doubleQuoted.ReplaceAllLiteralString(text, " ")
	return singleQuoted.ReplaceAllLiteralString(text, " ")
}

func isFigureSpan(span string) bool {
	return figureLead.MatchString(span)
}

// replaceSpans replaces each match of re with a single space unless keep
// accepts it. A kept match is re-scanned from the character after its start,
// so a removable span nested inside it is still found.
func replaceSpans(text string, re *regexp.Regexp, keep func(string) bool) string {
	var b strings.Builder
	pos := 0
	for pos < len(text) {
		loc := re.FindStringIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		if keep(text[start:end]) {
			b.WriteString(text[pos : start+1])
			pos = start + 1
			continue
		}
		b.WriteString(text[pos:start])
		b.WriteByte(' ')
		pos = end
	}
	b.WriteString(text[pos:])
	return b.String()
}
