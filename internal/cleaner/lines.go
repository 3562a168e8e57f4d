package cleaner

import (
	"regexp"
	"strings"
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// SplitLines splits text on LF or CRLF.
func SplitLines(text string) []string {
	return lineBreak.Split(text, -1)
}

// FilterLines drops whole lines according to opts. It tracks which section
// each line belongs to so that excluded sections lose their bodies as well as
// their headings. The input slice is not modified.
func FilterLines(lines []string, opts Options) []string {
	out := make([]string, 0, len(lines))
	section := SectionNone

	for i, line := range lines {
		if i == 0 && opts.ExcludeTitle {
			line = ""
		}
		trimmed := strings.TrimSpace(line)

		if heading := SectionHeading(trimmed); heading != SectionNone {
			section = heading
			if !opts.excludes(heading) {
				out = append(out, line)
			}
			continue
		}

		// A table of contents ends at the first blank line, which is kept as
		// a separator.
		if section == SectionContents && opts.ExcludeContents {
			if trimmed == "" {
				section = SectionNone
				out = append(out, line)
			}
			continue
		}

		if section != SectionNone && section != SectionContents && IsBodyHeading(trimmed) {
			section = SectionNone
		}
		if opts.excludes(section) {
			continue
		}

		if opts.ExcludePageNumbers && IsPageNumberLine(trimmed) {
			continue
		}
		if opts.ExcludeFigureCaptions && IsFigureCaptionLine(trimmed) {
			continue
		}
		if opts.ExcludeEquations && LooksLikeShortEquation(trimmed) {
			continue
		}

		out = append(out, line)
	}
	return out
}
