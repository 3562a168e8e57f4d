package cleaner

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	figureCaption = regexp.MustCompile(`(?i)^(?:figure|fig\.|table|diagram)[\s\p{Zs}]*\d*[\s\p{Zs}]*:`)

	pageOfPages  = regexp.MustCompile(`(?i)^page[\s\p{Zs}]*\d+(?:[\s\p{Zs}]*of[\s\p{Zs}]*\d+)?$`)
	bareNumber   = regexp.MustCompile(`^\d+$`)
	pageFraction = regexp.MustCompile(`^\d+/\d+$`)
	dashedNumber = regexp.MustCompile(`^[-\s\p{Zs}]*\d+[-\s\p{Zs}]*$`)
)

const (
	maxEquationChars = 80
	maxEquationWords = 10
)

// IsFigureCaptionLine reports whether line starts a figure, table or diagram
// caption such as "Figure 3: Results".
func IsFigureCaptionLine(line string) bool {
	return figureCaption.MatchString(line)
}

// IsPageNumberLine reports whether line is a page marker: "Page 3",
// "Page 3 of 10", "42", "3/10" or "- 5 -".
func IsPageNumberLine(line string) bool {
	return pageOfPages.MatchString(line) ||
		bareNumber.MatchString(line) ||
		pageFraction.MatchString(line) ||
		dashedNumber.MatchString(line)
}

// LooksLikeShortEquation reports whether line contains "=" and is short by
// either character length or word count.
func LooksLikeShortEquation(line string) bool {
	if !strings.Contains(line, "=") {
		return false
	}
	return utf8.RuneCountInString(line) <= maxEquationChars ||
		len(strings.Fields(line)) <= maxEquationWords
}

// unitTokens holds lower-cased unit abbreviations dropped by the units filter.
var unitTokens = map[string]bool{
	"m": true, "km": true, "cm": true, "mm": true, "um": true, "nm": true,
	"s": true, "ms": true, "min": true, "h": true, "hr": true,
	"kg": true, "g": true, "mg": true, "ug": true, "µg": true,
	"mol": true, "mmol": true,
	"l": true, "ml": true, "kl": true,
	"n": true, "kn": true,
	"j": true, "kj": true,
	"w": true, "kw": true,
	"v": true,
	"pa": true, "kpa": true, "mpa": true,
	"hz": true, "khz": true, "mhz": true,
	"ohm": true, "ω": true,
	"c": true, "k": true,
}

// ShouldDropUnitToken reports whether token is a unit abbreviation or a
// single-letter variable. Punctuation and digits are ignored, so "5kg," and
// "(x)" are both judged on their letters. The article "a" is always kept.
func ShouldDropUnitToken(token string) bool {
	var b strings.Builder
	for _, r := range token {
		if isUnitRune(r) {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return false
	}

	lower := strings.ToLower(clean)
	if lower == "a" {
		return false
	}
	if unitTokens[lower] {
		return true
	}
	if utf8.RuneCountInString(clean) == 1 {
		return lower[0] >= 'b' && lower[0] <= 'z'
	}
	return false
}

func isUnitRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == 'µ' || r == 'ω'
}

func hasDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}

func hasASCIILetter(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}
