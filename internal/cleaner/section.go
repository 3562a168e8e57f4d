package cleaner

import "regexp"

// Section identifies the structural region the line filter is currently in.
type Section int

const (
	SectionNone Section = iota
	SectionReferences
	SectionAppendices
	SectionAbstract
	SectionContents
)

func (s Section) String() string {
	switch s {
	case SectionReferences:
		return "references"
	case SectionAppendices:
		return "appendices"
	case SectionAbstract:
		return "abstract"
	case SectionContents:
		return "contents"
	}
	return "none"
}

// Heading patterns allow optional numbering like "8.2 References" and must
// consume the whole trimmed line.
var (
	referencesHeading = regexp.MustCompile(`(?i)^[\s\p{Zs}]*(?:\d+(?:\.\d+)*)?[\s\p{Zs}]*(?:references|reference[\s\p{Zs}]+list|bibliography)[\s\p{Zs}]*$`)
	appendicesHeading = regexp.MustCompile(`(?i)^[\s\p{Zs}]*(?:\d+(?:\.\d+)*)?[\s\p{Zs}]*(?:appendix|appendices)[\s\p{Zs}]*$`)
	abstractHeading   = regexp.MustCompile(`(?i)^[\s\p{Zs}]*(?:\d+(?:\.\d+)*)?[\s\p{Zs}]*abstract[\s\p{Zs}]*$`)
	contentsHeading   = regexp.MustCompile(`(?i)^[\s\p{Zs}]*(?:\d+(?:\.\d+)*)?[\s\p{Zs}]*(?:contents|table[\s\p{Zs}]+of[\s\p{Zs}]+contents)[\s\p{Zs}]*$`)

	// bodyHeading matches ordinary manuscript headings. Seeing one ends a
	// suppressed references, appendices or abstract section.
	bodyHeading = regexp.MustCompile(`(?i)^[\s\p{Zs}]*(?:\d+(?:\.\d+)*\.?)?[\s\p{Zs}]*(?:introduction|background|literature[\s\p{Zs}]+review|related[\s\p{Zs}]+work|theory|theoretical[\s\p{Zs}]+framework|methods?|methodology|materials[\s\p{Zs}]+and[\s\p{Zs}]+methods|experimental(?:[\s\p{Zs}]+setup)?|results(?:[\s\p{Zs}]+and[\s\p{Zs}]+discussion)?|findings|analysis|discussion|limitations|future[\s\p{Zs}]+work|conclusions?|summary|acknowledge?ments?|chapter[\s\p{Zs}]+\d+)[\s\p{Zs}]*$`)
)

// SectionHeading classifies a trimmed line as one of the tracked section
// headings, or SectionNone.
func SectionHeading(trimmed string) Section {
	switch {
	case referencesHeading.MatchString(trimmed):
		return SectionReferences
	case appendicesHeading.MatchString(trimmed):
		return SectionAppendices
	case abstractHeading.MatchString(trimmed):
		return SectionAbstract
	case contentsHeading.MatchString(trimmed):
		return SectionContents
	}
	return SectionNone
}

// IsBodyHeading reports whether a trimmed line is a common manuscript heading
// that is not itself a tracked section.
func IsBodyHeading(trimmed string) bool {
	return bodyHeading.MatchString(trimmed)
}
