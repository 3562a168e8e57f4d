package cleaner

import (
	"fmt"
	"regexp"
	"strings"
)

var protectedRef = regexp.MustCompile(`(?i)\([\s\p{Zs}]*(?:Figure|Fig\.|Table)[\s\p{Zs}]*\d+[\s\p{Zs}]*\)`)

// Placeholder pairs a generated key with the text it stands in for.
type Placeholder struct {
	Key      string
	Original string
}

// Protected is text whose parenthesized figure and table references have been
// swapped for placeholder keys, together with the keys needed to undo it.
type Protected struct {
	Text         string
	Placeholders []Placeholder
}

// Protect replaces every "(Figure N)", "(Fig. N)" and "(Table N)" in text
// with a key that no inline transformer will touch. Keys are numbered in order
// of appearance and never collide with text already present in the input.
func Protect(text string) Protected {
	marker := "__FIGREF"
	for strings.Contains(text, marker) {
		marker += "_"
	}

	var placeholders []Placeholder
	out := protectedRef.ReplaceAllStringFunc(text, func(match string) string {
		key := fmt.Sprintf("%s__%d__", marker, len(placeholders))
		placeholders = append(placeholders, Placeholder{Key: key, Original: match})
		return key
	})
	return Protected{Text: out, Placeholders: placeholders}
}

// Restore puts the original references back into text, in recorded order.
// Keys removed by later passes stay removed.
func (p Protected) Restore(text string) string {
	for _, ph := range p.Placeholders {
		text = strings.ReplaceAll(text, ph.Key, ph.Original)
	}
	return text
}
