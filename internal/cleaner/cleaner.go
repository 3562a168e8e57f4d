// Package cleaner strips academic-paper artifacts from manuscript text so
// that the remaining body can be word-counted.
//
// Cleaning runs as a fixed sequence of passes: whole-line filtering with
// section tracking, protection of parenthesized figure references, inline
// span removal, token filtering, restoration and whitespace tidying. Every
// function in this package is pure and safe for concurrent use.
package cleaner

import "strings"

// Result is the outcome of one cleaning run.
type Result struct {
	Text          string `json:"cleanedText"`
	OriginalWords int    `json:"originalWordCount"`
	FilteredWords int    `json:"filteredWordCount"`
}

// Removed returns how many words the run removed.
func (r Result) Removed() int {
	return r.OriginalWords - r.FilteredWords
}

// CountWords counts whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// Process cleans raw according to opts and reports word counts before and
// after. The order of passes matters: figure references are protected before
// citations are stripped, and tidying runs last.
func Process(raw string, opts Options) Result {
	res := Result{OriginalWords: CountWords(raw)}

	text := strings.Join(FilterLines(SplitLines(raw), opts), "\n")

	prot := Protect(text)
	text = prot.Text
	if opts.ExcludeCitations {
		text = StripCitations(text)
	}
	if opts.ExcludeEquations {
		text = StripBracketEquations(text)
	}
	if opts.ExcludeInlineFigureRefs {
		text = RemoveInlineFigureRefs(text)
	}
	if opts.ExcludeQuotes {
		text = StripInlineQuotes(text)
	}

	text = FilterTokens(text, opts)
	text = prot.Restore(text)

	res.Text = Tidy(text)
	res.FilteredWords = CountWords(res.Text)
	return res
}
