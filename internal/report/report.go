// Package report renders clean results for the command line as plain text,
// JSON or Markdown.
package report

import (
	"io"

	"github.com/dgallion1/wordcut/internal/cleaner"
)

// Entry is the outcome for one input. Error is set instead of the counts
// when the input could not be cleaned.
type Entry struct {
	Source string `json:"source"`
	Title  string `json:"title,omitempty"`
	Pages  int    `json:"pages,omitempty"`
	cleaner.Result
	Error string `json:"error,omitempty"`
}

// Report groups the entries of one run with the options that produced them.
type Report struct {
	Profile string   `json:"profile,omitempty"`
	Options []string `json:"options"`
	Entries []Entry  `json:"entries"`
}

// Totals sums the word counts of the successful entries.
func (r *Report) Totals() (original, filtered int) {
	for _, e := range r.Entries {
		if e.Error != "" {
			continue
		}
		original += e.OriginalWords
		filtered += e.FilteredWords
	}
	return original, filtered
}

// Failed returns the number of entries with an error.
func (r *Report) Failed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Error != "" {
			n++
		}
	}
	return n
}

// Writer renders a report.
type Writer interface {
	Write(r *Report) error
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
