package report

import (
	"fmt"
	"io"
	"strings"
)

// TextWriter prints cleaned text. With several entries each one is preceded
// by a "==> source <==" banner. Word counts go to a separate stream so the
// cleaned text can be piped on its own.
type TextWriter struct {
	baseWriter
	counts     io.Writer
	countsOnly bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithCounts writes a word count line per entry to w.
func WithCounts(w io.Writer) TextWriterOption {
	return func(t *TextWriter) {
		t.counts = w
	}
}

// CountsOnly suppresses the cleaned text and writes the count lines to the
// main output.
func CountsOnly() TextWriterOption {
	return func(t *TextWriter) {
		t.countsOnly = true
	}
}

func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *TextWriter) Write(r *Report) error {
	if w.countsOnly {
		return w.writeCounts(w.output, r)
	}

	banner := len(r.Entries) > 1
	for i, e := range r.Entries {
		if e.Error != "" {
			continue
		}
		var b strings.Builder
		if banner {
			if i > 0 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "==> %s <==\n", e.Source)
		}
		b.WriteString(e.Text)
		if e.Text != "" {
			b.WriteString("\n")
		}
		if _, err := io.WriteString(w.output, b.String()); err != nil {
			return err
		}
	}

	if w.counts != nil {
		return w.writeCounts(w.counts, r)
	}
	return nil
}

// writeCounts prints one tab-separated line per entry: original, filtered,
// removed and source. A total line follows when there are several entries.
func (w *TextWriter) writeCounts(out io.Writer, r *Report) error {
	for _, e := range r.Entries {
		var err error
		if e.Error != "" {
			_, err = fmt.Fprintf(out, "error\t%s\t%s\n", e.Source, e.Error)
		} else {
			_, err = fmt.Fprintf(out, "%d\t%d\t%d\t%s\n", e.OriginalWords, e.FilteredWords, e.Removed(), e.Source)
		}
		if err != nil {
			return err
		}
	}
	if len(r.Entries) > 1 {
		orig, filt := r.Totals()
		if _, err := fmt.Fprintf(out, "%d\t%d\t%d\ttotal\n", orig, filt, orig-filt); err != nil {
			return err
		}
	}
	return nil
}
