package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
)

// MarkdownWriter outputs a word count summary in Markdown. With
// IncludeText the cleaned text of each entry follows in a collapsible
// section.
type MarkdownWriter struct {
	baseWriter
	includeText bool
}

func NewMarkdownWriter(output io.Writer, includeText bool) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter:  newBaseWriter(output),
		includeText: includeText,
	}
}

func (w *MarkdownWriter) Write(r *Report) error {
	md := markdown.NewMarkdown(w.output)

	md.H1("Word Count Report")
	md.PlainText("")

	w.writeSummary(md, r)
	w.writeOptions(md, r)
	w.writeErrors(md, r)
	if w.includeText {
		w.writeText(md, r)
	}

	return md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, r *Report) {
	md.H2("Summary")
	md.PlainText("")

	rows := make([][]string, 0, len(r.Entries)+1)
	for _, e := range r.Entries {
		if e.Error != "" {
			rows = append(rows, []string{e.Source, "-", "-", "-"})
			continue
		}
		rows = append(rows, []string{
			e.Source,
			strconv.Itoa(e.OriginalWords),
			strconv.Itoa(e.FilteredWords),
			strconv.Itoa(e.Removed()),
		})
	}
	if len(r.Entries) > 1 {
		orig, filt := r.Totals()
		rows = append(rows, []string{
			"**Total**",
			"**" + strconv.Itoa(orig) + "**",
			"**" + strconv.Itoa(filt) + "**",
			"**" + strconv.Itoa(orig-filt) + "**",
		})
	}

	md.Table(markdown.TableSet{
		Header:    []string{"Source", "Original", "Filtered", "Removed"},
		Alignment: []markdown.TableAlignment{markdown.AlignLeft, markdown.AlignRight, markdown.AlignRight, markdown.AlignRight},
		Rows:      rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeOptions(md *markdown.Markdown, r *Report) {
	md.H2("Exclusions")
	md.PlainText("")
	if r.Profile != "" {
		md.PlainTextf("Profile: `%s`", r.Profile)
		md.PlainText("")
	}
	if len(r.Options) == 0 {
		md.PlainText("None; every word was counted.")
		md.PlainText("")
		return
	}
	md.BulletList(r.Options...)
	md.PlainText("")
}

func (w *MarkdownWriter) writeErrors(md *markdown.Markdown, r *Report) {
	failed := r.Failed()
	if failed == 0 {
		return
	}
	md.Warningf("%d input(s) could not be cleaned.", failed)
	md.PlainText("")
	for _, e := range r.Entries {
		if e.Error != "" {
			md.PlainTextf("- `%s`: %s", e.Source, e.Error)
		}
	}
	md.PlainText("")
}

func (w *MarkdownWriter) writeText(md *markdown.Markdown, r *Report) {
	md.H2("Cleaned Text")
	md.PlainText("")
	for _, e := range r.Entries {
		if e.Error != "" {
			continue
		}
		md.Details(e.Source, e.Text)
		md.PlainText("")
	}
}
