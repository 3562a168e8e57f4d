package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/wordcut/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXParser handles .docx files. Paragraphs with a heading or title style
// become headings; table cells become paragraphs.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read docx: %w", err)
	}

	f, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	doc := &document.Document{
		Title: baseTitle(filename, ".docx"),
	}

	for _, item := range f.Document.Body.Items {
		switch o := item.(type) {
		case *docx.Paragraph:
			addDOCXParagraph(doc, o)
		case *docx.Table:
			addDOCXTable(doc, o)
		}
	}

	return doc, nil
}

func addDOCXParagraph(doc *document.Document, para *docx.Paragraph) {
	text := docxParagraphText(para)
	switch style := docxStyle(para); {
	case isDOCXTitleStyle(style):
		if t := strings.TrimSpace(text); t != "" {
			doc.Title = t
		}
		doc.AddHeading(text)
	case isDOCXHeadingStyle(style):
		doc.AddHeading(text)
	default:
		doc.AddParagraph(text, 0)
	}
}

func addDOCXTable(doc *document.Document, tbl *docx.Table) {
	for _, row := range tbl.TableRows {
		for _, cell := range row.TableCells {
			for _, para := range cell.Paragraphs {
				doc.AddParagraph(docxParagraphText(para), 0)
			}
			for _, nested := range cell.Tables {
				addDOCXTable(doc, nested)
			}
		}
	}
}

func docxStyle(para *docx.Paragraph) string {
	if para.Properties == nil || para.Properties.Style == nil {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
}

// isDOCXHeadingStyle matches Word's built-in "Heading1".."Heading9" style
// ids, as well as their display-name spelling "heading 1".
func isDOCXHeadingStyle(style string) bool {
	if len(style) != len("heading1") || !strings.HasPrefix(style, "heading") {
		return false
	}
	c := style[len(style)-1]
	return c >= '1' && c <= '9'
}

func isDOCXTitleStyle(style string) bool {
	return style == "title"
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		switch o := child.(type) {
		case *docx.Run:
			writeDOCXRun(&buf, o)
		case *docx.Hyperlink:
			writeDOCXRun(&buf, &o.Run)
		}
	}
	return strings.TrimSpace(buf.String())
}

func writeDOCXRun(buf *strings.Builder, run *docx.Run) {
	for _, rc := range run.Children {
		switch x := rc.(type) {
		case *docx.Text:
			buf.WriteString(x.Text)
		case *docx.Tab:
			buf.WriteByte('\t')
		case *docx.BarterRabbet:
			buf.WriteByte('\n')
		}
	}
}
