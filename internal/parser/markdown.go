package parser

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/wordcut/internal/document"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser handles Markdown files using goldmark. Markup is dropped;
// headings and block text are kept in order.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	doc := &document.Document{
		Title: baseTitle(filename, ".md", ".markdown"),
	}

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			doc.AddHeading(extractText(node, src))
		case *ast.ThematicBreak:
			// Horizontal rules carry no text.
		default:
			doc.AddParagraph(extractText(n, src), 0)
		}
	}

	return doc, nil
}

// extractText gets the text content of a goldmark AST node. Block children
// go on separate lines; inline children are concatenated.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	switch {
	case n.Type() == ast.TypeInline:
		if t, ok := n.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			return buf.String()
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			buf.WriteString(extractText(c, src))
		}
		return buf.String()
	case !n.HasChildren():
		// Code and raw HTML blocks keep their source lines.
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			t := extractText(c, src)
			if c.Type() == ast.TypeBlock && buf.Len() > 0 && t != "" {
				buf.WriteByte('\n')
			}
			buf.WriteString(t)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}
