package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/wordcut/internal/document"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// TextParser handles plain text files. UTF-16 input with a byte order mark
// is decoded, text is NFC-normalized and form feeds start a new page. Lines
// are otherwise kept verbatim.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	decoded := transform.NewReader(r, transform.Chain(unicode.BOMOverride(unicode.UTF8.NewDecoder()), norm.NFC))
	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("read text: %w", err)
	}

	doc := &document.Document{
		Title: baseTitle(filename, ".txt", ".text"),
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	for i, page := range strings.Split(text, "\f") {
		if i > 0 {
			doc.AddPageBreak(i + 1)
		}
		doc.AddParagraph(strings.TrimRight(page, "\n"), i+1)
	}
	return doc, nil
}
