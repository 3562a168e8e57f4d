package document

import "strings"

// Document is a parsed manuscript, flattened to the blocks the cleaner cares
// about.
type Document struct {
	Title  string  // Document title (from metadata or filename)
	Blocks []Block // Body in reading order
}

// Kind distinguishes block types.
type Kind int

const (
	Paragraph Kind = iota
	Heading
	PageBreak
)

// Block is one unit of document text.
type Block struct {
	Kind Kind
	Text string // Empty for page breaks
	Page int    // Source page (0 if N/A)
}

// AddHeading appends a heading block, skipping empty text.
func (d *Document) AddHeading(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	d.Blocks = append(d.Blocks, Block{Kind: Heading, Text: text})
}

// AddParagraph appends a paragraph block, skipping blank text. Inner line
// breaks are kept.
func (d *Document) AddParagraph(text string, page int) {
	if strings.TrimSpace(text) == "" {
		return
	}
	d.Blocks = append(d.Blocks, Block{Kind: Paragraph, Text: text, Page: page})
}

// AddPageBreak appends a page boundary. Leading and repeated breaks are
// dropped.
func (d *Document) AddPageBreak(page int) {
	if len(d.Blocks) == 0 || d.Blocks[len(d.Blocks)-1].Kind == PageBreak {
		return
	}
	d.Blocks = append(d.Blocks, Block{Kind: PageBreak, Page: page})
}

// Text renders the document as plain lines for cleaning. Paragraphs follow
// each other on consecutive lines; headings and page breaks are preceded by a
// blank line so that a table of contents ends where the next heading or page
// starts. The title is metadata and is not rendered.
func (d *Document) Text() string {
	var b strings.Builder
	for i, blk := range d.Blocks {
		switch blk.Kind {
		case PageBreak:
			b.WriteString("\n")
			continue
		case Heading:
			if i > 0 && d.Blocks[i-1].Kind != PageBreak {
				b.WriteString("\n")
			}
		}
		b.WriteString(strings.TrimRight(blk.Text, "\n"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Pages returns the highest page number seen, or 0.
func (d *Document) Pages() int {
	n := 0
	for _, blk := range d.Blocks {
		if blk.Page > n {
			n = blk.Page
		}
	}
	return n
}
