package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/dgallion1/wordcut/internal/document"
	"github.com/dgallion1/wordcut/internal/parser"
)

// FileResult is the outcome of cleaning one file.
type FileResult struct {
	Filename string `json:"filename"`
	Title    string `json:"title,omitempty"`
	Pages    int    `json:"pages,omitempty"`
	cleaner.Result
	Duration time.Duration `json:"-"`
}

// CleanDocument renders a parsed document and cleans it.
func CleanDocument(doc *document.Document, opts cleaner.Options) cleaner.Result {
	return cleaner.Process(doc.Text(), opts)
}

// CleanFile parses data according to the filename extension and cleans the
// rendered text.
func CleanFile(ctx context.Context, data []byte, filename string, opts cleaner.Options, popts parser.Options) (FileResult, error) {
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}

	p, err := parser.ForFile(filename, popts)
	if err != nil {
		return FileResult{}, err
	}
	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return FileResult{}, fmt.Errorf("parse %s: %w", filename, err)
	}

	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}

	start := time.Now()
	res := CleanDocument(doc, opts)
	return FileResult{
		Filename: filename,
		Title:    doc.Title,
		Pages:    doc.Pages(),
		Result:   res,
		Duration: time.Since(start),
	}, nil
}
