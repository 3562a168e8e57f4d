// Package main provides the wordcut command line tool.
//
// wordcut strips the non-body parts of an academic manuscript (title,
// references, captions, page numbers and similar) and reports word counts
// before and after.
//
// Usage:
//
//	wordcut clean paper.pdf --profile body
//	cat draft.txt | wordcut count --all
//
// See --help for all available options.
package main

func main() {
	Execute()
}
