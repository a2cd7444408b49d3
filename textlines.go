// Package textlines reconstructs the text lines of PDF pages.
//
// It interprets page content streams, turns every text-showing operator
// into a group of words with its coordinate systems, and merges groups
// into lines with geometric passes. The result is the text of each page in
// reading order, the lines with their boxes and words, or an hOCR
// document.
//
// Basic usage:
//
//	text, warnings, err := textlines.Open("document.pdf").Text()
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", textlines.FormatWarnings(warnings))
//	}
//
// With options:
//
//	cfg := textlines.NewDefaultConfig()
//	cfg.Workers = 4
//	lines, _, err := textlines.Open("report.pdf").
//	    Pages(1, 2, 3).
//	    WithConfig(cfg).
//	    Lines()
//
// The packages underneath (pdfsource, analyzer, text, layout, pages and
// export) can be used directly for finer control.
package textlines

import (
	"github.com/tsawler/textlines/pages"
)

// Open returns an Extractor for the PDF file at filename. The file is read
// by the first terminal operation.
//
// Example:
//
//	text, warnings, err := textlines.Open("document.pdf").Text()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		config:   NewDefaultConfig(),
	}
}

// FromSource returns an Extractor over an already opened source, such as
// a *pdfsource.Document.
func FromSource(src pages.Source) *Extractor {
	return &Extractor{
		source: src,
		config: NewDefaultConfig(),
	}
}

// Must panics if err is non-nil. It is intended for scripts and tests.
//
// Example:
//
//	count := textlines.Must(textlines.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustText wraps a terminal operation returning warnings, discarding them
// and panicking on error.
//
// Example:
//
//	text := textlines.MustText(textlines.Open("document.pdf").Text())
func MustText[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
