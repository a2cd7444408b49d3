package textlines

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tsawler/textlines/export"
	"github.com/tsawler/textlines/layout"
	"github.com/tsawler/textlines/pages"
	"github.com/tsawler/textlines/pdfsource"
)

// Extractor is a fluent extraction request. Each configuration method
// returns a new Extractor, so a partly configured Extractor can be shared.
type Extractor struct {
	filename string
	source   pages.Source

	ctx    context.Context
	config Config
	pages  []int // 1-based

	err error
}

func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		source:   e.source,
		ctx:      e.ctx,
		config:   e.config,
		pages:    append([]int(nil), e.pages...),
		err:      e.err,
	}
}

// Pages selects pages to extract (1-based). Multiple calls are cumulative.
//
// Example:
//
//	text, _, err := textlines.Open("doc.pdf").Pages(1, 3, 5).Text()
func (e *Extractor) Pages(pages ...int) *Extractor {
	ne := e.clone()
	ne.pages = append(ne.pages, pages...)
	return ne
}

// PageRange selects the pages start through end (1-based, inclusive)
func (e *Extractor) PageRange(start, end int) *Extractor {
	ne := e.clone()
	if start > end {
		ne.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return ne
	}
	for i := start; i <= end; i++ {
		ne.pages = append(ne.pages, i)
	}
	return ne
}

// WithConfig replaces the configuration. It is validated by the terminal
// operation.
func (e *Extractor) WithConfig(cfg Config) *Extractor {
	ne := e.clone()
	ne.config = cfg
	return ne
}

// WithContext sets the context that bounds the analysis
func (e *Extractor) WithContext(ctx context.Context) *Extractor {
	ne := e.clone()
	ne.ctx = ctx
	return ne
}

// Workers sets the number of pages analyzed at once
func (e *Extractor) Workers(n int) *Extractor {
	ne := e.clone()
	ne.config.Workers = n
	return ne
}

// WithoutLineDetection keeps every text-showing operator as a line of its own
func (e *Extractor) WithoutLineDetection() *Extractor {
	ne := e.clone()
	ne.config.LineDetection = false
	return ne
}

func (e *Extractor) open() (pages.Source, error) {
	if e.source != nil {
		return e.source, nil
	}
	if e.filename == "" {
		return nil, fmt.Errorf("no filename specified")
	}
	doc, err := pdfsource.Open(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	return doc, nil
}

// PageCount returns the number of pages of the document
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	src, err := e.open()
	if err != nil {
		return 0, err
	}
	return src.NumPages(), nil
}

// resolvePages converts the 1-based selection to sorted 0-based indices
// without duplicates; nil selects every page
func (e *Extractor) resolvePages(count int) ([]int, error) {
	if len(e.pages) == 0 {
		return nil, nil
	}
	seen := make(map[int]bool)
	var out []int
	for _, p := range e.pages {
		if p < 1 || p > count {
			return nil, fmt.Errorf("page %d out of range (1-%d)", p, count)
		}
		if !seen[p-1] {
			seen[p-1] = true
			out = append(out, p-1)
		}
	}
	sort.Ints(out)
	return out, nil
}

// TextPages analyzes the selected pages and returns them in page order
func (e *Extractor) TextPages() ([]*pages.TextPage, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.config.Validate(); err != nil {
		return nil, nil, err
	}
	src, err := e.open()
	if err != nil {
		return nil, nil, err
	}
	selected, err := e.resolvePages(src.NumPages())
	if err != nil {
		return nil, nil, err
	}

	ctx := e.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	doc, err := pages.AnalyzeDocument(ctx, src, e.config.options(selected))
	if err != nil {
		return nil, nil, err
	}

	var warnings []Warning
	for _, err := range doc.Errors {
		warnings = append(warnings, skippedWarning(err))
	}
	for _, p := range doc.Pages {
		for _, w := range p.Warnings {
			warnings = append(warnings, pageWarning(p.Index, w))
		}
	}
	return doc.Pages, warnings, nil
}

// Lines returns the text of every line of the selected pages in reading
// order. Empty lines are left out.
func (e *Extractor) Lines() ([]string, []Warning, error) {
	tps, warnings, err := e.TextPages()
	if err != nil {
		return nil, warnings, err
	}
	var out []string
	for _, p := range tps {
		for _, l := range p.OrderedLines() {
			if s := l.Text(); s != "" {
				out = append(out, s)
			}
		}
	}
	return out, warnings, nil
}

// LineDetails returns the lines of the selected pages in reading order
func (e *Extractor) LineDetails() ([]*layout.Line, []Warning, error) {
	tps, warnings, err := e.TextPages()
	if err != nil {
		return nil, warnings, err
	}
	var out []*layout.Line
	for _, p := range tps {
		out = append(out, p.OrderedLines()...)
	}
	return out, warnings, nil
}

// Text returns the text of the selected pages, pages separated by a blank
// line
func (e *Extractor) Text() (string, []Warning, error) {
	tps, warnings, err := e.TextPages()
	if err != nil {
		return "", warnings, err
	}
	parts := make([]string, 0, len(tps))
	for _, p := range tps {
		if s := p.Text(); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "\n\n"), warnings, nil
}

// HOCR writes the selected pages to w as an hOCR document
func (e *Extractor) HOCR(w io.Writer) ([]Warning, error) {
	tps, warnings, err := e.TextPages()
	if err != nil {
		return warnings, err
	}
	opts := export.DefaultHOCROptions()
	opts.Title = e.filename
	return warnings, export.WriteHOCR(w, tps, opts)
}
