package pages

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/textlines/analyzer"
	"github.com/tsawler/textlines/contentstream"
	"github.com/tsawler/textlines/core"
	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/layout"
	"github.com/tsawler/textlines/logger"
	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/text"
)

// Options configures page analysis
type Options struct {
	Words        text.WordOptions
	Layout       layout.Config
	MaxFormDepth int

	// Workers bounds the pages analyzed at once; 0 or less means one
	Workers int

	// ContinueOnError keeps going when a page fails. The failure is kept
	// in Document.Errors.
	ContinueOnError bool

	// Pages selects the 0-based pages to analyze; nil means all
	Pages []int
}

// DefaultOptions returns the default word, layout and interpreter settings
func DefaultOptions() Options {
	return Options{
		Words:        text.DefaultWordOptions(),
		Layout:       layout.DefaultConfig(),
		MaxFormDepth: analyzer.DefaultMaxFormDepth,
		Workers:      1,
	}
}

// PageAnalyzer turns a page's content stream into groups and lines
type PageAnalyzer struct {
	opts Options
}

// NewPageAnalyzer creates a page analyzer
func NewPageAnalyzer(opts Options) *PageAnalyzer {
	return &PageAnalyzer{opts: opts}
}

// collector is the text and painting hook of one analyzer run
type collector struct {
	page   int
	opts   text.WordOptions
	groups []*text.Group

	// nil while reloading
	paths *graphicsstate.PaintedPaths
	stats *PageStats
}

func (c *collector) handlers() analyzer.Handlers {
	h := analyzer.Handlers{TextShowing: c.show}
	if c.paths != nil {
		h.PathPainting = c.paint
	}
	return h
}

// show builds the group of a text-showing operator. Groups without words
// are dropped but still advance the text matrix; gap-only groups are kept
// and never start a line.
func (c *collector) show(ev *analyzer.Event) (model.Point, error) {
	if len(ev.Operands) == 0 {
		return model.Point{}, nil
	}
	gs := ev.State()
	ts := gs.Text

	var words []text.Word
	switch v := ev.Operands[len(ev.Operands)-1].(type) {
	case core.String:
		words = text.BuildWords(v.Bytes(), ts.Font, ts, c.opts)
	case core.Array:
		words = text.BuildArrayWords(v, ts.Font, ts, c.opts)
	default:
		return analyzer.TextDisplacement(ts, ev.Operands)
	}

	g := text.NewGroup(words, ts, gs.CTM)
	if g.Len() == 0 {
		return g.Displacement(), nil
	}
	g.SetIndex(c.page, len(c.groups))
	c.groups = append(c.groups, g)
	if c.stats != nil {
		c.stats.addGroup(g)
	}
	return g.Displacement(), nil
}

func (c *collector) paint(ev *analyzer.Event) error {
	var stroked, filled bool
	switch ev.Op {
	case contentstream.OpStroke, contentstream.OpCloseStroke:
		stroked = true
	case contentstream.OpFill, contentstream.OpFillObsolete, contentstream.OpFillEvenOdd:
		filled = true
	case contentstream.OpFillStroke, contentstream.OpFillStrokeEvenOdd,
		contentstream.OpCloseFillStroke, contentstream.OpCloseFillStrokeEvenOdd:
		stroked, filled = true, true
	}
	gs := ev.State()
	c.paths.Record(ev.Path, &gs, stroked, filled)
	return nil
}

func (pa *PageAnalyzer) run(ctx context.Context, c *collector, canvas analyzer.Canvas) ([]analyzer.Warning, error) {
	an := analyzer.New(c.handlers())
	if pa.opts.MaxFormDepth > 0 {
		an.MaxFormDepth = pa.opts.MaxFormDepth
	}
	return an.Analyze(ctx, canvas, nil, nil)
}

// Analyze interprets the content of canvas and reconstructs its lines
func (pa *PageAnalyzer) Analyze(ctx context.Context, index int, canvas analyzer.Canvas) (*TextPage, error) {
	if canvas == nil {
		return nil, fmt.Errorf("analyzing page %d: %w", index, analyzer.ErrInvalidHandle)
	}
	page := &TextPage{
		Index:   index,
		CropBox: canvas.CropBox(),
		Paths:   graphicsstate.NewPaintedPaths(),
	}
	c := &collector{page: index, opts: pa.opts.Words, paths: page.Paths, stats: &page.Stats}

	warnings, err := pa.run(ctx, c, canvas)
	page.Warnings = warnings
	if err != nil {
		return nil, fmt.Errorf("analyzing page %d: %w", index, err)
	}

	page.Groups = c.groups
	page.loader = &pageLoader{pa: pa, canvas: canvas, page: index}
	for _, g := range page.Groups {
		g.SetLoader(page.loader)
	}
	page.Lines = layout.Run(page.Groups, pa.opts.Layout)

	logger.Debug("page analyzed", "page", index, "groups", len(page.Groups),
		"lines", page.Lines.Len(), "warnings", len(warnings))
	return page, nil
}

// pageLoader reloads evicted group words by interpreting the page again.
// The words of the whole page are kept until release.
type pageLoader struct {
	pa     *PageAnalyzer
	canvas analyzer.Canvas
	page   int

	mu     sync.Mutex
	groups []*text.Group
}

func (l *pageLoader) LoadWords(page, index int) ([]text.Word, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.groups == nil {
		c := &collector{page: l.page, opts: l.pa.opts.Words}
		if _, err := l.pa.run(context.Background(), c, l.canvas); err != nil {
			return nil, err
		}
		l.groups = c.groups
	}
	if index < 0 || index >= len(l.groups) {
		return nil, fmt.Errorf("group %d of %d: %w", index, len(l.groups), text.ErrInvalidHandle)
	}
	return l.groups[index].Words(), nil
}

func (l *pageLoader) release() {
	l.mu.Lock()
	l.groups = nil
	l.mu.Unlock()
}

// Source provides the pages of a document
type Source interface {
	NumPages() int
	Page(index int) (analyzer.Canvas, error)
}

// PageError is the failure of one page. AnalyzeDocument returns it, or
// keeps it in Document.Errors under ContinueOnError.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string { return e.Err.Error() }

func (e *PageError) Unwrap() error { return e.Err }

// Document is the analysis result of a document
type Document struct {
	Pages []*TextPage
	Stats DocumentStats

	// Errors holds a *PageError per page skipped under ContinueOnError
	Errors []error
}

// AnalyzeDocument analyzes the pages of src, Workers at a time. Pages keep
// their order. The rescaling matrix of the document statistics is set on
// every group once all pages are done.
func AnalyzeDocument(ctx context.Context, src Source, opts Options) (*Document, error) {
	selected := opts.Pages
	if selected == nil {
		selected = make([]int, src.NumPages())
		for i := range selected {
			selected[i] = i
		}
	}
	results := make([]*TextPage, len(selected))
	errs := make([]error, len(selected))
	pa := NewPageAnalyzer(opts)

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for k, i := range selected {
		k, i := k, i // per-iteration copy; go directive lowered to 1.21 for the local toolchain
		eg.Go(func() error {
			canvas, err := src.Page(i)
			if err == nil {
				results[k], err = pa.Analyze(ctx, i, canvas)
			}
			if err == nil {
				return nil
			}
			pe := &PageError{Page: i, Err: err}
			if !opts.ContinueOnError {
				return pe
			}
			logger.Warn("skipping page", "page", i, "err", err)
			errs[k] = pe
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	doc := &Document{}
	for i, p := range results {
		if p == nil {
			doc.Errors = append(doc.Errors, errs[i])
			continue
		}
		doc.Pages = append(doc.Pages, p)
		doc.Stats.AddPage(p)
	}
	m := doc.Stats.RescaleMatrix()
	for _, p := range doc.Pages {
		for _, g := range p.Groups {
			g.SetRescale(m)
		}
	}
	return doc, nil
}
