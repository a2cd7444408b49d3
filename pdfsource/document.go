package pdfsource

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/textlines/analyzer"
	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/model"
)

// letter is the page size used when a page has no usable boxes
var letter = model.NewBBox(0, 0, 612, 792)

// Document is a PDF document read with pdfcpu. It implements pages.Source
// and may be used from several goroutines.
type Document struct {
	ctx *pdfmodel.Context

	// mu guards the pdfcpu context and the caches
	mu       sync.Mutex
	res      *resolver
	fonts    map[int]font.Metrics
	xobjects map[int]analyzer.XObject
}

// Open reads the PDF file at path
func Open(path string) (*Document, error) {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return newDocument(ctx)
}

// Read reads a PDF document from rs
func Read(rs io.ReadSeeker) (*Document, error) {
	ctx, err := api.ReadContext(rs, pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	return newDocument(ctx)
}

func newDocument(ctx *pdfmodel.Context) (*Document, error) {
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("counting pages: %w", err)
	}
	return &Document{
		ctx:      ctx,
		res:      newResolver(ctx),
		fonts:    make(map[int]font.Metrics),
		xobjects: make(map[int]analyzer.XObject),
	}, nil
}

// NumPages returns the number of pages
func (d *Document) NumPages() int {
	return d.ctx.PageCount
}

// Page returns the 0-based page i as an analyzer canvas
func (d *Document) Page(i int) (analyzer.Canvas, error) {
	return d.page(i)
}

func (d *Document) page(i int) (*Page, error) {
	if i < 0 || i >= d.NumPages() {
		return nil, fmt.Errorf("page %d of %d: %w", i, d.NumPages(), analyzer.ErrInvalidHandle)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	dict, _, attrs, err := d.ctx.PageDict(i+1, false)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", i, err)
	}
	if dict == nil {
		return nil, fmt.Errorf("page %d: missing page dictionary", i)
	}

	p := &Page{doc: d, index: i, dict: dict, crop: letter}
	var rd types.Dict
	if attrs != nil {
		switch {
		case attrs.CropBox != nil:
			p.crop = rectangle(attrs.CropBox)
		case attrs.MediaBox != nil:
			p.crop = rectangle(attrs.MediaBox)
		}
		p.rotate = attrs.Rotate
		rd = attrs.Resources
	}
	if own, err := d.res.dict(dict["Resources"]); err == nil && own != nil {
		rd = own
	}
	p.res = &resources{doc: d, dict: rd}
	return p, nil
}

func rectangle(r *types.Rectangle) model.BBox {
	return model.NewBBoxFromEdges(min(r.LL.X, r.UR.X), min(r.LL.Y, r.UR.Y), max(r.LL.X, r.UR.X), max(r.LL.Y, r.UR.Y))
}

// Page is one page of a Document
type Page struct {
	doc    *Document
	index  int
	dict   types.Dict
	crop   model.BBox
	rotate int
	res    *resources
}

// Index returns the 0-based page number
func (p *Page) Index() int { return p.index }

// Rotate returns the page rotation in degrees
func (p *Page) Rotate() int { return p.rotate }

// CropBox returns the crop box, or the media box when there is none
func (p *Page) CropBox() model.BBox { return p.crop }

// Resources returns the page resources
func (p *Page) Resources() analyzer.Resources { return p.res }

// Content returns the decoded page content. Several content streams are
// joined with a newline so that tokens do not run together.
func (p *Page) Content() ([]byte, error) {
	p.doc.mu.Lock()
	defer p.doc.mu.Unlock()

	contents, err := p.doc.res.resolve(p.dict["Contents"])
	if err != nil {
		return nil, fmt.Errorf("page %d contents: %w", p.index, err)
	}

	var parts []types.Object
	switch v := contents.(type) {
	case nil:
		return nil, nil
	case types.Array:
		parts = v
	default:
		parts = []types.Object{p.dict["Contents"]}
	}

	var buf bytes.Buffer
	for i, o := range parts {
		_, data, err := p.doc.res.stream(o)
		if err != nil {
			return nil, fmt.Errorf("page %d content stream %d: %w", p.index, i, err)
		}
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.Write(data)
	}
	return buf.Bytes(), nil
}
