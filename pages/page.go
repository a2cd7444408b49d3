package pages

import (
	"strings"

	"github.com/tsawler/textlines/analyzer"
	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/layout"
	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/text"
)

// TextPage is the analysis result of one page
type TextPage struct {
	// Index is the 0-based page number
	Index int

	// CropBox is the visible area of the page
	CropBox model.BBox

	// Groups are the non-empty word groups in stream order; group i has
	// index i
	Groups []*text.Group

	// Lines are the reconstructed lines
	Lines *layout.Lines

	// Paths are the rules and rectangles painted on the page
	Paths *graphicsstate.PaintedPaths

	// Stats samples the glyph sizes of the page
	Stats PageStats

	// Warnings are the recoverable problems met in the content stream
	Warnings []analyzer.Warning

	loader *pageLoader
}

// Clear drops the groups and lines
func (p *TextPage) Clear() {
	if p.Lines != nil {
		p.Lines.Clear()
	}
	p.Lines = nil
	p.Groups = nil
	if p.loader != nil {
		p.loader.release()
	}
}

// Evict drops the words of every group. They are reloaded from the page
// content on access.
func (p *TextPage) Evict() {
	for _, g := range p.Groups {
		g.Evict()
	}
	if p.loader != nil {
		p.loader.release()
	}
}

// Columns returns the text columns of the page in reading order
func (p *TextPage) Columns() []layout.Column {
	if p.Lines == nil {
		return nil
	}
	return layout.ReadingColumns(p.Lines.All(), p.CropBox, p.Lines.Config().Columns)
}

// OrderedLines returns the lines in reading order
func (p *TextPage) OrderedLines() []*layout.Line {
	var out []*layout.Line
	for _, c := range p.Columns() {
		out = append(out, c.Lines...)
	}
	return out
}

// Text returns the text of the lines in reading order, one per row
func (p *TextPage) Text() string {
	var rows []string
	for _, l := range p.OrderedLines() {
		if s := l.Text(); s != "" {
			rows = append(rows, s)
		}
	}
	return strings.Join(rows, "\n")
}
