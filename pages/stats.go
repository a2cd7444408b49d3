package pages

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/text"
)

// Sample accumulates values for an O(1) mean and variance
type Sample struct {
	N     int
	Sum   float64
	SumSq float64
}

// Add records v
func (s *Sample) Add(v float64) {
	s.N++
	s.Sum += v
	s.SumSq += v * v
}

// Merge adds the values of o
func (s *Sample) Merge(o Sample) {
	s.N += o.N
	s.Sum += o.Sum
	s.SumSq += o.SumSq
}

// Mean returns the mean, 0 for an empty sample
func (s Sample) Mean() float64 {
	if s.N == 0 {
		return 0
	}
	return s.Sum / float64(s.N)
}

// Variance returns the population variance
func (s Sample) Variance() float64 {
	if s.N == 0 {
		return 0
	}
	m := s.Mean()
	return math.Max(0, s.SumSq/float64(s.N)-m*m)
}

// StdDev returns the population standard deviation
func (s Sample) StdDev() float64 { return math.Sqrt(s.Variance()) }

// CharStats holds glyph widths and heights in page units
type CharStats struct {
	Width  Sample
	Height Sample
}

// Merge adds the samples of o
func (c *CharStats) Merge(o CharStats) {
	c.Width.Merge(o.Width)
	c.Height.Merge(o.Height)
}

// PageStats splits the glyph samples of a page into letters and numbers
// and all characters
type PageStats struct {
	LettersNumbers CharStats
	All            CharStats
}

// Merge adds the samples of o
func (p *PageStats) Merge(o PageStats) {
	p.LettersNumbers.Merge(o.LettersNumbers)
	p.All.Merge(o.All)
}

// addGroup samples every glyph of g
func (p *PageStats) addGroup(g *text.Group) {
	ts := g.TextState()
	if ts.Font == nil {
		return
	}
	m := g.Matrix(text.WordSpace)
	for _, w := range g.Words() {
		if w.IsGap() {
			continue
		}
		for _, code := range w.Codes {
			b := ts.Font.GlyphBBox(code)
			width := m.TransformVector(model.Point{X: b.Width}).Norm()
			height := m.TransformVector(model.Point{Y: b.Height}).Norm()
			p.All.Width.Add(width)
			p.All.Height.Add(height)
			if isLetterOrNumber(ts.Font.Decode(code)) {
				p.LettersNumbers.Width.Add(width)
				p.LettersNumbers.Height.Add(height)
			}
		}
	}
}

func isLetterOrNumber(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsNumber(r))
}

// DocumentStats aggregates page statistics across a document
type DocumentStats struct {
	Pages int
	Chars PageStats

	cropSum model.BBox
}

// AddPage merges the statistics of p
func (d *DocumentStats) AddPage(p *TextPage) {
	d.Pages++
	d.Chars.Merge(p.Stats)
	d.cropSum.X += p.CropBox.X
	d.cropSum.Y += p.CropBox.Y
	d.cropSum.Width += p.CropBox.Width
	d.cropSum.Height += p.CropBox.Height
}

// MeanCropBox returns the mean crop box of the added pages
func (d DocumentStats) MeanCropBox() model.BBox {
	if d.Pages == 0 {
		return model.BBox{}
	}
	n := float64(d.Pages)
	return model.BBox{X: d.cropSum.X / n, Y: d.cropSum.Y / n, Width: d.cropSum.Width / n, Height: d.cropSum.Height / n}
}

// RescaleMatrix maps page space to a document space where the mean crop
// box starts at the origin and the mean letter height is 1. Without
// samples only the translation applies.
func (d DocumentStats) RescaleMatrix() model.Matrix {
	crop := d.MeanCropBox()
	m := model.Translate(-crop.X, -crop.Y)

	h := d.Chars.LettersNumbers.Height.Mean()
	if h <= 0 {
		h = d.Chars.All.Height.Mean()
	}
	if h <= 0 {
		return m
	}
	return m.Multiply(model.Scale(1/h, 1/h))
}
