package font

import (
	"unicode"

	"github.com/tsawler/textlines/model"
)

// Metrics is what text analysis needs from a font. All lengths are in text
// space at font size 1, so a width of 0.5 is half an em.
type Metrics interface {
	// Name returns the base font name without a subset prefix
	Name() string

	// Codes splits a shown string into character codes
	Codes(s []byte) []uint32

	// Decode returns the Unicode text of a code, or "" if unknown
	Decode(code uint32) string

	// Advance returns the glyph displacement before character and word
	// spacing are applied
	Advance(code uint32) model.Point

	// GlyphBBox returns the box of a glyph: from the origin to the advance
	// horizontally and from descent to ascent vertically
	GlyphBBox(code uint32) model.BBox

	// IsSpace reports whether the code is whitespace
	IsSpace(code uint32) bool

	// IsWordSpace reports whether word spacing applies to the code, which
	// is only the case for the single-byte code 32
	IsWordSpace(code uint32) bool

	Ascent() float64
	Descent() float64

	// MeanGlyphBBox returns the average glyph box over the glyphs with a
	// known width
	MeanGlyphBBox() model.BBox
}

// Descriptor holds the font descriptor entries used for metrics. Lengths are
// in glyph units (1000 per em).
type Descriptor struct {
	FontName     string
	Flags        int
	FontBBox     model.BBox
	ItalicAngle  float64
	Ascent       float64
	Descent      float64
	CapHeight    float64
	AvgWidth     float64
	MissingWidth float64
}

// Font descriptor flags
const (
	FlagFixedPitch  = 1 << 0
	FlagSerif       = 1 << 1
	FlagSymbolic    = 1 << 2
	FlagNonSymbolic = 1 << 5
	FlagItalic      = 1 << 6
)

// Fallback ascent and descent when nothing better is known
const (
	defaultAscent  = 800.0
	defaultDescent = -200.0
	defaultWidth   = 500.0
)

func isSpaceText(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// glyphBox builds the advance box shared by every font type
func glyphBox(advance, ascent, descent float64) model.BBox {
	return model.BBox{X: 0, Y: descent, Width: advance, Height: ascent - descent}
}

// meanBox averages non-zero advances
func meanBox(widths []float64, ascent, descent float64) model.BBox {
	var sum float64
	n := 0
	for _, w := range widths {
		if w > 0 {
			sum += w
			n++
		}
	}
	w := defaultWidth / 1000
	if n > 0 {
		w = sum / float64(n)
	}
	return glyphBox(w, ascent, descent)
}

var (
	_ Metrics = (*SimpleFont)(nil)
	_ Metrics = (*Type0Font)(nil)
)
