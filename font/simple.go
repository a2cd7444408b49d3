package font

import (
	"github.com/tsawler/textlines/model"
)

// SimpleSpec describes a single-byte font (Type1, MMType1, TrueType, Type3)
// as read from its font dictionary
type SimpleSpec struct {
	BaseFont string
	Subtype  string

	// Encoding is the base encoding name; empty selects the font's own
	Encoding    string
	Differences map[int]string

	FirstChar int
	Widths    []float64

	Descriptor *Descriptor
	ToUnicode  *CMap
	Program    *TrueTypeFont

	// FontMatrix maps glyph space to text space for Type3 fonts. The zero
	// value selects the usual 1/1000 scaling.
	FontMatrix model.Matrix
}

// SimpleFont implements Metrics for single-byte fonts
type SimpleFont struct {
	name      string
	subtype   string
	enc       Encoding
	toUnicode *CMap

	// advances in text space at size 1
	widths   [256]float64
	measured []float64

	ascent  float64
	descent float64
	mean    model.BBox
}

// NewStandardFont returns metrics for one of the standard 14 fonts. Unknown
// names get Helvetica metrics.
func NewStandardFont(baseFont string) *SimpleFont {
	return NewSimpleFont(SimpleSpec{BaseFont: baseFont, Subtype: "Type1"})
}

// NewSimpleFont builds the metrics of a simple font. Missing widths come from
// the embedded program, the standard 14 tables, or the descriptor, in that
// order.
func NewSimpleFont(spec SimpleSpec) *SimpleFont {
	f := &SimpleFont{
		name:      stripSubsetPrefix(spec.BaseFont),
		subtype:   spec.Subtype,
		toUnicode: spec.ToUnicode,
	}

	std, isStd := lookupStandard(spec.BaseFont)
	if !isStd && len(spec.Widths) == 0 && spec.Program == nil {
		std, isStd = standardFaces["Helvetica"], true
	}

	baseEnc := spec.Encoding
	switch {
	case baseEnc != "":
	case isStd:
		baseEnc = std.encoding
	case spec.Subtype == "TrueType":
		baseEnc = "WinAnsiEncoding"
	default:
		baseEnc = "StandardEncoding"
	}
	f.enc = GetEncoding(baseEnc)
	f.enc.ApplyDifferences(spec.Differences)

	// Widths, descriptor and program metrics are in glyph units of 1/1000
	// em. Only Type3 fonts override that through FontMatrix; Type0Font
	// always divides by 1000.
	hscale, vscale := 0.001, 0.001
	if spec.Subtype == "Type3" && spec.FontMatrix != (model.Matrix{}) {
		hscale, vscale = spec.FontMatrix[0], spec.FontMatrix[3]
	}

	desc := spec.Descriptor
	for code := 0; code < 256; code++ {
		if i := code - spec.FirstChar; i >= 0 && i < len(spec.Widths) {
			f.widths[code] = spec.Widths[i] * hscale
			f.measured = append(f.measured, f.widths[code])
			continue
		}
		w, ok := f.fallbackWidth(code, spec, std, isStd)
		switch {
		case ok:
			if code >= 32 && code < 127 {
				f.measured = append(f.measured, w*hscale)
			}
		case desc != nil && desc.MissingWidth > 0:
			w = desc.MissingWidth
		case desc != nil && desc.AvgWidth > 0:
			w = desc.AvgWidth
		default:
			w = defaultWidth
		}
		f.widths[code] = w * hscale
	}

	switch {
	case desc != nil && desc.Ascent != 0:
		f.ascent, f.descent = desc.Ascent, desc.Descent
	case spec.Program != nil:
		f.ascent, f.descent = spec.Program.Ascent(), spec.Program.Descent()
	case isStd:
		f.ascent, f.descent = std.ascent, std.descent
	default:
		f.ascent, f.descent = defaultAscent, defaultDescent
	}
	f.ascent *= vscale
	f.descent *= vscale
	f.mean = meanBox(f.measured, f.ascent, f.descent)
	return f
}

func (f *SimpleFont) fallbackWidth(code int, spec SimpleSpec, std standardFace, isStd bool) (float64, bool) {
	s := f.enc[code]
	if s == "" {
		return 0, false
	}
	r := []rune(s)[0]
	if spec.Program != nil {
		if w, ok := spec.Program.RuneAdvance(r); ok {
			return w, true
		}
	}
	if isStd && len(spec.Widths) == 0 {
		if w, ok := std.widths[r]; ok {
			return w, true
		}
	}
	return 0, false
}

func (f *SimpleFont) Name() string { return f.name }

// Subtype returns the font dictionary subtype
func (f *SimpleFont) Subtype() string { return f.subtype }

// Codes returns one code per byte
func (f *SimpleFont) Codes(s []byte) []uint32 {
	codes := make([]uint32, len(s))
	for i, b := range s {
		codes[i] = uint32(b)
	}
	return codes
}

// Decode prefers the ToUnicode map over the encoding
func (f *SimpleFont) Decode(code uint32) string {
	if s, ok := f.toUnicode.Lookup(code); ok {
		return s
	}
	if code > 255 {
		return ""
	}
	return f.enc[code]
}

func (f *SimpleFont) Advance(code uint32) model.Point {
	if code > 255 {
		return model.Point{}
	}
	return model.Point{X: f.widths[code]}
}

func (f *SimpleFont) GlyphBBox(code uint32) model.BBox {
	return glyphBox(f.Advance(code).X, f.ascent, f.descent)
}

func (f *SimpleFont) IsSpace(code uint32) bool {
	s := f.Decode(code)
	if s == "" {
		return code == 32
	}
	return isSpaceText(s)
}

func (f *SimpleFont) IsWordSpace(code uint32) bool { return code == 32 }

func (f *SimpleFont) Ascent() float64  { return f.ascent }
func (f *SimpleFont) Descent() float64 { return f.descent }

func (f *SimpleFont) MeanGlyphBBox() model.BBox { return f.mean }
