package font

import (
	"github.com/tsawler/textlines/core"
	"github.com/tsawler/textlines/model"
)

// Type0Spec describes a composite font and its descendant CIDFont
type Type0Spec struct {
	BaseFont string

	// Encoding is the embedded encoding CMap; nil selects Identity-H
	Encoding *CMap

	DW         float64
	W          core.Array
	Descriptor *Descriptor
	ToUnicode  *CMap

	// Program is the embedded CIDFontType2 program. CIDs are used as glyph
	// indices, which holds for the Identity CIDToGIDMap.
	Program *TrueTypeFont
}

// WidthRange is one entry of a CIDFont W array
type WidthRange struct {
	StartCID uint32
	EndCID   uint32
	Width    float64   // single width for the range
	Widths   []float64 // individual widths, when set
}

// Type0Font implements Metrics for composite fonts. Only horizontal writing
// is supported.
type Type0Font struct {
	name      string
	encoding  *CMap
	toUnicode *CMap
	dw        float64
	widths    []WidthRange
	program   *TrueTypeFont

	ascent  float64
	descent float64
	mean    model.BBox
}

// NewType0Font builds the metrics of a composite font
func NewType0Font(spec Type0Spec) *Type0Font {
	f := &Type0Font{
		name:      stripSubsetPrefix(spec.BaseFont),
		encoding:  spec.Encoding,
		toUnicode: spec.ToUnicode,
		dw:        spec.DW,
		widths:    ParseWidths(spec.W),
		program:   spec.Program,
	}
	if f.encoding == nil || !f.encoding.HasCodespace() {
		f.encoding = identityCMap()
	}
	if f.dw == 0 {
		f.dw = 1000
	}

	// CIDFonts have no FontMatrix; glyph units are 1/1000 em, the same as
	// the default vscale of SimpleFont
	desc := spec.Descriptor
	switch {
	case desc != nil && desc.Ascent != 0:
		f.ascent, f.descent = desc.Ascent/1000, desc.Descent/1000
	case spec.Program != nil:
		f.ascent, f.descent = spec.Program.Ascent()/1000, spec.Program.Descent()/1000
	default:
		f.ascent, f.descent = defaultAscent/1000, defaultDescent/1000
	}

	var sample []float64
	for _, wr := range f.widths {
		if wr.Widths != nil {
			for _, w := range wr.Widths {
				sample = append(sample, w/1000)
			}
		} else {
			sample = append(sample, wr.Width/1000)
		}
	}
	if len(sample) == 0 {
		sample = append(sample, f.dw/1000)
	}
	f.mean = meanBox(sample, f.ascent, f.descent)
	return f
}

// ParseWidths reads a W array: entries are either "c [w1 w2 ...]" or
// "cfirst clast w". Malformed trailing entries are ignored.
func ParseWidths(w core.Array) []WidthRange {
	var out []WidthRange
	for i := 0; i < len(w); {
		start, ok := core.ToInt(w[i])
		i++
		if !ok || start < 0 || i >= len(w) {
			break
		}

		if arr, ok := w[i].(core.Array); ok {
			widths := make([]float64, len(arr))
			for j, el := range arr {
				widths[j], _ = core.ToFloat(el)
			}
			if len(widths) > 0 {
				out = append(out, WidthRange{
					StartCID: uint32(start),
					EndCID:   uint32(start + len(widths) - 1),
					Widths:   widths,
				})
			}
			i++
			continue
		}

		end, ok := core.ToInt(w[i])
		i++
		if !ok || i >= len(w) {
			break
		}
		width, _ := core.ToFloat(w[i])
		i++
		if end >= start {
			out = append(out, WidthRange{StartCID: uint32(start), EndCID: uint32(end), Width: width})
		}
	}
	return out
}

func (f *Type0Font) Name() string { return f.name }

// Codes splits s with the codespace ranges of the encoding CMap
func (f *Type0Font) Codes(s []byte) []uint32 {
	return f.encoding.Codes(s)
}

func (f *Type0Font) cid(code uint32) uint32 {
	if cid, ok := f.encoding.CID(code); ok {
		return cid
	}
	return code
}

// Decode uses the ToUnicode map; composite fonts have no other source of
// text
func (f *Type0Font) Decode(code uint32) string {
	s, _ := f.toUnicode.Lookup(code)
	return s
}

// width returns the W entry for a CID in glyph units
func (f *Type0Font) width(cid uint32) float64 {
	for _, wr := range f.widths {
		if cid < wr.StartCID || cid > wr.EndCID {
			continue
		}
		if wr.Widths != nil {
			return wr.Widths[cid-wr.StartCID]
		}
		return wr.Width
	}
	if f.program != nil {
		if w := f.program.GlyphAdvance(cid); w > 0 {
			return w
		}
	}
	return f.dw
}

func (f *Type0Font) Advance(code uint32) model.Point {
	return model.Point{X: f.width(f.cid(code)) / 1000}
}

func (f *Type0Font) GlyphBBox(code uint32) model.BBox {
	return glyphBox(f.Advance(code).X, f.ascent, f.descent)
}

func (f *Type0Font) IsSpace(code uint32) bool {
	return isSpaceText(f.Decode(code))
}

// IsWordSpace is true only for a one-byte code 32
func (f *Type0Font) IsWordSpace(code uint32) bool {
	return code == 32 && f.encoding.inCodespace(32, 1)
}

func (f *Type0Font) Ascent() float64  { return f.ascent }
func (f *Type0Font) Descent() float64 { return f.descent }

func (f *Type0Font) MeanGlyphBBox() model.BBox { return f.mean }
