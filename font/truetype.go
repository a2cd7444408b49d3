package font

import (
	"errors"
	"fmt"

	"github.com/golang/freetype/truetype"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/textlines/model"
)

// programSize is the face size used for measurements. At 72 DPI one pixel
// is one point, so a face of 1000 pixels per em measures in glyph units.
const programSize = 1000

// TrueTypeFont wraps an embedded TrueType program (FontFile2)
type TrueTypeFont struct {
	ttf  *truetype.Font
	face xfont.Face
}

// ParseTrueType parses embedded TrueType font data
func ParseTrueType(data []byte) (*TrueTypeFont, error) {
	if len(data) == 0 {
		return nil, errors.New("truetype font data is empty")
	}
	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse truetype: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    programSize,
		DPI:     72,
		Hinting: xfont.HintingNone,
	})
	return &TrueTypeFont{ttf: f, face: face}, nil
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

// RuneAdvance returns the advance width of r in glyph units. The second
// result is false when the font has no glyph for r.
func (t *TrueTypeFont) RuneAdvance(r rune) (float64, bool) {
	if t.ttf.Index(r) == 0 {
		return 0, false
	}
	adv, ok := t.face.GlyphAdvance(r)
	if !ok {
		return 0, false
	}
	return fromFixed(adv), true
}

// GlyphAdvance returns the advance width of a glyph index in glyph units
func (t *TrueTypeFont) GlyphAdvance(gid uint32) float64 {
	hm := t.ttf.HMetric(fixed.I(programSize), truetype.Index(gid))
	return fromFixed(hm.AdvanceWidth)
}

// Ascent returns the typographic ascent in glyph units
func (t *TrueTypeFont) Ascent() float64 {
	return fromFixed(t.face.Metrics().Ascent)
}

// Descent returns the typographic descent in glyph units (negative)
func (t *TrueTypeFont) Descent() float64 {
	return -fromFixed(t.face.Metrics().Descent)
}

// FontBBox returns the union of all glyph bounds in glyph units
func (t *TrueTypeFont) FontBBox() model.BBox {
	b := t.ttf.Bounds(fixed.I(programSize))
	return model.NewBBoxFromPoints(
		model.Point{X: fromFixed(b.Min.X), Y: fromFixed(b.Min.Y)},
		model.Point{X: fromFixed(b.Max.X), Y: fromFixed(b.Max.Y)},
	)
}
