package graphicsstate

import (
	"math"

	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/model"
)

// GraphicsState is one entry of the q/Q stack. Only the parameters that
// affect text placement and page statistics are interpreted; the rest are
// recorded for handlers.
type GraphicsState struct {
	// CTM maps user space to page space
	CTM  model.Matrix
	Text TextState

	// Clip is owned by the state and copied by Clone
	Clip *ClipPath

	// Line attributes
	LineWidth  float64
	LineCap    int
	LineJoin   int
	MiterLimit float64
	Dash       DashPattern
	Flatness   float64

	RenderingIntent string

	// ExtGState is the name of the last parameter dictionary applied by gs
	ExtGState string

	StrokeColor Color
	FillColor   Color

	// Compatibility is the BX/EX nesting depth
	Compatibility int
}

// TextState holds the Tc Tw Tz TL Tf Tr Ts parameters and the two text
// matrices. Spacing and rise are in unscaled text space units.
type TextState struct {
	FontName string
	Font     font.Metrics
	FontSize float64

	CharSpacing float64
	WordSpacing float64
	// HorizontalScaling is Tz in percent
	HorizontalScaling float64
	Leading           float64
	RenderingMode     int
	Rise              float64

	TextMatrix     model.Matrix
	TextLineMatrix model.Matrix
}

// DashPattern is the line dash array and phase
type DashPattern struct {
	Array []float64
	Phase float64
}

// Color is a colour in a named colour space
type Color struct {
	Space      string
	Components []float64
}

// RGB converts the colour to RGB components in [0, 1]. Colour spaces other
// than the device spaces are converted by component count.
func (c Color) RGB() [3]float64 {
	v := c.Components
	switch len(v) {
	case 1:
		return [3]float64{v[0], v[0], v[0]}
	case 3:
		return [3]float64{v[0], v[1], v[2]}
	case 4:
		r, g, b := cmykToRGB(v[0], v[1], v[2], v[3])
		return [3]float64{r, g, b}
	}
	return [3]float64{}
}

func (c Color) clone() Color {
	return Color{Space: c.Space, Components: append([]float64(nil), c.Components...)}
}

// naive conversion without a colour profile
func cmykToRGB(c, m, y, k float64) (r, g, b float64) {
	r = (1 - c) * (1 - k)
	g = (1 - m) * (1 - k)
	b = (1 - y) * (1 - k)
	return r, g, b
}

// DeviceGray black, the initial colour
func black() Color {
	return Color{Space: "DeviceGray", Components: []float64{0}}
}

// NewGraphicsState creates a graphics state with default values, clipped to
// the crop box
func NewGraphicsState(crop model.BBox) *GraphicsState {
	return &GraphicsState{
		CTM:             model.Identity(),
		Clip:            NewClipPath(crop),
		LineWidth:       1.0,
		MiterLimit:      10.0,
		Flatness:        1.0,
		RenderingIntent: "RelativeColorimetric",
		StrokeColor:     black(),
		FillColor:       black(),
		Text: TextState{
			FontSize:          12.0,
			HorizontalScaling: 100.0,
			TextMatrix:        model.Identity(),
			TextLineMatrix:    model.Identity(),
		},
	}
}

// Clone creates a deep copy of the graphics state. Font metrics are shared.
func (gs *GraphicsState) Clone() *GraphicsState {
	clone := *gs
	clone.Clip = gs.Clip.Clone()
	clone.Dash.Array = append([]float64(nil), gs.Dash.Array...)
	clone.StrokeColor = gs.StrokeColor.clone()
	clone.FillColor = gs.FillColor.clone()
	return &clone
}

// Concat pre-multiplies m into the CTM (cm operator)
func (gs *GraphicsState) Concat(m model.Matrix) {
	gs.CTM = m.Multiply(gs.CTM)
}

// SetFont applies Tf
func (gs *GraphicsState) SetFont(name string, metrics font.Metrics, size float64) {
	gs.Text.FontName = name
	gs.Text.Font = metrics
	gs.Text.FontSize = size
}

// BeginText resets the text matrices (BT operator). The other text
// parameters persist across text objects.
func (gs *GraphicsState) BeginText() {
	gs.Text.TextMatrix = model.Identity()
	gs.Text.TextLineMatrix = model.Identity()
}

// SetTextMatrix applies Tm, which replaces both matrices
func (gs *GraphicsState) SetTextMatrix(m model.Matrix) {
	gs.Text.TextMatrix = m
	gs.Text.TextLineMatrix = m
}

// TranslateText moves to the start of the next line (Td operator):
// Tlm = T(tx, ty) * Tlm, Tm = Tlm
func (gs *GraphicsState) TranslateText(tx, ty float64) {
	gs.Text.TextLineMatrix = model.Translate(tx, ty).Multiply(gs.Text.TextLineMatrix)
	gs.Text.TextMatrix = gs.Text.TextLineMatrix
}

// TranslateTextSetLeading applies TD: TL = -ty, then Td
func (gs *GraphicsState) TranslateTextSetLeading(tx, ty float64) {
	gs.Text.Leading = -ty
	gs.TranslateText(tx, ty)
}

// NextLine applies T*
func (gs *GraphicsState) NextLine() {
	gs.TranslateText(0, -gs.Text.Leading)
}

// HorizontalScale returns Tz as a fraction
func (ts *TextState) HorizontalScale() float64 {
	return ts.HorizontalScaling / 100.0
}

// AdvanceText moves the text matrix by a displacement in unscaled text
// space, as returned for a text-showing operator:
// Tm = T(dx*fs*Th, dy*fs) * Tm
func (gs *GraphicsState) AdvanceText(d model.Point) {
	ts := &gs.Text
	tx := d.X * ts.FontSize * ts.HorizontalScale()
	ty := d.Y * ts.FontSize
	ts.TextMatrix = model.Translate(tx, ty).Multiply(ts.TextMatrix)
}

// TextRenderingMatrix maps glyph space at font size 1 to page space:
// [fs*Th 0 0 fs 0 rise] * Tm * CTM
func (gs *GraphicsState) TextRenderingMatrix() model.Matrix {
	ts := &gs.Text
	params := model.Matrix{ts.FontSize * ts.HorizontalScale(), 0, 0, ts.FontSize, 0, ts.Rise}
	return params.Multiply(ts.TextMatrix).Multiply(gs.CTM)
}

// TextPosition returns the current text origin in page space
func (gs *GraphicsState) TextPosition() model.Point {
	return gs.Text.TextMatrix.Multiply(gs.CTM).Transform(model.Point{X: 0, Y: gs.Text.Rise})
}

// EffectiveFontSize returns the font size in page space, accounting for the
// text matrix and CTM
func (gs *GraphicsState) EffectiveFontSize() float64 {
	m := gs.Text.TextMatrix.Multiply(gs.CTM)
	return math.Abs(gs.Text.FontSize) * m.YScale()
}
