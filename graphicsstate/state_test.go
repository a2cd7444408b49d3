package graphicsstate

import (
	"errors"
	"math"
	"testing"

	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/model"
)

var letter = model.NewBBox(0, 0, 612, 792)

func matrixNear(a, b model.Matrix) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > 1e-9 {
			return false
		}
	}
	return true
}

// TestNewGraphicsState tests initial state
func TestNewGraphicsState(t *testing.T) {
	gs := NewGraphicsState(letter)

	if gs.LineWidth != 1.0 {
		t.Errorf("expected line width 1.0, got %f", gs.LineWidth)
	}
	if gs.MiterLimit != 10.0 {
		t.Errorf("expected miter limit 10, got %f", gs.MiterLimit)
	}
	if gs.Text.HorizontalScaling != 100.0 {
		t.Errorf("expected horizontal scaling 100.0, got %f", gs.Text.HorizontalScaling)
	}
	if !gs.CTM.IsIdentity() {
		t.Error("expected CTM to be identity matrix")
	}
	if gs.Clip.Bounds() != letter {
		t.Errorf("expected clip to be the crop box, got %+v", gs.Clip.Bounds())
	}
	if gs.FillColor.RGB() != [3]float64{0, 0, 0} {
		t.Errorf("expected black fill, got %v", gs.FillColor.RGB())
	}
}

// TestClone tests that clones share no mutable state
func TestClone(t *testing.T) {
	gs := NewGraphicsState(letter)
	gs.Dash = DashPattern{Array: []float64{3, 1}}
	gs.FillColor = Color{Space: "DeviceRGB", Components: []float64{1, 0, 0}}
	gs.SetFont("F1", font.NewStandardFont("Helvetica"), 10)

	clone := gs.Clone()
	clone.Dash.Array[0] = 9
	clone.FillColor.Components[0] = 0
	clone.Clip.IntersectRect(model.NewBBox(0, 0, 10, 10))
	clone.LineWidth = 4

	if gs.Dash.Array[0] != 3 {
		t.Error("dash array shared with clone")
	}
	if gs.FillColor.Components[0] != 1 {
		t.Error("colour components shared with clone")
	}
	if gs.Clip.Bounds() != letter {
		t.Error("clip shared with clone")
	}
	if gs.LineWidth != 1 {
		t.Error("line width changed through clone")
	}
	if clone.Text.Font != gs.Text.Font {
		t.Error("font metrics should be shared")
	}
}

// TestStackPushPop tests q/Q through the stack
func TestStackPushPop(t *testing.T) {
	s := NewStack(NewGraphicsState(letter))
	s.Top().SetFont("F1", nil, 14)
	s.Top().LineWidth = 2.5

	s.Push()
	s.Top().LineWidth = 5.0
	s.Top().SetFont("F2", nil, 18)

	if s.Depth() != 1 || s.Len() != 2 {
		t.Fatalf("expected depth 1 and length 2, got %d and %d", s.Depth(), s.Len())
	}
	if s.Top().LineWidth != 5.0 {
		t.Errorf("expected line width 5.0, got %f", s.Top().LineWidth)
	}

	if err := s.Pop(); err != nil {
		t.Fatalf("Pop failed: %v", err)
	}
	if s.Top().LineWidth != 2.5 {
		t.Errorf("expected restored line width 2.5, got %f", s.Top().LineWidth)
	}
	if s.Top().Text.FontName != "F1" || s.Top().Text.FontSize != 14 {
		t.Errorf("expected restored font F1 14, got %s %f", s.Top().Text.FontName, s.Top().Text.FontSize)
	}
}

// TestStackUnderflow tests Q without q
func TestStackUnderflow(t *testing.T) {
	s := NewStack(NewGraphicsState(letter))
	err := s.Pop()
	if !errors.Is(err, ErrStackUnderflow) {
		t.Errorf("expected ErrStackUnderflow, got %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("initial state must survive underflow, length %d", s.Len())
	}
}

// TestNestedConcatRoundTrip tests that nested cm inside q/Q leaves the
// outer transform unchanged
func TestNestedConcatRoundTrip(t *testing.T) {
	s := NewStack(NewGraphicsState(letter))
	s.Top().Concat(model.Scale(2, 2))
	outer := s.Top().CTM

	s.Push()
	s.Top().Concat(model.Translate(10, 20))
	s.Push()
	s.Top().Concat(model.Rotate(math.Pi / 3))

	if matrixNear(s.Top().CTM, outer) {
		t.Fatal("expected nested transforms to change the CTM")
	}

	if err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Pop(); err != nil {
		t.Fatal(err)
	}
	if s.Top().CTM != outer {
		t.Errorf("expected %v after Q, got %v", outer, s.Top().CTM)
	}
}

// TestConcatOrder tests that cm applies the new matrix before the CTM
func TestConcatOrder(t *testing.T) {
	gs := NewGraphicsState(letter)
	gs.Concat(model.Scale(2, 2))
	gs.Concat(model.Translate(10, 0))

	// the translation is in the scaled user space
	p := gs.CTM.Transform(model.Point{X: 0, Y: 0})
	if p.X != 20 || p.Y != 0 {
		t.Errorf("expected (20, 0), got %+v", p)
	}
}

// TestViewIsReadOnly tests that a View hands out copies
func TestViewIsReadOnly(t *testing.T) {
	s := NewStack(NewGraphicsState(letter))
	v := s.View()

	top := v.Top()
	top.LineWidth = 99
	if s.Top().LineWidth != 1 {
		t.Error("view modified the stack")
	}
	s.Push()
	if v.Len() != 2 || v.Depth() != 1 {
		t.Errorf("view does not track the stack: %d %d", v.Len(), v.Depth())
	}
	if v.At(0).LineWidth != 1 {
		t.Error("unexpected bottom state")
	}
}

// TestBeginText tests that BT resets only the matrices
func TestBeginText(t *testing.T) {
	gs := NewGraphicsState(letter)
	gs.Text.CharSpacing = 2
	gs.SetTextMatrix(model.Matrix{1, 0, 0, 1, 100, 200})

	gs.BeginText()

	if !gs.Text.TextMatrix.IsIdentity() || !gs.Text.TextLineMatrix.IsIdentity() {
		t.Error("expected identity text matrices after BT")
	}
	if gs.Text.CharSpacing != 2 {
		t.Error("BT must not reset character spacing")
	}
}

// TestTextPositioning tests Td, TD, T* and Tm
func TestTextPositioning(t *testing.T) {
	gs := NewGraphicsState(letter)
	gs.SetTextMatrix(model.Matrix{2, 0, 0, 2, 100, 700})

	// Td is expressed in the scaled line matrix space
	gs.TranslateText(10, -5)
	want := model.Matrix{2, 0, 0, 2, 120, 690}
	if gs.Text.TextMatrix != want || gs.Text.TextLineMatrix != want {
		t.Errorf("Td: expected %v, got %v / %v", want, gs.Text.TextMatrix, gs.Text.TextLineMatrix)
	}

	gs.TranslateTextSetLeading(0, -12)
	if gs.Text.Leading != 12 {
		t.Errorf("TD: expected leading 12, got %f", gs.Text.Leading)
	}
	if gs.Text.TextMatrix[5] != 666 {
		t.Errorf("TD: expected f=666, got %f", gs.Text.TextMatrix[5])
	}

	gs.NextLine()
	if gs.Text.TextMatrix[5] != 642 || gs.Text.TextMatrix[4] != 120 {
		t.Errorf("T*: expected (120, 642), got (%f, %f)", gs.Text.TextMatrix[4], gs.Text.TextMatrix[5])
	}
}

// TestAdvanceText tests the text matrix update after a show
func TestAdvanceText(t *testing.T) {
	gs := NewGraphicsState(letter)
	gs.SetFont("F1", nil, 10)
	gs.Text.HorizontalScaling = 50
	gs.SetTextMatrix(model.Matrix{1, 0, 0, 1, 72, 700})
	gs.TranslateText(0, 0)

	gs.AdvanceText(model.Point{X: 2, Y: 0.5})

	if gs.Text.TextMatrix[4] != 82 || gs.Text.TextMatrix[5] != 705 {
		t.Errorf("expected (82, 705), got (%f, %f)", gs.Text.TextMatrix[4], gs.Text.TextMatrix[5])
	}
	if gs.Text.TextLineMatrix[4] != 72 {
		t.Error("showing text must not move the line matrix")
	}
}

// TestTextRenderingMatrix tests the glyph to page mapping
func TestTextRenderingMatrix(t *testing.T) {
	gs := NewGraphicsState(letter)
	gs.Concat(model.Translate(0, 100))
	gs.SetFont("F1", nil, 12)
	gs.Text.Rise = 3
	gs.SetTextMatrix(model.Matrix{1, 0, 0, 1, 50, 50})

	trm := gs.TextRenderingMatrix()
	want := model.Matrix{12, 0, 0, 12, 50, 153}
	if !matrixNear(trm, want) {
		t.Errorf("expected %v, got %v", want, trm)
	}

	pos := gs.TextPosition()
	if pos.X != 50 || pos.Y != 153 {
		t.Errorf("expected (50, 153), got %+v", pos)
	}

	gs.Concat(model.Scale(1, 2))
	if got := gs.EffectiveFontSize(); math.Abs(got-24) > 1e-9 {
		t.Errorf("expected effective font size 24, got %f", got)
	}
}

// TestLeadingFromTD checks that TD sets TL for the following T*
func TestLeadingFromTD(t *testing.T) {
	gs := NewGraphicsState(letter)
	gs.TranslateTextSetLeading(0, -14)
	if gs.Text.Leading != 14 {
		t.Fatalf("expected leading 14, got %f", gs.Text.Leading)
	}
	gs.NextLine()
	if got := gs.Text.TextMatrix[5]; got != -28 {
		t.Errorf("expected y -28 after TD and T*, got %f", got)
	}
	if gs.Text.HorizontalScale() != 1 {
		t.Errorf("expected scale 1, got %f", gs.Text.HorizontalScale())
	}
}
