package graphicsstate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textlines/model"
)

func TestCornerHelpers(t *testing.T) {
	p := model.Point{X: 100, Y: 200}
	assert.True(t, pointsEqual(p, p, 0.1))
	assert.True(t, pointsEqual(p, model.Point{X: 100.05, Y: 199.95}, 0.1))
	assert.False(t, pointsEqual(p, model.Point{X: 100, Y: 201}, 0.1))

	h := math.Sqrt(2) * 25
	tests := []struct {
		name    string
		corners []model.Point
		want    bool
	}{
		{"axis aligned", []model.Point{{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 80, Y: 20}, {X: 0, Y: 20}}, true},
		{"clockwise", []model.Point{{X: 0, Y: 0}, {X: 0, Y: 20}, {X: 80, Y: 20}, {X: 80, Y: 0}}, true},
		{"diamond", []model.Point{{X: h, Y: 0}, {X: 2 * h, Y: h}, {X: h, Y: 2 * h}, {X: 0, Y: h}}, true},
		{"sheared", []model.Point{{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 100, Y: 20}, {X: 20, Y: 20}}, false},
		{"three corners", []model.Point{{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 80, Y: 20}}, false},
	}
	for _, tt := range tests {
		if got := isRectangle(tt.corners, 0.5); got != tt.want {
			t.Errorf("%s: isRectangle() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func pageState() *GraphicsState {
	return NewGraphicsState(model.NewBBox(0, 0, 612, 792))
}

func TestPaintedPaths_Rules(t *testing.T) {
	gs := pageState()
	gs.LineWidth = 2
	gs.StrokeColor = Color{Space: "DeviceRGB", Components: []float64{1, 0, 0}}

	p := NewPath()
	p.MoveTo(100, 100)
	p.LineTo(300, 100)
	p.LineTo(300, 400)
	p.LineTo(400, 500)

	pp := NewPaintedPaths()
	pp.Record(p, gs, true, false)

	require.Len(t, pp.Rules, 3)
	assert.True(t, pp.Rules[0].IsHorizontal)
	assert.True(t, pp.Rules[1].IsVertical)
	assert.False(t, pp.Rules[2].IsHorizontal || pp.Rules[2].IsVertical)
	assert.Equal(t, 2.0, pp.Rules[0].Width)
	assert.Equal(t, [3]float64{1, 0, 0}, pp.Rules[0].Color)
	assert.InDelta(t, 200, pp.Rules[0].Length(), 1e-9)

	stats := pp.Stats()
	assert.Equal(t, PaintStats{Rules: 3, HorizontalRules: 1, VerticalRules: 1}, stats)
	assert.Len(t, pp.RulesLongerThan(250), 1)
}

func TestPaintedPaths_FilledOnlyIgnoresSegments(t *testing.T) {
	p := NewPath()
	p.MoveTo(0, 0)
	p.LineTo(100, 0)
	p.LineTo(50, 80)

	pp := NewPaintedPaths()
	pp.Record(p, pageState(), false, true)
	assert.Empty(t, pp.Rules)
	assert.Empty(t, pp.Rects)
}

func TestPaintedPaths_Rectangle(t *testing.T) {
	gs := pageState()
	gs.Concat(model.Translate(50, 60))
	gs.FillColor = Color{Space: "DeviceCMYK", Components: []float64{0, 0, 0, 1}}

	p := NewPath()
	p.Rectangle(0, 0, 100, 20)

	pp := NewPaintedPaths()
	pp.Record(p, gs, true, true)

	require.Len(t, pp.Rects, 1)
	r := pp.Rects[0]
	assert.Equal(t, model.NewBBox(50, 60, 100, 20), r.BBox)
	assert.True(t, r.IsFilled)
	assert.True(t, r.IsStroked)
	assert.Equal(t, [3]float64{0, 0, 0}, r.FillColor)
	assert.Empty(t, pp.Rules)

	stats := pp.Stats()
	assert.Equal(t, 1, stats.FilledRects)
	assert.Equal(t, 1, stats.StrokedRects)

	pp.Reset()
	assert.Equal(t, PaintStats{}, pp.Stats())
}

func TestPaintedPaths_Clipped(t *testing.T) {
	gs := pageState()
	gs.Clip.IntersectRect(model.NewBBox(0, 0, 100, 100))

	p := NewPath()
	p.MoveTo(200, 200)
	p.LineTo(300, 200)

	pp := NewPaintedPaths()
	pp.Record(p, gs, true, false)
	assert.Empty(t, pp.Rules)
	assert.Equal(t, 1, pp.Stats().Clipped)
}

func TestColorRGB(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		want  [3]float64
	}{
		{"gray", Color{Space: "DeviceGray", Components: []float64{0.5}}, [3]float64{0.5, 0.5, 0.5}},
		{"rgb", Color{Space: "DeviceRGB", Components: []float64{0.1, 0.2, 0.3}}, [3]float64{0.1, 0.2, 0.3}},
		{"cmyk", Color{Space: "DeviceCMYK", Components: []float64{1, 0, 0, 0}}, [3]float64{0, 1, 1}},
		{"pattern", Color{Space: "Pattern"}, [3]float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.color.RGB()
			for i := range got {
				assert.True(t, math.Abs(got[i]-tt.want[i]) < 1e-9, "component %d: %v", i, got)
			}
		})
	}
}
