package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertPointNear(t *testing.T, want, got Point) {
	t.Helper()
	tol := 1e-9 * math.Max(1, math.Max(math.Abs(want.X), math.Abs(want.Y)))
	assert.InDelta(t, want.X, got.X, tol, "x of %v vs %v", want, got)
	assert.InDelta(t, want.Y, got.Y, tol, "y of %v vs %v", want, got)
}

func TestMatrixInvert(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(12, -7)},
		{"scale", Scale(3, 0.5)},
		{"rotate and translate", Rotate(0.7).Multiply(Translate(100, 250))},
		{"text matrix", Matrix{12, 0, 0, 12, 72, 700}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Invert()
			require.True(t, ok)
			id := tt.m.Multiply(inv)
			for i, want := range Identity() {
				assert.InDelta(t, want, id[i], 1e-9)
			}
		})
	}
}

func TestMatrixInvertSingular(t *testing.T) {
	inv, ok := Matrix{1, 2, 2, 4, 5, 6}.Invert()
	assert.False(t, ok)
	assert.True(t, inv.IsIdentity())
}

func TestMatrixTransformVectorIgnoresTranslation(t *testing.T) {
	m := Scale(2, 3).Multiply(Translate(50, 50))
	assert.Equal(t, Point{X: 2, Y: 3}, m.TransformVector(Point{X: 1, Y: 1}))
}

func TestBBoxTransform(t *testing.T) {
	b := NewBBox(0, 0, 10, 5)
	got := b.Transform(Rotate(math.Pi / 2))
	assert.InDelta(t, -5, got.X, 1e-9)
	assert.InDelta(t, 0, got.Y, 1e-9)
	assert.InDelta(t, 5, got.Width, 1e-9)
	assert.InDelta(t, 10, got.Height, 1e-9)
}

func TestOrientedRectRoundTrip(t *testing.T) {
	r := OrientedRect{Origin: Point{X: 0.1, Y: -0.2}, Dir: Point{X: 1, Y: 0}, Width: 4.5, Height: 1.2}
	toPage := Matrix{11, 0, 0, 11, 0, 0}.
		Multiply(Rotate(0.3)).
		Multiply(Translate(72, 640))

	page := r.Transform(toPage)
	inv, ok := toPage.Invert()
	require.True(t, ok)
	back := page.Transform(inv)

	want := r.Corners()
	got := back.Corners()
	for i := range want {
		assertPointNear(t, want[i], got[i])
	}
}

func TestOrientedRectTransformFlip(t *testing.T) {
	r := NewOrientedRect(NewBBox(0, 0, 10, 2))
	flipped := r.Transform(Scale(1, -1))

	assert.InDelta(t, 2, flipped.Height, 1e-12)
	assert.InDelta(t, -2, flipped.Origin.Y, 1e-12)
	assert.Equal(t, NewBBox(0, -2, 10, 2), flipped.BBox())
}

func TestOrientedRectInside(t *testing.T) {
	outer := NewOrientedRect(NewBBox(0, 0, 10, 10))

	tests := []struct {
		name  string
		inner OrientedRect
		want  bool
	}{
		{"inside", NewOrientedRect(NewBBox(1, 1, 2, 2)), true},
		{"same", outer, true},
		{"overhanging", NewOrientedRect(NewBBox(9, 1, 2, 2)), false},
		{"rotated inside", OrientedRect{Origin: Point{X: 5, Y: 1}, Dir: Point{X: 0, Y: 1}, Width: 3, Height: 2}, true},
		{"rotated out", OrientedRect{Origin: Point{X: 1, Y: 1}, Dir: Point{X: 0, Y: 1}, Width: 3, Height: 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.inner.Inside(outer))
		})
	}
}

func TestOrientedRectIntersects(t *testing.T) {
	a := NewOrientedRect(NewBBox(0, 0, 4, 4))
	diamond := OrientedRect{Origin: Point{X: 5, Y: 2}, Dir: Point{X: 1, Y: 1}.Normalize(), Width: 1, Height: 1}
	far := OrientedRect{Origin: Point{X: 7, Y: 2}, Dir: Point{X: 1, Y: 1}.Normalize(), Width: 1, Height: 1}
	touching := OrientedRect{Origin: Point{X: 4.5, Y: 2}, Dir: Point{X: 1, Y: 1}.Normalize(), Width: 1, Height: 1}

	assert.False(t, a.Intersects(diamond))
	assert.False(t, a.Intersects(far))
	assert.True(t, a.Intersects(touching))
	assert.Equal(t, BBox{}, a.Intersection(far))
}

func TestOrientedRectEnlarge(t *testing.T) {
	r := NewOrientedRect(NewBBox(10, 10, 8, 1))
	e := r.Enlarge(2, 0.5)
	assert.Equal(t, NewBBox(8, 9.5, 12, 2), e.BBox())

	shrunk := r.Enlarge(-10, 0)
	assert.Equal(t, 0.0, shrunk.Width)
	assert.InDelta(t, 14, shrunk.Origin.X, 1e-12)
}

func TestOrientedRectDistances(t *testing.T) {
	a := NewOrientedRect(NewBBox(0, 0, 1, 1))
	b := NewOrientedRect(NewBBox(4, 0, 1, 1))

	assert.InDelta(t, 3, a.MinDistance(b), 1e-12)
	assert.InDelta(t, math.Hypot(5, 1), a.MaxDistance(b), 1e-12)
}

func TestOrientedRectAngleAndLocal(t *testing.T) {
	a := NewOrientedRect(NewBBox(0, 0, 1, 1))
	b := OrientedRect{Dir: Point{X: math.Cos(0.05), Y: math.Sin(0.05)}, Width: 1, Height: 1}
	assert.InDelta(t, 0.05, a.Angle(b), 1e-9)

	r := OrientedRect{Origin: Point{X: 10, Y: 10}, Dir: Point{X: 0, Y: 1}, Width: 5, Height: 2}
	assertPointNear(t, Point{X: 3, Y: 1}, r.Local(Point{X: 9, Y: 13}))
	assertPointNear(t, Point{X: 9, Y: 13}, r.LocalMatrix().Transform(Point{X: 3, Y: 1}))
}
