package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointVectors(t *testing.T) {
	p := Point{X: 3, Y: 4}
	q := Point{X: 1, Y: -2}

	assert.Equal(t, Point{X: 4, Y: 2}, p.Add(q))
	assert.Equal(t, Point{X: 2, Y: 6}, p.Sub(q))
	assert.Equal(t, Point{X: 6, Y: 8}, p.Mul(2))
	assert.Equal(t, -5.0, p.Dot(q))
	assert.Equal(t, 5.0, p.Norm())
	assert.Equal(t, 5.0, p.Distance(Point{}))
	assert.Equal(t, Point{X: -4, Y: 3}, p.Perp())
	assert.InDelta(t, 0, p.Dot(p.Perp()), 1e-12)

	n := p.Normalize()
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
	assert.Equal(t, Point{X: 1}, Point{}.Normalize(), "null vector normalizes to the x axis")
}

func TestBBoxConstructors(t *testing.T) {
	want := BBox{X: 10, Y: 20, Width: 30, Height: 40}
	tests := []struct {
		name string
		got  BBox
	}{
		{"size", NewBBox(10, 20, 30, 40)},
		{"points", NewBBoxFromPoints(Point{X: 40, Y: 60}, Point{X: 10, Y: 20})},
		{"edges", NewBBoxFromEdges(10, 20, 40, 60)},
		{"reversed edges", NewBBoxFromEdges(40, 60, 10, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != want {
				t.Errorf("got %+v, want %+v", tt.got, want)
			}
		})
	}
}

func TestBBoxEdgesAndCorners(t *testing.T) {
	b := NewBBox(10, 20, 30, 40)
	assert.Equal(t, 10.0, b.Left())
	assert.Equal(t, 40.0, b.Right())
	assert.Equal(t, 20.0, b.Bottom())
	assert.Equal(t, 60.0, b.Top())
	assert.Equal(t, Point{X: 25, Y: 40}, b.Center())
	assert.Equal(t, [4]Point{{10, 20}, {40, 20}, {40, 60}, {10, 60}}, b.Corners())
}

func TestBBoxContains(t *testing.T) {
	b := NewBBox(0, 0, 10, 10)
	tests := []struct {
		p    Point
		want bool
	}{
		{Point{X: 5, Y: 5}, true},
		{Point{X: 0, Y: 10}, true},
		{Point{X: 10.1, Y: 5}, false},
		{Point{X: 5, Y: -0.1}, false},
	}
	for _, tt := range tests {
		if got := b.Contains(tt.p); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestBBoxSetOperations(t *testing.T) {
	a := NewBBox(0, 0, 10, 10)

	tests := []struct {
		name         string
		other        BBox
		intersects   bool
		intersection BBox
		union        BBox
	}{
		{"overlapping", NewBBox(5, 5, 10, 10), true, NewBBox(5, 5, 5, 5), NewBBox(0, 0, 15, 15)},
		{"touching", NewBBox(10, 0, 5, 10), true, NewBBox(10, 0, 0, 10), NewBBox(0, 0, 15, 10)},
		{"inside", NewBBox(2, 2, 2, 2), true, NewBBox(2, 2, 2, 2), a},
		{"apart", NewBBox(20, 20, 5, 5), false, BBox{}, NewBBox(0, 0, 25, 25)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.intersects, a.Intersects(tt.other))
			assert.Equal(t, tt.intersects, tt.other.Intersects(a))
			assert.Equal(t, tt.intersection, a.Intersection(tt.other))
			assert.Equal(t, tt.union, a.Union(tt.other))
		})
	}
}

func TestBBoxExpand(t *testing.T) {
	assert.Equal(t, NewBBox(5, 5, 60, 60), NewBBox(10, 10, 50, 50).Expand(5))
	assert.Equal(t, NewBBox(12, 12, 46, 46), NewBBox(10, 10, 50, 50).Expand(-2))
}

func TestBBoxEmptyAndValid(t *testing.T) {
	tests := []struct {
		name  string
		b     BBox
		empty bool
	}{
		{"box", NewBBox(0, 0, 10, 10), false},
		{"zero width", NewBBox(0, 0, 0, 10), true},
		{"zero height", NewBBox(0, 0, 10, 0), true},
		{"negative width", BBox{Width: -1, Height: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.empty, tt.b.IsEmpty())
			assert.Equal(t, !tt.empty, tt.b.IsValid())
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// scale first, then translate
	m := Scale(2, 3).Multiply(Translate(10, 20))
	assert.Equal(t, Point{X: 12, Y: 23}, m.Transform(Point{X: 1, Y: 1}))

	// translate first, then scale
	m = Translate(10, 20).Multiply(Scale(2, 3))
	assert.Equal(t, Point{X: 22, Y: 63}, m.Transform(Point{X: 1, Y: 1}))

	assert.Equal(t, m, m.Multiply(Identity()))
	assert.Equal(t, m, Identity().Multiply(m))
}

func TestMatrixRotate(t *testing.T) {
	p := Rotate(math.Pi / 2).Transform(Point{X: 1})
	assert.InDelta(t, 0, p.X, 1e-12)
	assert.InDelta(t, 1, p.Y, 1e-12)

	m := Rotate(math.Pi / 6).Multiply(Scale(4, 4))
	assert.InDelta(t, 4, m.XScale(), 1e-12)
	assert.InDelta(t, 4, m.YScale(), 1e-12)
	assert.InDelta(t, 16, m.Determinant(), 1e-12)
}

func TestMatrixIsIdentity(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"identity", Identity(), true},
		{"zero translation", Translate(0, 0), true},
		{"translated", Translate(1, 0), false},
		{"scaled", Scale(2, 1), false},
	}
	for _, tt := range tests {
		if got := tt.m.IsIdentity(); got != tt.want {
			t.Errorf("%s: IsIdentity() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
