package model

import "math"

// Point represents a 2D point or, where noted, a displacement vector
type Point struct {
	X, Y float64
}

// Distance returns the Euclidean distance to q
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Norm()
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul scales the vector by s
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Norm returns the length of the vector
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// Normalize returns the unit vector in the direction of p, or (1, 0) for
// the null vector.
func (p Point) Normalize() Point {
	n := p.Norm()
	if n < 1e-12 {
		return Point{X: 1, Y: 0}
	}
	return Point{X: p.X / n, Y: p.Y / n}
}

// Perp returns p rotated by +90 degrees
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// BBox is an axis-aligned rectangle anchored at its bottom-left corner, in
// PDF orientation (y grows upwards).
type BBox struct {
	X, Y          float64
	Width, Height float64
}

func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints returns the box spanned by two opposite corners in any
// order.
func NewBBoxFromPoints(p1, p2 Point) BBox {
	lo := Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)}
	hi := Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)}
	return BBox{X: lo.X, Y: lo.Y, Width: hi.X - lo.X, Height: hi.Y - lo.Y}
}

// NewBBoxFromEdges creates a bounding box from its left, bottom, right and
// top edges. Reversed edges are swapped.
func NewBBoxFromEdges(left, bottom, right, top float64) BBox {
	return NewBBoxFromPoints(Point{X: left, Y: bottom}, Point{X: right, Y: top})
}

func (b BBox) Left() float64   { return b.X }
func (b BBox) Right() float64  { return b.X + b.Width }
func (b BBox) Bottom() float64 { return b.Y }
func (b BBox) Top() float64    { return b.Y + b.Height }

func (b BBox) Center() Point {
	return Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Corners returns the four corners counter-clockwise from bottom-left
func (b BBox) Corners() [4]Point {
	return [4]Point{
		{X: b.Left(), Y: b.Bottom()},
		{X: b.Right(), Y: b.Bottom()},
		{X: b.Right(), Y: b.Top()},
		{X: b.Left(), Y: b.Top()},
	}
}

// Contains reports whether p lies inside b or on its border
func (b BBox) Contains(p Point) bool {
	return b.Left() <= p.X && p.X <= b.Right() && b.Bottom() <= p.Y && p.Y <= b.Top()
}

// Intersects reports whether the boxes share at least a border point
func (b BBox) Intersects(o BBox) bool {
	return b.Left() <= o.Right() && o.Left() <= b.Right() &&
		b.Bottom() <= o.Top() && o.Bottom() <= b.Top()
}

// Intersection returns the common part of both boxes, or the zero box when
// they are apart.
func (b BBox) Intersection(o BBox) BBox {
	if !b.Intersects(o) {
		return BBox{}
	}
	return NewBBoxFromEdges(
		math.Max(b.Left(), o.Left()), math.Max(b.Bottom(), o.Bottom()),
		math.Min(b.Right(), o.Right()), math.Min(b.Top(), o.Top()),
	)
}

// Union returns the smallest box containing both
func (b BBox) Union(o BBox) BBox {
	return NewBBoxFromEdges(
		math.Min(b.Left(), o.Left()), math.Min(b.Bottom(), o.Bottom()),
		math.Max(b.Right(), o.Right()), math.Max(b.Top(), o.Top()),
	)
}

// Expand grows the box by margin on every side. A negative margin shrinks
// it.
func (b BBox) Expand(margin float64) BBox {
	return BBox{X: b.X - margin, Y: b.Y - margin, Width: b.Width + 2*margin, Height: b.Height + 2*margin}
}

// Transform returns the axis-aligned hull of the box mapped by m
func (b BBox) Transform(m Matrix) BBox {
	var pts [4]Point
	for i, c := range b.Corners() {
		pts[i] = m.Transform(c)
	}
	lo, hi := pts[0], pts[0]
	for _, p := range pts[1:] {
		lo = Point{X: math.Min(lo.X, p.X), Y: math.Min(lo.Y, p.Y)}
		hi = Point{X: math.Max(hi.X, p.X), Y: math.Max(hi.Y, p.Y)}
	}
	return NewBBoxFromPoints(lo, hi)
}

// IsEmpty reports a box without area
func (b BBox) IsEmpty() bool {
	return !b.IsValid()
}

func (b BBox) IsValid() bool {
	return b.Width > 0 && b.Height > 0
}
