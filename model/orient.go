package model

import "math"

const insideTolerance = 1e-9

// OrientedRect is a rectangle whose base edge starts at Origin and runs along
// the unit vector Dir for Width units. The rectangle extends Height units
// along Dir rotated by +90 degrees.
type OrientedRect struct {
	Origin Point
	Dir    Point
	Width  float64
	Height float64
}

// NewOrientedRect creates an axis-aligned oriented rectangle from a bbox
func NewOrientedRect(b BBox) OrientedRect {
	return OrientedRect{
		Origin: Point{X: b.X, Y: b.Y},
		Dir:    Point{X: 1, Y: 0},
		Width:  b.Width,
		Height: b.Height,
	}
}

// Normal returns the unit vector perpendicular to the base edge
func (r OrientedRect) Normal() Point {
	return r.Dir.Perp()
}

// Corners returns the four corners counter-clockwise from the origin
func (r OrientedRect) Corners() [4]Point {
	u := r.Dir.Mul(r.Width)
	v := r.Normal().Mul(r.Height)
	return [4]Point{
		r.Origin,
		r.Origin.Add(u),
		r.Origin.Add(u).Add(v),
		r.Origin.Add(v),
	}
}

// Transform maps the rectangle by m. Shear is projected away: the height of
// the result is the extent of the mapped height edge perpendicular to the
// mapped base edge.
func (r OrientedRect) Transform(m Matrix) OrientedRect {
	origin := m.Transform(r.Origin)
	u := m.TransformVector(r.Dir.Mul(r.Width))
	v := m.TransformVector(r.Normal().Mul(r.Height))

	var dir Point
	width := u.Norm()
	if width < 1e-12 {
		dir = m.TransformVector(r.Dir).Normalize()
		width = 0
	} else {
		dir = u.Mul(1 / width)
	}

	h := v.Dot(dir.Perp())
	if h < 0 {
		origin = origin.Add(dir.Perp().Mul(h))
		h = -h
	}
	return OrientedRect{Origin: origin, Dir: dir, Width: width, Height: h}
}

// BBox returns the axis-aligned hull of the rectangle
func (r OrientedRect) BBox() BBox {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range r.Corners() {
		minX = math.Min(minX, c.X)
		minY = math.Min(minY, c.Y)
		maxX = math.Max(maxX, c.X)
		maxY = math.Max(maxY, c.Y)
	}
	return NewBBoxFromEdges(minX, minY, maxX, maxY)
}

// LocalMatrix maps local coordinates (s along Dir, t along the normal) to
// the rectangle's coordinate system.
func (r OrientedRect) LocalMatrix() Matrix {
	n := r.Normal()
	return Matrix{r.Dir.X, r.Dir.Y, n.X, n.Y, r.Origin.X, r.Origin.Y}
}

// Local returns the coordinates of p in the rectangle's frame
func (r OrientedRect) Local(p Point) Point {
	d := p.Sub(r.Origin)
	return Point{X: d.Dot(r.Dir), Y: d.Dot(r.Normal())}
}

// Enlarge grows the rectangle by dx at both ends of the base edge and by dy
// on both sides of it. Negative values shrink it, clamped at zero size.
func (r OrientedRect) Enlarge(dx, dy float64) OrientedRect {
	w := r.Width + 2*dx
	h := r.Height + 2*dy
	if w < 0 {
		dx = -r.Width / 2
		w = 0
	}
	if h < 0 {
		dy = -r.Height / 2
		h = 0
	}
	origin := r.Origin.Sub(r.Dir.Mul(dx)).Sub(r.Normal().Mul(dy))
	return OrientedRect{Origin: origin, Dir: r.Dir, Width: w, Height: h}
}

// ContainsPoint reports whether p lies inside the rectangle
func (r OrientedRect) ContainsPoint(p Point) bool {
	l := r.Local(p)
	return l.X >= -insideTolerance && l.X <= r.Width+insideTolerance &&
		l.Y >= -insideTolerance && l.Y <= r.Height+insideTolerance
}

// Inside reports whether all corners of r lie inside other
func (r OrientedRect) Inside(other OrientedRect) bool {
	for _, c := range r.Corners() {
		if !other.ContainsPoint(c) {
			return false
		}
	}
	return true
}

// Intersects reports whether the two rectangles overlap, using the
// separating axis test on the four edge normals.
func (r OrientedRect) Intersects(other OrientedRect) bool {
	a := r.Corners()
	b := other.Corners()
	axes := [4]Point{r.Dir, r.Normal(), other.Dir, other.Normal()}
	for _, axis := range axes {
		aMin, aMax := project(a, axis)
		bMin, bMax := project(b, axis)
		if aMax < bMin-insideTolerance || bMax < aMin-insideTolerance {
			return false
		}
	}
	return true
}

// Intersection returns the axis-aligned intersection of both hulls, or the
// zero box when the rectangles do not overlap.
func (r OrientedRect) Intersection(other OrientedRect) BBox {
	if !r.Intersects(other) {
		return BBox{}
	}
	return r.BBox().Intersection(other.BBox())
}

// MinDistance returns the smallest corner to corner distance
func (r OrientedRect) MinDistance(other OrientedRect) float64 {
	best := math.Inf(1)
	for _, p := range r.Corners() {
		for _, q := range other.Corners() {
			best = math.Min(best, p.Distance(q))
		}
	}
	return best
}

// MaxDistance returns the largest corner to corner distance
func (r OrientedRect) MaxDistance(other OrientedRect) float64 {
	best := 0.0
	for _, p := range r.Corners() {
		for _, q := range other.Corners() {
			best = math.Max(best, p.Distance(q))
		}
	}
	return best
}

// Angle returns the angle between the base directions of the two
// rectangles, in [0, pi].
func (r OrientedRect) Angle(other OrientedRect) float64 {
	c := r.Dir.Dot(other.Dir)
	if c > 1 {
		c = 1
	} else if c < -1 {
		c = -1
	}
	return math.Acos(c)
}

func project(pts [4]Point, axis Point) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := p.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}
