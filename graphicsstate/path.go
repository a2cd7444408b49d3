package graphicsstate

import (
	"math"

	"github.com/tsawler/textlines/model"
)

// SegmentKind identifies a path construction step
type SegmentKind int

const (
	SegMove SegmentKind = iota
	SegLine
	// SegCurve carries two control points and the end point
	SegCurve
	SegClose
)

// Segment is one construction step in user space
type Segment struct {
	Kind   SegmentKind
	Points []model.Point
}

// End returns the point the segment leaves as current point. Close
// segments have none.
func (s Segment) End() (model.Point, bool) {
	if len(s.Points) == 0 {
		return model.Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}

// Path is the current path of a content stream, built by m, l, c, v, y, h
// and re and consumed by the next painting operator.
type Path struct {
	Segments []Segment

	current model.Point
	start   model.Point
	open    bool
}

// NewPath returns an empty path
func NewPath() *Path {
	return &Path{}
}

// Current returns the current point. ok is false before the first m or re.
func (p *Path) Current() (pt model.Point, ok bool) {
	return p.current, p.open
}

func (p *Path) add(kind SegmentKind, pts ...model.Point) {
	p.Segments = append(p.Segments, Segment{Kind: kind, Points: pts})
	if end, ok := p.Segments[len(p.Segments)-1].End(); ok {
		p.current = end
	}
}

// MoveTo starts a new subpath (m)
func (p *Path) MoveTo(x, y float64) {
	p.add(SegMove, model.Point{X: x, Y: y})
	p.start = p.current
	p.open = true
}

// LineTo appends a straight segment (l). Without a current point it starts
// a subpath instead.
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	p.add(SegLine, model.Point{X: x, Y: y})
}

// CurveTo appends a cubic Bezier segment (c)
func (p *Path) CurveTo(x1, y1, x2, y2, x3, y3 float64) {
	if !p.open {
		p.MoveTo(x1, y1)
	}
	p.add(SegCurve, model.Point{X: x1, Y: y1}, model.Point{X: x2, Y: y2}, model.Point{X: x3, Y: y3})
}

// CurveToV appends a curve whose first control point is the current point
// (v). It is ignored without a current point.
func (p *Path) CurveToV(x2, y2, x3, y3 float64) {
	if p.open {
		p.CurveTo(p.current.X, p.current.Y, x2, y2, x3, y3)
	}
}

// CurveToY appends a curve whose second control point is the end point (y).
// It is ignored without a current point.
func (p *Path) CurveToY(x1, y1, x3, y3 float64) {
	if p.open {
		p.CurveTo(x1, y1, x3, y3, x3, y3)
	}
}

// ClosePath closes the subpath and returns to its start (h)
func (p *Path) ClosePath() {
	if !p.open {
		return
	}
	p.add(SegClose)
	p.current = p.start
}

// Rectangle appends a closed rectangular subpath (re)
func (p *Path) Rectangle(x, y, width, height float64) {
	p.MoveTo(x, y)
	p.LineTo(x+width, y)
	p.LineTo(x+width, y+height)
	p.LineTo(x, y+height)
	p.ClosePath()
}

// Clear empties the path after painting
func (p *Path) Clear() {
	p.Segments = p.Segments[:0]
	p.open = false
}

func (p *Path) IsEmpty() bool {
	return len(p.Segments) == 0
}

// Points returns every point of the path, control points included
func (p *Path) Points() []model.Point {
	var pts []model.Point
	for _, seg := range p.Segments {
		pts = append(pts, seg.Points...)
	}
	return pts
}

// BBox returns the user-space bounds. Curves are bounded by their control
// points.
func (p *Path) BBox() model.BBox {
	return boundingBoxFromPoints(p.Points())
}

// Transform returns a copy with every point mapped by m
func (p *Path) Transform(m model.Matrix) *Path {
	out := p.Clone()
	for _, seg := range out.Segments {
		for j, pt := range seg.Points {
			seg.Points[j] = m.Transform(pt)
		}
	}
	out.current = m.Transform(p.current)
	out.start = m.Transform(p.start)
	return out
}

// Clone returns a deep copy
func (p *Path) Clone() *Path {
	out := &Path{
		Segments: make([]Segment, len(p.Segments)),
		current:  p.current,
		start:    p.start,
		open:     p.open,
	}
	for i, seg := range p.Segments {
		out.Segments[i] = Segment{Kind: seg.Kind, Points: append([]model.Point(nil), seg.Points...)}
	}
	return out
}

func boundingBoxFromPoints(points []model.Point) model.BBox {
	if len(points) == 0 {
		return model.BBox{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
	}
	return model.NewBBoxFromPoints(lo, hi)
}
