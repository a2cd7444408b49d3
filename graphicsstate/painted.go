package graphicsstate

import (
	"math"

	"github.com/tsawler/textlines/model"
)

// Rule represents a stroked line segment in page space
type Rule struct {
	Start model.Point
	End   model.Point

	Width float64
	Color [3]float64

	IsHorizontal bool
	IsVertical   bool

	BBox model.BBox
}

// Length returns the length of the segment
func (r Rule) Length() float64 {
	return r.Start.Distance(r.End)
}

// Rect represents a painted rectangle in page space
type Rect struct {
	BBox model.BBox

	StrokeWidth float64
	StrokeColor [3]float64
	FillColor   [3]float64
	IsFilled    bool
	IsStroked   bool
}

// PaintStats summarises the recorded paths
type PaintStats struct {
	Rules           int
	HorizontalRules int
	VerticalRules   int
	Rects           int
	FilledRects     int
	StrokedRects    int
	Clipped         int
}

// PaintedPaths records the rules and rectangles painted on a page
type PaintedPaths struct {
	Rules []Rule
	Rects []Rect

	// Clipped counts paths dropped because they lie outside the clip
	Clipped int

	// Tolerance for horizontal/vertical classification (in points)
	AngleTolerance float64
}

// NewPaintedPaths creates an empty recorder
func NewPaintedPaths() *PaintedPaths {
	return &PaintedPaths{
		AngleTolerance: 0.5, // Allow 0.5 point deviation for horizontal/vertical
	}
}

// Record classifies a painted path using the CTM, line width, colours and
// clip of gs
func (pp *PaintedPaths) Record(p *Path, gs *GraphicsState, stroked, filled bool) {
	if p == nil || p.IsEmpty() || (!stroked && !filled) {
		return
	}
	if gs.Clip != nil && !gs.Clip.Visible(p.BBox().Transform(gs.CTM)) {
		pp.Clipped++
		return
	}

	if rect, ok := pp.detectRectangle(p, gs.CTM); ok {
		rect.IsStroked = stroked
		rect.IsFilled = filled
		if stroked {
			rect.StrokeWidth = gs.LineWidth
			rect.StrokeColor = gs.StrokeColor.RGB()
		}
		if filled {
			rect.FillColor = gs.FillColor.RGB()
		}
		pp.Rects = append(pp.Rects, rect)
		return
	}

	// Individual segments only count when stroked
	if stroked {
		pp.recordSegments(p, gs)
	}
}

// detectRectangle checks whether the path is a single rectangle
func (pp *PaintedPaths) detectRectangle(p *Path, ctm model.Matrix) (Rect, bool) {
	segments := p.Segments
	if len(segments) < 4 || segments[0].Kind != SegMove {
		return Rect{}, false
	}

	corners := []model.Point{segments[0].Points[0]}
	for _, seg := range segments[1:] {
		switch seg.Kind {
		case SegLine:
			corners = append(corners, seg.Points[0])
		case SegClose:
		default:
			// New subpaths and curves are not simple rectangles
			return Rect{}, false
		}
	}

	if len(corners) < 4 || len(corners) > 5 {
		return Rect{}, false
	}
	if len(corners) == 5 {
		if !pointsEqual(corners[0], corners[4], 0.1) {
			return Rect{}, false
		}
		corners = corners[:4]
	}
	if !isRectangle(corners, pp.AngleTolerance) {
		return Rect{}, false
	}

	transformed := make([]model.Point, 4)
	for i, c := range corners {
		transformed[i] = ctm.Transform(c)
	}
	return Rect{BBox: boundingBoxFromPoints(transformed)}, true
}

func (pp *PaintedPaths) recordSegments(p *Path, gs *GraphicsState) {
	var current, start model.Point

	for _, seg := range p.Segments {
		switch seg.Kind {
		case SegMove:
			current = seg.Points[0]
			start = current

		case SegLine, SegCurve:
			// curves are approximated by their chord
			end, _ := seg.End()
			pp.Rules = append(pp.Rules, pp.newRule(current, end, gs))
			current = end

		case SegClose:
			if !pointsEqual(current, start, 0.1) {
				pp.Rules = append(pp.Rules, pp.newRule(current, start, gs))
			}
			current = start
		}
	}
}

func (pp *PaintedPaths) newRule(start, end model.Point, gs *GraphicsState) Rule {
	s := gs.CTM.Transform(start)
	e := gs.CTM.Transform(end)

	return Rule{
		Start:        s,
		End:          e,
		Width:        gs.LineWidth,
		Color:        gs.StrokeColor.RGB(),
		IsHorizontal: math.Abs(e.Y-s.Y) < pp.AngleTolerance,
		IsVertical:   math.Abs(e.X-s.X) < pp.AngleTolerance,
		BBox:         model.NewBBoxFromPoints(s, e),
	}
}

// Stats counts the recorded rules and rectangles
func (pp *PaintedPaths) Stats() PaintStats {
	stats := PaintStats{
		Rules:   len(pp.Rules),
		Rects:   len(pp.Rects),
		Clipped: pp.Clipped,
	}
	for _, r := range pp.Rules {
		if r.IsHorizontal {
			stats.HorizontalRules++
		}
		if r.IsVertical {
			stats.VerticalRules++
		}
	}
	for _, r := range pp.Rects {
		if r.IsFilled {
			stats.FilledRects++
		}
		if r.IsStroked {
			stats.StrokedRects++
		}
	}
	return stats
}

// RulesLongerThan returns rules of at least minLength
func (pp *PaintedPaths) RulesLongerThan(minLength float64) []Rule {
	var result []Rule
	for _, r := range pp.Rules {
		if r.Length() >= minLength {
			result = append(result, r)
		}
	}
	return result
}

// Reset clears everything recorded
func (pp *PaintedPaths) Reset() {
	pp.Rules = pp.Rules[:0]
	pp.Rects = pp.Rects[:0]
	pp.Clipped = 0
}

// pointsEqual checks if two points are approximately equal
func pointsEqual(a, b model.Point, tolerance float64) bool {
	return math.Abs(a.X-b.X) < tolerance && math.Abs(a.Y-b.Y) < tolerance
}

// isRectangle checks if four points form a rectangle
func isRectangle(corners []model.Point, tolerance float64) bool {
	if len(corners) != 4 {
		return false
	}

	for i := 0; i < 4; i++ {
		p0 := corners[i]
		p1 := corners[(i+1)%4]
		p2 := corners[(i+2)%4]

		v1 := p1.Sub(p0)
		v2 := p2.Sub(p1)
		len1, len2 := v1.Norm(), v2.Norm()
		if len1 < tolerance || len2 < tolerance {
			continue // Degenerate case
		}

		// cosine of the corner angle, ~0 for 90 degrees
		if math.Abs(v1.Dot(v2)/(len1*len2)) > 0.1 {
			return false
		}
	}

	return true
}
