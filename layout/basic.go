package layout

import (
	"math"

	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/text"
)

// CreateLineBasic puts g on a line. It scans back over the preceding
// groups for one whose word runs continue into g on the same baseline and
// joins its line; otherwise g starts a line of its own. Groups without
// glyphs get no line and NoLine is returned.
func (ls *Lines) CreateLineBasic(g *text.Group) text.LineID {
	if g == nil || !g.HasGlyphs() {
		return NoLine
	}
	pos := ls.position(g)

	var queued []text.LineID
	cumul := 0.0
	for k := pos - 1; k >= 0 && pos-k <= ls.cfg.MaxSearchGroupWords; k-- {
		p := ls.groups[k]
		if !p.HasGlyphs() {
			continue
		}
		if ls.linkable(p, g) {
			if len(p.Lines()) == 0 {
				ls.NewLine(p)
			}
			queued = append(queued, p.Lines()...)
			break
		}
		cumul += p.BBox().Width
		if cumul > ls.cfg.MaxCumulWidth {
			break
		}
	}

	own := g.Lines()
	if len(own) == 0 {
		own = []text.LineID{ls.NewLine(g).ID()}
	}
	ids := append(queued, own...)
	ls.sortByMinGroup(ids)
	return ls.MergeLines(ids)
}

// position returns the slice position of g, falling back to a linear
// search for groups whose index does not match
func (ls *Lines) position(g *text.Group) int {
	i := g.Index()
	if i >= 0 && i < len(ls.groups) && ls.groups[i] == g {
		return i
	}
	for k, h := range ls.groups {
		if h == g {
			return k
		}
	}
	return len(ls.groups)
}

// baselineAngle returns the angle between the baselines of two groups
func baselineAngle(a, b *text.Group) float64 {
	da := a.Matrix(text.WordSpace).TransformVector(model.Point{X: 1}).Normalize()
	db := b.Matrix(text.WordSpace).TransformVector(model.Point{X: 1}).Normalize()
	return angleBetween(da, db)
}

func angleBetween(a, b model.Point) float64 {
	return math.Acos(math.Max(-1, math.Min(1, a.Dot(b))))
}

// linkable reports whether some word run of b continues a word run of a.
// Distances are measured in the word space of a.
func (ls *Lines) linkable(a, b *text.Group) bool {
	if baselineAngle(a, b) > ls.cfg.MaxAngle {
		return false
	}
	toA := b.WordSpaceTo(a)
	mb := b.MainSubgroups()
	boxes := make([]model.BBox, len(mb))
	for i, sb := range mb {
		boxes[i] = sb.OrientedBBox(text.WordSpace, true).Transform(toA).BBox()
	}

	for _, sa := range a.MainSubgroups() {
		ba := sa.BBox(true, true)
		for _, bb := range boxes {
			if ls.closeRuns(ba, bb) {
				return true
			}
		}
	}
	return false
}

func (ls *Lines) closeRuns(a, b model.BBox) bool {
	gap := b.Left() - a.Right()
	if gap < ls.cfg.MaxHDistanceLB || gap > ls.cfg.MaxHDistanceUB {
		return false
	}
	overlap := math.Min(a.Top(), b.Top()) - math.Max(a.Bottom(), b.Bottom())
	if overlap <= 0 {
		return false
	}
	h := math.Min(a.Height, b.Height)
	return h > 0 && overlap/h >= ls.cfg.MinVOverlap
}
