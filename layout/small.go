package layout

import (
	"math"

	"github.com/tsawler/textlines/text"
)

// MergeLinesSmall merges every line narrower than MinLineWidthIn into the
// nearest regular line when their boxes are within SmallMaxDistance em of
// that line's font size
func (ls *Lines) MergeLinesSmall() {
	small := func(l *Line) bool {
		return l.Width(false) < ls.cfg.MinLineWidthIn && !l.IsWhitespace()
	}

	idx := ls.buildIndex()
	for _, id := range ls.IDs() {
		l, ok := ls.lines[id]
		if !ok || l.IsEmpty() || !small(l) {
			continue
		}
		r := l.OrientedBBox(false)
		reach := ls.cfg.SmallMaxDistance * l.FontSize()

		best, bestDist := NoLine, math.Inf(1)
		for _, cid := range idx.search(r.BBox().Expand(reach)) {
			c, ok := ls.lines[cid]
			if !ok || cid == id || c.IsEmpty() || small(c) {
				continue
			}
			if angleBetween(l.Geometry().Dir, c.Geometry().Dir) > ls.cfg.MaxAngle {
				continue
			}
			cr := c.OrientedBBox(false)
			d := 0.0
			if !r.Intersects(cr) {
				d = r.MinDistance(cr) / c.FontSize()
			}
			if d <= ls.cfg.SmallMaxDistance && d < bestDist {
				best, bestDist = cid, d
			}
		}
		if best == NoLine {
			continue
		}
		ids := []text.LineID{best, id}
		ls.sortByMinGroup(ids)
		if m, ok := ls.lines[ls.MergeLines(ids)]; ok {
			idx.insert(m)
		}
	}
	ls.check("small")
}
