package layout

import (
	"math"

	"github.com/tidwall/rtree"

	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/text"
)

// lineIndex finds candidate lines by their page-space hull. Entries go
// stale when lines merge; callers re-check candidates against the arena.
type lineIndex struct {
	tr rtree.RTreeG[text.LineID]
}

func (ls *Lines) buildIndex() *lineIndex {
	idx := &lineIndex{}
	for _, id := range ls.IDs() {
		idx.insert(ls.lines[id])
	}
	return idx
}

func (idx *lineIndex) insert(l *Line) {
	if l.IsEmpty() {
		return
	}
	b := l.OrientedBBox(true).BBox()
	idx.tr.Insert([2]float64{b.Left(), b.Bottom()}, [2]float64{b.Right(), b.Top()}, l.id)
}

func (idx *lineIndex) search(b model.BBox) []text.LineID {
	seen := make(map[text.LineID]bool)
	var out []text.LineID
	idx.tr.Search([2]float64{b.Left(), b.Bottom()}, [2]float64{b.Right(), b.Top()},
		func(_, _ [2]float64, id text.LineID) bool {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
			return true
		})
	return out
}

// MergeLinesEnlargeInside merges into every sufficiently wide line the
// lines that lie within its enlarged box and within its group range
func (ls *Lines) MergeLinesEnlargeInside() {
	idx := ls.buildIndex()
	for _, id := range ls.IDs() {
		ls.mergeInside(id, idx)
	}
	ls.check("inside")
}

// mergeInside runs the inside merge for one line. A nil index is built on
// demand.
func (ls *Lines) mergeInside(id text.LineID, idx *lineIndex) text.LineID {
	base, ok := ls.lines[id]
	if !ok {
		return NoLine
	}
	if base.Width(false) < ls.cfg.MinLineWidthIn || base.IsWhitespace() {
		return id
	}
	if idx == nil {
		idx = ls.buildIndex()
	}

	geo := base.Geometry()
	inv, ok := geo.Matrix.Invert()
	if !ok {
		return id
	}
	tight := geo.Tight
	dx := (ls.cfg.InsideXScale - 1) / 2 * tight.Width
	dy := ls.cfg.InsideYScale * math.Min(tight.Height, ls.cfg.MaxLineHeight)
	zone := model.NewOrientedRect(tight).Enlarge(dx, dy)

	lo, hi := base.MinGroupIndex(), base.MaxGroupIndex()
	ids := []text.LineID{id}
	for _, cid := range idx.search(zone.Transform(geo.Matrix).BBox()) {
		c, ok := ls.lines[cid]
		if !ok || cid == id || c.IsEmpty() {
			continue
		}
		if c.MinGroupIndex() < lo || c.MaxGroupIndex() > hi {
			continue
		}
		if angleBetween(geo.Dir, c.Geometry().Dir) > ls.cfg.MaxAngle {
			continue
		}
		if !c.OrientedBBox(c.IsWhitespace()).Transform(inv).Inside(zone) {
			continue
		}
		ids = append(ids, cid)
	}
	if len(ids) == 1 {
		return id
	}
	ls.sortByMinGroup(ids)
	merged := ls.MergeLines(ids)
	if l, ok := ls.lines[merged]; ok {
		idx.insert(l)
	}
	return merged
}

// MergeLinesEnlargeOutside grows every long line by xEnl and yEnl em and
// merges the lines of nearby groups that fall inside the grown box. A
// positive maxWidth bounds the width of the merged line.
func (ls *Lines) MergeLinesEnlargeOutside(xEnl, yEnl, maxWidth float64) {
	idx := ls.buildIndex()
	for _, id := range ls.IDs() {
		ls.mergeOutside(id, xEnl, yEnl, maxWidth, idx)
	}
	ls.check("outside")
}

func (ls *Lines) mergeOutside(id text.LineID, xEnl, yEnl, maxWidth float64, idx *lineIndex) {
	l, ok := ls.lines[id]
	if !ok || l.IsEmpty() || l.IsWhitespace() {
		return
	}
	geo := l.Geometry()
	tight := geo.Tight
	if tight.Width <= ls.cfg.MinWidthHeightRatio*tight.Height {
		return
	}
	inv, ok := geo.Matrix.Invert()
	if !ok {
		return
	}
	zone := model.NewOrientedRect(tight).Enlarge(xEnl, yEnl)

	lo, hi := l.MinGroupIndex(), l.MaxGroupIndex()
	seen := map[text.LineID]bool{id: true}
	ids := []text.LineID{id}
	for k := lo - ls.cfg.MaxOutsideGroups; k <= hi+ls.cfg.MaxOutsideGroups; k++ {
		if k >= lo && k <= hi {
			continue
		}
		g, ok := ls.byIndex[k]
		if !ok {
			continue
		}
		for _, cid := range g.Lines() {
			if seen[cid] {
				continue
			}
			seen[cid] = true
			c, ok := ls.lines[cid]
			if !ok {
				continue
			}
			ct := c.Geometry().Tight
			if ct.Width <= 1e-9 || ct.Height <= 1e-9 {
				continue
			}
			if angleBetween(geo.Dir, c.Geometry().Dir) > ls.cfg.MaxAngle {
				continue
			}
			r := c.OrientedBBox(false).Transform(inv)
			if !r.Inside(zone) {
				continue
			}
			if maxWidth > 0 && tight.Union(r.BBox()).Width > maxWidth {
				continue
			}
			ids = append(ids, cid)
		}
	}
	if len(ids) > 1 {
		ls.sortByMinGroup(ids)
		id = ls.MergeLines(ids)
		if m, ok := ls.lines[id]; ok {
			idx.insert(m)
		}
	}
	ls.mergeInside(id, idx)
}
