package layout

import (
	"sort"
	"strings"

	"github.com/tsawler/textlines/logger"
	"github.com/tsawler/textlines/model"
	"github.com/tsawler/textlines/text"
)

// Geometry is the frame of a line. Local coordinates start on the left end
// of the mean baseline and are measured in em of the line's font size.
type Geometry struct {
	// Matrix maps local coordinates to page space
	Matrix model.Matrix

	// Box is the local box including leading and trailing spaces
	Box model.BBox

	// Tight is the local box without leading and trailing spaces. It is
	// the zero box for whitespace-only lines.
	Tight model.BBox

	// FontSize is the width-weighted mean font size in page units
	FontSize float64

	// Dir is the baseline direction in page space
	Dir model.Point
}

// Line is an ordered set of subgroups, at most one per group, sorted by
// group index
type Line struct {
	id        text.LineID
	cfg       *Config
	subgroups []*text.Subgroup
	geom      text.Cached[Geometry]
}

// ID returns the line identifier
func (l *Line) ID() text.LineID { return l.id }

// Len returns the number of subgroups
func (l *Line) Len() int { return len(l.subgroups) }

// IsEmpty reports whether the line selects no word
func (l *Line) IsEmpty() bool {
	for _, s := range l.subgroups {
		if !s.IsEmpty() {
			return false
		}
	}
	return true
}

// Subgroups returns copies of the subgroups in group order
func (l *Line) Subgroups() []*text.Subgroup {
	out := make([]*text.Subgroup, len(l.subgroups))
	for i, s := range l.subgroups {
		out[i] = s.Clone()
	}
	return out
}

// Groups returns the groups the line draws words from
func (l *Line) Groups() []*text.Group {
	out := make([]*text.Group, len(l.subgroups))
	for i, s := range l.subgroups {
		out[i] = s.Group()
	}
	return out
}

// Contains reports whether the line holds words of g
func (l *Line) Contains(g *text.Group) bool {
	return l.find(g) >= 0
}

func (l *Line) find(g *text.Group) int {
	i := sort.Search(len(l.subgroups), func(i int) bool {
		return l.subgroups[i].Group().Index() >= g.Index()
	})
	for ; i < len(l.subgroups) && l.subgroups[i].Group().Index() == g.Index(); i++ {
		if l.subgroups[i].Group() == g {
			return i
		}
	}
	return -1
}

// MinGroupIndex returns the smallest group index, or -1 for an empty line
func (l *Line) MinGroupIndex() int {
	if len(l.subgroups) == 0 {
		return -1
	}
	return l.subgroups[0].Group().Index()
}

// MaxGroupIndex returns the largest group index, or -1 for an empty line
func (l *Line) MaxGroupIndex() int {
	if len(l.subgroups) == 0 {
		return -1
	}
	return l.subgroups[len(l.subgroups)-1].Group().Index()
}

// AddSubgroup merges s into the line. Words of a group already present are
// added to its subgroup; otherwise a copy of s is inserted in group order.
// The group is told about the line.
func (l *Line) AddSubgroup(s *text.Subgroup) {
	if s == nil || s.Group() == nil || s.IsEmpty() {
		return
	}
	g := s.Group()
	if i := l.find(g); i >= 0 {
		l.subgroups[i].Add(s)
	} else {
		i := sort.Search(len(l.subgroups), func(i int) bool {
			return l.subgroups[i].Group().Index() > g.Index()
		})
		l.subgroups = append(l.subgroups, nil)
		copy(l.subgroups[i+1:], l.subgroups[i:])
		l.subgroups[i] = s.Clone()
	}
	g.AddLine(l.id)
	l.geom.Invalidate()
}

// RemoveSubgroup takes the words of g out of the line and returns them,
// or nil when the line holds none
func (l *Line) RemoveSubgroup(g *text.Group) *text.Subgroup {
	i := l.find(g)
	if i < 0 {
		return nil
	}
	s := l.subgroups[i]
	l.subgroups = append(l.subgroups[:i], l.subgroups[i+1:]...)
	g.RemoveLine(l.id)
	l.geom.Invalidate()
	return s
}

// detach drops all subgroups and their back-references
func (l *Line) detach() []*text.Subgroup {
	out := l.subgroups
	for _, s := range out {
		s.Group().RemoveLine(l.id)
	}
	l.subgroups = nil
	l.geom.Invalidate()
	return out
}

// IsWhitespace reports whether the line has no ordinary word
func (l *Line) IsWhitespace() bool {
	for _, s := range l.subgroups {
		if !s.IsWhitespace() {
			return false
		}
	}
	return true
}

// Geometry returns the cached frame of the line
func (l *Line) Geometry() Geometry {
	return l.geom.GetOr(l.computeGeometry)
}

// Matrix maps local line coordinates to page space
func (l *Line) Matrix() model.Matrix { return l.Geometry().Matrix }

// FontSize returns the weighted mean font size in page units
func (l *Line) FontSize() float64 { return l.Geometry().FontSize }

// BBox returns the local box of the line
func (l *Line) BBox(leadTrailSpaces bool) model.BBox {
	geo := l.Geometry()
	if leadTrailSpaces {
		return geo.Box
	}
	return geo.Tight
}

// OrientedBBox returns the line box in page space
func (l *Line) OrientedBBox(leadTrailSpaces bool) model.OrientedRect {
	geo := l.Geometry()
	return model.NewOrientedRect(l.BBox(leadTrailSpaces)).Transform(geo.Matrix)
}

// Width returns the local width in em
func (l *Line) Width(leadTrailSpaces bool) float64 {
	return l.BBox(leadTrailSpaces).Width
}

// Height returns the local height of the tight box in em
func (l *Line) Height() float64 {
	return l.Geometry().Tight.Height
}

type extent struct {
	s0, s1, t0, t1 float64
	ok             bool
}

func (e *extent) add(r model.OrientedRect, o, dir, n model.Point) {
	for _, c := range r.Corners() {
		d := c.Sub(o)
		s, t := d.Dot(dir), d.Dot(n)
		if !e.ok {
			e.s0, e.s1, e.t0, e.t1 = s, s, t, t
			e.ok = true
			continue
		}
		e.s0, e.s1 = min(e.s0, s), max(e.s1, s)
		e.t0, e.t1 = min(e.t0, t), max(e.t1, t)
	}
}

func (l *Line) computeGeometry() Geometry {
	var ref *text.Group
	for _, s := range l.subgroups {
		if !s.IsEmpty() {
			ref = s.Group()
			break
		}
	}
	if ref == nil {
		return Geometry{Matrix: model.Identity(), FontSize: 1, Dir: model.Point{X: 1}}
	}

	dir := ref.Matrix(text.WordSpace).TransformVector(model.Point{X: 1}).Normalize()
	n := dir.Perp()
	origin := ref.Matrix(text.FontRescaled).Transform(model.Point{})

	var full, tight extent
	var wsum, bsum, fsum float64
	for _, s := range l.subgroups {
		if s.IsEmpty() {
			continue
		}
		g := s.Group()
		wm := g.Matrix(text.WordSpace)
		r := model.NewOrientedRect(s.BBox(true, true)).Transform(wm)
		full.add(r, origin, dir, n)
		if !s.IsWhitespace() {
			tight.add(model.NewOrientedRect(s.BBox(false, true)).Transform(wm), origin, dir, n)
		}

		w := max(r.Width, 1e-9)
		base := g.Matrix(text.FontRescaled).Transform(model.Point{}).Sub(origin).Dot(n)
		wsum += w
		bsum += w * base
		fsum += w * wm.TransformVector(model.Point{Y: 1}).Norm()
	}

	fs := fsum / wsum
	if fs < 1e-9 {
		fs = 1
	}
	base := bsum / wsum
	lo := origin.Add(dir.Mul(full.s0)).Add(n.Mul(base))

	geo := Geometry{
		Matrix:   model.Matrix{fs * dir.X, fs * dir.Y, fs * n.X, fs * n.Y, lo.X, lo.Y},
		FontSize: fs,
		Dir:      dir,
	}
	local := func(e extent) model.BBox {
		return model.NewBBoxFromEdges((e.s0-full.s0)/fs, (e.t0-base)/fs, (e.s1-full.s0)/fs, (e.t1-base)/fs)
	}
	geo.Box = local(full)
	if tight.ok {
		geo.Tight = local(tight)
	}
	return geo
}

// WordRef points at one word of a group
type WordRef struct {
	Group *text.Group
	Index int
}

// placedWord is a word with its box in local line coordinates
type placedWord struct {
	ref  WordRef
	word text.Word
	box  model.BBox
}

func (l *Line) placedWords(spaces bool) []placedWord {
	inv, ok := l.Matrix().Invert()
	if !ok {
		return nil
	}
	var out []placedWord
	for _, s := range l.subgroups {
		g := s.Group()
		words, err := g.Data()
		if err != nil {
			logger.Warn("line words unavailable", "line", l.id, "group", g.Index(), "err", err)
			continue
		}
		toLocal := g.Matrix(text.WordSpace).Multiply(inv)
		for _, i := range s.Indices() {
			if i >= len(words) {
				continue
			}
			w := words[i]
			if w.IsGap() || (!spaces && w.IsSpace()) {
				continue
			}
			off := g.Offset(i)
			b := w.BBox
			b.X += off.X
			b.Y += off.Y
			out = append(out, placedWord{ref: WordRef{Group: g, Index: i}, word: w, box: b.Transform(toLocal)})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].box.X < out[j].box.X })
	return out
}

// Direction returns the dominant direction of the line's text
func (l *Line) Direction() text.Direction {
	var sb strings.Builder
	for _, s := range l.subgroups {
		for _, w := range s.Words() {
			if w.Kind == text.Ordinary {
				sb.WriteString(w.Text)
			}
		}
	}
	return text.DetectDirection(sb.String())
}

// Word is a run of glyphs of a line with no inferred gap inside
type Word struct {
	Text string

	// BBox is the page space hull of the run
	BBox model.BBox

	Refs []WordRef
}

// Words splits the line into glyph runs in reading order. A run ends at a
// space word or where the next glyphs are further away than the configured
// gap.
func (l *Line) Words() []Word {
	ws := l.placedWords(true)
	rtl := l.Direction() == text.RTL
	if rtl {
		for i, j := 0, len(ws)-1; i < j; i, j = i+1, j-1 {
			ws[i], ws[j] = ws[j], ws[i]
		}
	}

	gapLimit := DefaultConfig().TextGap
	if l.cfg != nil {
		gapLimit = l.cfg.TextGap
	}

	var (
		out  []Word
		cur  *Word
		box  model.BBox
		prev *placedWord
	)
	flush := func() {
		if cur != nil {
			cur.BBox = box.Transform(l.Matrix())
			out = append(out, *cur)
			cur = nil
		}
	}
	for i := range ws {
		p := &ws[i]
		if p.word.IsSpace() {
			flush()
			continue
		}
		if cur != nil {
			gap := p.box.Left() - prev.box.Right()
			if rtl {
				gap = prev.box.Left() - p.box.Right()
			}
			if gap > gapLimit {
				flush()
			}
		}
		if cur == nil {
			cur = &Word{}
			box = p.box
		} else {
			box = box.Union(p.box)
		}
		cur.Text += p.word.Text
		cur.Refs = append(cur.Refs, p.ref)
		prev = p
	}
	flush()
	return out
}

// Text returns the line text in reading order, the words joined by single
// spaces
func (l *Line) Text() string {
	words := l.Words()
	parts := make([]string, 0, len(words))
	for _, w := range words {
		if w.Text != "" {
			parts = append(parts, w.Text)
		}
	}
	return strings.Join(parts, " ")
}
