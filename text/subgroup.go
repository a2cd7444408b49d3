package text

import (
	"math"
	"strings"

	"github.com/tsawler/textlines/model"
)

// Subgroup selects words of a group with a mask whose length is the
// group's word count. The zero Subgroup has no group and is empty.
type Subgroup struct {
	group *Group
	mask  []bool
	bbox  Cached[model.BBox]
}

// NewSubgroup returns an empty subgroup of g
func NewSubgroup(g *Group) *Subgroup {
	return &Subgroup{group: g, mask: make([]bool, g.Len())}
}

// Group returns the parent group, nil for the zero subgroup
func (s *Subgroup) Group() *Group { return s.group }

// Len returns the mask length
func (s *Subgroup) Len() int { return len(s.mask) }

// Inside reports whether word i is selected
func (s *Subgroup) Inside(i int) bool {
	return i >= 0 && i < len(s.mask) && s.mask[i]
}

// SetInside selects or deselects word i. Out of range indices are ignored.
func (s *Subgroup) SetInside(i int, inside bool) {
	if i < 0 || i >= len(s.mask) || s.mask[i] == inside {
		return
	}
	s.mask[i] = inside
	s.bbox.Invalidate()
}

// IsEmpty reports whether no word is selected
func (s *Subgroup) IsEmpty() bool {
	return s.First() < 0
}

// Count returns the number of selected words
func (s *Subgroup) Count() int {
	n := 0
	for _, in := range s.mask {
		if in {
			n++
		}
	}
	return n
}

// Indices returns the selected word indices in order
func (s *Subgroup) Indices() []int {
	var out []int
	for i, in := range s.mask {
		if in {
			out = append(out, i)
		}
	}
	return out
}

// First returns the first selected index, or -1
func (s *Subgroup) First() int {
	for i, in := range s.mask {
		if in {
			return i
		}
	}
	return -1
}

// Last returns the last selected index, or -1
func (s *Subgroup) Last() int {
	for i := len(s.mask) - 1; i >= 0; i-- {
		if s.mask[i] {
			return i
		}
	}
	return -1
}

// Clone returns an independent copy
func (s *Subgroup) Clone() *Subgroup {
	c := &Subgroup{group: s.group, mask: append([]bool(nil), s.mask...)}
	c.bbox = s.bbox
	return c
}

func (s *Subgroup) compatible(o *Subgroup) bool {
	return s.group != nil && o != nil && s.group == o.group && len(s.mask) == len(o.mask)
}

// Union returns the words selected by either subgroup. Subgroups of
// different groups yield the zero subgroup.
func (s *Subgroup) Union(o *Subgroup) *Subgroup {
	if !s.compatible(o) {
		return &Subgroup{}
	}
	out := &Subgroup{group: s.group, mask: make([]bool, len(s.mask))}
	for i := range s.mask {
		out.mask[i] = s.mask[i] || o.mask[i]
	}
	return out
}

// Intersection returns the words selected by both subgroups. Subgroups of
// different groups yield the zero subgroup.
func (s *Subgroup) Intersection(o *Subgroup) *Subgroup {
	if !s.compatible(o) {
		return &Subgroup{}
	}
	out := &Subgroup{group: s.group, mask: make([]bool, len(s.mask))}
	for i := range s.mask {
		out.mask[i] = s.mask[i] && o.mask[i]
	}
	return out
}

// Add selects the words of o in place and reports whether o was
// compatible
func (s *Subgroup) Add(o *Subgroup) bool {
	if !s.compatible(o) {
		return false
	}
	for i, in := range o.mask {
		if in && !s.mask[i] {
			s.mask[i] = true
			s.bbox.Invalidate()
		}
	}
	return true
}

// Words returns the selected words
func (s *Subgroup) Words() []Word {
	if s.group == nil {
		return nil
	}
	words := s.group.wordsOrNil()
	var out []Word
	for i, in := range s.mask {
		if in && i < len(words) {
			out = append(out, words[i])
		}
	}
	return out
}

// Text returns the text of the selected words
func (s *Subgroup) Text() string {
	var sb strings.Builder
	for _, w := range s.Words() {
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// IsWhitespace reports whether the selection has no ordinary word
func (s *Subgroup) IsWhitespace() bool {
	for _, w := range s.Words() {
		if w.Kind == Ordinary {
			return false
		}
	}
	return true
}

// BBox returns the box of the selected words in word space. Without
// leadTrailSpaces, space words before the first and after the last
// ordinary word are left out. Without useBottom the box starts at the
// baseline. Only the (true, true) result is cached.
func (s *Subgroup) BBox(leadTrailSpaces, useBottom bool) model.BBox {
	if leadTrailSpaces && useBottom {
		return s.bbox.GetOr(func() model.BBox { return s.computeBBox(true, true) })
	}
	return s.computeBBox(leadTrailSpaces, useBottom)
}

func (s *Subgroup) computeBBox(leadTrailSpaces, useBottom bool) model.BBox {
	first, last := s.First(), s.Last()
	if first < 0 {
		return model.BBox{}
	}
	words := s.group.wordsOrNil()
	off := s.group.wordOffsets()
	if last >= len(words) || last+1 >= len(off) {
		return model.BBox{}
	}

	skip := func(i int) bool {
		return !s.mask[i] || words[i].IsGap() || (!leadTrailSpaces && words[i].IsSpace())
	}
	if !leadTrailSpaces {
		for first <= last && skip(first) {
			first++
		}
		for last >= first && skip(last) {
			last--
		}
	}

	found := false
	left, bottom := math.Inf(1), math.Inf(1)
	right, top := math.Inf(-1), math.Inf(-1)
	for i := first; i <= last; i++ {
		if !s.mask[i] || words[i].IsGap() {
			continue
		}
		b := words[i].BBox
		o := off[i]
		l, r := b.Left()+o.X, b.Right()+o.X
		bt, t := b.Bottom()+o.Y, b.Top()+o.Y
		if !useBottom {
			bt = math.Max(bt, o.Y)
			t = math.Max(t, bt)
		}
		left = math.Min(left, l)
		right = math.Max(right, r)
		bottom = math.Min(bottom, bt)
		top = math.Max(top, t)
		found = true
	}
	if !found {
		return model.BBox{}
	}
	return model.NewBBoxFromEdges(left, bottom, right, top)
}

// OrientedBBox returns the box of the selected words mapped into cs
func (s *Subgroup) OrientedBBox(cs CoordSystem, leadTrailSpaces bool) model.OrientedRect {
	r := model.NewOrientedRect(s.BBox(leadTrailSpaces, true))
	if s.group == nil {
		return r
	}
	return r.Transform(s.group.Transform(WordSpace, cs))
}
