package layout

import (
	"sort"

	"github.com/tsawler/textlines/text"
)

// NoLine is returned when no line results from an operation
const NoLine text.LineID = -1

// Lines owns the lines of one page and the groups they draw from
type Lines struct {
	cfg     Config
	groups  []*text.Group
	byIndex map[int]*text.Group
	lines   map[text.LineID]*Line
	order   []text.LineID
	next    text.LineID
}

// NewLines creates an empty arena over groups, which must be sorted by
// group index
func NewLines(groups []*text.Group, cfg Config) *Lines {
	ls := &Lines{
		cfg:     cfg,
		groups:  groups,
		byIndex: make(map[int]*text.Group, len(groups)),
		lines:   make(map[text.LineID]*Line),
	}
	for _, g := range groups {
		ls.byIndex[g.Index()] = g
	}
	return ls
}

// Config returns the thresholds in use
func (ls *Lines) Config() Config { return ls.cfg }

// Groups returns the groups of the page
func (ls *Lines) Groups() []*text.Group { return ls.groups }

// Len returns the number of live lines
func (ls *Lines) Len() int { return len(ls.lines) }

// Get returns a live line
func (ls *Lines) Get(id text.LineID) (*Line, bool) {
	l, ok := ls.lines[id]
	return l, ok
}

// IDs returns the live line IDs in creation order
func (ls *Lines) IDs() []text.LineID {
	out := ls.order[:0]
	for _, id := range ls.order {
		if _, ok := ls.lines[id]; ok {
			out = append(out, id)
		}
	}
	ls.order = out
	return append([]text.LineID(nil), out...)
}

// All returns the live lines ordered by their first group index
func (ls *Lines) All() []*Line {
	out := make([]*Line, 0, len(ls.lines))
	for _, id := range ls.IDs() {
		out = append(out, ls.lines[id])
	}
	sortLines(out)
	return out
}

func sortLines(lines []*Line) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i].MinGroupIndex(), lines[j].MinGroupIndex()
		if a != b {
			return a < b
		}
		return lines[i].id < lines[j].id
	})
}

// NewEmptyLine adds a line without words
func (ls *Lines) NewEmptyLine() *Line {
	l := &Line{id: ls.next, cfg: &ls.cfg}
	ls.next++
	ls.lines[l.id] = l
	ls.order = append(ls.order, l.id)
	return l
}

// NewLine adds a line holding every word of g
func (ls *Lines) NewLine(g *text.Group) *Line {
	l := ls.NewEmptyLine()
	if g != nil {
		l.AddSubgroup(g.FullSubgroup())
	}
	return l
}

// Remove deletes a line and its back-references
func (ls *Lines) Remove(id text.LineID) {
	l, ok := ls.lines[id]
	if !ok {
		return
	}
	l.detach()
	delete(ls.lines, id)
}

// Clear removes every line
func (ls *Lines) Clear() {
	for id := range ls.lines {
		ls.Remove(id)
	}
	ls.order = nil
}

// MergeLines merges the listed lines into the first one still alive and
// returns it. Missing and repeated IDs are skipped; a single ID is
// returned unchanged. NoLine is returned when none of the IDs is alive.
func (ls *Lines) MergeLines(ids []text.LineID) text.LineID {
	var base *Line
	for _, id := range ids {
		l, ok := ls.lines[id]
		if !ok {
			continue
		}
		if base == nil {
			base = l
			continue
		}
		if l == base {
			continue
		}
		for _, s := range l.detach() {
			base.AddSubgroup(s)
		}
		delete(ls.lines, id)
	}
	if base == nil {
		return NoLine
	}
	return base.id
}

// sortByMinGroup orders line IDs by the first group index of their lines
func (ls *Lines) sortByMinGroup(ids []text.LineID) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aok := ls.lines[ids[i]]
		b, bok := ls.lines[ids[j]]
		if !aok || !bok {
			return aok && !bok
		}
		if x, y := a.MinGroupIndex(), b.MinGroupIndex(); x != y {
			return x < y
		}
		return a.id < b.id
	})
}
