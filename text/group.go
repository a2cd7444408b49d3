package text

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/logger"
	"github.com/tsawler/textlines/model"
)

// ErrInvalidHandle is returned when evicted words cannot be reloaded
// because the group has no loader
var ErrInvalidHandle = errors.New("invalid handle")

// ErrGroupInUse is returned when a group that lines already reference is
// modified. Their subgroup masks are sized to the current word count.
var ErrGroupInUse = errors.New("group in use")

// LineID identifies a line within a page
type LineID int

// CoordSystem names the coordinate systems a group can be viewed in
type CoordSystem int

const (
	// WordSpace is text space at font size 1 with the group's start point
	// at the origin
	WordSpace CoordSystem = iota
	// FontRescaled is text space: word space scaled by the font size and
	// horizontal scaling and moved by the rise
	FontRescaled
	// DocRescaled is page space multiplied by the document rescaling matrix
	DocRescaled
	// PageSpace is default user space of the page
	PageSpace
	numCoordSystems
)

func (c CoordSystem) String() string {
	switch c {
	case WordSpace:
		return "WordSpace"
	case FontRescaled:
		return "FontRescaled"
	case DocRescaled:
		return "DocRescaled"
	case PageSpace:
		return "PageSpace"
	}
	return "Unknown"
}

// Loader reloads the words of an evicted group
type Loader interface {
	LoadWords(page, index int) ([]Word, error)
}

// LoaderFunc adapts a function to Loader
type LoaderFunc func(page, index int) ([]Word, error)

// LoadWords calls f
func (f LoaderFunc) LoadWords(page, index int) ([]Word, error) { return f(page, index) }

// Group holds the words of one text-showing operator together with the
// text state and transform they were shown with
type Group struct {
	page  int
	index int

	words  []Word
	count  int
	loaded bool
	loader Loader

	ts      graphicsstate.TextState
	ctm     model.Matrix
	rescale model.Matrix

	main  []*Subgroup
	lines map[LineID]struct{}

	offsets  Cached[[]model.Point]
	bbox     Cached[model.BBox]
	matrices Cached[[numCoordSystems]model.Matrix]
}

// NewGroup creates a group. Its index is -1 until SetIndex is called.
func NewGroup(words []Word, ts graphicsstate.TextState, ctm model.Matrix) *Group {
	g := &Group{
		index:   -1,
		words:   append([]Word(nil), words...),
		count:   len(words),
		loaded:  true,
		ts:      ts,
		ctm:     ctm,
		rescale: model.Identity(),
		lines:   make(map[LineID]struct{}),
	}
	g.rebuildMainSubgroups()
	return g
}

// Index returns the group index within the page
func (g *Group) Index() int { return g.index }

// Page returns the page index
func (g *Group) Page() int { return g.page }

// SetIndex sets the page and group index
func (g *Group) SetIndex(page, index int) {
	g.page = page
	g.index = index
}

// TextState returns the text state the group was shown with
func (g *Group) TextState() graphicsstate.TextState { return g.ts }

// CTM returns the transform the group was shown with
func (g *Group) CTM() model.Matrix { return g.ctm }

// Len returns the number of words, also while evicted
func (g *Group) Len() int { return g.count }

// Loaded reports whether the words are in memory
func (g *Group) Loaded() bool { return g.loaded }

// SetLoader sets the loader used by Data after Evict
func (g *Group) SetLoader(l Loader) { g.loader = l }

// Data returns the words, reloading them when evicted
func (g *Group) Data() ([]Word, error) {
	if g.loaded {
		return g.words, nil
	}
	if g.loader == nil {
		return nil, ErrInvalidHandle
	}
	words, err := g.loader.LoadWords(g.page, g.index)
	if err != nil {
		return nil, fmt.Errorf("reloading group %d on page %d: %w", g.index, g.page, err)
	}
	if len(words) != g.count {
		return nil, fmt.Errorf("reloading group %d on page %d: got %d words, want %d", g.index, g.page, len(words), g.count)
	}
	g.words = words
	g.loaded = true
	return g.words, nil
}

// LoadData makes sure the words are in memory
func (g *Group) LoadData() error {
	_, err := g.Data()
	return err
}

// Evict drops the words. Derived geometry stays cached.
func (g *Group) Evict() {
	g.words = nil
	g.loaded = false
	g.offsets.Invalidate()
}

// Words returns the words, or nil while evicted
func (g *Group) Words() []Word { return g.words }

// wordsOrNil reloads evicted words, logging failures
func (g *Group) wordsOrNil() []Word {
	words, err := g.Data()
	if err != nil {
		logger.Warn("group words unavailable", "page", g.page, "group", g.index, "err", err)
		return nil
	}
	return words
}

// Append adds words and recomputes the main subgroups. It fails with
// ErrGroupInUse once the group belongs to a line.
func (g *Group) Append(words ...Word) error {
	if len(g.lines) > 0 {
		return fmt.Errorf("append to group %d on %d lines: %w", g.index, len(g.lines), ErrGroupInUse)
	}
	if _, err := g.Data(); err != nil {
		return err
	}
	g.words = append(g.words, words...)
	g.count = len(g.words)
	g.offsets.Invalidate()
	g.bbox.Invalidate()
	g.rebuildMainSubgroups()
	return nil
}

// rebuildMainSubgroups cuts the word sequence at every inferred gap
func (g *Group) rebuildMainSubgroups() {
	g.main = g.main[:0]
	var cur *Subgroup
	for i, w := range g.words {
		if w.IsGap() {
			cur = nil
			continue
		}
		if cur == nil {
			cur = NewSubgroup(g)
			g.main = append(g.main, cur)
		}
		cur.SetInside(i, true)
	}
}

// MainSubgroups returns copies of the main subgroups
func (g *Group) MainSubgroups() []*Subgroup {
	out := make([]*Subgroup, len(g.main))
	for i, s := range g.main {
		out[i] = s.Clone()
	}
	return out
}

// FullSubgroup returns a subgroup holding every word
func (g *Group) FullSubgroup() *Subgroup {
	s := NewSubgroup(g)
	for i := range s.mask {
		s.mask[i] = true
	}
	return s
}

// HasGlyphs reports whether any word is not an inferred gap
func (g *Group) HasGlyphs() bool {
	return len(g.main) > 0
}

// wordOffsets returns the start of every word in word space, plus the end
// of the last word
func (g *Group) wordOffsets() []model.Point {
	if off, ok := g.offsets.Get(); ok {
		return off
	}
	words := g.wordsOrNil()
	if words == nil && g.count > 0 {
		return nil
	}
	off := make([]model.Point, len(words)+1)
	for i, w := range words {
		off[i+1] = off[i].Add(w.Advance)
	}
	g.offsets.Set(off)
	return off
}

// Offset returns the start of word i in word space
func (g *Group) Offset(i int) model.Point {
	off := g.wordOffsets()
	if i < 0 || i >= len(off) {
		return model.Point{}
	}
	return off[i]
}

// Displacement returns the total advance of the group in word space
func (g *Group) Displacement() model.Point {
	off := g.wordOffsets()
	if len(off) == 0 {
		return model.Point{}
	}
	return off[len(off)-1]
}

// BBox returns the box of all words in word space
func (g *Group) BBox() model.BBox {
	return g.bbox.GetOr(func() model.BBox {
		return g.FullSubgroup().BBox(true, true)
	})
}

// Text returns the decoded text of the group
func (g *Group) Text() string {
	var sb strings.Builder
	for _, w := range g.wordsOrNil() {
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// Lines returns the lines the group belongs to, in ascending order
func (g *Group) Lines() []LineID {
	ids := make([]LineID, 0, len(g.lines))
	for id := range g.lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AddLine registers a line holding words of this group
func (g *Group) AddLine(id LineID) { g.lines[id] = struct{}{} }

// RemoveLine unregisters a line
func (g *Group) RemoveLine(id LineID) { delete(g.lines, id) }

// HasLine reports whether the line is registered
func (g *Group) HasLine(id LineID) bool {
	_, ok := g.lines[id]
	return ok
}

// ClearLines drops all line registrations
func (g *Group) ClearLines() {
	for id := range g.lines {
		delete(g.lines, id)
	}
}

// SetRescale sets the document rescaling matrix used by DocRescaled
func (g *Group) SetRescale(m model.Matrix) {
	g.rescale = m
	g.matrices.Invalidate()
}

// Rescale returns the document rescaling matrix
func (g *Group) Rescale() model.Matrix { return g.rescale }

// Matrix returns the matrix mapping cs to page space. Unknown systems map
// with the identity.
func (g *Group) Matrix(cs CoordSystem) model.Matrix {
	if cs < 0 || cs >= numCoordSystems {
		return model.Identity()
	}
	m := g.matrices.GetOr(g.computeMatrices)
	return m[cs]
}

func (g *Group) computeMatrices() [numCoordSystems]model.Matrix {
	ts := g.ts
	fs := ts.FontSize
	font := model.Matrix{fs * ts.HorizontalScale(), 0, 0, fs, 0, ts.Rise}
	text := ts.TextMatrix.Multiply(g.ctm)

	doc, ok := g.rescale.Invert()
	if !ok {
		doc = model.Identity()
	}

	var m [numCoordSystems]model.Matrix
	m[WordSpace] = font.Multiply(text)
	m[FontRescaled] = text
	m[DocRescaled] = doc
	m[PageSpace] = model.Identity()
	return m
}

// Transform returns the matrix mapping from to to. Unknown systems and
// singular matrices yield the identity.
func (g *Group) Transform(from, to CoordSystem) model.Matrix {
	if from < 0 || from >= numCoordSystems || to < 0 || to >= numCoordSystems {
		return model.Identity()
	}
	if from == to {
		return model.Identity()
	}
	inv, ok := g.Matrix(to).Invert()
	if !ok {
		return model.Identity()
	}
	return g.Matrix(from).Multiply(inv)
}

// WordSpaceTo returns the matrix mapping the word space of g into the word
// space of other
func (g *Group) WordSpaceTo(other *Group) model.Matrix {
	inv, ok := other.Matrix(WordSpace).Invert()
	if !ok {
		return model.Identity()
	}
	return g.Matrix(WordSpace).Multiply(inv)
}
