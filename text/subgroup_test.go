package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textlines/model"
)

func boxNear(t *testing.T, want, got model.BBox) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
	assert.InDelta(t, want.Width, got.Width, 1e-9, "width")
	assert.InDelta(t, want.Height, got.Height, 1e-9, "height")
}

func TestSubgroupMask(t *testing.T) {
	g := newTestGroup("ab cd ef", 0, 0)
	s := NewSubgroup(g)

	assert.Equal(t, g.Len(), s.Len())
	assert.True(t, s.IsEmpty())
	assert.Equal(t, -1, s.First())

	s.SetInside(2, true)
	s.SetInside(4, true)
	s.SetInside(99, true)
	s.SetInside(-1, true)

	assert.Equal(t, g.Len(), s.Len())
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, []int{2, 4}, s.Indices())
	assert.Equal(t, 2, s.First())
	assert.Equal(t, 4, s.Last())
	assert.False(t, s.Inside(99))
	assert.Equal(t, "cdef", s.Text())
}

func TestSubgroupAlgebra(t *testing.T) {
	g := newTestGroup("ab cd ef", 0, 0)
	a, b := NewSubgroup(g), NewSubgroup(g)
	a.SetInside(0, true)
	a.SetInside(1, true)
	b.SetInside(1, true)
	b.SetInside(2, true)

	assert.Equal(t, []int{0, 1, 2}, a.Union(b).Indices())
	assert.Equal(t, []int{1}, a.Intersection(b).Indices())

	c := a.Clone()
	require.True(t, c.Add(b))
	assert.Equal(t, []int{0, 1, 2}, c.Indices())
	assert.Equal(t, []int{0, 1}, a.Indices())

	other := NewSubgroup(newTestGroup("ab cd ef", 0, 0))
	other.SetInside(0, true)

	u := a.Union(other)
	assert.Nil(t, u.Group())
	assert.True(t, u.IsEmpty())
	assert.Zero(t, u.Len())
	assert.True(t, a.Intersection(other).IsEmpty())
	assert.False(t, a.Add(other))

	var zero Subgroup
	assert.True(t, zero.IsEmpty())
	assert.True(t, zero.Union(a).IsEmpty())
}

func TestSubgroupBBox(t *testing.T) {
	// words: "A" [0, 0.6], " " [0.6, 1.2], "B" [1.2, 1.8]
	g := newTestGroup("A B", 0, 0)
	s := NewSubgroup(g)
	s.SetInside(1, true)
	s.SetInside(2, true)

	boxNear(t, model.NewBBoxFromEdges(0.6, -0.157, 1.8, 0.629), s.BBox(true, true))
	boxNear(t, model.NewBBoxFromEdges(1.2, -0.157, 1.8, 0.629), s.BBox(false, true))
	boxNear(t, model.NewBBoxFromEdges(0.6, 0, 1.8, 0.629), s.BBox(true, false))

	// the cache follows membership changes
	s.SetInside(0, true)
	boxNear(t, model.NewBBoxFromEdges(0, -0.157, 1.8, 0.629), s.BBox(true, true))
	s.SetInside(2, false)
	boxNear(t, model.NewBBoxFromEdges(0, -0.157, 0.6, 0.629), s.BBox(false, true))
}

func TestSubgroupBBoxInteriorSpaces(t *testing.T) {
	g := newTestGroup(" A B ", 0, 0)
	s := g.FullSubgroup()

	boxNear(t, model.NewBBoxFromEdges(0, -0.157, 3.0, 0.629), s.BBox(true, true))
	boxNear(t, model.NewBBoxFromEdges(0.6, -0.157, 2.4, 0.629), s.BBox(false, true))
}

func TestSubgroupBBoxEmpty(t *testing.T) {
	g := newTestGroup("   ", 0, 0)
	s := g.FullSubgroup()
	assert.True(t, s.IsWhitespace())
	assert.Equal(t, model.BBox{}, s.BBox(false, true))
	assert.Equal(t, model.BBox{}, NewSubgroup(g).BBox(true, true))
}

func TestSubgroupBBoxSkipsGaps(t *testing.T) {
	g := newTestGroup("A", 0, 0)
	require.NoError(t, g.Append(Word{Kind: InferredGap, Advance: model.Point{X: 2}}))
	require.NoError(t, g.Append(g.Words()[0]))

	s := g.FullSubgroup()
	boxNear(t, model.NewBBoxFromEdges(0, -0.157, 3.2, 0.629), s.BBox(true, true))
}

func TestSubgroupOrientedBBox(t *testing.T) {
	g := newTestGroup("A", 100, 700)
	r := g.FullSubgroup().OrientedBBox(PageSpace, true)

	assert.InDelta(t, 100, r.Origin.X, 1e-9)
	assert.InDelta(t, 698.43, r.Origin.Y, 1e-9)
	assert.InDelta(t, 6, r.Width, 1e-9)
	assert.InDelta(t, 7.86, r.Height, 1e-9)
	assert.InDelta(t, 1, r.Dir.X, 1e-12)
	assert.InDelta(t, 0, r.Dir.Y, 1e-12)
}
