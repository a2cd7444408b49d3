package graphicsstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tsawler/textlines/model"
)

func TestClipPathIntersect(t *testing.T) {
	c := NewClipPath(model.NewBBox(0, 0, 100, 100))
	assert.False(t, c.IsEmpty())

	c.IntersectRect(model.NewBBox(50, 50, 100, 100))
	assert.Equal(t, model.NewBBox(50, 50, 50, 50), c.Bounds())
	assert.True(t, c.Contains(model.Point{X: 75, Y: 75}))
	assert.False(t, c.Contains(model.Point{X: 25, Y: 75}))

	c.IntersectRect(model.NewBBox(0, 0, 10, 10))
	assert.True(t, c.IsEmpty())
	assert.Equal(t, model.BBox{}, c.Bounds())
	assert.False(t, c.Visible(model.NewBBox(0, 0, 100, 100)))

	// an empty clip stays empty
	c.IntersectRect(model.NewBBox(0, 0, 100, 100))
	assert.True(t, c.IsEmpty())
}

func TestClipPathPending(t *testing.T) {
	c := NewClipPath(model.NewBBox(0, 0, 612, 792))

	p := NewPath()
	p.Rectangle(10, 10, 20, 30)

	assert.False(t, c.ApplyPending(p, model.Identity()))
	assert.Equal(t, model.NewBBox(0, 0, 612, 792), c.Bounds())

	c.SetPending(true)
	assert.True(t, c.Pending())
	assert.True(t, c.EvenOdd())

	assert.True(t, c.ApplyPending(p, model.Scale(2, 2)))
	assert.False(t, c.Pending())
	assert.Equal(t, model.NewBBox(20, 20, 40, 60), c.Bounds())
}

func TestClipPathEmptyPath(t *testing.T) {
	c := NewClipPath(model.NewBBox(0, 0, 10, 10))
	c.IntersectPath(NewPath(), model.Identity())
	c.IntersectPath(nil, model.Identity())
	assert.Equal(t, model.NewBBox(0, 0, 10, 10), c.Bounds())
}

func TestClipPathCloneNil(t *testing.T) {
	var c *ClipPath
	assert.Nil(t, c.Clone())
}
