package graphicsstate

import "github.com/tsawler/textlines/model"

// ClipPath accumulates the clipping region as the intersection of the crop
// box with every clipping path, approximated by their page-space bounding
// boxes.
type ClipPath struct {
	bounds model.BBox
	empty  bool

	// set by W and W*, consumed by the next painting operator
	pending bool
	evenOdd bool
}

// NewClipPath returns a clip covering the crop box
func NewClipPath(crop model.BBox) *ClipPath {
	return &ClipPath{bounds: crop, empty: crop.IsEmpty()}
}

// Clone returns a copy, or nil for a nil clip
func (c *ClipPath) Clone() *ClipPath {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// Bounds returns the clip region in page space
func (c *ClipPath) Bounds() model.BBox {
	if c.empty {
		return model.BBox{}
	}
	return c.bounds
}

// IsEmpty reports whether nothing can be painted
func (c *ClipPath) IsEmpty() bool {
	return c.empty
}

// IntersectRect narrows the clip to a page-space rectangle
func (c *ClipPath) IntersectRect(b model.BBox) {
	if c.empty {
		return
	}
	if !c.bounds.Intersects(b) {
		c.empty = true
		c.bounds = model.BBox{}
		return
	}
	c.bounds = c.bounds.Intersection(b)
}

// IntersectPath narrows the clip to a user-space path mapped by ctm. An
// empty path leaves the clip unchanged.
func (c *ClipPath) IntersectPath(p *Path, ctm model.Matrix) {
	if p == nil || p.IsEmpty() {
		return
	}
	c.IntersectRect(p.BBox().Transform(ctm))
}

// SetPending marks the current path as the next clipping path (W, W*)
func (c *ClipPath) SetPending(evenOdd bool) {
	c.pending = true
	c.evenOdd = evenOdd
}

// Pending reports whether a W or W* is waiting for a painting operator
func (c *ClipPath) Pending() bool {
	return c.pending
}

// EvenOdd reports the fill rule of the pending clip
func (c *ClipPath) EvenOdd() bool {
	return c.evenOdd
}

// ApplyPending intersects the pending clipping path, if any, and clears the
// flag. It reports whether a clip was applied.
func (c *ClipPath) ApplyPending(p *Path, ctm model.Matrix) bool {
	if !c.pending {
		return false
	}
	c.pending = false
	c.IntersectPath(p, ctm)
	return true
}

// Contains reports whether a page-space point is inside the clip
func (c *ClipPath) Contains(pt model.Point) bool {
	return !c.empty && c.bounds.Contains(pt)
}

// Visible reports whether a page-space box overlaps the clip
func (c *ClipPath) Visible(b model.BBox) bool {
	return !c.empty && c.bounds.Intersects(b)
}
