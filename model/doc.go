// Package model provides the geometric primitives shared by the content
// stream interpreter and the line reconstruction passes.
//
// # Geometry
//
//   - [Point] - 2D point or displacement vector
//   - [BBox] - axis-aligned bounding box with intersection, union, and
//     overlap calculations
//   - [Matrix] - 2D affine transformation matrix in PDF row-vector form
//   - [OrientedRect] - rectangle with an arbitrary base direction, used for
//     word and line boxes on rotated or skewed text
//
// Matrices compose left to right: a.Multiply(b) applies a first, then b.
// This matches the PDF convention where a cm operand is pre-multiplied to
// the current transformation matrix:
//
//	ctm = local.Multiply(ctm)
//
// An [OrientedRect] carried through a transformation keeps its base
// direction aligned with the mapped base edge. Shear is projected away, so
// rectangles stay rectangles in every coordinate system.
package model
