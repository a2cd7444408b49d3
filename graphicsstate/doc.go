// Package graphicsstate provides PDF graphics state management.
//
// The PDF graphics state controls how content is rendered, including
// transformation matrices, colors, line properties, clipping and text
// state. This package implements the state stack used during content stream
// processing.
//
// # Graphics State
//
// The main type is GraphicsState, which tracks:
//   - CTM (Current Transformation Matrix) for coordinate transformations
//   - Line properties (width, cap, join, dash)
//   - Colors (stroke and fill) in their colour spaces
//   - The clipping region as a [ClipPath]
//   - Text state (font, size, spacing, matrices)
//
// States live on a [Stack]; q and Q map to Push and Pop:
//
//	s := graphicsstate.NewStack(graphicsstate.NewGraphicsState(cropBox))
//	s.Push()                        // q
//	s.Top().Concat(matrix)          // cm
//	s.Top().SetFont("F1", f, 12)    // Tf
//	err := s.Pop()                  // Q, ErrStackUnderflow when unbalanced
//
// # Text State
//
// Td, TD, T* and Tm update the text and text line matrices; AdvanceText
// moves the text matrix after a text-showing operator by the displacement
// the glyphs produced.
//
// # Path Operations
//
// [Path] collects path construction operators. [PaintedPaths] records
// painted paths as rules and rectangles in page space.
package graphicsstate
