// Package font provides the glyph metrics used by text analysis.
//
// Every font type implements [Metrics], which reports lengths in text space
// at font size 1. A glyph box spans the advance horizontally and the font's
// descent to ascent vertically, so glyphs of one font on one baseline share
// a height.
//
// # Font Types
//
//   - [SimpleFont] - single-byte fonts (Type1, TrueType, Type3), including
//     the standard 14 fonts through [NewStandardFont]
//   - [Type0Font] - composite fonts with CID widths from the W array
//   - [TrueTypeFont] - embedded TrueType programs, measured with freetype
//
// Fonts are built from plain descriptions rather than PDF dictionaries:
//
//	f := font.NewSimpleFont(font.SimpleSpec{
//	    BaseFont:  "Helvetica",
//	    FirstChar: 32,
//	    Widths:    widths,
//	})
//	w := f.Advance('A').X
//
// # Text
//
// Codes decode through the ToUnicode [CMap] when one exists, and otherwise
// through the base [Encoding] with /Differences applied. Glyph names such as
// "eacute" or "uni00E9" are resolved by [GlyphText].
package font
