package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/textlines/core"
	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/model"
)

// WordKind classifies a word
type WordKind int

const (
	// Ordinary is a run of visible glyphs
	Ordinary WordKind = iota
	// InterWordSpace is a run of space glyphs
	InterWordSpace
	// InferredGap is a positioning adjustment from a TJ array
	InferredGap
	// InferredGapCharSpacing stands for the character spacing between glyphs
	// that were split because the spacing is too wide to form one word
	InferredGapCharSpacing
)

func (k WordKind) String() string {
	switch k {
	case Ordinary:
		return "Ordinary"
	case InterWordSpace:
		return "InterWordSpace"
	case InferredGap:
		return "InferredGap"
	case InferredGapCharSpacing:
		return "InferredGapCharSpacing"
	default:
		return "Unknown"
	}
}

// IsGap reports whether the kind is one of the inferred gaps
func (k WordKind) IsGap() bool {
	return k == InferredGap || k == InferredGapCharSpacing
}

// DefaultMaxCharSpaceScale is the character spacing, relative to the mean
// glyph width, above which glyphs are no longer joined into one word
const DefaultMaxCharSpaceScale = 0.4

// WordOptions tunes word construction
type WordOptions struct {
	MaxCharSpaceScale float64 `validate:"gte=0"`
}

// DefaultWordOptions returns the default word options
func DefaultWordOptions() WordOptions {
	return WordOptions{MaxCharSpaceScale: DefaultMaxCharSpaceScale}
}

// Word is a run of character codes of one kind. Advance and BBox are in
// word space: text space at font size 1, with the word's origin at 0,0.
type Word struct {
	Kind    WordKind
	Codes   []uint32
	Text    string
	Advance model.Point
	BBox    model.BBox

	// CharSpacing is Tc / font size as applied to the word
	CharSpacing float64
}

// IsSpace reports whether the word is an inter-word space run
func (w Word) IsSpace() bool { return w.Kind == InterWordSpace }

// IsGap reports whether the word is an inferred gap
func (w Word) IsGap() bool { return w.Kind.IsGap() }

// scaled returns Tc and Tw divided by the font size
func scaled(ts graphicsstate.TextState) (tc, tw float64) {
	if ts.FontSize == 0 {
		return 0, 0
	}
	return ts.CharSpacing / ts.FontSize, ts.WordSpacing / ts.FontSize
}

// BuildWords splits a string operand into words. Space runs become one
// InterWordSpace word; other runs become one Ordinary word unless the
// character spacing exceeds MaxCharSpaceScale times the mean glyph width,
// in which case each glyph is its own word followed by an
// InferredGapCharSpacing word carrying the spacing.
func BuildWords(raw []byte, m font.Metrics, ts graphicsstate.TextState, opts WordOptions) []Word {
	if m == nil || len(raw) == 0 {
		return nil
	}
	codes := m.Codes(raw)
	tc, tw := scaled(ts)

	splitGlyphs := false
	if tc > 0 {
		mean := m.MeanGlyphBBox().Width
		splitGlyphs = tc > opts.MaxCharSpaceScale*mean
	}

	var words []Word
	for start := 0; start < len(codes); {
		space := m.IsSpace(codes[start])
		end := start + 1
		for end < len(codes) && m.IsSpace(codes[end]) == space {
			end++
		}
		run := codes[start:end]
		start = end

		switch {
		case space:
			words = append(words, runWord(InterWordSpace, run, m, tc, tw))
		case splitGlyphs:
			for _, c := range run {
				w := runWord(Ordinary, []uint32{c}, m, 0, 0)
				words = append(words, w, Word{
					Kind:        InferredGapCharSpacing,
					Advance:     model.Point{X: tc},
					CharSpacing: tc,
				})
			}
		default:
			words = append(words, runWord(Ordinary, run, m, tc, tw))
		}
	}
	return words
}

// runWord measures a run of codes. The box spans the glyph boxes; the
// advance includes the spacing after every glyph.
func runWord(kind WordKind, codes []uint32, m font.Metrics, tc, tw float64) Word {
	w := Word{Kind: kind, Codes: append([]uint32(nil), codes...), CharSpacing: tc}

	var pen model.Point
	var sb strings.Builder
	for i, c := range codes {
		gb := m.GlyphBBox(c)
		gb.X += pen.X
		gb.Y += pen.Y
		if i == 0 {
			w.BBox = gb
		} else {
			w.BBox = w.BBox.Union(gb)
		}

		pen = pen.Add(m.Advance(c))
		pen.X += tc
		if m.IsWordSpace(c) {
			pen.X += tw
		}
		sb.WriteString(m.Decode(c))
	}
	w.Advance = pen

	if kind == InterWordSpace {
		w.Text = " "
	} else {
		w.Text = norm.NFC.String(sb.String())
	}
	return w
}

// BuildArrayWords splits a TJ array into words. Numbers become InferredGap
// words moving by -n/1000 em; strings go through BuildWords.
func BuildArrayWords(arr core.Array, m font.Metrics, ts graphicsstate.TextState, opts WordOptions) []Word {
	var words []Word
	for _, el := range arr {
		switch v := el.(type) {
		case core.String:
			words = append(words, BuildWords(v.Bytes(), m, ts, opts)...)
		default:
			n, ok := core.ToFloat(el)
			if !ok {
				continue
			}
			words = append(words, Word{Kind: InferredGap, Advance: model.Point{X: -n / 1000}})
		}
	}
	return words
}
