package analyzer

import (
	"github.com/tsawler/textlines/contentstream"
	"github.com/tsawler/textlines/core"
	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/model"
)

// Event is what a handler sees for one operator, after the analyzer has
// applied the operator's state change
type Event struct {
	Op       contentstream.Op
	Name     string
	Category contentstream.Category
	Operands []core.Object
	Offset   int

	// Data is the inline image payload, for ID only
	Data []byte

	States    graphicsstate.View
	Path      *graphicsstate.Path
	Resources Resources

	// XObject is the resolved object, for Do only
	XObject XObject

	// Depth is the form nesting level, 0 for the page itself
	Depth int
}

// State returns a copy of the current graphics state
func (e *Event) State() graphicsstate.GraphicsState {
	return e.States.Top()
}

// Handler observes an operator
type Handler func(*Event) error

// Handlers holds one optional hook per operator category. The text-showing
// hook returns the displacement of the shown text in unscaled text space;
// when it is nil the analyzer computes the displacement from the font.
type Handlers struct {
	GeneralGraphicsState Handler
	SpecialGraphicsState Handler
	PathConstruction     Handler
	PathPainting         Handler
	ClippingPaths        Handler
	TextObjects          Handler
	TextState            Handler
	TextPositioning      Handler
	TextShowing          func(*Event) (model.Point, error)
	Type3Fonts           Handler
	Color                Handler
	ShadingPatterns      Handler
	XObjects             Handler
	InlineImages         Handler
	MarkedContent        Handler
	Compatibility        Handler
	Unknown              Handler
}

// Dispatch calls the hook for the event's category. The displacement is
// only set for text-showing operators.
func (h *Handlers) Dispatch(ev *Event) (model.Point, error) {
	var fn Handler
	switch ev.Category {
	case contentstream.CategoryGeneralGraphicsState:
		fn = h.GeneralGraphicsState
	case contentstream.CategorySpecialGraphicsState:
		fn = h.SpecialGraphicsState
	case contentstream.CategoryPathConstruction:
		fn = h.PathConstruction
	case contentstream.CategoryPathPainting:
		fn = h.PathPainting
	case contentstream.CategoryClippingPaths:
		fn = h.ClippingPaths
	case contentstream.CategoryTextObjects:
		fn = h.TextObjects
	case contentstream.CategoryTextState:
		fn = h.TextState
	case contentstream.CategoryTextPositioning:
		fn = h.TextPositioning
	case contentstream.CategoryTextShowing:
		if h.TextShowing != nil {
			return h.TextShowing(ev)
		}
		return TextDisplacement(ev.State().Text, ev.Operands)
	case contentstream.CategoryType3Fonts:
		fn = h.Type3Fonts
	case contentstream.CategoryColor:
		fn = h.Color
	case contentstream.CategoryShadingPatterns:
		fn = h.ShadingPatterns
	case contentstream.CategoryXObjects:
		fn = h.XObjects
	case contentstream.CategoryInlineImages:
		fn = h.InlineImages
	case contentstream.CategoryMarkedContent:
		fn = h.MarkedContent
	case contentstream.CategoryCompatibility:
		fn = h.Compatibility
	default:
		fn = h.Unknown
	}
	if fn == nil {
		return model.Point{}, nil
	}
	return model.Point{}, fn(ev)
}

// TextDisplacement returns the displacement of a text-showing operator's
// string or array operand in unscaled text space:
// sum of (w + Tc/fs + Tw/fs) per glyph, minus array numbers / 1000
func TextDisplacement(ts graphicsstate.TextState, operands []core.Object) (model.Point, error) {
	if len(operands) == 0 {
		return model.Point{}, nil
	}
	if ts.Font == nil {
		return model.Point{}, ErrInvalidHandle
	}

	var d model.Point
	show := func(s core.String) {
		for _, code := range ts.Font.Codes(s.Bytes()) {
			d = d.Add(ts.Font.Advance(code))
			if ts.FontSize == 0 {
				continue
			}
			d.X += ts.CharSpacing / ts.FontSize
			if ts.Font.IsWordSpace(code) {
				d.X += ts.WordSpacing / ts.FontSize
			}
		}
	}

	switch v := operands[len(operands)-1].(type) {
	case core.String:
		show(v)
	case core.Array:
		for _, el := range v {
			if s, ok := el.(core.String); ok {
				show(s)
			} else if n, ok := core.ToFloat(el); ok {
				d.X -= n / 1000
			}
		}
	}
	return d, nil
}
