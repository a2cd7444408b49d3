package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/textlines/contentstream"
	"github.com/tsawler/textlines/core"
	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/logger"
	"github.com/tsawler/textlines/model"
)

// DefaultMaxFormDepth bounds form XObject recursion
const DefaultMaxFormDepth = 64

// how many operators run between context checks
const ctxCheckInterval = 64

// fatalOperands lists the operators whose malformed operands stop the
// analysis; for every other operator they are a warning
var fatalOperands = map[contentstream.Op]bool{
	contentstream.OpConcat:          true,
	contentstream.OpTextMatrix:      true,
	contentstream.OpMoveText:        true,
	contentstream.OpMoveTextLeading: true,
	contentstream.OpFont:            true,
	contentstream.OpType3Width:      true,
	contentstream.OpType3WidthBBox:  true,
}

var fallbackFont = font.NewStandardFont("Helvetica")

// Analyzer interprets content streams, maintains the graphics state stack
// and calls its handlers for each operator
type Analyzer struct {
	Handlers     Handlers
	MaxFormDepth int
}

// New creates an analyzer with the given handlers
func New(h Handlers) *Analyzer {
	return &Analyzer{Handlers: h, MaxFormDepth: DefaultMaxFormDepth}
}

// Analyze interprets the content of canvas. A nil initial state starts from
// the defaults clipped to the crop box; nil resources use the canvas's.
// Recoverable problems are returned as warnings; the error is fatal.
func (a *Analyzer) Analyze(ctx context.Context, canvas Canvas, initial *graphicsstate.GraphicsState, res Resources) ([]Warning, error) {
	if canvas == nil {
		return nil, ErrInvalidHandle
	}
	content, err := canvas.Content()
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if initial == nil {
		initial = graphicsstate.NewGraphicsState(canvas.CropBox())
	}
	if res == nil {
		res = canvas.Resources()
	}
	return a.AnalyzeContent(ctx, content, initial, res)
}

// AnalyzeContent interprets a content stream directly
func (a *Analyzer) AnalyzeContent(ctx context.Context, content []byte, initial *graphicsstate.GraphicsState, res Resources) ([]Warning, error) {
	if initial == nil {
		return nil, ErrInvalidHandle
	}
	if res == nil {
		res = &MapResources{}
	}
	r := &run{
		a:     a,
		ctx:   ctx,
		stack: graphicsstate.NewStack(initial),
		path:  graphicsstate.NewPath(),
	}
	if r.stack.Top().Clip == nil {
		r.stack.Top().Clip = graphicsstate.NewClipPath(model.NewBBox(-1e9, -1e9, 2e9, 2e9))
	}
	err := r.interpret(content, res, 0)
	return r.warnings, err
}

// run is the state of one Analyze call
type run struct {
	a     *Analyzer
	ctx   context.Context
	stack *graphicsstate.Stack
	path  *graphicsstate.Path

	// stack depth at the start of the current content stream
	floor int

	inText      bool
	markedDepth int
	count       int
	warnings    []Warning
}

func (r *run) warn(depth int, name string, offset int, err error) {
	r.warnings = append(r.warnings, Warning{Operator: name, Offset: offset, Depth: depth, Err: err})
	logger.Warn("content stream problem", "op", name, "offset", offset, "depth", depth, "err", err)
}

func (r *run) interpret(content []byte, res Resources, depth int) error {
	p := contentstream.NewParser(content)
	for {
		r.count++
		if r.count%ctxCheckInterval == 0 {
			if err := r.ctx.Err(); err != nil {
				return err
			}
		}

		op, err := p.Next()
		if err != nil {
			var se *contentstream.SyntaxError
			if errors.As(err, &se) {
				r.warn(depth, "", se.Offset, err)
				continue
			}
			return err
		}
		if op == nil {
			break
		}
		if err := r.step(op, res, depth); err != nil {
			return err
		}
	}

	if r.stack.Depth() > r.floor {
		r.warn(depth, "q", len(content), &StructuralError{Operator: "q", Offset: len(content), Msg: "unbalanced save at end of stream"})
		for r.stack.Depth() > r.floor {
			_ = r.stack.Pop()
		}
	}
	return nil
}

func (r *run) dispatch(ev *Event) (model.Point, error) {
	return r.a.Handlers.Dispatch(ev)
}

// lastN returns the last n operands
func lastN(ops []core.Object, n int) []core.Object {
	if n < 0 || len(ops) <= n {
		return ops
	}
	return ops[len(ops)-n:]
}

func (r *run) step(op *contentstream.Operation, res Resources, depth int) error {
	ev := &Event{
		Op:        op.Op,
		Name:      op.Operator,
		Category:  op.Op.Category(),
		Operands:  op.Operands,
		Offset:    op.Offset,
		Data:      op.Data,
		States:    r.stack.View(),
		Path:      r.path,
		Resources: res,
		Depth:     depth,
	}

	if op.Op == contentstream.OpUnknown {
		if r.stack.Top().Compatibility == 0 {
			r.warn(depth, op.Operator, op.Offset, &StructuralError{Operator: op.Operator, Offset: op.Offset, Msg: "unknown operator"})
		}
		_, err := r.dispatch(ev)
		return err
	}

	if arity := op.Op.Arity(); arity > 0 && len(op.Operands) < arity {
		return r.badOperands(op, depth, fmt.Sprintf("need %d operands, got %d", arity, len(op.Operands)))
	}
	ev.Operands = lastN(op.Operands, op.Op.Arity())

	skip, err := r.apply(ev, op, res, depth)
	if err != nil || skip {
		return err
	}

	switch ev.Category {
	case contentstream.CategoryTextShowing:
		return r.show(ev, depth)
	case contentstream.CategoryPathPainting:
		_, err := r.dispatch(ev)
		r.path.Clear()
		return err
	}
	_, err = r.dispatch(ev)
	if err != nil {
		return err
	}
	if op.Op == contentstream.OpXObject {
		if form, ok := ev.XObject.(*Form); ok {
			return r.runForm(form, res, depth, op)
		}
	}
	return nil
}

// badOperands reports malformed operands, fatally for the operators that
// position text or set the transform
func (r *run) badOperands(op *contentstream.Operation, depth int, msg string) error {
	e := &DataFormatError{Operator: op.Operator, Offset: op.Offset, Msg: msg}
	if fatalOperands[op.Op] {
		return e
	}
	r.warn(depth, op.Operator, op.Offset, e)
	return nil
}

func (r *run) structural(op *contentstream.Operation, depth int, msg string) {
	r.warn(depth, op.Operator, op.Offset, &StructuralError{Operator: op.Operator, Offset: op.Offset, Msg: msg})
}

// apply performs the state change of an operator. skip is set when the
// operator is ignored and must not be dispatched.
func (r *run) apply(ev *Event, op *contentstream.Operation, res Resources, depth int) (skip bool, err error) {
	gs := r.stack.Top()
	args := ev.Operands
	bad := func(msg string) (bool, error) {
		return true, r.badOperands(op, depth, msg)
	}

	switch op.Op {
	// special graphics state
	case contentstream.OpSave:
		r.stack.Push()
	case contentstream.OpRestore:
		if r.stack.Depth() <= r.floor {
			return true, ErrStackUnderflow
		}
		if err := r.stack.Pop(); err != nil {
			return true, err
		}
	case contentstream.OpConcat:
		m, ok := matrixOf(args)
		if !ok {
			return bad("cm needs six numbers")
		}
		gs.Concat(m)

	// general graphics state
	case contentstream.OpLineWidth, contentstream.OpMiterLimit, contentstream.OpFlatness:
		v, ok := core.ToFloat(args[0])
		if !ok {
			return bad("expected a number")
		}
		switch op.Op {
		case contentstream.OpLineWidth:
			gs.LineWidth = v
		case contentstream.OpMiterLimit:
			gs.MiterLimit = v
		default:
			gs.Flatness = v
		}
	case contentstream.OpLineCap, contentstream.OpLineJoin:
		v, ok := core.ToInt(args[0])
		if !ok {
			return bad("expected an integer")
		}
		if op.Op == contentstream.OpLineCap {
			gs.LineCap = v
		} else {
			gs.LineJoin = v
		}
	case contentstream.OpDash:
		arr, ok := args[0].(core.Array)
		phase, okPhase := core.ToFloat(args[1])
		dash, okDash := arr.Floats()
		if !ok || !okPhase || !okDash {
			return bad("expected an array and a phase")
		}
		gs.Dash = graphicsstate.DashPattern{Array: dash, Phase: phase}
	case contentstream.OpRenderingIntent:
		n, ok := args[0].(core.Name)
		if !ok {
			return bad("expected a name")
		}
		gs.RenderingIntent = string(n)
	case contentstream.OpExtGState:
		n, ok := args[0].(core.Name)
		if !ok {
			return bad("expected a name")
		}
		ext, err := res.ExtGState(string(n))
		if err != nil {
			r.warn(depth, op.Operator, op.Offset, err)
			return true, nil
		}
		ext.apply(string(n), gs)

	// path construction
	case contentstream.OpMoveTo, contentstream.OpLineTo, contentstream.OpCurveTo,
		contentstream.OpCurveToV, contentstream.OpCurveToY, contentstream.OpRectangle:
		v, ok := numbers(args)
		if !ok {
			return bad("expected numbers")
		}
		switch op.Op {
		case contentstream.OpMoveTo:
			r.path.MoveTo(v[0], v[1])
		case contentstream.OpLineTo:
			r.path.LineTo(v[0], v[1])
		case contentstream.OpCurveTo:
			r.path.CurveTo(v[0], v[1], v[2], v[3], v[4], v[5])
		case contentstream.OpCurveToV:
			r.path.CurveToV(v[0], v[1], v[2], v[3])
		case contentstream.OpCurveToY:
			r.path.CurveToY(v[0], v[1], v[2], v[3])
		default:
			r.path.Rectangle(v[0], v[1], v[2], v[3])
		}
	case contentstream.OpClosePath:
		r.path.ClosePath()

	// path painting
	case contentstream.OpCloseStroke, contentstream.OpCloseFillStroke, contentstream.OpCloseFillStrokeEvenOdd,
		contentstream.OpStroke, contentstream.OpFill, contentstream.OpFillObsolete,
		contentstream.OpFillEvenOdd, contentstream.OpFillStroke, contentstream.OpFillStrokeEvenOdd,
		contentstream.OpEndPath:
		if r.path.IsEmpty() {
			// a pending W is dropped with the missing path
			gs.Clip.ApplyPending(r.path, gs.CTM)
			r.structural(op, depth, "painting without a path")
			return true, nil
		}
		switch op.Op {
		case contentstream.OpCloseStroke, contentstream.OpCloseFillStroke, contentstream.OpCloseFillStrokeEvenOdd:
			r.path.ClosePath()
		}
		gs.Clip.ApplyPending(r.path, gs.CTM)

	// clipping
	case contentstream.OpClip:
		gs.Clip.SetPending(false)
	case contentstream.OpClipEvenOdd:
		gs.Clip.SetPending(true)

	// text objects
	case contentstream.OpBeginText:
		if r.inText {
			r.structural(op, depth, "BT inside a text object")
		}
		r.inText = true
		gs.BeginText()
	case contentstream.OpEndText:
		if !r.inText {
			r.structural(op, depth, "ET without BT")
			return true, nil
		}
		r.inText = false

	// text state
	case contentstream.OpCharSpacing, contentstream.OpWordSpacing, contentstream.OpHorizontalScaling,
		contentstream.OpLeading, contentstream.OpRise:
		v, ok := core.ToFloat(args[0])
		if !ok {
			return bad("expected a number")
		}
		switch op.Op {
		case contentstream.OpCharSpacing:
			gs.Text.CharSpacing = v
		case contentstream.OpWordSpacing:
			gs.Text.WordSpacing = v
		case contentstream.OpHorizontalScaling:
			gs.Text.HorizontalScaling = v
		case contentstream.OpLeading:
			gs.Text.Leading = v
		default:
			gs.Text.Rise = v
		}
	case contentstream.OpRenderMode:
		v, ok := core.ToInt(args[0])
		if !ok {
			return bad("expected an integer")
		}
		gs.Text.RenderingMode = v
	case contentstream.OpFont:
		n, okName := args[0].(core.Name)
		size, okSize := core.ToFloat(args[1])
		if !okName || !okSize {
			return bad("Tf needs a font name and a size")
		}
		metrics, err := res.Font(string(n))
		if err != nil {
			r.warn(depth, op.Operator, op.Offset, err)
			metrics = fallbackFont
		}
		gs.SetFont(string(n), metrics, size)

	// text positioning
	case contentstream.OpMoveText, contentstream.OpMoveTextLeading:
		v, ok := numbers(args)
		if !ok {
			return bad("expected two numbers")
		}
		if op.Op == contentstream.OpMoveText {
			gs.TranslateText(v[0], v[1])
		} else {
			gs.TranslateTextSetLeading(v[0], v[1])
		}
	case contentstream.OpTextMatrix:
		m, ok := matrixOf(args)
		if !ok {
			return bad("Tm needs six numbers")
		}
		gs.SetTextMatrix(m)
	case contentstream.OpNextLine:
		gs.NextLine()

	// text showing
	case contentstream.OpShowText, contentstream.OpNextLineShowText:
		if _, ok := args[0].(core.String); !ok {
			return bad("expected a string")
		}
		if op.Op == contentstream.OpNextLineShowText {
			gs.NextLine()
		}
	case contentstream.OpShowTextArray:
		if _, ok := args[0].(core.Array); !ok {
			return bad("expected an array")
		}
	case contentstream.OpNextLineShowTextSpacing:
		tw, ok1 := core.ToFloat(args[0])
		tc, ok2 := core.ToFloat(args[1])
		_, ok3 := args[2].(core.String)
		if !ok1 || !ok2 || !ok3 {
			return bad("expected two numbers and a string")
		}
		gs.Text.WordSpacing = tw
		gs.Text.CharSpacing = tc
		gs.NextLine()

	// Type 3 glyph metrics
	case contentstream.OpType3Width, contentstream.OpType3WidthBBox:
		if _, ok := numbers(args); !ok {
			return bad("expected numbers")
		}

	// colour
	case contentstream.OpStrokeColorSpace, contentstream.OpFillColorSpace:
		n, ok := args[0].(core.Name)
		if !ok {
			return bad("expected a name")
		}
		c := initialColor(string(n))
		if op.Op == contentstream.OpStrokeColorSpace {
			gs.StrokeColor = c
		} else {
			gs.FillColor = c
		}
	case contentstream.OpStrokeColor, contentstream.OpStrokeColorN,
		contentstream.OpFillColor, contentstream.OpFillColorN:
		var comps []float64
		for _, o := range args {
			if v, ok := core.ToFloat(o); ok {
				comps = append(comps, v)
			}
		}
		if op.Op == contentstream.OpStrokeColor || op.Op == contentstream.OpStrokeColorN {
			gs.StrokeColor.Components = comps
		} else {
			gs.FillColor.Components = comps
		}
	case contentstream.OpStrokeGray, contentstream.OpFillGray,
		contentstream.OpStrokeRGB, contentstream.OpFillRGB,
		contentstream.OpStrokeCMYK, contentstream.OpFillCMYK:
		v, ok := numbers(args)
		if !ok {
			return bad("expected numbers")
		}
		c := graphicsstate.Color{Space: deviceSpace(len(v)), Components: v}
		switch op.Op {
		case contentstream.OpStrokeGray, contentstream.OpStrokeRGB, contentstream.OpStrokeCMYK:
			gs.StrokeColor = c
		default:
			gs.FillColor = c
		}

	// external objects
	case contentstream.OpXObject:
		n, ok := args[0].(core.Name)
		if !ok {
			return bad("expected a name")
		}
		x, err := res.XObject(string(n))
		if err != nil {
			r.warn(depth, op.Operator, op.Offset, err)
			return true, nil
		}
		ev.XObject = x

	// marked content
	case contentstream.OpBeginMarked, contentstream.OpBeginMarkedProps:
		r.markedDepth++
	case contentstream.OpEndMarked:
		if r.markedDepth == 0 {
			r.structural(op, depth, "EMC without BMC or BDC")
			return true, nil
		}
		r.markedDepth--

	// compatibility
	case contentstream.OpBeginCompat:
		gs.Compatibility++
	case contentstream.OpEndCompat:
		if gs.Compatibility == 0 {
			r.structural(op, depth, "EX without BX")
			return true, nil
		}
		gs.Compatibility--
	}
	return false, nil
}

// show dispatches a text-showing operator and advances the text matrix by
// the returned displacement
func (r *run) show(ev *Event, depth int) error {
	gs := r.stack.Top()
	if !r.inText {
		r.warn(depth, ev.Name, ev.Offset, &StructuralError{Operator: ev.Name, Offset: ev.Offset, Msg: "text shown outside BT/ET"})
	}
	if gs.Text.Font == nil {
		r.warn(depth, ev.Name, ev.Offset, &StructuralError{Operator: ev.Name, Offset: ev.Offset, Msg: "text shown before Tf"})
		return nil
	}
	d, err := r.dispatch(ev)
	if err != nil {
		return err
	}
	gs.AdvanceText(d)
	return nil
}

// runForm interprets a form XObject with its own matrix, clip and
// resources, inside a q/Q pair
func (r *run) runForm(f *Form, res Resources, depth int, op *contentstream.Operation) error {
	limit := r.a.MaxFormDepth
	if limit <= 0 {
		limit = DefaultMaxFormDepth
	}
	if depth+1 > limit {
		r.warn(depth, op.Operator, op.Offset, ErrFormDepth)
		return nil
	}

	gs := r.stack.Push()
	if f.Matrix != (model.Matrix{}) {
		gs.Concat(f.Matrix)
	}
	if f.BBox.IsValid() {
		gs.Clip.IntersectRect(f.BBox.Transform(gs.CTM))
	}

	savedPath, savedText, savedFloor, savedMarked := r.path, r.inText, r.floor, r.markedDepth
	formFloor := r.stack.Depth()
	r.path = graphicsstate.NewPath()
	r.inText = false
	r.floor = formFloor
	r.markedDepth = 0

	err := r.interpret(f.Content, Layered(res, f.Resources), depth+1)

	r.path, r.inText, r.floor, r.markedDepth = savedPath, savedText, savedFloor, savedMarked
	for r.stack.Depth() >= formFloor {
		if perr := r.stack.Pop(); perr != nil {
			break
		}
	}
	return err
}
