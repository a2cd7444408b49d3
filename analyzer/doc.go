// Package analyzer interprets page content streams.
//
// An [Analyzer] walks the operators of a [Canvas], applies each operator to
// a graphics state stack and then calls the [Handlers] hook for the
// operator's category. Form XObjects are interpreted recursively inside an
// implicit q/Q pair with their own matrix, clip and resources.
//
//	a := analyzer.New(analyzer.Handlers{
//		TextShowing: func(ev *analyzer.Event) (model.Point, error) {
//			gs := ev.State()
//			// inspect gs.TextRenderingMatrix(), ev.Operands ...
//			return analyzer.TextDisplacement(gs.Text, ev.Operands)
//		},
//	})
//	warnings, err := a.Analyze(ctx, canvas, nil, nil)
//
// Problems a reader can recover from (unknown operators, misplaced ET,
// missing resources, malformed operands of most operators) are returned as
// warnings. Q without q, malformed transforms and text positioning, and
// handler errors stop the analysis.
package analyzer
