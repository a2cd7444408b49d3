package contentstream

import "fmt"

// Category groups content stream operators by what they act on
type Category int

const (
	CategoryGeneralGraphicsState Category = iota
	CategorySpecialGraphicsState
	CategoryPathConstruction
	CategoryPathPainting
	CategoryClippingPaths
	CategoryTextObjects
	CategoryTextState
	CategoryTextPositioning
	CategoryTextShowing
	CategoryType3Fonts
	CategoryColor
	CategoryShadingPatterns
	CategoryXObjects
	CategoryInlineImages
	CategoryMarkedContent
	CategoryCompatibility
	CategoryUnknown

	categoryCount
)

var categoryNames = [...]string{
	CategoryGeneralGraphicsState: "GeneralGraphicsState",
	CategorySpecialGraphicsState: "SpecialGraphicsState",
	CategoryPathConstruction:     "PathConstruction",
	CategoryPathPainting:         "PathPainting",
	CategoryClippingPaths:        "ClippingPaths",
	CategoryTextObjects:          "TextObjects",
	CategoryTextState:            "TextState",
	CategoryTextPositioning:      "TextPositioning",
	CategoryTextShowing:          "TextShowing",
	CategoryType3Fonts:           "Type3Fonts",
	CategoryColor:                "Color",
	CategoryShadingPatterns:      "ShadingPatterns",
	CategoryXObjects:             "XObjects",
	CategoryInlineImages:         "InlineImages",
	CategoryMarkedContent:        "MarkedContent",
	CategoryCompatibility:        "Compatibility",
	CategoryUnknown:              "Unknown",
}

// String returns the category name
func (c Category) String() string {
	if c < 0 || c >= categoryCount {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Op identifies a content stream operator
type Op int

const (
	OpLineWidth Op = iota
	OpLineCap
	OpLineJoin
	OpMiterLimit
	OpDash
	OpRenderingIntent
	OpFlatness
	OpExtGState

	OpSave
	OpRestore
	OpConcat

	OpMoveTo
	OpLineTo
	OpCurveTo
	OpCurveToV
	OpCurveToY
	OpClosePath
	OpRectangle

	OpStroke
	OpCloseStroke
	OpFill
	OpFillObsolete
	OpFillEvenOdd
	OpFillStroke
	OpFillStrokeEvenOdd
	OpCloseFillStroke
	OpCloseFillStrokeEvenOdd
	OpEndPath

	OpClip
	OpClipEvenOdd

	OpBeginText
	OpEndText

	OpCharSpacing
	OpWordSpacing
	OpHorizontalScaling
	OpLeading
	OpFont
	OpRenderMode
	OpRise

	OpMoveText
	OpMoveTextLeading
	OpTextMatrix
	OpNextLine

	OpShowText
	OpShowTextArray
	OpNextLineShowText
	OpNextLineShowTextSpacing

	OpType3Width
	OpType3WidthBBox

	OpStrokeColorSpace
	OpFillColorSpace
	OpStrokeColor
	OpStrokeColorN
	OpFillColor
	OpFillColorN
	OpStrokeGray
	OpFillGray
	OpStrokeRGB
	OpFillRGB
	OpStrokeCMYK
	OpFillCMYK

	OpShading

	OpXObject

	OpBeginInlineImage
	OpInlineImageData
	OpEndInlineImage

	OpMarkPoint
	OpMarkPointProps
	OpBeginMarked
	OpBeginMarkedProps
	OpEndMarked

	OpBeginCompat
	OpEndCompat

	OpUnknown

	opCount
)

// variadic marks operators that take a variable number of operands
const variadic = -1

type opInfo struct {
	name     string
	category Category
	arity    int
}

var opTable = [...]opInfo{
	OpLineWidth:       {"w", CategoryGeneralGraphicsState, 1},
	OpLineCap:         {"J", CategoryGeneralGraphicsState, 1},
	OpLineJoin:        {"j", CategoryGeneralGraphicsState, 1},
	OpMiterLimit:      {"M", CategoryGeneralGraphicsState, 1},
	OpDash:            {"d", CategoryGeneralGraphicsState, 2},
	OpRenderingIntent: {"ri", CategoryGeneralGraphicsState, 1},
	OpFlatness:        {"i", CategoryGeneralGraphicsState, 1},
	OpExtGState:       {"gs", CategoryGeneralGraphicsState, 1},

	OpSave:    {"q", CategorySpecialGraphicsState, 0},
	OpRestore: {"Q", CategorySpecialGraphicsState, 0},
	OpConcat:  {"cm", CategorySpecialGraphicsState, 6},

	OpMoveTo:    {"m", CategoryPathConstruction, 2},
	OpLineTo:    {"l", CategoryPathConstruction, 2},
	OpCurveTo:   {"c", CategoryPathConstruction, 6},
	OpCurveToV:  {"v", CategoryPathConstruction, 4},
	OpCurveToY:  {"y", CategoryPathConstruction, 4},
	OpClosePath: {"h", CategoryPathConstruction, 0},
	OpRectangle: {"re", CategoryPathConstruction, 4},

	OpStroke:                 {"S", CategoryPathPainting, 0},
	OpCloseStroke:            {"s", CategoryPathPainting, 0},
	OpFill:                   {"f", CategoryPathPainting, 0},
	OpFillObsolete:           {"F", CategoryPathPainting, 0},
	OpFillEvenOdd:            {"f*", CategoryPathPainting, 0},
	OpFillStroke:             {"B", CategoryPathPainting, 0},
	OpFillStrokeEvenOdd:      {"B*", CategoryPathPainting, 0},
	OpCloseFillStroke:        {"b", CategoryPathPainting, 0},
	OpCloseFillStrokeEvenOdd: {"b*", CategoryPathPainting, 0},
	OpEndPath:                {"n", CategoryPathPainting, 0},

	OpClip:        {"W", CategoryClippingPaths, 0},
	OpClipEvenOdd: {"W*", CategoryClippingPaths, 0},

	OpBeginText: {"BT", CategoryTextObjects, 0},
	OpEndText:   {"ET", CategoryTextObjects, 0},

	OpCharSpacing:       {"Tc", CategoryTextState, 1},
	OpWordSpacing:       {"Tw", CategoryTextState, 1},
	OpHorizontalScaling: {"Tz", CategoryTextState, 1},
	OpLeading:           {"TL", CategoryTextState, 1},
	OpFont:              {"Tf", CategoryTextState, 2},
	OpRenderMode:        {"Tr", CategoryTextState, 1},
	OpRise:              {"Ts", CategoryTextState, 1},

	OpMoveText:        {"Td", CategoryTextPositioning, 2},
	OpMoveTextLeading: {"TD", CategoryTextPositioning, 2},
	OpTextMatrix:      {"Tm", CategoryTextPositioning, 6},
	OpNextLine:        {"T*", CategoryTextPositioning, 0},

	OpShowText:                {"Tj", CategoryTextShowing, 1},
	OpShowTextArray:           {"TJ", CategoryTextShowing, 1},
	OpNextLineShowText:        {"'", CategoryTextShowing, 1},
	OpNextLineShowTextSpacing: {"\"", CategoryTextShowing, 3},

	OpType3Width:     {"d0", CategoryType3Fonts, 2},
	OpType3WidthBBox: {"d1", CategoryType3Fonts, 6},

	OpStrokeColorSpace: {"CS", CategoryColor, 1},
	OpFillColorSpace:   {"cs", CategoryColor, 1},
	OpStrokeColor:      {"SC", CategoryColor, variadic},
	OpStrokeColorN:     {"SCN", CategoryColor, variadic},
	OpFillColor:        {"sc", CategoryColor, variadic},
	OpFillColorN:       {"scn", CategoryColor, variadic},
	OpStrokeGray:       {"G", CategoryColor, 1},
	OpFillGray:         {"g", CategoryColor, 1},
	OpStrokeRGB:        {"RG", CategoryColor, 3},
	OpFillRGB:          {"rg", CategoryColor, 3},
	OpStrokeCMYK:       {"K", CategoryColor, 4},
	OpFillCMYK:         {"k", CategoryColor, 4},

	OpShading: {"sh", CategoryShadingPatterns, 1},

	OpXObject: {"Do", CategoryXObjects, 1},

	OpBeginInlineImage: {"BI", CategoryInlineImages, 0},
	OpInlineImageData:  {"ID", CategoryInlineImages, variadic},
	OpEndInlineImage:   {"EI", CategoryInlineImages, 0},

	OpMarkPoint:        {"MP", CategoryMarkedContent, 1},
	OpMarkPointProps:   {"DP", CategoryMarkedContent, 2},
	OpBeginMarked:      {"BMC", CategoryMarkedContent, 1},
	OpBeginMarkedProps: {"BDC", CategoryMarkedContent, 2},
	OpEndMarked:        {"EMC", CategoryMarkedContent, 0},

	OpBeginCompat: {"BX", CategoryCompatibility, 0},
	OpEndCompat:   {"EX", CategoryCompatibility, 0},

	OpUnknown: {"", CategoryUnknown, variadic},
}

var opByName map[string]Op

func init() {
	if len(categoryNames) != int(categoryCount) {
		panic(fmt.Sprintf("contentstream: %d category names for %d categories", len(categoryNames), categoryCount))
	}
	if len(opTable) != int(opCount) {
		panic(fmt.Sprintf("contentstream: %d operator entries for %d operators", len(opTable), opCount))
	}

	opByName = make(map[string]Op, int(OpUnknown))
	for i, info := range opTable {
		op := Op(i)
		if op == OpUnknown {
			continue
		}
		if info.name == "" {
			panic(fmt.Sprintf("contentstream: operator %d has no name", i))
		}
		if _, dup := opByName[info.name]; dup {
			panic(fmt.Sprintf("contentstream: duplicate operator %q", info.name))
		}
		if info.category == CategoryUnknown {
			panic(fmt.Sprintf("contentstream: operator %q has no category", info.name))
		}
		opByName[info.name] = op
	}
}

// LookupOp returns the operator with the given name, or OpUnknown
func LookupOp(name string) Op {
	if op, ok := opByName[name]; ok {
		return op
	}
	return OpUnknown
}

// OpCount returns the number of known operators, OpUnknown excluded
func OpCount() int {
	return int(OpUnknown)
}

// Category returns the category the operator belongs to
func (op Op) Category() Category {
	if op < 0 || op >= opCount {
		return CategoryUnknown
	}
	return opTable[op].category
}

// Arity returns the number of operands the operator takes, or -1 when the
// count varies.
func (op Op) Arity() int {
	if op < 0 || op >= opCount {
		return variadic
	}
	return opTable[op].arity
}

// String returns the operator as it appears in a content stream
func (op Op) String() string {
	if op == OpUnknown {
		return "?"
	}
	if op < 0 || op >= opCount {
		return fmt.Sprintf("Op(%d)", int(op))
	}
	return opTable[op].name
}

// IsTextShowing reports whether the operator paints glyphs
func (op Op) IsTextShowing() bool {
	return op.Category() == CategoryTextShowing
}
