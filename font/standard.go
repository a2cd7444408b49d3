package font

import "strings"

// standardFace holds the built-in metrics of one of the standard 14 fonts.
// Widths are in glyph units (1000 per em), keyed by Unicode.
type standardFace struct {
	widths   map[rune]float64
	ascent   float64
	descent  float64
	encoding string
}

var standardFaces = map[string]standardFace{
	"Helvetica":             {helveticaWidths, 718, -207, "StandardEncoding"},
	"Helvetica-Bold":        {helveticaBoldWidths, 718, -207, "StandardEncoding"},
	"Helvetica-Oblique":     {helveticaWidths, 718, -207, "StandardEncoding"},
	"Helvetica-BoldOblique": {helveticaBoldWidths, 718, -207, "StandardEncoding"},
	"Times-Roman":           {timesWidths, 683, -217, "StandardEncoding"},
	"Times-Bold":            {timesBoldWidths, 683, -217, "StandardEncoding"},
	"Times-Italic":          {timesWidths, 683, -217, "StandardEncoding"},
	"Times-BoldItalic":      {timesBoldWidths, 683, -217, "StandardEncoding"},
	"Courier":               {courierWidths, 629, -157, "StandardEncoding"},
	"Courier-Bold":          {courierWidths, 629, -157, "StandardEncoding"},
	"Courier-Oblique":       {courierWidths, 629, -157, "StandardEncoding"},
	"Courier-BoldOblique":   {courierWidths, 629, -157, "StandardEncoding"},
	"Symbol":                {symbolWidths, 1010, -293, "SymbolEncoding"},
	"ZapfDingbats":          {zapfDingbatsWidths, 820, -143, "ZapfDingbatsEncoding"},
}

// standardAliases maps common alternative names to the standard 14 names
var standardAliases = map[string]string{
	"Arial":                   "Helvetica",
	"Arial,Bold":              "Helvetica-Bold",
	"Arial,Italic":            "Helvetica-Oblique",
	"Arial,BoldItalic":        "Helvetica-BoldOblique",
	"ArialMT":                 "Helvetica",
	"Arial-BoldMT":            "Helvetica-Bold",
	"TimesNewRoman":           "Times-Roman",
	"TimesNewRoman,Bold":      "Times-Bold",
	"TimesNewRoman,Italic":    "Times-Italic",
	"TimesNewRomanPSMT":       "Times-Roman",
	"TimesNewRomanPS-BoldMT":  "Times-Bold",
	"CourierNew":              "Courier",
	"CourierNew,Bold":         "Courier-Bold",
	"CourierNewPSMT":          "Courier",
	"CourierNewPS-BoldMT":     "Courier-Bold",
}

// lookupStandard finds the standard face for a base font name. Subset
// prefixes ("ABCDEF+") and alias spellings are accepted.
func lookupStandard(baseFont string) (standardFace, bool) {
	name := stripSubsetPrefix(baseFont)
	if alias, ok := standardAliases[name]; ok {
		name = alias
	}
	face, ok := standardFaces[name]
	return face, ok
}

// IsStandardFont reports whether baseFont names one of the standard 14 fonts
func IsStandardFont(baseFont string) bool {
	_, ok := lookupStandard(baseFont)
	return ok
}

// stripSubsetPrefix removes a six capital letter subset tag
func stripSubsetPrefix(name string) string {
	if len(name) > 7 && name[6] == '+' && strings.ToUpper(name[:6]) == name[:6] {
		return name[7:]
	}
	return name
}

// Helvetica widths (in 1000ths of em) - simplified version
// Only includes common ASCII characters
var helveticaWidths = map[rune]float64{
	' ':  278,
	'!':  278,
	'"':  355,
	'#':  556,
	'$':  556,
	'%':  889,
	'&':  667,
	'\'': 191,
	'(':  333,
	')':  333,
	'*':  389,
	'+':  584,
	',':  278,
	'-':  333,
	'.':  278,
	'/':  278,
	'0':  556,
	'1':  556,
	'2':  556,
	'3':  556,
	'4':  556,
	'5':  556,
	'6':  556,
	'7':  556,
	'8':  556,
	'9':  556,
	':':  278,
	';':  278,
	'<':  584,
	'=':  584,
	'>':  584,
	'?':  556,
	'@':  1015,
	'A':  667,
	'B':  667,
	'C':  722,
	'D':  722,
	'E':  667,
	'F':  611,
	'G':  778,
	'H':  722,
	'I':  278,
	'J':  500,
	'K':  667,
	'L':  556,
	'M':  833,
	'N':  722,
	'O':  778,
	'P':  667,
	'Q':  778,
	'R':  722,
	'S':  667,
	'T':  611,
	'U':  722,
	'V':  667,
	'W':  944,
	'X':  667,
	'Y':  667,
	'Z':  611,
	'[':  278,
	'\\': 278,
	']':  278,
	'^':  469,
	'_':  556,
	'`':  333,
	'a':  556,
	'b':  556,
	'c':  500,
	'd':  556,
	'e':  556,
	'f':  278,
	'g':  556,
	'h':  556,
	'i':  222,
	'j':  222,
	'k':  500,
	'l':  222,
	'm':  833,
	'n':  556,
	'o':  556,
	'p':  556,
	'q':  556,
	'r':  333,
	's':  500,
	't':  278,
	'u':  556,
	'v':  500,
	'w':  722,
	'x':  500,
	'y':  500,
	'z':  500,
	'{':  334,
	'|':  260,
	'}':  334,
	'~':  584,
}

// Helvetica-Bold widths (simplified)
var helveticaBoldWidths = map[rune]float64{
	' ': 278,
	'A': 722,
	'B': 722,
	'C': 722,
	'D': 722,
	'E': 667,
	'F': 611,
	'G': 778,
	'H': 722,
	'I': 278,
	'J': 556,
	'K': 722,
	'L': 611,
	'M': 833,
	'N': 722,
	'O': 778,
	'P': 667,
	'Q': 778,
	'R': 722,
	'S': 667,
	'T': 611,
	'U': 722,
	'V': 667,
	'W': 944,
	'X': 667,
	'Y': 667,
	'Z': 611,
	'a': 556,
	'b': 611,
	'c': 556,
	'd': 611,
	'e': 556,
	'f': 333,
	'g': 611,
	'h': 611,
	'i': 278,
	'j': 278,
	'k': 556,
	'l': 278,
	'm': 889,
	'n': 611,
	'o': 611,
	'p': 611,
	'q': 611,
	'r': 389,
	's': 556,
	't': 333,
	'u': 611,
	'v': 556,
	'w': 778,
	'x': 556,
	'y': 556,
	'z': 500,
}

// Times-Roman widths (simplified)
var timesWidths = map[rune]float64{
	' ': 250,
	'A': 722,
	'B': 667,
	'C': 667,
	'D': 722,
	'E': 611,
	'F': 556,
	'G': 722,
	'H': 722,
	'I': 333,
	'J': 389,
	'K': 722,
	'L': 611,
	'M': 889,
	'N': 722,
	'O': 722,
	'P': 556,
	'Q': 722,
	'R': 667,
	'S': 556,
	'T': 611,
	'U': 722,
	'V': 722,
	'W': 944,
	'X': 722,
	'Y': 722,
	'Z': 611,
	'a': 444,
	'b': 500,
	'c': 444,
	'd': 500,
	'e': 444,
	'f': 333,
	'g': 500,
	'h': 500,
	'i': 278,
	'j': 278,
	'k': 500,
	'l': 278,
	'm': 778,
	'n': 500,
	'o': 500,
	'p': 500,
	'q': 500,
	'r': 333,
	's': 389,
	't': 278,
	'u': 500,
	'v': 500,
	'w': 722,
	'x': 500,
	'y': 500,
	'z': 444,
}

// Times-Bold widths (simplified)
var timesBoldWidths = map[rune]float64{
	' ': 250,
	'A': 722,
	'B': 667,
	'C': 722,
	'D': 722,
	'E': 667,
	'F': 611,
	'G': 778,
	'H': 778,
	'I': 389,
	'J': 500,
	'K': 778,
	'L': 667,
	'M': 944,
	'N': 722,
	'O': 778,
	'P': 611,
	'Q': 778,
	'R': 722,
	'S': 556,
	'T': 667,
	'U': 722,
	'V': 722,
	'W': 1000,
	'X': 722,
	'Y': 722,
	'Z': 667,
	'a': 500,
	'b': 556,
	'c': 444,
	'd': 556,
	'e': 444,
	'f': 333,
	'g': 500,
	'h': 556,
	'i': 278,
	'j': 333,
	'k': 556,
	'l': 278,
	'm': 833,
	'n': 556,
	'o': 500,
	'p': 556,
	'q': 556,
	'r': 444,
	's': 389,
	't': 333,
	'u': 556,
	'v': 500,
	'w': 722,
	'x': 500,
	'y': 500,
	'z': 444,
}

// Courier widths (monospaced)
var courierWidths = map[rune]float64{}

// Symbol widths
var symbolWidths = map[rune]float64{}

// ZapfDingbats widths
var zapfDingbatsWidths = map[rune]float64{}

func init() {
	// Courier is monospaced - all characters have same width
	for r := rune(32); r <= 126; r++ {
		courierWidths[r] = 600
	}

	for r := rune(32); r <= 126; r++ {
		symbolWidths[r] = 500
		zapfDingbatsWidths[r] = 500
	}

	// the bold tables only list letters; borrow the rest from the regular face
	for r, w := range helveticaWidths {
		if _, ok := helveticaBoldWidths[r]; !ok {
			helveticaBoldWidths[r] = w
		}
	}
	for r, w := range timesWidths {
		if _, ok := timesBoldWidths[r]; !ok {
			timesBoldWidths[r] = w
		}
	}
}
