package text

import "unicode"

// Direction is the writing direction of a run of text
type Direction int

const (
	LTR Direction = iota
	RTL
	// Neutral text has no strong characters (digits, punctuation, spaces)
	Neutral
)

func (d Direction) String() string {
	switch d {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// DetectDirection returns the direction with more strong characters, or
// Neutral when there are none
func DetectDirection(text string) Direction {
	ltr, rtl := 0, 0
	for _, r := range text {
		switch CharDirection(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	switch {
	case ltr == 0 && rtl == 0:
		return Neutral
	case rtl > ltr:
		return RTL
	}
	return LTR
}

// CharDirection returns the direction of a single character. Only letters
// are strong.
func CharDirection(r rune) Direction {
	if !unicode.IsLetter(r) {
		return Neutral
	}
	if unicode.In(r, rtlScripts...) {
		return RTL
	}
	return LTR
}
