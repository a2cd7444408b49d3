package font

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// Encoding maps single-byte character codes to text
type Encoding [256]string

// standardHigh lists the StandardEncoding codes above 0x7F
var standardHigh = map[byte]rune{
	0xA1: '¡', 0xA2: '¢', 0xA3: '£', 0xA4: '⁄', 0xA5: '¥', 0xA6: 'ƒ', 0xA7: '§',
	0xA8: '¤', 0xA9: '\'', 0xAA: '“', 0xAB: '«', 0xAC: '‹', 0xAD: '›', 0xAE: 'ﬁ',
	0xAF: 'ﬂ', 0xB1: '–', 0xB2: '†', 0xB3: '‡', 0xB4: '·', 0xB6: '¶', 0xB7: '•',
	0xB8: '‚', 0xB9: '„', 0xBA: '”', 0xBB: '»', 0xBC: '…', 0xBD: '‰', 0xBF: '¿',
	0xC1: '`', 0xC2: '´', 0xC3: 'ˆ', 0xC4: '˜', 0xC5: '¯', 0xC6: '˘', 0xC7: '˙',
	0xC8: '¨', 0xCA: '˚', 0xCB: '¸', 0xCD: '˝', 0xCE: '˛', 0xCF: 'ˇ', 0xD0: '—',
	0xE1: 'Æ', 0xE3: 'ª', 0xE8: 'Ł', 0xE9: 'Ø', 0xEA: 'Œ', 0xEB: 'º', 0xF1: 'æ',
	0xF5: 'ı', 0xF8: 'ł', 0xF9: 'ø', 0xFA: 'œ', 0xFB: 'ß',
}

// GetEncoding returns the base encoding with the given name. Unknown names
// fall back to WinAnsiEncoding.
func GetEncoding(name string) Encoding {
	var enc Encoding
	switch name {
	case "StandardEncoding", "MacExpertEncoding":
		for c := 0x20; c < 0x7F; c++ {
			enc[c] = string(rune(c))
		}
		enc[0x27] = "’"
		enc[0x60] = "‘"
		for c, r := range standardHigh {
			enc[c] = string(r)
		}
	case "MacRomanEncoding":
		fillCharmap(&enc, charmap.Macintosh)
	default:
		fillCharmap(&enc, charmap.Windows1252)
	}
	return enc
}

func fillCharmap(enc *Encoding, cm *charmap.Charmap) {
	for c := 0x20; c < 256; c++ {
		r := cm.DecodeByte(byte(c))
		if r == '�' || r == 0x7F {
			continue
		}
		enc[c] = string(r)
	}
}

// ApplyDifferences overrides codes with the text of the given glyph names.
// Names that cannot be resolved leave the code unmapped.
func (e *Encoding) ApplyDifferences(diffs map[int]string) {
	for code, name := range diffs {
		if code < 0 || code > 255 {
			continue
		}
		e[code] = GlyphText(name)
	}
}

var glyphNames = map[string]string{
	"space": " ", "exclam": "!", "quotedbl": "\"", "numbersign": "#", "dollar": "$",
	"percent": "%", "ampersand": "&", "quotesingle": "'", "quoteright": "’",
	"quoteleft": "‘", "parenleft": "(", "parenright": ")", "asterisk": "*",
	"plus": "+", "comma": ",", "hyphen": "-", "period": ".", "slash": "/",
	"zero": "0", "one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "colon": ":",
	"semicolon": ";", "less": "<", "equal": "=", "greater": ">", "question": "?",
	"at": "@", "bracketleft": "[", "backslash": "\\", "bracketright": "]",
	"asciicircum": "^", "underscore": "_", "grave": "`", "braceleft": "{",
	"bar": "|", "braceright": "}", "asciitilde": "~", "bullet": "•",
	"endash": "–", "emdash": "—", "quotedblleft": "“", "quotedblright": "”",
	"quotesinglbase": "‚", "quotedblbase": "„", "ellipsis": "…", "fi": "fi",
	"fl": "fl", "ff": "ff", "ffi": "ffi", "ffl": "ffl", "dagger": "†",
	"daggerdbl": "‡", "periodcentered": "·", "section": "§", "paragraph": "¶",
	"copyright": "©", "registered": "®", "trademark": "™", "degree": "°",
	"minus": "−", "multiply": "×", "divide": "÷", "nbspace": " ",
	"nonbreakingspace": " ", "germandbls": "ß", "ae": "æ", "AE": "Æ",
	"oe": "œ", "OE": "Œ", "oslash": "ø", "Oslash": "Ø", "dotlessi": "ı",
	"lslash": "ł", "Lslash": "Ł", "guillemotleft": "«", "guillemotright": "»",
	"guilsinglleft": "‹", "guilsinglright": "›", "sterling": "£", "yen": "¥",
	"Euro": "€", "cent": "¢", "florin": "ƒ", "perthousand": "‰",
	"exclamdown": "¡", "questiondown": "¿", "tab": "\t",
}

// combining marks used by accented glyph names such as "eacute"
var accentMarks = []struct {
	suffix string
	mark   rune
}{
	{"circumflex", '̂'},
	{"dieresis", '̈'},
	{"cedilla", '̧'},
	{"acute", '́'},
	{"grave", '̀'},
	{"tilde", '̃'},
	{"caron", '̌'},
	{"ring", '̊'},
}

// GlyphText returns the text for a glyph name, or "" if unknown
func GlyphText(name string) string {
	if i := strings.IndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	if s, ok := glyphNames[name]; ok {
		return s
	}
	if len(name) == 1 {
		return name
	}
	if strings.HasPrefix(name, "uni") && len(name) == 7 {
		if v, err := strconv.ParseUint(name[3:], 16, 32); err == nil {
			return string(rune(v))
		}
	}
	if strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7 {
		if v, err := strconv.ParseUint(name[1:], 16, 32); err == nil && v < 0x110000 {
			return string(rune(v))
		}
	}
	for _, a := range accentMarks {
		base, ok := strings.CutSuffix(name, a.suffix)
		if ok && len(base) == 1 {
			return norm.NFC.String(base + string(a.mark))
		}
	}
	return ""
}
