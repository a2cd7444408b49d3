package font

import (
	"fmt"
	"sort"

	"golang.org/x/text/encoding/unicode"

	"github.com/tsawler/textlines/contentstream"
	"github.com/tsawler/textlines/core"
)

// CMap maps character codes to Unicode text and to CIDs. A CMap with
// codespace ranges also splits byte strings into codes.
type CMap struct {
	Name string

	codespace []codespaceRange
	unicode   map[uint32]string
	bfRanges  []bfRange
	cids      map[uint32]uint32
	cidRanges []cidRange
}

type codespaceRange struct {
	lo, hi uint32
	nbytes int
}

// bfRange maps lo..hi either to consecutive code points starting at base,
// or element by element to dst
type bfRange struct {
	lo, hi uint32
	base   []rune
	dst    []string
}

type cidRange struct {
	lo, hi, cid uint32
}

// maximum number of syntax errors tolerated before giving up on a CMap
const maxCMapErrors = 64

var utf16be = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

// NewCMap creates an empty CMap
func NewCMap() *CMap {
	return &CMap{
		unicode: make(map[uint32]string),
		cids:    make(map[uint32]uint32),
	}
}

// ParseCMap parses the body of a CMap stream. Sections that fail to parse are
// skipped; the error reports the first problem and the returned CMap holds
// everything that could be read.
func ParseCMap(data []byte) (*CMap, error) {
	cm := NewCMap()
	tok := contentstream.NewTokenizer(data)

	var (
		operands []core.Object
		firstErr error
		errCount int
	)
	for {
		t, err := tok.Next()
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("cmap: %w", err)
			}
			errCount++
			if errCount > maxCMapErrors {
				break
			}
			continue
		}
		if t.Kind == contentstream.TokenEndOfStream {
			break
		}
		if t.Kind == contentstream.TokenOperand {
			operands = append(operands, t.Object)
			continue
		}

		switch t.Text {
		case "def":
			if len(operands) == 2 {
				if key, ok := operands[0].(core.Name); ok && key == "CMapName" {
					if n, ok := operands[1].(core.Name); ok {
						cm.Name = string(n)
					}
				}
			}
		case "endcodespacerange":
			cm.addCodespace(operands)
		case "endbfchar":
			cm.addBfChars(operands)
		case "endbfrange":
			cm.addBfRanges(operands)
		case "endcidchar":
			cm.addCIDChars(operands)
		case "endcidrange":
			cm.addCIDRanges(operands)
		}
		operands = operands[:0]
	}

	sort.Slice(cm.codespace, func(i, j int) bool {
		return cm.codespace[i].nbytes < cm.codespace[j].nbytes
	})
	return cm, firstErr
}

func codeOf(obj core.Object) (uint32, int, bool) {
	s, ok := obj.(core.String)
	if !ok || len(s) == 0 || len(s) > 4 {
		return 0, 0, false
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		v = v<<8 | uint32(s[i])
	}
	return v, len(s), true
}

func (cm *CMap) addCodespace(ops []core.Object) {
	for i := 0; i+1 < len(ops); i += 2 {
		lo, n, ok1 := codeOf(ops[i])
		hi, _, ok2 := codeOf(ops[i+1])
		if ok1 && ok2 && lo <= hi {
			cm.codespace = append(cm.codespace, codespaceRange{lo: lo, hi: hi, nbytes: n})
		}
	}
}

// unicodeOf decodes a bfchar destination: UTF-16BE bytes or a glyph name
func unicodeOf(obj core.Object) (string, bool) {
	switch v := obj.(type) {
	case core.String:
		s, err := utf16be.NewDecoder().String(string(v))
		if err != nil {
			return "", false
		}
		return s, true
	case core.Name:
		s := GlyphText(string(v))
		return s, s != ""
	}
	return "", false
}

func (cm *CMap) addBfChars(ops []core.Object) {
	for i := 0; i+1 < len(ops); i += 2 {
		code, _, ok := codeOf(ops[i])
		if !ok {
			continue
		}
		if s, ok := unicodeOf(ops[i+1]); ok {
			cm.unicode[code] = s
		}
	}
}

func (cm *CMap) addBfRanges(ops []core.Object) {
	for i := 0; i+2 < len(ops); i += 3 {
		lo, _, ok1 := codeOf(ops[i])
		hi, _, ok2 := codeOf(ops[i+1])
		if !ok1 || !ok2 || lo > hi {
			continue
		}
		r := bfRange{lo: lo, hi: hi}
		switch dst := ops[i+2].(type) {
		case core.String:
			s, ok := unicodeOf(dst)
			if !ok || s == "" {
				continue
			}
			r.base = []rune(s)
		case core.Array:
			for _, el := range dst {
				s, _ := unicodeOf(el)
				r.dst = append(r.dst, s)
			}
		default:
			continue
		}
		cm.bfRanges = append(cm.bfRanges, r)
	}
}

func (cm *CMap) addCIDChars(ops []core.Object) {
	for i := 0; i+1 < len(ops); i += 2 {
		code, _, ok := codeOf(ops[i])
		cid, okCID := core.ToInt(ops[i+1])
		if ok && okCID && cid >= 0 {
			cm.cids[code] = uint32(cid)
		}
	}
}

func (cm *CMap) addCIDRanges(ops []core.Object) {
	for i := 0; i+2 < len(ops); i += 3 {
		lo, _, ok1 := codeOf(ops[i])
		hi, _, ok2 := codeOf(ops[i+1])
		cid, ok3 := core.ToInt(ops[i+2])
		if ok1 && ok2 && ok3 && lo <= hi && cid >= 0 {
			cm.cidRanges = append(cm.cidRanges, cidRange{lo: lo, hi: hi, cid: uint32(cid)})
		}
	}
}

// Lookup returns the Unicode text for a character code
func (cm *CMap) Lookup(code uint32) (string, bool) {
	if cm == nil {
		return "", false
	}
	if s, ok := cm.unicode[code]; ok {
		return s, true
	}
	for _, r := range cm.bfRanges {
		if code < r.lo || code > r.hi {
			continue
		}
		off := code - r.lo
		if r.dst != nil {
			if int(off) < len(r.dst) && r.dst[off] != "" {
				return r.dst[off], true
			}
			return "", false
		}
		out := make([]rune, len(r.base))
		copy(out, r.base)
		out[len(out)-1] += rune(off)
		return string(out), true
	}
	return "", false
}

// CID returns the CID selected by a character code
func (cm *CMap) CID(code uint32) (uint32, bool) {
	if cm == nil {
		return 0, false
	}
	if cid, ok := cm.cids[code]; ok {
		return cid, true
	}
	for _, r := range cm.cidRanges {
		if code >= r.lo && code <= r.hi {
			return r.cid + (code - r.lo), true
		}
	}
	return 0, false
}

// HasCodespace reports whether the CMap defines codespace ranges
func (cm *CMap) HasCodespace() bool {
	return cm != nil && len(cm.codespace) > 0
}

// HasCIDs reports whether the CMap maps codes to CIDs
func (cm *CMap) HasCIDs() bool {
	return cm != nil && (len(cm.cids) > 0 || len(cm.cidRanges) > 0)
}

// Codes splits a byte string into character codes using the codespace
// ranges. Bytes that match no range are consumed using the shortest code
// length. Without codespace ranges every byte is one code.
func (cm *CMap) Codes(s []byte) []uint32 {
	codes := make([]uint32, 0, len(s))
	if !cm.HasCodespace() {
		for _, b := range s {
			codes = append(codes, uint32(b))
		}
		return codes
	}

	for i := 0; i < len(s); {
		matched := false
		var v uint32
		n := 0
		for n < 4 && i+n < len(s) {
			v = v<<8 | uint32(s[i+n])
			n++
			if cm.inCodespace(v, n) {
				matched = true
				break
			}
		}
		if !matched {
			n = cm.codespace[0].nbytes
			if i+n > len(s) {
				n = len(s) - i
			}
			v = 0
			for k := 0; k < n; k++ {
				v = v<<8 | uint32(s[i+k])
			}
		}
		codes = append(codes, v)
		i += n
	}
	return codes
}

func (cm *CMap) inCodespace(v uint32, nbytes int) bool {
	for _, r := range cm.codespace {
		if r.nbytes == nbytes && v >= r.lo && v <= r.hi {
			return true
		}
	}
	return false
}

// identityCMap returns the two-byte Identity-H mapping
func identityCMap() *CMap {
	cm := NewCMap()
	cm.Name = "Identity-H"
	cm.codespace = []codespaceRange{{lo: 0, hi: 0xFFFF, nbytes: 2}}
	cm.cidRanges = []cidRange{{lo: 0, hi: 0xFFFF, cid: 0}}
	return cm
}
