package contentstream

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tsawler/textlines/core"
)

// TokenKind classifies a token produced by the Tokenizer
type TokenKind int

const (
	TokenEndOfStream TokenKind = iota
	TokenOperand
	TokenOperator
	TokenInlineImageData
)

func (k TokenKind) String() string {
	switch k {
	case TokenEndOfStream:
		return "EndOfStream"
	case TokenOperand:
		return "Operand"
	case TokenOperator:
		return "Operator"
	case TokenInlineImageData:
		return "InlineImageData"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a single lexical unit of a content stream.
//
// Text holds the source text for operands and operators and the binary
// payload for inline image data. Object is set for operands only.
type Token struct {
	Kind   TokenKind
	Text   string
	Object core.Object
	Offset int
}

// SyntaxError reports malformed content stream syntax
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("content stream syntax error at offset %d: %s", e.Offset, e.Msg)
}

// Tokenizer splits a content stream into operand and operator tokens.
// Comments are skipped. The binary payload following an ID operator is
// returned as a single TokenInlineImageData token.
type Tokenizer struct {
	data       []byte
	pos        int
	inlineData bool
}

// NewTokenizer creates a tokenizer over the given content stream bytes
func NewTokenizer(data []byte) *Tokenizer {
	return &Tokenizer{data: data}
}

// Offset returns the current read position
func (t *Tokenizer) Offset() int {
	return t.pos
}

// Next returns the next token. At the end of the data it returns a token of
// kind TokenEndOfStream and a nil error.
func (t *Tokenizer) Next() (Token, error) {
	if t.inlineData {
		t.inlineData = false
		return t.readInlineData(), nil
	}

	t.skipSpaceAndComments()
	if t.pos >= len(t.data) {
		return Token{Kind: TokenEndOfStream, Offset: t.pos}, nil
	}

	start := t.pos
	c := t.data[t.pos]

	if isRegular(c) && !isNumberStart(c) {
		word := t.readRegular()
		switch word {
		case "true":
			return Token{Kind: TokenOperand, Text: word, Object: core.Bool(true), Offset: start}, nil
		case "false":
			return Token{Kind: TokenOperand, Text: word, Object: core.Bool(false), Offset: start}, nil
		case "null":
			return Token{Kind: TokenOperand, Text: word, Object: core.Null{}, Offset: start}, nil
		}
		if word == "ID" {
			t.inlineData = true
		}
		return Token{Kind: TokenOperator, Text: word, Offset: start}, nil
	}

	obj, err := t.readObject()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: TokenOperand, Text: string(t.data[start:t.pos]), Object: obj, Offset: start}, nil
}

// readObject reads one operand starting at the current position
func (t *Tokenizer) readObject() (core.Object, error) {
	t.skipSpaceAndComments()
	if t.pos >= len(t.data) {
		return nil, &SyntaxError{Offset: t.pos, Msg: "unexpected end of stream"}
	}

	c := t.data[t.pos]
	switch {
	case isNumberStart(c):
		return t.readNumber(), nil
	case c == '(':
		return t.readLiteralString()
	case c == '<':
		if t.pos+1 < len(t.data) && t.data[t.pos+1] == '<' {
			return t.readDict()
		}
		return t.readHexString()
	case c == '/':
		return t.readName(), nil
	case c == '[':
		return t.readArray()
	case isRegular(c):
		start := t.pos
		word := t.readRegular()
		switch word {
		case "true":
			return core.Bool(true), nil
		case "false":
			return core.Bool(false), nil
		case "null":
			return core.Null{}, nil
		}
		return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("unexpected keyword %q inside operand", word)}
	}

	t.pos++
	return nil, &SyntaxError{Offset: t.pos - 1, Msg: fmt.Sprintf("unexpected character %q", c)}
}

// readNumber reads a run of regular characters and parses it as an integer
// or a real. Text that does not parse is returned as core.Raw.
func (t *Tokenizer) readNumber() core.Object {
	word := t.readRegular()

	if i, err := strconv.ParseInt(word, 10, 64); err == nil {
		return core.Int(i)
	}
	if f, ok := parseReal(word); ok {
		return core.Real(f)
	}
	return core.Raw(word)
}

// parseReal accepts the PDF real syntax: optional sign, digits and at most
// one decimal point, no exponent.
func parseReal(s string) (float64, bool) {
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		case (c == '+' || c == '-') && i == 0:
		default:
			return 0, false
		}
	}
	if digits == 0 || dots > 1 {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (t *Tokenizer) readLiteralString() (core.Object, error) {
	start := t.pos
	t.pos++ // skip '('

	var result bytes.Buffer
	depth := 1

	for t.pos < len(t.data) && depth > 0 {
		c := t.data[t.pos]

		switch {
		case c == '\\' && t.pos+1 < len(t.data):
			t.pos++
			next := t.data[t.pos]
			t.pos++
			switch next {
			case 'n':
				result.WriteByte('\n')
			case 'r':
				result.WriteByte('\r')
			case 't':
				result.WriteByte('\t')
			case 'b':
				result.WriteByte('\b')
			case 'f':
				result.WriteByte('\f')
			case '\r':
				if t.pos < len(t.data) && t.data[t.pos] == '\n' {
					t.pos++
				}
			case '\n':
			case '0', '1', '2', '3', '4', '5', '6', '7':
				v := int(next - '0')
				for i := 0; i < 2 && t.pos < len(t.data); i++ {
					d := t.data[t.pos]
					if d < '0' || d > '7' {
						break
					}
					v = v*8 + int(d-'0')
					t.pos++
				}
				result.WriteByte(byte(v & 0xFF))
			default:
				// covers \( \) \\ and unknown escapes
				result.WriteByte(next)
			}
		case c == '(':
			depth++
			result.WriteByte(c)
			t.pos++
		case c == ')':
			depth--
			if depth > 0 {
				result.WriteByte(c)
			}
			t.pos++
		default:
			result.WriteByte(c)
			t.pos++
		}
	}

	if depth != 0 {
		return nil, &SyntaxError{Offset: start, Msg: "unclosed string"}
	}
	return core.String(result.String()), nil
}

func (t *Tokenizer) readHexString() (core.Object, error) {
	start := t.pos
	t.pos++ // skip '<'

	var result bytes.Buffer
	var hi byte
	half := false

	for t.pos < len(t.data) {
		c := t.data[t.pos]
		t.pos++

		if c == '>' {
			if half {
				result.WriteByte(hi << 4)
			}
			return core.String(result.String()), nil
		}
		if isWhitespace(c) {
			continue
		}
		if !isHexDigit(c) {
			return nil, &SyntaxError{Offset: t.pos - 1, Msg: fmt.Sprintf("invalid hex digit %q", c)}
		}
		if half {
			result.WriteByte(hi<<4 | hexValue(c))
		} else {
			hi = hexValue(c)
		}
		half = !half
	}

	return nil, &SyntaxError{Offset: start, Msg: "unclosed hex string"}
}

func (t *Tokenizer) readName() core.Object {
	t.pos++ // skip '/'

	var result bytes.Buffer
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		if !isRegular(c) {
			break
		}
		if c == '#' && t.pos+2 < len(t.data) && isHexDigit(t.data[t.pos+1]) && isHexDigit(t.data[t.pos+2]) {
			result.WriteByte(hexValue(t.data[t.pos+1])<<4 | hexValue(t.data[t.pos+2]))
			t.pos += 3
			continue
		}
		result.WriteByte(c)
		t.pos++
	}
	return core.Name(result.String())
}

func (t *Tokenizer) readArray() (core.Object, error) {
	start := t.pos
	t.pos++ // skip '['

	arr := core.Array{}
	for {
		t.skipSpaceAndComments()
		if t.pos >= len(t.data) {
			return nil, &SyntaxError{Offset: start, Msg: "unclosed array"}
		}
		if t.data[t.pos] == ']' {
			t.pos++
			return arr, nil
		}
		obj, err := t.readObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (t *Tokenizer) readDict() (core.Object, error) {
	start := t.pos
	t.pos += 2 // skip '<<'

	dict := core.Dict{}
	for {
		t.skipSpaceAndComments()
		if t.pos >= len(t.data) {
			return nil, &SyntaxError{Offset: start, Msg: "unclosed dictionary"}
		}
		if t.data[t.pos] == '>' && t.pos+1 < len(t.data) && t.data[t.pos+1] == '>' {
			t.pos += 2
			return dict, nil
		}
		if t.data[t.pos] != '/' {
			return nil, &SyntaxError{Offset: t.pos, Msg: "dictionary key must be a name"}
		}
		key := t.readName().(core.Name)
		value, err := t.readObject()
		if err != nil {
			return nil, err
		}
		dict[string(key)] = value
	}
}

// readInlineData returns the bytes between ID and the EI that ends the
// inline image. EI only counts when it is preceded by whitespace and
// followed by whitespace or the end of the data. Without a terminator the
// rest of the stream is returned.
func (t *Tokenizer) readInlineData() Token {
	// a single whitespace byte separates ID from the data
	if t.pos < len(t.data) && isWhitespace(t.data[t.pos]) {
		t.pos++
	}
	start := t.pos

	for i := start; i+1 < len(t.data); i++ {
		if t.data[i] != 'E' || t.data[i+1] != 'I' {
			continue
		}
		if i > start && !isWhitespace(t.data[i-1]) {
			continue
		}
		if i+2 < len(t.data) && !isWhitespace(t.data[i+2]) {
			continue
		}
		end := i
		if end > start {
			end-- // whitespace before EI
		}
		t.pos = i
		return Token{Kind: TokenInlineImageData, Text: string(t.data[start:end]), Offset: start}
	}

	t.pos = len(t.data)
	return Token{Kind: TokenInlineImageData, Text: string(t.data[start:]), Offset: start}
}

func (t *Tokenizer) readRegular() string {
	start := t.pos
	for t.pos < len(t.data) && isRegular(t.data[t.pos]) {
		t.pos++
	}
	return string(t.data[start:t.pos])
}

func (t *Tokenizer) skipSpaceAndComments() {
	for t.pos < len(t.data) {
		c := t.data[t.pos]
		switch {
		case isWhitespace(c):
			t.pos++
		case c == '%':
			for t.pos < len(t.data) && t.data[t.pos] != '\n' && t.data[t.pos] != '\r' {
				t.pos++
			}
		default:
			return
		}
	}
}

// isWhitespace reports whether c is a PDF whitespace character.
func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

// isDelimiter reports whether c is a PDF delimiter character.
func isDelimiter(c byte) bool {
	return c == '(' || c == ')' || c == '<' || c == '>' ||
		c == '[' || c == ']' || c == '{' || c == '}' ||
		c == '/' || c == '%'
}

// isRegular reports whether c is neither whitespace nor a delimiter
func isRegular(c byte) bool {
	return !isWhitespace(c) && !isDelimiter(c)
}

func isNumberStart(c byte) bool {
	return c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9')
}

// isHexDigit reports whether c is a hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// hexValue returns the numeric value of a hexadecimal digit.
func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
