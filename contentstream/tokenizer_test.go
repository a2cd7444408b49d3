package contentstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textlines/core"
)

func collect(t *testing.T, input string) []Token {
	t.Helper()
	tok := NewTokenizer([]byte(input))
	var out []Token
	for {
		tk, err := tok.Next()
		require.NoError(t, err)
		if tk.Kind == TokenEndOfStream {
			return out
		}
		out = append(out, tk)
	}
}

func kinds(tokens []Token) []TokenKind {
	out := make([]TokenKind, len(tokens))
	for i, tk := range tokens {
		out[i] = tk.Kind
	}
	return out
}

func TestTokenizerKinds(t *testing.T) {
	tokens := collect(t, "1 0 0 1 72 700 cm /F1 12 Tf")

	assert.Equal(t, []TokenKind{
		TokenOperand, TokenOperand, TokenOperand, TokenOperand, TokenOperand, TokenOperand, TokenOperator,
		TokenOperand, TokenOperand, TokenOperator,
	}, kinds(tokens))
	assert.Equal(t, "cm", tokens[6].Text)
	assert.Equal(t, core.Int(700), tokens[5].Object)
	assert.Equal(t, "/F1", tokens[7].Text)
	assert.Equal(t, 15, tokens[6].Offset)
}

func TestTokenizerEndOfStreamRepeats(t *testing.T) {
	tok := NewTokenizer([]byte("Q"))
	first, err := tok.Next()
	require.NoError(t, err)
	assert.Equal(t, TokenOperator, first.Kind)

	for i := 0; i < 2; i++ {
		tk, err := tok.Next()
		require.NoError(t, err)
		assert.Equal(t, TokenEndOfStream, tk.Kind)
	}
}

func TestTokenizerInlineImage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		payload string
		tail    []string
	}{
		{"empty payload", "BI /W 1 ID\nEI Q", "", []string{"EI", "Q"}},
		{"payload", "BI ID abc EI", "abc", []string{"EI"}},
		{"EI inside data", "BI ID xEIy EIz\nEI", "xEIy EIz", []string{"EI"}},
		{"EI at end", "BI ID \x01\x02\nEI", "\x01\x02", []string{"EI"}},
		{"no terminator", "BI ID abcdef", "abcdef", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := collect(t, tt.input)

			var idAt = -1
			for i, tk := range tokens {
				if tk.Kind == TokenOperator && tk.Text == "ID" {
					idAt = i
					break
				}
			}
			require.NotEqual(t, -1, idAt)
			require.Greater(t, len(tokens), idAt+1)

			data := tokens[idAt+1]
			assert.Equal(t, TokenInlineImageData, data.Kind)
			assert.Equal(t, tt.payload, data.Text)

			var tail []string
			for _, tk := range tokens[idAt+2:] {
				tail = append(tail, tk.Text)
			}
			assert.Equal(t, tt.tail, tail)
		})
	}
}

func TestTokenizerComments(t *testing.T) {
	tokens := collect(t, "%PDF comment\r\n(%not a comment) Tj % trailing")
	require.Len(t, tokens, 2)
	assert.Equal(t, core.String("%not a comment"), tokens[0].Object)
}

func TestTokenKindString(t *testing.T) {
	assert.Equal(t, "InlineImageData", TokenInlineImageData.String())
	assert.Equal(t, "TokenKind(9)", TokenKind(9).String())
}
