package contentstream

import (
	"github.com/tsawler/textlines/core"
)

// Operation represents a single content stream operation consisting of an
// operator and its operands. Operands are the objects that precede the
// operator.
type Operation struct {
	Operator string        // The operator (e.g., "Tj", "Tm", "q")
	Op       Op            // The classified operator, OpUnknown if not recognised
	Operands []core.Object // The operands
	Data     []byte        // Inline image payload, set on ID only
	Offset   int           // Offset of the operator in the stream
}

// Parser parses content streams into a sequence of operations.
type Parser struct {
	tok *Tokenizer
}

// NewParser creates a new content stream parser for the given data.
func NewParser(data []byte) *Parser {
	return &Parser{tok: NewTokenizer(data)}
}

// Parse parses the content stream and returns all operations in order.
// Operands left over at the end of the stream are dropped.
func (p *Parser) Parse() ([]Operation, error) {
	var ops []Operation
	for {
		op, err := p.Next()
		if err != nil {
			return nil, err
		}
		if op == nil {
			return ops, nil
		}
		ops = append(ops, *op)
	}
}

// Next returns the next operation, or nil at the end of the stream.
func (p *Parser) Next() (*Operation, error) {
	var operands []core.Object
	for {
		tok, err := p.tok.Next()
		if err != nil {
			return nil, err
		}

		switch tok.Kind {
		case TokenEndOfStream:
			return nil, nil
		case TokenOperand:
			operands = append(operands, tok.Object)
		case TokenInlineImageData:
			// only produced directly after ID, which is handled below
			continue
		case TokenOperator:
			op := &Operation{
				Operator: tok.Text,
				Op:       LookupOp(tok.Text),
				Operands: operands,
				Offset:   tok.Offset,
			}
			if op.Op == OpInlineImageData {
				data, err := p.tok.Next()
				if err != nil {
					return nil, err
				}
				op.Data = []byte(data.Text)
			}
			return op, nil
		}
	}
}
