// Package contentstream tokenizes and classifies PDF content streams.
//
// Content streams contain the instructions for rendering page content,
// including text display, graphics operations, and image placement.
//
// # Tokens
//
// The [Tokenizer] turns stream bytes into operand, operator and inline
// image tokens:
//
//	tok := contentstream.NewTokenizer(streamData)
//	for {
//	    t, err := tok.Next()
//	    if err != nil || t.Kind == contentstream.TokenEndOfStream {
//	        break
//	    }
//	}
//
// The binary data of an inline image (BI ... ID data EI) is returned as one
// [TokenInlineImageData] token. EI ends the data only when surrounded by
// whitespace, so EI bytes inside the image do not end it early.
//
// # Operations
//
// [Parser] groups operands with the operator that follows them:
//
//	ops, err := contentstream.NewParser(streamData).Parse()
//	for _, op := range ops {
//	    fmt.Printf("Operator: %s, Operands: %v\n", op.Operator, op.Operands)
//	}
//
// # Operators
//
// Every operator of PDF 1.7 is an [Op] and belongs to one of 17 [Category]
// values. [LookupOp] maps operator names to [Op], returning [OpUnknown] for
// anything else. The tables are checked when the package is initialised.
package contentstream
