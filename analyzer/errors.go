package analyzer

import (
	"errors"
	"fmt"

	"github.com/tsawler/textlines/graphicsstate"
)

var (
	// ErrStackUnderflow is returned when Q has no matching q
	ErrStackUnderflow = graphicsstate.ErrStackUnderflow

	// ErrInvalidHandle reports a missing collaborator, such as a nil canvas
	ErrInvalidHandle = errors.New("invalid handle")

	// ErrFormDepth reports form XObjects nested deeper than MaxFormDepth
	ErrFormDepth = errors.New("form xobject nesting too deep")
)

// StructuralError reports an operator that is out of place, such as ET
// without BT. The operator is ignored.
type StructuralError struct {
	Operator string
	Offset   int
	Msg      string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Operator, e.Offset, e.Msg)
}

// DataFormatError reports operands of the wrong number or type
type DataFormatError struct {
	Operator string
	Offset   int
	Msg      string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("%s at offset %d: bad operands: %s", e.Operator, e.Offset, e.Msg)
}

// Warning is a recoverable problem met while analyzing a stream
type Warning struct {
	Operator string
	Offset   int
	Depth    int
	Err      error
}

func (w Warning) Error() string {
	return fmt.Sprintf("warning at depth %d: %v", w.Depth, w.Err)
}

func (w Warning) Unwrap() error {
	return w.Err
}
