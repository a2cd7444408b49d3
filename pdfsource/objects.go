package pdfsource

import (
	"errors"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/textlines/core"
)

// defaultMaxDepth bounds the nesting followed when converting objects
const defaultMaxDepth = 100

var errNotStream = errors.New("object is not a stream")

// resolver follows indirect references in a pdfcpu object graph and
// converts objects to operand objects
type resolver struct {
	ctx      *model.Context
	maxDepth int

	// cycle detection within one conversion
	visited map[int]bool
	depth   int
}

func newResolver(ctx *model.Context) *resolver {
	return &resolver{ctx: ctx, maxDepth: defaultMaxDepth, visited: make(map[int]bool)}
}

func asRef(o types.Object) (types.IndirectRef, bool) {
	switch v := o.(type) {
	case types.IndirectRef:
		return v, true
	case *types.IndirectRef:
		if v != nil {
			return *v, true
		}
	}
	return types.IndirectRef{}, false
}

// objectNumber returns the object number of a reference, or -1 for a direct
// object
func objectNumber(o types.Object) int {
	if ref, ok := asRef(o); ok {
		return ref.ObjectNumber.Value()
	}
	return -1
}

// resolve follows a single level of indirection
func (r *resolver) resolve(o types.Object) (types.Object, error) {
	ref, ok := asRef(o)
	if !ok {
		return o, nil
	}
	if r.ctx == nil {
		return nil, fmt.Errorf("resolving %d %d R: no document", ref.ObjectNumber, ref.GenerationNumber)
	}
	obj, err := r.ctx.Dereference(ref)
	if err != nil {
		return nil, fmt.Errorf("resolving %d %d R: %w", ref.ObjectNumber, ref.GenerationNumber, err)
	}
	return obj, nil
}

// dict resolves o to a dictionary; a stream yields its dictionary. A
// missing object gives a nil dictionary.
func (r *resolver) dict(o types.Object) (types.Dict, error) {
	obj, err := r.resolve(o)
	if err != nil {
		return nil, err
	}
	switch v := obj.(type) {
	case nil:
		return nil, nil
	case types.Dict:
		return v, nil
	case types.StreamDict:
		return v.Dict, nil
	case *types.StreamDict:
		return v.Dict, nil
	}
	return nil, fmt.Errorf("expected dictionary, got %T", obj)
}

// name resolves o to a name
func (r *resolver) name(o types.Object) (string, bool) {
	obj, err := r.resolve(o)
	if err != nil {
		return "", false
	}
	n, ok := obj.(types.Name)
	return string(n), ok
}

// number resolves o to a number
func (r *resolver) number(o types.Object) (float64, bool) {
	obj, err := r.resolve(o)
	if err != nil {
		return 0, false
	}
	switch v := obj.(type) {
	case types.Integer:
		return float64(v), true
	case types.Float:
		return float64(v), true
	}
	return 0, false
}

// floats resolves o to an array of numbers. Non-numeric elements make the
// whole array invalid.
func (r *resolver) floats(o types.Object) ([]float64, bool) {
	obj, err := r.resolve(o)
	if err != nil {
		return nil, false
	}
	arr, ok := obj.(types.Array)
	if !ok {
		return nil, false
	}
	out := make([]float64, len(arr))
	for i, e := range arr {
		if out[i], ok = r.number(e); !ok {
			return nil, false
		}
	}
	return out, true
}

// stream resolves o to a stream and returns its decoded data
func (r *resolver) stream(o types.Object) (types.Dict, []byte, error) {
	if r.ctx == nil {
		return nil, nil, errNotStream
	}
	sd, _, err := r.ctx.DereferenceStreamDict(o)
	if err != nil {
		return nil, nil, err
	}
	if sd == nil {
		return nil, nil, errNotStream
	}
	if len(sd.Content) == 0 && len(sd.Raw) > 0 {
		if err := sd.Decode(); err != nil {
			return nil, nil, fmt.Errorf("decoding stream: %w", err)
		}
	}
	return sd.Dict, append([]byte(nil), sd.Content...), nil
}

// convert fully resolves o into an operand object
func (r *resolver) convert(o types.Object) (core.Object, error) {
	if r.depth == 0 {
		clear(r.visited)
	}
	if r.depth >= r.maxDepth {
		return nil, fmt.Errorf("maximum nesting depth (%d) exceeded", r.maxDepth)
	}

	if ref, ok := asRef(o); ok {
		n := ref.ObjectNumber.Value()
		if r.visited[n] {
			return nil, fmt.Errorf("circular reference to object %d", n)
		}
		r.visited[n] = true
		defer delete(r.visited, n)

		obj, err := r.resolve(ref)
		if err != nil {
			return nil, err
		}
		return r.nested(obj)
	}

	switch v := o.(type) {
	case nil:
		return core.Null{}, nil
	case types.Boolean:
		return core.Bool(v), nil
	case types.Integer:
		return core.Int(v), nil
	case types.Float:
		return core.Real(v), nil
	case types.Name:
		return core.Name(v), nil
	case types.StringLiteral:
		b, err := types.Unescape(string(v))
		if err != nil {
			return core.String(v), nil
		}
		return core.String(b), nil
	case types.HexLiteral:
		b, err := v.Bytes()
		if err != nil {
			return nil, fmt.Errorf("hex string: %w", err)
		}
		return core.String(b), nil
	case types.Array:
		out := make(core.Array, len(v))
		for i, e := range v {
			c, err := r.nested(e)
			if err != nil {
				return nil, fmt.Errorf("array element %d: %w", i, err)
			}
			out[i] = c
		}
		return out, nil
	case types.Dict:
		return r.convertDict(v)
	case types.StreamDict:
		return r.convertDict(v.Dict)
	case *types.StreamDict:
		return r.convertDict(v.Dict)
	}
	return core.Null{}, nil
}

func (r *resolver) nested(o types.Object) (core.Object, error) {
	r.depth++
	defer func() { r.depth-- }()
	return r.convert(o)
}

func (r *resolver) convertDict(d types.Dict) (core.Object, error) {
	out := make(core.Dict, len(d))
	for k, e := range d {
		c, err := r.nested(e)
		if err != nil {
			return nil, fmt.Errorf("dict key %s: %w", k, err)
		}
		out[k] = c
	}
	return out, nil
}
