package core

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Object represents an operand object in a content stream
type Object interface {
	Type() ObjectType
	String() string
}

// ObjectType represents the type of an operand object
type ObjectType int

const (
	ObjNull ObjectType = iota
	ObjBool
	ObjInt
	ObjReal
	ObjString
	ObjName
	ObjArray
	ObjDict
	ObjRaw
)

// String returns the string representation of the object type
func (t ObjectType) String() string {
	switch t {
	case ObjNull:
		return "Null"
	case ObjBool:
		return "Bool"
	case ObjInt:
		return "Int"
	case ObjReal:
		return "Real"
	case ObjString:
		return "String"
	case ObjName:
		return "Name"
	case ObjArray:
		return "Array"
	case ObjDict:
		return "Dict"
	case ObjRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// Null represents the null object
type Null struct{}

func (n Null) Type() ObjectType { return ObjNull }
func (n Null) String() string   { return "null" }

// Bool represents a boolean
type Bool bool

func (b Bool) Type() ObjectType { return ObjBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Int represents an integer
type Int int64

func (i Int) Type() ObjectType { return ObjInt }
func (i Int) String() string   { return strconv.FormatInt(int64(i), 10) }

// Real represents a real number
type Real float64

func (r Real) Type() ObjectType { return ObjReal }
func (r Real) String() string   { return strconv.FormatFloat(float64(r), 'f', -1, 64) }

// String represents a string of character codes. Content streams carry
// font-specific codes, not text, so the bytes are kept as they are.
type String string

func (s String) Type() ObjectType { return ObjString }
func (s String) String() string   { return string(s) }

// Bytes returns the raw character codes
func (s String) Bytes() []byte { return []byte(s) }

// Name represents a name
type Name string

func (n Name) Type() ObjectType { return ObjName }
func (n Name) String() string   { return "/" + string(n) }

// Raw is a token that looked like a number or keyword but could not be
// parsed as one. It is kept so consumers can report the offending text.
type Raw string

func (r Raw) Type() ObjectType { return ObjRaw }
func (r Raw) String() string   { return string(r) }

// Array represents an array
type Array []Object

func (a Array) Type() ObjectType { return ObjArray }
func (a Array) String() string {
	parts := make([]string, 0, len(a))
	for _, obj := range a {
		parts = append(parts, obj.String())
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Len returns the length of the array
func (a Array) Len() int {
	return len(a)
}

// Get retrieves an element at the given index
func (a Array) Get(index int) Object {
	if index < 0 || index >= len(a) {
		return nil
	}
	return a[index]
}

// GetName retrieves a name at the given index
func (a Array) GetName(index int) (Name, bool) {
	n, ok := a.Get(index).(Name)
	return n, ok
}

// Floats converts every element to a float64. It fails on the first
// non-numeric element.
func (a Array) Floats() ([]float64, bool) {
	out := make([]float64, len(a))
	for i, obj := range a {
		f, ok := ToFloat(obj)
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// Dict represents a dictionary. Inline image parameters and marked-content
// property lists are the only dictionaries found in content streams.
type Dict map[string]Object

func (d Dict) Type() ObjectType { return ObjDict }
func (d Dict) String() string {
	keys := d.Keys()
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("/%s %s", key, d[key].String()))
	}
	return "<<" + strings.Join(parts, " ") + ">>"
}

// Get retrieves a value from the dictionary
func (d Dict) Get(key string) Object {
	return d[key]
}

// GetName retrieves a name value
func (d Dict) GetName(key string) (Name, bool) {
	name, ok := d[key].(Name)
	return name, ok
}

// GetFloat retrieves a numeric value
func (d Dict) GetFloat(key string) (float64, bool) {
	obj, ok := d[key]
	if !ok {
		return 0, false
	}
	return ToFloat(obj)
}

// Has checks if a key exists in the dictionary
func (d Dict) Has(key string) bool {
	_, ok := d[key]
	return ok
}

// Keys returns all keys in sorted order
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToFloat converts an Int or Real to float64. Non-finite values are
// rejected.
func ToFloat(obj Object) (float64, bool) {
	var f float64
	switch v := obj.(type) {
	case Int:
		f = float64(v)
	case Real:
		f = float64(v)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ToInt converts an Int, or a Real with no fractional part, to int
func ToInt(obj Object) (int, bool) {
	switch v := obj.(type) {
	case Int:
		return int(v), true
	case Real:
		if float64(v) == math.Trunc(float64(v)) {
			return int(v), true
		}
	}
	return 0, false
}
