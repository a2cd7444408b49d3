package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestObjectType tests the ObjectType String() method
func TestObjectType(t *testing.T) {
	tests := []struct {
		typ  ObjectType
		want string
	}{
		{ObjNull, "Null"},
		{ObjBool, "Bool"},
		{ObjInt, "Int"},
		{ObjReal, "Real"},
		{ObjString, "String"},
		{ObjName, "Name"},
		{ObjArray, "Array"},
		{ObjDict, "Dict"},
		{ObjRaw, "Raw"},
		{ObjectType(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestObjectStrings(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want string
	}{
		{"null", Null{}, "null"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"int", Int(-42), "-42"},
		{"real", Real(3.25), "3.25"},
		{"string", String("Hello"), "Hello"},
		{"name", Name("F1"), "/F1"},
		{"raw", Raw("1.2.3"), "1.2.3"},
		{"array", Array{Int(1), Name("A"), Real(0.5)}, "[1 /A 0.5]"},
		{"dict sorted", Dict{"W": Int(10), "H": Int(5), "BPC": Int(8)}, "<</BPC 8 /H 5 /W 10>>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.obj.String())
		})
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		name   string
		obj    Object
		want   float64
		wantOK bool
	}{
		{"int", Int(12), 12, true},
		{"real", Real(-0.5), -0.5, true},
		{"name", Name("F1"), 0, false},
		{"raw", Raw("--1"), 0, false},
		{"nil", nil, 0, false},
		{"nan", Real(math.NaN()), 0, false},
		{"inf", Real(math.Inf(1)), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToFloat(tt.obj)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToInt(t *testing.T) {
	n, ok := ToInt(Int(3))
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = ToInt(Real(2.0))
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = ToInt(Real(2.5))
	assert.False(t, ok)
}

func TestArrayAccessors(t *testing.T) {
	arr := Array{Int(1), Real(2.5), Name("X")}

	assert.Equal(t, 3, arr.Len())
	assert.Nil(t, arr.Get(-1))
	assert.Nil(t, arr.Get(3))

	name, ok := arr.GetName(2)
	assert.True(t, ok)
	assert.Equal(t, Name("X"), name)

	_, ok = arr.Floats()
	assert.False(t, ok)

	floats, ok := arr[:2].Floats()
	assert.True(t, ok)
	assert.Equal(t, []float64{1, 2.5}, floats)
}

func TestDictAccessors(t *testing.T) {
	d := Dict{"W": Int(4), "CS": Name("G"), "D": Array{Int(1), Int(0)}}

	w, ok := d.GetFloat("W")
	assert.True(t, ok)
	assert.Equal(t, 4.0, w)

	_, ok = d.GetFloat("CS")
	assert.False(t, ok)
	_, ok = d.GetFloat("missing")
	assert.False(t, ok)

	cs, ok := d.GetName("CS")
	assert.True(t, ok)
	assert.Equal(t, Name("G"), cs)

	assert.True(t, d.Has("D"))
	assert.False(t, d.Has("H"))
	assert.Equal(t, []string{"CS", "D", "W"}, d.Keys())
}
