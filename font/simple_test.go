package font

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textlines/model"
)

func TestStandardFontWidths(t *testing.T) {
	tests := []struct {
		font     string
		code     byte
		expected float64
	}{
		{"Helvetica", ' ', 0.278},
		{"Helvetica", 'A', 0.667},
		{"Helvetica-Bold", 'A', 0.722},
		{"Times-Roman", 'm', 0.778},
		{"Courier", 'i', 0.6},
		{"ABCDEF+Helvetica", 'A', 0.667},
		{"Arial", 'A', 0.667},
		{"SomethingElse", 'A', 0.667},
	}

	for _, tt := range tests {
		t.Run(tt.font+"/"+string(tt.code), func(t *testing.T) {
			f := NewStandardFont(tt.font)
			assert.InDelta(t, tt.expected, f.Advance(uint32(tt.code)).X, 1e-9)
			assert.Zero(t, f.Advance(uint32(tt.code)).Y)
		})
	}
}

func TestStandardFontMetrics(t *testing.T) {
	f := NewStandardFont("Helvetica")
	assert.Equal(t, "Helvetica", f.Name())
	assert.InDelta(t, 0.718, f.Ascent(), 1e-9)
	assert.InDelta(t, -0.207, f.Descent(), 1e-9)

	box := f.GlyphBBox('A')
	assert.InDelta(t, 0.667, box.Width, 1e-9)
	assert.InDelta(t, -0.207, box.Y, 1e-9)
	assert.InDelta(t, 0.925, box.Height, 1e-9)

	mean := f.MeanGlyphBBox()
	assert.Greater(t, mean.Width, 0.3)
	assert.Less(t, mean.Width, 0.8)
	assert.InDelta(t, 0.925, mean.Height, 1e-9)
}

func TestSimpleFontWidthsArray(t *testing.T) {
	f := NewSimpleFont(SimpleSpec{
		BaseFont:  "XYZABC+MyFont",
		Subtype:   "TrueType",
		FirstChar: 65,
		Widths:    []float64{600, 700, 0},
		Descriptor: &Descriptor{
			Ascent:       900,
			Descent:      -100,
			MissingWidth: 250,
		},
	})

	assert.Equal(t, "MyFont", f.Name())
	assert.InDelta(t, 0.6, f.Advance('A').X, 1e-9)
	assert.InDelta(t, 0.7, f.Advance('B').X, 1e-9)
	assert.Zero(t, f.Advance('C').X)
	assert.InDelta(t, 0.25, f.Advance('Z').X, 1e-9)
	assert.Zero(t, f.Advance(300).X)
	assert.InDelta(t, 0.9, f.Ascent(), 1e-9)
	assert.InDelta(t, -0.1, f.Descent(), 1e-9)
	assert.InDelta(t, 0.65, f.MeanGlyphBBox().Width, 1e-9)
}

func TestSimpleFontDecode(t *testing.T) {
	cm, err := ParseCMap([]byte("1 beginbfchar <41> <005A> endbfchar"))
	require.NoError(t, err)

	f := NewSimpleFont(SimpleSpec{
		BaseFont:    "Helvetica",
		Encoding:    "WinAnsiEncoding",
		Differences: map[int]string{0x42: "emdash"},
		ToUnicode:   cm,
	})

	assert.Equal(t, "Z", f.Decode('A'))
	assert.Equal(t, "—", f.Decode('B'))
	assert.Equal(t, "C", f.Decode('C'))
	assert.Equal(t, "é", f.Decode(0xE9))
	assert.Equal(t, "", f.Decode(0x1000))
}

func TestSimpleFontSpaces(t *testing.T) {
	f := NewStandardFont("Helvetica")
	assert.True(t, f.IsSpace(' '))
	assert.True(t, f.IsWordSpace(' '))
	assert.False(t, f.IsSpace('a'))
	assert.False(t, f.IsWordSpace('a'))
	assert.Equal(t, []uint32{'a', ' ', 0xFF}, f.Codes([]byte{'a', ' ', 0xFF}))
}

func TestType3FontMatrix(t *testing.T) {
	f := NewSimpleFont(SimpleSpec{
		BaseFont:   "T3",
		Subtype:    "Type3",
		FirstChar:  'a',
		Widths:     []float64{10},
		FontMatrix: model.Matrix{0.01, 0, 0, 0.01, 0, 0},
		Descriptor: &Descriptor{Ascent: 80, Descent: -20},
	})
	assert.InDelta(t, 0.1, f.Advance('a').X, 1e-9)
	assert.InDelta(t, 0.8, f.Ascent(), 1e-9)
}
