package textlines

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textlines/analyzer"
	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/model"
)

// writePDF writes a PDF with one page per content string. Every page uses
// Courier as /F1.
func writePDF(t *testing.T, contents ...string) string {
	t.Helper()

	n := len(contents)
	objects := []string{"<< /Type /Catalog /Pages 2 0 R >>"}
	var kids []string
	for i := range contents {
		kids = append(kids, fmt.Sprintf("%d 0 R", 4+2*i))
	}
	objects = append(objects,
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), n),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Courier >>",
	)
	for i, c := range contents {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Contents %d 0 R /Resources << /Font << /F1 3 0 R >> >> >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c), c),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	path := filepath.Join(t.TempDir(), "test.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func twoPages(t *testing.T) string {
	return writePDF(t,
		"BT /F1 12 Tf 72 700 Td (Hello) Tj ( World) Tj 0 -20 Td (Next) Tj ET",
		"BT /F2 12 Tf 72 700 Td (Second) Tj ET",
	)
}

func TestOpenMissingFile(t *testing.T) {
	_, _, err := Open("nonexistent.pdf").Text()
	assert.Error(t, err)

	_, err = Open("").PageCount()
	assert.ErrorContains(t, err, "no filename")
}

func TestText(t *testing.T) {
	path := twoPages(t)

	count, err := Open(path).PageCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	text, warnings, err := Open(path).Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello World\nNext\n\nSecond", text)

	// page 2 names a font that does not exist
	require.NotEmpty(t, warnings)
	assert.Equal(t, 2, warnings[0].Page)
	assert.Equal(t, "Tf", warnings[0].Operator)
	assert.ErrorIs(t, warnings[0].Err, analyzer.ErrResourceNotFound)
	assert.Contains(t, FormatWarnings(warnings), "page 2: Tf:")
}

func TestPageSelection(t *testing.T) {
	path := twoPages(t)

	text, _, err := Open(path).Pages(2).Text()
	require.NoError(t, err)
	assert.Equal(t, "Second", text)

	text, _, err = Open(path).Pages(2, 1, 2).Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello World\nNext\n\nSecond", text)

	text, _, err = Open(path).PageRange(1, 1).Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello World\nNext", text)

	_, _, err = Open(path).Pages(3).Text()
	assert.ErrorContains(t, err, "page 3 out of range (1-2)")

	_, _, err = Open(path).PageRange(2, 1).Text()
	assert.ErrorContains(t, err, "invalid page range")
}

func TestExtractorIsImmutable(t *testing.T) {
	base := Open("doc.pdf")
	first := base.Pages(1)
	second := first.Pages(2).Workers(3)

	assert.Empty(t, base.pages)
	assert.Equal(t, []int{1}, first.pages)
	assert.Equal(t, []int{1, 2}, second.pages)
	assert.Equal(t, 1, first.config.Workers)
	assert.Equal(t, 3, second.config.Workers)
}

func TestLines(t *testing.T) {
	path := twoPages(t)

	lines, _, err := Open(path).Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello World", "Next", "Second"}, lines)

	lines, _, err = Open(path).Pages(1).WithoutLineDetection().Lines()
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello", "World", "Next"}, lines)

	details, _, err := Open(path).Pages(1).LineDetails()
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.InDelta(t, 12, details[0].FontSize(), 1e-9)
}

func TestHOCR(t *testing.T) {
	path := twoPages(t)

	var buf bytes.Buffer
	_, err := Open(path).Pages(1).HOCR(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `class="ocr_page"`)
	assert.Equal(t, 2, strings.Count(out, `class="ocr_line"`))
	assert.Contains(t, out, ">World</span>")
}

func TestInvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Workers = 0
	_, _, err := Open("doc.pdf").WithConfig(cfg).Text()
	assert.ErrorContains(t, err, "invalid config")
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, NewDefaultConfig().Validate())

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"form depth", func(c *Config) { c.MaxFormDepth = 0 }},
		{"negative char spacing scale", func(c *Config) { c.Words.MaxCharSpaceScale = -1 }},
		{"embedded layout setting", func(c *Config) { c.MinVOverlap = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() accepted %s", tt.name)
			}
		})
	}
}

type fakeSource struct{ fail int }

func (s fakeSource) NumPages() int { return 3 }

func (s fakeSource) Page(i int) (analyzer.Canvas, error) {
	if i == s.fail {
		return nil, errors.New("unreadable page")
	}
	return fakeCanvas(fmt.Sprintf("BT /F1 10 Tf 72 700 Td (p%d) Tj ET", i+1)), nil
}

type fakeCanvas string

func (c fakeCanvas) Content() ([]byte, error) { return []byte(c), nil }
func (c fakeCanvas) CropBox() model.BBox      { return model.NewBBox(0, 0, 612, 792) }
func (c fakeCanvas) Resources() analyzer.Resources {
	return &analyzer.MapResources{Fonts: map[string]font.Metrics{"F1": font.NewStandardFont("Courier")}}
}

func TestContinueOnError(t *testing.T) {
	src := fakeSource{fail: 1}

	_, _, err := FromSource(src).Text()
	assert.ErrorContains(t, err, "unreadable page")

	cfg := NewDefaultConfig()
	cfg.ContinueOnError = true
	text, warnings, err := FromSource(src).WithConfig(cfg).Text()
	require.NoError(t, err)
	assert.Equal(t, "p1\n\np3", text)
	require.Len(t, warnings, 1)
	assert.Equal(t, 2, warnings[0].Page)
	assert.Equal(t, "page 2: unreadable page", warnings[0].String())
}

func TestMust(t *testing.T) {
	assert.Equal(t, 3, Must(3, nil))
	assert.Panics(t, func() { Must(0, errors.New("boom")) })
	assert.Equal(t, "x", MustText("x", nil, nil))
	assert.Panics(t, func() { MustText("", nil, errors.New("boom")) })
}
