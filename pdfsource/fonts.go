package pdfsource

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/textlines/core"
	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/logger"
	"github.com/tsawler/textlines/model"
)

// loadFont builds the metrics of a font dictionary
func (d *Document) loadFont(o types.Object) (font.Metrics, error) {
	fd, err := d.res.dict(o)
	if err != nil {
		return nil, fmt.Errorf("font dictionary: %w", err)
	}
	if fd == nil {
		return nil, fmt.Errorf("font dictionary is missing")
	}

	subtype, _ := d.res.name(fd["Subtype"])
	switch subtype {
	case "Type0":
		return d.type0Font(fd)
	case "Type1", "MMType1", "TrueType", "Type3", "":
		return d.simpleFont(fd, subtype), nil
	}
	return nil, fmt.Errorf("unsupported font subtype %q", subtype)
}

func (d *Document) simpleFont(fd types.Dict, subtype string) *font.SimpleFont {
	spec := font.SimpleSpec{Subtype: subtype}
	spec.BaseFont, _ = d.res.name(fd["BaseFont"])
	if spec.BaseFont == "" {
		spec.BaseFont, _ = d.res.name(fd["Name"])
	}
	if fc, ok := d.res.number(fd["FirstChar"]); ok {
		spec.FirstChar = int(fc)
	}
	spec.Widths, _ = d.res.floats(fd["Widths"])

	if name, ok := d.res.name(fd["Encoding"]); ok {
		spec.Encoding = name
	} else if enc, err := d.res.dict(fd["Encoding"]); err == nil && enc != nil {
		spec.Encoding, _ = d.res.name(enc["BaseEncoding"])
		if diffs, err := d.res.convert(enc["Differences"]); err == nil {
			if arr, ok := diffs.(core.Array); ok {
				spec.Differences = differences(arr)
			}
		}
	}

	spec.Descriptor, spec.Program = d.descriptor(fd["FontDescriptor"])
	spec.ToUnicode = d.toUnicode(fd["ToUnicode"])

	if subtype == "Type3" {
		if m, ok := d.res.floats(fd["FontMatrix"]); ok && len(m) == 6 {
			spec.FontMatrix = model.Matrix(m)
		}
	}
	return font.NewSimpleFont(spec)
}

func (d *Document) type0Font(fd types.Dict) (*font.Type0Font, error) {
	spec := font.Type0Spec{}
	spec.BaseFont, _ = d.res.name(fd["BaseFont"])

	desc, err := d.res.resolve(fd["DescendantFonts"])
	if err != nil {
		return nil, fmt.Errorf("descendant fonts: %w", err)
	}
	arr, ok := desc.(types.Array)
	if !ok || len(arr) == 0 {
		return nil, fmt.Errorf("type0 font %q has no descendant font", spec.BaseFont)
	}
	cid, err := d.res.dict(arr[0])
	if err != nil {
		return nil, fmt.Errorf("descendant font of %q: %w", spec.BaseFont, err)
	}
	if cid == nil {
		return nil, fmt.Errorf("type0 font %q has no descendant font", spec.BaseFont)
	}

	if dw, ok := d.res.number(cid["DW"]); ok {
		spec.DW = dw
	}
	if w, err := d.res.convert(cid["W"]); err == nil {
		spec.W, _ = w.(core.Array)
	}
	spec.Descriptor, spec.Program = d.descriptor(cid["FontDescriptor"])
	spec.ToUnicode = d.toUnicode(fd["ToUnicode"])

	switch enc := fd["Encoding"].(type) {
	case nil:
	case types.Name:
		if enc != "Identity-H" {
			logger.Debug("predefined cmap read as identity", "font", spec.BaseFont, "cmap", string(enc))
		}
	default:
		spec.Encoding = d.cmap(enc, spec.BaseFont)
	}
	return font.NewType0Font(spec), nil
}

// descriptor reads a font descriptor and its embedded TrueType program
func (d *Document) descriptor(o types.Object) (*font.Descriptor, *font.TrueTypeFont) {
	fd, err := d.res.dict(o)
	if err != nil || fd == nil {
		return nil, nil
	}

	desc := &font.Descriptor{}
	desc.FontName, _ = d.res.name(fd["FontName"])
	if v, ok := d.res.number(fd["Flags"]); ok {
		desc.Flags = int(v)
	}
	if b, ok := d.res.floats(fd["FontBBox"]); ok && len(b) == 4 {
		desc.FontBBox = model.NewBBoxFromEdges(min(b[0], b[2]), min(b[1], b[3]), max(b[0], b[2]), max(b[1], b[3]))
	}
	desc.ItalicAngle, _ = d.res.number(fd["ItalicAngle"])
	desc.Ascent, _ = d.res.number(fd["Ascent"])
	desc.Descent, _ = d.res.number(fd["Descent"])
	desc.CapHeight, _ = d.res.number(fd["CapHeight"])
	desc.AvgWidth, _ = d.res.number(fd["AvgWidth"])
	desc.MissingWidth, _ = d.res.number(fd["MissingWidth"])

	var program *font.TrueTypeFont
	if ff, ok := fd["FontFile2"]; ok {
		_, data, err := d.res.stream(ff)
		if err == nil {
			program, err = font.ParseTrueType(data)
		}
		if err != nil {
			logger.Warn("ignoring embedded font program", "font", desc.FontName, "err", err)
			program = nil
		}
	}
	return desc, program
}

func (d *Document) toUnicode(o types.Object) *font.CMap {
	if o == nil {
		return nil
	}
	return d.cmap(o, "")
}

// cmap parses a CMap stream. A partly broken CMap is kept with a warning.
func (d *Document) cmap(o types.Object, fontName string) *font.CMap {
	_, data, err := d.res.stream(o)
	if err != nil {
		logger.Warn("ignoring cmap", "font", fontName, "err", err)
		return nil
	}
	cm, err := font.ParseCMap(data)
	if err != nil {
		logger.Warn("cmap partly read", "font", fontName, "err", err)
	}
	return cm
}

// differences reads an encoding Differences array: a code followed by the
// glyph names of consecutive codes
func differences(arr core.Array) map[int]string {
	diffs := make(map[int]string)
	code := 0
	for _, o := range arr {
		switch v := o.(type) {
		case core.Int:
			code = int(v)
		case core.Real:
			code = int(v)
		case core.Name:
			diffs[code] = string(v)
			code++
		}
	}
	return diffs
}
