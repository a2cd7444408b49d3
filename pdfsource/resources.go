package pdfsource

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/tsawler/textlines/analyzer"
	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/model"
)

// resources implements analyzer.Resources over a resource dictionary
type resources struct {
	doc  *Document
	dict types.Dict
}

func notFound(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, analyzer.ErrResourceNotFound)
}

// entry looks up name in the sub-dictionary of the given category
func (r *resources) entry(category, name string) (types.Object, bool, error) {
	if r.dict == nil {
		return nil, false, nil
	}
	sub, err := r.doc.res.dict(r.dict[category])
	if err != nil {
		return nil, false, fmt.Errorf("/%s resources: %w", category, err)
	}
	o, ok := sub[name]
	return o, ok && o != nil, nil
}

func (r *resources) Font(name string) (font.Metrics, error) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	o, ok, err := r.entry("Font", name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("font", name)
	}
	return r.doc.font(o)
}

func (r *resources) XObject(name string) (analyzer.XObject, error) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	o, ok, err := r.entry("XObject", name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("xobject", name)
	}

	num := objectNumber(o)
	if x, ok := r.doc.xobjects[num]; ok && num >= 0 {
		return x, nil
	}
	x, err := r.doc.loadXObject(o)
	if err != nil {
		return nil, fmt.Errorf("xobject %q: %w", name, err)
	}
	if num >= 0 {
		r.doc.xobjects[num] = x
	}
	return x, nil
}

func (r *resources) ExtGState(name string) (*analyzer.ExtGState, error) {
	r.doc.mu.Lock()
	defer r.doc.mu.Unlock()

	o, ok, err := r.entry("ExtGState", name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, notFound("extgstate", name)
	}
	gd, err := r.doc.res.dict(o)
	if err != nil {
		return nil, fmt.Errorf("extgstate %q: %w", name, err)
	}
	return r.doc.extGState(gd)
}

// font returns the cached metrics of a font object
func (d *Document) font(o types.Object) (font.Metrics, error) {
	num := objectNumber(o)
	if f, ok := d.fonts[num]; ok && num >= 0 {
		return f, nil
	}
	f, err := d.loadFont(o)
	if err != nil {
		return nil, err
	}
	if num >= 0 {
		d.fonts[num] = f
	}
	return f, nil
}

func (d *Document) loadXObject(o types.Object) (analyzer.XObject, error) {
	dict, data, err := d.res.stream(o)
	if err != nil {
		return nil, err
	}
	subtype, _ := d.res.name(dict["Subtype"])
	switch subtype {
	case "Form":
		form := &analyzer.Form{Content: data, Matrix: model.Identity()}
		if m, ok := d.res.floats(dict["Matrix"]); ok && len(m) == 6 {
			form.Matrix = model.Matrix(m)
		}
		if b, ok := d.res.floats(dict["BBox"]); ok && len(b) == 4 {
			form.BBox = model.NewBBoxFromEdges(min(b[0], b[2]), min(b[1], b[3]), max(b[0], b[2]), max(b[1], b[3]))
		}
		if rd, err := d.res.dict(dict["Resources"]); err == nil && rd != nil {
			form.Resources = &resources{doc: d, dict: rd}
		}
		return form, nil
	case "Image":
		w, _ := d.res.number(dict["Width"])
		h, _ := d.res.number(dict["Height"])
		return &analyzer.Image{Width: int(w), Height: int(h)}, nil
	}
	return nil, fmt.Errorf("unsupported subtype %q", subtype)
}

// extGState reads the entries of a graphics state parameter dictionary
func (d *Document) extGState(gd types.Dict) (*analyzer.ExtGState, error) {
	ext := &analyzer.ExtGState{}
	if v, ok := d.res.number(gd["LW"]); ok {
		ext.LineWidth = &v
	}
	if v, ok := d.res.number(gd["LC"]); ok {
		c := int(v)
		ext.LineCap = &c
	}
	if v, ok := d.res.number(gd["LJ"]); ok {
		j := int(v)
		ext.LineJoin = &j
	}
	if v, ok := d.res.number(gd["ML"]); ok {
		ext.MiterLimit = &v
	}
	if v, ok := d.res.number(gd["FL"]); ok {
		ext.Flatness = &v
	}
	if v, ok := d.res.name(gd["RI"]); ok {
		ext.RenderingIntent = &v
	}
	if o, err := d.res.resolve(gd["D"]); err == nil {
		if arr, ok := o.(types.Array); ok && len(arr) == 2 {
			dashes, ok1 := d.res.floats(arr[0])
			phase, ok2 := d.res.number(arr[1])
			if ok1 && ok2 {
				ext.Dash = &graphicsstate.DashPattern{Array: dashes, Phase: phase}
			}
		}
	}
	if o, err := d.res.resolve(gd["Font"]); err == nil {
		if arr, ok := o.(types.Array); ok && len(arr) == 2 {
			size, _ := d.res.number(arr[1])
			m, err := d.font(arr[0])
			if err != nil {
				return nil, fmt.Errorf("extgstate font: %w", err)
			}
			ext.Font = &analyzer.ExtGStateFont{Metrics: m, Size: size}
		}
	}
	return ext, nil
}
