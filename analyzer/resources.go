package analyzer

import (
	"errors"
	"fmt"

	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/model"
)

// ErrResourceNotFound is returned by Resources when a name is not defined
var ErrResourceNotFound = errors.New("resource not found")

// Canvas is a page or other content source
type Canvas interface {
	Content() ([]byte, error)
	CropBox() model.BBox
	Resources() Resources
}

// Resources resolves the named resources of a content stream
type Resources interface {
	Font(name string) (font.Metrics, error)
	XObject(name string) (XObject, error)
	ExtGState(name string) (*ExtGState, error)
}

// XObject is a *Form or an *Image
type XObject interface {
	isXObject()
}

// Form is a form XObject: a content stream with its own matrix, bounding
// box and, optionally, resources
type Form struct {
	Content   []byte
	Matrix    model.Matrix
	BBox      model.BBox
	Resources Resources
}

// Image is an image XObject; only its size is kept
type Image struct {
	Width  int
	Height int
}

func (*Form) isXObject()  {}
func (*Image) isXObject() {}

// ExtGState holds the entries of a graphics state parameter dictionary that
// the analyzer applies. Nil fields are absent from the dictionary.
type ExtGState struct {
	LineWidth       *float64
	LineCap         *int
	LineJoin        *int
	MiterLimit      *float64
	Dash            *graphicsstate.DashPattern
	RenderingIntent *string
	Flatness        *float64
	Font            *ExtGStateFont
}

// ExtGStateFont is the /Font entry of an ExtGState
type ExtGStateFont struct {
	Metrics font.Metrics
	Size    float64
}

// apply copies the present entries into gs
func (e *ExtGState) apply(name string, gs *graphicsstate.GraphicsState) {
	gs.ExtGState = name
	if e.LineWidth != nil {
		gs.LineWidth = *e.LineWidth
	}
	if e.LineCap != nil {
		gs.LineCap = *e.LineCap
	}
	if e.LineJoin != nil {
		gs.LineJoin = *e.LineJoin
	}
	if e.MiterLimit != nil {
		gs.MiterLimit = *e.MiterLimit
	}
	if e.Dash != nil {
		gs.Dash = graphicsstate.DashPattern{
			Array: append([]float64(nil), e.Dash.Array...),
			Phase: e.Dash.Phase,
		}
	}
	if e.RenderingIntent != nil {
		gs.RenderingIntent = *e.RenderingIntent
	}
	if e.Flatness != nil {
		gs.Flatness = *e.Flatness
	}
	if e.Font != nil {
		gs.SetFont(name, e.Font.Metrics, e.Font.Size)
	}
}

// MapResources is an in-memory Resources
type MapResources struct {
	Fonts      map[string]font.Metrics
	XObjects   map[string]XObject
	ExtGStates map[string]*ExtGState
}

func notFound(kind, name string) error {
	return fmt.Errorf("%s %q: %w", kind, name, ErrResourceNotFound)
}

func (m *MapResources) Font(name string) (font.Metrics, error) {
	if f, ok := m.Fonts[name]; ok {
		return f, nil
	}
	return nil, notFound("font", name)
}

func (m *MapResources) XObject(name string) (XObject, error) {
	if x, ok := m.XObjects[name]; ok {
		return x, nil
	}
	return nil, notFound("xobject", name)
}

func (m *MapResources) ExtGState(name string) (*ExtGState, error) {
	if e, ok := m.ExtGStates[name]; ok {
		return e, nil
	}
	return nil, notFound("extgstate", name)
}

// layered looks names up in child first, then in parent
type layered struct {
	parent Resources
	child  Resources
}

// Layered returns resources where child shadows parent. Lookups fall back
// to parent only when child reports ErrResourceNotFound.
func Layered(parent, child Resources) Resources {
	switch {
	case child == nil:
		return parent
	case parent == nil:
		return child
	}
	return &layered{parent: parent, child: child}
}

func (l *layered) Font(name string) (font.Metrics, error) {
	f, err := l.child.Font(name)
	if errors.Is(err, ErrResourceNotFound) {
		return l.parent.Font(name)
	}
	return f, err
}

func (l *layered) XObject(name string) (XObject, error) {
	x, err := l.child.XObject(name)
	if errors.Is(err, ErrResourceNotFound) {
		return l.parent.XObject(name)
	}
	return x, err
}

func (l *layered) ExtGState(name string) (*ExtGState, error) {
	e, err := l.child.ExtGState(name)
	if errors.Is(err, ErrResourceNotFound) {
		return l.parent.ExtGState(name)
	}
	return e, err
}
