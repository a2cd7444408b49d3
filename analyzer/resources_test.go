package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/textlines/contentstream"
	"github.com/tsawler/textlines/core"
	"github.com/tsawler/textlines/font"
	"github.com/tsawler/textlines/graphicsstate"
)

func TestMapResourcesNotFound(t *testing.T) {
	res := &MapResources{}

	_, err := res.Font("F1")
	assert.ErrorIs(t, err, ErrResourceNotFound)
	_, err = res.XObject("Im1")
	assert.ErrorIs(t, err, ErrResourceNotFound)
	_, err = res.ExtGState("GS1")
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestLayered(t *testing.T) {
	helv := font.NewStandardFont("Helvetica")
	times := font.NewStandardFont("Times-Roman")
	parent := &MapResources{Fonts: map[string]font.Metrics{"F1": helv, "F2": helv}}
	child := &MapResources{Fonts: map[string]font.Metrics{"F1": times}}

	res := Layered(parent, child)

	f, err := res.Font("F1")
	require.NoError(t, err)
	assert.Same(t, times, f)

	f, err = res.Font("F2")
	require.NoError(t, err)
	assert.Same(t, helv, f)

	_, err = res.Font("F3")
	assert.ErrorIs(t, err, ErrResourceNotFound)

	assert.Same(t, parent, Layered(parent, nil))
	assert.Same(t, child, Layered(nil, child))
}

func TestTextDisplacement(t *testing.T) {
	gs := graphicsstate.NewGraphicsState(letter)
	gs.SetFont("F1", font.NewStandardFont("Courier"), 10)
	gs.Text.CharSpacing = 1
	gs.Text.WordSpacing = 2

	d, err := TextDisplacement(gs.Text, []core.Object{core.String("A B")})
	require.NoError(t, err)
	// 3 * 0.6 + 3 * Tc/fs + Tw/fs
	assert.InDelta(t, 2.3, d.X, 1e-9)
	assert.Zero(t, d.Y)

	d, err = TextDisplacement(gs.Text, []core.Object{core.Array{core.String("A"), core.Int(-500), core.Real(250)}})
	require.NoError(t, err)
	assert.InDelta(t, 0.6+0.1+0.5-0.25, d.X, 1e-9)

	gs.Text.Font = nil
	_, err = TextDisplacement(gs.Text, []core.Object{core.String("A")})
	assert.ErrorIs(t, err, ErrInvalidHandle)
}

func TestDispatchRoutesByCategory(t *testing.T) {
	var seen []string
	note := func(ev *Event) error {
		seen = append(seen, ev.Name)
		return nil
	}
	h := Handlers{PathPainting: note, XObjects: note}

	for _, name := range []string{"S", "Do", "BT"} {
		op := contentstream.LookupOp(name)
		_, err := h.Dispatch(&Event{Op: op, Name: name, Category: op.Category()})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"S", "Do"}, seen)
}

func TestWarningUnwrap(t *testing.T) {
	w := Warning{Operator: "Do", Depth: 2, Err: ErrFormDepth}
	assert.ErrorIs(t, w, ErrFormDepth)
	assert.Contains(t, w.Error(), "depth 2")
}
