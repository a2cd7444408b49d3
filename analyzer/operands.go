package analyzer

import (
	"github.com/tsawler/textlines/core"
	"github.com/tsawler/textlines/graphicsstate"
	"github.com/tsawler/textlines/model"
)

// numbers converts every operand to a float
func numbers(ops []core.Object) ([]float64, bool) {
	out := make([]float64, len(ops))
	for i, o := range ops {
		v, ok := core.ToFloat(o)
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func matrixOf(ops []core.Object) (model.Matrix, bool) {
	v, ok := numbers(ops)
	if !ok || len(v) != 6 {
		return model.Matrix{}, false
	}
	return model.Matrix{v[0], v[1], v[2], v[3], v[4], v[5]}, true
}

func deviceSpace(n int) string {
	switch n {
	case 1:
		return "DeviceGray"
	case 3:
		return "DeviceRGB"
	case 4:
		return "DeviceCMYK"
	}
	return ""
}

// initialColor is the colour selected by CS or cs
func initialColor(space string) graphicsstate.Color {
	switch space {
	case "DeviceRGB", "CalRGB", "Lab":
		return graphicsstate.Color{Space: space, Components: []float64{0, 0, 0}}
	case "DeviceCMYK":
		return graphicsstate.Color{Space: space, Components: []float64{0, 0, 0, 1}}
	case "Pattern":
		return graphicsstate.Color{Space: space}
	}
	return graphicsstate.Color{Space: space, Components: []float64{0}}
}
