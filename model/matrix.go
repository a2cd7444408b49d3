package model

import "math"

// singularEpsilon is the determinant magnitude below which a matrix is
// treated as non-invertible.
const singularEpsilon = 1e-12

// Matrix represents a 2D affine transformation matrix [a b c d e f], the
// first two columns of the homogeneous 3x3 matrix
//
//	| a b 0 |
//	| c d 0 |
//	| e f 1 |
//
// Points are row vectors, so p' = p * M.
type Matrix [6]float64

func Identity() Matrix {
	return Matrix{1, 0, 0, 1, 0, 0}
}

// Transform maps a point, translation included
func (m Matrix) Transform(p Point) Point {
	return Point{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}

// TransformVector applies the linear part of the matrix to a vector,
// ignoring the translation.
func (m Matrix) TransformVector(v Point) Point {
	return Point{
		X: m[0]*v.X + m[2]*v.Y,
		Y: m[1]*v.X + m[3]*v.Y,
	}
}

// Multiply multiplies two matrices. The result m * other applies m first,
// then other.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		m[0]*other[0] + m[1]*other[2],
		m[0]*other[1] + m[1]*other[3],
		m[2]*other[0] + m[3]*other[2],
		m[2]*other[1] + m[3]*other[3],
		m[4]*other[0] + m[5]*other[2] + other[4],
		m[4]*other[1] + m[5]*other[3] + other[5],
	}
}

// Determinant returns ad - bc
func (m Matrix) Determinant() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

// Invert returns the inverse matrix. When the matrix is singular the
// identity is returned with ok set to false.
func (m Matrix) Invert() (inv Matrix, ok bool) {
	det := m.Determinant()
	if math.Abs(det) < singularEpsilon {
		return Identity(), false
	}
	a := m[3] / det
	b := -m[1] / det
	c := -m[2] / det
	d := m[0] / det
	return Matrix{
		a, b,
		c, d,
		-(m[4]*a + m[5]*c),
		-(m[4]*b + m[5]*d),
	}, true
}

func Translate(tx, ty float64) Matrix {
	return Matrix{1, 0, 0, 1, tx, ty}
}

func Scale(sx, sy float64) Matrix {
	return Matrix{sx, 0, 0, sy, 0, 0}
}

// Rotate returns a counter-clockwise rotation by angle radians
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{cos, sin, -sin, cos, 0, 0}
}

func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// XScale returns the length of the image of the unit X vector
func (m Matrix) XScale() float64 {
	return math.Hypot(m[0], m[1])
}

// YScale returns the length of the image of the unit Y vector
func (m Matrix) YScale() float64 {
	return math.Hypot(m[2], m[3])
}
