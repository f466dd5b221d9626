package aeony

import "math"

// Affine is a 2D affine matrix stored as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// singularEpsilon bounds the determinant below which a matrix is treated as
// non-invertible.
const singularEpsilon = 1e-12

// Multiply returns m * o, so o is applied to a point first.
func (m Affine) Multiply(o Affine) Affine {
	return Affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// Translate returns m followed on the right by a translation, matching the
// chaining order of a transform stack.
func (m Affine) Translate(x, y float64) Affine {
	return m.Multiply(Affine{1, 0, 0, 1, x, y})
}

// Rotate returns m with a rotation of rad radians (clockwise on screen)
// appended on the right.
func (m Affine) Rotate(rad float64) Affine {
	sin, cos := math.Sincos(rad)
	return m.Multiply(Affine{cos, sin, -sin, cos, 0, 0})
}

// Scale returns m with a scale appended on the right.
func (m Affine) Scale(sx, sy float64) Affine {
	return m.Multiply(Affine{sx, 0, 0, sy, 0, 0})
}

// Determinant returns the determinant of the linear part.
func (m Affine) Determinant() float64 {
	return m[0]*m[3] - m[2]*m[1]
}

// Invert returns the inverse of m. ok is false when m is singular, in which
// case the identity is returned.
func (m Affine) Invert() (inv Affine, ok bool) {
	det := m.Determinant()
	if det > -singularEpsilon && det < singularEpsilon {
		return Identity, false
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}, true
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}
