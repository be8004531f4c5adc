package geom

import "math"

// Matrix is a 2D affine transformation in row-major 2x3 form:
//
//	| a  b  c |
//	| d  e  f |
//
// mapping x' = a*x + b*y + c and y' = d*x + e*y + f.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

func Identity() Matrix { return Matrix{A: 1, E: 1} }

func Translate(x, y float64) Matrix { return Matrix{A: 1, C: x, E: 1, F: y} }

func Scale(s float64) Matrix { return Matrix{A: s, E: s} }

// Rotate returns a rotation by angle radians around the origin.
func Rotate(angle float64) Matrix {
	sin, cos := math.Sincos(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply returns m * o, i.e. the transform that applies o first and m
// second.
func (m Matrix) Multiply(o Matrix) Matrix {
	return Matrix{
		A: m.A*o.A + m.B*o.D,
		B: m.A*o.B + m.B*o.E,
		C: m.A*o.C + m.B*o.F + m.C,
		D: m.D*o.A + m.E*o.D,
		E: m.D*o.B + m.E*o.E,
		F: m.D*o.C + m.E*o.F + m.F,
	}
}

// Then returns the transform that applies m first and o second.
func (m Matrix) Then(o Matrix) Matrix { return o.Multiply(m) }

func (m Matrix) Apply(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// ApplyAll maps every point of pts into a new slice.
func (m Matrix) ApplyAll(pts []Point) []Point {
	if pts == nil {
		return nil
	}
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

func (m Matrix) IsIdentity() bool { return m == Identity() }

// Compose folds a transform stack into one matrix. The first element is
// applied first.
func Compose(stack ...Matrix) Matrix {
	out := Identity()
	for _, m := range stack {
		out = out.Then(m)
	}
	return out
}
