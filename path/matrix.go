package path

// Matrix is a 2D affine transform in row-major 2x3 form:
//
//	| A B C |
//	| D E F |
//
// representing x' = A*x + B*y + C, y' = D*x + E*y + F. This is a
// local, minimal affine transform: the full transform utility a caller
// builds paths with is an out-of-scope collaborator, but Path still
// needs to carry and apply one.
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Apply transforms p by m.
func (m Matrix) Apply(p Point) Point {
	return Point{X: m.A*p.X + m.B*p.Y + m.C, Y: m.D*p.X + m.E*p.Y + m.F}
}

// Determinant returns the determinant of m's linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// Invert returns m's inverse and true, or the zero Matrix and false if
// m is singular (determinant within epsilon of zero) — the check the
// stroke plotter uses to fail fast on an uninvertible transform.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if det > -1e-12 && det < 1e-12 {
		return Matrix{}, false
	}
	inv := 1 / det
	return Matrix{
		A: m.E * inv,
		B: -m.B * inv,
		D: -m.D * inv,
		E: m.A * inv,
		C: (m.B*m.F - m.E*m.C) * inv,
		F: (m.D*m.C - m.A*m.F) * inv,
	}, true
}
