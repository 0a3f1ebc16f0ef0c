package element

import "gonum.org/v1/gonum/integrate/quad"

// GaussLegendre returns n-point Gauss-Legendre nodes and weights on
// [-1,1]. An n-point rule integrates polynomials of degree 2n-1
// exactly.
func GaussLegendre(n int) (x, w []float64) {
	x = make([]float64, n)
	w = make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	return x, w
}
