// Package element provides finite elements on the reference interval
// [-1,1]: Lagrange elements with a Jacobi-polynomial modal basis,
// vector elements, mixed elements and Gauss-Legendre quadrature.
package element

import (
	"github.com/notargets/FormKernel/symbolic"
	"gonum.org/v1/gonum/mat"
)

// Cell describes a reference cell.
type Cell struct {
	Name        string
	Dimension   int
	NumVertices int
	RefVolume   float64 // measure of the reference cell
}

// LineCell is the reference interval [-1,1].
func LineCell() Cell {
	return Cell{Name: "interval", Dimension: 1, NumVertices: 2, RefVolume: 2.0}
}

// FiniteElement is the contract function spaces and the assembler
// consume. Tabulate evaluates the nodal basis at reference points:
// vals and derivs are [len(points) x NodeCount] with one column per
// basis function, derivatives taken in reference coordinates.
type FiniteElement interface {
	symbolic.Element
	Family() string
	Degree() int
	Cell() Cell
	NodeCount() int
	Tabulate(points []float64) (vals, derivs *mat.Dense)
}

// Equal reports whether two elements are interchangeable: same family,
// degree, cell and value shape.
func Equal(a, b FiniteElement) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Family() == b.Family() &&
		a.Degree() == b.Degree() &&
		a.Cell() == b.Cell() &&
		a.ValueShape().Equal(b.ValueShape())
}
