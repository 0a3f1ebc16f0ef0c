package element

import (
	"fmt"

	"github.com/notargets/FormKernel/symbolic"
	"gonum.org/v1/gonum/mat"
)

// Families understood by NewLagrange.
const (
	CG = "CG" // continuous Galerkin (Lagrange)
	DG = "DG" // discontinuous Galerkin
)

// Lagrange is a scalar nodal element on the reference interval. Nodes
// are equispaced from -1 to 1, endpoints first and last, so that
// function spaces can share vertex degrees of freedom between cells.
type Lagrange struct {
	family string
	degree int
	cell   Cell
	nodes  []float64
	vinv   *mat.Dense // inverse Vandermonde at the nodes
}

// NewLagrange builds a scalar Lagrange element. CG needs degree >= 1;
// DG admits degree 0.
func NewLagrange(family string, degree int) (*Lagrange, error) {
	switch family {
	case CG:
		if degree < 1 {
			return nil, fmt.Errorf("element: CG degree must be >= 1, got %d", degree)
		}
	case DG:
		if degree < 0 {
			return nil, fmt.Errorf("element: DG degree must be >= 0, got %d", degree)
		}
	default:
		return nil, fmt.Errorf("element: unknown family %q", family)
	}

	np := degree + 1
	nodes := make([]float64, np)
	if degree == 0 {
		nodes[0] = 0
	} else {
		for i := range nodes {
			nodes[i] = -1 + 2*float64(i)/float64(degree)
		}
	}

	V := Vandermonde1D(degree, nodes)
	var vinv mat.Dense
	if err := vinv.Inverse(V); err != nil {
		return nil, fmt.Errorf("element: singular Vandermonde for degree %d: %w", degree, err)
	}

	return &Lagrange{
		family: family,
		degree: degree,
		cell:   LineCell(),
		nodes:  nodes,
		vinv:   &vinv,
	}, nil
}

func (el *Lagrange) Family() string             { return el.family }
func (el *Lagrange) Degree() int                { return el.degree }
func (el *Lagrange) Cell() Cell                 { return el.cell }
func (el *Lagrange) NodeCount() int             { return el.degree + 1 }
func (el *Lagrange) ValueShape() symbolic.Shape { return nil }

// Nodes returns the reference node coordinates. The slice is shared.
func (el *Lagrange) Nodes() []float64 { return el.nodes }

// Tabulate evaluates the nodal basis at the given reference points:
// values via P(r) V^-1 and derivatives via P'(r) V^-1.
func (el *Lagrange) Tabulate(points []float64) (vals, derivs *mat.Dense) {
	P := Vandermonde1D(el.degree, points)
	Pr := GradVandermonde1D(el.degree, points)

	vals = mat.NewDense(len(points), el.NodeCount(), nil)
	derivs = mat.NewDense(len(points), el.NodeCount(), nil)
	vals.Mul(P, el.vinv)
	derivs.Mul(Pr, el.vinv)
	return vals, derivs
}

func (el *Lagrange) String() string {
	return fmt.Sprintf("%s%d", el.family, el.degree)
}
