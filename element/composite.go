package element

import (
	"fmt"
	"strings"

	"github.com/notargets/FormKernel/symbolic"
	"gonum.org/v1/gonum/mat"
)

// Vector is a scalar element repeated over dim components. Degrees of
// freedom are blocked node-major: all components of node 0, then node
// 1, and so on.
type Vector struct {
	base *Lagrange
	dim  int
}

func NewVector(base *Lagrange, dim int) (*Vector, error) {
	if base == nil {
		return nil, fmt.Errorf("element: vector element needs a base element")
	}
	if dim < 1 {
		return nil, fmt.Errorf("element: vector dimension must be >= 1, got %d", dim)
	}
	return &Vector{base: base, dim: dim}, nil
}

func (el *Vector) Family() string             { return el.base.Family() }
func (el *Vector) Degree() int                { return el.base.Degree() }
func (el *Vector) Cell() Cell                 { return el.base.Cell() }
func (el *Vector) NodeCount() int             { return el.base.NodeCount() * el.dim }
func (el *Vector) ValueShape() symbolic.Shape { return symbolic.Shape{el.dim} }
func (el *Vector) Dim() int                   { return el.dim }
func (el *Vector) Base() *Lagrange            { return el.base }

// Tabulate returns the scalar base tabulation; the component blocking
// is applied by consumers that know the dof layout.
func (el *Vector) Tabulate(points []float64) (vals, derivs *mat.Dense) {
	return el.base.Tabulate(points)
}

func (el *Vector) String() string {
	return fmt.Sprintf("Vector(%s, dim=%d)", el.base, el.dim)
}

// Mixed concatenates subelements. It implements symbolic.MixedElement
// so expressions over it can be split per subspace.
type Mixed struct {
	subs []FiniteElement
}

func NewMixed(subs ...FiniteElement) (*Mixed, error) {
	if len(subs) == 0 {
		return nil, fmt.Errorf("element: mixed element needs at least one subelement")
	}
	cell := subs[0].Cell()
	for i, s := range subs[1:] {
		if s.Cell() != cell {
			return nil, fmt.Errorf("element: subelement %d cell %q differs from %q",
				i+1, s.Cell().Name, cell.Name)
		}
	}
	return &Mixed{subs: append([]FiniteElement(nil), subs...)}, nil
}

func (el *Mixed) Family() string { return "Mixed" }

// Degree reports the maximum subelement degree.
func (el *Mixed) Degree() int {
	d := 0
	for _, s := range el.subs {
		if s.Degree() > d {
			d = s.Degree()
		}
	}
	return d
}

func (el *Mixed) Cell() Cell { return el.subs[0].Cell() }

func (el *Mixed) NodeCount() int {
	n := 0
	for _, s := range el.subs {
		n += s.NodeCount()
	}
	return n
}

func (el *Mixed) ValueShape() symbolic.Shape {
	n := 0
	for _, s := range el.subs {
		n += s.ValueShape().NumComponents()
	}
	return symbolic.Shape{n}
}

func (el *Mixed) NumSubElements() int { return len(el.subs) }

func (el *Mixed) SubElement(i int) symbolic.Element { return el.subs[i] }

func (el *Mixed) Sub(i int) FiniteElement { return el.subs[i] }

// Tabulate is not defined for mixed elements; assembly runs on the
// subspaces individually.
func (el *Mixed) Tabulate(points []float64) (vals, derivs *mat.Dense) {
	panic("element: mixed elements cannot be tabulated directly")
}

func (el *Mixed) String() string {
	names := make([]string, len(el.subs))
	for i, s := range el.subs {
		names[i] = fmt.Sprint(s)
	}
	return "Mixed(" + strings.Join(names, ", ") + ")"
}
