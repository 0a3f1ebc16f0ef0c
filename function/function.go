// Package function provides discrete functions over function spaces
// and Dirichlet boundary conditions. A Function doubles as a
// coefficient leaf in symbolic expressions.
package function

import (
	"fmt"
	"sync/atomic"

	"github.com/notargets/FormKernel/space"
	"github.com/notargets/FormKernel/symbolic"
	"gonum.org/v1/gonum/mat"
)

var coeffCounter atomic.Int64

// Function is a discrete function: a function space plus one value
// per degree of freedom.
type Function struct {
	space space.Space
	dat   *mat.VecDense
	id    int
}

// New allocates a zeroed function on V.
func New(V space.Space) *Function {
	return &Function{
		space: V,
		dat:   V.MakeDat(),
		id:    int(coeffCounter.Add(1) - 1),
	}
}

// NewFromFunction builds a copy of f: same space, values copied, new
// coefficient identity.
func NewFromFunction(f *Function) *Function {
	g := New(f.space)
	g.dat.CopyVec(f.dat)
	return g
}

func (f *Function) FunctionSpace() space.Space { return f.space }

// Dat exposes the backing storage. Mutations are visible to every
// holder of the function.
func (f *Function) Dat() *mat.VecDense { return f.dat }

func (f *Function) At(i int) float64 { return f.dat.AtVec(i) }

// Assign copies g's values into f. The spaces must have the same
// dof count.
func (f *Function) Assign(g *Function) error {
	if g.dat.Len() != f.dat.Len() {
		return fmt.Errorf("function: cannot assign %d dofs into %d", g.dat.Len(), f.dat.Len())
	}
	f.dat.CopyVec(g.dat)
	return nil
}

// AssignOn copies g's values into f on the given dofs only.
func (f *Function) AssignOn(g *Function, subset []int) error {
	if g.dat.Len() != f.dat.Len() {
		return fmt.Errorf("function: cannot assign %d dofs into %d", g.dat.Len(), f.dat.Len())
	}
	for _, dof := range subset {
		if dof < 0 || dof >= f.dat.Len() {
			return fmt.Errorf("function: subset dof %d out of range [0,%d)", dof, f.dat.Len())
		}
		f.dat.SetVec(dof, g.dat.AtVec(dof))
	}
	return nil
}

// SetConst sets every dof to v.
func (f *Function) SetConst(v float64) {
	for i := 0; i < f.dat.Len(); i++ {
		f.dat.SetVec(i, v)
	}
}

// SetConstOn sets the given dofs to v.
func (f *Function) SetConstOn(v float64, subset []int) error {
	for _, dof := range subset {
		if dof < 0 || dof >= f.dat.Len() {
			return fmt.Errorf("function: subset dof %d out of range [0,%d)", dof, f.dat.Len())
		}
		f.dat.SetVec(dof, v)
	}
	return nil
}

// Interpolate fills f with fn evaluated at every dof's coordinate.
// The space must expose node coordinates (mixed spaces do not).
func (f *Function) Interpolate(fn func(x float64) float64) error {
	nc, ok := f.space.(interface{ NodeCoordinates() []float64 })
	if !ok {
		return fmt.Errorf("function: space %T does not expose node coordinates", f.space)
	}
	for dof, x := range nc.NodeCoordinates() {
		f.dat.SetVec(dof, fn(x))
	}
	return nil
}

// symbolic.Coefficient implementation.

func (f *Function) ValueShape() symbolic.Shape {
	return f.space.Element().ValueShape()
}

func (f *Function) CoefficientElement() symbolic.Element {
	return f.space.Element()
}

func (f *Function) CoefficientID() int { return f.id }

func (f *Function) String() string {
	return fmt.Sprintf("w_%d", f.id)
}
