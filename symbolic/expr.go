// Package symbolic implements the expression algebra that variational
// forms are written in: argument and coefficient leaves, tensor-shaped
// expression nodes, integrals over cell and facet measures, and the
// form transformations (action, adjoint, derivative, split) that the
// binding layer in forms/ delegates to.
package symbolic

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Shape is the value shape of an expression or element. A nil or empty
// shape is a scalar.
type Shape []int

func (s Shape) IsScalar() bool {
	return len(s) == 0
}

// NumComponents returns the flattened component count (1 for scalars).
func (s Shape) NumComponents() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}
	return true
}

func (s Shape) String() string {
	if s.IsScalar() {
		return "()"
	}
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = strconv.Itoa(d)
	}
	return "(" + strings.Join(parts, ",") + ")"
}

// Element is the minimal finite element contract the algebra needs.
// Concrete elements live in the element package.
type Element interface {
	ValueShape() Shape
}

// MixedElement is implemented by elements composed of subelements.
// Split uses it to break an expression into per-subspace components.
type MixedElement interface {
	Element
	NumSubElements() int
	SubElement(i int) Element
}

// Domain is the geometric context of mesh-derived quantities
// (facet normals, cell sizes). Meshes implement it.
type Domain interface {
	GeometricDimension() int
}

// Expr is a node in an expression tree. Trees are immutable; all
// transformations build new trees, sharing untouched subtrees.
type Expr interface {
	ValueShape() Shape
	String() string
}

// Argument is a placeholder leaf standing for a test or trial function.
// Arguments are ordered and distinguished by their integer count; by
// convention -2 marks a test function, -1 a trial function, and
// non-negative counts are minted for derivative and adjoint arguments.
type Argument interface {
	Expr
	Count() int
	ArgElement() Element
}

// Coefficient is a leaf standing for a known discrete function.
// function.Function implements it.
type Coefficient interface {
	Expr
	CoefficientElement() Element
	CoefficientID() int
}

var argCounter atomic.Int64

// NextCount returns a fresh non-negative argument count. Counts from
// this source never collide with the -2/-1 test/trial convention.
func NextCount() int {
	return int(argCounter.Add(1) - 1)
}

// BaseArgument is the engine's own argument leaf: element plus count,
// with no function-space binding. The binding layer wraps this identity
// with a bound space; transformations that mint replacement arguments
// should prefer bound arguments so downstream consumers keep access to
// node maps (see forms.Adjoint).
type BaseArgument struct {
	element Element
	count   int
}

func NewBaseArgument(element Element, count int) *BaseArgument {
	return &BaseArgument{element: element, count: count}
}

// NewFreshBaseArgument mints a BaseArgument with the next free count.
func NewFreshBaseArgument(element Element) *BaseArgument {
	return &BaseArgument{element: element, count: NextCount()}
}

func (a *BaseArgument) Count() int          { return a.count }
func (a *BaseArgument) ArgElement() Element { return a.element }
func (a *BaseArgument) ValueShape() Shape   { return a.element.ValueShape() }

func (a *BaseArgument) String() string {
	return fmt.Sprintf("v_%d", a.count)
}
