// Package forms is the binding layer between the symbolic form
// algebra and the mesh/function-space runtime: arguments carrying a
// function-space binding, boundary-condition-aware form actions, and
// the user-facing constructors (TestFunction, TrialFunction,
// Derivative, Adjoint) for stating variational problems.
package forms

import (
	"fmt"

	"github.com/notargets/FormKernel/element"
	"github.com/notargets/FormKernel/space"
	"github.com/notargets/FormKernel/symbolic"
	"gonum.org/v1/gonum/mat"
)

// Test and trial functions occupy fixed slots in the argument count
// ordering; derivative and adjoint machinery mints fresh non-negative
// counts and never collides with them.
const (
	TestCount  = -2
	TrialCount = -1
)

// Argument is a placeholder for a test or trial function in a form.
// It layers a function-space binding over the base symbolic identity
// (element plus count), so node maps and storage allocation are
// available without baking them into the algebra. Arguments are
// immutable; Reconstruct returns new values.
type Argument struct {
	elem  element.FiniteElement
	count int
	spc   space.Space
}

// NewArgument builds an argument with an explicit count. The element
// must agree with the space's element in value shape.
func NewArgument(elem element.FiniteElement, V space.Space, count int) (*Argument, error) {
	if elem == nil {
		return nil, validationErrorf("argument needs a finite element")
	}
	if V == nil {
		return nil, validationErrorf("argument needs a function space")
	}
	if !elem.ValueShape().Equal(V.Element().ValueShape()) {
		return nil, validationErrorf("element shape %v does not match space shape %v",
			elem.ValueShape(), V.Element().ValueShape())
	}
	return &Argument{elem: elem, count: count, spc: V}, nil
}

// NewAutoArgument builds an argument with a fresh non-negative count.
func NewAutoArgument(elem element.FiniteElement, V space.Space) (*Argument, error) {
	return NewArgument(elem, V, symbolic.NextCount())
}

func (a *Argument) Count() int                     { return a.count }
func (a *Argument) Element() element.FiniteElement { return a.elem }
func (a *Argument) ArgElement() symbolic.Element   { return a.elem }
func (a *Argument) ValueShape() symbolic.Shape     { return a.elem.ValueShape() }
func (a *Argument) FunctionSpace() space.Space     { return a.spc }

// Node-map accessors delegate to the bound function space.

func (a *Argument) CellNodeMap() *space.NodeMap          { return a.spc.CellNodeMap() }
func (a *Argument) InteriorFacetNodeMap() *space.NodeMap { return a.spc.InteriorFacetNodeMap() }
func (a *Argument) ExteriorFacetNodeMap() *space.NodeMap { return a.spc.ExteriorFacetNodeMap() }

// MakeDat allocates backing storage for a discrete function on this
// argument's space.
func (a *Argument) MakeDat() *mat.VecDense { return a.spc.MakeDat() }

// Equal reports interchangeability: same element, space and count.
func (a *Argument) Equal(b *Argument) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.count == b.count && a.spc == b.spc && element.Equal(a.elem, b.elem)
}

func (a *Argument) String() string {
	return fmt.Sprintf("v_%d", a.count)
}

// ReconstructOption overrides one field during reconstruction.
type ReconstructOption func(*reconstructSpec)

type reconstructSpec struct {
	elem     element.FiniteElement
	elemSet  bool
	spc      space.Space
	spcSet   bool
	count    int
	countSet bool
}

func WithElement(elem element.FiniteElement) ReconstructOption {
	return func(s *reconstructSpec) { s.elem, s.elemSet = elem, true }
}

func WithFunctionSpace(V space.Space) ReconstructOption {
	return func(s *reconstructSpec) { s.spc, s.spcSet = V, true }
}

func WithCount(count int) ReconstructOption {
	return func(s *reconstructSpec) { s.count, s.countSet = count, true }
}

// Reconstruct builds a new argument with the given fields replaced.
// Omitted fields keep their current values; when nothing changes the
// receiver itself is returned, so callers can detect no-ops by
// reference equality. The new element must have the same value shape
// as the current one: a shape change would silently alter the tensor
// rank of every form the argument appears in.
func (a *Argument) Reconstruct(opts ...ReconstructOption) (*Argument, error) {
	spec := reconstructSpec{elem: a.elem, spc: a.spc, count: a.count}
	for _, opt := range opts {
		opt(&spec)
	}
	if spec.elemSet && spec.elem == nil {
		return nil, validationErrorf("cannot reconstruct with a nil element")
	}
	if spec.spcSet && spec.spc == nil {
		return nil, validationErrorf("cannot reconstruct with a nil function space")
	}
	if spec.elem == a.elem && spec.spc == a.spc && spec.count == a.count {
		return a, nil
	}
	if !spec.elem.ValueShape().Equal(a.elem.ValueShape()) {
		return nil, validationErrorf("cannot reconstruct with value shape %v, argument has %v",
			spec.elem.ValueShape(), a.elem.ValueShape())
	}
	return NewArgument(spec.elem, spec.spc, spec.count)
}
