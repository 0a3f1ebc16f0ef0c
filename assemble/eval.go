package assemble

import (
	"fmt"

	"github.com/notargets/FormKernel/symbolic"
)

// valGrad carries the value and physical gradient of a basis function
// or coefficient at one evaluation point.
type valGrad struct {
	val, grad float64
}

// point is the evaluation state at one quadrature or facet point.
type point struct {
	x       float64 // physical coordinate
	h       float64 // length of the containing cell
	normal  float64 // outward normal, facet points only
	onFacet bool

	argVal   map[int]valGrad // argument count → basis value/gradient
	coeffVal map[int]valGrad // coefficient id → value/gradient
}

// evalExpr evaluates a scalar expression at a point. Gradients are
// supported on argument and coefficient leaves; composite operands
// under grad are rejected.
func evalExpr(e symbolic.Expr, pt *point) (float64, error) {
	switch n := e.(type) {
	case *symbolic.Constant:
		return n.Value, nil
	case symbolic.Argument:
		vg, ok := pt.argVal[n.Count()]
		if !ok {
			return 0, fmt.Errorf("assemble: argument %s has no value at this point", n)
		}
		return vg.val, nil
	case symbolic.Coefficient:
		vg, ok := pt.coeffVal[n.CoefficientID()]
		if !ok {
			return 0, fmt.Errorf("assemble: coefficient %s has no value at this point", n)
		}
		return vg.val, nil
	case *symbolic.SpatialCoordinate:
		return pt.x, nil
	case *symbolic.FacetNormal:
		if !pt.onFacet {
			return 0, fmt.Errorf("assemble: facet normal used outside a facet integral")
		}
		return pt.normal, nil
	case *symbolic.Circumradius:
		return pt.h / 2, nil
	case *symbolic.Sum:
		l, err := evalExpr(n.Left, pt)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(n.Right, pt)
		if err != nil {
			return 0, err
		}
		return l + r, nil
	case *symbolic.Product:
		l, err := evalExpr(n.Left, pt)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(n.Right, pt)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case *symbolic.InnerProduct:
		// Scalar-only pipeline: inner degenerates to a product.
		l, err := evalExpr(n.Left, pt)
		if err != nil {
			return 0, err
		}
		r, err := evalExpr(n.Right, pt)
		if err != nil {
			return 0, err
		}
		return l * r, nil
	case *symbolic.Gradient:
		return evalGrad(n.Operand, pt)
	}
	return 0, fmt.Errorf("assemble: cannot evaluate %s (%T)", e, e)
}

func evalGrad(e symbolic.Expr, pt *point) (float64, error) {
	switch n := e.(type) {
	case symbolic.Argument:
		vg, ok := pt.argVal[n.Count()]
		if !ok {
			return 0, fmt.Errorf("assemble: argument %s has no value at this point", n)
		}
		return vg.grad, nil
	case symbolic.Coefficient:
		vg, ok := pt.coeffVal[n.CoefficientID()]
		if !ok {
			return 0, fmt.Errorf("assemble: coefficient %s has no value at this point", n)
		}
		return vg.grad, nil
	}
	return 0, fmt.Errorf("assemble: grad is only supported on arguments and coefficients, got %s", e)
}
