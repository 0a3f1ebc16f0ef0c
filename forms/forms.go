package forms

import (
	"github.com/notargets/FormKernel/function"
	"github.com/notargets/FormKernel/mesh"
	"github.com/notargets/FormKernel/space"
	"github.com/notargets/FormKernel/symbolic"
)

// TestFunction builds the canonical test function (count -2) on V.
func TestFunction(V space.Space) *Argument {
	return &Argument{elem: V.Element(), count: TestCount, spc: V}
}

// TrialFunction builds the canonical trial function (count -1) on V.
func TrialFunction(V space.Space) *Argument {
	return &Argument{elem: V.Element(), count: TrialCount, spc: V}
}

// TestFunctions builds the canonical test function on V and splits it
// into one component per subspace. For a non-mixed space the result
// has a single entry.
func TestFunctions(V space.Space) []symbolic.Expr {
	return symbolic.Split(TestFunction(V))
}

// TrialFunctions builds the canonical trial function on V and splits
// it into one component per subspace.
func TrialFunctions(V space.Space) []symbolic.Expr {
	return symbolic.Split(TrialFunction(V))
}

// Derivative linearizes a form with respect to u. The resulting form
// gains one argument in u's function space: du when supplied, or a
// freshly numbered argument minted from u's space. Without du, u must
// be a discrete function, since nothing else exposes a space to bind
// the new argument to.
func Derivative(form *symbolic.Form, u symbolic.Coefficient, du ...symbolic.Expr) (*symbolic.Form, error) {
	if len(du) > 1 {
		return nil, validationErrorf("at most one derivative direction may be supplied, got %d", len(du))
	}
	var direction symbolic.Expr
	if len(du) == 1 {
		direction = du[0]
	} else {
		fn, ok := u.(interface{ FunctionSpace() space.Space })
		if !ok {
			return nil, typeMismatchErrorf("cannot compute derivative with respect to %s: not a discrete function", u)
		}
		V := fn.FunctionSpace()
		arg, err := NewAutoArgument(V.Element(), V)
		if err != nil {
			return nil, err
		}
		direction = arg
	}
	return symbolic.DerivativeForm(form, u, direction)
}

// Adjoint swaps the test and trial roles of a bilinear form. The two
// replacement arguments are always constructed here, bound to the
// original arguments' elements and spaces with fresh counts, rather
// than letting the engine mint unbound base arguments that downstream
// assembly could not resolve. A caller needing the adjoint to share
// arguments with other forms supplies the pair (u2, v2) explicitly;
// it is passed through unvalidated beyond its length.
func Adjoint(form *symbolic.Form, reordered ...*Argument) (*symbolic.Form, error) {
	switch len(reordered) {
	case 0:
		args := symbolic.ExtractArguments(form)
		if len(args) != 2 {
			return nil, validationErrorf("adjoint needs a bilinear form, got %d arguments", len(args))
		}
		v, ok := args[0].(*Argument)
		if !ok {
			return nil, typeMismatchErrorf("argument %s carries no function-space binding", args[0])
		}
		u, ok := args[1].(*Argument)
		if !ok {
			return nil, typeMismatchErrorf("argument %s carries no function-space binding", args[1])
		}
		// Order matters: ru is minted first so it takes the lower
		// fresh count and lands in the test slot after extraction.
		ru, err := NewAutoArgument(u.Element(), u.FunctionSpace())
		if err != nil {
			return nil, err
		}
		rv, err := NewAutoArgument(v.Element(), v.FunctionSpace())
		if err != nil {
			return nil, err
		}
		return symbolic.AdjointForm(form, &[2]symbolic.Argument{ru, rv})
	case 2:
		return symbolic.AdjointForm(form, &[2]symbolic.Argument{reordered[0], reordered[1]})
	default:
		return nil, validationErrorf("reordered arguments must be supplied as a pair, got %d", len(reordered))
	}
}

// ActionExpr returns the engine's native action form when bcs is
// empty, and a boundary-condition-aware Action wrapper otherwise.
// Exactly one of the two results is non-nil.
func ActionExpr(form *symbolic.Form, coefficient *function.Function, bcs []*function.DirichletBC, asm Assembler) (*symbolic.Form, *Action, error) {
	if len(bcs) == 0 {
		af, err := symbolic.ActionForm(form, coefficient)
		if err != nil {
			return nil, nil, err
		}
		return af, nil, nil
	}
	act, err := ActionOf(form, coefficient, bcs, asm)
	if err != nil {
		return nil, nil, err
	}
	return nil, act, nil
}

// CellSize is a symbolic representation of the cell size of a mesh:
// twice the cell circumradius.
func CellSize(m *mesh.Mesh) symbolic.Expr {
	return symbolic.Mul(symbolic.NewConstant(2), symbolic.NewCircumradius(m))
}

// FacetNormal is a symbolic representation of the outward facet
// normal on a mesh.
func FacetNormal(m *mesh.Mesh) symbolic.Expr {
	return symbolic.NewFacetNormal(m)
}
