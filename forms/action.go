package forms

import (
	"github.com/notargets/FormKernel/function"
	"github.com/notargets/FormKernel/symbolic"
)

// Assembler is the collaborator that turns a one-argument form into a
// discrete function. It is injected at Action construction time; the
// package keeps no ambient assembler state.
type Assembler interface {
	AssembleFunction(form *symbolic.Form, tensor *function.Function) (*function.Function, error)
}

// Action represents the application of a bilinear form to a
// coefficient. Applying Dirichlet boundary conditions is not a right
// action, so with conditions present the plain symbolic action form
// has nowhere to carry them; Action holds the form, the coefficient
// and the ordered conditions together until assembly. Without
// conditions it is a transparent wrapper over the engine's native
// action.
//
// The form and coefficient are held by reference, not copied; each
// Assemble call recomputes from them.
type Action struct {
	a   *symbolic.Form
	x   *function.Function
	bcs []*function.DirichletBC
	asm Assembler
}

// ActionOf is the sole factory for Action. bcs may be nil.
func ActionOf(form *symbolic.Form, coefficient *function.Function, bcs []*function.DirichletBC, asm Assembler) (*Action, error) {
	if form == nil {
		return nil, validationErrorf("action needs a bilinear form")
	}
	if coefficient == nil {
		return nil, validationErrorf("action needs a coefficient")
	}
	if asm == nil {
		return nil, validationErrorf("action needs an assembler")
	}
	return &Action{a: form, x: coefficient, bcs: bcs, asm: asm}, nil
}

// Form returns the engine's native action form. It is only available
// when the Action carries no boundary conditions; with conditions the
// action is not expressible as a form.
func (act *Action) Form() (*symbolic.Form, error) {
	if len(act.bcs) > 0 {
		return nil, validationErrorf("action with boundary conditions has no form representation")
	}
	return symbolic.ActionForm(act.a, act.x)
}

// BoundaryConditions returns the conditions in application order.
func (act *Action) BoundaryConditions() []*function.DirichletBC { return act.bcs }

// Assemble computes the action. Without boundary conditions it
// delegates directly to the assembler on the native action form,
// writing into tensor when supplied.
//
// With boundary conditions the constrained dofs are zeroed before the
// action is computed and restored to the coefficient's values
// afterwards, so boundary data passes through unchanged while the
// interior sees the form restricted to the unconstrained subspace.
// Both passes visit the conditions in the supplied order:
// last-applied wins wherever node sets overlap. A supplied tensor is
// mutated in place and is left in an intermediate state if an error
// occurs after mutation has begun; Assemble is not atomic.
func (act *Action) Assemble(tensor *function.Function) (*function.Function, error) {
	if len(act.bcs) == 0 {
		af, err := symbolic.ActionForm(act.a, act.x)
		if err != nil {
			return nil, err
		}
		return act.asm.AssembleFunction(af, tensor)
	}

	var out *function.Function
	if tensor == nil {
		out = function.NewFromFunction(act.x)
	} else {
		out = tensor
		if err := out.Assign(act.x); err != nil {
			return nil, err
		}
	}
	for _, bc := range act.bcs {
		if err := out.SetConstOn(0, bc.NodeSet()); err != nil {
			return nil, err
		}
	}
	af, err := symbolic.ActionForm(act.a, out)
	if err != nil {
		return nil, err
	}
	res, err := act.asm.AssembleFunction(af, nil)
	if err != nil {
		return nil, err
	}
	if err := out.Assign(res); err != nil {
		return nil, err
	}
	for _, bc := range act.bcs {
		if err := out.AssignOn(act.x, bc.NodeSet()); err != nil {
			return nil, err
		}
	}
	return out, nil
}
