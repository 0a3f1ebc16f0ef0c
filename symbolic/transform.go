package symbolic

import (
	"fmt"
	"sort"
)

// replaceExpr rewrites an expression bottom-up. repl is consulted on
// every node; when it returns a replacement the subtree is swapped
// wholesale and not descended into.
func replaceExpr(e Expr, repl func(Expr) (Expr, bool)) Expr {
	if r, ok := repl(e); ok {
		return r
	}
	switch n := e.(type) {
	case *Sum:
		return Add(replaceExpr(n.Left, repl), replaceExpr(n.Right, repl))
	case *Product:
		return Mul(replaceExpr(n.Left, repl), replaceExpr(n.Right, repl))
	case *InnerProduct:
		return Inner(replaceExpr(n.Left, repl), replaceExpr(n.Right, repl))
	case *Gradient:
		return Grad(replaceExpr(n.Operand, repl))
	case *SubComponent:
		base := replaceExpr(n.Base, repl)
		if base == n.Base {
			return n
		}
		return NewSubComponent(base, n.Index)
	}
	// Leaves pass through untouched.
	return e
}

// visitExpr walks an expression tree depth-first.
func visitExpr(e Expr, visit func(Expr)) {
	visit(e)
	switch n := e.(type) {
	case *Sum:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case *Product:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case *InnerProduct:
		visitExpr(n.Left, visit)
		visitExpr(n.Right, visit)
	case *Gradient:
		visitExpr(n.Operand, visit)
	case *SubComponent:
		visitExpr(n.Base, visit)
	}
}

// ExtractArguments collects the distinct arguments of a form, sorted
// by count, so test (-2) precedes trial (-1) precedes any minted
// derivative arguments.
func ExtractArguments(f *Form) []Argument {
	seen := make(map[int]Argument)
	for _, it := range f.Integrals() {
		visitExpr(it.Integrand, func(e Expr) {
			if a, ok := e.(Argument); ok {
				seen[a.Count()] = a
			}
		})
	}
	args := make([]Argument, 0, len(seen))
	for _, a := range seen {
		args = append(args, a)
	}
	sort.Slice(args, func(i, j int) bool { return args[i].Count() < args[j].Count() })
	return args
}

// ExtractCoefficients collects the distinct coefficients of a form in
// id order.
func ExtractCoefficients(f *Form) []Coefficient {
	seen := make(map[int]Coefficient)
	for _, it := range f.Integrals() {
		visitExpr(it.Integrand, func(e Expr) {
			if c, ok := e.(Coefficient); ok {
				seen[c.CoefficientID()] = c
			}
		})
	}
	coeffs := make([]Coefficient, 0, len(seen))
	for _, c := range seen {
		coeffs = append(coeffs, c)
	}
	sort.Slice(coeffs, func(i, j int) bool {
		return coeffs[i].CoefficientID() < coeffs[j].CoefficientID()
	})
	return coeffs
}

// ReplaceArguments substitutes expressions for arguments by count.
func ReplaceArguments(f *Form, repl map[int]Expr) *Form {
	integrals := make([]Integral, len(f.Integrals()))
	for i, it := range f.Integrals() {
		integrals[i] = Integral{
			Kind: it.Kind,
			Integrand: replaceExpr(it.Integrand, func(e Expr) (Expr, bool) {
				if a, ok := e.(Argument); ok {
					if r, ok := repl[a.Count()]; ok {
						return r, true
					}
				}
				return nil, false
			}),
		}
	}
	return &Form{integrals: integrals}
}

// ActionForm computes the native action of a form on w: the
// highest-count argument (the trial function in a standard bilinear
// form) is replaced by w, reducing the form's arity by one.
func ActionForm(f *Form, w Expr) (*Form, error) {
	args := ExtractArguments(f)
	if len(args) == 0 {
		return nil, fmt.Errorf("symbolic: action of a form with no arguments")
	}
	last := args[len(args)-1]
	if !last.ValueShape().Equal(w.ValueShape()) {
		return nil, fmt.Errorf("symbolic: action operand shape %v does not match argument shape %v",
			w.ValueShape(), last.ValueShape())
	}
	return ReplaceArguments(f, map[int]Expr{last.Count(): w}), nil
}

// AdjointForm swaps the roles of a bilinear form's two arguments. The
// lower-count argument is replaced by reordered[1] and the higher by
// reordered[0], so that after extraction reordered[0] occupies the
// test slot and reordered[1] the trial slot. When reordered is nil two
// fresh BaseArguments are minted, reordered[0] first so it takes the
// lower count; callers needing function-space-bound arguments must
// supply their own pair.
func AdjointForm(f *Form, reordered *[2]Argument) (*Form, error) {
	args := ExtractArguments(f)
	if len(args) != 2 {
		return nil, fmt.Errorf("symbolic: adjoint needs a bilinear form, got %d arguments", len(args))
	}
	v, u := args[0], args[1]
	var ru, rv Argument
	if reordered != nil {
		ru, rv = reordered[0], reordered[1]
	} else {
		ru = NewFreshBaseArgument(u.ArgElement())
		rv = NewFreshBaseArgument(v.ArgElement())
	}
	if !ru.ValueShape().Equal(u.ValueShape()) || !rv.ValueShape().Equal(v.ValueShape()) {
		return nil, fmt.Errorf("symbolic: reordered argument shapes (%v, %v) do not match form arguments (%v, %v)",
			ru.ValueShape(), rv.ValueShape(), u.ValueShape(), v.ValueShape())
	}
	return ReplaceArguments(f, map[int]Expr{v.Count(): rv, u.Count(): ru}), nil
}

// DerivativeForm computes the Gateaux derivative of a form with
// respect to coefficient u in direction du: occurrences of u are
// differentiated by the product, sum, inner and gradient rules, other
// leaves differentiate to zero, and vanishing integrals are dropped.
func DerivativeForm(f *Form, u Coefficient, du Expr) (*Form, error) {
	if !u.ValueShape().Equal(du.ValueShape()) {
		return nil, fmt.Errorf("symbolic: derivative direction shape %v does not match coefficient shape %v",
			du.ValueShape(), u.ValueShape())
	}
	var integrals []Integral
	for _, it := range f.Integrals() {
		d, err := differentiate(it.Integrand, u, du)
		if err != nil {
			return nil, err
		}
		if d != nil {
			integrals = append(integrals, Integral{Integrand: d, Kind: it.Kind})
		}
	}
	return &Form{integrals: integrals}, nil
}

// differentiate returns the derivative of e, or nil when it vanishes
// identically.
func differentiate(e Expr, u Coefficient, du Expr) (Expr, error) {
	switch n := e.(type) {
	case Coefficient:
		if n.CoefficientID() == u.CoefficientID() {
			return du, nil
		}
		return nil, nil
	case Argument, *Constant, *SpatialCoordinate, *FacetNormal, *Circumradius:
		return nil, nil
	case *Sum:
		dl, err := differentiate(n.Left, u, du)
		if err != nil {
			return nil, err
		}
		dr, err := differentiate(n.Right, u, du)
		if err != nil {
			return nil, err
		}
		switch {
		case dl == nil:
			return dr, nil
		case dr == nil:
			return dl, nil
		}
		return Add(dl, dr), nil
	case *Product:
		return productRule(n.Left, n.Right, u, du, Mul)
	case *InnerProduct:
		return productRule(n.Left, n.Right, u, du, Inner)
	case *Gradient:
		d, err := differentiate(n.Operand, u, du)
		if err != nil || d == nil {
			return nil, err
		}
		return Grad(d), nil
	case *SubComponent:
		d, err := differentiate(n.Base, u, du)
		if err != nil || d == nil {
			return nil, err
		}
		return NewSubComponent(d, n.Index), nil
	}
	return nil, fmt.Errorf("symbolic: cannot differentiate %s", e)
}

func productRule(a, b Expr, u Coefficient, du Expr, combine func(Expr, Expr) Expr) (Expr, error) {
	da, err := differentiate(a, u, du)
	if err != nil {
		return nil, err
	}
	db, err := differentiate(b, u, du)
	if err != nil {
		return nil, err
	}
	switch {
	case da == nil && db == nil:
		return nil, nil
	case da == nil:
		return combine(a, db), nil
	case db == nil:
		return combine(da, b), nil
	}
	return Add(combine(da, b), combine(a, db)), nil
}

// Split breaks an expression over a mixed element into one component
// per subelement. Expressions over non-mixed elements split into a
// single-element slice holding the expression itself.
func Split(e Expr) []Expr {
	me, ok := elementOf(e).(MixedElement)
	if !ok {
		return []Expr{e}
	}
	parts := make([]Expr, me.NumSubElements())
	for i := range parts {
		parts[i] = NewSubComponent(e, i)
	}
	return parts
}
