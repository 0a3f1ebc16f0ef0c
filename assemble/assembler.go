// Package assemble turns symbolic forms into numbers: bilinear forms
// into dense matrices, linear forms into discrete functions, and
// functionals into scalars, by quadrature over the cells and boundary
// facets of 1-D meshes.
package assemble

import (
	"fmt"

	"github.com/notargets/FormKernel/element"
	"github.com/notargets/FormKernel/function"
	"github.com/notargets/FormKernel/mesh"
	"github.com/notargets/FormKernel/space"
	"github.com/notargets/FormKernel/symbolic"
	"gonum.org/v1/gonum/mat"
)

// Assembler evaluates forms by Gauss-Legendre quadrature. The zero
// value is ready to use; QuadPoints overrides the default point count
// (element degree + 2) when positive.
type Assembler struct {
	QuadPoints int
}

func NewAssembler() *Assembler {
	return &Assembler{}
}

// slot is one argument of a form resolved to its bound space.
type slot struct {
	arg  symbolic.Argument
	spc  space.Space
	elem element.FiniteElement
}

// binding is a form resolved against concrete spaces and coefficients.
type binding struct {
	m           *mesh.Mesh
	test, trial *slot
	coeffs      []*function.Function
}

// spaceBound is satisfied by arguments carrying a function-space
// binding (forms.Argument). Engine-minted base arguments do not
// qualify and are rejected at resolution time.
type spaceBound interface {
	FunctionSpace() space.Space
}

// AssembleMatrix assembles a bilinear form into a dense matrix with
// one row per test dof and one column per trial dof.
func (asm *Assembler) AssembleMatrix(form *symbolic.Form) (*mat.Dense, error) {
	bind, err := asm.resolve(form, 2)
	if err != nil {
		return nil, err
	}
	A := mat.NewDense(bind.test.spc.DofCount(), bind.trial.spc.DofCount(), nil)
	testMap := bind.test.spc.CellNodeMap()
	trialMap := bind.trial.spc.CellNodeMap()
	for _, it := range form.Integrals() {
		err := asm.integrate(it, bind, func(c, i, j int, v float64) {
			row := testMap.Entity(c)[i]
			col := trialMap.Entity(c)[j]
			A.Set(row, col, A.At(row, col)+v)
		})
		if err != nil {
			return nil, err
		}
	}
	return A, nil
}

// AssembleFunction assembles a linear form into a function on the
// test space. A non-nil tensor is zeroed and written in place;
// otherwise a fresh function is allocated. The tensor must not alias
// a coefficient of the form.
func (asm *Assembler) AssembleFunction(form *symbolic.Form, tensor *function.Function) (*function.Function, error) {
	bind, err := asm.resolve(form, 1)
	if err != nil {
		return nil, err
	}
	out := tensor
	if out == nil {
		out = function.New(bind.test.spc)
	} else {
		if out.Dat().Len() != bind.test.spc.DofCount() {
			return nil, fmt.Errorf("assemble: tensor has %d dofs, form's test space has %d",
				out.Dat().Len(), bind.test.spc.DofCount())
		}
		out.SetConst(0)
	}
	testMap := bind.test.spc.CellNodeMap()
	dat := out.Dat()
	for _, it := range form.Integrals() {
		err := asm.integrate(it, bind, func(c, i, _ int, v float64) {
			dof := testMap.Entity(c)[i]
			dat.SetVec(dof, dat.AtVec(dof)+v)
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AssembleScalar assembles a functional (a form with no arguments).
func (asm *Assembler) AssembleScalar(form *symbolic.Form) (float64, error) {
	bind, err := asm.resolve(form, 0)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, it := range form.Integrals() {
		err := asm.integrate(it, bind, func(_, _, _ int, v float64) {
			total += v
		})
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

// resolve checks arity, binds arguments to their spaces, collects
// coefficients and pins down the mesh all of them share.
func (asm *Assembler) resolve(form *symbolic.Form, wantArgs int) (*binding, error) {
	args := symbolic.ExtractArguments(form)
	if len(args) != wantArgs {
		return nil, fmt.Errorf("assemble: form has %d arguments, want %d", len(args), wantArgs)
	}

	bind := &binding{}
	slots := make([]*slot, len(args))
	for i, a := range args {
		sb, ok := a.(spaceBound)
		if !ok {
			return nil, fmt.Errorf("assemble: argument %s carries no function-space binding", a)
		}
		spc := sb.FunctionSpace()
		elem := spc.Element()
		if !elem.ValueShape().IsScalar() {
			return nil, fmt.Errorf("assemble: argument %s has shape %v, only scalar elements are supported",
				a, elem.ValueShape())
		}
		slots[i] = &slot{arg: a, spc: spc, elem: elem}
	}
	if wantArgs >= 1 {
		bind.test = slots[0]
		bind.m = bind.test.spc.Mesh()
	}
	if wantArgs == 2 {
		bind.trial = slots[1]
		if bind.trial.spc.Mesh() != bind.m {
			return nil, fmt.Errorf("assemble: test and trial spaces live on different meshes")
		}
	}

	for _, c := range symbolic.ExtractCoefficients(form) {
		f, ok := c.(*function.Function)
		if !ok {
			return nil, fmt.Errorf("assemble: coefficient %s is not a discrete function", c)
		}
		if !f.ValueShape().IsScalar() {
			return nil, fmt.Errorf("assemble: coefficient %s has shape %v, only scalar elements are supported",
				c, f.ValueShape())
		}
		if bind.m == nil {
			bind.m = f.FunctionSpace().Mesh()
		} else if f.FunctionSpace().Mesh() != bind.m {
			return nil, fmt.Errorf("assemble: coefficient %s lives on a different mesh", c)
		}
		bind.coeffs = append(bind.coeffs, f)
	}

	if bind.m == nil {
		bind.m = inferMesh(form)
	}
	if bind.m == nil {
		return nil, fmt.Errorf("assemble: cannot infer a mesh from the form")
	}
	return bind, nil
}

// inferMesh pulls a mesh out of geometric leaves, for pure-geometry
// functionals like CellSize integrals.
func inferMesh(form *symbolic.Form) *mesh.Mesh {
	var m *mesh.Mesh
	var scan func(e symbolic.Expr)
	scan = func(e symbolic.Expr) {
		if m != nil {
			return
		}
		switch n := e.(type) {
		case *symbolic.SpatialCoordinate:
			m, _ = n.Domain.(*mesh.Mesh)
		case *symbolic.FacetNormal:
			m, _ = n.Domain.(*mesh.Mesh)
		case *symbolic.Circumradius:
			m, _ = n.Domain.(*mesh.Mesh)
		case *symbolic.Sum:
			scan(n.Left)
			scan(n.Right)
		case *symbolic.Product:
			scan(n.Left)
			scan(n.Right)
		case *symbolic.InnerProduct:
			scan(n.Left)
			scan(n.Right)
		case *symbolic.Gradient:
			scan(n.Operand)
		case *symbolic.SubComponent:
			scan(n.Base)
		}
	}
	for _, it := range form.Integrals() {
		scan(it.Integrand)
	}
	return m
}

// quadPoints picks the rule size for a binding.
func (asm *Assembler) quadPoints(bind *binding) int {
	if asm.QuadPoints > 0 {
		return asm.QuadPoints
	}
	deg := 0
	if bind.test != nil && bind.test.elem.Degree() > deg {
		deg = bind.test.elem.Degree()
	}
	if bind.trial != nil && bind.trial.elem.Degree() > deg {
		deg = bind.trial.elem.Degree()
	}
	for _, c := range bind.coeffs {
		if e := c.FunctionSpace().Element(); e.Degree() > deg {
			deg = e.Degree()
		}
	}
	return deg + 2
}

// integrate runs one integral, cell by cell or facet by facet, calling
// add(cell, iTest, jTrial, contribution) for every local pairing.
func (asm *Assembler) integrate(it symbolic.Integral, bind *binding, add func(c, i, j int, v float64)) error {
	switch it.Kind {
	case symbolic.CellMeasure:
		return asm.cellIntegral(it.Integrand, bind, add)
	case symbolic.ExteriorFacetMeasure:
		return asm.facetIntegral(it.Integrand, bind, add)
	case symbolic.InteriorFacetMeasure:
		return fmt.Errorf("assemble: interior facet integrals are not supported")
	}
	return fmt.Errorf("assemble: unknown measure %s", it.Kind)
}

// tabulated basis of one slot or coefficient at a point set.
type tab struct {
	vals, derivs *mat.Dense
}

func tabulate(elem element.FiniteElement, pts []float64) tab {
	v, d := elem.Tabulate(pts)
	return tab{vals: v, derivs: d}
}

func (asm *Assembler) cellIntegral(integrand symbolic.Expr, bind *binding, add func(c, i, j int, v float64)) error {
	xq, wq := element.GaussLegendre(asm.quadPoints(bind))

	var testTab, trialTab tab
	if bind.test != nil {
		testTab = tabulate(bind.test.elem, xq)
	}
	if bind.trial != nil {
		trialTab = tabulate(bind.trial.elem, xq)
	}
	coeffTabs := make([]tab, len(bind.coeffs))
	for k, c := range bind.coeffs {
		coeffTabs[k] = tabulate(c.FunctionSpace().Element(), xq)
	}

	pt := &point{
		argVal:   make(map[int]valGrad),
		coeffVal: make(map[int]valGrad),
	}
	for c := 0; c < bind.m.NumCells(); c++ {
		h := bind.m.CellLength(c)
		detJ := h / 2
		invJ := 2 / h
		x0, x1 := bind.m.CellCoords(c)
		pt.h = h

		for q := range xq {
			pt.x = x0 + (xq[q]+1)/2*(x1-x0)
			for k, f := range bind.coeffs {
				pt.coeffVal[f.CoefficientID()] = interpolateAt(f, c, coeffTabs[k], q, invJ)
			}
			if err := asm.addPoint(integrand, bind, pt, c, testTab, trialTab, q, invJ, wq[q]*detJ, add); err != nil {
				return err
			}
		}
	}
	return nil
}

func (asm *Assembler) facetIntegral(integrand symbolic.Expr, bind *binding, add func(c, i, j int, v float64)) error {
	// Tabulations at the two endpoints of the reference interval.
	endpoints := []float64{-1, 1}

	var testTab, trialTab tab
	if bind.test != nil {
		testTab = tabulate(bind.test.elem, endpoints)
	}
	if bind.trial != nil {
		trialTab = tabulate(bind.trial.elem, endpoints)
	}
	coeffTabs := make([]tab, len(bind.coeffs))
	for k, c := range bind.coeffs {
		coeffTabs[k] = tabulate(c.FunctionSpace().Element(), endpoints)
	}

	pt := &point{
		onFacet:  true,
		argVal:   make(map[int]valGrad),
		coeffVal: make(map[int]valGrad),
	}
	for _, f := range bind.m.ExteriorFacets() {
		c := f.Cell
		h := bind.m.CellLength(c)
		invJ := 2 / h
		pt.h = h
		pt.x = bind.m.VertexCoord(f.Vertex)

		// Endpoint index in reference coordinates and the outward
		// normal: left end of the cell points in -x.
		end := 1
		pt.normal = 1
		if f.Vertex == bind.m.CellVertices(c)[0] {
			end = 0
			pt.normal = -1
		}

		for k, fn := range bind.coeffs {
			pt.coeffVal[fn.CoefficientID()] = interpolateAt(fn, c, coeffTabs[k], end, invJ)
		}
		if err := asm.addPoint(integrand, bind, pt, c, testTab, trialTab, end, invJ, 1, add); err != nil {
			return err
		}
	}
	return nil
}

// addPoint evaluates the integrand at one point for every local
// test/trial basis pairing and forwards weighted contributions.
func (asm *Assembler) addPoint(integrand symbolic.Expr, bind *binding, pt *point,
	c int, testTab, trialTab tab, row int, invJ, weight float64, add func(c, i, j int, v float64)) error {

	nTest, nTrial := 1, 1
	if bind.test != nil {
		nTest = bind.test.elem.NodeCount()
	}
	if bind.trial != nil {
		nTrial = bind.trial.elem.NodeCount()
	}
	for i := 0; i < nTest; i++ {
		if bind.test != nil {
			pt.argVal[bind.test.arg.Count()] = valGrad{
				val:  testTab.vals.At(row, i),
				grad: testTab.derivs.At(row, i) * invJ,
			}
		}
		for j := 0; j < nTrial; j++ {
			if bind.trial != nil {
				pt.argVal[bind.trial.arg.Count()] = valGrad{
					val:  trialTab.vals.At(row, j),
					grad: trialTab.derivs.At(row, j) * invJ,
				}
			}
			v, err := evalExpr(integrand, pt)
			if err != nil {
				return err
			}
			add(c, i, j, weight*v)
		}
	}
	return nil
}

// interpolateAt evaluates a coefficient and its gradient at tabulation
// row q of cell c.
func interpolateAt(f *function.Function, c int, t tab, q int, invJ float64) valGrad {
	nodes := f.FunctionSpace().CellNodeMap().Entity(c)
	var vg valGrad
	for j, dof := range nodes {
		nodal := f.At(dof)
		vg.val += t.vals.At(q, j) * nodal
		vg.grad += t.derivs.At(q, j) * nodal * invJ
	}
	return vg
}
