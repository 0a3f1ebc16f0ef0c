package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/FormKernel/forms"
	"github.com/notargets/FormKernel/function"
	"github.com/notargets/FormKernel/mesh"
	"github.com/notargets/FormKernel/space"
	"github.com/notargets/FormKernel/symbolic"
)

func cg1Setup(t *testing.T, n int) (*mesh.Mesh, *space.FunctionSpace, *forms.Argument, *forms.Argument) {
	t.Helper()
	m, err := mesh.NewUnitIntervalMesh(n)
	require.NoError(t, err)
	V, err := space.NewFunctionSpace(m, "CG", 1)
	require.NoError(t, err)
	return m, V, forms.TestFunction(V), forms.TrialFunction(V)
}

func TestMassMatrixCG1(t *testing.T) {
	_, _, v, u := cg1Setup(t, 4)
	h := 0.25

	A, err := NewAssembler().AssembleMatrix(symbolic.CellIntegral(symbolic.Mul(u, v)))
	require.NoError(t, err)

	r, c := A.Dims()
	require.Equal(t, 5, r)
	require.Equal(t, 5, c)

	// Piecewise-linear mass matrix: h/6 * tridiag(1, 4, 1), with
	// halved diagonal entries at the two boundary dofs.
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := 0.0
			switch {
			case i == j && (i == 0 || i == 4):
				want = h / 3
			case i == j:
				want = 2 * h / 3
			case i == j+1 || j == i+1:
				want = h / 6
			}
			assert.InDelta(t, want, A.At(i, j), 1e-12, "A[%d][%d]", i, j)
		}
	}
}

func TestStiffnessMatrixCG1(t *testing.T) {
	_, _, v, u := cg1Setup(t, 4)
	h := 0.25

	form := symbolic.CellIntegral(symbolic.Inner(symbolic.Grad(u), symbolic.Grad(v)))
	A, err := NewAssembler().AssembleMatrix(form)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			want := 0.0
			switch {
			case i == j && (i == 0 || i == 4):
				want = 1 / h
			case i == j:
				want = 2 / h
			case i == j+1 || j == i+1:
				want = -1 / h
			}
			assert.InDelta(t, want, A.At(i, j), 1e-12, "A[%d][%d]", i, j)
		}
	}
}

func TestAssembleFunctionMatchesMatrixVectorProduct(t *testing.T) {
	_, V, v, u := cg1Setup(t, 5)
	asm := NewAssembler()

	bilinear := symbolic.CellIntegral(symbolic.Mul(u, v))
	A, err := asm.AssembleMatrix(bilinear)
	require.NoError(t, err)

	w := function.New(V)
	require.NoError(t, w.Interpolate(func(x float64) float64 { return 1 + x }))

	linear := symbolic.CellIntegral(symbolic.Mul(w, v))
	b, err := asm.AssembleFunction(linear, nil)
	require.NoError(t, err)

	var want mat.VecDense
	want.MulVec(A, w.Dat())
	for i := 0; i < V.DofCount(); i++ {
		assert.InDelta(t, want.AtVec(i), b.At(i), 1e-12, "dof %d", i)
	}
}

func TestAssembleFunctionInPlace(t *testing.T) {
	_, V, v, _ := cg1Setup(t, 3)
	asm := NewAssembler()

	form := symbolic.CellIntegral(symbolic.Mul(symbolic.NewConstant(1), v))
	out := function.New(V)
	out.SetConst(99) // must be zeroed before accumulation

	got, err := asm.AssembleFunction(form, out)
	require.NoError(t, err)
	assert.Same(t, out, got)

	// Each dof integrates its hat function: h/2 at the ends, h inside.
	h := 1.0 / 3
	assert.InDelta(t, h/2, out.At(0), 1e-12)
	assert.InDelta(t, h, out.At(1), 1e-12)
	assert.InDelta(t, h/2, out.At(3), 1e-12)

	wrong, err := space.NewFunctionSpace(V.Mesh(), "CG", 2)
	require.NoError(t, err)
	_, err = asm.AssembleFunction(form, function.New(wrong))
	assert.Error(t, err, "tensor on the wrong space")
}

func TestFacetIntegral(t *testing.T) {
	m, _, v, _ := cg1Setup(t, 4)

	b, err := NewAssembler().AssembleFunction(symbolic.ExteriorFacetIntegral(v), nil)
	require.NoError(t, err)

	// Each boundary dof picks up its hat function's endpoint value.
	assert.InDelta(t, 1, b.At(0), 1e-12)
	assert.InDelta(t, 1, b.At(4), 1e-12)
	for i := 1; i < 4; i++ {
		assert.InDelta(t, 0, b.At(i), 1e-12)
	}

	// Weighting by the outward normal flips the sign on the left.
	nrm := symbolic.NewFacetNormal(m)
	b, err = NewAssembler().AssembleFunction(
		symbolic.ExteriorFacetIntegral(symbolic.Mul(nrm, v)), nil)
	require.NoError(t, err)
	assert.InDelta(t, -1, b.At(0), 1e-12)
	assert.InDelta(t, 1, b.At(4), 1e-12)
}

func TestAssembleScalar(t *testing.T) {
	m, V, _, _ := cg1Setup(t, 8)
	asm := NewAssembler()

	w := function.New(V)
	require.NoError(t, w.Interpolate(func(x float64) float64 { return x }))

	total, err := asm.AssembleScalar(symbolic.CellIntegral(w))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, total, 1e-12)

	// Pure geometry: the mesh is inferred from the coordinate leaf.
	x := symbolic.NewSpatialCoordinate(m)
	total, err = asm.AssembleScalar(symbolic.CellIntegral(symbolic.Mul(x, x)))
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, total, 1e-12)

	// Sum of cell sizes over every cell: n * h^2 = h.
	cs := forms.CellSize(m)
	total, err = asm.AssembleScalar(symbolic.CellIntegral(cs))
	require.NoError(t, err)
	assert.InDelta(t, 1.0/8, total, 1e-12)
}

func TestCircumradiusAndGradient(t *testing.T) {
	_, V, v, u := cg1Setup(t, 4)
	asm := NewAssembler()

	// Coefficient gradients pick up the Jacobian: d/dx of x is 1.
	w := function.New(V)
	require.NoError(t, w.Interpolate(func(x float64) float64 { return x }))
	total, err := asm.AssembleScalar(symbolic.CellIntegral(symbolic.Grad(w)))
	require.NoError(t, err)
	assert.InDelta(t, 1, total, 1e-12)

	// h/2-weighted mass matrix scales every entry by the cell radius.
	r := symbolic.NewCircumradius(V.Mesh())
	plain, err := asm.AssembleMatrix(symbolic.CellIntegral(symbolic.Mul(u, v)))
	require.NoError(t, err)
	scaled, err := asm.AssembleMatrix(symbolic.CellIntegral(symbolic.Mul(r, symbolic.Mul(u, v))))
	require.NoError(t, err)
	n, _ := plain.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			assert.InDelta(t, plain.At(i, j)*0.125, scaled.At(i, j), 1e-12)
		}
	}
}

func TestQuadPointsOverride(t *testing.T) {
	m, _, _, _ := cg1Setup(t, 1)
	x := symbolic.NewSpatialCoordinate(m)
	sq := symbolic.CellIntegral(symbolic.Mul(x, x))

	// One-point Gauss integrates x^2 on [0,1] as 1/4, not 1/3.
	asm := &Assembler{QuadPoints: 1}
	total, err := asm.AssembleScalar(sq)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, total, 1e-12)

	total, err = NewAssembler().AssembleScalar(sq)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, total, 1e-12)
}

func TestResolveErrors(t *testing.T) {
	m, V, v, u := cg1Setup(t, 2)
	asm := NewAssembler()

	// Arity mismatches.
	_, err := asm.AssembleMatrix(symbolic.CellIntegral(v))
	assert.Error(t, err)
	_, err = asm.AssembleFunction(symbolic.CellIntegral(symbolic.Mul(u, v)), nil)
	assert.Error(t, err)
	_, err = asm.AssembleScalar(symbolic.CellIntegral(v))
	assert.Error(t, err)

	// Engine-minted arguments carry no space binding.
	bare := symbolic.NewBaseArgument(V.Element(), -2)
	_, err = asm.AssembleFunction(symbolic.CellIntegral(bare), nil)
	assert.Error(t, err)

	// No leaf to infer a mesh from.
	_, err = asm.AssembleScalar(symbolic.CellIntegral(symbolic.NewConstant(1)))
	assert.Error(t, err)

	// Test and trial spaces on different meshes.
	m2, err := mesh.NewUnitIntervalMesh(2)
	require.NoError(t, err)
	V2, err := space.NewFunctionSpace(m2, "CG", 1)
	require.NoError(t, err)
	_, err = asm.AssembleMatrix(symbolic.CellIntegral(symbolic.Mul(forms.TrialFunction(V2), v)))
	assert.Error(t, err)

	// Interior facet integrals are out of scope.
	_, err = asm.AssembleScalar(symbolic.InteriorFacetIntegral(symbolic.NewSpatialCoordinate(m)))
	assert.Error(t, err)
}

func TestHigherOrderMassIsExact(t *testing.T) {
	m, err := mesh.NewUnitIntervalMesh(2)
	require.NoError(t, err)
	V, err := space.NewFunctionSpace(m, "CG", 2)
	require.NoError(t, err)

	// A quadratic space integrates x^2 exactly through interpolation.
	w := function.New(V)
	require.NoError(t, w.Interpolate(func(x float64) float64 { return x * x }))
	total, err := NewAssembler().AssembleScalar(symbolic.CellIntegral(w))
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3, total, 1e-12)
}
