package space

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/FormKernel/mesh"
)

func unitMesh(t *testing.T, n int) *mesh.Mesh {
	t.Helper()
	m, err := mesh.NewUnitIntervalMesh(n)
	require.NoError(t, err)
	return m
}

func TestNodeMapValidation(t *testing.T) {
	_, err := NewNodeMap([][]int{{0, 1}, {1}}, 2)
	assert.Error(t, err, "ragged table")

	_, err = NewNodeMap(nil, 0)
	assert.Error(t, err, "zero arity")

	nm, err := NewNodeMap([][]int{{0, 1}, {1, 2}}, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, nm.Len())
	assert.Equal(t, []int{1, 2}, nm.Entity(1))
	assert.NoError(t, nm.Verify(3))
	assert.Error(t, nm.Verify(2))
}

func TestCG1Numbering(t *testing.T) {
	m := unitMesh(t, 4)
	V, err := NewFunctionSpace(m, "CG", 1)
	require.NoError(t, err)

	assert.Equal(t, 5, V.DofCount())
	nm := V.CellNodeMap()
	require.Equal(t, 4, nm.Len())
	for c := 0; c < 4; c++ {
		assert.Equal(t, []int{c, c + 1}, nm.Entity(c))
	}
}

func TestCG2Numbering(t *testing.T) {
	m := unitMesh(t, 3)
	V, err := NewFunctionSpace(m, "CG", 2)
	require.NoError(t, err)

	// 4 vertex dofs plus one interior dof per cell.
	assert.Equal(t, 7, V.DofCount())
	nm := V.CellNodeMap()
	assert.Equal(t, []int{0, 4, 1}, nm.Entity(0))
	assert.Equal(t, []int{1, 5, 2}, nm.Entity(1))
	assert.Equal(t, []int{2, 6, 3}, nm.Entity(2))

	// The interior dof of cell 0 sits at the cell midpoint.
	coords := V.NodeCoordinates()
	assert.InDelta(t, 1.0/6.0, coords[4], 1e-14)
}

func TestDGNumbering(t *testing.T) {
	m := unitMesh(t, 3)
	V, err := NewFunctionSpace(m, "DG", 1)
	require.NoError(t, err)

	assert.Equal(t, 6, V.DofCount())
	nm := V.CellNodeMap()
	assert.Equal(t, []int{0, 1}, nm.Entity(0))
	assert.Equal(t, []int{2, 3}, nm.Entity(1))
	assert.Equal(t, []int{4, 5}, nm.Entity(2))
}

func TestFacetNodeMaps(t *testing.T) {
	m := unitMesh(t, 3)
	V, err := NewFunctionSpace(m, "CG", 1)
	require.NoError(t, err)

	ext := V.ExteriorFacetNodeMap()
	require.Equal(t, 2, ext.Len())
	assert.Equal(t, []int{0, 1}, ext.Entity(0), "left facet sees cell 0")
	assert.Equal(t, []int{2, 3}, ext.Entity(1), "right facet sees cell 2")

	interior := V.InteriorFacetNodeMap()
	require.Equal(t, 2, interior.Len())
	assert.Equal(t, 4, interior.Arity)
	assert.Equal(t, []int{0, 1, 1, 2}, interior.Entity(0))
}

func TestBoundaryNodes(t *testing.T) {
	m := unitMesh(t, 4)
	V, err := NewFunctionSpace(m, "CG", 2)
	require.NoError(t, err)

	assert.Equal(t, []int{0}, V.BoundaryNodes(mesh.LeftBoundary))
	assert.Equal(t, []int{4}, V.BoundaryNodes(mesh.RightBoundary))
	assert.Nil(t, V.BoundaryNodes(42))
}

func TestNodeCoordinates(t *testing.T) {
	m := unitMesh(t, 4)
	V, err := NewFunctionSpace(m, "CG", 1)
	require.NoError(t, err)

	coords := V.NodeCoordinates()
	require.Len(t, coords, 5)
	for i, x := range coords {
		assert.InDelta(t, float64(i)/4, x, 1e-14)
	}
}

func TestMakeDat(t *testing.T) {
	m := unitMesh(t, 2)
	V, err := NewFunctionSpace(m, "CG", 1)
	require.NoError(t, err)

	dat := V.MakeDat()
	assert.Equal(t, 3, dat.Len())
	assert.Equal(t, 0.0, dat.AtVec(1))
}

func TestSubOfScalarSpace(t *testing.T) {
	m := unitMesh(t, 2)
	V, err := NewFunctionSpace(m, "CG", 1)
	require.NoError(t, err)

	assert.Equal(t, 1, V.NumSub())
	assert.Same(t, V, V.Sub(0).(*FunctionSpace))
	assert.Panics(t, func() { V.Sub(1) })
}

func TestMixedSpace(t *testing.T) {
	m := unitMesh(t, 3)
	V, err := NewFunctionSpace(m, "CG", 1) // 4 dofs
	require.NoError(t, err)
	Q, err := NewFunctionSpace(m, "DG", 0) // 3 dofs
	require.NoError(t, err)

	W, err := NewMixedSpace(V, Q)
	require.NoError(t, err)

	assert.Equal(t, 7, W.DofCount())
	assert.Equal(t, 2, W.NumSub())
	assert.Same(t, V, W.Sub(0).(*FunctionSpace))
	assert.Equal(t, 0, W.Offset(0))
	assert.Equal(t, 4, W.Offset(1))

	// Cell node map concatenates the shifted component maps.
	nm := W.CellNodeMap()
	assert.Equal(t, 3, nm.Arity)
	assert.Equal(t, []int{0, 1, 4}, nm.Entity(0))
	assert.Equal(t, []int{1, 2, 5}, nm.Entity(1))
}

func TestMixedSpaceRejectsDifferentMeshes(t *testing.T) {
	V, err := NewFunctionSpace(unitMesh(t, 2), "CG", 1)
	require.NoError(t, err)
	Q, err := NewFunctionSpace(unitMesh(t, 2), "CG", 1)
	require.NoError(t, err)

	_, err = NewMixedSpace(V, Q)
	assert.Error(t, err)

	_, err = NewMixedSpace()
	assert.Error(t, err)
}

func TestNewFunctionSpaceValidation(t *testing.T) {
	_, err := NewFunctionSpace(nil, "CG", 1)
	assert.Error(t, err)

	_, err = NewFunctionSpace(unitMesh(t, 2), "XX", 1)
	assert.Error(t, err)
}
