package mesh

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntervalMesh(t *testing.T) {
	m, err := NewIntervalMesh(4, 2.0)
	require.NoError(t, err)

	assert.Equal(t, 5, m.NumVertices())
	assert.Equal(t, 4, m.NumCells())
	assert.Equal(t, 1, m.GeometricDimension())
	assert.InDelta(t, 0.5, m.CellLength(0), 1e-14)
	assert.InDelta(t, 2.0, m.VertexCoord(4), 1e-14)
	assert.Equal(t, [2]int{2, 3}, m.CellVertices(2))
}

func TestIntervalMeshFacets(t *testing.T) {
	m, err := NewUnitIntervalMesh(3)
	require.NoError(t, err)

	ext := m.ExteriorFacets()
	require.Len(t, ext, 2)
	assert.Equal(t, Facet{Vertex: 0, Cell: 0, Marker: LeftBoundary}, ext[0])
	assert.Equal(t, Facet{Vertex: 3, Cell: 2, Marker: RightBoundary}, ext[1])

	interior := m.InteriorFacets()
	require.Len(t, interior, 2)
	assert.Equal(t, 1, interior[0].Vertex)
	assert.Equal(t, [2]int{0, 1}, interior[0].Cells)

	assert.Equal(t, []int{0}, m.BoundaryVertices(LeftBoundary))
	assert.Equal(t, []int{3}, m.BoundaryVertices(RightBoundary))
	assert.Nil(t, m.BoundaryVertices(99))
}

func TestNewIntervalMeshValidation(t *testing.T) {
	_, err := NewIntervalMesh(0, 1)
	assert.Error(t, err)
	_, err = NewIntervalMesh(3, -1)
	assert.Error(t, err)
}

func TestNewValidation(t *testing.T) {
	coords := []float64{0, 0.5, 1}

	_, err := New(coords, [][2]int{{0, 1}, {1, 5}}, nil)
	assert.Error(t, err, "vertex out of range")

	_, err = New(coords, [][2]int{{0, 0}, {1, 2}}, nil)
	assert.Error(t, err, "degenerate cell")

	_, err = New(coords, [][2]int{{0, 1}}, nil)
	assert.Error(t, err, "disconnected vertex")

	_, err = New(coords, [][2]int{{0, 1}, {1, 2}}, map[int][]int{1: {0}, 2: {0}})
	assert.Error(t, err, "conflicting markers")
}

func TestReadYAML(t *testing.T) {
	src := `
vertices: [0.0, 0.25, 1.0]
cells:
  - [0, 1]
  - [1, 2]
boundary:
  1: [0]
  2: [2]
`
	m, err := Read(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, 3, m.NumVertices())
	assert.Equal(t, 2, m.NumCells())
	assert.InDelta(t, 0.25, m.CellLength(0), 1e-14)
	assert.InDelta(t, 0.75, m.CellLength(1), 1e-14)
	assert.Equal(t, []int{0}, m.BoundaryVertices(1))
}

func TestReadYAMLMatchesBuilder(t *testing.T) {
	src := `
vertices: [0.0, 0.5, 1.0]
cells:
  - [0, 1]
  - [1, 2]
boundary:
  1: [0]
  2: [2]
`
	fromFile, err := Read(strings.NewReader(src))
	require.NoError(t, err)
	built, err := NewUnitIntervalMesh(2)
	require.NoError(t, err)

	assert.Equal(t, built.NumCells(), fromFile.NumCells())
	assert.Equal(t, built.ExteriorFacets(), fromFile.ExteriorFacets())
	assert.Equal(t, built.InteriorFacets(), fromFile.InteriorFacets())
}

func TestReadYAMLRejectsBadCells(t *testing.T) {
	src := `
vertices: [0.0, 1.0]
cells:
  - [0, 1, 2]
`
	_, err := Read(strings.NewReader(src))
	assert.Error(t, err)
}

func TestReadYAMLRejectsUnknownFields(t *testing.T) {
	src := `
vertices: [0.0, 1.0]
cells:
  - [0, 1]
extra: true
`
	_, err := Read(strings.NewReader(src))
	assert.Error(t, err)
}
