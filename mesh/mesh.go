// Package mesh provides one-dimensional interval meshes: vertex
// geometry, cell connectivity, interior and exterior facets with
// boundary markers, and a YAML mesh file reader.
package mesh

import (
	"fmt"
	"sort"

	"github.com/notargets/FormKernel/element"
)

// Boundary markers assigned by the interval mesh builders.
const (
	LeftBoundary  = 1
	RightBoundary = 2
)

// Facet is an exterior (boundary) facet: a single vertex in 1-D,
// adjacent to exactly one cell.
type Facet struct {
	Vertex int
	Cell   int
	Marker int
}

// InteriorFacet is a vertex shared by two cells.
type InteriorFacet struct {
	Vertex int
	Cells  [2]int
}

// Mesh is a 1-D simplicial mesh: cells are vertex pairs ordered left
// to right. Meshes are immutable after construction.
type Mesh struct {
	coords   []float64
	cells    [][2]int
	exterior []Facet
	interior []InteriorFacet
}

// NewIntervalMesh builds a uniform mesh of n cells on [0, length].
// The left endpoint carries marker LeftBoundary, the right
// RightBoundary.
func NewIntervalMesh(n int, length float64) (*Mesh, error) {
	if n < 1 {
		return nil, fmt.Errorf("mesh: cell count must be >= 1, got %d", n)
	}
	if length <= 0 {
		return nil, fmt.Errorf("mesh: length must be positive, got %g", length)
	}
	coords := make([]float64, n+1)
	cells := make([][2]int, n)
	for i := 0; i <= n; i++ {
		coords[i] = length * float64(i) / float64(n)
	}
	for c := 0; c < n; c++ {
		cells[c] = [2]int{c, c + 1}
	}
	boundary := map[int][]int{
		LeftBoundary:  {0},
		RightBoundary: {n},
	}
	return New(coords, cells, boundary)
}

// NewUnitIntervalMesh builds a uniform mesh of n cells on [0,1].
func NewUnitIntervalMesh(n int) (*Mesh, error) {
	return NewIntervalMesh(n, 1.0)
}

// New builds a mesh from vertex coordinates, cell connectivity and a
// marker → boundary vertex map. Connectivity is validated: vertex
// indices in range, cells non-degenerate, every boundary vertex on
// exactly one cell.
func New(coords []float64, cells [][2]int, boundary map[int][]int) (*Mesh, error) {
	if len(coords) < 2 {
		return nil, fmt.Errorf("mesh: need at least 2 vertices, got %d", len(coords))
	}
	if len(cells) < 1 {
		return nil, fmt.Errorf("mesh: need at least 1 cell")
	}

	// Count cells per vertex to classify facets.
	adjacency := make([][]int, len(coords))
	for c, cell := range cells {
		for _, v := range cell {
			if v < 0 || v >= len(coords) {
				return nil, fmt.Errorf("mesh: cell %d references vertex %d, have %d vertices",
					c, v, len(coords))
			}
		}
		if cell[0] == cell[1] {
			return nil, fmt.Errorf("mesh: cell %d is degenerate (vertex %d twice)", c, cell[0])
		}
		adjacency[cell[0]] = append(adjacency[cell[0]], c)
		adjacency[cell[1]] = append(adjacency[cell[1]], c)
	}

	markerOf := make(map[int]int)
	for marker, verts := range boundary {
		for _, v := range verts {
			if v < 0 || v >= len(coords) {
				return nil, fmt.Errorf("mesh: boundary marker %d references vertex %d, have %d vertices",
					marker, v, len(coords))
			}
			if prev, dup := markerOf[v]; dup {
				return nil, fmt.Errorf("mesh: vertex %d carries markers %d and %d", v, prev, marker)
			}
			markerOf[v] = marker
		}
	}

	m := &Mesh{coords: coords, cells: cells}
	for v, adj := range adjacency {
		switch len(adj) {
		case 1:
			m.exterior = append(m.exterior, Facet{Vertex: v, Cell: adj[0], Marker: markerOf[v]})
		case 2:
			m.interior = append(m.interior, InteriorFacet{Vertex: v, Cells: [2]int{adj[0], adj[1]}})
		case 0:
			return nil, fmt.Errorf("mesh: vertex %d is not connected to any cell", v)
		default:
			return nil, fmt.Errorf("mesh: vertex %d is shared by %d cells, at most 2 allowed in 1-D",
				v, len(adj))
		}
	}
	sort.Slice(m.exterior, func(i, j int) bool { return m.exterior[i].Vertex < m.exterior[j].Vertex })
	sort.Slice(m.interior, func(i, j int) bool { return m.interior[i].Vertex < m.interior[j].Vertex })
	return m, nil
}

func (m *Mesh) NumVertices() int { return len(m.coords) }
func (m *Mesh) NumCells() int    { return len(m.cells) }

// GeometricDimension satisfies symbolic.Domain.
func (m *Mesh) GeometricDimension() int { return 1 }

// Cell returns the reference cell shared by all mesh cells.
func (m *Mesh) Cell() element.Cell { return element.LineCell() }

func (m *Mesh) VertexCoord(v int) float64 { return m.coords[v] }

func (m *Mesh) CellVertices(c int) [2]int { return m.cells[c] }

// CellLength returns the length of cell c.
func (m *Mesh) CellLength(c int) float64 {
	cell := m.cells[c]
	l := m.coords[cell[1]] - m.coords[cell[0]]
	if l < 0 {
		return -l
	}
	return l
}

// CellCoords returns the coordinates of cell c's two vertices in
// connectivity order.
func (m *Mesh) CellCoords(c int) (x0, x1 float64) {
	cell := m.cells[c]
	return m.coords[cell[0]], m.coords[cell[1]]
}

// ExteriorFacets returns the boundary facets ordered by vertex. The
// slice is shared; callers must not mutate it.
func (m *Mesh) ExteriorFacets() []Facet { return m.exterior }

// InteriorFacets returns the interior facets ordered by vertex. The
// slice is shared; callers must not mutate it.
func (m *Mesh) InteriorFacets() []InteriorFacet { return m.interior }

// BoundaryVertices returns the vertices of all exterior facets
// carrying the given marker.
func (m *Mesh) BoundaryVertices(marker int) []int {
	var verts []int
	for _, f := range m.exterior {
		if f.Marker == marker {
			verts = append(verts, f.Vertex)
		}
	}
	return verts
}
