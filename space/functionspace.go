package space

import (
	"fmt"

	"github.com/notargets/FormKernel/element"
	"github.com/notargets/FormKernel/mesh"
	"gonum.org/v1/gonum/mat"
)

// Space is the function-space contract consumed by arguments,
// functions and the assembler.
type Space interface {
	Mesh() *mesh.Mesh
	Element() element.FiniteElement
	DofCount() int
	CellNodeMap() *NodeMap
	InteriorFacetNodeMap() *NodeMap
	ExteriorFacetNodeMap() *NodeMap
	// MakeDat allocates zeroed backing storage for a discrete
	// function on this space.
	MakeDat() *mat.VecDense
	NumSub() int
	Sub(i int) Space
}

// FunctionSpace is a scalar Lagrange space over a 1-D mesh. CG spaces
// share vertex dofs between adjacent cells; DG spaces number every
// cell independently.
type FunctionSpace struct {
	mesh     *mesh.Mesh
	elem     element.FiniteElement
	dofCount int

	cellNodes     *NodeMap
	extFacetNodes *NodeMap
	intFacetNodes *NodeMap

	nodeCoords []float64 // physical coordinate of each dof
}

// NewFunctionSpace builds a function space of the given family ("CG"
// or "DG") and degree over m.
func NewFunctionSpace(m *mesh.Mesh, family string, degree int) (*FunctionSpace, error) {
	if m == nil {
		return nil, fmt.Errorf("space: nil mesh")
	}
	elem, err := element.NewLagrange(family, degree)
	if err != nil {
		return nil, err
	}
	V := &FunctionSpace{mesh: m, elem: elem}
	if err := V.number(); err != nil {
		return nil, err
	}
	return V, nil
}

// number assigns global dofs and builds the cell and facet node maps.
func (V *FunctionSpace) number() error {
	m := V.mesh
	np := V.elem.NodeCount()
	refNodes := V.elem.(*element.Lagrange).Nodes()

	cellValues := make([][]int, m.NumCells())
	switch V.elem.Family() {
	case element.CG:
		// Vertex dofs first (shared), then cell-interior dofs.
		interior := np - 2
		V.dofCount = m.NumVertices() + m.NumCells()*interior
		for c := 0; c < m.NumCells(); c++ {
			verts := m.CellVertices(c)
			row := make([]int, np)
			row[0] = verts[0]
			for k := 0; k < interior; k++ {
				row[1+k] = m.NumVertices() + c*interior + k
			}
			row[np-1] = verts[1]
			cellValues[c] = row
		}
	case element.DG:
		V.dofCount = m.NumCells() * np
		for c := 0; c < m.NumCells(); c++ {
			row := make([]int, np)
			for k := 0; k < np; k++ {
				row[k] = c*np + k
			}
			cellValues[c] = row
		}
	default:
		return fmt.Errorf("space: cannot number family %q", V.elem.Family())
	}

	var err error
	if V.cellNodes, err = NewNodeMap(cellValues, np); err != nil {
		return err
	}

	// Physical dof coordinates, for interpolation: map reference
	// nodes through the cell geometry.
	V.nodeCoords = make([]float64, V.dofCount)
	for c := 0; c < m.NumCells(); c++ {
		x0, x1 := m.CellCoords(c)
		for k, dof := range V.cellNodes.Entity(c) {
			V.nodeCoords[dof] = x0 + (refNodes[k]+1)/2*(x1-x0)
		}
	}

	// Exterior facets see their adjacent cell's nodes.
	extValues := make([][]int, len(m.ExteriorFacets()))
	for i, f := range m.ExteriorFacets() {
		extValues[i] = V.cellNodes.Entity(f.Cell)
	}
	if V.extFacetNodes, err = NewNodeMap(extValues, np); err != nil {
		return err
	}

	// Interior facets see both adjacent cells' nodes.
	intValues := make([][]int, len(m.InteriorFacets()))
	for i, f := range m.InteriorFacets() {
		row := make([]int, 0, 2*np)
		row = append(row, V.cellNodes.Entity(f.Cells[0])...)
		row = append(row, V.cellNodes.Entity(f.Cells[1])...)
		intValues[i] = row
	}
	if V.intFacetNodes, err = NewNodeMap(intValues, 2*np); err != nil {
		return err
	}

	return V.cellNodes.Verify(V.dofCount)
}

func (V *FunctionSpace) Mesh() *mesh.Mesh               { return V.mesh }
func (V *FunctionSpace) Element() element.FiniteElement { return V.elem }
func (V *FunctionSpace) DofCount() int                  { return V.dofCount }
func (V *FunctionSpace) CellNodeMap() *NodeMap          { return V.cellNodes }
func (V *FunctionSpace) ExteriorFacetNodeMap() *NodeMap { return V.extFacetNodes }
func (V *FunctionSpace) InteriorFacetNodeMap() *NodeMap { return V.intFacetNodes }

func (V *FunctionSpace) MakeDat() *mat.VecDense {
	return mat.NewVecDense(V.dofCount, nil)
}

func (V *FunctionSpace) NumSub() int { return 1 }

func (V *FunctionSpace) Sub(i int) Space {
	if i != 0 {
		panic(fmt.Sprintf("space: subspace %d of a non-mixed space", i))
	}
	return V
}

// NodeCoordinates returns the physical coordinate of every dof. The
// slice is shared; callers must not mutate it.
func (V *FunctionSpace) NodeCoordinates() []float64 { return V.nodeCoords }

// BoundaryNodes returns the dofs constrained by the boundary facets
// carrying the given marker, ordered by facet.
func (V *FunctionSpace) BoundaryNodes(marker int) []int {
	var nodes []int
	for i, f := range V.mesh.ExteriorFacets() {
		if f.Marker != marker {
			continue
		}
		row := V.extFacetNodes.Entity(i)
		verts := V.mesh.CellVertices(f.Cell)
		if f.Vertex == verts[0] {
			nodes = append(nodes, row[0])
		} else {
			nodes = append(nodes, row[len(row)-1])
		}
	}
	return nodes
}
