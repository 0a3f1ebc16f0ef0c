package space

import (
	"fmt"

	"github.com/notargets/FormKernel/element"
	"github.com/notargets/FormKernel/mesh"
	"gonum.org/v1/gonum/mat"
)

// MixedSpace stacks component spaces over a shared mesh. Dofs are
// numbered component-major: all of sub 0, then all of sub 1, and so
// on; Offset reports where each component's block starts.
type MixedSpace struct {
	subs     []*FunctionSpace
	offsets  []int
	elem     *element.Mixed
	dofCount int

	cellNodes     *NodeMap
	extFacetNodes *NodeMap
	intFacetNodes *NodeMap
}

// NewMixedSpace builds the product of the given spaces, which must
// live on the same mesh.
func NewMixedSpace(subs ...*FunctionSpace) (*MixedSpace, error) {
	if len(subs) == 0 {
		return nil, fmt.Errorf("space: mixed space needs at least one component")
	}
	m := subs[0].Mesh()
	elems := make([]element.FiniteElement, len(subs))
	for i, s := range subs {
		if s.Mesh() != m {
			return nil, fmt.Errorf("space: component %d lives on a different mesh", i)
		}
		elems[i] = s.Element()
	}
	elem, err := element.NewMixed(elems...)
	if err != nil {
		return nil, err
	}

	ms := &MixedSpace{
		subs:    append([]*FunctionSpace(nil), subs...),
		offsets: make([]int, len(subs)),
		elem:    elem,
	}
	for i, s := range subs {
		ms.offsets[i] = ms.dofCount
		ms.dofCount += s.DofCount()
	}

	ms.cellNodes = ms.stack(func(s *FunctionSpace) *NodeMap { return s.CellNodeMap() })
	ms.extFacetNodes = ms.stack(func(s *FunctionSpace) *NodeMap { return s.ExteriorFacetNodeMap() })
	ms.intFacetNodes = ms.stack(func(s *FunctionSpace) *NodeMap { return s.InteriorFacetNodeMap() })
	return ms, nil
}

// stack concatenates per-component node maps entity-wise, shifting
// each component into its dof block.
func (ms *MixedSpace) stack(pick func(*FunctionSpace) *NodeMap) *NodeMap {
	shifted := make([]*NodeMap, len(ms.subs))
	arity := 0
	for i, s := range ms.subs {
		shifted[i] = offsetNodeMap(pick(s), ms.offsets[i])
		arity += shifted[i].Arity
	}
	n := shifted[0].Len()
	values := make([][]int, n)
	for e := 0; e < n; e++ {
		row := make([]int, 0, arity)
		for _, nm := range shifted {
			row = append(row, nm.Entity(e)...)
		}
		values[e] = row
	}
	return &NodeMap{Values: values, Arity: arity}
}

func (ms *MixedSpace) Mesh() *mesh.Mesh               { return ms.subs[0].Mesh() }
func (ms *MixedSpace) Element() element.FiniteElement { return ms.elem }
func (ms *MixedSpace) DofCount() int                  { return ms.dofCount }
func (ms *MixedSpace) CellNodeMap() *NodeMap          { return ms.cellNodes }
func (ms *MixedSpace) ExteriorFacetNodeMap() *NodeMap { return ms.extFacetNodes }
func (ms *MixedSpace) InteriorFacetNodeMap() *NodeMap { return ms.intFacetNodes }

func (ms *MixedSpace) MakeDat() *mat.VecDense {
	return mat.NewVecDense(ms.dofCount, nil)
}

func (ms *MixedSpace) NumSub() int { return len(ms.subs) }

func (ms *MixedSpace) Sub(i int) Space { return ms.subs[i] }

// Offset returns the first global dof of component i's block.
func (ms *MixedSpace) Offset(i int) int { return ms.offsets[i] }
